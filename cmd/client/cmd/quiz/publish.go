// cmd/client/cmd/quiz/publish.go
package quiz

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quizshare/internal/app/client"
)

var unpublish bool

var PublishCmd = &cobra.Command{
	Use:   "publish <quiz-id>",
	Short: "Publish a quiz",
	Long: `Mark a quiz public so the next sync shares it with the server.

With --retract the quiz goes back to private and the next sync removes it
from the shared store. A password-protected quiz asks for its password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := client.FromContext(cmd.Context())
		if app == nil {
			return fmt.Errorf("application is not initialized")
		}

		localID := args[0]
		if err := checkQuizPassword(app, localID); err != nil {
			return err
		}

		if err := app.SetVisibility(localID, !unpublish); err != nil {
			return fmt.Errorf("failed to change visibility: %w", err)
		}

		if unpublish {
			color.Yellow("✓ Quiz is private again, it will be retracted at the next sync")
		} else {
			color.Green("✓ Quiz is public, run 'quizshare sync' to share it")
		}

		return nil
	},
}

// checkQuizPassword prompts for and verifies the quiz edit password when the
// quiz has one.
func checkQuizPassword(app *client.App, localID string) error {
	q, err := app.GetQuiz(localID)
	if err != nil {
		return err
	}
	if q.Password == "" {
		return nil
	}

	fmt.Print("Quiz password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	return app.CheckPassword(localID, string(password))
}

func init() {
	PublishCmd.Flags().BoolVar(&unpublish, "retract", false, "make the quiz private again")
}
