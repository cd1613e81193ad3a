// cmd/client/cmd/quiz/protect.go
package quiz

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quizshare/internal/app/client"
)

var ProtectCmd = &cobra.Command{
	Use:   "protect <quiz-id>",
	Short: "Password-protect a quiz",
	Long: `Set a password on a quiz. Publishing, retracting and deleting the
quiz then require the password. Only a hash is stored.`,
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

		fmt.Print("New password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Print("Repeat password: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if string(password) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}
		if len(password) < 4 {
			return fmt.Errorf("password must be at least 4 characters")
		}

		if err := app.SetPassword(localID, string(password)); err != nil {
			return fmt.Errorf("failed to set password: %w", err)
		}

		color.Green("✓ Quiz is now password-protected")
		return nil
	},
}
