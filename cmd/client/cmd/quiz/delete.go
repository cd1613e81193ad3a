// cmd/client/cmd/quiz/delete.go
package quiz

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quizshare/internal/app/client"
)

var deleteShared bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <quiz-id>",
	Short: "Delete a quiz",
	Long: `Delete a quiz from the local collection.

With --shared the published copy is retracted from the server as well.`,
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

		if err := app.DeleteQuiz(cmd.Context(), localID, deleteShared); err != nil {
			return fmt.Errorf("failed to delete quiz: %w", err)
		}

		color.Green("✓ Quiz deleted")
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVar(&deleteShared, "shared", false, "also retract the shared copy from the server")
}
