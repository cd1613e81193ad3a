package quiz

import (
	"github.com/spf13/cobra"
)

// QuizCmd is the parent command for quiz operations.
var QuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Manage quizzes",
	Long:  `Create, list, publish, take and delete quizzes.`,
}
