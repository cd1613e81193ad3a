// cmd/client/cmd/quiz/create.go
package quiz

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quizshare/internal/app/client"
	quizdomain "quizshare/internal/domain/quiz"
)

var (
	createTitle       string
	createDescription string
	createCategory    string
	createTimer       int
	questionsFile     string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new quiz",
	Long: `Create a new quiz in the local collection.

Questions are read from a JSON file: an array of objects with "question",
"options", "correctAnswer" and optional "answerDescription" fields. The quiz
stays private until published.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := client.FromContext(cmd.Context())
		if app == nil {
			return fmt.Errorf("application is not initialized")
		}

		if createTitle == "" {
			return fmt.Errorf("--title is required")
		}
		if questionsFile == "" {
			return fmt.Errorf("--questions is required")
		}

		data, err := os.ReadFile(questionsFile)
		if err != nil {
			return fmt.Errorf("failed to read questions file: %w", err)
		}

		var questions []quizdomain.Question
		if err := json.Unmarshal(data, &questions); err != nil {
			return fmt.Errorf("failed to parse questions file: %w", err)
		}

		q, err := app.CreateQuiz(createTitle, createDescription, createCategory, createTimer, questions)
		if err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		color.Green("✓ Quiz created")
		fmt.Printf("ID: %s\n", q.LocalID)
		fmt.Printf("Questions: %d\n", len(q.Questions))
		fmt.Println()
		fmt.Println("Publish it with: quizshare quiz publish " + q.LocalID)

		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "quiz title")
	CreateCmd.Flags().StringVarP(&createDescription, "description", "d", "", "quiz description")
	CreateCmd.Flags().StringVarP(&createCategory, "category", "c", "", "quiz category")
	CreateCmd.Flags().IntVar(&createTimer, "timer", 0, "timer in seconds, 0 for none")
	CreateCmd.Flags().StringVarP(&questionsFile, "questions", "q", "", "path to questions JSON file")
}
