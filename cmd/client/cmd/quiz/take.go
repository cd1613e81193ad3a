// cmd/client/cmd/quiz/take.go
package quiz

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quizshare/internal/app/client"
)

var TakeCmd = &cobra.Command{
	Use:   "take <quiz-id>",
	Short: "Take a quiz",
	Long: `Run through a quiz question by question and record the attempt in
the quiz history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := client.FromContext(cmd.Context())
		if app == nil {
			return fmt.Errorf("application is not initialized")
		}

		q, err := app.GetQuiz(args[0])
		if err != nil {
			return err
		}
		if len(q.Questions) == 0 {
			return fmt.Errorf("quiz has no questions")
		}

		fmt.Printf("=== %s ===\n", q.Title)
		if q.Description != "" {
			fmt.Println(q.Description)
		}
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		score := 0

		for i, question := range q.Questions {
			fmt.Printf("%d. %s\n", i+1, question.Question)
			for j, option := range question.Options {
				fmt.Printf("   %d) %s\n", j+1, option)
			}
			fmt.Print("Your answer: ")

			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			answer := strings.TrimSpace(line)

			// Accept either the option number or the answer text.
			if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(question.Options) {
				answer = question.Options[n-1]
			}

			if strings.EqualFold(answer, question.CorrectAnswer) {
				color.Green("✓ Correct")
				score++
			} else {
				color.Red("✗ Wrong, the answer is: %s", question.CorrectAnswer)
				if question.AnswerDescription != "" {
					fmt.Println("  " + question.AnswerDescription)
				}
			}
			fmt.Println()
		}

		fmt.Printf("Result: %d/%d\n", score, len(q.Questions))

		if err := app.RecordAttempt(q.LocalID, score, len(q.Questions)); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}

		return nil
	},
}
