// cmd/client/cmd/init.go
package cmd

import (
	"quizshare/cmd/client/cmd/quiz"
	"quizshare/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(quiz.QuizCmd)
	quiz.QuizCmd.AddCommand(quiz.CreateCmd)
	quiz.QuizCmd.AddCommand(quiz.ListCmd)
	quiz.QuizCmd.AddCommand(quiz.PublishCmd)
	quiz.QuizCmd.AddCommand(quiz.DeleteCmd)
	quiz.QuizCmd.AddCommand(quiz.TakeCmd)
	quiz.QuizCmd.AddCommand(quiz.ProtectCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
