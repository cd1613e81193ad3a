package client

import (
	"quizshare/internal/domain/quiz"
)

// Storage is the local quiz collection, keyed by local id.
type Storage interface {
	SaveQuiz(q *quiz.Quiz) error
	GetQuiz(localID string) (*quiz.Quiz, error)
	ListQuizzes() ([]quiz.Quiz, error)
	DeleteQuiz(localID string) error
	CountQuizzes() (int, error)
	Close() error
}
