package quiz

import (
	"time"
)

// Question is a single quiz question. Option order matters for display
// but never for content comparisons.
type Question struct {
	Question          string   `json:"question"`
	AnswerDescription string   `json:"answerDescription"`
	Options           []string `json:"options"`
	CorrectAnswer     string   `json:"correctAnswer"`
	QuestionImages    []string `json:"questionImages"`
	AnswerImages      []string `json:"answerImages"`
}

// Attempt is one recorded run through a quiz. Attempts are opaque to the
// reconciliation engine and must ride along untouched on whichever copy wins.
type Attempt struct {
	TakenAt time.Time `json:"takenAt"`
	Score   int       `json:"score"`
	Total   int       `json:"total"`
}

// Quiz is the central entity.
//
// LocalID is assigned on the device that created the quiz and is stable for
// the life of the record on that device. StableID is assigned only once a
// quiz becomes public and is the cross-device join key; a quiz without one
// is local-only and never matched by identity on the server side.
type Quiz struct {
	LocalID      string     `json:"localId"`
	StableID     string     `json:"stableId,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Questions    []Question `json:"questions"`
	TimerSeconds int        `json:"timerSeconds"`
	Category     string     `json:"category"`
	Public       bool       `json:"visibility"`
	Version      int        `json:"version,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastTaken    *time.Time `json:"lastTaken,omitempty"`
	Password     string     `json:"password,omitempty"`
	History      []Attempt  `json:"history,omitempty"`
}

// Clone returns a deep copy of the quiz.
func (q *Quiz) Clone() *Quiz {
	cp := *q

	cp.Questions = make([]Question, len(q.Questions))
	for i, qu := range q.Questions {
		cp.Questions[i] = Question{
			Question:          qu.Question,
			AnswerDescription: qu.AnswerDescription,
			Options:           append([]string(nil), qu.Options...),
			CorrectAnswer:     qu.CorrectAnswer,
			QuestionImages:    append([]string(nil), qu.QuestionImages...),
			AnswerImages:      append([]string(nil), qu.AnswerImages...),
		}
	}

	if q.History != nil {
		cp.History = append([]Attempt(nil), q.History...)
	}
	if q.LastTaken != nil {
		t := *q.LastTaken
		cp.LastTaken = &t
	}

	return &cp
}

// RecordAttempt appends an attempt to the quiz history and stamps LastTaken.
func (q *Quiz) RecordAttempt(a Attempt) {
	q.History = append(q.History, a)
	t := a.TakenAt
	q.LastTaken = &t
}
