package sync

import (
	"encoding/json"
	"errors"

	"quizshare/internal/domain/quiz"
)

// SyncRequest is a batch of quiz records submitted by a client. The batch
// may mix public and private records; private members drive the purge step
// and are never stored.
type SyncRequest struct {
	Quizzes []quiz.Quiz `json:"quizzes"`

	// Malformed collects batch items that could not be decoded at all, such
	// as a non-array questions field. Populated during unmarshaling and
	// reported alongside validation failures; never serialized back.
	Malformed []RejectedQuiz `json:"-"`
}

// UnmarshalJSON decodes the batch item by item. One undecodable item lands
// in Malformed instead of failing the whole call; an unreadable envelope
// still fails.
func (r *SyncRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Quizzes []json.RawMessage `json:"quizzes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Quizzes = nil
	r.Malformed = nil
	for _, item := range raw.Quizzes {
		var q quiz.Quiz
		if err := json.Unmarshal(item, &q); err != nil {
			r.Malformed = append(r.Malformed, rejectItem(item, err))
			continue
		}
		r.Quizzes = append(r.Quizzes, q)
	}
	return nil
}

func rejectItem(item json.RawMessage, err error) RejectedQuiz {
	// Best effort: the localId may be unreadable too.
	var ident struct {
		LocalID string `json:"localId"`
	}
	_ = json.Unmarshal(item, &ident)

	fields := []string{"payload"}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields = []string{typeErr.Field}
	}
	return RejectedQuiz{LocalID: ident.LocalID, Fields: fields}
}

// RejectedQuiz reports one malformed batch item that was dropped.
type RejectedQuiz struct {
	LocalID string   `json:"localId"`
	Fields  []string `json:"fields"`
}

// SyncResponse returns the full current public set. Callers must not assume
// it is limited to the submitted batch.
type SyncResponse struct {
	Status   string         `json:"status"`
	Error    string         `json:"error,omitempty"`
	Quizzes  []quiz.Quiz    `json:"quizzes"`
	Rejected []RejectedQuiz `json:"rejected,omitempty"`
}

// ListResponse is the fetch-public payload, identical in shape to the sync
// response body.
type ListResponse struct {
	Status  string      `json:"status"`
	Error   string      `json:"error,omitempty"`
	Quizzes []quiz.Quiz `json:"quizzes"`
}

// DeleteResponse reports a delete-by-identifier outcome.
type DeleteResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Found  bool   `json:"found"`
}

// CleanupResponse reports the count removed by a maintenance pass.
type CleanupResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Removed int    `json:"removed"`
}
