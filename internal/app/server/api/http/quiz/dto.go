package quiz

import (
	"quizshare/internal/domain/sync"
)

type listInput struct {
}

type listOutput struct {
	Body sync.ListResponse
}

type deleteInput struct {
	StableID string `path:"stableId"`
}

type deleteOutput struct {
	Body sync.DeleteResponse
}
