package sync

import (
	"quizshare/internal/domain/sync"
)

// syncInput takes the raw body so one undecodable batch item cannot fail
// schema validation for the whole call; sync.SyncRequest decodes the batch
// item by item.
type syncInput struct {
	RawBody []byte
}

type syncOutput struct {
	Body sync.SyncResponse
}

type cleanupInput struct {
}

type cleanupOutput struct {
	Body sync.CleanupResponse
}
