package sync

import (
	"context"

	"quizshare/internal/domain/quiz"
)

// Repository is the storage capability the reconciler consumes. Backends
// differ only in how they persist records (in-memory map, relational table);
// all must key the shared collection by stable id and enforce the
// version-guarded write contract.
type Repository interface {
	// List returns every shared record, including transiently private ones
	// awaiting the purge sweep.
	List(ctx context.Context) ([]quiz.Quiz, error)

	// ListPublic returns the servable public set.
	ListPublic(ctx context.Context) ([]quiz.Quiz, error)

	// GetByStableID returns the record under the id or ErrNotFound.
	GetByStableID(ctx context.Context, stableID string) (*quiz.Quiz, error)

	// Insert stores a new record. A concurrent insert under the same stable
	// id surfaces as ErrVersionConflict so the caller can re-read and retry.
	Insert(ctx context.Context, q *quiz.Quiz) error

	// Update replaces the record under q.StableID only if its stored version
	// still equals expectedVersion; otherwise ErrVersionConflict.
	Update(ctx context.Context, q *quiz.Quiz, expectedVersion int) error

	// Delete removes the record under the id, reporting whether it existed.
	// Absence is not an error.
	Delete(ctx context.Context, stableID string) (bool, error)
}
