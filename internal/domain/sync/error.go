package sync

import "errors"

var (
	// ErrNotFound signals that no shared record exists under a stable id.
	// Lookup misses are a normal outcome; callers branch on it rather than
	// failing.
	ErrNotFound = errors.New("quiz not found")

	// ErrVersionConflict signals that a version-guarded write lost a race
	// with a concurrent writer. The reconciler retries a bounded number of
	// times before surfacing it as a storage failure.
	ErrVersionConflict = errors.New("quiz version conflict")
)
