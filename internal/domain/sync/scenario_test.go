package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"quizshare/internal/domain/quiz"
	"quizshare/internal/domain/sync"
	"quizshare/internal/idgen"
	"quizshare/internal/infrastructure/storage/memory"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func newScenario(t *testing.T) (*sync.Service, *memory.Storage) {
	t.Helper()
	store := memory.New()
	log := slog.New(slog.NewTextHandler(discard{}, nil))
	svc := sync.NewService(store, &idgen.Sequential{Prefix: "gen"}, log, nil)
	return svc, store
}

func capitalsQuiz() quiz.Quiz {
	return quiz.Quiz{
		LocalID: "device-a-1",
		Title:   "Capitals",
		Questions: []quiz.Question{
			{Question: "Capital of France?", Options: []string{"Paris", "Rome", "Berlin"}, CorrectAnswer: "Paris"},
			{Question: "Capital of Italy?", Options: []string{"Paris", "Rome", "Berlin"}, CorrectAnswer: "Rome"},
		},
		Public:    true,
		Version:   1,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSyncFirstPublishAssignsStableID(t *testing.T) {
	svc, _ := newScenario(t)

	resp, err := svc.Sync(context.Background(), sync.SyncRequest{Quizzes: []quiz.Quiz{capitalsQuiz()}})
	require.NoError(t, err)

	require.Len(t, resp.Quizzes, 1)
	got := resp.Quizzes[0]
	assert.Equal(t, "Capitals", got.Title)
	assert.Equal(t, "gen-1", got.StableID)
	assert.Equal(t, 1, got.Version)
	assert.True(t, got.Public)
}

func TestSyncResubmitUnchangedIsIdempotent(t *testing.T) {
	svc, _ := newScenario(t)
	ctx := context.Background()

	_, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{capitalsQuiz()}})
	require.NoError(t, err)

	// The client resubmits the same quiz, still without a stable id. The
	// content match must adopt the existing identity instead of minting a
	// duplicate.
	resp, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{capitalsQuiz()}})
	require.NoError(t, err)

	require.Len(t, resp.Quizzes, 1)
	assert.Equal(t, "gen-1", resp.Quizzes[0].StableID)
	assert.Equal(t, 1, resp.Quizzes[0].Version)
}

func TestSyncEditReplacesSharedRecord(t *testing.T) {
	svc, _ := newScenario(t)
	ctx := context.Background()

	first, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{capitalsQuiz()}})
	require.NoError(t, err)
	stableID := first.Quizzes[0].StableID

	edited := capitalsQuiz()
	edited.StableID = stableID
	edited.Version = 2
	edited.Questions[1].Question = "Capital of Spain?"
	edited.Questions[1].CorrectAnswer = "Madrid"

	resp, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{edited}})
	require.NoError(t, err)

	require.Len(t, resp.Quizzes, 1)
	got := resp.Quizzes[0]
	assert.Equal(t, stableID, got.StableID)
	assert.Equal(t, "Capital of Spain?", got.Questions[1].Question)
	// The store owns its version counter: stored 1 + 1.
	assert.Equal(t, 2, got.Version)
}

func TestSyncPrivacyFlipRetractsRecord(t *testing.T) {
	svc, store := newScenario(t)
	ctx := context.Background()

	first, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{capitalsQuiz()}})
	require.NoError(t, err)
	stableID := first.Quizzes[0].StableID

	flipped := capitalsQuiz()
	flipped.StableID = stableID
	flipped.Public = false

	resp, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{flipped}})
	require.NoError(t, err)
	assert.Empty(t, resp.Quizzes)

	_, err = store.GetByStableID(ctx, stableID)
	assert.ErrorIs(t, err, sync.ErrNotFound)

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public.Quizzes)
}

func TestSyncPrivateQuizNeverStored(t *testing.T) {
	svc, store := newScenario(t)

	private := capitalsQuiz()
	private.Public = false

	resp, err := svc.Sync(context.Background(), sync.SyncRequest{Quizzes: []quiz.Quiz{private}})
	require.NoError(t, err)
	assert.Empty(t, resp.Quizzes)

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSyncSweepRemovesTransientPrivateRecords(t *testing.T) {
	svc, store := newScenario(t)
	ctx := context.Background()

	// A private record that slipped into the shared store through an
	// inconsistent write must be swept, never served.
	leaked := capitalsQuiz()
	leaked.StableID = "leaked-1"
	leaked.Public = false
	require.NoError(t, store.Insert(ctx, &leaked))

	resp, err := svc.Sync(ctx, sync.SyncRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Quizzes)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSyncResponseIsFullPublicSet(t *testing.T) {
	svc, _ := newScenario(t)
	ctx := context.Background()

	oceans := quiz.Quiz{
		LocalID: "device-b-1",
		Title:   "Oceans",
		Questions: []quiz.Question{
			{Question: "Largest ocean?", Options: []string{"Pacific", "Atlantic"}, CorrectAnswer: "Pacific"},
		},
		Public:    true,
		Version:   1,
		CreatedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	_, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{oceans}})
	require.NoError(t, err)

	// A different client syncing an unrelated quiz still receives both.
	resp, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{capitalsQuiz()}})
	require.NoError(t, err)
	assert.Len(t, resp.Quizzes, 2)
}

func TestCleanupCollapsesDuplicates(t *testing.T) {
	svc, store := newScenario(t)
	ctx := context.Background()

	// Two published copies of the same content under different identities,
	// as happens after a reinstall loses the stable id mapping.
	a := capitalsQuiz()
	a.StableID = "shared-old"
	a.Version = 1
	b := capitalsQuiz()
	b.LocalID = "device-b-9"
	b.StableID = "shared-new"
	b.Version = 3
	require.NoError(t, store.Insert(ctx, &a))
	require.NoError(t, store.Insert(ctx, &b))

	resp, err := svc.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Removed)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "shared-new", all[0].StableID)

	// Idempotent: a second pass removes nothing.
	again, err := svc.Cleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Removed)
}

func TestConcurrentSyncsSameKeyConverge(t *testing.T) {
	svc, store := newScenario(t)
	ctx := context.Background()

	base := capitalsQuiz()
	base.StableID = "shared-1"
	require.NoError(t, store.Insert(ctx, &base))

	done := make(chan error, 2)
	for i := 2; i <= 3; i++ {
		version := i
		go func() {
			edit := capitalsQuiz()
			edit.StableID = "shared-1"
			edit.Version = version
			_, err := svc.Sync(ctx, sync.SyncRequest{Quizzes: []quiz.Quiz{edit}})
			done <- err
		}()
	}
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	stored, err := store.GetByStableID(ctx, "shared-1")
	require.NoError(t, err)
	// Both writers went through the version guard; no lost update.
	assert.GreaterOrEqual(t, stored.Version, 2)
}
