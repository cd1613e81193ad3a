package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizshare/internal/domain/quiz"
	"quizshare/internal/domain/sync"
)

func storedQuiz(stableID, title string, public bool, version int) *quiz.Quiz {
	return &quiz.Quiz{
		StableID: stableID,
		Title:    title,
		Public:   public,
		Version:  version,
		Questions: []quiz.Question{
			{Question: "q", CorrectAnswer: "a", Options: []string{"a", "b"}},
		},
	}
}

func TestStorage_InsertAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, storedQuiz("id-1", "First", true, 1)))

	got, err := s.GetByStableID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	_, err = s.GetByStableID(ctx, "missing")
	assert.ErrorIs(t, err, sync.ErrNotFound)
}

func TestStorage_InsertConflictOnExistingKey(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, storedQuiz("id-1", "First", true, 1)))
	err := s.Insert(ctx, storedQuiz("id-1", "Second", true, 1))
	assert.ErrorIs(t, err, sync.ErrVersionConflict)
}

func TestStorage_UpdateVersionGuard(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, storedQuiz("id-1", "First", true, 1)))

	err := s.Update(ctx, storedQuiz("id-1", "Stale", true, 2), 5)
	assert.ErrorIs(t, err, sync.ErrVersionConflict)

	require.NoError(t, s.Update(ctx, storedQuiz("id-1", "Fresh", true, 2), 1))

	got, err := s.GetByStableID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.Title)
	assert.Equal(t, 2, got.Version)
}

func TestStorage_ListPublicFiltersAndKeepsOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, storedQuiz("id-1", "First", true, 1)))
	require.NoError(t, s.Insert(ctx, storedQuiz("id-2", "Hidden", false, 1)))
	require.NoError(t, s.Insert(ctx, storedQuiz("id-3", "Third", true, 1)))

	public, err := s.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "First", public[0].Title)
	assert.Equal(t, "Third", public[1].Title)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStorage_Delete(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, storedQuiz("id-1", "First", true, 1)))

	found, err := s.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStorage_ReadsReturnCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, storedQuiz("id-1", "First", true, 1)))

	got, err := s.GetByStableID(ctx, "id-1")
	require.NoError(t, err)
	got.Title = "Mutated"
	got.Questions[0].Question = "mutated"

	again, err := s.GetByStableID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "First", again.Title)
	assert.Equal(t, "q", again.Questions[0].Question)
}
