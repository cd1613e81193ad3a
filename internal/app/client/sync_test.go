package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizshare/internal/domain/quiz"
	"quizshare/internal/idgen"
)

func mkQuiz(localID, stableID, title string, version int) quiz.Quiz {
	return quiz.Quiz{
		LocalID:  localID,
		StableID: stableID,
		Title:    title,
		Questions: []quiz.Question{
			{Question: "capital of France?", CorrectAnswer: "Paris", Options: []string{"Paris", "Lyon"}},
		},
		Public:    stableID != "",
		Version:   version,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMergeCollections_RemoteOnlyGetsLocalID(t *testing.T) {
	remote := []quiz.Quiz{mkQuiz("", "shared-1", "Capitals", 1)}

	merged, removed := mergeCollections(nil, remote, &idgen.Sequential{Prefix: "local"})

	require.Len(t, merged, 1)
	assert.Empty(t, removed)
	assert.Equal(t, "local-1", merged[0].LocalID)
	assert.Equal(t, "shared-1", merged[0].StableID)
}

func TestMergeCollections_RemoteEditReplacesLocalCopy(t *testing.T) {
	local := mkQuiz("loc-1", "shared-1", "Capitals", 1)
	local.History = []quiz.Attempt{{Score: 3, Total: 5}}
	taken := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	local.LastTaken = &taken
	local.Password = "hash"

	remote := mkQuiz("", "shared-1", "Capitals of Europe", 2)

	merged, removed := mergeCollections([]quiz.Quiz{local}, []quiz.Quiz{remote}, &idgen.Sequential{Prefix: "local"})

	require.Len(t, merged, 1)
	assert.Empty(t, removed)

	out := merged[0]
	assert.Equal(t, "Capitals of Europe", out.Title, "higher version must win")
	assert.Equal(t, "loc-1", out.LocalID, "winner keeps the local identity")
	assert.Equal(t, []quiz.Attempt{{Score: 3, Total: 5}}, out.History, "attempt history must survive the merge")
	require.NotNil(t, out.LastTaken)
	assert.True(t, out.LastTaken.Equal(taken))
	assert.Equal(t, "hash", out.Password)
}

func TestMergeCollections_IgnoresForeignLocalID(t *testing.T) {
	// The server echoes the localId of whichever device uploaded a quiz.
	// A newer remote copy may therefore carry another device's id, and the
	// merge must keep this device's record under its own id regardless.
	local := mkQuiz("loc-1", "shared-1", "Capitals", 1)
	remote := mkQuiz("device-b-7", "shared-1", "Capitals of Europe", 2)

	merged, removed := mergeCollections([]quiz.Quiz{local}, []quiz.Quiz{remote}, &idgen.Sequential{Prefix: "local"})

	require.Len(t, merged, 1)
	assert.Empty(t, removed)
	assert.Equal(t, "loc-1", merged[0].LocalID, "remote copy must not re-key the local record")
	assert.Equal(t, "Capitals of Europe", merged[0].Title, "remote content still wins on version")
}

func TestMergeCollections_LocalWinsOverStaleRemote(t *testing.T) {
	local := mkQuiz("loc-1", "shared-1", "Capitals v2", 2)
	remote := mkQuiz("", "shared-1", "Capitals", 1)

	merged, _ := mergeCollections([]quiz.Quiz{local}, []quiz.Quiz{remote}, &idgen.Sequential{Prefix: "local"})

	require.Len(t, merged, 1)
	assert.Equal(t, "Capitals v2", merged[0].Title)
}

func TestMergeCollections_PrivateLocalUntouched(t *testing.T) {
	private := mkQuiz("loc-1", "", "My drafts", 0)
	private.Public = false

	remote := mkQuiz("", "shared-9", "Chemistry", 1)
	remote.Questions = []quiz.Question{
		{Question: "symbol for gold?", CorrectAnswer: "Au", Options: []string{"Au", "Ag"}},
	}

	merged, removed := mergeCollections([]quiz.Quiz{private}, []quiz.Quiz{remote}, &idgen.Sequential{Prefix: "local"})

	require.Len(t, merged, 2)
	assert.Empty(t, removed)
	assert.Equal(t, "My drafts", merged[0].Title)
	assert.Equal(t, "loc-1", merged[0].LocalID)
	assert.False(t, merged[0].Public)
}

func TestMergeCollections_LocalDuplicatesCollapse(t *testing.T) {
	a := mkQuiz("loc-1", "shared-1", "Capitals", 1)
	b := mkQuiz("loc-2", "shared-1", "Capitals", 1)
	b.History = []quiz.Attempt{{Score: 4, Total: 5}, {Score: 5, Total: 5}}

	remote := mkQuiz("", "shared-1", "Capitals", 1)

	merged, removed := mergeCollections([]quiz.Quiz{a, b}, []quiz.Quiz{remote}, &idgen.Sequential{Prefix: "local"})

	require.Len(t, merged, 1)
	assert.Equal(t, []string{"loc-2"}, removed)
	assert.Equal(t, "loc-1", merged[0].LocalID)
	assert.Len(t, merged[0].History, 2, "richest history from any class member survives")
}

func TestMergeCollections_SimilarityMergesUnlabeledCopies(t *testing.T) {
	// Same title, same single question: the content tiers collapse the pair
	// even though neither side carries the other's identifiers.
	local := mkQuiz("loc-1", "", "Capitals", 0)
	local.Public = true
	remote := mkQuiz("", "shared-1", "Capitals", 1)

	merged, _ := mergeCollections([]quiz.Quiz{local}, []quiz.Quiz{remote}, &idgen.Sequential{Prefix: "local"})

	require.Len(t, merged, 1)
	assert.Equal(t, "shared-1", merged[0].StableID, "local copy adopts the shared identity")
	assert.Equal(t, "loc-1", merged[0].LocalID)
}

func TestMergeCollections_Idempotent(t *testing.T) {
	local := []quiz.Quiz{
		mkQuiz("loc-1", "shared-1", "Capitals", 1),
		mkQuiz("loc-2", "", "My drafts", 0),
	}
	remote := []quiz.Quiz{mkQuiz("", "shared-1", "Capitals", 1)}

	once, _ := mergeCollections(local, remote, &idgen.Sequential{Prefix: "a"})
	twice, removed := mergeCollections(once, remote, &idgen.Sequential{Prefix: "b"})

	assert.Empty(t, removed)
	assert.Equal(t, once, twice)
}
