package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreferHigherVersionWins(t *testing.T) {
	a := testQuiz("Capitals", q("Capital of France?", "Paris"))
	a.Version = 3
	b := testQuiz("Capitals", q("Capital of France?", "Paris"))
	b.Version = 5

	winner, displaced := Prefer(a, b)
	assert.Equal(t, 5, winner.Version)
	assert.Equal(t, 3, displaced.Version)
}

func TestPreferLaterCreationBreaksVersionTie(t *testing.T) {
	a := testQuiz("Capitals", q("Capital of France?", "Paris"))
	a.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := testQuiz("Capitals", q("Capital of France?", "Paris"))
	b.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	winner, _ := Prefer(a, b)
	assert.Equal(t, b.CreatedAt, winner.CreatedAt)
}

func TestPreferFallsBackToCreatedAtWhenVersionMissing(t *testing.T) {
	a := testQuiz("Capitals", q("Capital of France?", "Paris"))
	a.Version = 9
	a.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := testQuiz("Capitals", q("Capital of France?", "Paris"))
	b.Version = 0 // undefined
	b.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Only one version defined, so the version rule does not apply.
	winner, _ := Prefer(a, b)
	assert.Equal(t, b.CreatedAt, winner.CreatedAt)
}

func TestPreferFirstSeenDefault(t *testing.T) {
	a := Quiz{LocalID: "a", Title: "Capitals"}
	b := Quiz{LocalID: "b", Title: "Capitals"}

	winner, _ := Prefer(a, b)
	assert.Equal(t, "a", winner.LocalID)
}

func TestPreferCommutativeWinner(t *testing.T) {
	tests := []struct {
		name string
		a, b Quiz
	}{
		{
			name: "by version",
			a:    Quiz{LocalID: "a", Version: 2},
			b:    Quiz{LocalID: "b", Version: 4},
		},
		{
			name: "by created at",
			a:    Quiz{LocalID: "a", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			b:    Quiz{LocalID: "b", CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "version over timestamp",
			a:    Quiz{LocalID: "a", Version: 7, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			b:    Quiz{LocalID: "b", Version: 2, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w1, _ := Prefer(tt.a, tt.b)
			w2, _ := Prefer(tt.b, tt.a)
			assert.Equal(t, w1.LocalID, w2.LocalID)
		})
	}
}

func TestPreferFoldOrderIndependent(t *testing.T) {
	mk := func(id string, version int) Quiz {
		return Quiz{LocalID: id, Version: version, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	}
	members := []Quiz{mk("a", 2), mk("b", 5), mk("c", 1), mk("d", 4)}

	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
	}
	for _, order := range orders {
		winner := members[order[0]]
		for _, i := range order[1:] {
			winner, _ = Prefer(winner, members[i])
		}
		assert.Equal(t, "b", winner.LocalID)
	}
}
