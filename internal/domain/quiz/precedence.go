package quiz

// FirstWins reports whether, of two copies of the same logical quiz, the
// first one is the copy to retain.
//
// Comparison order: a strictly greater defined version wins; otherwise a
// strictly later creation timestamp wins when both are set; otherwise the
// first copy is retained. The rule always resolves to exactly one winner,
// and folding it across an n-way equivalence class converges to the same
// global winner in any order: maximal version, tie-broken by CreatedAt,
// tie-broken by first-seen.
func FirstWins(a, b Quiz) bool {
	if a.Version > 0 && b.Version > 0 {
		if a.Version != b.Version {
			return a.Version > b.Version
		}
	}
	if !a.CreatedAt.IsZero() && !b.CreatedAt.IsZero() {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return true
}

// Prefer returns the copy to retain and the copy it displaces.
func Prefer(a, b Quiz) (winner, displaced Quiz) {
	if FirstWins(a, b) {
		return a, b
	}
	return b, a
}
