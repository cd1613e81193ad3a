package quiz

// Similarity thresholds. DefaultThreshold applies to server-side
// deduplication passes. MergeThreshold is the looser bound used when
// cross-referencing fetched shared data against a local collection, where
// cross-device text may differ slightly in punctuation.
const (
	DefaultThreshold = 0.8
	MergeThreshold   = 0.7
)

// Match estimates whether two quizzes represent the same logical quiz via
// question overlap, returning the similarity score and the verdict at the
// given threshold.
//
// It only makes sense for pairs that were not already resolved by identifier
// or fingerprint. Quizzes whose question counts differ by more than one are
// never a match. A question in a counts as matched when b still has an
// unconsumed question with equal normalized text or equal normalized correct
// answer; each question in b is consumed at most once.
func Match(a, b Quiz, threshold float64) (float64, bool) {
	diff := len(a.Questions) - len(b.Questions)
	if diff > 1 || diff < -1 {
		return 0, false
	}

	shorter := len(a.Questions)
	if len(b.Questions) < shorter {
		shorter = len(b.Questions)
	}
	if shorter == 0 {
		// Nothing to compare question-wise; same-length empty quizzes are
		// indistinguishable by content.
		return 1, true
	}

	used := make([]bool, len(b.Questions))
	matches := 0
	for _, qa := range a.Questions {
		text := Normalize(qa.Question)
		answer := Normalize(qa.CorrectAnswer)
		for j, qb := range b.Questions {
			if used[j] {
				continue
			}
			if (text != "" && Normalize(qb.Question) == text) ||
				(answer != "" && Normalize(qb.CorrectAnswer) == answer) {
				used[j] = true
				matches++
				break
			}
		}
	}

	score := float64(matches) / float64(shorter)
	return score, float64(matches) >= threshold*float64(shorter)
}
