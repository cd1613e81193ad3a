package quiz

// Result is the outcome of a deduplication pass.
type Result struct {
	Survivors []Quiz
	Removed   []Quiz
}

// Deduplicate walks a collection, partitions it into equivalence classes and
// collapses each class to its winner under the precedence rule.
//
// The operation is idempotent: running it again on its own survivors yields
// the same survivors and an empty removed list.
func Deduplicate(quizzes []Quiz, threshold float64) Result {
	var res Result
	for _, class := range Classes(quizzes, threshold) {
		winner := class[0]
		for _, member := range class[1:] {
			w, displaced := Prefer(winner, member)
			winner = w
			res.Removed = append(res.Removed, displaced)
		}
		res.Survivors = append(res.Survivors, winner)
	}
	return res
}
