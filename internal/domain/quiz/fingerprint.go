package quiz

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Domain prefix for quiz content fingerprints. The version suffix allows the
// algorithm to change without old and new fingerprints colliding.
const fingerprintDomain = "quizshare/quiz/v1"

// Normalize prepares a display string for comparison: lowercased, trimmed,
// inner whitespace collapsed to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Fingerprint computes a stable content signature for a quiz.
//
// Two quizzes with equal fingerprints are treated as content-identical
// regardless of their identifiers. The signature is independent of question
// order and of option order within a question: options are sorted after
// normalization, and the per-question tuples are sorted by normalized
// question text before hashing.
func Fingerprint(q Quiz) string {
	tuples := make([]string, 0, len(q.Questions))
	for _, qu := range q.Questions {
		opts := make([]string, len(qu.Options))
		for i, o := range qu.Options {
			opts[i] = Normalize(o)
		}
		sort.Strings(opts)

		tuples = append(tuples, strings.Join([]string{
			Normalize(qu.Question),
			strings.Join(opts, ";"),
			Normalize(qu.CorrectAnswer),
		}, "|"))
	}
	// Tuples start with the normalized question text, so a plain string sort
	// orders them by question text.
	sort.Strings(tuples)

	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0x00}) // null separator avoids boundary ambiguity
	}

	write(fingerprintDomain)
	write(Normalize(q.Title))
	write(strconv.Itoa(len(q.Questions)))
	for _, t := range tuples {
		write(t)
	}

	return hex.EncodeToString(h.Sum(nil))
}
