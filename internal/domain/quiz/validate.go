package quiz

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed quiz record. A malformed item is
// dropped from the batch it arrived in; it is never fatal to the batch.
type ValidationError struct {
	LocalID string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid quiz %q: bad fields: %s", e.LocalID, strings.Join(e.Fields, ", "))
}

// Validate checks the minimal wire contract for a quiz record. Well-formed
// records never fail anywhere else in the engine.
func Validate(q Quiz) error {
	var fields []string
	if strings.TrimSpace(q.Title) == "" {
		fields = append(fields, "title")
	}
	if q.Questions == nil {
		fields = append(fields, "questions")
	}
	if q.Version < 0 {
		fields = append(fields, "version")
	}
	if len(fields) > 0 {
		return &ValidationError{LocalID: q.LocalID, Fields: fields}
	}
	return nil
}
