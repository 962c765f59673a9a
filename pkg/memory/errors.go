package memory

import "fmt"

// ValidationError indicates a request the caller can correct: a category
// outside the closed set, a malformed key, or an invalid line range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Reason
	}

	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
