package engine

import "fmt"

// ValidationError indicates a target field that cannot be accepted.
// It is returned before any state is mutated or persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
