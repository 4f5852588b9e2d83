package repository

import "fmt"

// Error wraps an unexpected store failure with the entity and operation it
// happened in. The original cause is preserved through Unwrap so callers can
// still reach driver-level errors with errors.As.
type Error struct {
	Entity string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("repository: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
