package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrProgressConflict is returned when the request ends while its
	// progress update is still losing to concurrent completions.
	ErrProgressConflict = errors.New("progress was updated concurrently, try again")
)

// ValidationError reports a required request field that is missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

func Required(field string) error {
	return &ValidationError{Field: field}
}
