package subject

import (
	"errors"
	"fmt"
)

// Errors shared by every subject source.
var (
	// ErrMalformed indicates a source document or stored record is
	// structurally invalid.
	ErrMalformed = errors.New("malformed subject data")

	// ErrSourceUnavailable indicates a transport or database failure.
	ErrSourceUnavailable = errors.New("subject source unavailable")
)

// NotFoundError indicates a source has no record for a requested subject ID.
type NotFoundError struct {
	ID     int
	Source string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("subject %d not found in %s", e.ID, e.Source)
}

// IsNotFound returns true if the error indicates a missing subject.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
