package engine

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the engine. Callers branch with errors.Is.
var (
	// ErrInvalidInput marks inputs the engine refuses to score rather than
	// silently defaulting, e.g. an incident with zero linked articles.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict marks a lost insert race or a duplicate analysis result.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a missing incident, source or user.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable wraps I/O failures from the backing store. The
	// engine never retries these; retry policy belongs to the store layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictErr(err error) error {
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
