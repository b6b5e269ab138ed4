package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks requests rejected before any I/O.
	ErrInput = errors.New("invalid input")
	// ErrPrecondition marks renumbering requests that would leave an episode below the floor.
	ErrPrecondition = errors.New("precondition failed")
	// ErrCancelled marks scans aborted through their context.
	ErrCancelled = errors.New("operation cancelled")
	// ErrNotFound marks metadata lookups with no match.
	ErrNotFound = errors.New("not found")
)

// InputError wraps a human message as an ErrInput.
func InputError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, args...))
}

// PreconditionError reports the minimum episode that blocked a renumber.
type PreconditionError struct {
	Minimum int
	Delta   int
	Floor   int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot adjust episode numbers by %d: minimum episode number is E%02d, which would drop below E%02d",
		e.Delta, e.Minimum, e.Floor)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }
