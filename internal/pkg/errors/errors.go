package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict marks an operation that does not fit the current state.
	ErrConflict = errors.New("conflict")
	// ErrPersist marks a mutation that was applied in memory but could not be saved.
	ErrPersist = errors.New("persist failed")
)
