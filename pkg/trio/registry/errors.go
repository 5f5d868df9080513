package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry state violations.
var (
	ErrNotRegistered    = errors.New("screen is not declared in the schema")
	ErrAlreadyCreated   = errors.New("screen already exists")
	ErrNotCreated       = errors.New("screen does not exist")
	ErrSequenceConsumed = errors.New("progress sequence already consumed")
	ErrNilObject        = errors.New("factory returned nil")
	ErrNotAttached      = errors.New("view is not attached there")
	ErrAlreadyAttached  = errors.New("view is already attached")
)

// StateError is an operation-time failure: the registry was asked to do
// something its current state does not allow. It is fatal to the operation.
type StateError struct {
	Op     string // Operation that failed (e.g., "create_subtree", "recreate")
	Screen string // Screen the failing step concerned
	Err    error  // One of the Err* sentinels
}

func (e *StateError) Error() string {
	if e.Screen != "" {
		return fmt.Sprintf("registry: %s: screen %q: %v", e.Op, e.Screen, e.Err)
	}
	return fmt.Sprintf("registry: %s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

func stateError(op, screen string, err error) *StateError {
	return &StateError{Op: op, Screen: screen, Err: err}
}

// IsStateError checks if an error is a registry state error.
func IsStateError(err error) bool {
	var stateErr *StateError
	return errors.As(err, &stateErr)
}
