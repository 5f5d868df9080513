package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for schema violations. Each *Error wraps exactly one of these.
var (
	ErrDuplicateName   = errors.New("duplicate screen name")
	ErrUnknownChild    = errors.New("child is not declared")
	ErrSelfChild       = errors.New("screen declares itself as a child")
	ErrUnknownParent   = errors.New("parent is not declared")
	ErrParentMismatch  = errors.New("parent and children disagree")
	ErrCycle           = errors.New("cycle in parent chain")
	ErrSingleton       = errors.New("reserved screen must be declared exactly once")
	ErrInitialPosition = errors.New("initial screen is out of position")
	ErrLocatorNotFound = errors.New("resource not found")
	ErrEmptyName       = errors.New("screen name is empty")
	ErrMissingFactory  = errors.New("screen is missing a factory")
)

// Error is a construction-time schema failure. It is always fatal to the build.
type Error struct {
	Op     string // Check that failed (e.g., "validate_unique", "resolve")
	Screen string // Offending screen, if any
	Detail string // Human readable context
	Err    error  // One of the Err* sentinels, or a resolver error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("schema: %s", e.Op)
	if e.Screen != "" {
		msg += fmt.Sprintf(": screen %q", e.Screen)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, screen string, err error, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Op: op, Screen: screen, Err: err, Detail: detail}
}

// IsSchemaError checks if an error is a schema construction error.
func IsSchemaError(err error) bool {
	var schemaErr *Error
	return errors.As(err, &schemaErr)
}
