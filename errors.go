package reactive

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectMutation is matched by every DirectMutationError.
	ErrDirectMutation = errors.New("reactive: direct assignment is not allowed")
	// ErrUnregisteredField is matched by every UnregisteredFieldError.
	ErrUnregisteredField = errors.New("reactive: field is not watched")
	// ErrGuardRejected reports a guard that evaluated to false.
	ErrGuardRejected = errors.New("reactive: guard rejected update")

	ErrNilClass           = errors.New("reactive: class is nil")
	ErrNotInitialized     = errors.New("reactive: module not initialized")
	ErrAlreadyInitialized = errors.New("reactive: module already initialized")
)

// DirectMutationError is returned whenever code tries to write a watched
// field without going through Update.
type DirectMutationError struct {
	Class string
	Field string
}

func (e *DirectMutationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("reactive: direct assignment to %q is not allowed. Use Update(...) instead", e.Field)
}

func (e *DirectMutationError) Unwrap() error {
	return ErrDirectMutation
}

// UnregisteredFieldError names a key that was never declared on the class.
type UnregisteredFieldError struct {
	Class string
	Field string
}

func (e *UnregisteredFieldError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("reactive: field %q is not watched by class %s", e.Field, describeClassName(e.Class))
}

func (e *UnregisteredFieldError) Unwrap() error {
	return ErrUnregisteredField
}

// GuardError reports a guard that rejected a proposed update. Err is either
// ErrGuardRejected or the evaluation failure.
type GuardError struct {
	Class string
	Expr  string
	Err   error
}

func (e *GuardError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("reactive: guard %s on class %s: %v", describeExpression(e.Expr), describeClassName(e.Class), e.Err)
}

func (e *GuardError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeClassName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}
