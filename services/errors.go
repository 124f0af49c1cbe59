package services

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing project, version, estimate or calc run.
// The failing identifier is part of the message so callers can act on it
// without consulting logs.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// InvalidTransitionError reports an estimate state machine precondition
// violation. It names both the attempted action and the status the record
// was actually in.
type InvalidTransitionError struct {
	Action string
	Status string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s estimate: current status is %q", e.Action, e.Status)
}

// ValidationError reports malformed or missing input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInvalidTransition reports whether err is (or wraps) an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var it *InvalidTransitionError
	return errors.As(err, &it)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
