package models

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists (e.g., duplicate slug)
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrNoFieldsToUpdate is returned when no fields are provided for an update
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrInvalidUUID is returned when a UUID is invalid
	ErrInvalidUUID = errors.New("invalid UUID")
)

// ErrorKind classifies a pipeline error so the HTTP layer can map it to a
// status code without string matching.
type ErrorKind int

const (
	// KindValidation is a rejected submission; nothing was written.
	KindValidation ErrorKind = iota
	// KindUnauthenticated means no usable principal was presented.
	KindUnauthenticated
	// KindForbidden means the principal is known but not allowed.
	KindForbidden
	// KindNotFound means the requested entity does not exist.
	KindNotFound
	// KindInternal is everything else.
	KindInternal
)

// PipelineError carries an ErrorKind alongside the message. Lookup
// degradations are deliberately NOT errors; they surface as nulls with a
// degraded flag on the resolved value.
type PipelineError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *PipelineError) Unwrap() error { return e.Err }

// NewValidationError builds a KindValidation error.
func NewValidationError(format string, args ...any) *PipelineError {
	return &PipelineError{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NewUnauthenticatedError builds a KindUnauthenticated error.
func NewUnauthenticatedError(msg string) *PipelineError {
	return &PipelineError{Kind: KindUnauthenticated, Msg: msg}
}

// NewForbiddenError builds a KindForbidden error.
func NewForbiddenError(msg string) *PipelineError {
	return &PipelineError{Kind: KindForbidden, Msg: msg}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(msg string, err error) *PipelineError {
	return &PipelineError{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the ErrorKind from an error chain. Plain errors and
// ErrNotFound map to KindInternal and KindNotFound respectively.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindInternal
}
