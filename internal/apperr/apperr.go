// Package apperr defines the closed set of failure reasons returned by the
// BookMarkBrain services. Handlers map each Kind onto an HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

// Kind names a failure reason.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindAlreadyExists     Kind = "already_exists"
	KindAlreadyLinked     Kind = "already_linked"
	KindCircularReference Kind = "circular_reference"
	KindValidation        Kind = "validation"
	KindInUse             Kind = "in_use"
	KindStore             Kind = "store"
)

// Error is a domain error carrying a Kind and a human readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindStore {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying store error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a missing or soft-deleted entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists reports a clash with a unique name.
func AlreadyExists(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// AlreadyLinked reports an association that is already live.
func AlreadyLinked(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyLinked, Message: fmt.Sprintf(format, args...)}
}

// Circular reports a parent change that would create a cycle.
func Circular(format string, args ...any) *Error {
	return &Error{Kind: KindCircularReference, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or structurally invalid input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// InUse reports an entity that cannot be removed while referenced.
func InUse(format string, args ...any) *Error {
	return &Error{Kind: KindInUse, Message: fmt.Sprintf(format, args...)}
}

// Store wraps an unexpected persistence failure. A nil err yields nil, and
// an err that already is an *Error is returned untouched.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindStore, Message: op, Err: err}
}

// KindOf reports the Kind of err, or KindStore for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStore
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
