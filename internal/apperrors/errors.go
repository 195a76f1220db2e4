// Package apperrors defines the error taxonomy shared by all services.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP status mapping
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidInput
	KindInvalidState
	KindDuplicate
)

// Error carries a kind alongside the message
type Error struct {
	ErrKind Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports a referenced entity that does not exist
func NotFound(format string, args ...interface{}) error {
	return &Error{ErrKind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput reports a malformed or missing required field
func InvalidInput(format string, args ...interface{}) error {
	return &Error{ErrKind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// InvalidState reports an operation not permitted in the entity's current state
func InvalidState(format string, args ...interface{}) error {
	return &Error{ErrKind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Duplicate reports a unique constraint violation
func Duplicate(format string, args ...interface{}) error {
	return &Error{ErrKind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindUnknown for untyped errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.ErrKind
	}
	return KindUnknown
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsInvalidInput(err error) bool { return KindOf(err) == KindInvalidInput }
func IsInvalidState(err error) bool { return KindOf(err) == KindInvalidState }
func IsDuplicate(err error) bool    { return KindOf(err) == KindDuplicate }
