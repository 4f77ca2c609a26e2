// Package domainerrors provides coded errors that cross module boundaries.
// Services wrap infrastructure errors with a code so transport layers can
// translate them into HTTP responses without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers and the HTTP layer.
type Code string

const (
	CodeBadRequest  Code = "bad_request"
	CodeNotFound    Code = "not_found"
	CodeUnavailable Code = "unavailable"
	CodeInternal    Code = "internal_error"
)

// Error carries a code alongside a human-readable message and an optional
// wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from an error chain. Unclassified errors are
// treated as internal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the message from an error chain, falling back to the
// plain error string for unclassified errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
