// Package domainerrors defines the closed set of failure kinds the service
// raises. Services return coded errors; the transport layer maps codes to
// HTTP statuses without inspecting concrete types.
//
// Stores do not use this package directly. They return sentinel errors
// (pkg/platform/sentinel) and the service translates them into coded errors
// here, so not-found semantics stay a service decision.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeBadRequest marks caller-fixable input defects (validation failures).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a referenced record that does not exist.
	CodeNotFound Code = "not_found"
	// CodeInternal marks failures below the store boundary. The message is
	// safe to show; the wrapped cause is not and stays server-side.
	CodeInternal Code = "internal"
)

// Error is a domain failure with a classification code.
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

// New builds a coded error with a caller-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted caller-facing message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to a lower-layer cause. The cause remains
// reachable via errors.Unwrap but is never rendered to callers.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NotFound builds the standard not-found error identifying the missing
// entity kind and key.
func NotFound(kind string, key any) *Error {
	return Newf(CodeNotFound, "%s (%v) was not found.", kind, key)
}

// HasCode reports whether err is, or wraps, a domain error with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a domain error code to an HTTP status for the boundary.
// Anything unclassified is a 500.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
