// Package apperror defines the error model shared by every component of the
// mail composer: a stable kind, a human readable message, an optional
// remediation hint, and an optional wrapped cause.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the stable categories surfaced by the
// CLI and attached to log entries.
type Kind string

const (
	// NotFound indicates a missing key or file: an address-book name, a mail
	// type, or the workspace root.
	NotFound Kind = "not_found"
	// UnavailableForLegalReasons indicates an input-shape violation: a bad
	// email address, an empty subject, a malformed time, a duplicate
	// address-book name, or an unparsable address book / start-time store.
	UnavailableForLegalReasons Kind = "unavailable_for_legal_reasons"
	// UnprocessableEntity indicates a mail-template file or entry that could
	// not be decoded.
	UnprocessableEntity Kind = "unprocessable_entity"
	// InternalServerError indicates an I/O failure: read, write, mkdir, or a
	// subprocess that could not be spawned or awaited.
	InternalServerError Kind = "internal_server_error"
)

// String returns the stable label used in logs.
func (k Kind) String() string {
	return string(k)
}

// Error carries a kind, a message, and optionally a remediation hint and the
// underlying cause. Errors are built once and propagate unchanged to the CLI
// shell; no component recovers from them locally.
type Error struct {
	Kind    Kind
	Message string
	Hint    string
	Cause   error
}

// New returns an error of the given kind with a user-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithHint attaches an actionable remediation hint and returns the error for
// chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithCause attaches the underlying error and returns the error for chaining.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// KindOf classifies an arbitrary error. Errors that did not originate from
// this package report InternalServerError.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return InternalServerError
}

// HintOf returns the remediation hint carried by the error, or an empty
// string when none was attached.
func HintOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Hint
	}
	return ""
}
