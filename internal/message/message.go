// Package message holds the value objects a mail draft is assembled from:
// email addresses, the subject, the body, and the HH:MM work times recorded
// around a remote-work day. Values are parsed once, validated at the
// boundary, and immutable afterwards.
package message

import (
	"strings"

	"github.com/example/mail-composer/internal/apperror"
)

// Address is a validated email address. Validation is deliberately minimal:
// the string must contain an '@'. Anything stricter would reject directory
// entries the mail client itself accepts.
type Address struct {
	raw string
}

// ParseAddress validates and wraps an email address string.
func ParseAddress(s string) (Address, error) {
	if !strings.Contains(s, "@") {
		return Address{}, apperror.Newf(apperror.UnavailableForLegalReasons,
			"invalid email address format: %s", s).
			WithHint("specify an address containing '@'")
	}
	return Address{raw: s}, nil
}

// String returns the address exactly as it was parsed.
func (a Address) String() string {
	return a.raw
}

// Subject is a validated mail subject: non-empty after trimming whitespace.
type Subject struct {
	value string
}

// NewSubject validates and wraps a subject line.
func NewSubject(s string) (Subject, error) {
	if strings.TrimSpace(s) == "" {
		return Subject{}, apperror.New(apperror.UnavailableForLegalReasons,
			"subject is empty").
			WithHint("set a non-empty subject template")
	}
	return Subject{value: s}, nil
}

// String returns the subject text.
func (s Subject) String() string {
	return s.value
}

// Body is a mail body. Any string is allowed, including the empty string.
type Body struct {
	value string
}

// NewBody wraps a body string.
func NewBody(s string) Body {
	return Body{value: s}
}

// String returns the body text as written.
func (b Body) String() string {
	return b.value
}

// CRLF returns the body with every '\n' replaced by "\r\n". The replacement
// is unconditional: an existing "\r\n" becomes "\r\r\n". The mail client's
// compose argument depends on this exact rendering.
func (b Body) CRLF() string {
	return strings.ReplaceAll(b.value, "\n", "\r\n")
}
