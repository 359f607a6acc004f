// Package apperr provides the two error taxonomies the story runtime
// raises: parse-time errors surfaced while loading and validating a story,
// and runtime errors surfaced while stepping a Runner. Both share a single
// representation so callers can log them uniformly via slog while still
// distinguishing the taxonomy with errors.Is against the sentinels below.
package apperr

import (
	"errors"
	"log/slog"
	"strings"
)

// Error represents an error with optional structured logging attributes.
// It implements both the error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error // wrapped cause, for errors.Unwrap
	attrs []slog.Attr
}

// New creates a new sentinel Error with a message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
//
//  1. "<msg>: <err>" when both the base message and a wrapped cause are set
//  2. "<msg>" when there is no wrapped cause
//  3. "<err>" when the base message is empty
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer for structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a new Error with the same sentinel identity wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a new Error with additional structured attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(merged, e.attrs)
	copy(merged[len(e.attrs):], attrs)

	return &Error{msg: e.msg, err: e.err, attrs: merged}
}

// Is reports whether target shares this Error's sentinel message, allowing
// errors.Is(err, apperr.ErrUnknownPassage) to match a wrapped/attributed
// instance derived from that sentinel via Wrap/With.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}

	return other.msg == e.msg
}

// ParseError-class sentinels: raised while loading or validating a story,
// before any Runner exists. See validator and storydoc.
var (
	ErrUnknownNamespace   = New("unknown namespace")
	ErrUnknownPassage     = New("unknown passage")
	ErrUnknownCharacter   = New("unknown character")
	ErrUnknownVariable    = New("unknown state variable")
	ErrUnknownCommand     = New("unknown command")
	ErrUnknownParam       = New("unknown command parameter")
	ErrTypeMismatch       = New("type mismatch")
	ErrInvalidExpression  = New("invalid expression")
	ErrMalformedLine      = New("malformed line")
	ErrDuplicatePassage   = New("duplicate passage name")
	ErrDuplicateNamespace = New("duplicate namespace name")
	ErrEmptyBranches      = New("branches line has no arms")
	ErrEmptyChoices       = New("choices line has no items")
	ErrMisplacedElse      = New("else arm is not last")
)

// RuntimeError-class sentinels: raised by Runner.Next and its collaborators
// while stepping a live story.
var (
	ErrLineOutOfRange   = New("line index out of range")
	ErrMissingVariable  = New("missing variable")
	ErrSnapshotNotFound = New("snapshot not found")
)
