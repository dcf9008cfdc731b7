package core

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapsolve/pkg/token"
)

// ErrorKind categorizes a solver failure.
type ErrorKind string

// Failure kinds.
const (
	KindNone              ErrorKind = ""
	KindNoCleanExpression ErrorKind = "no-clean-expression"
	KindUnexpectedToken   ErrorKind = "unexpected-token"
	KindMismatchedParens  ErrorKind = "mismatched-parentheses"
	KindInvalidExpression ErrorKind = "invalid-expression"
	KindIncompatibleUnits ErrorKind = "incompatible-units"
	KindUnknownUnit       ErrorKind = "unknown-unit"
	KindNonFiniteResult   ErrorKind = "non-finite-result"
)

// Error is the single error type produced by the solving packages.
// Pos is only set for failures tied to a location in the expression.
type Error struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s at column %d: %s", e.Kind, e.Pos.Column, e.Message)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNoCleanExpression = &Error{Kind: KindNoCleanExpression}
	ErrUnexpectedToken   = &Error{Kind: KindUnexpectedToken}
	ErrMismatchedParens  = &Error{Kind: KindMismatchedParens}
	ErrInvalidExpression = &Error{Kind: KindInvalidExpression}
	ErrIncompatibleUnits = &Error{Kind: KindIncompatibleUnits}
	ErrUnknownUnit       = &Error{Kind: KindUnknownUnit}
	ErrNonFiniteResult   = &Error{Kind: KindNonFiniteResult}
)

// Errorf builds an *Error without a position.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrorAt builds an *Error anchored at pos.
func ErrorAt(kind ErrorKind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindNone when err does not wrap an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
