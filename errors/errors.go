// Package errors defines the error kinds returned by the shower and
// Cherenkov packages. Every error produced by those packages unwraps to one
// of the sentinel kinds below, so callers can branch with errors.Is.
package errors

import (
	"fmt"
)

var (
	// ErrDomain is an input outside the domain of a formula (negative
	// depth, altitude below the lowest atmospheric layer, age >= 3, ...).
	ErrDomain = fmt.Errorf("domain")
	// ErrPrecondition is a call made in the wrong state or with malformed
	// arguments (profile read before generation, too few quadrature points).
	ErrPrecondition = fmt.Errorf("precondition")
	// ErrNumerical is a computation that produced a non-finite result.
	ErrNumerical = fmt.Errorf("numerical")
)

// Error carries the kind of failure and the operation that raised it.
type Error struct {
	Kind error
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap returns the kind, which lets errors.Is match the sentinels.
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Domain returns an ErrDomain error raised by op.
func Domain(op, format string, args ...interface{}) error {
	return newError(ErrDomain, op, format, args...)
}

// Precondition returns an ErrPrecondition error raised by op.
func Precondition(op, format string, args ...interface{}) error {
	return newError(ErrPrecondition, op, format, args...)
}

// Numerical returns an ErrNumerical error raised by op.
func Numerical(op, format string, args ...interface{}) error {
	return newError(ErrNumerical, op, format, args...)
}
