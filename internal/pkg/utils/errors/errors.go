// Package errors provides structured errors with stack traces,
// multi errors and configurable formatting to human-readable bullet lists.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// StackTrace is a stack of program counters, from the error origin to the main function.
type StackTrace []uintptr

type stackTracer interface {
	StackTrace() StackTrace
}

// baseError is a simple error message with a stack trace.
type baseError struct {
	msg   string
	trace StackTrace
}

// wrappedError adds a new message on top of an underlying error.
// The message replaces the underlying error message in the default output,
// the underlying error is accessible via the Unwrap method.
type wrappedError struct {
	msg   string
	err   error
	trace StackTrace
}

// withStack adds a stack trace to an error that doesn't have one.
type withStack struct {
	err   error
	trace StackTrace
}

// chain makes a list of errors unwrappable, for Is/As functions.
type chain []error

func New(msg string) error {
	return &baseError{msg: msg, trace: callers()}
}

func Errorf(format string, a ...any) error {
	return &withStack{err: fmt.Errorf(format, a...), trace: callers()}
}

func Wrap(err error, msg string) error {
	return &wrappedError{msg: msg, err: err, trace: callers()}
}

func Wrapf(err error, format string, a ...any) error {
	return &wrappedError{msg: fmt.Sprintf(format, a...), err: err, trace: callers()}
}

func WithStack(err error) error {
	return &withStack{err: err, trace: callers()}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func (e *baseError) Error() string {
	return e.msg
}

func (e *baseError) StackTrace() StackTrace {
	return e.trace
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

func (e *wrappedError) StackTrace() StackTrace {
	return e.trace
}

func (e *withStack) Error() string {
	return e.err.Error()
}

func (e *withStack) Unwrap() error {
	return e.err
}

func (e *withStack) StackTrace() StackTrace {
	return e.trace
}

func (e chain) Error() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Error()
}

func (e chain) Unwrap() []error {
	return e
}

func callers() StackTrace {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return StackTrace(pcs[0:n])
}
