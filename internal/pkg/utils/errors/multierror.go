package errors

import (
	"sync"
)

// MultiError is a list of errors rendered as a bullet list.
// All operations are safe for concurrent use.
type MultiError interface {
	Len() int
	Error() string
	Unwrap() error
	StackTrace() StackTrace
	ErrorOrNil() error
	WrappedErrors() []error
	Append(errs ...error)
	AppendNested(err error) NestedError
	AppendWithPrefix(err error, prefix string)
	AppendWithPrefixf(err error, format string, a ...any)
}

type multiErrorGetter interface {
	WrappedErrors() []error
}

type multiError struct {
	lock  *sync.Mutex
	errs  []error
	trace StackTrace
}

func NewMultiError() MultiError {
	return &multiError{lock: &sync.Mutex{}, trace: callers()}
}

func (e *multiError) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.errs)
}

func (e *multiError) Error() string {
	return Format(e)
}

func (e *multiError) Unwrap() error {
	return chain(e.WrappedErrors())
}

func (e *multiError) StackTrace() StackTrace {
	return e.trace
}

// ErrorOrNil returns the error if the list is not empty, otherwise nil.
func (e *multiError) ErrorOrNil() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

func (e *multiError) WrappedErrors() []error {
	e.lock.Lock()
	defer e.lock.Unlock()
	out := make([]error, len(e.errs))
	copy(out, e.errs)
	return out
}

func (e *multiError) Append(errs ...error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	for _, err := range errs {
		if err == nil {
			continue
		}
		// Flatten multi errors, but not nested errors, they keep the main error.
		switch v := err.(type) { // nolint: errorlint
		case *multiError:
			e.errs = append(e.errs, v.WrappedErrors()...)
		default:
			e.errs = append(e.errs, err)
		}
	}
}

// AppendNested appends a nested error with the given main error
// and returns it, so sub errors can be added.
func (e *multiError) AppendNested(err error) NestedError {
	nested := NewNestedError(err)
	e.Append(nested)
	return nested
}

func (e *multiError) AppendWithPrefix(err error, prefix string) {
	e.Append(PrefixError(err, prefix))
}

func (e *multiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.Append(PrefixErrorf(err, format, a...))
}
