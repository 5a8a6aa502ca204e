package pkg

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a list of errors reported together, in the order they occurred.
// It is used by commands that keep going after a failure, such as
// evaluating several expressions in one invocation.
type Error []error

// MakeError collects the non-nil errors in errs. It returns nil when there
// are none.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, err)
		}
	}

	return e
}

// MakeErrorf returns an Error holding a single formatted error.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the messages with "; ".
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range e {
		if i > 0 {
			sb.WriteString("; ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends errs to the receiver, skipping nil errors.
func (e Error) Wrap(errs ...error) Error {
	return append(e, MakeError(errs...)...)
}

// Unwrap returns the errors in the list, so that [errors.Is] and
// [errors.As] inspect each of them.
func (e Error) Unwrap() []error { return e }

// Err returns nil if the list is empty and the list itself otherwise.
// Returning a nil Error through an error interface would produce a non-nil
// error value.
func (e Error) Err() error {
	if len(e) == 0 {
		return nil
	}

	return e
}

// Is reports whether any error in the list matches target.
func (e Error) Is(target error) bool {
	for _, err := range e {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
