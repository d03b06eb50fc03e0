package stack

import (
	"github.com/pkg/errors"
)

// Enable adds stack to error unless some error in the chain already carries one.
func Enable(err error) error {
	if err == nil {
		return nil
	}
	if !HasStackTrace(err) {
		return errors.WithStack(err)
	}
	return err
}

// HasStackTrace reports whether err or any error it wraps carries a stack trace.
func HasStackTrace(err error) bool {
	for err != nil {
		if _, ok := err.(interface {
			StackTrace() errors.StackTrace
		}); ok {
			return true
		}
		wrapped, ok := err.(interface {
			Unwrap() error
		})
		if !ok {
			return false
		}
		err = wrapped.Unwrap()
	}
	return false
}
