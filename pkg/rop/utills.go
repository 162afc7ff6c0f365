package rop

import (
	"context"
	"errors"
)

// GetErrors flattens an errors.Join value back into its parts.
func GetErrors(err error) []error {
	if err == nil {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
