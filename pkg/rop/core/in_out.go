package core

import (
	"context"
	"errors"
)

// ErrClosedEmpty is returned by Await when the channel closes before
// delivering anything.
var ErrClosedEmpty = errors.New("channel closed without a value")

// Await blocks for the first value on a one-shot channel.
func Await[T any](ctx context.Context, out <-chan T) (T, error) {
	var zero T

	select {
	case v, ok := <-out:
		if !ok {
			return zero, ErrClosedEmpty
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
