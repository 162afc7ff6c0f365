package solo

import (
	"context"

	"github.com/ib-77/parmul/pkg/rop"
)

func Succeed[T any](input T) rop.Result[T] {
	return rop.Success(input)
}

func Fail[T any](err error) rop.Result[T] {
	return rop.Fail[T](err)
}

// carry moves a failure or cancellation onto the next stage's type.
func carry[In, Out any](input rop.Result[In]) rop.Result[Out] {
	if input.IsCancel() {
		return rop.Cancel[Out](input.Err())
	}
	return rop.Fail[Out](input.Err())
}

func Switch[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) rop.Result[Out]) rop.Result[Out] {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Result())
	}
	return carry[In, Out](input)
}

func Map[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out) rop.Result[Out] {

	if input.IsSuccess() {
		return rop.Success(onSuccess(ctx, input.Result()))
	}
	return carry[In, Out](input)
}

// Try runs a (value, error) function on a successful input. Context errors
// become cancellations, everything else a failure.
func Try[In any, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) rop.Result[Out] {

	if !input.IsSuccess() {
		return carry[In, Out](input)
	}

	out, err := onTryExecute(ctx, input.Result())
	if err != nil {
		if rop.IsCancellationError(err) {
			return rop.Cancel[Out](err)
		}
		return rop.Fail[Out](err)
	}
	return rop.Success(out)
}

func DoubleTee[T any](ctx context.Context, input rop.Result[T],
	onSuccess func(ctx context.Context, r T),
	onError func(ctx context.Context, err error),
	onCancel func(ctx context.Context, err error)) rop.Result[T] {

	switch {
	case input.IsSuccess():
		if onSuccess != nil {
			onSuccess(ctx, input.Result())
		}
	case input.IsCancel():
		if onCancel != nil {
			onCancel(ctx, input.Err())
		}
	default:
		if onError != nil {
			onError(ctx, input.Err())
		}
	}

	return input
}
