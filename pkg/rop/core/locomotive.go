package core

import (
	"context"
	"sync"
)

// Locomotive drives a single worker. It pulls items from inputCh until the
// channel is closed and drained, handing each one to engine. A panic inside
// engine is recovered and reported through onPanic so the loop keeps going.
func Locomotive[T any](ctx context.Context, inputCh <-chan T,
	engine func(ctx context.Context, in T),
	onPanic func(ctx context.Context, in T, recovered any),
	wg *sync.WaitGroup) {
	defer wg.Done()

	for in := range inputCh {
		haul(ctx, in, engine, onPanic)
	}
}

func haul[T any](ctx context.Context, in T,
	engine func(ctx context.Context, in T),
	onPanic func(ctx context.Context, in T, recovered any)) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(ctx, in, r)
		}
	}()

	engine(ctx, in)
}
