package matrix

import (
	"context"
	"errors"
	"fmt"

	"github.com/ib-77/parmul/pkg/pool"
	"github.com/ib-77/parmul/pkg/rop"
	"github.com/ib-77/parmul/pkg/rop/chain"
	"github.com/ib-77/parmul/pkg/rop/core"
	"github.com/ib-77/parmul/pkg/vector"
)

type job[T vector.Number] struct {
	pool *pool.Pool[T]
	a, b *Matrix[T]
}

type reply[T vector.Number] struct {
	index int
	ch    <-chan rop.Result[pool.Cell[T]]
}

type dispatched[T vector.Number] struct {
	job[T]
	replies []reply[T]
}

type collected[T vector.Number] struct {
	job[T]
	data []T
}

// Multiply returns a × b. It starts a pool of pool.DefaultWorkers workers
// for this call only and shuts it down before returning. Nothing is started
// when the shapes do not fit.
func Multiply[T vector.Number](a, b *Matrix[T]) (*Matrix[T], error) {
	if err := checkShapes(a, b); err != nil {
		return nil, err
	}

	ctx := context.Background()
	p := pool.New[T](ctx, pool.WithWorkers(pool.DefaultWorkers))
	defer p.Close()

	return MultiplyWith(ctx, p, a, b)
}

// MustMultiply is Multiply for callers that treat a failure as a
// programming error: it panics instead of returning the error.
func MustMultiply[T vector.Number](a, b *Matrix[T]) *Matrix[T] {
	m, err := Multiply(a, b)
	if err != nil {
		panic(err)
	}
	return m
}

// MultiplyWith returns a × b computed on p, one task per output cell.
// Task (i, j) goes to the pool with index i*b.Cols()+j and its value is
// written back at that index, so completion order does not matter.
//
// Every failed cell is reported: the error is an errors.Join of one error
// per cell, and no partially filled matrix is ever returned. ctx bounds
// both queueing and waiting; the pool is left running either way.
func MultiplyWith[T vector.Number](ctx context.Context, p *pool.Pool[T], a, b *Matrix[T]) (*Matrix[T], error) {
	validated := chain.Then(chain.FromValue(ctx, job[T]{pool: p, a: a, b: b}), validate[T])
	sent := chain.ThenTry(validated, dispatch[T])
	gathered := chain.ThenTry(sent, collect[T])
	return chain.Map(gathered, assemble[T]).Get()
}

func checkShapes[T vector.Number](a, b *Matrix[T]) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.cols != b.rows {
		return fmt.Errorf("%w: %dx%d times %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	return nil
}

func validate[T vector.Number](_ context.Context, j job[T]) rop.Result[job[T]] {
	if err := checkShapes(j.a, j.b); err != nil {
		return rop.Fail[job[T]](err)
	}
	if j.pool == nil {
		return rop.Fail[job[T]](ErrNilPool)
	}
	return rop.Success(j)
}

// dispatch sends one task per cell in row-major order. A row vector is
// shared by every task of that row; vectors are read-only.
func dispatch[T vector.Number](ctx context.Context, j job[T]) (dispatched[T], error) {
	out := dispatched[T]{job: j, replies: make([]reply[T], 0, j.a.rows*j.b.cols)}

	cols := make([]vector.Vector[T], j.b.cols)
	for c := range j.b.cols {
		cols[c] = j.b.Col(c)
	}

	for r := range j.a.rows {
		row := j.a.Row(r)
		for c := range j.b.cols {
			index := r*j.b.cols + c
			task, ch := pool.NewTask(index, row, cols[c])

			if err := j.pool.Submit(ctx, task); err != nil {
				if rop.IsCancellationError(err) {
					return out, err
				}
				return out, fmt.Errorf("%w: cell %d: %w", ErrChannelFailure, index, err)
			}
			out.replies = append(out.replies, reply[T]{index: index, ch: ch})
		}
	}

	return out, nil
}

// collect waits on every reply in submission order.
func collect[T vector.Number](ctx context.Context, d dispatched[T]) (collected[T], error) {
	out := collected[T]{job: d.job, data: make([]T, d.a.rows*d.b.cols)}

	var errs []error
	for _, r := range d.replies {
		res, err := core.Await(ctx, r.ch)
		switch {
		case rop.IsCancellationError(err):
			return out, err
		case err != nil:
			errs = append(errs, fmt.Errorf("%w: cell %d: %w", ErrChannelFailure, r.index, err))
		case res.IsFailure():
			errs = append(errs, fmt.Errorf("cell %d: %w", r.index, res.Err()))
		default:
			cell := res.Result()
			out.data[cell.Index] = cell.Value
		}
	}

	if len(errs) > 0 {
		return out, errors.Join(errs...)
	}
	return out, nil
}

func assemble[T vector.Number](_ context.Context, c collected[T]) *Matrix[T] {
	return &Matrix[T]{data: c.data, rows: c.a.rows, cols: c.b.cols}
}
