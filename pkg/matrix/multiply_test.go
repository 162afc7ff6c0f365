package matrix_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/ib-77/parmul/pkg/matrix"
	"github.com/ib-77/parmul/pkg/metrics"
	"github.com/ib-77/parmul/pkg/pool"
	"github.com/ib-77/parmul/pkg/rop"
	"github.com/ib-77/parmul/pkg/rop/core"
)

var (
	quiet      = log.New(io.Discard, "", 0)
	poolSizes  = []int{1, 2, 4, 8}
	strategies = []pool.Strategy{pool.RoundRobin, pool.Shared}
)

func randomInts(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(201) - 100
	}
	return out
}

func randomFloats(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}

// naive is the triple-loop reference product.
func naive(a []int, rows, inner, cols int, b []int) []int {
	out := make([]int, rows*cols)
	for i := range rows {
		for j := range cols {
			for k := range inner {
				out[i*cols+j] += a[i*inner+k] * b[k*cols+j]
			}
		}
	}
	return out
}

func TestMultiplyWith_MatchesNaiveForEveryPoolSize(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	shapes := [][3]int{{1, 1, 1}, {2, 3, 2}, {7, 1, 9}, {13, 17, 5}, {50, 50, 50}}

	for _, shape := range shapes {
		r, k, c := shape[0], shape[1], shape[2]
		aData, bData := randomInts(rng, r*k), randomInts(rng, k*c)
		want := naive(aData, r, k, c, bData)
		a, b := matrix.New(aData, r, k), matrix.New(bData, k, c)

		for _, s := range strategies {
			for _, n := range poolSizes {
				t.Run(fmt.Sprintf("%dx%dx%d/%s/%d", r, k, c, s, n), func(t *testing.T) {
					p := pool.New[int](context.Background(), pool.WithWorkers(n), pool.WithStrategy(s), pool.WithLogger(quiet))
					defer p.Close()

					got, err := matrix.MultiplyWith(context.Background(), p, a, b)
					require.NoError(t, err)
					assert.Equal(t, r, got.Rows())
					assert.Equal(t, c, got.Cols())
					assert.Equal(t, want, got.Data())
				})
			}
		}
	}
}

func TestMultiplyWith_MatchesGonum(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))
	for range 5 {
		r, k, c := 1+rng.IntN(50), 1+rng.IntN(50), 1+rng.IntN(50)
		aData, bData := randomFloats(rng, r*k), randomFloats(rng, k*c)

		var want mat.Dense
		want.Mul(mat.NewDense(r, k, aData), mat.NewDense(k, c, bData))

		for _, n := range poolSizes {
			p := pool.New[float64](context.Background(), pool.WithWorkers(n), pool.WithLogger(quiet))
			got, err := matrix.MultiplyWith(context.Background(), p, matrix.New(aData, r, k), matrix.New(bData, k, c))
			p.Close()
			require.NoError(t, err)

			gr, gc := want.Dims()
			require.Equal(t, gr, got.Rows())
			require.Equal(t, gc, got.Cols())
			for i := range gr {
				for j := range gc {
					assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-9, "cell (%d,%d) with %d workers", i, j, n)
				}
			}
		}
	}
}

func TestMultiplyWith_DeterministicUnderRandomDelays(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(5, 6))
	a := matrix.New(randomFloats(rng, 12*9), 12, 9)
	b := matrix.New(randomFloats(rng, 9*11), 9, 11)

	jitter := pool.WithInterceptor(func(ctx context.Context, worker, index int) error {
		time.Sleep(time.Duration(rand.IntN(200)) * time.Microsecond)
		return nil
	})

	var first []uint64
	for run := range 6 {
		p := pool.New[float64](context.Background(), pool.WithWorkers(poolSizes[run%len(poolSizes)]), pool.WithLogger(quiet), jitter)
		got, err := matrix.MultiplyWith(context.Background(), p, a, b)
		p.Close()
		require.NoError(t, err)

		bits := make([]uint64, 0, got.Rows()*got.Cols())
		for _, v := range got.Data() {
			bits = append(bits, math.Float64bits(v))
		}
		if first == nil {
			first = bits
			continue
		}
		assert.Equal(t, first, bits, "run %d", run)
	}
}

func TestMultiplyWith_MismatchDispatchesNothing(t *testing.T) {
	t.Parallel()

	counters := metrics.NewCounters()
	called := false
	p := pool.New[int](context.Background(),
		pool.WithRecorder(counters),
		pool.WithLogger(quiet),
		pool.WithInterceptor(func(ctx context.Context, worker, index int) error {
			called = true
			return nil
		}))

	a := matrix.New([]int{1, 2, 3, 4, 5, 6}, 2, 3)
	b := matrix.New([]int{1, 2, 3, 4}, 2, 2)
	_, err := matrix.MultiplyWith(context.Background(), p, a, b)
	p.Close()

	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	assert.False(t, called)
	assert.Empty(t, counters.Snapshot())
}

func TestMultiplyWith_NilPool(t *testing.T) {
	t.Parallel()

	a := matrix.New([]int{1}, 1, 1)
	_, err := matrix.MultiplyWith(context.Background(), nil, a, a)
	assert.ErrorIs(t, err, matrix.ErrNilPool)
}

func TestMultiplyWith_ReportsEveryFailedCell(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	p := pool.New[int](context.Background(),
		pool.WithWorkers(2),
		pool.WithLogger(quiet),
		pool.WithInterceptor(func(ctx context.Context, worker, index int) error {
			switch index {
			case 1, 3:
				return boom
			case 2:
				panic("worker lost its task")
			}
			return nil
		}))
	defer p.Close()

	a := matrix.New([]int{1, 2, 3, 4}, 2, 2)
	got, err := matrix.MultiplyWith(context.Background(), p, a, a)
	assert.Nil(t, got)
	require.Error(t, err)

	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, matrix.ErrChannelFailure)
	assert.ErrorIs(t, err, core.ErrClosedEmpty)
	assert.NotErrorIs(t, err, matrix.ErrDimensionMismatch)

	parts := rop.GetErrors(err)
	require.Len(t, parts, 3)
	assert.EqualError(t, parts[0], "cell 1: boom")
	assert.EqualError(t, parts[1], "matrix: channel failure: cell 2: channel closed without a value")
	assert.EqualError(t, parts[2], "cell 3: boom")

	// the same pool keeps serving after the failures
	ok, err := matrix.MultiplyWith(context.Background(), p, matrix.New([]int{1, 2}, 1, 2), matrix.New([]int{3, 4}, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, []int{11}, ok.Data())
}

func TestMultiplyWith_ClosedPool(t *testing.T) {
	t.Parallel()

	p := pool.New[int](context.Background(), pool.WithLogger(quiet))
	p.Close()

	a := matrix.New([]int{1, 2, 3, 4}, 2, 2)
	_, err := matrix.MultiplyWith(context.Background(), p, a, a)
	assert.ErrorIs(t, err, matrix.ErrChannelFailure)
	assert.ErrorIs(t, err, pool.ErrPoolClosed)
}

func TestMultiplyWith_ContextEndsWhileQueueing(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	p := pool.New[int](context.Background(),
		pool.WithWorkers(1),
		pool.WithQueueDepth(0),
		pool.WithLogger(quiet),
		pool.WithInterceptor(func(ctx context.Context, worker, index int) error {
			<-release
			return nil
		}))
	defer p.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	a := matrix.New([]int{1, 2, 3, 4}, 2, 2)
	_, err := matrix.MultiplyWith(ctx, p, a, a)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMultiplyWith_SharedPoolConcurrentCallers(t *testing.T) {
	t.Parallel()

	counters := metrics.NewCounters()
	p := pool.New[int](context.Background(),
		pool.WithWorkers(4),
		pool.WithQueueDepth(2),
		pool.WithRecorder(counters),
		pool.WithLogger(quiet))

	type jobCase struct {
		a, b []int
		r, k int
		c    int
	}
	rng := rand.New(rand.NewPCG(7, 8))
	cases := make([]jobCase, 8)
	cells := 0
	for i := range cases {
		r, k, c := 1+rng.IntN(20), 1+rng.IntN(20), 1+rng.IntN(20)
		cases[i] = jobCase{a: randomInts(rng, r*k), b: randomInts(rng, k*c), r: r, k: k, c: c}
		cells += r * c
	}

	results := make([]*matrix.Matrix[int], len(cases))
	g, ctx := errgroup.WithContext(context.Background())
	for i, jc := range cases {
		g.Go(func() error {
			m, err := matrix.MultiplyWith(ctx, p, matrix.New(jc.a, jc.r, jc.k), matrix.New(jc.b, jc.k, jc.c))
			results[i] = m
			return err
		})
	}
	require.NoError(t, g.Wait())
	p.Close()

	for i, jc := range cases {
		assert.Equal(t, naive(jc.a, jc.r, jc.k, jc.c, jc.b), results[i].Data(), "job %d", i)
	}

	snap := counters.Snapshot()
	assert.Equal(t, int64(cells), snap[pool.MetricTasksSubmitted])
	assert.Equal(t, int64(cells), snap[pool.MetricTasksCompleted])
	assert.Zero(t, snap[pool.MetricTasksFailed])
	assert.Zero(t, snap[pool.MetricWorkersBusy])
}
