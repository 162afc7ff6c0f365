package pool

import (
	"context"
	"errors"
	"sync"

	"github.com/ib-77/parmul/pkg/rop/core"
	"github.com/ib-77/parmul/pkg/vector"
)

var ErrPoolClosed = errors.New("pool: closed")

// Counter names reported to the Recorder.
const (
	MetricTasksSubmitted = "pool.tasks.submitted"
	MetricTasksCompleted = "pool.tasks.completed"
	MetricTasksFailed    = "pool.tasks.failed"
	MetricWorkersBusy    = "pool.workers.busy"
)

// Pool is a fixed set of worker goroutines computing dot products for
// Tasks. It can serve any number of callers until Close is called.
type Pool[T vector.Number] struct {
	cfg    config
	queues []chan Task[T]

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New starts the workers. Worker count and queue depth come from the
// context options in package core unless overridden by opts. The workers
// keep the context's values but not its cancellation; Close stops them.
func New[T vector.Number](ctx context.Context, opts ...Option) *Pool[T] {
	p := &Pool[T]{cfg: newConfig(ctx, opts)}

	queues := 1
	if p.cfg.strategy == RoundRobin {
		queues = p.cfg.workers
	}
	p.queues = make([]chan Task[T], queues)
	for i := range p.queues {
		p.queues[i] = make(chan Task[T], p.cfg.queueDepth)
	}

	workerCtx := context.WithoutCancel(ctx)
	for id := range p.cfg.workers {
		w := &worker[T]{id: id, cfg: &p.cfg}
		p.wg.Add(1)
		go core.Locomotive[Task[T]](workerCtx, p.queues[id%queues], w.handle, w.onPanic, &p.wg)
	}

	return p
}

func (p *Pool[T]) Workers() int {
	return p.cfg.workers
}

func (p *Pool[T]) Strategy() Strategy {
	return p.cfg.strategy
}

// Submit queues a task. It waits while the target queue is full, giving
// up when ctx ends.
func (p *Pool[T]) Submit(ctx context.Context, task Task[T]) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.route(task.Index) <- task:
		record(&p.cfg, true, MetricTasksSubmitted)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool[T]) route(index int) chan Task[T] {
	if len(p.queues) == 1 {
		return p.queues[0]
	}
	i := index % len(p.queues)
	if i < 0 {
		i += len(p.queues)
	}
	return p.queues[i]
}

// Close stops accepting tasks, lets the workers drain what is already
// queued, and waits for them to exit. It is safe to call more than once.
func (p *Pool[T]) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		for _, q := range p.queues {
			close(q)
		}
	}
	p.mu.Unlock()

	p.wg.Wait()
}
