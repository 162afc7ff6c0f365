package pool

import (
	"context"
	"log"

	"github.com/ib-77/parmul/pkg/rop/core"
)

const (
	DefaultWorkers    = 4
	DefaultQueueDepth = 16
)

// Strategy decides which queue a task lands on.
type Strategy int

const (
	// RoundRobin gives every worker a private queue and sends task i to
	// worker i % N. Fine while every task costs the same.
	RoundRobin Strategy = iota
	// Shared puts all tasks on one queue that every worker drains.
	Shared
)

func (s Strategy) String() string {
	switch s {
	case RoundRobin:
		return "round-robin"
	case Shared:
		return "shared"
	default:
		return "unknown"
	}
}

// Recorder receives counter updates. *metrics.Counters and *metrics.Fixed
// both satisfy it.
type Recorder interface {
	Inc(name string) error
	Dec(name string) error
}

// Interceptor runs on the worker goroutine before a task is computed. A
// non-nil error fails that task only.
type Interceptor func(ctx context.Context, worker, index int) error

type config struct {
	workers     int
	queueDepth  int
	strategy    Strategy
	logger      *log.Logger
	recorder    Recorder
	interceptor Interceptor
}

type Option func(*config)

// WithWorkers overrides the worker count taken from the context.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithQueueDepth sets the buffer size of each task queue. Zero makes
// every submit wait for a worker to pick the task up.
func WithQueueDepth(depth int) Option {
	return func(c *config) { c.queueDepth = depth }
}

func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(c *config) { c.recorder = r }
}

func WithInterceptor(i Interceptor) Option {
	return func(c *config) { c.interceptor = i }
}

func newConfig(ctx context.Context, opts []Option) config {
	cfg := config{
		workers:    core.GetWorkerMaxCount(ctx, DefaultWorkers),
		queueDepth: core.GetQueueDepth(ctx, DefaultQueueDepth),
		strategy:   RoundRobin,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.workers = max(cfg.workers, 1)
	cfg.queueDepth = max(cfg.queueDepth, 0)
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	return cfg
}
