package core

import "context"

type OptionKey string

const (
	WorkerOptionKey OptionKey = "worker_options"
	QueueOptionKey  OptionKey = "queue_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

type QueueOptions struct {
	Depth MaxLimitOption
}

func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

func WithQueueOptions(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, QueueOptionKey, QueueOptions{MaxLimitOption{Value: depth}})
}

func GetQueueDepth(ctx context.Context, defaultDepth int) int {
	options, ok := ctx.Value(QueueOptionKey).(QueueOptions)
	if ok {
		return options.Depth.Value
	}
	return defaultDepth
}
