package pool

import (
	"context"
	"fmt"

	"github.com/ib-77/parmul/pkg/rop"
	"github.com/ib-77/parmul/pkg/rop/solo"
	"github.com/ib-77/parmul/pkg/vector"
)

type worker[T vector.Number] struct {
	id  int
	cfg *config
}

// handle computes one task and answers on its reply channel. Failures are
// sent back as failed results; the worker itself carries on.
func (w *worker[T]) handle(ctx context.Context, task Task[T]) {
	w.record(true, MetricWorkersBusy)
	defer w.record(false, MetricWorkersBusy)

	res := solo.Try(ctx, solo.Succeed(task), w.compute)
	solo.DoubleTee(ctx, res,
		func(ctx context.Context, _ Cell[T]) {
			w.record(true, MetricTasksCompleted)
		},
		func(ctx context.Context, err error) {
			w.cfg.logger.Printf("pool: worker %d task %d failed (%s): %v", w.id, task.Index, res.Id(), err)
			w.record(true, MetricTasksFailed)
		},
		func(ctx context.Context, err error) {
			w.cfg.logger.Printf("pool: worker %d task %d cancelled (%s): %v", w.id, task.Index, res.Id(), err)
			w.record(true, MetricTasksFailed)
		})

	w.reply(task, res)
}

func (w *worker[T]) compute(ctx context.Context, task Task[T]) (Cell[T], error) {
	if w.cfg.interceptor != nil {
		if err := w.cfg.interceptor(ctx, w.id, task.Index); err != nil {
			return Cell[T]{}, err
		}
	}

	v, err := vector.Dot(task.Row, task.Col)
	if err != nil {
		return Cell[T]{}, fmt.Errorf("cell %d: %w", task.Index, err)
	}
	return Cell[T]{Index: task.Index, Value: v}, nil
}

// reply never blocks: a reply channel that is missing or already holds a
// value means nobody can use this result, so it is logged and dropped.
func (w *worker[T]) reply(task Task[T], res rop.Result[Cell[T]]) {
	if task.Reply == nil {
		w.cfg.logger.Printf("pool: worker %d task %d has no reply channel", w.id, task.Index)
		return
	}

	select {
	case task.Reply <- res:
	default:
		w.cfg.logger.Printf("pool: worker %d task %d reply dropped", w.id, task.Index)
	}
}

// onPanic closes the reply without a value so the caller sees the loss
// instead of waiting forever.
func (w *worker[T]) onPanic(ctx context.Context, task Task[T], recovered any) {
	w.cfg.logger.Printf("pool: worker %d task %d panicked: %v", w.id, task.Index, recovered)
	w.record(true, MetricTasksFailed)

	if task.Reply != nil {
		close(task.Reply)
	}
}

func (w *worker[T]) record(inc bool, name string) {
	record(w.cfg, inc, name)
}

func record(cfg *config, inc bool, name string) {
	if cfg.recorder == nil {
		return
	}

	var err error
	if inc {
		err = cfg.recorder.Inc(name)
	} else {
		err = cfg.recorder.Dec(name)
	}
	if err != nil {
		cfg.logger.Printf("pool: record %s: %v", name, err)
	}
}
