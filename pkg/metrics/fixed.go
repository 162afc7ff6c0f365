package metrics

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var ErrUnknownMetric = errors.New("metrics: unknown metric")

// Fixed is a lock-free counter table whose names are declared up front.
// Touching an undeclared name is an error rather than a new counter.
type Fixed struct {
	data map[string]*atomic.Int64
}

func NewFixed(names ...string) *Fixed {
	data := make(map[string]*atomic.Int64, len(names))
	for _, name := range names {
		data[name] = &atomic.Int64{}
	}
	return &Fixed{data: data}
}

func (f *Fixed) counter(name string) (*atomic.Int64, error) {
	c, ok := f.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return c, nil
}

func (f *Fixed) Inc(name string) error {
	c, err := f.counter(name)
	if err != nil {
		return err
	}
	c.Add(1)
	return nil
}

func (f *Fixed) Dec(name string) error {
	c, err := f.counter(name)
	if err != nil {
		return err
	}
	c.Add(-1)
	return nil
}

func (f *Fixed) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(f.data))
	for name, c := range f.data {
		out[name] = c.Load()
	}
	return out
}

func (f *Fixed) String() string {
	return render(f.Snapshot())
}
