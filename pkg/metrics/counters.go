package metrics

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Counters is a named counter table. Any name may be used; a counter comes
// into existence at zero the first time it is touched. The zero value is
// ready to use.
type Counters struct {
	mu   sync.Mutex
	data map[string]int64
}

func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) Inc(name string) error {
	c.add(name, 1)
	return nil
}

func (c *Counters) Dec(name string) error {
	c.add(name, -1)
	return nil
}

func (c *Counters) add(name string, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data == nil {
		c.data = make(map[string]int64)
	}
	c.data[name] += delta
}

// Snapshot returns a copy of the current values.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return maps.Clone(c.data)
}

func (c *Counters) String() string {
	return render(c.Snapshot())
}

// render prints one "name: value" line per counter, sorted by name.
func render(snapshot map[string]int64) string {
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(snapshot)) {
		fmt.Fprintf(&b, "%s: %d\n", name, snapshot[name])
	}
	return b.String()
}
