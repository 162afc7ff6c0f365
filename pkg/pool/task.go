package pool

import (
	"github.com/ib-77/parmul/pkg/rop"
	"github.com/ib-77/parmul/pkg/vector"
)

// Cell is the value computed for one output position.
type Cell[T vector.Number] struct {
	Index int
	Value T
}

// Task is one output cell's worth of work: the row and column to combine,
// where the result belongs, and the one-shot channel to answer on.
type Task[T vector.Number] struct {
	Index int
	Row   vector.Vector[T]
	Col   vector.Vector[T]
	Reply chan<- rop.Result[Cell[T]]
}

// NewTask builds a Task with a fresh reply channel and returns the receiving
// end. The channel has room for exactly one result, so the worker never
// waits on the caller.
func NewTask[T vector.Number](index int, row, col vector.Vector[T]) (Task[T], <-chan rop.Result[Cell[T]]) {
	reply := make(chan rop.Result[Cell[T]], 1)
	return Task[T]{Index: index, Row: row, Col: col, Reply: reply}, reply
}
