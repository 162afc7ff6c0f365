// Package matrix multiplies dense row-major matrices on a worker pool.
//
// A product is computed in four stages: the shapes are validated, one task
// per output cell is dispatched to the pool, every task's one-shot reply is
// collected, and the values are assembled into a new Matrix. Only the
// calling goroutine writes the output buffer.
//
// Three entry points share that flow:
//
//   - Multiply builds a pool for the call and returns (product, error).
//   - MultiplyWith runs on a caller-owned pool that outlives the call.
//   - MustMultiply (and the Mul method) panic instead of returning an error.
//
// String prints {1 2, 3 4}; %#v prints Matrix(row=2, col=2, {1 2, 3 4}).
package matrix
