// Package solo contains single-value, synchronous primitives over
// rop.Result[T]. They are the building blocks for the chain package and for
// the per-task work done inside pool workers.
//
// - Succeed/Fail: construct results
// - Switch: move from Result[In] to Result[Out] via a result-returning step
// - Map: transform a successful value
// - Try: call a (Out, error) function, context errors become cancellations
// - DoubleTee: side effects per outcome without changing the result
package solo
