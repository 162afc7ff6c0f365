// Package chain provides a fluent wrapper around rop.Result[T] for building
// synchronous multi-stage flows out of solo primitives. The first failing
// stage short-circuits every later one.
//
// - Start/FromValue: begin a chain from a Result[T] or value
// - Then: switch to a new Result[U] via a function
// - ThenTry: call a function (U, error) and convert error to failure
// - Map: transform the successful value (T -> U)
// - Get: collapse into (T, error)
package chain
