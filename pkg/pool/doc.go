// Package pool runs a fixed number of worker goroutines that compute dot
// products for matrix cells.
//
// Each Task carries its own one-shot reply channel, so results never share
// a container and can be collected in any order. With the RoundRobin
// strategy every worker drains a private queue and task i always goes to
// worker i % N; with Shared all workers drain one queue.
//
// A worker that fails a task (interceptor error, dimension mismatch) sends
// a failed rop.Result back; a worker that panics closes the reply channel
// without a value. Either way it moves on to its next task.
//
// A Pool may be built for a single call and closed right after, or kept
// for the life of a component and shared between concurrent callers.
package pool
