// Package core contains worker plumbing shared by the pool: the Locomotive
// loop that drives one worker goroutine, Await for one-shot reply channels,
// and worker/queue configuration carried in a context. It holds no
// arithmetic of its own.
package core
