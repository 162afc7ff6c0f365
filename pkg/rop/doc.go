// Package rop holds the railway Result type that moves values and errors
// between pipeline stages and goroutines. A Result is either a success with
// a value, a failure with an error, or a cancellation caused by a context.
package rop
