// Package metrics is a small process-wide counter store used to instrument
// the worker pool. Counters grows on demand behind a mutex; Fixed declares
// its names once and updates them atomically.
package metrics
