package matrix

import "errors"

var (
	// ErrDimensionMismatch: a.Cols() != b.Rows(). Reported before any work
	// is dispatched.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrChannelFailure: a task could not be queued, or its reply channel
	// closed without a value.
	ErrChannelFailure = errors.New("matrix: channel failure")

	ErrNilMatrix = errors.New("matrix: nil matrix")
	ErrNilPool   = errors.New("matrix: nil pool")
)
