package vector

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrDimensionMismatch is returned by Dot when the operands differ in length.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// Number is the element capability set: a zero value that is the additive
// identity, plus + and *.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Vector is an owned, fixed-length sequence. It never aliases the slice it
// was built from, so it can be handed to another goroutine freely.
type Vector[T Number] struct {
	data []T
}

// New copies data into a new Vector.
func New[T Number](data []T) Vector[T] {
	return Vector[T]{data: slices.Clone(data)}
}

// Gather copies n elements of data starting at offset and stepping by
// stride. A column j of a row-major r×c buffer is Gather(buf, j, c, r).
func Gather[T Number](data []T, offset, stride, n int) Vector[T] {
	out := make([]T, n)
	for i := range n {
		out[i] = data[offset+i*stride]
	}
	return Vector[T]{data: out}
}

func (v Vector[T]) Len() int {
	return len(v.data)
}

func (v Vector[T]) IsEmpty() bool {
	return len(v.data) == 0
}

// At returns the element at i. It panics when i is out of range, as a slice would.
func (v Vector[T]) At(i int) T {
	return v.data[i]
}

func (v Vector[T]) All() iter.Seq2[int, T] {
	return slices.All(v.data)
}

// Slice returns a copy of the elements.
func (v Vector[T]) Slice() []T {
	return slices.Clone(v.data)
}

// Dot returns Σ a[i]*b[i], summed from the zero value in index order.
func Dot[T Number](a, b Vector[T]) (T, error) {
	var sum T
	if a.Len() != b.Len() {
		return sum, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, a.Len(), b.Len())
	}

	for i, x := range a.All() {
		sum += x * b.data[i]
	}
	return sum, nil
}
