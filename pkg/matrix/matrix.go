package matrix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ib-77/parmul/pkg/vector"
)

// Matrix is a dense row-major matrix: element (i, j) lives at i*cols+j.
type Matrix[T vector.Number] struct {
	data []T
	rows int
	cols int
}

// New builds a rows×cols matrix from a copy of data. len(data) must equal
// rows*cols; that is the caller's responsibility and is not checked.
func New[T vector.Number](data []T, rows, cols int) *Matrix[T] {
	return &Matrix[T]{data: slices.Clone(data), rows: rows, cols: cols}
}

func (m *Matrix[T]) Rows() int {
	return m.rows
}

func (m *Matrix[T]) Cols() int {
	return m.cols
}

func (m *Matrix[T]) At(i, j int) T {
	return m.data[i*m.cols+j]
}

// Data returns a copy of the row-major buffer.
func (m *Matrix[T]) Data() []T {
	return slices.Clone(m.data)
}

// Row copies row i into a vector.
func (m *Matrix[T]) Row(i int) vector.Vector[T] {
	return vector.New(m.data[i*m.cols : (i+1)*m.cols])
}

// Col gathers column j into a vector.
func (m *Matrix[T]) Col(j int) vector.Vector[T] {
	return vector.Gather(m.data, j, m.cols, m.rows)
}

// Mul is the operator form of MustMultiply: m × b, panicking on error.
func (m *Matrix[T]) Mul(b *Matrix[T]) *Matrix[T] {
	return MustMultiply(m, b)
}

// String renders the matrix as {a b c, d e f}: elements separated by a
// space, rows by a comma.
func (m *Matrix[T]) String() string {
	rows := make([]string, m.rows)
	elems := make([]string, m.cols)
	for i := range m.rows {
		for j := range m.cols {
			elems[j] = fmt.Sprint(m.data[i*m.cols+j])
		}
		rows[i] = strings.Join(elems, " ")
	}
	return "{" + strings.Join(rows, ", ") + "}"
}

// GoString is used by %#v and adds the shape: Matrix(row=R, col=C, {...}).
func (m *Matrix[T]) GoString() string {
	return fmt.Sprintf("Matrix(row=%d, col=%d, %s)", m.rows, m.cols, m.String())
}
