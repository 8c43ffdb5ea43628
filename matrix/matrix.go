// SPDX-License-Identifier: MIT

// Package matrix - Matrix: ordered, resizable sequence of Rows.
//
// Invariant: every Row held by a Matrix has exactly NumColumns() entries.
// Structural mutators keep this invariant and report violations as errors.

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAddRow    = "AddRow"
	ctxRemoveRow = "RemoveRow"
	ctxSwapRows  = "SwapRows"
	ctxRemoveCol = "RemoveColumn"
	ctxNew       = "NewMatrix"
	ctxInsertCol = "InsertZeroColumn"
)

// matrixErrorf wraps a sentinel with the method tag and the offending index.
func matrixErrorf(method string, idx int, err error) error {
	return fmt.Errorf("Matrix.%s(%d): %w", method, idx, err)
}

// Matrix is a dense exact-integer matrix stored row by row.
type Matrix struct {
	rows []*Row
	cols int
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Matrix)(nil)

// NewMatrix creates a rows×cols zero matrix.
// Zero rows or zero columns are legal: a context with no parameters and an
// empty constraint system are both ordinary solver states.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(ctxNew, min(rows, cols), ErrNegativeSize)
	}
	m := &Matrix{rows: make([]*Row, rows), cols: cols}
	for i := range m.rows {
		m.rows[i] = NewRow(cols)
	}

	return m, nil
}

// MustMatrix is NewMatrix for sizes known to be valid; it panics otherwise.
func MustMatrix(rows, cols int) *Matrix {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		panic(err)
	}

	return m
}

// NumRows returns the number of rows.
func (m *Matrix) NumRows() int { return len(m.rows) }

// NumColumns returns the shared column count.
func (m *Matrix) NumColumns() int { return m.cols }

// Row returns the i-th row. The Row stays owned by m.
func (m *Matrix) Row(i int) *Row { return m.rows[i] }

// AddRow appends r (taking ownership) after checking its length.
func (m *Matrix) AddRow(r *Row) error {
	if r.Len() != m.cols {
		return matrixErrorf(ctxAddRow, r.Len(), ErrDimensionMismatch)
	}
	m.rows = append(m.rows, r)

	return nil
}

// AddZeroRows appends n zero rows.
func (m *Matrix) AddZeroRows(n int) {
	for ; n > 0; n-- {
		m.rows = append(m.rows, NewRow(m.cols))
	}
}

// AddZeroColumns appends n zero columns to every row.
func (m *Matrix) AddZeroColumns(n int) {
	m.cols += n
	for _, r := range m.rows {
		r.Resize(m.cols)
	}
}

// InsertZeroColumn inserts a zero column at position j in every row.
func (m *Matrix) InsertZeroColumn(j int) error {
	if j < 0 || j > m.cols {
		return matrixErrorf(ctxInsertCol, j, ErrOutOfRange)
	}
	m.cols++
	for _, r := range m.rows {
		r.Insert(j)
	}

	return nil
}

// RemoveRow deletes row i, preserving the order of the others.
func (m *Matrix) RemoveRow(i int) error {
	if i < 0 || i >= len(m.rows) {
		return matrixErrorf(ctxRemoveRow, i, ErrOutOfRange)
	}
	copy(m.rows[i:], m.rows[i+1:])
	m.rows[len(m.rows)-1] = nil
	m.rows = m.rows[:len(m.rows)-1]

	return nil
}

// RemoveTrailingRows drops the last n rows.
func (m *Matrix) RemoveTrailingRows(n int) {
	if n > len(m.rows) {
		n = len(m.rows)
	}
	for i := len(m.rows) - n; i < len(m.rows); i++ {
		m.rows[i] = nil
	}
	m.rows = m.rows[:len(m.rows)-n]
}

// SwapRows exchanges rows i and j.
func (m *Matrix) SwapRows(i, j int) error {
	if i < 0 || i >= len(m.rows) {
		return matrixErrorf(ctxSwapRows, i, ErrOutOfRange)
	}
	if j < 0 || j >= len(m.rows) {
		return matrixErrorf(ctxSwapRows, j, ErrOutOfRange)
	}
	m.rows[i], m.rows[j] = m.rows[j], m.rows[i]

	return nil
}

// RemoveColumn deletes column j from every row.
func (m *Matrix) RemoveColumn(j int) error {
	if j < 0 || j >= m.cols {
		return matrixErrorf(ctxRemoveCol, j, ErrOutOfRange)
	}
	for _, r := range m.rows {
		r.Remove(j)
	}
	m.cols--

	return nil
}

// RemoveTrailingColumns drops the last n columns of every row.
func (m *Matrix) RemoveTrailingColumns(n int) {
	if n > m.cols {
		n = m.cols
	}
	m.cols -= n
	for _, r := range m.rows {
		r.Resize(m.cols)
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: make([]*Row, len(m.rows)), cols: m.cols}
	for i, r := range m.rows {
		c.rows[i] = r.Clone()
	}

	return c
}

// Equal reports whether both matrices have the same shape and entries.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.cols != o.cols || len(m.rows) != len(o.rows) {
		return false
	}
	for i, r := range m.rows {
		if !r.Equal(o.rows[i]) {
			return false
		}
	}

	return true
}

// String renders one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for _, r := range m.rows {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}
