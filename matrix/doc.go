// SPDX-License-Identifier: MIT

// Package matrix provides the exact-integer storage used by the solvers:
// Row, an owned growable vector of arbitrary-precision coefficients, and
// Matrix, an ordered sequence of Rows sharing one column count.
//
// Storage is dense. Every entry of a Row is a non-nil *big.Int owned by the
// Row; accessors hand out the stored pointer for reading and callers must
// not mutate it. Writers (Set, Combine, Scale, Normalize, ...) copy values in.
//
// Quick example:
//
//	r := matrix.RowOf(4, -6, 10)
//	r.Normalize()      // r == [2 -3 5]
//	m := matrix.NewMatrix(0, 3)
//	_ = m.AddRow(r)    // m has one row
//
// Indexing follows Go slices: out-of-range indices on the hot accessors
// (Get, Set) panic, while the structural mutators of Matrix return
// ErrOutOfRange / ErrDimensionMismatch.
package matrix
