// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." for consistency; callers match
// with errors.Is and wrap with fmt.Errorf("ctx: %w", ErrX) when context helps.

package matrix

import "errors"

var (
	// ErrDimensionMismatch indicates a Row whose length differs from the
	// column count of the Matrix it is added to, or two Rows of different
	// length combined together.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNegativeSize indicates a negative row or column count.
	ErrNegativeSize = errors.New("matrix: negative size")

	// ErrBadInteger indicates a malformed decimal integer in encoded rows.
	ErrBadInteger = errors.New("matrix: malformed integer")
)

// panic messages for programmer errors in hot paths.
const (
	panicCombineLength = "matrix: Combine on rows of different length"
	panicNegativeSize  = "matrix: negative row length"
)
