// SPDX-License-Identifier: MIT
// Package linear: sentinel error set.

package linear

import "errors"

var (
	// ErrStrictInequality is returned by solvers that only accept equalities
	// and non-strict inequalities.
	ErrStrictInequality = errors.New("linear: strict inequality not allowed")

	// ErrNegativeIndex indicates a negative variable index.
	ErrNegativeIndex = errors.New("linear: negative variable index")

	// ErrUnknownKind indicates a Kind outside the declared set.
	ErrUnknownKind = errors.New("linear: unknown constraint kind")
)
