// SPDX-License-Identifier: MIT
// Package pip: sentinel error set.
// Usage errors are reported at the offending call and leave the Problem
// untouched. An unsatisfiable problem is a nil Node, never an error.

package pip

import (
	"errors"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/pivot"
)

var (
	// ErrDimensionMismatch indicates a constraint beyond the space dimension,
	// or a parameter assignment of the wrong length.
	ErrDimensionMismatch = errors.New("pip: dimension mismatch")

	// ErrNegativeDimension indicates a negative space dimension.
	ErrNegativeDimension = errors.New("pip: negative space dimension")

	// ErrUnknownParameter indicates a parameter index outside the space, or
	// listed twice.
	ErrUnknownParameter = errors.New("pip: unknown parameter")

	// ErrNegativeParameter indicates a negative parameter value; parameters
	// range over the nonnegative integers.
	ErrNegativeParameter = errors.New("pip: negative parameter value")

	// ErrBadDenominator indicates a zero or negative artificial parameter
	// denominator.
	ErrBadDenominator = errors.New("pip: denominator must be positive")

	// ErrUnknownStrategy indicates a cutting or pivot-row strategy outside
	// the declared set.
	ErrUnknownStrategy = errors.New("pip: unknown strategy")

	// ErrMalformedDump indicates a dump that cannot be loaded.
	ErrMalformedDump = errors.New("pip: malformed dump")

	// ErrStrictInequality aliases linear.ErrStrictInequality.
	ErrStrictInequality = linear.ErrStrictInequality

	// ErrAbandoned aliases pivot.ErrAbandoned.
	ErrAbandoned = pivot.ErrAbandoned
)

// panic messages for invalid option values (programmer errors).
const (
	panicCuttingStrategy  = "pip: WithCuttingStrategy got an unknown strategy"
	panicPivotRowStrategy = "pip: WithPivotRowStrategy got an unknown strategy"
)
