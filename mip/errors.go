// SPDX-License-Identifier: MIT
// Package mip: sentinel error set.
// Usage errors are reported at the offending call and leave the Problem
// untouched. Infeasibility and unboundedness are Status values, never errors.

package mip

import (
	"errors"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/pivot"
)

var (
	// ErrDimensionMismatch indicates a constraint or objective referring to
	// a variable beyond the space dimension of the Problem.
	ErrDimensionMismatch = errors.New("mip: dimension mismatch")

	// ErrNegativeDimension indicates a negative space dimension.
	ErrNegativeDimension = errors.New("mip: negative space dimension")

	// ErrUnknownVariable indicates an integer-variable index outside the space.
	ErrUnknownVariable = errors.New("mip: unknown variable")

	// ErrNoPoint is returned when a point is requested from a Problem that
	// has none (unsatisfiable, unbounded, or not solved for an optimum).
	ErrNoPoint = errors.New("mip: no point available")

	// ErrUnknownDirection indicates an optimization direction outside the
	// declared set.
	ErrUnknownDirection = errors.New("mip: unknown optimization direction")

	// ErrUnknownPricing indicates a pricing rule outside the declared set.
	ErrUnknownPricing = errors.New("mip: unknown pricing rule")

	// ErrMalformedDump indicates a dump that cannot be loaded.
	ErrMalformedDump = errors.New("mip: malformed dump")

	// ErrStrictInequality aliases linear.ErrStrictInequality.
	ErrStrictInequality = linear.ErrStrictInequality

	// ErrAbandoned aliases pivot.ErrAbandoned.
	ErrAbandoned = pivot.ErrAbandoned
)

// panic messages for invalid option values (programmer errors).
const (
	panicStallThreshold = "mip: WithStallThreshold requires a positive threshold"
	panicPricing        = "mip: WithPricing got an unknown pricing rule"
)
