// SPDX-License-Identifier: MIT

// Package mip - input validation.
//
// Validation runs before any mutation, so a rejected input never changes a
// Problem. Order of checks (first failure wins):
//
//	Stage 1: constraint kind (unknown kind, then strict inequality).
//	Stage 2: space dimension of the expression.
package mip

import (
	"fmt"

	"github.com/katalvlaran/exactlp/linear"
)

// validateConstraint checks that c can be materialized in this problem.
func (p *Problem) validateConstraint(c linear.Constraint) error {
	// Stage 1: kind.
	if err := c.Validate(); err != nil {
		return err
	}
	if c.IsStrict() {
		return ErrStrictInequality
	}
	// Stage 2: dimension.
	if d := c.SpaceDimension(); d > p.dim {
		return fmt.Errorf("%w: constraint needs %d variables, problem has %d", ErrDimensionMismatch, d, p.dim)
	}

	return nil
}

// validateObjective checks the direction and the objective dimension.
func (p *Problem) validateObjective(obj linear.Expression, d Direction) error {
	if d > Maximize {
		return fmt.Errorf("%w: %d", ErrUnknownDirection, d)
	}
	if n := obj.SpaceDimension(); n > p.dim {
		return fmt.Errorf("%w: objective needs %d variables, problem has %d", ErrDimensionMismatch, n, p.dim)
	}

	return nil
}

// errUnknownPricing formats an out-of-range pricing rule.
func errUnknownPricing(rule Pricing) error {
	return fmt.Errorf("%w: %d", ErrUnknownPricing, uint8(rule))
}
