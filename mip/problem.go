// SPDX-License-Identifier: MIT

package mip

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/exactlp/linear"
)

// Problem is a (mixed-integer) linear program over exact rationals:
// optimize an objective subject to equalities and non-strict inequalities,
// with an optional set of variables required to be integral.
//
// Inputs are accumulated by AddConstraint / SetObjective and materialized
// lazily into the simplex tableau by IsSatisfiable or Solve, once per batch
// of pending constraints. A Problem is not safe for concurrent use.
type Problem struct {
	dim         int
	constraints []linear.Constraint
	objective   linear.Expression
	direction   Direction
	integers    []bool
	opts        Options
	st          state
}

// state is everything a solve may change; it is replaced as a whole when a
// call succeeds, so an abandoned call leaves no trace.
type state struct {
	status       internalStatus
	firstPending int      // constraints[firstPending:] are not materialized yet
	feasible     *tableau // feasible basis of the continuous relaxation; read-only
	point        *Point   // feasible point, or optimizing point when optimized
}

// NewProblem creates an empty problem over dim variables, minimizing the
// zero objective.
func NewProblem(dim int, opts ...Option) (*Problem, error) {
	if dim < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDimension, dim)
	}

	return &Problem{
		dim:       dim,
		objective: linear.Expression{Inhomogeneous: new(big.Int)},
		integers:  make([]bool, dim),
		opts:      gatherOptions(opts...),
		st:        state{status: statusPartiallySatisfiable},
	}, nil
}

// SpaceDimension returns the number of variables.
func (p *Problem) SpaceDimension() int { return p.dim }

// Constraints returns copies of all constraints, in insertion order.
func (p *Problem) Constraints() []linear.Constraint {
	out := make([]linear.Constraint, len(p.constraints))
	for i, c := range p.constraints {
		out[i] = linear.Constraint{Expr: c.Expr.Clone(), Kind: c.Kind}
	}

	return out
}

// Objective returns a copy of the objective and its direction.
func (p *Problem) Objective() (linear.Expression, Direction) {
	return p.objective.Clone(), p.direction
}

// IntegerVariables returns the sorted indices of integer variables.
func (p *Problem) IntegerVariables() []int {
	var out []int
	for k, isInt := range p.integers {
		if isInt {
			out = append(out, k)
		}
	}

	return out
}

// Pricing returns the configured pricing rule.
func (p *Problem) Pricing() Pricing { return p.opts.pricing }

// SetPricing changes the pricing rule used by later solves.
func (p *Problem) SetPricing(rule Pricing) error {
	if rule > PricingTextbook {
		return fmt.Errorf("mip: set pricing: %w", errUnknownPricing(rule))
	}
	p.opts.pricing = rule

	return nil
}

// AddConstraint appends c to the pending constraints.
// Strict inequalities and constraints beyond the space dimension are
// rejected without modifying the problem.
func (p *Problem) AddConstraint(c linear.Constraint) error {
	if err := p.validateConstraint(c); err != nil {
		return fmt.Errorf("mip: add constraint: %w", err)
	}
	p.appendConstraint(c)

	return nil
}

// AddConstraints appends all of cs, or none of them when one is invalid.
func (p *Problem) AddConstraints(cs []linear.Constraint) error {
	for i, c := range cs {
		if err := p.validateConstraint(c); err != nil {
			return fmt.Errorf("mip: add constraint %d: %w", i, err)
		}
	}
	for _, c := range cs {
		p.appendConstraint(c)
	}

	return nil
}

func (p *Problem) appendConstraint(c linear.Constraint) {
	p.constraints = append(p.constraints, linear.Constraint{Expr: c.Expr.Clone(), Kind: c.Kind})
	if p.st.status != statusUnsatisfiable {
		p.st.status = statusPartiallySatisfiable
	}
}

// SetObjective replaces the objective function and direction.
func (p *Problem) SetObjective(obj linear.Expression, d Direction) error {
	if err := p.validateObjective(obj, d); err != nil {
		return fmt.Errorf("mip: set objective: %w", err)
	}
	p.objective = obj.Clone()
	p.direction = d
	if p.st.status == statusOptimized || p.st.status == statusUnbounded {
		p.st.status = statusSatisfiable
	}

	return nil
}

// AddIntegerVariables requires the given variables to take integral values.
func (p *Problem) AddIntegerVariables(vars ...int) error {
	for _, k := range vars {
		if k < 0 || k >= p.dim {
			return fmt.Errorf("mip: add integer variable %d: %w", k, ErrUnknownVariable)
		}
	}
	changed := false
	for _, k := range vars {
		changed = changed || !p.integers[k]
		p.integers[k] = true
	}
	if changed && p.st.status != statusUnsatisfiable {
		p.st.status = statusPartiallySatisfiable
	}

	return nil
}

// AddSpaceDimensions appends n unconstrained variables.
func (p *Problem) AddSpaceDimensions(n int) error {
	if n < 0 {
		return fmt.Errorf("mip: add space dimensions: %w: %d", ErrNegativeDimension, n)
	}
	if n == 0 {
		return nil
	}
	p.dim += n
	p.integers = append(p.integers, make([]bool, n)...)
	if p.st.status != statusUnsatisfiable {
		p.st = state{status: statusPartiallySatisfiable}
	}

	return nil
}

// Clear removes every constraint, the objective and the integrality
// requirements, keeping the space dimension and options.
func (p *Problem) Clear() {
	p.constraints = nil
	p.objective = linear.Expression{Inhomogeneous: new(big.Int)}
	p.direction = Minimize
	p.integers = make([]bool, p.dim)
	p.st = state{status: statusPartiallySatisfiable}
}

// Clone returns an independent copy sharing no mutable state.
func (p *Problem) Clone() *Problem {
	c := &Problem{
		dim:         p.dim,
		constraints: p.Constraints(),
		objective:   p.objective.Clone(),
		direction:   p.direction,
		integers:    append([]bool(nil), p.integers...),
		opts:        p.opts,
		st:          p.st,
	}
	if p.st.point != nil {
		pt := p.st.point.Clone()
		c.st.point = &pt
	}

	return c
}

func (p *Problem) hasIntegers() bool {
	for _, isInt := range p.integers {
		if isInt {
			return true
		}
	}

	return false
}
