// SPDX-License-Identifier: MIT

// Package mip - satisfiability and optimization entry points.
//
// Both entry points work on a copy of the solver state and commit it only
// when they return without error, so cancellation (ErrAbandoned) leaves the
// Problem exactly as the caller last observed it.

package mip

import (
	"context"
	"fmt"
	"math/big"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/linear"
)

// IsSatisfiable reports whether some point (integral on the integer
// variables) satisfies every constraint.
func (p *Problem) IsSatisfiable(ctx context.Context) (bool, error) {
	w := p.st
	ok, err := p.satisfy(ctx, &w)
	if err != nil {
		return false, err
	}
	p.st = w

	return ok, nil
}

// Solve optimizes the objective.
// MAIN DESCRIPTION:
//   - Returns Unfeasible, Unbounded or Optimized. Only usage problems and
//     cancellation are errors.
//
// Implementation:
//   - Stage 1: satisfiability (materializes pending constraints, phase 1).
//   - Stage 2: continuous problems run phase 2 from the cached feasible
//     basis; mixed-integer problems run branch-and-bound.
//
// Behavior highlights:
//   - Idempotent while no input changes: a second call returns the cached
//     status without pivoting.
//   - On Unbounded, FeasiblePoint stays available.
func (p *Problem) Solve(ctx context.Context) (Status, error) {
	w := p.st
	st, err := p.optimize(ctx, &w)
	if err != nil {
		return Unfeasible, err
	}
	p.st = w
	klog.V(2).Infof("mip: solve over %d variables, %d constraints: %s", p.dim, len(p.constraints), st)

	return st, nil
}

// FeasiblePoint returns the last feasible (or optimizing) point computed.
func (p *Problem) FeasiblePoint() (Point, error) {
	switch p.st.status {
	case statusSatisfiable, statusUnbounded, statusOptimized:
		if p.st.point != nil {
			return p.st.point.Clone(), nil
		}
	}

	return Point{}, ErrNoPoint
}

// OptimizingPoint returns the optimizing point of the last Solve.
func (p *Problem) OptimizingPoint() (Point, error) {
	if p.st.status != statusOptimized || p.st.point == nil {
		return Point{}, ErrNoPoint
	}

	return p.st.point.Clone(), nil
}

// ObjectiveValue evaluates the objective at the optimizing point.
func (p *Problem) ObjectiveValue() (*big.Rat, error) {
	pt, err := p.OptimizingPoint()
	if err != nil {
		return nil, err
	}

	return evaluate(p.objective, pt), nil
}

// Evaluate returns the value of e at pt as a rational.
func Evaluate(e linear.Expression, pt Point) *big.Rat { return evaluate(e, pt) }

func evaluate(e linear.Expression, pt Point) *big.Rat {
	return new(big.Rat).SetFrac(scaledValue(e, pt), pt.Den)
}

// scaledValue returns Den * e(pt), an integer.
func scaledValue(e linear.Expression, pt Point) *big.Int {
	v := new(big.Int).Mul(e.Inhom(), pt.Den)
	var t big.Int
	for k, n := range pt.Num {
		c := e.Coefficient(k)
		if c.Sign() != 0 {
			v.Add(v, t.Mul(c, n))
		}
	}

	return v
}

// materialize rebuilds the relaxation tableau when constraints are pending.
// It reports false when the relaxation is infeasible.
func (p *Problem) materialize(ctx context.Context, w *state) (bool, error) {
	if w.feasible != nil && w.firstPending == len(p.constraints) {
		return true, nil
	}
	tb, ok, err := p.relaxation(ctx, nil)
	if err != nil {
		return false, err
	}
	w.firstPending = len(p.constraints)
	if !ok {
		w.feasible = nil

		return false, nil
	}
	w.feasible = tb

	return true, nil
}

// relaxation builds the continuous relaxation of the constraints plus
// extra and brings it to a feasible basis.
func (p *Problem) relaxation(ctx context.Context, extra []linear.Constraint) (*tableau, bool, error) {
	cs := p.constraints
	if len(extra) > 0 {
		cs = append(append(make([]linear.Constraint, 0, len(cs)+len(extra)), cs...), extra...)
	}
	tb, ok := buildTableau(p.dim, cs)
	if !ok {
		return nil, false, nil
	}
	ok, err := newEngine(p.opts).phase1(ctx, tb)
	if err != nil || !ok {
		return nil, false, err
	}

	return tb, true, nil
}

// satisfy decides satisfiability on the working state w.
func (p *Problem) satisfy(ctx context.Context, w *state) (bool, error) {
	switch w.status {
	case statusUnsatisfiable:
		return false, nil
	case statusSatisfiable, statusUnbounded, statusOptimized:
		return true, nil
	}
	ok, err := p.materialize(ctx, w)
	if err != nil {
		return false, err
	}
	if !ok {
		*w = state{status: statusUnsatisfiable, firstPending: len(p.constraints)}

		return false, nil
	}
	if !p.hasIntegers() {
		pt := w.feasible.point()
		w.point, w.status = &pt, statusSatisfiable

		return true, nil
	}
	res, err := newSearch(ctx, p, false).run(w.feasible)
	if err != nil {
		return false, err
	}
	if res.status == Unfeasible {
		w.status, w.point = statusUnsatisfiable, nil

		return false, nil
	}
	w.point, w.status = res.point, statusSatisfiable

	return true, nil
}

// optimize runs Solve on the working state w.
func (p *Problem) optimize(ctx context.Context, w *state) (Status, error) {
	ok, err := p.satisfy(ctx, w)
	if err != nil || !ok {
		return Unfeasible, err
	}
	switch w.status {
	case statusOptimized:
		return Optimized, nil
	case statusUnbounded:
		return Unbounded, nil
	}

	if p.hasIntegers() {
		res, err := newSearch(ctx, p, true).run(w.feasible)
		if err != nil {
			return Unfeasible, err
		}
		switch res.status {
		case Unbounded:
			w.status = statusUnbounded
			if res.point != nil {
				w.point = res.point
			}
		case Optimized:
			w.status, w.point = statusOptimized, res.point
		default:
			// satisfy found an integral point, so the search cannot fail
			return Unfeasible, fmt.Errorf("mip: branch-and-bound lost the feasible point found by satisfiability")
		}

		return res.status, nil
	}

	tb := w.feasible.clone()
	out, err := newEngine(p.opts).phase2(ctx, tb, p.objective, p.direction)
	if err != nil {
		return Unfeasible, err
	}
	if out == phaseUnbounded {
		w.status = statusUnbounded

		return Unbounded, nil
	}
	pt := tb.point()
	w.status, w.point = statusOptimized, &pt

	return Optimized, nil
}
