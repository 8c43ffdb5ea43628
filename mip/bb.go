// SPDX-License-Identifier: MIT

// Package mip - branch-and-bound over the integer variables.
//
// Every node is the continuous relaxation of the problem constraints plus
// the bound constraints collected along its path from the root. A node is:
//   - pruned when its relaxation is infeasible, or (when optimizing) when its
//     relaxed value is not strictly better than the incumbent;
//   - a leaf when its basic solution is integral on every integer variable;
//     the point becomes the new incumbent;
//   - split otherwise on one fractional integer variable x with value v into
//     x <= floor(v) (explored first) and x >= floor(v)+1.
//
// Branching variable: the fractional integer variable occurring in the most
// constraints that are tight at the relaxed point, then the most fractional
// one, then the lowest index. The order is fully deterministic.
//
// When the root relaxation is unbounded, the search runs in feasibility
// mode: an integral point proves the problem unbounded (rational data),
// none proves it unfeasible.

package mip

import (
	"context"
	"math/big"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/pivot"
)

// searchResult is the outcome of a branch-and-bound run.
type searchResult struct {
	status Status
	point  *Point
}

// search holds all branch-and-bound data and policies.
type search struct {
	// Configuration / policy
	ctx      context.Context
	p        *Problem
	optimize bool

	// Current path
	bounds []linear.Constraint

	// Incumbent
	best     *Point
	bestVal  *big.Rat
	foundAny bool

	nodes int
}

func newSearch(ctx context.Context, p *Problem, optimize bool) *search {
	return &search{ctx: ctx, p: p, optimize: optimize}
}

// run explores the tree rooted at the feasible relaxation root, which is
// not modified.
func (s *search) run(root *tableau) (searchResult, error) {
	tb := root.clone()
	if s.optimize {
		eng := newEngine(s.p.opts)
		out, err := eng.phase2(s.ctx, tb, s.p.objective, s.p.direction)
		if err != nil {
			return searchResult{}, err
		}
		if out == phaseUnbounded {
			klog.V(s.p.opts.logLevel).Info("mip: relaxation unbounded, searching for an integral point")
			s.optimize = false
			if err = s.node(root.clone(), false); err != nil {
				return searchResult{}, err
			}
			if !s.foundAny {
				return searchResult{status: Unfeasible}, nil
			}

			return searchResult{status: Unbounded, point: s.best}, nil
		}
	}
	if err := s.node(tb, s.optimize); err != nil {
		return searchResult{}, err
	}
	klog.V(s.p.opts.logLevel).Infof("mip: branch-and-bound explored %d nodes, found=%t", s.nodes, s.foundAny)
	if !s.foundAny {
		return searchResult{status: Unfeasible}, nil
	}

	// a feasibility run reports its point as optimal for the zero objective
	return searchResult{status: Optimized, point: s.best}, nil
}

// done reports whether a feasibility search may stop.
func (s *search) done() bool { return !s.optimize && s.foundAny }

// node processes one feasible relaxation; optimized tells whether tb
// already holds an optimal basis for the objective.
func (s *search) node(tb *tableau, optimized bool) error {
	if err := pivot.Poll(s.ctx); err != nil {
		return err
	}
	s.nodes++
	s.p.opts.recorder.BranchNode()

	if s.optimize && !optimized {
		out, err := newEngine(s.p.opts).phase2(s.ctx, tb, s.p.objective, s.p.direction)
		if err != nil {
			return err
		}
		if out == phaseUnbounded {
			// bounds only shrink the root region, whose relaxation is bounded
			return nil
		}
	}
	pt := tb.point()
	var val *big.Rat
	if s.optimize {
		val = evaluate(s.p.objective, pt)
		if s.foundAny && !s.improves(val) {
			return nil
		}
	}

	k := s.branchVariable(pt)
	if k < 0 {
		s.best, s.bestVal, s.foundAny = &pt, val, true
		klog.V(s.p.opts.logLevel+1).Infof("mip: incumbent %s at node %d", pt, s.nodes)

		return nil
	}

	floor := new(big.Int).Div(pt.Num[k], pt.Den) // Euclidean: floor for Den > 0
	ceil := new(big.Int).Add(floor, big.NewInt(1))
	x := linear.Var(k)
	for _, c := range [...]linear.Constraint{
		linear.LessEq(x, constant(floor)),
		linear.GreaterEq(x, constant(ceil)),
	} {
		s.bounds = append(s.bounds, c)
		child, ok, err := s.p.relaxation(s.ctx, s.bounds)
		if err == nil && ok {
			err = s.node(child, false)
		}
		s.bounds = s.bounds[:len(s.bounds)-1]
		if err != nil {
			return err
		}
		if s.done() {
			return nil
		}
	}

	return nil
}

// improves reports whether val is strictly better than the incumbent.
func (s *search) improves(val *big.Rat) bool {
	c := val.Cmp(s.bestVal)
	if s.p.direction == Maximize {
		return c > 0
	}

	return c < 0
}

// branchVariable picks the fractional integer variable to split on, or -1
// when pt is integral on every integer variable.
func (s *search) branchVariable(pt Point) int {
	var (
		best      = -1
		bestTight int
		bestDist  *big.Int // |2*frac - den|: smaller is more fractional
		rem, dist big.Int
	)
	for k, isInt := range s.p.integers {
		if !isInt || pt.IsIntegral(k) {
			continue
		}
		tight := s.tightCount(k, pt)
		rem.Mod(pt.Num[k], pt.Den)
		dist.Lsh(&rem, 1)
		dist.Sub(&dist, pt.Den)
		dist.Abs(&dist)
		switch {
		case best < 0,
			tight > bestTight,
			tight == bestTight && dist.Cmp(bestDist) < 0:
			best, bestTight, bestDist = k, tight, new(big.Int).Set(&dist)
		}
	}

	return best
}

// tightCount counts the constraints on the current path that mention
// variable k and hold with equality at pt.
func (s *search) tightCount(k int, pt Point) int {
	n := 0
	count := func(cs []linear.Constraint) {
		for _, c := range cs {
			if c.Expr.Coefficient(k).Sign() != 0 && scaledValue(c.Expr, pt).Sign() == 0 {
				n++
			}
		}
	}
	count(s.p.constraints)
	count(s.bounds)

	return n
}

func constant(v *big.Int) linear.Expression {
	return linear.Expression{Inhomogeneous: new(big.Int).Set(v)}
}
