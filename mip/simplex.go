// SPDX-License-Identifier: MIT

// Package mip - two-phase simplex over the integer tableau.
//
// Phase 1 minimizes the sum of the artificial columns; the problem is
// feasible iff that sum reaches exactly zero. Artificials still basic at
// zero level are then pivoted out (or their row dropped when it is
// redundant) and the artificial columns are removed. Phase 2 optimizes the
// true objective from the feasible basis.
//
// Each phase starts with the configured pricing rule and switches to
// textbook pricing after stallThreshold consecutive degenerate pivots, so
// every phase terminates.

package mip

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/matrix"
	"github.com/katalvlaran/exactlp/metrics"
	"github.com/katalvlaran/exactlp/pivot"
)

// phaseOutcome is the end state of one simplex phase.
type phaseOutcome uint8

const (
	phaseOptimal phaseOutcome = iota
	phaseUnbounded
)

// engine runs simplex phases under one configuration.
type engine struct {
	opts    Options
	pivots  int // pivots performed by this engine, for logging
	stalled int // consecutive degenerate pivots in the current phase
}

func newEngine(opts Options) *engine { return &engine{opts: opts} }

// run pivots until no improving column remains (optimal) or an improving
// column has no bounding row (unbounded).
func (e *engine) run(ctx context.Context, tb *tableau, sign int) (phaseOutcome, error) {
	rule := e.opts.pricing
	e.stalled = 0
	for {
		if err := pivot.Poll(ctx); err != nil {
			return phaseOptimal, err
		}
		in := tb.entering(rule, sign)
		if in < 0 {
			return phaseOptimal, nil
		}
		out := tb.exiting(in, rule != PricingTextbook)
		if out < 0 {
			return phaseUnbounded, nil
		}
		degenerate := tb.t.Row(out).Sign(0) == 0
		tb.pivotOn(out, in)
		e.pivots++
		e.opts.recorder.Pivot(metrics.SolverMIP)
		if klog.V(e.opts.logLevel + 2).Enabled() {
			klog.Infof("mip: pivot %d: column %d enters, row %d leaves (%s, degenerate=%t)",
				e.pivots, in, out, rule, degenerate)
			if err := tb.check(); err != nil {
				klog.Errorf("mip: tableau invariant broken after pivot %d: %v", e.pivots, err)
			}
		}
		if !degenerate {
			e.stalled = 0

			continue
		}
		e.stalled++
		if rule != PricingTextbook && e.stalled >= e.opts.stallThreshold {
			klog.V(e.opts.logLevel).Infof("mip: %s pricing stalled for %d pivots, falling back to %s",
				rule, e.stalled, PricingTextbook)
			e.opts.recorder.PricingFallback()
			rule = PricingTextbook
		}
	}
}

// phase1 drives tb to a feasible basis. It reports false when the
// constraints admit no rational solution. On success tb has no artificial
// columns and no working cost.
func (e *engine) phase1(ctx context.Context, tb *tableau) (bool, error) {
	if !tb.hasArtificials() {
		return true, nil
	}
	cost := matrix.NewRow(tb.numColumns())
	for j := tb.firstArtificial; j < tb.numColumns(); j++ {
		cost.SetInt64(j, 1)
	}
	tb.installCost(cost)
	if _, err := e.run(ctx, tb, -1); err != nil {
		return false, err
	}
	tb.cost = nil
	for i, b := range tb.base {
		if b >= tb.firstArtificial && tb.t.Row(i).Sign(0) != 0 {
			klog.V(e.opts.logLevel).Infof("mip: phase 1 ended with a positive artificial in row %d", i)

			return false, nil
		}
	}
	e.driveOutArtificials(tb)
	tb.dropArtificials()
	klog.V(e.opts.logLevel).Infof("mip: phase 1 feasible after %d pivots, %d rows", e.pivots, tb.numRows())

	return true, nil
}

// driveOutArtificials replaces zero-level basic artificials by original
// columns; rows with no original column left are redundant and dropped.
func (e *engine) driveOutArtificials(tb *tableau) {
	for i := 0; i < tb.numRows(); {
		if tb.base[i] < tb.firstArtificial {
			i++

			continue
		}
		row := tb.t.Row(i)
		j := 1
		for ; j < tb.firstArtificial && row.Sign(j) == 0; j++ {
		}
		if j == tb.firstArtificial {
			tb.removeRow(i)

			continue
		}
		if row.Sign(j) < 0 {
			row.Neg() // right-hand side is zero, orientation is free
		}
		tb.pivotOn(i, j)
		e.pivots++
		e.opts.recorder.Pivot(metrics.SolverMIP)
		i++
	}
}

// phase2 optimizes obj in direction d from the feasible basis of tb.
func (e *engine) phase2(ctx context.Context, tb *tableau, obj linear.Expression, d Direction) (phaseOutcome, error) {
	tb.installCost(tb.objectiveCost(obj))
	out, err := e.run(ctx, tb, d.sign())
	if err != nil {
		return out, err
	}
	klog.V(e.opts.logLevel).Infof("mip: phase 2 %s after %d pivots", map[phaseOutcome]string{
		phaseOptimal:   "optimal",
		phaseUnbounded: "unbounded",
	}[out], e.pivots)

	return out, nil
}
