// SPDX-License-Identifier: MIT

package mip_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/metrics"
	"github.com/katalvlaran/exactlp/mip"
)

func TestSolve_AbandonedLeavesProblemUnchanged(t *testing.T) {
	for name, build := range map[string]func(*testing.T) *mip.Problem{
		"lp":  func(t *testing.T) *mip.Problem { return boxProblem(t) },
		"mip": integerProblem,
	} {
		t.Run(name, func(t *testing.T) {
			p := build(t)
			before := dump(t, p)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := p.Solve(ctx)
			require.Error(t, err)
			assert.ErrorIs(t, err, mip.ErrAbandoned)
			assert.True(t, errors.Is(err, context.Canceled))
			assert.Equal(t, before, dump(t, p))

			st, err := p.Solve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, mip.Optimized, st)
		})
	}
}

func TestSolve_AbandonedAfterSatisfiability(t *testing.T) {
	p := integerProblem(t)
	ok, err := p.IsSatisfiable(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	before := dump(t, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Solve(ctx)
	assert.ErrorIs(t, err, mip.ErrAbandoned)
	assert.Equal(t, before, dump(t, p))
}

// counterSum adds up every series of the named counter family.
func counterSum(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var sum float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}

	return sum
}

func TestSolve_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	p := boxProblem(t, mip.WithMetrics(rec))
	_, err = p.Solve(context.Background())
	require.NoError(t, err)
	pivots := counterSum(t, reg, "exactlp_pivots_total")
	assert.Greater(t, pivots, 0.0)

	// a cached result costs no pivot
	_, err = p.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pivots, counterSum(t, reg, "exactlp_pivots_total"))

	q := integerProblem(t)
	q2 := newProblem(t, 2, q.Constraints(), mip.WithMetrics(rec))
	require.NoError(t, q2.AddIntegerVariables(q.IntegerVariables()...))
	obj, dir := q.Objective()
	require.NoError(t, q2.SetObjective(obj, dir))
	_, err = q2.Solve(context.Background())
	require.NoError(t, err)
	assert.Greater(t, counterSum(t, reg, "exactlp_bb_nodes_total"), 1.0)
}

func TestSolve_LowStallThresholdStillTerminates(t *testing.T) {
	// x = y, x + y <= 4, x <= 2 yields degenerate pivots at the origin
	cs := []linear.Constraint{
		ge(0, 1, -1), ge(0, -1, 1), ge(4, -1, -1), ge(0, 1, 0), ge(2, -1, 0),
	}
	for _, rule := range allPricings {
		p := newProblem(t, 2, cs, mip.WithPricing(rule), mip.WithStallThreshold(1))
		require.NoError(t, p.SetObjective(linear.NewExpression(0, 1, 2), mip.Maximize))
		st, err := p.Solve(context.Background())
		require.NoError(t, err)
		require.Equal(t, mip.Optimized, st)
		pt, _ := p.OptimizingPoint()
		assert.Equal(t, "(2, 2)", pt.String(), rule)
	}
}
