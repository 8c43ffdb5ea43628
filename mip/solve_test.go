// SPDX-License-Identifier: MIT

// Package mip_test validates the public solver contract.
// Focus:
//  1. Small LPs with known optima under every pricing rule.
//  2. Mixed-integer problems (branch-and-bound) including unbounded and
//     integer-infeasible cases.
//  3. Usage errors reported as sentinels without touching the Problem.
//  4. Incrementality: cached results, monotonicity under added constraints.
package mip_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/mip"
)

var allPricings = []mip.Pricing{
	mip.PricingSteepestEdgeFloat,
	mip.PricingSteepestEdgeExact,
	mip.PricingTextbook,
}

// ge returns inhom + Σ coeffs[i]*x_i >= 0.
func ge(inhom int64, coeffs ...int64) linear.Constraint {
	return linear.Ge(linear.NewExpression(inhom, coeffs...))
}

// eq returns inhom + Σ coeffs[i]*x_i == 0.
func eq(inhom int64, coeffs ...int64) linear.Constraint {
	return linear.Eq(linear.NewExpression(inhom, coeffs...))
}

// newProblem builds a problem over dim variables with cs, failing the test
// on any usage error.
func newProblem(t *testing.T, dim int, cs []linear.Constraint, opts ...mip.Option) *mip.Problem {
	t.Helper()
	p, err := mip.NewProblem(dim, opts...)
	require.NoError(t, err)
	require.NoError(t, p.AddConstraints(cs))

	return p
}

// boxProblem is 0 <= x <= 3, 0 <= y <= 3, maximize x+y.
func boxProblem(t *testing.T, opts ...mip.Option) *mip.Problem {
	t.Helper()
	p := newProblem(t, 2, []linear.Constraint{
		ge(0, 1, 0), ge(3, -1, 0),
		ge(0, 0, 1), ge(3, 0, -1),
	}, opts...)
	require.NoError(t, p.SetObjective(linear.NewExpression(0, 1, 1), mip.Maximize))

	return p
}

func rat(a, b int64) *big.Rat { return big.NewRat(a, b) }

func TestSolve_BoxOptimum(t *testing.T) {
	for _, rule := range allPricings {
		t.Run(rule.String(), func(t *testing.T) {
			p := boxProblem(t, mip.WithPricing(rule))
			st, err := p.Solve(context.Background())
			require.NoError(t, err)
			require.Equal(t, mip.Optimized, st)

			pt, err := p.OptimizingPoint()
			require.NoError(t, err)
			assert.Equal(t, "(3, 3)", pt.String())

			v, err := p.ObjectiveValue()
			require.NoError(t, err)
			assert.Zero(t, v.Cmp(rat(6, 1)))
		})
	}
}

func TestSolve_ContradictoryIntegerBounds(t *testing.T) {
	for _, rule := range allPricings {
		t.Run(rule.String(), func(t *testing.T) {
			p := newProblem(t, 1, []linear.Constraint{ge(-1, 1), ge(0, -1)}, mip.WithPricing(rule))
			require.NoError(t, p.AddIntegerVariables(0))

			ok, err := p.IsSatisfiable(context.Background())
			require.NoError(t, err)
			assert.False(t, ok)

			st, err := p.Solve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, mip.Unfeasible, st)

			_, err = p.FeasiblePoint()
			assert.ErrorIs(t, err, mip.ErrNoPoint)
		})
	}
}

func TestSolve_RationalOptimum(t *testing.T) {
	// maximize x subject to 3x <= 1
	p := newProblem(t, 1, []linear.Constraint{ge(1, -3)})
	require.NoError(t, p.SetObjective(linear.Var(0), mip.Maximize))

	st, err := p.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, mip.Optimized, st)
	pt, err := p.OptimizingPoint()
	require.NoError(t, err)
	assert.Equal(t, "(1)/3", pt.String())
	assert.False(t, pt.IsIntegral(0))
	assert.Zero(t, pt.Coordinate(0).Cmp(rat(1, 3)))
}

func TestSolve_FreeVariableGoesNegative(t *testing.T) {
	// minimize x subject to x >= -5
	p := newProblem(t, 1, []linear.Constraint{ge(5, 1)})
	require.NoError(t, p.SetObjective(linear.Var(0), mip.Minimize))

	st, err := p.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, mip.Optimized, st)
	pt, _ := p.OptimizingPoint()
	assert.Equal(t, "(-5)", pt.String())
}

func TestSolve_Equality(t *testing.T) {
	// minimize x+y subject to x + 2y = 4, x, y >= 0
	for _, rule := range allPricings {
		p := newProblem(t, 2, []linear.Constraint{eq(-4, 1, 2), ge(0, 1, 0), ge(0, 0, 1)}, mip.WithPricing(rule))
		require.NoError(t, p.SetObjective(linear.NewExpression(0, 1, 1), mip.Minimize))

		st, err := p.Solve(context.Background())
		require.NoError(t, err)
		require.Equal(t, mip.Optimized, st, rule)
		pt, _ := p.OptimizingPoint()
		assert.Equal(t, "(0, 2)", pt.String(), rule)
	}
}

func TestSolve_UnboundedKeepsFeasiblePoint(t *testing.T) {
	// maximize x subject to y >= 0
	p := newProblem(t, 2, []linear.Constraint{ge(0, 0, 1)})
	require.NoError(t, p.SetObjective(linear.Var(0), mip.Maximize))

	st, err := p.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mip.Unbounded, st)

	_, err = p.OptimizingPoint()
	assert.ErrorIs(t, err, mip.ErrNoPoint)
	pt, err := p.FeasiblePoint()
	require.NoError(t, err)
	assert.Equal(t, 2, pt.Dimension())
}

func TestSolve_EmptyProblemIsOptimal(t *testing.T) {
	p, err := mip.NewProblem(3)
	require.NoError(t, err)
	st, err := p.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mip.Optimized, st)
	pt, _ := p.OptimizingPoint()
	assert.Equal(t, "(0, 0, 0)", pt.String())
}

func TestSolve_ConstantContradiction(t *testing.T) {
	p := newProblem(t, 1, []linear.Constraint{ge(-1)})
	ok, err := p.IsSatisfiable(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolve_BranchAndBound(t *testing.T) {
	// maximize y subject to -x + y <= 1, 3x + 2y <= 12, 2x + 3y <= 12,
	// x, y >= 0 integer. The relaxation peaks at y = 2.8.
	cs := []linear.Constraint{
		ge(1, 1, -1), ge(12, -3, -2), ge(12, -2, -3),
		ge(0, 1, 0), ge(0, 0, 1),
	}
	for _, rule := range allPricings {
		t.Run(rule.String(), func(t *testing.T) {
			p := newProblem(t, 2, cs, mip.WithPricing(rule))
			require.NoError(t, p.AddIntegerVariables(0, 1))
			require.NoError(t, p.SetObjective(linear.Var(1), mip.Maximize))

			st, err := p.Solve(context.Background())
			require.NoError(t, err)
			require.Equal(t, mip.Optimized, st)
			pt, err := p.OptimizingPoint()
			require.NoError(t, err)
			assert.True(t, pt.IsIntegral(0))
			assert.True(t, pt.IsIntegral(1))
			assert.Zero(t, pt.Coordinate(1).Cmp(rat(2, 1)))
			for _, c := range cs {
				assert.GreaterOrEqual(t, mip.Evaluate(c.Expr, pt).Sign(), 0, c.String())
			}
		})
	}
}

func TestSolve_IntegerKnapsack(t *testing.T) {
	// maximize x+y subject to 2x + 2y <= 5, x, y >= 0 integer
	p := newProblem(t, 2, []linear.Constraint{ge(5, -2, -2), ge(0, 1, 0), ge(0, 0, 1)})
	require.NoError(t, p.AddIntegerVariables(0, 1))
	require.NoError(t, p.SetObjective(linear.NewExpression(0, 1, 1), mip.Maximize))

	st, err := p.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, mip.Optimized, st)
	v, err := p.ObjectiveValue()
	require.NoError(t, err)
	assert.Zero(t, v.Cmp(rat(2, 1)))
}

func TestSolve_IntegerInfeasibleRelaxationFeasible(t *testing.T) {
	// 2x = 1 has the rational solution 1/2 only.
	p := newProblem(t, 1, []linear.Constraint{eq(-1, 2)})
	ok, err := p.IsSatisfiable(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, p.AddIntegerVariables(0))
	ok, err = p.IsSatisfiable(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolve_IntegerUnbounded(t *testing.T) {
	// maximize x subject to x >= 0, x integer
	p := newProblem(t, 1, []linear.Constraint{ge(0, 1)})
	require.NoError(t, p.AddIntegerVariables(0))
	require.NoError(t, p.SetObjective(linear.Var(0), mip.Maximize))

	st, err := p.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mip.Unbounded, st)
	pt, err := p.FeasiblePoint()
	require.NoError(t, err)
	assert.True(t, pt.IsIntegral(0))
}

func TestSolve_PricingRulesAgree(t *testing.T) {
	problems := []struct {
		name string
		dim  int
		cs   []linear.Constraint
		obj  linear.Expression
		dir  mip.Direction
	}{
		{"diet", 2, []linear.Constraint{ge(-8, 2, 1), ge(-6, 1, 2), ge(0, 1, 0), ge(0, 0, 1)},
			linear.NewExpression(0, 3, 2), mip.Minimize},
		{"production", 3, []linear.Constraint{
			ge(40, -1, -1, -1), ge(60, -2, -1, 0), ge(30, 0, -1, -1),
			ge(0, 1, 0, 0), ge(0, 0, 1, 0), ge(0, 0, 0, 1),
		}, linear.NewExpression(0, 3, 2, 4), mip.Maximize},
		{"degenerate", 2, []linear.Constraint{
			ge(0, 1, -1), ge(0, -1, 1), ge(4, -1, -1), ge(0, 1, 0), ge(2, -1, 0),
		}, linear.NewExpression(0, 1, 2), mip.Maximize},
	}
	for _, tc := range problems {
		t.Run(tc.name, func(t *testing.T) {
			var want *big.Rat
			for _, rule := range allPricings {
				p := newProblem(t, tc.dim, tc.cs, mip.WithPricing(rule))
				require.NoError(t, p.SetObjective(tc.obj, tc.dir))
				st, err := p.Solve(context.Background())
				require.NoError(t, err)
				require.Equal(t, mip.Optimized, st, rule)
				v, err := p.ObjectiveValue()
				require.NoError(t, err)
				if want == nil {
					want = v

					continue
				}
				assert.Zero(t, want.Cmp(v), "%s: %s vs %s", rule, v, want)
			}
		})
	}
}

func TestSolve_AddingConstraintsNeverImproves(t *testing.T) {
	p := boxProblem(t)
	ctx := context.Background()
	_, err := p.Solve(ctx)
	require.NoError(t, err)
	prev, _ := p.ObjectiveValue()

	for _, c := range []linear.Constraint{ge(5, -1, -1), ge(3, -2, -1), ge(1, -1, 0)} {
		require.NoError(t, p.AddConstraint(c))
		st, err := p.Solve(ctx)
		require.NoError(t, err)
		require.Equal(t, mip.Optimized, st)
		v, _ := p.ObjectiveValue()
		assert.LessOrEqual(t, v.Cmp(prev), 0, "%s after %s", v, c)
		prev = v
	}
	// 2x + y <= 3, x <= 1 in the box: best is x = 0, y = 3
	assert.Zero(t, prev.Cmp(rat(3, 1)))
}

func TestSolve_ObjectiveChangeReoptimizes(t *testing.T) {
	p := boxProblem(t)
	ctx := context.Background()
	_, err := p.Solve(ctx)
	require.NoError(t, err)

	require.NoError(t, p.SetObjective(linear.NewExpression(0, 1, -1), mip.Minimize))
	_, err = p.OptimizingPoint()
	assert.ErrorIs(t, err, mip.ErrNoPoint)

	st, err := p.Solve(ctx)
	require.NoError(t, err)
	require.Equal(t, mip.Optimized, st)
	pt, _ := p.OptimizingPoint()
	assert.Equal(t, "(0, 3)", pt.String())
}

func TestProblem_UsageErrors(t *testing.T) {
	_, err := mip.NewProblem(-1)
	assert.ErrorIs(t, err, mip.ErrNegativeDimension)

	p, err := mip.NewProblem(2)
	require.NoError(t, err)

	assert.ErrorIs(t, p.AddConstraint(linear.Gt(linear.Var(0))), mip.ErrStrictInequality)
	assert.ErrorIs(t, p.AddConstraint(ge(0, 0, 0, 1)), mip.ErrDimensionMismatch)
	assert.ErrorIs(t, p.SetObjective(linear.Var(2), mip.Maximize), mip.ErrDimensionMismatch)
	assert.ErrorIs(t, p.SetObjective(linear.Var(0), mip.Direction(7)), mip.ErrUnknownDirection)
	assert.ErrorIs(t, p.AddIntegerVariables(0, 2), mip.ErrUnknownVariable)
	assert.ErrorIs(t, p.SetPricing(mip.Pricing(9)), mip.ErrUnknownPricing)

	// the batch is rejected as a whole
	assert.ErrorIs(t, p.AddConstraints([]linear.Constraint{ge(1, 1), linear.Gt(linear.Var(1))}), mip.ErrStrictInequality)
	assert.Empty(t, p.Constraints())
	assert.Empty(t, p.IntegerVariables())

	_, err = p.OptimizingPoint()
	assert.ErrorIs(t, err, mip.ErrNoPoint)

	assert.Panics(t, func() { mip.WithStallThreshold(0) })
	assert.Panics(t, func() { mip.WithPricing(mip.Pricing(3)) })
}

func TestProblem_CloneIsIndependent(t *testing.T) {
	p := boxProblem(t)
	ctx := context.Background()
	_, err := p.Solve(ctx)
	require.NoError(t, err)

	c := p.Clone()
	require.NoError(t, c.AddConstraint(ge(2, -1, 0)))
	st, err := c.Solve(ctx)
	require.NoError(t, err)
	require.Equal(t, mip.Optimized, st)

	pt, _ := p.OptimizingPoint()
	assert.Equal(t, "(3, 3)", pt.String())
	cpt, _ := c.OptimizingPoint()
	assert.Equal(t, "(2, 3)", cpt.String())
}

func TestProblem_ClearAndGrow(t *testing.T) {
	p := boxProblem(t)
	require.NoError(t, p.AddIntegerVariables(1))
	p.Clear()
	assert.Empty(t, p.Constraints())
	assert.Empty(t, p.IntegerVariables())

	require.NoError(t, p.AddSpaceDimensions(1))
	assert.Equal(t, 3, p.SpaceDimension())
	require.NoError(t, p.AddConstraint(ge(-2, 0, 0, 1)))
	st, err := p.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mip.Optimized, st)
	pt, _ := p.FeasiblePoint()
	assert.True(t, pt.Coordinate(2).Cmp(rat(2, 1)) >= 0)
}

func TestParseHelpers(t *testing.T) {
	for _, rule := range allPricings {
		got, err := mip.ParsePricing(rule.String())
		require.NoError(t, err)
		assert.Equal(t, rule, got)
	}
	_, err := mip.ParsePricing("dantzig")
	assert.ErrorIs(t, err, mip.ErrUnknownPricing)

	d, err := mip.ParseDirection("max")
	require.NoError(t, err)
	assert.Equal(t, mip.Maximize, d)
	_, err = mip.ParseDirection("sideways")
	assert.ErrorIs(t, err, mip.ErrUnknownDirection)

	assert.Equal(t, "OPTIMIZED", mip.Optimized.String())
	assert.Equal(t, "UNFEASIBLE", mip.Unfeasible.String())
}
