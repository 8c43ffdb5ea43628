// SPDX-License-Identifier: MIT

package mip_test

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/mip"
)

var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })

func dump(t *testing.T, p *mip.Problem) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.Dump(&buf))

	return buf.String()
}

func reload(t *testing.T, text string, opts ...mip.Option) *mip.Problem {
	t.Helper()
	p, err := mip.Load(strings.NewReader(text), opts...)
	require.NoError(t, err)

	return p
}

func integerProblem(t *testing.T) *mip.Problem {
	t.Helper()
	p := newProblem(t, 2, []linear.Constraint{
		ge(1, 1, -1), ge(12, -3, -2), ge(12, -2, -3), ge(0, 1, 0), ge(0, 0, 1),
	}, mip.WithPricing(mip.PricingSteepestEdgeExact), mip.WithStallThreshold(17))
	require.NoError(t, p.AddIntegerVariables(1))
	require.NoError(t, p.SetObjective(linear.Var(1), mip.Maximize))

	return p
}

func TestDump_RoundTripBeforeSolve(t *testing.T) {
	for name, build := range map[string]func(*testing.T) *mip.Problem{
		"box":     func(t *testing.T) *mip.Problem { return boxProblem(t) },
		"integer": integerProblem,
	} {
		t.Run(name, func(t *testing.T) {
			orig := build(t)
			text := dump(t, orig)
			loaded := reload(t, text)
			assert.Equal(t, text, dump(t, loaded))
			assert.Equal(t, orig.Pricing(), loaded.Pricing())

			ctx := context.Background()
			st1, err := orig.Solve(ctx)
			require.NoError(t, err)
			st2, err := loaded.Solve(ctx)
			require.NoError(t, err)
			require.Equal(t, st1, st2)

			p1, err := orig.OptimizingPoint()
			require.NoError(t, err)
			p2, err := loaded.OptimizingPoint()
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(p1, p2, bigIntComparer))
		})
	}
}

func TestDump_RoundTripKeepsSolverState(t *testing.T) {
	orig := integerProblem(t)
	ctx := context.Background()
	ok, err := orig.IsSatisfiable(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	text := dump(t, orig)
	assert.Contains(t, text, "status: SATISFIABLE")
	assert.Contains(t, text, "tableau:")

	loaded := reload(t, text)
	assert.Equal(t, text, dump(t, loaded))
	fp1, _ := orig.FeasiblePoint()
	fp2, err := loaded.FeasiblePoint()
	require.NoError(t, err)
	assert.True(t, fp1.Equal(fp2))

	// constraints added after the reload are still pending
	require.NoError(t, loaded.AddConstraint(ge(1, -1, 0)))
	require.NoError(t, orig.AddConstraint(ge(1, -1, 0)))
	st1, err := orig.Solve(ctx)
	require.NoError(t, err)
	st2, err := loaded.Solve(ctx)
	require.NoError(t, err)
	assert.Equal(t, st1, st2)
	o1, _ := orig.ObjectiveValue()
	o2, _ := loaded.ObjectiveValue()
	assert.Zero(t, o1.Cmp(o2))
}

func TestDump_LoadOptionsOverrideDump(t *testing.T) {
	text := dump(t, integerProblem(t))
	p := reload(t, text, mip.WithPricing(mip.PricingTextbook))
	assert.Equal(t, mip.PricingTextbook, p.Pricing())
}

func TestLoad_Malformed(t *testing.T) {
	good := dump(t, boxProblem(t))
	cases := map[string]string{
		"not yaml":        "{{{",
		"unknown field":   good + "extra: 1\n",
		"wrong format":    strings.Replace(good, "exactlp/mip/v1", "exactlp/mip/v0", 1),
		"bad direction":   strings.Replace(good, "direction: maximize", "direction: upward", 1),
		"bad pricing":     strings.Replace(good, "pricing: steepest-edge-float", "pricing: dantzig", 1),
		"bad status":      strings.Replace(good, "status: PARTIALLY_SATISFIABLE", "status: MAYBE", 1),
		"bad coefficient": strings.Replace(good, `"3"`, `"3.5"`, 1),
		"unsolved status": strings.Replace(good, "status: PARTIALLY_SATISFIABLE", "status: OPTIMIZED", 1),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotEqual(t, good, text)
			_, err := mip.Load(strings.NewReader(text))
			require.Error(t, err)
			assert.True(t, errors.Is(err, mip.ErrMalformedDump), err.Error())
		})
	}
}

func TestLoad_DecidedStateNeedsTableau(t *testing.T) {
	p := boxProblem(t)
	_, err := p.Solve(context.Background())
	require.NoError(t, err)
	good := dump(t, p)
	require.Contains(t, good, "\ntableau:")
	require.Contains(t, good, "firstPending: 4\n")

	cases := map[string]string{
		"no tableau": good[:strings.Index(good, "\ntableau:")+1],
		"pending":    strings.Replace(good, "firstPending: 4\n", "firstPending: 3\n", 1),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := mip.Load(strings.NewReader(text))
			assert.ErrorIs(t, err, mip.ErrMalformedDump)
		})
	}

	// the intact dump still solves after a new objective
	q := reload(t, good)
	require.NoError(t, q.SetObjective(linear.Var(0), mip.Maximize))
	st, err := q.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mip.Optimized, st)
}
