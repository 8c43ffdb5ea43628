// SPDX-License-Identifier: MIT

package pip_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/pip"
)

func dump(t *testing.T, p *pip.Problem) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.Dump(&buf))

	return buf.String()
}

func reload(t *testing.T, text string, opts ...pip.Option) *pip.Problem {
	t.Helper()
	p, err := pip.Load(strings.NewReader(text), opts...)
	require.NoError(t, err)

	return p
}

func TestDump_RoundTripUnsolved(t *testing.T) {
	p := scenarioC(t, pip.WithCuttingStrategy(pip.CutDeepest))
	text := dump(t, p)
	q := reload(t, text)

	assert.Equal(t, text, dump(t, q))
	assert.Equal(t, pip.CutDeepest, q.CuttingStrategy())
	_, ok := q.Solution()
	assert.False(t, ok)
}

func TestDump_RoundTripSolved(t *testing.T) {
	halfCeiling := func(t *testing.T) *pip.Problem {
		return newProblem(t, 2, []int{1}, []linear.Constraint{ge(0, 2, -1)})
	}
	infeasible := func(t *testing.T) *pip.Problem {
		return newProblem(t, 2, []int{1}, []linear.Constraint{ge(-1, 0, -1)})
	}
	for name, build := range map[string]func(*testing.T) *pip.Problem{
		"scenario C":  func(t *testing.T) *pip.Problem { return scenarioC(t) },
		"artificials": halfCeiling,
		"no solution": infeasible,
	} {
		t.Run(name, func(t *testing.T) {
			p := build(t)
			tree := solve(t, p)
			text := dump(t, p)

			q := reload(t, text)
			loaded, ok := q.Solution()
			require.True(t, ok)
			assert.Equal(t, pip.Format(tree, nil), pip.Format(loaded, nil))
			assert.Equal(t, text, dump(t, q))

			// the loaded tree is usable without solving again
			for n := int64(0); n <= 4; n++ {
				params := ints(n)
				if len(p.Parameters()) == 2 {
					params = ints(n, n)
				}
				want, wantOK, err := pip.Evaluate(tree, params)
				require.NoError(t, err)
				got, gotOK, err := pip.Evaluate(loaded, params)
				require.NoError(t, err)
				assert.Equal(t, wantOK, gotOK)
				assert.Equal(t, toInt64s(want), toInt64s(got))
			}
		})
	}
}

func TestDump_LoadOptionsOverride(t *testing.T) {
	text := dump(t, scenarioC(t))
	q := reload(t, text, pip.WithCuttingStrategy(pip.CutAll), pip.WithPivotRowStrategy(pip.PivotRowMaxColumn))
	assert.Equal(t, pip.CutAll, q.CuttingStrategy())
	assert.Equal(t, pip.PivotRowMaxColumn, q.PivotRowStrategy())
}

func TestLoad_Malformed(t *testing.T) {
	p := newProblem(t, 2, []int{1}, []linear.Constraint{ge(0, 2, -1)})
	solve(t, p)
	good := dump(t, p)

	cases := map[string]string{
		"not yaml":      "{",
		"unknown field": good + "extra: 1\n",
		"format":        strings.Replace(good, "exactlp/pip/v1", "exactlp/pip/v0", 1),
		"cutting":       strings.Replace(good, "cutting: first", "cutting: shallow", 1),
		"pivot row":     strings.Replace(good, "pivotRow: first", "pivotRow: last", 1),
		"parameter":     strings.Replace(good, "parameters:\n- 1", "parameters:\n- 5", 1),
		"node kind":     strings.Replace(good, "kind: solution", "kind: leaf", 1),
		"tree unsolved": strings.Replace(good, "solved: true", "solved: false", 1),
		"bad integer":   strings.Replace(good, "den: \"2\"", "den: two", 1),
		"zero den":      strings.Replace(good, "den: \"2\"", "den: \"0\"", 1),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotEqual(t, good, text, "the mutation must apply")
			_, err := pip.Load(strings.NewReader(text))
			assert.ErrorIs(t, err, pip.ErrMalformedDump)
		})
	}
}
