// SPDX-License-Identifier: MIT

package problemfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/mip"
	"github.com/katalvlaran/exactlp/pip"
	"github.com/katalvlaran/exactlp/problemfile"
)

const pipScenario = `
kind: pip
dimensions: [i, j, n, m]
parameters: [m, n]
constraints:
  - {coefficients: {i: 2, j: 3}, constant: -8, relation: ">="}
  - {coefficients: {i: 4, j: -1}, constant: -4, relation: ">="}
  - {coefficients: {i: 1, n: -1}, relation: "<="}
  - {coefficients: {j: 1, m: -1}, relation: "<="}
`

const mipBox = `
kind: mip
dimensions: [x, y]
integers: [y]
objective: {coefficients: {x: 1, y: 1}}
direction: maximize
constraints:
  - {coefficients: {x: 1}, relation: ">="}
  - {coefficients: {x: 1}, constant: -3, relation: "<="}
  - {coefficients: {y: 1}, relation: ">="}
  - {coefficients: {y: 2}, constant: "-7", relation: "<="}
`

func TestParse_PIPScenario(t *testing.T) {
	f, err := problemfile.Parse([]byte(pipScenario))
	require.NoError(t, err)

	cs, err := f.LinearConstraints()
	require.NoError(t, err)
	require.Len(t, cs, 4)
	assert.Equal(t, linear.Ge(linear.NewExpression(-8, 2, 3, 0, 0)).String(), cs[0].String())
	// "i - n <= 0" becomes "n - i >= 0"
	assert.Equal(t, linear.Ge(linear.NewExpression(0, -1, 0, 1, 0)).String(), cs[2].String())

	p, err := f.PIP()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, p.Parameters())

	tree, err := p.Solve(context.Background())
	require.NoError(t, err)
	params, err := f.Assignment("m=2, n=2")
	require.NoError(t, err)
	values, ok, err := pip.Evaluate(tree, params)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", values[0].String())
	assert.Equal(t, "2", values[1].String())
}

func TestParse_MIPBox(t *testing.T) {
	f, err := problemfile.Parse([]byte(mipBox))
	require.NoError(t, err)

	p, err := f.MIP(mip.WithPricing(mip.PricingTextbook))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, p.IntegerVariables())

	st, err := p.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, mip.Optimized, st)
	pt, err := p.OptimizingPoint()
	require.NoError(t, err)
	assert.Equal(t, "(3, 3)", pt.String())
}

func TestParse_WrongKind(t *testing.T) {
	f, err := problemfile.Parse([]byte(mipBox))
	require.NoError(t, err)
	_, err = f.PIP()
	assert.ErrorIs(t, err, problemfile.ErrWrongKind)

	g, err := problemfile.Parse([]byte(pipScenario))
	require.NoError(t, err)
	_, err = g.MIP()
	assert.ErrorIs(t, err, problemfile.ErrWrongKind)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		text string
		want error
	}{
		"not yaml":        {"{", problemfile.ErrMalformed},
		"unknown field":   {"kind: mip\ndimensions: [x]\nconstraints: []\nextra: 1\n", problemfile.ErrMalformed},
		"kind":            {"kind: lp\ndimensions: [x]\n", problemfile.ErrMalformed},
		"empty name":      {"kind: mip\ndimensions: [x, \"\"]\n", problemfile.ErrMalformed},
		"duplicate":       {"kind: mip\ndimensions: [x, x]\n", problemfile.ErrDuplicateName},
		"unknown integer": {"kind: mip\ndimensions: [x]\nintegers: [y]\n", problemfile.ErrUnknownName},
		"unknown coeff": {"kind: mip\ndimensions: [x]\nconstraints:\n- {coefficients: {y: 1}, relation: \">=\"}\n",
			problemfile.ErrUnknownName},
		"relation": {"kind: mip\ndimensions: [x]\nconstraints:\n- {coefficients: {x: 1}, relation: \"=>\"}\n",
			problemfile.ErrMalformed},
		"coefficient": {"kind: mip\ndimensions: [x]\nconstraints:\n- {coefficients: {x: 1.5}, relation: \">=\"}\n",
			problemfile.ErrMalformed},
		"direction":      {"kind: mip\ndimensions: [x]\ndirection: up\n", problemfile.ErrMalformed},
		"pip parameters": {"kind: pip\ndimensions: [x]\nparameters: [x, x]\n", problemfile.ErrDuplicateName},
		"pip objective":  {"kind: pip\ndimensions: [x]\nobjective: {constant: 1}\n", problemfile.ErrMalformed},
		"mip parameters": {"kind: mip\ndimensions: [x]\nparameters: [x]\n", problemfile.ErrMalformed},
		"unknown param":  {"kind: pip\ndimensions: [x]\nparameters: [n]\n", problemfile.ErrUnknownName},
		"bad objective":  {"kind: mip\ndimensions: [x]\nobjective: {coefficients: {z: 1}}\n", problemfile.ErrUnknownName},
		"empty":          {"", problemfile.ErrMalformed},
		"list constant": {"kind: mip\ndimensions: [x]\nconstraints:\n- {constant: [1], relation: \">=\"}\n",
			problemfile.ErrMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := problemfile.Parse([]byte(tc.text))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_StrictRelationReachesSolver(t *testing.T) {
	f, err := problemfile.Parse([]byte("kind: mip\ndimensions: [x]\nconstraints:\n- {coefficients: {x: 1}, relation: \"<\"}\n"))
	require.NoError(t, err)
	cs, err := f.LinearConstraints()
	require.NoError(t, err)
	assert.True(t, cs[0].IsStrict())

	_, err = f.MIP()
	assert.ErrorIs(t, err, mip.ErrStrictInequality)
}

func TestIntegers_BigAndQuoted(t *testing.T) {
	text := "kind: mip\ndimensions: [x]\nconstraints:\n" +
		"- {coefficients: {x: \"123456789012345678901234567890\"}, constant: -1, relation: \">=\"}\n"
	f, err := problemfile.Parse([]byte(text))
	require.NoError(t, err)
	cs, err := f.LinearConstraints()
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", cs[0].Expr.Coefficient(0).String())

	out, err := f.Marshal()
	require.NoError(t, err)
	g, err := problemfile.Parse(out)
	require.NoError(t, err)
	ds, err := g.LinearConstraints()
	require.NoError(t, err)
	assert.True(t, cmp.Equal(cs[0].String(), ds[0].String()), cmp.Diff(cs[0].String(), ds[0].String()))
}

func TestParse_NamesStayStrings(t *testing.T) {
	text := `
kind: pip
dimensions: [x, y, n]
parameters: [n]
constraints:
  - {coefficients: {x: 1, n: -1}, relation: ">="}
  - {coefficients: {y: 1, x: -1}, relation: ">="}
  - {coefficients: {y: 1}, constant: 123456789012345678901234567890, relation: ">="}
`
	f, err := problemfile.Parse([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "n"}, f.Dimensions)
	assert.Equal(t, []string{"n"}, f.Parameters)

	cs, err := f.LinearConstraints()
	require.NoError(t, err)
	require.Len(t, cs, 3)
	assert.Equal(t, "123456789012345678901234567890", cs[2].Expr.Inhomogeneous.String())

	p, err := f.PIP()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, p.Parameters())
	tree, err := p.Solve(context.Background())
	require.NoError(t, err)
	params, err := f.Assignment("n=3")
	require.NoError(t, err)
	values, ok, err := pip.Evaluate(tree, params)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", values[0].String())
	assert.Equal(t, "3", values[1].String())

	out, err := f.Marshal()
	require.NoError(t, err)
	g, err := problemfile.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, f.Dimensions, g.Dimensions)
	assert.Equal(t, f.Parameters, g.Parameters)
	ds, err := g.LinearConstraints()
	require.NoError(t, err)
	assert.Equal(t, cs[2].String(), ds[2].String())
}

func TestAssignment(t *testing.T) {
	f, err := problemfile.Parse([]byte(pipScenario))
	require.NoError(t, err)

	// values come back in dimension order: n then m
	vs, err := f.Assignment("m=5,n=7")
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "7", vs[0].String())
	assert.Equal(t, "5", vs[1].String())

	for _, bad := range []string{"", "n=1", "n=1,m=2,n=3", "n=1,m=x", "n=1,i=2", "n=1,q=2", "n:1,m=2"} {
		_, err := f.Assignment(bad)
		assert.ErrorIs(t, err, problemfile.ErrBadAssignment, bad)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.yaml")
	require.NoError(t, os.WriteFile(path, []byte(mipBox), 0o600))
	f, err := problemfile.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, problemfile.KindMIP, f.Kind)

	_, err = problemfile.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
