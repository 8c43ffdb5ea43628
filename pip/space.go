// SPDX-License-Identifier: MIT

package pip

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/matrix"
)

// space splits the dimensions of a problem into variables and parameters
// and maps parametric columns to dimensions.
//
// Parametric rows (tableau t part, context rows) use the layout:
//
//	column 0           constant term
//	columns 1..P       the parameters, in increasing dimension order
//	columns P+1+k      artificial parameter k along the current tree path
//
// Artificial parameter k is exposed as dimension dim+k.
type space struct {
	dim    int
	params []int
	vars   []int
}

func newSpace(dim int, params []int) (*space, error) {
	if dim < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDimension, dim)
	}
	ps := slices.Clone(params)
	slices.Sort(ps)
	for i, d := range ps {
		if d < 0 || d >= dim || (i > 0 && ps[i-1] == d) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownParameter, d)
		}
	}
	sp := &space{dim: dim, params: ps}
	for d := 0; d < dim; d++ {
		if _, found := slices.BinarySearch(ps, d); !found {
			sp.vars = append(sp.vars, d)
		}
	}

	return sp, nil
}

func (sp *space) numParams() int { return len(sp.params) }
func (sp *space) numVars() int   { return len(sp.vars) }

func (sp *space) isParam(d int) bool {
	_, found := slices.BinarySearch(sp.params, d)

	return found
}

// dimOfColumn maps parametric column j >= 1 to its dimension.
func (sp *space) dimOfColumn(j int) int {
	if j <= len(sp.params) {
		return sp.params[j-1]
	}

	return sp.dim + j - 1 - len(sp.params)
}

// columnOfDim is the inverse of dimOfColumn; ok is false for variables.
func (sp *space) columnOfDim(d int) (int, bool) {
	if d >= sp.dim {
		return d - sp.dim + 1 + len(sp.params), true
	}
	i, found := slices.BinarySearch(sp.params, d)

	return i + 1, found
}

// expression converts a parametric row to an expression over dimensions.
func (sp *space) expression(row *matrix.Row) linear.Expression {
	e := linear.Expression{Inhomogeneous: new(big.Int).Set(row.Get(0))}
	for j := row.Len() - 1; j >= 1; j-- {
		if row.Sign(j) == 0 {
			continue
		}
		d := sp.dimOfColumn(j)
		if e.Coefficients == nil {
			e.Coefficients = make([]*big.Int, d+1)
		}
		e.Coefficients[d] = new(big.Int).Set(row.Get(j))
	}
	for d := range e.Coefficients {
		if e.Coefficients[d] == nil {
			e.Coefficients[d] = new(big.Int)
		}
	}

	return e
}

// paramRow converts a parametric expression to a row of n columns.
// It fails when e mentions a variable or a column beyond n.
func (sp *space) paramRow(e linear.Expression, n int) (*matrix.Row, error) {
	row := matrix.NewRow(n)
	row.Set(0, e.Inhom())
	for d := 0; d < e.SpaceDimension(); d++ {
		c := e.Coefficient(d)
		if c.Sign() == 0 {
			continue
		}
		j, ok := sp.columnOfDim(d)
		if !ok || j >= n {
			return nil, fmt.Errorf("%w: dimension %d is not a parameter here", ErrDimensionMismatch, d)
		}
		row.Set(j, c)
	}

	return row, nil
}

// split separates e into its variable part (one entry per variable) and
// its parametric part (constant plus one entry per parameter).
func (sp *space) split(e linear.Expression) (s, t *matrix.Row) {
	s = matrix.NewRow(len(sp.vars))
	for k, d := range sp.vars {
		s.Set(k, e.Coefficient(d))
	}
	t = matrix.NewRow(1 + len(sp.params))
	t.Set(0, e.Inhom())
	for k, d := range sp.params {
		t.Set(k+1, e.Coefficient(d))
	}

	return s, t
}

// names extends user names (indexed by dimension) with artificial names.
func (sp *space) names(user []string, nArtificials int) []string {
	out := make([]string, sp.dim+nArtificials)
	for d := range out {
		switch {
		case d < len(user) && user[d] != "":
			out[d] = user[d]
		case d >= sp.dim:
			out[d] = fmt.Sprintf("a%d", d-sp.dim)
		default:
			out[d] = fmt.Sprintf("x%d", d)
		}
	}

	return out
}
