// SPDX-License-Identifier: MIT

// Package mip - integer tableau of the revised simplex.
//
// Layout:
//   - Column 0 holds the right-hand side, columns 1.. hold nonnegative
//     tableau variables: the positive/negative parts of every problem
//     variable (only the positive part when the variable is proven
//     nonnegative), then one slack per inequality, then, during phase 1
//     only, one artificial per row that the trivial point does not satisfy.
//   - Row i states Σ_j t[i][j]*y_j == t[i][0] with t[i][0] >= 0.
//   - Every row is integral and gcd-normalized; the basic entry
//     t[i][base[i]] is positive and the basic column is zero in every other
//     row (basis orthogonality).
//   - The working cost row uses the same layout; its entries on basic
//     columns are zero and its sign pattern drives pricing.

package mip

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/matrix"
	"github.com/katalvlaran/exactlp/pivot"
)

type tableau struct {
	t               *matrix.Matrix
	base            []int       // base[i]: column basic in row i
	basis           []bool      // basis[j]: column j is basic; index 0 unused
	mapping         [][2]int    // mapping[k]: positive and negative column of variable k, 0 when absent
	cost            *matrix.Row // working cost; nil outside a phase
	firstArtificial int         // first phase-1 artificial column; NumColumns() when none
}

// singleVariable returns the index of the only variable with a nonzero
// coefficient in e, or -1 when e has none or several.
func singleVariable(e linear.Expression) int {
	k := -1
	for i, c := range e.Coefficients {
		if c == nil || c.Sign() == 0 {
			continue
		}
		if k >= 0 {
			return -1
		}
		k = i
	}

	return k
}

// buildTableau materializes cs over a dim-dimensional space.
// It returns ok == false when some constraint is a constant contradiction.
//
// Implementation:
//   - Stage 1: classify constraints: constant ones are checked and dropped,
//     single-variable ones may prove their variable nonnegative (x >= 0 is
//     then dropped entirely), so that the variable needs no negative part.
//   - Stage 2: lay out columns (split parts, slacks).
//   - Stage 3: emit rows with a nonnegative right-hand side; rows satisfied
//     by the trivial point get their slack as basic variable, the others
//     get an artificial column.
func buildTableau(dim int, cs []linear.Constraint) (*tableau, bool) {
	var (
		nonneg = make([]bool, dim)
		skip   = make([]bool, len(cs))
		nIneq  int
		i, k   int
	)
	// Stage 1: classification.
	for i = range cs {
		c := cs[i]
		b := c.Expr.Inhom()
		k = singleVariable(c.Expr)
		if c.Expr.IsConstant() {
			if (c.Kind == linear.Equality && b.Sign() != 0) || b.Sign() < 0 {
				return nil, false
			}
			skip[i] = true

			continue
		}
		if k >= 0 {
			a := c.Expr.Coefficient(k)
			switch c.Kind {
			case linear.NonStrict:
				if a.Sign() > 0 && b.Sign() <= 0 {
					nonneg[k] = true
					skip[i] = b.Sign() == 0
				}
			case linear.Equality:
				if b.Sign() == 0 || a.Sign() != b.Sign() {
					nonneg[k] = true
				}
			}
		}
		if !skip[i] && c.Kind != linear.Equality {
			nIneq++
		}
	}

	// Stage 2: columns.
	tb := &tableau{mapping: make([][2]int, dim)}
	col := 1
	for k = 0; k < dim; k++ {
		tb.mapping[k][0] = col
		col++
		if !nonneg[k] {
			tb.mapping[k][1] = col
			col++
		}
	}
	slack := col
	nCols := col + nIneq
	tb.t = matrix.MustMatrix(0, nCols)

	// Stage 3: rows.
	var needArtificial []int
	for i = range cs {
		if skip[i] {
			continue
		}
		c := cs[i]
		row := matrix.NewRow(nCols)
		row.Set(0, new(big.Int).Neg(c.Expr.Inhom()))
		for k = 0; k < dim; k++ {
			a := c.Expr.Coefficient(k)
			if a.Sign() == 0 {
				continue
			}
			row.Set(tb.mapping[k][0], a)
			if neg := tb.mapping[k][1]; neg != 0 {
				row.Set(neg, new(big.Int).Neg(a))
			}
		}
		basic := 0
		if c.Kind == linear.Equality {
			if row.Sign(0) < 0 {
				row.Neg()
			}
		} else {
			row.SetInt64(slack, -1)
			if row.Sign(0) <= 0 {
				// the trivial point satisfies the inequality: s = b >= 0
				row.Neg()
				basic = slack
			}
			slack++
		}
		row.Normalize()
		if basic == 0 {
			needArtificial = append(needArtificial, tb.t.NumRows())
		}
		tb.base = append(tb.base, basic)
		_ = tb.t.AddRow(row) // length is nCols by construction
	}

	tb.firstArtificial = nCols
	tb.t.AddZeroColumns(len(needArtificial))
	for a, r := range needArtificial {
		j := nCols + a
		tb.t.Row(r).SetInt64(j, 1)
		tb.base[r] = j
	}
	tb.basis = make([]bool, tb.t.NumColumns())
	for _, j := range tb.base {
		tb.basis[j] = true
	}

	return tb, true
}

func (tb *tableau) numRows() int    { return tb.t.NumRows() }
func (tb *tableau) numColumns() int { return tb.t.NumColumns() }

func (tb *tableau) hasArtificials() bool { return tb.firstArtificial < tb.t.NumColumns() }

// pivotOn makes column e basic in row p; t[p][e] must be positive.
func (tb *tableau) pivotOn(p, e int) {
	pr := tb.t.Row(p)
	for i := 0; i < tb.t.NumRows(); i++ {
		if i != p {
			pivot.LinearCombine(tb.t.Row(i), pr, e)
		}
	}
	if tb.cost != nil {
		pivot.LinearCombine(tb.cost, pr, e)
	}
	tb.basis[tb.base[p]] = false
	tb.base[p] = e
	tb.basis[e] = true
}

// installCost sets the working cost and expresses it in the current basis.
func (tb *tableau) installCost(cost *matrix.Row) {
	for i, b := range tb.base {
		pivot.LinearCombine(cost, tb.t.Row(i), b)
	}
	tb.cost = cost
}

// objectiveCost maps an objective over problem variables onto columns.
func (tb *tableau) objectiveCost(obj linear.Expression) *matrix.Row {
	cost := matrix.NewRow(tb.t.NumColumns())
	for k, cols := range tb.mapping {
		c := obj.Coefficient(k)
		if c.Sign() == 0 {
			continue
		}
		cost.Set(cols[0], c)
		if cols[1] != 0 {
			cost.Set(cols[1], new(big.Int).Neg(c))
		}
	}

	return cost
}

// removeRow deletes row i together with its basic flag.
func (tb *tableau) removeRow(i int) {
	tb.basis[tb.base[i]] = false
	_ = tb.t.RemoveRow(i)
	tb.base = append(tb.base[:i], tb.base[i+1:]...)
}

// dropArtificials removes the artificial columns; none may be basic.
func (tb *tableau) dropArtificials() {
	tb.t.RemoveTrailingColumns(tb.t.NumColumns() - tb.firstArtificial)
	tb.basis = tb.basis[:tb.firstArtificial]
	if tb.cost != nil {
		tb.cost.Resize(tb.firstArtificial)
	}
}

// point returns the problem-variable point of the current basic solution.
func (tb *tableau) point() Point {
	vals := make([]*big.Rat, tb.t.NumColumns())
	for j := range vals {
		vals[j] = new(big.Rat)
	}
	for i, b := range tb.base {
		row := tb.t.Row(i)
		vals[b].SetFrac(row.Get(0), row.Get(b))
	}
	coords := make([]*big.Rat, len(tb.mapping))
	for k, cols := range tb.mapping {
		coords[k] = new(big.Rat).Set(vals[cols[0]])
		if cols[1] != 0 {
			coords[k].Sub(coords[k], vals[cols[1]])
		}
	}

	return newPoint(coords)
}

// clone returns a deep copy.
func (tb *tableau) clone() *tableau {
	c := &tableau{
		t:               tb.t.Clone(),
		base:            append([]int(nil), tb.base...),
		basis:           append([]bool(nil), tb.basis...),
		mapping:         append([][2]int(nil), tb.mapping...),
		firstArtificial: tb.firstArtificial,
	}
	if tb.cost != nil {
		c.cost = tb.cost.Clone()
	}

	return c
}

// check verifies the structural invariants of the tableau: nonnegative
// right-hand sides, positive basic entries, basis orthogonality and
// consistent basis flags.
func (tb *tableau) check() error {
	if len(tb.base) != tb.t.NumRows() || len(tb.basis) != tb.t.NumColumns() {
		return fmt.Errorf("mip: tableau shape: %d rows, %d bases, %d columns, %d flags",
			tb.t.NumRows(), len(tb.base), tb.t.NumColumns(), len(tb.basis))
	}
	nBasic := 0
	for _, f := range tb.basis {
		if f {
			nBasic++
		}
	}
	if nBasic != len(tb.base) {
		return fmt.Errorf("mip: %d basic flags for %d rows", nBasic, len(tb.base))
	}
	for i, b := range tb.base {
		if b <= 0 || b >= tb.t.NumColumns() || !tb.basis[b] {
			return fmt.Errorf("mip: row %d has invalid basic column %d", i, b)
		}
		if tb.t.Row(i).Sign(0) < 0 {
			return fmt.Errorf("mip: row %d has a negative right-hand side", i)
		}
		if tb.t.Row(i).Sign(b) <= 0 {
			return fmt.Errorf("mip: row %d has a non-positive basic entry", i)
		}
		for r := 0; r < tb.t.NumRows(); r++ {
			if r != i && tb.t.Row(r).Sign(b) != 0 {
				return fmt.Errorf("mip: basic column %d of row %d is nonzero in row %d", b, i, r)
			}
		}
		if tb.cost != nil && tb.cost.Sign(b) != 0 {
			return fmt.Errorf("mip: basic column %d has a nonzero cost", b)
		}
	}

	return nil
}
