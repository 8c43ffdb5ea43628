// SPDX-License-Identifier: MIT

// Package mip - pricing rules and the ratio test.
//
// Every rule only looks at columns whose reduced cost has the tracked sign
// of the current phase (improving columns). The rules differ in which
// improving column they return:
//   - textbook: the first one (Bland's rule, never cycles);
//   - steepest edge: the one maximizing cost_j² / (1 + Σ_i (t_ij/t_i,base_i)²),
//     exactly with rationals or approximately with float64.
//
// Ties always go to the lower column index, keeping the pivot sequence
// deterministic.

package mip

import (
	"math/big"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/exactlp/pivot"
)

// entering dispatches to the active pricing rule; -1 means no improving
// column (the phase is optimal).
func (tb *tableau) entering(rule Pricing, sign int) int {
	switch rule {
	case PricingTextbook:
		return tb.enteringTextbook(sign)
	case PricingSteepestEdgeExact:
		return tb.enteringSteepestExact(sign)
	default:
		return tb.enteringSteepestFloat(sign)
	}
}

// improving reports whether column j has the tracked reduced-cost sign.
func (tb *tableau) improving(j, sign int) bool {
	return !tb.basis[j] && tb.cost.Sign(j) == sign
}

func (tb *tableau) enteringTextbook(sign int) int {
	for j := 1; j < tb.cost.Len(); j++ {
		if tb.improving(j, sign) {
			return j
		}
	}

	return -1
}

// edgeNormExact returns 1 + Σ_i (t_ij / t_i,base_i)².
func (tb *tableau) edgeNormExact(j int) *big.Rat {
	norm := big.NewRat(1, 1)
	var q big.Rat
	for i, b := range tb.base {
		row := tb.t.Row(i)
		if row.Sign(j) == 0 {
			continue
		}
		q.SetFrac(row.Get(j), row.Get(b))
		q.Mul(&q, &q)
		norm.Add(norm, &q)
	}

	return norm
}

func (tb *tableau) enteringSteepestExact(sign int) int {
	var (
		best              = -1
		bestCost2         big.Int
		bestNorm          *big.Rat
		c2                big.Int
		lhs, rhs, lhsNorm big.Rat
	)
	for j := 1; j < tb.cost.Len(); j++ {
		if !tb.improving(j, sign) {
			continue
		}
		c2.Mul(tb.cost.Get(j), tb.cost.Get(j))
		norm := tb.edgeNormExact(j)
		if best < 0 {
			best, bestNorm = j, norm
			bestCost2.Set(&c2)

			continue
		}
		// c2/norm > bestCost2/bestNorm  <=>  c2*bestNorm > bestCost2*norm
		lhsNorm.SetInt(&c2)
		lhs.Mul(&lhsNorm, bestNorm)
		lhsNorm.SetInt(&bestCost2)
		rhs.Mul(&lhsNorm, norm)
		if lhs.Cmp(&rhs) > 0 {
			best, bestNorm = j, norm
			bestCost2.Set(&c2)
		}
	}

	return best
}

func (tb *tableau) enteringSteepestFloat(sign int) int {
	// Scale costs by the largest magnitude so squares stay finite.
	scale := new(big.Int)
	for j := 1; j < tb.cost.Len(); j++ {
		if a := new(big.Int).Abs(tb.cost.Get(j)); a.Cmp(scale) > 0 {
			scale = a
		}
	}
	var (
		best      = -1
		bestScore float64
		ratios    = make([]float64, 0, len(tb.base))
		q         big.Rat
	)
	for j := 1; j < tb.cost.Len(); j++ {
		if !tb.improving(j, sign) {
			continue
		}
		ratios = ratios[:0]
		for i, b := range tb.base {
			row := tb.t.Row(i)
			if row.Sign(j) == 0 {
				continue
			}
			f, _ := q.SetFrac(row.Get(j), row.Get(b)).Float64()
			ratios = append(ratios, f)
		}
		c, _ := q.SetFrac(tb.cost.Get(j), scale).Float64()
		score := c * c / (1 + floats.Dot(ratios, ratios))
		if best < 0 || score > bestScore {
			best, bestScore = j, score
		}
	}

	return best
}

// exiting runs the ratio test for entering column e and returns the
// leaving row, or -1 when no row bounds the step (unbounded ray).
// Ties on the ratio go to the lexicographically smaller scaled row when
// lex is set, then to the lower basic column.
func (tb *tableau) exiting(e int, lex bool) int {
	best := -1
	for i := 0; i < tb.t.NumRows(); i++ {
		row := tb.t.Row(i)
		if row.Sign(e) <= 0 {
			continue
		}
		if best < 0 {
			best = i

			continue
		}
		br := tb.t.Row(best)
		c := pivot.CompareRatios(row.Get(0), row.Get(e), br.Get(0), br.Get(e))
		if c < 0 || (c == 0 && tb.rowTieLess(i, best, e, lex)) {
			best = i
		}
	}

	return best
}

// rowTieLess breaks a ratio tie between rows i and k.
func (tb *tableau) rowTieLess(i, k, e int, lex bool) bool {
	if lex {
		ri, rk := tb.t.Row(i), tb.t.Row(k)
		for j := 1; j < ri.Len(); j++ {
			if c := pivot.CompareRatios(ri.Get(j), ri.Get(e), rk.Get(j), rk.Get(e)); c != 0 {
				return c < 0
			}
		}
	}

	return tb.base[i] < tb.base[k]
}
