// SPDX-License-Identifier: MIT

package pivot

import (
	"math/big"

	"github.com/katalvlaran/exactlp/matrix"
)

// Location tells where a tracked variable currently lives in a tableau:
// either as the basic variable of a row, or as the nonbasic variable of a
// column (its value is then the identity column).
type Location struct {
	InRow bool
	Index int // row index when InRow, column index otherwise
}

// Compare ranks columns a and b as candidate pivots in row p.
// MAIN DESCRIPTION:
//   - Each candidate column c induces the vector (v_0(c), v_1(c), ...) where
//     v_k(c) is the coefficient of column c in the expression of tracked
//     variable k, divided by p[c]. Compare returns -1, 0 or 1 as the vector
//     of a is lexicographically smaller, equal or larger than that of b.
//
// Implementation:
//   - A variable in row i contributes rows.Row(i)[c]; a variable sitting in
//     column j contributes 1 when j == c and 0 otherwise (the identity part
//     the tableau does not store).
//   - Fractions are compared by cross multiplication with p[a], p[b] > 0;
//     any per-row positive denominator cancels out.
//
// Complexity:
//   - O(len(vars)) multiplications in the worst case, early exit on the
//     first differing component.
func Compare(rows *matrix.Matrix, vars []Location, p *matrix.Row, a, b int) int {
	pa, pb := p.Get(a), p.Get(b)
	var l, r, va, vb big.Int
	for _, loc := range vars {
		if loc.InRow {
			row := rows.Row(loc.Index)
			va.Set(row.Get(a))
			vb.Set(row.Get(b))
		} else {
			va.SetInt64(indicator(loc.Index == a))
			vb.SetInt64(indicator(loc.Index == b))
		}
		l.Mul(&va, pb)
		r.Mul(&vb, pa)
		if c := l.Cmp(&r); c != 0 {
			return c
		}
	}

	return 0
}

// LexMinColumn returns the column j >= from with p[j] > 0 whose vector is
// lexicographically minimal (see Compare), or -1 when no entry of p is
// positive. Exact ties go to the column preferred by tieLess; with a nil
// tieLess the lower column index wins.
func LexMinColumn(rows *matrix.Matrix, vars []Location, p *matrix.Row, from int, tieLess func(a, b int) bool) int {
	best := -1
	for j := from; j < p.Len(); j++ {
		if p.Sign(j) <= 0 {
			continue
		}
		if best < 0 {
			best = j

			continue
		}
		switch Compare(rows, vars, p, j, best) {
		case -1:
			best = j
		case 0:
			if tieLess != nil && tieLess(j, best) {
				best = j
			}
		}
	}

	return best
}

func indicator(b bool) int64 {
	if b {
		return 1
	}

	return 0
}
