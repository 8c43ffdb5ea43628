// SPDX-License-Identifier: MIT

// Package pip - parametric tableau.
//
// Layout:
//   - Row i is the basic variable rowVar[i], whose value is
//     (Σ_j s[i][j]*y_j + t[i][0] + Σ_k t[i][k]*p_k) / den, where y_j is the
//     nonbasic variable colVar[j] and p_k the parametric columns (see space).
//   - Variable ids below the number of problem variables denote problem
//     variables; larger ids denote constraint and cut slacks.
//   - Nonbasic variables are zero at the current solution, so row i has
//     the parametric value t[i]/den. Every row must stay nonnegative.
//   - All entries are integers, den > 0, and den is coprime with the gcd of
//     all entries.

package pip

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/exactlp/matrix"
	"github.com/katalvlaran/exactlp/pivot"
)

type tableau struct {
	s      *matrix.Matrix
	t      *matrix.Matrix
	den    *big.Int
	rowVar []int
	colVar []int
	nextID int // next free slack id
}

// newTableau builds the initial tableau: every problem variable nonbasic.
func newTableau(nVars, nParamCols int) *tableau {
	tb := &tableau{
		s:      matrix.MustMatrix(0, nVars),
		t:      matrix.MustMatrix(0, nParamCols),
		den:    big.NewInt(1),
		colVar: make([]int, nVars),
		nextID: nVars,
	}
	for j := range tb.colVar {
		tb.colVar[j] = j
	}

	return tb
}

func (tb *tableau) numRows() int { return tb.s.NumRows() }
func (tb *tableau) numVars() int { return tb.s.NumColumns() }

// addRow appends the slack row (s + t)/den >= 0, scaling it to the
// current denominator, and returns its row index.
func (tb *tableau) addRow(s, t *matrix.Row) int {
	if tb.den.Cmp(big.NewInt(1)) != 0 {
		s.Scale(tb.den)
		t.Scale(tb.den)
	}
	_ = tb.s.AddRow(s) // lengths are fixed by the caller
	_ = tb.t.AddRow(t)
	tb.rowVar = append(tb.rowVar, tb.nextID)
	tb.nextID++

	return tb.numRows() - 1
}

// addCut appends a row that is already expressed over the current
// denominator.
func (tb *tableau) addCut(s, t *matrix.Row) int {
	_ = tb.s.AddRow(s)
	_ = tb.t.AddRow(t)
	tb.rowVar = append(tb.rowVar, tb.nextID)
	tb.nextID++

	return tb.numRows() - 1
}

// addParamColumn appends a zero parametric column.
func (tb *tableau) addParamColumn() { tb.t.AddZeroColumns(1) }

// locations returns where each problem variable currently lives.
func (tb *tableau) locations() []pivot.Location {
	locs := make([]pivot.Location, tb.numVars())
	for i, v := range tb.rowVar {
		if v < len(locs) {
			locs[v] = pivot.Location{InRow: true, Index: i}
		}
	}
	for j, v := range tb.colVar {
		if v < len(locs) {
			locs[v] = pivot.Location{Index: j}
		}
	}

	return locs
}

// pivotColumn returns the entering column for row r: the positive entry
// whose column is lexicographically minimal over the problem variables,
// ties going to the lower variable id. It returns -1 when row r has no
// positive entry.
func (tb *tableau) pivotColumn(r int, locs []pivot.Location) int {
	return pivot.LexMinColumn(tb.s, locs, tb.s.Row(r), 0, func(a, b int) bool {
		return tb.colVar[a] < tb.colVar[b]
	})
}

// pivotOn exchanges the basic variable of row r with the nonbasic variable
// of column c; s[r][c] must be positive.
//
// With p = s[r][c] and D = den, every other row i becomes
//
//	s'[i][j] = p*s[i][j] - s[i][c]*s[r][j]   (j != c)
//	s'[i][c] = s[i][c]*D
//	t'[i]    = p*t[i] - s[i][c]*t[r]
//
// row r becomes the expression of the entering variable
//
//	s'[r][j] = -D*s[r][j] (j != c), s'[r][c] = D*D, t'[r] = -D*t[r]
//
// and the new denominator is p*D, all reduced by their common gcd.
func (tb *tableau) pivotOn(r, c int) {
	sr, tr := tb.s.Row(r), tb.t.Row(r)
	p := new(big.Int).Set(sr.Get(c))
	d := tb.den
	var sic big.Int
	for i := 0; i < tb.numRows(); i++ {
		if i == r {
			continue
		}
		si, ti := tb.s.Row(i), tb.t.Row(i)
		sic.Set(si.Get(c))
		if sic.Sign() == 0 {
			si.Scale(p)
			ti.Scale(p)

			continue
		}
		si.Combine(p, sr, &sic)
		si.Set(c, new(big.Int).Mul(&sic, d))
		ti.Combine(p, tr, &sic)
	}
	negD := new(big.Int).Neg(d)
	sr.Scale(negD)
	sr.Set(c, new(big.Int).Mul(d, d))
	tr.Scale(negD)
	tb.den = new(big.Int).Mul(p, d)
	pivot.ReduceCommon(tb.den, tb.s, tb.t)
	tb.rowVar[r], tb.colVar[c] = tb.colVar[c], tb.rowVar[r]
}

// isIntegral reports whether row i has an integral value for every
// integral parameter assignment.
func (tb *tableau) isIntegral(i int) bool {
	var m big.Int
	row := tb.t.Row(i)
	for j := 0; j < row.Len(); j++ {
		if m.Mod(row.Get(j), tb.den).Sign() != 0 {
			return false
		}
	}

	return true
}

// variableRow returns the row of problem variable k, or -1 when k is
// nonbasic (and therefore zero).
func (tb *tableau) variableRow(k int) int {
	for i, v := range tb.rowVar {
		if v == k {
			return i
		}
	}

	return -1
}

func (tb *tableau) clone() *tableau {
	return &tableau{
		s:      tb.s.Clone(),
		t:      tb.t.Clone(),
		den:    new(big.Int).Set(tb.den),
		rowVar: append([]int(nil), tb.rowVar...),
		colVar: append([]int(nil), tb.colVar...),
		nextID: tb.nextID,
	}
}

// check verifies shapes, the denominator and that every variable id sits
// in exactly one place.
func (tb *tableau) check() error {
	if tb.den.Sign() <= 0 {
		return fmt.Errorf("pip: non-positive denominator %s", tb.den)
	}
	if tb.s.NumRows() != tb.t.NumRows() || len(tb.rowVar) != tb.s.NumRows() || len(tb.colVar) != tb.s.NumColumns() {
		return fmt.Errorf("pip: tableau shape %dx%d / %dx%d with %d row and %d column ids",
			tb.s.NumRows(), tb.s.NumColumns(), tb.t.NumRows(), tb.t.NumColumns(), len(tb.rowVar), len(tb.colVar))
	}
	seen := make(map[int]bool, len(tb.rowVar)+len(tb.colVar))
	for _, ids := range [][]int{tb.rowVar, tb.colVar} {
		for _, v := range ids {
			if v < 0 || v >= tb.nextID || seen[v] {
				return fmt.Errorf("pip: variable id %d misplaced", v)
			}
			seen[v] = true
		}
	}
	for k := 0; k < tb.numVars(); k++ {
		if !seen[k] {
			return fmt.Errorf("pip: problem variable %d lost", k)
		}
	}

	return nil
}

// rowSign classifies the parametric value of a row.
type rowSign uint8

const (
	signUnknown rowSign = iota
	signZero
	signPositive
	signNegative
	signMixed
)

var rowSignNames = [...]string{
	signUnknown:  "UNKNOWN",
	signZero:     "ZERO",
	signPositive: "POSITIVE",
	signNegative: "NEGATIVE",
	signMixed:    "MIXED",
}

func (s rowSign) String() string { return rowSignNames[s] }

// quickSign classifies a parametric row from its coefficients alone,
// parameters being nonnegative: POSITIVE when no entry is negative,
// NEGATIVE when no entry is positive and the constant is negative.
func quickSign(t *matrix.Row) rowSign {
	var pos, neg bool
	for j := 0; j < t.Len(); j++ {
		switch t.Sign(j) {
		case 1:
			pos = true
		case -1:
			neg = true
		}
	}
	switch {
	case !pos && !neg:
		return signZero
	case !neg:
		return signPositive
	case !pos && t.Sign(0) < 0:
		return signNegative
	default:
		return signMixed
	}
}
