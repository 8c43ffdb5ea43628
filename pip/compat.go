// SPDX-License-Identifier: MIT

// Package pip - compatibility checker.
//
// compatible decides whether a context (parameter-only rows, each read as
// "row >= 0") has a solution in nonnegative integers. It runs a dual
// simplex that computes the lexicographic minimum of the parameters, and
// adds a Gomory cut whenever that minimum is fractional.
//
// Unlike the main tableau, every row carries its own denominator: row i
// states that its basic variable equals (a[i][0] + Σ_j a[i][j]*z_j)/den[i]
// with z_j the nonbasic variables of columns 1... A pivot only rescales the
// rows that mention the entering column, keeping all entries integral.

package pip

import (
	"context"
	"math/big"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/matrix"
	"github.com/katalvlaran/exactlp/metrics"
	"github.com/katalvlaran/exactlp/pivot"
)

type checker struct {
	a      *matrix.Matrix
	den    []*big.Int
	rowVar []int // ids below nParams are parameters, larger ids slacks
	colVar []int // colVar[j] for j >= 1; colVar[0] is unused
	nextID int
	opts   *Options
}

// compatible reports whether rows, extended with extra, admit a
// nonnegative integer solution. Neither argument is modified.
func compatible(ctx context.Context, opts *Options, rows *matrix.Matrix, extra ...*matrix.Row) (bool, error) {
	nCols := rows.NumColumns()
	nParams := nCols - 1
	ch := &checker{
		a:      rows.Clone(),
		colVar: make([]int, nCols),
		nextID: nParams,
		opts:   opts,
	}
	for _, r := range extra {
		_ = ch.a.AddRow(r.Clone()) // same layout as rows
	}
	for j := 1; j < nCols; j++ {
		ch.colVar[j] = j - 1
	}
	for i := 0; i < ch.a.NumRows(); i++ {
		ch.den = append(ch.den, big.NewInt(1))
		ch.rowVar = append(ch.rowVar, ch.nextID)
		ch.nextID++
	}

	return ch.run(ctx, nParams)
}

func (ch *checker) run(ctx context.Context, nParams int) (bool, error) {
	for {
		if err := pivot.Poll(ctx); err != nil {
			return false, err
		}
		if r := ch.negativeRow(); r >= 0 {
			c := pivot.LexMinColumn(ch.a, ch.locations(nParams), ch.a.Row(r), 1, func(x, y int) bool {
				return ch.colVar[x] < ch.colVar[y]
			})
			if c < 0 {
				return false, nil
			}
			ch.pivotOn(r, c)
			ch.opts.recorder.Pivot(metrics.SolverCompat)

			continue
		}
		r := ch.fractionalRow(nParams)
		if r < 0 {
			return true, nil
		}
		ch.cut(r)
		ch.opts.recorder.Cut(metrics.SolverCompat)
		if klog.V(ch.opts.logLevel + 2).Enabled() {
			klog.Infof("pip: compatibility cut on row %d, %d rows", r, ch.a.NumRows())
		}
	}
}

func (ch *checker) negativeRow() int {
	for i := 0; i < ch.a.NumRows(); i++ {
		if ch.a.Row(i).Sign(0) < 0 {
			return i
		}
	}

	return -1
}

// fractionalRow returns the row of the lowest parameter with a fractional
// value, or -1. Cutting the lexicographically first fractional variable
// is what makes the cutting loop finite.
func (ch *checker) fractionalRow(nParams int) int {
	best := -1
	var m big.Int
	for i, v := range ch.rowVar {
		if v >= nParams || (best >= 0 && v >= ch.rowVar[best]) {
			continue
		}
		if m.Mod(ch.a.Row(i).Get(0), ch.den[i]).Sign() != 0 {
			best = i
		}
	}

	return best
}

func (ch *checker) locations(nParams int) []pivot.Location {
	locs := make([]pivot.Location, nParams)
	for i, v := range ch.rowVar {
		if v < nParams {
			locs[v] = pivot.Location{InRow: true, Index: i}
		}
	}
	for j := 1; j < len(ch.colVar); j++ {
		if v := ch.colVar[j]; v < nParams {
			locs[v] = pivot.Location{Index: j}
		}
	}

	return locs
}

// pivotOn makes the variable of column c basic in row r; a[r][c] > 0.
//
// With p = a[r][c], every row i mentioning column c becomes
//
//	a'[i][j] = p*a[i][j] - a[i][c]*a[r][j]   (j != c, including the constant)
//	a'[i][c] = a[i][c]*den[r]
//	den'[i]  = p*den[i]
//
// and row r becomes (-a[r][j] for j != c, den[r] at c) over p.
func (ch *checker) pivotOn(r, c int) {
	ar := ch.a.Row(r)
	p := new(big.Int).Set(ar.Get(c))
	dr := ch.den[r]
	var aic big.Int
	for i := 0; i < ch.a.NumRows(); i++ {
		ai := ch.a.Row(i)
		if i == r || ai.Sign(c) == 0 {
			continue
		}
		aic.Set(ai.Get(c))
		ai.Combine(p, ar, &aic)
		ai.Set(c, new(big.Int).Mul(&aic, dr))
		ch.den[i] = new(big.Int).Mul(ch.den[i], p)
		ch.normalize(i)
	}
	ar.Neg()
	ar.Set(c, dr)
	ch.den[r] = p
	ch.normalize(r)
	ch.rowVar[r], ch.colVar[c] = ch.colVar[c], ch.rowVar[r]
}

// normalize divides row i and its denominator by their gcd.
func (ch *checker) normalize(i int) {
	row := ch.a.Row(i)
	g := row.Gcd(0)
	g.GCD(nil, nil, g, ch.den[i])
	if g.Cmp(big.NewInt(1)) <= 0 {
		return
	}
	row.DivExact(g)
	ch.den[i] = new(big.Int).Quo(ch.den[i], g)
}

// cut appends the Gomory cut of row r, whose basic parameter has a
// fractional value: Σ_j (a[r][j] mod d) z_j + (a[r][0] mod d) - d >= 0.
func (ch *checker) cut(r int) {
	ar, d := ch.a.Row(r), ch.den[r]
	row := matrix.NewRow(ar.Len())
	var m big.Int
	for j := 0; j < ar.Len(); j++ {
		row.Set(j, m.Mod(ar.Get(j), d))
	}
	row.Set(0, m.Sub(row.Get(0), d))
	row.Normalize()
	_ = ch.a.AddRow(row)
	ch.den = append(ch.den, big.NewInt(1))
	ch.rowVar = append(ch.rowVar, ch.nextID)
	ch.nextID++
}
