// SPDX-License-Identifier: MIT

package pip

import (
	"math/big"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/matrix"
	"github.com/katalvlaran/exactlp/metrics"
)

// cutRows returns the rows of problem variables whose value is not
// integral, filtered by the cutting strategy.
func (b *builder) cutRows(tab *tableau) []int {
	var frac []int
	for i, v := range tab.rowVar {
		if v < tab.numVars() && !tab.isIntegral(i) {
			frac = append(frac, i)
		}
	}
	if len(frac) == 0 {
		return nil
	}
	switch b.opts.cutting {
	case CutAll:
		return frac
	case CutDeepest:
		return []int{deepest(tab, frac)}
	default:
		return frac[:1]
	}
}

// deepest returns the candidate row maximizing
// Σ_k ((-t[k]) mod D) / Σ_j (s[j] mod D); a zero variable part scores
// highest. Ties keep the earlier row.
func deepest(tab *tableau, rows []int) int {
	best := -1
	var bestNum, bestDen big.Int
	for _, i := range rows {
		num, den := fractionSums(tab, i)
		if best >= 0 {
			if bestDen.Sign() == 0 {
				continue
			}
			// num/den > bestNum/bestDen, with den = 0 as infinity
			if den.Sign() != 0 {
				var l, r big.Int
				l.Mul(num, &bestDen)
				r.Mul(&bestNum, den)
				if l.Cmp(&r) <= 0 {
					continue
				}
			}
		}
		best = i
		bestNum.Set(num)
		bestDen.Set(den)
	}

	return best
}

func fractionSums(tab *tableau, i int) (num, den *big.Int) {
	num, den = new(big.Int), new(big.Int)
	var m big.Int
	t, s := tab.t.Row(i), tab.s.Row(i)
	for k := 0; k < t.Len(); k++ {
		num.Add(num, m.Mod(m.Neg(t.Get(k)), tab.den))
	}
	for j := 0; j < s.Len(); j++ {
		den.Add(den, m.Mod(s.Get(j), tab.den))
	}

	return num, den
}

// cut appends the Gomory cut of row r to tab.
//
// With D = den, f_j = s[r][j] mod D and h_k = (-t[r][k]) mod D, the row
// value is integral, so Σ_j f_j y_j - W/D is an integer with
// W = h_0 + Σ_{k>=1} h_k p_k. Hence
//
//	Σ_j f_j y_j - W + D*floor(W/D) >= 0.
//
// When W depends on the parameters, floor(W/D) becomes an artificial
// parameter: reused when the path already defines it, otherwise added as
// a new column whose definition D'a <= W' <= D'a + D' - 1 joins cx.
// Where cx forces W = D*a the row becomes t + h - D*e_a, equal to t on cx
// and integral, and no cut is added.
func (b *builder) cut(tab *tableau, cx *matrix.Matrix, parent *Decision, own []Artificial, r int) ([]Artificial, error) {
	d := tab.den
	sr, tr := tab.s.Row(r), tab.t.Row(r)
	s := matrix.NewRow(sr.Len())
	var m big.Int
	for j := 0; j < sr.Len(); j++ {
		s.Set(j, m.Mod(sr.Get(j), d))
	}
	h := make([]*big.Int, tr.Len())
	for k := range h {
		h[k] = new(big.Int).Mod(new(big.Int).Neg(tr.Get(k)), d)
	}

	col := -1
	parametric := false
	for _, v := range h[1:] {
		parametric = parametric || v.Sign() != 0
	}
	if parametric {
		a, err := b.artificial(h, d)
		if err != nil {
			return nil, err
		}
		path := append(pathArtificials(parent), own...)
		for k, x := range path {
			if x.Equal(a) {
				col = 1 + b.sp.numParams() + k
				klog.V(b.opts.logLevel+1).Infof("pip: cut reuses artificial a%d = %s", k, a)

				break
			}
		}
		if col < 0 {
			own = append(own, a)
			col = b.define(tab, cx, a)
			klog.V(b.opts.logLevel+1).Infof("pip: new artificial a%d = %s", len(path), a)
		}
	}

	t := matrix.NewRow(tab.t.NumColumns())
	for k, v := range h {
		t.Set(k, new(big.Int).Neg(v))
	}
	if col >= 0 {
		t.Set(col, new(big.Int).Add(t.Get(col), d))
		// D*a - W >= 0 throughout cx means W = D*a: the row value is
		// integral already, rewrite it instead of cutting.
		free, err := compatible(b.ctx, b.opts, cx, complementRow(t))
		if err != nil {
			return nil, err
		}
		if !free {
			for k, v := range h {
				tr.Set(k, new(big.Int).Add(tr.Get(k), v))
			}
			tr.Set(col, new(big.Int).Sub(tr.Get(col), d))
			klog.V(b.opts.logLevel+1).Infof("pip: row %d rewritten over its artificial parameter", r)

			return own, nil
		}
	}
	tab.addCut(s, t)
	b.opts.recorder.Cut(metrics.SolverPIP)

	return own, nil
}

// artificial builds floor((h_0 + Σ h_k p_k)/D), reduced by
// g = gcd(h_1, ..., D): the parameter part divides exactly and the
// constant becomes floor(h_0/g), which leaves the value unchanged.
func (b *builder) artificial(h []*big.Int, d *big.Int) (Artificial, error) {
	g := new(big.Int).Set(d)
	for _, v := range h[1:] {
		g.GCD(nil, nil, g, v)
	}
	row := matrix.NewRow(len(h))
	var q big.Int
	row.Set(0, q.Div(h[0], g))
	for k := 1; k < len(h); k++ {
		row.Set(k, q.Quo(h[k], g))
	}

	return NewArtificial(b.sp.expression(row), new(big.Int).Quo(d, g))
}

// define adds the column of a new artificial parameter a to tab and cx,
// with its definition rows in cx, and returns the column.
func (b *builder) define(tab *tableau, cx *matrix.Matrix, a Artificial) int {
	tab.addParamColumn()
	cx.AddZeroColumns(1)
	col := cx.NumColumns() - 1
	w, _ := b.sp.paramRow(a.Expr, col+1) // parameters and earlier artificials only

	lo := w.Clone() // W' - D'a >= 0
	lo.Set(col, new(big.Int).Neg(a.Den))
	hi := w.Clone() // D'a + D' - 1 - W' >= 0
	hi.Neg()
	hi.Set(col, a.Den)
	hi.Set(0, new(big.Int).Add(hi.Get(0), new(big.Int).Sub(a.Den, big.NewInt(1))))
	_ = cx.AddRow(lo)
	_ = cx.AddRow(hi)
	b.opts.recorder.ArtificialParameter()

	return col
}
