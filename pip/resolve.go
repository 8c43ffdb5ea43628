// SPDX-License-Identifier: MIT

// Package pip - parametric resolution and tree construction.
//
// builder.solve resolves one node: a lexicographic dual simplex whose
// rows have parametric values. Each round:
//   - Stage 1: classify rows (ZERO/POSITIVE/NEGATIVE/MIXED). MIXED rows are
//     refined with the compatibility checker only when no row is known to
//     be NEGATIVE.
//   - Stage 2: pivot a NEGATIVE row; a NEGATIVE row without a positive
//     entry means no solution in this context (⊥).
//   - Stage 3: split on the first MIXED row: a Decision whose children
//     resolve copies of the tableau under "row >= 0" and "row < 0".
//   - Stage 4: with every row nonnegative, cut fractional problem
//     variables (Gomory), or stop with a Solution.
//
// Each call owns its tableau and context; siblings never share them.

package pip

import (
	"context"
	"math/big"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/matrix"
	"github.com/katalvlaran/exactlp/metrics"
	"github.com/katalvlaran/exactlp/pivot"
)

type builder struct {
	ctx    context.Context
	sp     *space
	opts   *Options
	pivots int
}

// solve resolves tab under context cx; parent is the decision the result
// hangs from. A nil Node means no solution.
func (b *builder) solve(tab *tableau, cx *matrix.Matrix, parent *Decision) (Node, error) {
	var own []Artificial
	for {
		if err := pivot.Poll(b.ctx); err != nil {
			return nil, err
		}

		// Stage 1: row signs.
		signs, err := b.signs(tab, cx)
		if err != nil {
			return nil, err
		}

		// Stage 2: negative rows.
		r, c, infeasible := b.choosePivot(tab, signs)
		if infeasible {
			klog.V(b.opts.logLevel).Infof("pip: row %d is negative with no pivot, no solution", r)

			return nil, nil
		}
		if r >= 0 {
			tab.pivotOn(r, c)
			b.pivots++
			b.opts.recorder.Pivot(metrics.SolverPIP)
			if klog.V(b.opts.logLevel + 2).Enabled() {
				klog.Infof("pip: pivot %d on row %d, column %d, denominator %s", b.pivots, r, c, tab.den)
				if err := tab.check(); err != nil {
					klog.Errorf("pip: tableau invariant broken after pivot %d: %v", b.pivots, err)
				}
			}

			continue
		}

		// Stage 3: split.
		for i, sg := range signs {
			if sg == signMixed {
				return b.split(tab, cx, parent, own, i)
			}
		}

		// Stage 4: integrality.
		rows := b.cutRows(tab)
		if len(rows) == 0 {
			return b.solution(tab, parent, own), nil
		}
		for _, i := range rows {
			if own, err = b.cut(tab, cx, parent, own, i); err != nil {
				return nil, err
			}
		}
	}
}

// signs classifies every row of tab under cx.
func (b *builder) signs(tab *tableau, cx *matrix.Matrix) ([]rowSign, error) {
	signs := make([]rowSign, tab.numRows())
	negative := false
	for i := range signs {
		signs[i] = quickSign(tab.t.Row(i))
		negative = negative || signs[i] == signNegative
	}
	if negative {
		return signs, nil
	}
	for i := range signs {
		if signs[i] != signMixed {
			continue
		}
		sg, err := b.refine(cx, tab.t.Row(i))
		if err != nil {
			return nil, err
		}
		signs[i] = sg
		if sg == signNegative && b.opts.pivotRow == PivotRowFirst {
			break
		}
	}

	return signs, nil
}

// refine decides the sign of a parametric row under context cx.
func (b *builder) refine(cx *matrix.Matrix, t *matrix.Row) (rowSign, error) {
	nonneg, err := compatible(b.ctx, b.opts, cx, t)
	if err != nil {
		return signUnknown, err
	}
	if !nonneg {
		return signNegative, nil
	}
	neg, err := compatible(b.ctx, b.opts, cx, complementRow(t))
	if err != nil {
		return signUnknown, err
	}
	if !neg {
		return signPositive, nil
	}

	return signMixed, nil
}

// complementRow returns -t - 1, the integer negation of t >= 0.
func complementRow(t *matrix.Row) *matrix.Row {
	c := t.Clone()
	c.Neg()
	c.Set(0, new(big.Int).Sub(c.Get(0), big.NewInt(1)))

	return c
}

// choosePivot picks the negative row to pivot and its entering column.
// It returns r = -1 when no row is negative, and infeasible = true (with
// the offending row) when a negative row has no positive entry.
func (b *builder) choosePivot(tab *tableau, signs []rowSign) (r, c int, infeasible bool) {
	r, c = -1, -1
	var locs []pivot.Location
	for i, sg := range signs {
		if sg != signNegative {
			continue
		}
		if locs == nil {
			locs = tab.locations()
		}
		col := tab.pivotColumn(i, locs)
		if col < 0 {
			return i, -1, true
		}
		if r < 0 {
			r, c = i, col
			if b.opts.pivotRow == PivotRowFirst {
				return r, c, false
			}

			continue
		}
		if compareAcross(tab, locs, i, col, r, c) > 0 {
			r, c = i, col
		}
	}

	return r, c, false
}

// compareAcross compares the entering column of row r1 (column c1) with
// that of row r2 (column c2), each scaled by its pivot entry, over the
// problem variables.
func compareAcross(tab *tableau, locs []pivot.Location, r1, c1, r2, c2 int) int {
	p1, p2 := tab.s.Row(r1).Get(c1), tab.s.Row(r2).Get(c2)
	var v1, v2, l, r big.Int
	for _, loc := range locs {
		if loc.InRow {
			row := tab.s.Row(loc.Index)
			v1.Set(row.Get(c1))
			v2.Set(row.Get(c2))
		} else {
			v1.SetInt64(indicator(loc.Index == c1))
			v2.SetInt64(indicator(loc.Index == c2))
		}
		l.Mul(&v1, p2)
		r.Mul(&v2, p1)
		if cmp := l.Cmp(&r); cmp != 0 {
			return cmp
		}
	}

	return 0
}

func indicator(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

// split builds the decision on the mixed row r.
func (b *builder) split(tab *tableau, cx *matrix.Matrix, parent *Decision, own []Artificial, r int) (Node, error) {
	t := tab.t.Row(r).Clone()
	t.Normalize()
	d := &Decision{nodeBase: nodeBase{
		constraints: []linear.Constraint{linear.Ge(b.sp.expression(t))},
		artificials: own,
		parent:      parent,
		sp:          b.sp,
	}}
	b.opts.recorder.TreeNode(metrics.NodeDecision)
	klog.V(b.opts.logLevel).Infof("pip: split on %s", d.constraints[0])

	tcx := cx.Clone()
	_ = tcx.AddRow(t.Clone())
	tc, err := b.solve(tab.clone(), tcx, d)
	if err != nil {
		return nil, err
	}
	fcx := cx.Clone()
	_ = fcx.AddRow(complementRow(t))
	fc, err := b.solve(tab, fcx, d)
	if err != nil {
		return nil, err
	}

	return b.merge(d, cx, tc, fc)
}

// merge applies the collapse rules to a decision whose children are
// resolved:
//   - both children ⊥: the decision is ⊥;
//   - one child ⊥: the other child replaces the decision, guarded by the
//     discriminant (or its complement) unless the context implies it;
//   - otherwise the decision stays.
func (b *builder) merge(d *Decision, cx *matrix.Matrix, tc, fc Node) (Node, error) {
	switch {
	case tc == nil && fc == nil:
		return nil, nil
	case fc == nil:
		return b.adopt(d, cx, tc, d.constraints[0])
	case tc == nil:
		return b.adopt(d, cx, fc, complement(d.constraints[0]))
	}
	d.trueChild, d.falseChild = tc, fc

	return d, nil
}

// adopt replaces d by its only feasible child, guarded by g.
func (b *builder) adopt(d *Decision, cx *matrix.Matrix, child Node, g linear.Constraint) (Node, error) {
	// g's complement was compatible when d split, so this pass is a
	// safeguard: it drops g only once cx, grown by the child's cuts,
	// implies it. restrict runs the same pass over the context rows.
	guards, err := b.prune(cx, []linear.Constraint{g})
	if err != nil {
		return nil, err
	}
	cb := child.base()
	cd, branches := child.(*Decision)
	if len(guards) > 0 && branches && cd.falseChild != nil {
		// a branching child keeps its single discriminant: d becomes a guard
		d.constraints = guards
		d.trueChild, d.falseChild = child, nil

		return d, nil
	}
	cb.constraints = append(guards, cb.constraints...)
	cb.artificials = append(append([]Artificial(nil), d.artificials...), cb.artificials...)
	cb.parent = d.parent

	return child, nil
}

// prune is the redundancy pass: it drops every guard whose negation is
// incompatible with cx and the guards kept so far.
func (b *builder) prune(cx *matrix.Matrix, guards []linear.Constraint) ([]linear.Constraint, error) {
	var kept []linear.Constraint
	for i, g := range guards {
		others := cx.Clone()
		for _, o := range append(append([]linear.Constraint(nil), kept...), guards[i+1:]...) {
			row, err := b.sp.paramRow(o.Expr, cx.NumColumns())
			if err != nil {
				return nil, err
			}
			_ = others.AddRow(row)
		}
		row, err := b.sp.paramRow(g.Expr, cx.NumColumns())
		if err != nil {
			return nil, err
		}
		ok, err := compatible(b.ctx, b.opts, others, complementRow(row))
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, g)
		} else {
			klog.V(b.opts.logLevel).Infof("pip: guard %s is redundant", g)
		}
	}

	return kept, nil
}

// solution reads the parametric values off a resolved tableau.
func (b *builder) solution(tab *tableau, parent *Decision, own []Artificial) *Solution {
	sol := &Solution{
		nodeBase: nodeBase{artificials: own, parent: parent, sp: b.sp},
		values:   make([]linear.Expression, tab.numVars()),
		tab:      tab,
	}
	for k := range sol.values {
		i := tab.variableRow(k)
		if i < 0 {
			sol.values[k] = linear.Expression{Inhomogeneous: new(big.Int)}

			continue
		}
		row := tab.t.Row(i).Clone()
		row.DivExact(tab.den) // integral after the cuts
		sol.values[k] = b.sp.expression(row)
	}
	b.opts.recorder.TreeNode(metrics.NodeSolution)
	klog.V(b.opts.logLevel).Infof("pip: solution after %d pivots", b.pivots)

	return sol
}
