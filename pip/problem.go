// SPDX-License-Identifier: MIT

package pip

import (
	"context"
	"fmt"
	"math/big"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/matrix"
	"github.com/katalvlaran/exactlp/metrics"
)

// Problem is a parametric integer program: find the lexicographic minimum
// of the nonnegative integer variables subject to the constraints, as a
// function of the nonnegative integer parameters.
//
// Constraints accumulate through AddConstraint; Solve builds (and caches)
// the solution tree. A Problem is not safe for concurrent use.
type Problem struct {
	sp          *space
	constraints []linear.Constraint
	opts        Options
	tree        Node
	solved      bool // tree is current
}

// NewProblem creates a problem over dim dimensions, of which params are
// parameters; the remaining dimensions are variables, minimized
// lexicographically in increasing index order.
func NewProblem(dim int, params []int, opts ...Option) (*Problem, error) {
	sp, err := newSpace(dim, params)
	if err != nil {
		return nil, fmt.Errorf("pip: new problem: %w", err)
	}

	return &Problem{sp: sp, opts: gatherOptions(opts...)}, nil
}

// SpaceDimension returns the number of dimensions.
func (p *Problem) SpaceDimension() int { return p.sp.dim }

// Parameters returns the sorted parameter dimensions.
func (p *Problem) Parameters() []int { return append([]int(nil), p.sp.params...) }

// Variables returns the sorted variable dimensions, in the order of
// Solution.Values.
func (p *Problem) Variables() []int { return append([]int(nil), p.sp.vars...) }

// Constraints returns copies of all constraints, in insertion order.
func (p *Problem) Constraints() []linear.Constraint {
	out := make([]linear.Constraint, len(p.constraints))
	for i, c := range p.constraints {
		out[i] = linear.Constraint{Expr: c.Expr.Clone(), Kind: c.Kind}
	}

	return out
}

// AddConstraint appends c. Strict inequalities and constraints beyond the
// space dimension are rejected without modifying the problem.
func (p *Problem) AddConstraint(c linear.Constraint) error {
	if err := p.validateConstraint(c); err != nil {
		return fmt.Errorf("pip: add constraint: %w", err)
	}
	p.appendConstraint(c)

	return nil
}

// AddConstraints appends all of cs, or none of them when one is invalid.
func (p *Problem) AddConstraints(cs []linear.Constraint) error {
	for i, c := range cs {
		if err := p.validateConstraint(c); err != nil {
			return fmt.Errorf("pip: add constraint %d: %w", i, err)
		}
	}
	for _, c := range cs {
		p.appendConstraint(c)
	}

	return nil
}

func (p *Problem) validateConstraint(c linear.Constraint) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.IsStrict() {
		return ErrStrictInequality
	}
	if d := c.SpaceDimension(); d > p.sp.dim {
		return fmt.Errorf("%w: constraint needs %d dimensions, problem has %d", ErrDimensionMismatch, d, p.sp.dim)
	}

	return nil
}

func (p *Problem) appendConstraint(c linear.Constraint) {
	p.constraints = append(p.constraints, linear.Constraint{Expr: c.Expr.Clone(), Kind: c.Kind})
	p.tree, p.solved = nil, false
}

// CuttingStrategy returns the configured cutting strategy.
func (p *Problem) CuttingStrategy() CuttingStrategy { return p.opts.cutting }

// SetCuttingStrategy changes the cutting strategy of later solves.
func (p *Problem) SetCuttingStrategy(c CuttingStrategy) error {
	if c > CutAll {
		return fmt.Errorf("pip: set cutting strategy: %w: %d", ErrUnknownStrategy, uint8(c))
	}
	if c != p.opts.cutting {
		p.opts.cutting = c
		p.tree, p.solved = nil, false
	}

	return nil
}

// PivotRowStrategy returns the configured pivot-row strategy.
func (p *Problem) PivotRowStrategy() PivotRowStrategy { return p.opts.pivotRow }

// SetPivotRowStrategy changes the pivot-row strategy of later solves.
func (p *Problem) SetPivotRowStrategy(s PivotRowStrategy) error {
	if s > PivotRowMaxColumn {
		return fmt.Errorf("pip: set pivot row strategy: %w: %d", ErrUnknownStrategy, uint8(s))
	}
	if s != p.opts.pivotRow {
		p.opts.pivotRow = s
		p.tree, p.solved = nil, false
	}

	return nil
}

// Solution returns the tree of the last successful Solve; ok is false when
// the problem changed since (or was never solved).
func (p *Problem) Solution() (n Node, ok bool) { return p.tree, p.solved }

// Clone returns an independent copy. A cached tree is shared: trees are
// never modified once built.
func (p *Problem) Clone() *Problem {
	return &Problem{
		sp:          p.sp,
		constraints: p.Constraints(),
		opts:        p.opts,
		tree:        p.tree,
		solved:      p.solved,
	}
}

// Solve returns the solution tree, nil when no parameter value admits a
// solution. The tree is cached until the problem changes.
//
// Cancellation is all-or-nothing: when ctx ends, Solve returns
// ErrAbandoned and the Problem is exactly as before the call.
func (p *Problem) Solve(ctx context.Context) (Node, error) {
	if p.solved {
		return p.tree, nil
	}
	b := &builder{ctx: ctx, sp: p.sp, opts: &p.opts}
	tree, err := b.root(p.constraints)
	if err != nil {
		return nil, fmt.Errorf("pip: solve: %w", err)
	}
	p.tree, p.solved = tree, true
	klog.V(2).Infof("pip: solved %d variables, %d parameters, %d constraints: %d decisions, %d solutions, %d pivots",
		p.sp.numVars(), p.sp.numParams(), len(p.constraints), NumDecisions(tree), NumSolutions(tree), b.pivots)

	return tree, nil
}

// root builds the initial tableau and context, then resolves them.
//
//	Stage 1: constraints mentioning a variable become tableau rows,
//	         parameter-only constraints become context rows.
//	Stage 2: an incompatible context has no solution.
//	Stage 3: resolution.
//	Stage 4: the context rows not implied by nonnegative parameters
//	         guard the whole tree.
func (b *builder) root(constraints []linear.Constraint) (Node, error) {
	// Stage 1: split.
	tab := newTableau(b.sp.numVars(), 1+b.sp.numParams())
	cx := matrix.MustMatrix(0, 1+b.sp.numParams())
	for _, c := range constraints {
		s, t := b.sp.split(c.Expr)
		b.place(tab, cx, s, t)
		if c.IsEquality() {
			s.Neg()
			t.Neg()
			b.place(tab, cx, s, t)
		}
	}

	// Stage 2: context.
	ok, err := compatible(b.ctx, b.opts, cx)
	if err != nil {
		return nil, err
	}
	if !ok {
		klog.V(b.opts.logLevel).Info("pip: parameter context is empty")

		return nil, nil
	}

	// Stage 3: resolution. solve grows cx, keep the original rows.
	rows := cx.Clone()
	tree, err := b.solve(tab, cx, nil)
	if err != nil || tree == nil {
		return tree, err
	}

	// Stage 4: context guards.
	return b.restrict(tree, rows)
}

// restrict makes tree answer ⊥ outside the parameter context rows.
func (b *builder) restrict(tree Node, rows *matrix.Matrix) (Node, error) {
	guards := make([]linear.Constraint, rows.NumRows())
	for i := range guards {
		guards[i] = linear.Ge(b.sp.expression(rows.Row(i)))
	}
	guards, err := b.prune(matrix.MustMatrix(0, rows.NumColumns()), guards)
	if err != nil || len(guards) == 0 {
		return tree, err
	}
	if d, ok := tree.(*Decision); ok && d.falseChild != nil {
		g := &Decision{nodeBase: nodeBase{constraints: guards, sp: b.sp}, trueChild: d}
		d.parent = g
		b.opts.recorder.TreeNode(metrics.NodeDecision)

		return g, nil
	}
	tb := tree.base()
	tb.constraints = append(guards, tb.constraints...)

	return tree, nil
}

// place adds s·y + t >= 0 to the tableau, or to the context when s is zero.
func (b *builder) place(tab *tableau, cx *matrix.Matrix, s, t *matrix.Row) {
	s, t = s.Clone(), t.Clone()
	if s.IsZero() {
		t.Normalize()
		_ = cx.AddRow(t)

		return
	}
	g := s.Gcd(0)
	g.GCD(nil, nil, g, t.Gcd(0))
	if g.Cmp(big.NewInt(1)) > 0 {
		s.DivExact(g)
		t.DivExact(g)
	}
	tab.addRow(s, t)
}
