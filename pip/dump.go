// SPDX-License-Identifier: MIT

// Package pip - text dump and reload.
//
// The dump is a YAML document holding the inputs (space, parameters,
// strategies, constraints) and, once solved, the solution tree including
// the final tableau of every Solution node. Integers are decimal strings.

package pip

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/matrix"
)

// dumpFormat tags the document layout.
const dumpFormat = "exactlp/pip/v1"

// Node kinds in a dump.
const (
	kindDecision = "decision"
	kindSolution = "solution"
)

type dumpFile struct {
	Format      string                     `json:"format"`
	Dimension   int                        `json:"dimension"`
	Parameters  []int                      `json:"parameters,omitempty"`
	Cutting     string                     `json:"cutting"`
	PivotRow    string                     `json:"pivotRow"`
	Constraints []linear.EncodedConstraint `json:"constraints,omitempty"`
	Solved      bool                       `json:"solved"`
	Tree        *dumpNode                  `json:"tree,omitempty"`
}

type dumpNode struct {
	Kind        string                     `json:"kind"`
	Artificials []dumpArtificial           `json:"artificials,omitempty"`
	Constraints []linear.EncodedConstraint `json:"constraints,omitempty"`
	True        *dumpNode                  `json:"true,omitempty"`
	False       *dumpNode                  `json:"false,omitempty"`
	Values      [][]string                 `json:"values,omitempty"`
	Tableau     *dumpTableau               `json:"tableau,omitempty"`
}

type dumpArtificial struct {
	Expr []string `json:"expr"`
	Den  string   `json:"den"`
}

type dumpTableau struct {
	S      [][]string `json:"s"`
	T      [][]string `json:"t"`
	Vars   int        `json:"vars"`
	Params int        `json:"params"`
	Den    string     `json:"den"`
	RowVar []int      `json:"rowVar"`
	ColVar []int      `json:"colVar"`
	NextID int        `json:"nextId"`
}

// Dump writes the problem and, when solved, its tree to w.
func (p *Problem) Dump(w io.Writer) error {
	f := dumpFile{
		Format:     dumpFormat,
		Dimension:  p.sp.dim,
		Parameters: p.Parameters(),
		Cutting:    p.opts.cutting.String(),
		PivotRow:   p.opts.pivotRow.String(),
		Solved:     p.solved,
	}
	for _, c := range p.constraints {
		f.Constraints = append(f.Constraints, c.Encode(p.sp.dim))
	}
	if p.solved && p.tree != nil {
		f.Tree = encodeNode(p.tree, p.sp.dim)
	}
	out, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("pip: dump: %w", err)
	}
	if _, err = w.Write(out); err != nil {
		return fmt.Errorf("pip: dump: %w", err)
	}

	return nil
}

// encodeNode renders n; dim counts the dimensions visible above it,
// artificial parameters included.
func encodeNode(n Node, dim int) *dumpNode {
	b := n.base()
	dn := &dumpNode{}
	for _, a := range b.artificials {
		dn.Artificials = append(dn.Artificials, dumpArtificial{Expr: a.Expr.Strings(dim), Den: a.Den.String()})
		dim++
	}
	for _, c := range b.constraints {
		dn.Constraints = append(dn.Constraints, c.Encode(dim))
	}
	switch x := n.(type) {
	case *Decision:
		dn.Kind = kindDecision
		dn.True = encodeNode(x.trueChild, dim)
		if x.falseChild != nil {
			dn.False = encodeNode(x.falseChild, dim)
		}
	case *Solution:
		dn.Kind = kindSolution
		for _, v := range x.values {
			dn.Values = append(dn.Values, v.Strings(dim))
		}
		if x.tab != nil {
			dn.Tableau = encodeTableau(x.tab)
		}
	}

	return dn
}

func encodeTableau(tb *tableau) *dumpTableau {
	dt := &dumpTableau{
		Vars:   tb.numVars(),
		Params: tb.t.NumColumns(),
		Den:    tb.den.String(),
		RowVar: append([]int(nil), tb.rowVar...),
		ColVar: append([]int(nil), tb.colVar...),
		NextID: tb.nextID,
	}
	for i := 0; i < tb.numRows(); i++ {
		dt.S = append(dt.S, tb.s.Row(i).Strings())
		dt.T = append(dt.T, tb.t.Row(i).Strings())
	}

	return dt
}

// Load reads a dump written by Dump. Strategies come from the dump; opts
// are applied after them.
func Load(r io.Reader, opts ...Option) (*Problem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pip: load: %w", err)
	}
	var f dumpFile
	if err = yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, malformed("%v", err)
	}

	return f.problem(opts)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDump, fmt.Sprintf(format, args...))
}

// problem rebuilds a Problem from a decoded dump.
// Order of checks (first failure wins):
//
//	Stage 1: header (format, space, strategies).
//	Stage 2: constraints.
//	Stage 3: tree.
func (f *dumpFile) problem(user []Option) (*Problem, error) {
	// Stage 1: header.
	if f.Format != dumpFormat {
		return nil, malformed("format %q", f.Format)
	}
	cutting, err := ParseCuttingStrategy(f.Cutting)
	if err != nil {
		return nil, malformed("%v", err)
	}
	pivotRow, err := ParsePivotRowStrategy(f.PivotRow)
	if err != nil {
		return nil, malformed("%v", err)
	}
	opts := append([]Option{WithCuttingStrategy(cutting), WithPivotRowStrategy(pivotRow)}, user...)
	p, err := NewProblem(f.Dimension, f.Parameters, opts...)
	if err != nil {
		return nil, malformed("%v", err)
	}

	// Stage 2: constraints.
	for i, ec := range f.Constraints {
		c, err := ec.Decode()
		if err != nil {
			return nil, malformed("constraint %d: %v", i, err)
		}
		if err = p.AddConstraint(c); err != nil {
			return nil, malformed("constraint %d: %v", i, err)
		}
	}

	// Stage 3: tree.
	if !f.Solved {
		if f.Tree != nil {
			return nil, malformed("tree in an unsolved dump")
		}

		return p, nil
	}
	if f.Tree != nil {
		if p.tree, err = f.Tree.decode(p.sp, nil, 0); err != nil {
			return nil, err
		}
	}
	p.solved = true

	return p, nil
}

// decode rebuilds a node below parent; depth counts the artificial
// parameters defined above it.
func (dn *dumpNode) decode(sp *space, parent *Decision, depth int) (Node, error) {
	b := nodeBase{parent: parent, sp: sp}
	for k, da := range dn.Artificials {
		e, err := linear.ExpressionFromStrings(da.Expr)
		if err != nil {
			return nil, malformed("artificial a%d: %v", depth+k, err)
		}
		den, err := matrix.DecodeInts([]string{da.Den})
		if err != nil {
			return nil, malformed("artificial a%d: %v", depth+k, err)
		}
		if err = checkParametric(sp, e, depth+k); err != nil {
			return nil, malformed("artificial a%d: %v", depth+k, err)
		}
		a, err := NewArtificial(e, den[0])
		if err != nil {
			return nil, malformed("artificial a%d: %v", depth+k, err)
		}
		b.artificials = append(b.artificials, a)
	}
	depth += len(b.artificials)
	for i, ec := range dn.Constraints {
		c, err := ec.Decode()
		if err != nil {
			return nil, malformed("node constraint %d: %v", i, err)
		}
		if c.IsStrict() {
			return nil, malformed("node constraint %d: %v", i, ErrStrictInequality)
		}
		if err = checkParametric(sp, c.Expr, depth); err != nil {
			return nil, malformed("node constraint %d: %v", i, err)
		}
		b.constraints = append(b.constraints, c)
	}

	switch dn.Kind {
	case kindDecision:
		return dn.decodeDecision(b, depth)
	case kindSolution:
		return dn.decodeSolution(b, depth)
	default:
		return nil, malformed("node kind %q", dn.Kind)
	}
}

func (dn *dumpNode) decodeDecision(b nodeBase, depth int) (Node, error) {
	if dn.True == nil || len(dn.Values) > 0 || dn.Tableau != nil {
		return nil, malformed("decision shape")
	}
	if dn.False != nil && len(b.constraints) != 1 {
		return nil, malformed("branching decision with %d constraints", len(b.constraints))
	}
	if dn.False == nil && len(b.constraints) == 0 {
		return nil, malformed("guard decision without constraints")
	}
	d := &Decision{nodeBase: b}
	var err error
	if d.trueChild, err = dn.True.decode(b.sp, d, depth); err != nil {
		return nil, err
	}
	if dn.False != nil {
		if d.falseChild, err = dn.False.decode(b.sp, d, depth); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (dn *dumpNode) decodeSolution(b nodeBase, depth int) (Node, error) {
	if dn.True != nil || dn.False != nil {
		return nil, malformed("solution with children")
	}
	if len(dn.Values) != b.sp.numVars() {
		return nil, malformed("%d values for %d variables", len(dn.Values), b.sp.numVars())
	}
	s := &Solution{nodeBase: b}
	for k, ss := range dn.Values {
		e, err := linear.ExpressionFromStrings(ss)
		if err != nil {
			return nil, malformed("value %d: %v", k, err)
		}
		if err = checkParametric(b.sp, e, depth); err != nil {
			return nil, malformed("value %d: %v", k, err)
		}
		s.values = append(s.values, e)
	}
	if dn.Tableau != nil {
		tab, err := dn.Tableau.decode(b.sp, depth)
		if err != nil {
			return nil, err
		}
		s.tab = tab
	}

	return s, nil
}

// checkParametric verifies that e mentions only parameters and the first
// nArtificials artificial parameters.
func checkParametric(sp *space, e linear.Expression, nArtificials int) error {
	for d := 0; d < e.SpaceDimension(); d++ {
		if e.Coefficient(d).Sign() == 0 {
			continue
		}
		if d >= sp.dim+nArtificials || (d < sp.dim && !sp.isParam(d)) {
			return fmt.Errorf("%w: dimension %d", ErrDimensionMismatch, d)
		}
	}

	return nil
}

func (dt *dumpTableau) decode(sp *space, depth int) (*tableau, error) {
	if dt.Vars != sp.numVars() || dt.Params != 1+sp.numParams()+depth {
		return nil, malformed("tableau shape %d variables, %d parametric columns", dt.Vars, dt.Params)
	}
	if len(dt.S) != len(dt.T) {
		return nil, malformed("tableau with %d variable rows and %d parametric rows", len(dt.S), len(dt.T))
	}
	den, err := matrix.DecodeInts([]string{dt.Den})
	if err != nil {
		return nil, malformed("tableau denominator: %v", err)
	}
	tb := &tableau{
		s:      matrix.MustMatrix(0, dt.Vars),
		t:      matrix.MustMatrix(0, dt.Params),
		den:    den[0],
		rowVar: append([]int(nil), dt.RowVar...),
		colVar: append([]int(nil), dt.ColVar...),
		nextID: dt.NextID,
	}
	for i := range dt.S {
		for _, part := range []struct {
			m  *matrix.Matrix
			ss []string
		}{{tb.s, dt.S[i]}, {tb.t, dt.T[i]}} {
			row, err := matrix.RowFromStrings(part.ss)
			if err != nil {
				return nil, malformed("tableau row %d: %v", i, err)
			}
			if err = part.m.AddRow(row); err != nil {
				return nil, malformed("tableau row %d: %v", i, err)
			}
		}
	}
	if err = tb.check(); err != nil {
		return nil, malformed("%v", err)
	}

	return tb, nil
}
