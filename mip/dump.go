// SPDX-License-Identifier: MIT

// Package mip - text dump and reload of the complete solver state.
//
// The dump is a YAML document. Every integer is written as a decimal
// string so that no coefficient is ever rounded through float64. A loaded
// Problem resumes exactly where the dumped one stopped: same pending
// constraints, same internal status, same feasible basis.

package mip

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/matrix"
)

// dumpFormat tags the document layout.
const dumpFormat = "exactlp/mip/v1"

type dumpFile struct {
	Format         string                     `json:"format"`
	Dimension      int                        `json:"dimension"`
	Direction      string                     `json:"direction"`
	Pricing        string                     `json:"pricing"`
	StallThreshold int                        `json:"stallThreshold"`
	Objective      []string                   `json:"objective"`
	Integers       []int                      `json:"integers,omitempty"`
	Constraints    []linear.EncodedConstraint `json:"constraints,omitempty"`
	FirstPending   int                        `json:"firstPending"`
	Status         string                     `json:"status"`
	Point          *dumpPoint                 `json:"point,omitempty"`
	Tableau        *dumpTableau               `json:"tableau,omitempty"`
}

type dumpPoint struct {
	Num []string `json:"num"`
	Den string   `json:"den"`
}

type dumpTableau struct {
	Rows            [][]string `json:"rows"`
	Columns         int        `json:"columns"`
	Base            []int      `json:"base"`
	Mapping         [][2]int   `json:"mapping"`
	FirstArtificial int        `json:"firstArtificial"`
}

// Dump writes the complete state of p to w.
func (p *Problem) Dump(w io.Writer) error {
	f := dumpFile{
		Format:         dumpFormat,
		Dimension:      p.dim,
		Direction:      p.direction.String(),
		Pricing:        p.opts.pricing.String(),
		StallThreshold: p.opts.stallThreshold,
		Objective:      p.objective.Strings(p.dim),
		Integers:       p.IntegerVariables(),
		FirstPending:   p.st.firstPending,
		Status:         p.st.status.String(),
	}
	for _, c := range p.constraints {
		f.Constraints = append(f.Constraints, c.Encode(p.dim))
	}
	if pt := p.st.point; pt != nil {
		f.Point = &dumpPoint{Num: matrix.EncodeInts(pt.Num), Den: pt.Den.String()}
	}
	if tb := p.st.feasible; tb != nil {
		dt := &dumpTableau{
			Columns:         tb.numColumns(),
			Base:            append([]int(nil), tb.base...),
			Mapping:         append([][2]int(nil), tb.mapping...),
			FirstArtificial: tb.firstArtificial,
		}
		for i := 0; i < tb.numRows(); i++ {
			dt.Rows = append(dt.Rows, tb.t.Row(i).Strings())
		}
		f.Tableau = dt
	}
	out, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("mip: dump: %w", err)
	}
	if _, err = w.Write(out); err != nil {
		return fmt.Errorf("mip: dump: %w", err)
	}

	return nil
}

// Load reads a dump written by Dump. Pricing and stall threshold come from
// the dump; opts are applied after them.
func Load(r io.Reader, opts ...Option) (*Problem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mip: load: %w", err)
	}
	var f dumpFile
	if err = yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, malformed("%v", err)
	}
	p, err := f.problem(opts)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDump, fmt.Sprintf(format, args...))
}

// problem rebuilds a Problem from a decoded dump.
// Order of checks (first failure wins):
//
//	Stage 1: header (format, dimension, direction, pricing, threshold).
//	Stage 2: inputs (objective, integers, constraints).
//	Stage 3: solver state (status, point, tableau invariants).
func (f *dumpFile) problem(user []Option) (*Problem, error) {
	// Stage 1: header.
	if f.Format != dumpFormat {
		return nil, malformed("format %q", f.Format)
	}
	if f.Dimension < 0 {
		return nil, malformed("dimension %d", f.Dimension)
	}
	dir, err := ParseDirection(f.Direction)
	if err != nil {
		return nil, malformed("%v", err)
	}
	rule, err := ParsePricing(f.Pricing)
	if err != nil {
		return nil, malformed("%v", err)
	}
	if f.StallThreshold <= 0 {
		return nil, malformed("stall threshold %d", f.StallThreshold)
	}
	opts := append([]Option{WithPricing(rule), WithStallThreshold(f.StallThreshold)}, user...)
	p, _ := NewProblem(f.Dimension, opts...)

	// Stage 2: inputs.
	obj, err := linear.ExpressionFromStrings(f.Objective)
	if err != nil {
		return nil, malformed("objective: %v", err)
	}
	if err = p.SetObjective(obj, dir); err != nil {
		return nil, malformed("%v", err)
	}
	if err = p.AddIntegerVariables(f.Integers...); err != nil {
		return nil, malformed("%v", err)
	}
	for i, ec := range f.Constraints {
		c, err := ec.Decode()
		if err != nil {
			return nil, malformed("constraint %d: %v", i, err)
		}
		if err = p.AddConstraint(c); err != nil {
			return nil, malformed("constraint %d: %v", i, err)
		}
	}

	// Stage 3: solver state.
	st, ok := parseInternalStatus(f.Status)
	if !ok {
		return nil, malformed("status %q", f.Status)
	}
	if f.FirstPending < 0 || f.FirstPending > len(p.constraints) {
		return nil, malformed("first pending constraint %d of %d", f.FirstPending, len(p.constraints))
	}
	p.st = state{status: st, firstPending: f.FirstPending}
	if f.Point != nil {
		pt, err := f.Point.decode(p.dim)
		if err != nil {
			return nil, err
		}
		p.st.point = &pt
	}
	if f.Tableau != nil {
		tb, err := f.Tableau.decode(p.dim)
		if err != nil {
			return nil, err
		}
		p.st.feasible = tb
	}
	// a decided problem keeps its feasible basis over every constraint
	if st >= statusSatisfiable {
		if p.st.feasible == nil {
			return nil, malformed("status %s without a tableau", st)
		}
		if p.st.firstPending != len(p.constraints) {
			return nil, malformed("status %s with pending constraints", st)
		}
	}

	return p, nil
}

func (dp *dumpPoint) decode(dim int) (Point, error) {
	num, err := matrix.DecodeInts(dp.Num)
	if err != nil {
		return Point{}, malformed("point: %v", err)
	}
	den, err := matrix.DecodeInts([]string{dp.Den})
	if err != nil {
		return Point{}, malformed("point: %v", err)
	}
	if len(num) != dim || den[0].Sign() <= 0 {
		return Point{}, malformed("point of dimension %d with denominator %s", len(num), den[0])
	}

	return Point{Num: num, Den: den[0]}, nil
}

func (dt *dumpTableau) decode(dim int) (*tableau, error) {
	if len(dt.Mapping) != dim || len(dt.Base) != len(dt.Rows) || dt.Columns < 1 {
		return nil, malformed("tableau shape")
	}
	if dt.FirstArtificial < 1 || dt.FirstArtificial > dt.Columns {
		return nil, malformed("first artificial column %d", dt.FirstArtificial)
	}
	tb := &tableau{
		t:               matrix.MustMatrix(0, dt.Columns),
		base:            append([]int(nil), dt.Base...),
		basis:           make([]bool, dt.Columns),
		mapping:         append([][2]int(nil), dt.Mapping...),
		firstArtificial: dt.FirstArtificial,
	}
	for k, cols := range tb.mapping {
		if cols[0] < 1 || cols[0] >= dt.Columns || cols[1] < 0 || cols[1] >= dt.Columns {
			return nil, malformed("mapping of variable %d", k)
		}
	}
	for i, ss := range dt.Rows {
		row, err := matrix.RowFromStrings(ss)
		if err != nil {
			return nil, malformed("tableau row %d: %v", i, err)
		}
		if err = tb.t.AddRow(row); err != nil {
			return nil, malformed("tableau row %d: %v", i, err)
		}
	}
	for i, b := range tb.base {
		if b < 1 || b >= dt.Columns {
			return nil, malformed("basic column %d of row %d", b, i)
		}
		tb.basis[b] = true
	}
	if err := tb.check(); err != nil {
		return nil, malformed("%v", err)
	}

	return tb, nil
}
