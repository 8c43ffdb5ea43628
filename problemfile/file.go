// SPDX-License-Identifier: MIT

package problemfile

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/exactlp/linear"
	"github.com/katalvlaran/exactlp/mip"
	"github.com/katalvlaran/exactlp/pip"
)

// Kind names the solver a problem file is written for.
type Kind string

const (
	KindMIP Kind = "mip"
	KindPIP Kind = "pip"
)

// Integer is an arbitrary-precision integer. It decodes from a plain or
// quoted YAML scalar and encodes as a plain integer.
type Integer struct {
	v big.Int
}

// NewInteger returns the Integer x.
func NewInteger(x int64) *Integer {
	i := new(Integer)
	i.v.SetInt64(x)

	return i
}

// Int returns a copy of the value; a nil Integer reads as zero.
func (i *Integer) Int() *big.Int {
	if i == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(&i.v)
}

func (i *Integer) String() string { return i.Int().String() }

// UnmarshalYAML accepts 12, -3, "-7" and 123456789012345678901234567890.
func (i *Integer) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected an integer", ErrMalformed, n.Line)
	}
	if _, ok := i.v.SetString(strings.TrimSpace(n.Value), 10); !ok {
		return fmt.Errorf("%w: line %d: %q is not an integer", ErrMalformed, n.Line, n.Value)
	}

	return nil
}

// MarshalYAML writes the value as a plain integer scalar.
func (i *Integer) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: i.String()}, nil
}

// Affine is Σ coefficients[name]*name + constant.
type Affine struct {
	Coefficients map[string]*Integer `yaml:"coefficients,omitempty"`
	Constant     *Integer            `yaml:"constant,omitempty"`
}

// Constraint states "affine <relation> 0". Relations are ">=", "<=", "=",
// "==" and the strict ">" and "<" (which the solvers reject).
type Constraint struct {
	Affine   `yaml:",inline"`
	Relation string `yaml:"relation"`
}

// File is a decoded problem description.
type File struct {
	Kind        Kind         `yaml:"kind"`
	Dimensions  []string     `yaml:"dimensions"`
	Parameters  []string     `yaml:"parameters,omitempty"`
	Integers    []string     `yaml:"integers,omitempty"`
	Objective   *Affine      `yaml:"objective,omitempty"`
	Direction   string       `yaml:"direction,omitempty"`
	Constraints []Constraint `yaml:"constraints"`

	index map[string]int
}

// ReadFile reads and parses the problem file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problemfile: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML or JSON problem description and checks every name
// it references. Unknown fields are rejected. Scalars follow YAML 1.2, so
// names such as y, n or off stay strings.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) { return yaml.Marshal(f) }

func (f *File) validate() error {
	switch f.Kind {
	case KindMIP:
		if len(f.Parameters) > 0 {
			return fmt.Errorf("%w: mip problems have no parameters", ErrMalformed)
		}
	case KindPIP:
		if len(f.Integers) > 0 || f.Objective != nil || f.Direction != "" {
			return fmt.Errorf("%w: pip problems take no integers, objective or direction", ErrMalformed)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrMalformed, f.Kind)
	}

	f.index = make(map[string]int, len(f.Dimensions))
	for d, name := range f.Dimensions {
		if name == "" {
			return fmt.Errorf("%w: dimension %d has no name", ErrMalformed, d)
		}
		if _, dup := f.index[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		f.index[name] = d
	}
	if _, err := f.dims(f.Parameters); err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	if _, err := f.dims(f.Integers); err != nil {
		return fmt.Errorf("integers: %w", err)
	}
	if f.Direction != "" {
		if _, err := mip.ParseDirection(f.Direction); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	if f.Objective != nil {
		if _, err := f.expression(f.Objective); err != nil {
			return fmt.Errorf("objective: %w", err)
		}
	}
	_, err := f.LinearConstraints()

	return err
}

// dims maps names to dimension indices, sorted.
func (f *File) dims(names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		d, ok := f.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = true
		out = append(out, d)
	}
	sort.Ints(out)

	return out, nil
}

func (f *File) expression(a *Affine) (linear.Expression, error) {
	e := linear.Expression{
		Inhomogeneous: a.Constant.Int(),
		Coefficients:  make([]*big.Int, len(f.Dimensions)),
	}
	for name, c := range a.Coefficients {
		d, ok := f.index[name]
		if !ok {
			return linear.Expression{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		e.Coefficients[d] = c.Int()
	}

	return e, nil
}

// LinearConstraints converts the constraints, in file order.
func (f *File) LinearConstraints() ([]linear.Constraint, error) {
	out := make([]linear.Constraint, 0, len(f.Constraints))
	for i := range f.Constraints {
		c := &f.Constraints[i]
		e, err := f.expression(&c.Affine)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		switch c.Relation {
		case "<=":
			out = append(out, linear.Ge(e.Times(-1)))
		case "<":
			out = append(out, linear.Gt(e.Times(-1)))
		default:
			k, err := linear.ParseKind(c.Relation)
			if err != nil {
				return nil, fmt.Errorf("%w: constraint %d: %v", ErrMalformed, i, err)
			}
			out = append(out, linear.Constraint{Expr: e, Kind: k})
		}
	}

	return out, nil
}

// MIP builds the mixed integer program described by a mip file.
func (f *File) MIP(opts ...mip.Option) (*mip.Problem, error) {
	if f.Kind != KindMIP {
		return nil, fmt.Errorf("%w: %s file read as mip", ErrWrongKind, f.Kind)
	}
	cs, err := f.LinearConstraints()
	if err != nil {
		return nil, err
	}
	p, err := mip.NewProblem(len(f.Dimensions), opts...)
	if err != nil {
		return nil, err
	}
	if err := p.AddConstraints(cs); err != nil {
		return nil, err
	}
	if f.Objective != nil {
		obj, err := f.expression(f.Objective)
		if err != nil {
			return nil, err
		}
		dir := mip.Minimize
		if f.Direction != "" {
			if dir, err = mip.ParseDirection(f.Direction); err != nil {
				return nil, err
			}
		}
		if err := p.SetObjective(obj, dir); err != nil {
			return nil, err
		}
	}
	ints, err := f.dims(f.Integers)
	if err != nil {
		return nil, err
	}
	if err := p.AddIntegerVariables(ints...); err != nil {
		return nil, err
	}

	return p, nil
}

// PIP builds the parametric integer program described by a pip file.
func (f *File) PIP(opts ...pip.Option) (*pip.Problem, error) {
	if f.Kind != KindPIP {
		return nil, fmt.Errorf("%w: %s file read as pip", ErrWrongKind, f.Kind)
	}
	cs, err := f.LinearConstraints()
	if err != nil {
		return nil, err
	}
	params, err := f.dims(f.Parameters)
	if err != nil {
		return nil, err
	}
	p, err := pip.NewProblem(len(f.Dimensions), params, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.AddConstraints(cs); err != nil {
		return nil, err
	}

	return p, nil
}

// Assignment parses "n=2,m=3" into parameter values ordered by dimension,
// the order pip.Evaluate expects. Every parameter must be assigned once.
func (f *File) Assignment(s string) ([]*big.Int, error) {
	params, err := f.dims(f.Parameters)
	if err != nil {
		return nil, err
	}
	slot := make(map[int]int, len(params))
	for k, d := range params {
		slot[d] = k
	}
	values := make([]*big.Int, len(params))
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadAssignment, pair)
		}
		name = strings.TrimSpace(name)
		k, ok := slot[f.index[name]]
		if _, known := f.index[name]; !known || !ok {
			return nil, fmt.Errorf("%w: %q is not a parameter", ErrBadAssignment, name)
		}
		if values[k] != nil {
			return nil, fmt.Errorf("%w: %q assigned twice", ErrBadAssignment, name)
		}
		v, ok := new(big.Int).SetString(strings.TrimSpace(val), 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrBadAssignment, val)
		}
		values[k] = v
	}
	for k, v := range values {
		if v == nil {
			return nil, fmt.Errorf("%w: %q unassigned", ErrBadAssignment, f.Dimensions[params[k]])
		}
	}

	return values, nil
}
