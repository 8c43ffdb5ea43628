// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"

	"github.com/katalvlaran/exactlp/matrix"
)

// Strings renders e as decimal strings: the inhomogeneous term first, then
// the coefficients of x_0..x_{dim-1}.
func (e Expression) Strings(dim int) []string {
	vals := make([]string, 0, dim+1)
	vals = append(vals, e.Inhom().String())
	for i := 0; i < dim; i++ {
		vals = append(vals, e.Coefficient(i).String())
	}

	return vals
}

// ExpressionFromStrings parses the output of Expression.Strings.
func ExpressionFromStrings(ss []string) (Expression, error) {
	if len(ss) == 0 {
		return Expression{}, fmt.Errorf("linear: empty expression encoding")
	}
	vals, err := matrix.DecodeInts(ss)
	if err != nil {
		return Expression{}, err
	}

	return Expression{Inhomogeneous: vals[0], Coefficients: vals[1:]}, nil
}

// EncodedConstraint is the serialized form of a Constraint, shared by the
// solver dumps and problem files.
type EncodedConstraint struct {
	Kind   string   `json:"kind"`
	Coeffs []string `json:"coefficients"`
}

// Encode renders c over a dim-dimensional space.
func (c Constraint) Encode(dim int) EncodedConstraint {
	return EncodedConstraint{Kind: c.Kind.String(), Coeffs: c.Expr.Strings(dim)}
}

// Decode parses an encoded constraint.
func (ec EncodedConstraint) Decode() (Constraint, error) {
	k, err := ParseKind(ec.Kind)
	if err != nil {
		return Constraint{}, err
	}
	e, err := ExpressionFromStrings(ec.Coeffs)
	if err != nil {
		return Constraint{}, err
	}

	return Constraint{Expr: e, Kind: k}, nil
}
