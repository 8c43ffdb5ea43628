// SPDX-License-Identifier: MIT

package pip

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/exactlp/linear"
)

// Artificial is an artificial parameter: the integer floor(Expr/Den),
// where Expr ranges over parameters and earlier artificial parameters.
// Values built by NewArtificial are normalized: Den > 0 and the gcd of
// Den and every term of Expr is 1.
type Artificial struct {
	Expr linear.Expression
	Den  *big.Int
}

// NewArtificial returns the normalized artificial parameter floor(e/den).
// It fails with ErrBadDenominator when den is not positive.
func NewArtificial(e linear.Expression, den *big.Int) (Artificial, error) {
	if den == nil || den.Sign() <= 0 {
		return Artificial{}, fmt.Errorf("%w: %v", ErrBadDenominator, den)
	}
	n := e.SpaceDimension()
	a := Artificial{
		Expr: linear.Expression{Inhomogeneous: new(big.Int).Set(e.Inhom()), Coefficients: make([]*big.Int, n)},
		Den:  new(big.Int).Set(den),
	}
	g := new(big.Int).Set(den)
	g.GCD(nil, nil, g, new(big.Int).Abs(a.Expr.Inhomogeneous))
	for i := 0; i < n; i++ {
		a.Expr.Coefficients[i] = new(big.Int).Set(e.Coefficient(i))
		g.GCD(nil, nil, g, new(big.Int).Abs(a.Expr.Coefficients[i]))
	}
	if g.Cmp(big.NewInt(1)) > 0 {
		a.Den.Quo(a.Den, g)
		a.Expr.Inhomogeneous.Quo(a.Expr.Inhomogeneous, g)
		for _, c := range a.Expr.Coefficients {
			c.Quo(c, g)
		}
	}

	return a, nil
}

// Equal reports whether both parameters have the same normalized form.
func (a Artificial) Equal(o Artificial) bool {
	if a.Den.Cmp(o.Den) != 0 || a.Expr.Inhom().Cmp(o.Expr.Inhom()) != 0 {
		return false
	}
	n := a.Expr.SpaceDimension()
	if o.Expr.SpaceDimension() != n {
		return false
	}
	for i := 0; i < n; i++ {
		if a.Expr.Coefficient(i).Cmp(o.Expr.Coefficient(i)) != 0 {
			return false
		}
	}

	return true
}

// Value returns floor(Expr(env)/Den).
func (a Artificial) Value(env []*big.Int) *big.Int {
	v := a.Expr.Eval(env)

	return v.Div(v, a.Den) // Euclidean division floors for Den > 0
}

// Format renders the parameter as "(expr)/den".
func (a Artificial) Format(names []string) string {
	return "(" + a.Expr.Format(names) + ")/" + a.Den.String()
}

// String renders the parameter with default names.
func (a Artificial) String() string { return a.Format(nil) }
