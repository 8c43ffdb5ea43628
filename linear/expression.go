// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"
	"math/big"
	"strings"
)

// Expression is the affine form Inhomogeneous + Σ Coefficients[i]*x_i.
// Nil entries read as zero; trailing coefficients may be omitted.
// Expressions are values: the arithmetic helpers never modify their
// receiver or argument.
type Expression struct {
	Inhomogeneous *big.Int
	Coefficients  []*big.Int
}

// NewExpression builds an Expression from small integers.
func NewExpression(inhom int64, coeffs ...int64) Expression {
	e := Expression{Inhomogeneous: big.NewInt(inhom), Coefficients: make([]*big.Int, len(coeffs))}
	for i, c := range coeffs {
		e.Coefficients[i] = big.NewInt(c)
	}

	return e
}

// Var returns the expression 1*x_i. Panics on a negative index.
func Var(i int) Expression {
	if i < 0 {
		panic(ErrNegativeIndex)
	}
	e := Expression{Coefficients: make([]*big.Int, i+1)}
	e.Coefficients[i] = big.NewInt(1)

	return e
}

// Const returns the constant expression c.
func Const(c int64) Expression { return Expression{Inhomogeneous: big.NewInt(c)} }

// Inhom returns the inhomogeneous term, never nil.
func (e Expression) Inhom() *big.Int {
	if e.Inhomogeneous == nil {
		return new(big.Int)
	}

	return e.Inhomogeneous
}

// Coefficient returns the coefficient of x_i, never nil.
func (e Expression) Coefficient(i int) *big.Int {
	if i < 0 || i >= len(e.Coefficients) || e.Coefficients[i] == nil {
		return new(big.Int)
	}

	return e.Coefficients[i]
}

// SpaceDimension is one plus the highest index with a nonzero coefficient.
func (e Expression) SpaceDimension() int {
	for i := len(e.Coefficients) - 1; i >= 0; i-- {
		if c := e.Coefficients[i]; c != nil && c.Sign() != 0 {
			return i + 1
		}
	}

	return 0
}

// IsConstant reports whether every coefficient is zero.
func (e Expression) IsConstant() bool { return e.SpaceDimension() == 0 }

// Plus returns e + o.
func (e Expression) Plus(o Expression) Expression { return e.combine(o, 1) }

// Minus returns e - o.
func (e Expression) Minus(o Expression) Expression { return e.combine(o, -1) }

// Times returns k*e.
func (e Expression) Times(k int64) Expression {
	kk := big.NewInt(k)
	out := Expression{Inhomogeneous: new(big.Int).Mul(e.Inhom(), kk), Coefficients: make([]*big.Int, len(e.Coefficients))}
	for i := range e.Coefficients {
		out.Coefficients[i] = new(big.Int).Mul(e.Coefficient(i), kk)
	}

	return out
}

// Clone returns a deep copy.
func (e Expression) Clone() Expression { return e.Times(1) }

func (e Expression) combine(o Expression, sign int64) Expression {
	n := max(len(e.Coefficients), len(o.Coefficients))
	s := big.NewInt(sign)
	out := Expression{Inhomogeneous: new(big.Int), Coefficients: make([]*big.Int, n)}
	out.Inhomogeneous.Mul(o.Inhom(), s)
	out.Inhomogeneous.Add(out.Inhomogeneous, e.Inhom())
	for i := 0; i < n; i++ {
		out.Coefficients[i] = new(big.Int).Mul(o.Coefficient(i), s)
		out.Coefficients[i].Add(out.Coefficients[i], e.Coefficient(i))
	}

	return out
}

// Eval computes the value of e at point x (missing entries read as zero).
func (e Expression) Eval(x []*big.Int) *big.Int {
	v := new(big.Int).Set(e.Inhom())
	var t big.Int
	for i, c := range e.Coefficients {
		if c == nil || c.Sign() == 0 || i >= len(x) || x[i] == nil {
			continue
		}
		v.Add(v, t.Mul(c, x[i]))
	}

	return v
}

// Format renders e using names for the variables; missing names fall back
// to "x<i>".
func (e Expression) Format(names []string) string {
	var sb strings.Builder
	first := true
	for i, c := range e.Coefficients {
		if c == nil || c.Sign() == 0 {
			continue
		}
		writeTerm(&sb, c, varName(names, i), first)
		first = false
	}
	if k := e.Inhom(); k.Sign() != 0 || first {
		writeTerm(&sb, k, "", first)
	}

	return sb.String()
}

// String renders e with default variable names.
func (e Expression) String() string { return e.Format(nil) }

func varName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}

	return fmt.Sprintf("x%d", i)
}

func writeTerm(sb *strings.Builder, c *big.Int, name string, first bool) {
	abs := new(big.Int).Abs(c)
	switch {
	case first && c.Sign() < 0:
		sb.WriteByte('-')
	case !first && c.Sign() < 0:
		sb.WriteString(" - ")
	case !first:
		sb.WriteString(" + ")
	}
	if name == "" {
		sb.WriteString(abs.String())

		return
	}
	if !(abs.IsInt64() && abs.Int64() == 1) {
		sb.WriteString(abs.String())
		sb.WriteByte('*')
	}
	sb.WriteString(name)
}
