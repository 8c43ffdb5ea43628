// SPDX-License-Identifier: MIT

package linear

import "fmt"

// Kind tags the relation of a Constraint's expression with zero.
type Kind uint8

const (
	// Equality means Expr == 0.
	Equality Kind = iota
	// NonStrict means Expr >= 0.
	NonStrict
	// Strict means Expr > 0.
	Strict
)

// String returns the relation symbol.
func (k Kind) String() string {
	switch k {
	case Equality:
		return "="
	case NonStrict:
		return ">="
	case Strict:
		return ">"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "=", "==":
		return Equality, nil
	case ">=":
		return NonStrict, nil
	case ">":
		return Strict, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Constraint states "Expr <Kind> 0".
type Constraint struct {
	Expr Expression
	Kind Kind
}

// Ge returns e >= 0.
func Ge(e Expression) Constraint { return Constraint{Expr: e, Kind: NonStrict} }

// Eq returns e == 0.
func Eq(e Expression) Constraint { return Constraint{Expr: e, Kind: Equality} }

// Gt returns e > 0.
func Gt(e Expression) Constraint { return Constraint{Expr: e, Kind: Strict} }

// GreaterEq returns lhs >= rhs.
func GreaterEq(lhs, rhs Expression) Constraint { return Ge(lhs.Minus(rhs)) }

// LessEq returns lhs <= rhs.
func LessEq(lhs, rhs Expression) Constraint { return Ge(rhs.Minus(lhs)) }

// Equal returns lhs == rhs.
func Equal(lhs, rhs Expression) Constraint { return Eq(lhs.Minus(rhs)) }

// Greater returns lhs > rhs.
func Greater(lhs, rhs Expression) Constraint { return Gt(lhs.Minus(rhs)) }

// IsStrict reports whether c is a strict inequality.
func (c Constraint) IsStrict() bool { return c.Kind == Strict }

// IsEquality reports whether c is an equality.
func (c Constraint) IsEquality() bool { return c.Kind == Equality }

// SpaceDimension forwards to the expression.
func (c Constraint) SpaceDimension() int { return c.Expr.SpaceDimension() }

// Validate rejects unknown kinds.
func (c Constraint) Validate() error {
	if c.Kind > Strict {
		return fmt.Errorf("%w: %d", ErrUnknownKind, c.Kind)
	}

	return nil
}

// Format renders c using names for the variables.
func (c Constraint) Format(names []string) string {
	return c.Expr.Format(names) + " " + c.Kind.String() + " 0"
}

// String renders c with default variable names.
func (c Constraint) String() string { return c.Format(nil) }
