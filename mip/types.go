// SPDX-License-Identifier: MIT

package mip

import (
	"fmt"
	"math/big"
	"strings"
)

// Status is the externally visible outcome of Solve.
type Status uint8

const (
	// Unfeasible means no point satisfies the constraints (and integrality).
	Unfeasible Status = iota
	// Unbounded means the objective improves without limit.
	Unbounded
	// Optimized means an optimizing point was found.
	Optimized
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Unfeasible:
		return "UNFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	case Optimized:
		return "OPTIMIZED"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Direction selects maximization or minimization.
type Direction uint8

const (
	// Minimize the objective.
	Minimize Direction = iota
	// Maximize the objective.
	Maximize
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "minimize", "min":
		return Minimize, nil
	case "maximize", "max":
		return Maximize, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// sign is the reduced-cost sign of improving columns: positive entries
// improve a maximization, negative ones a minimization.
func (d Direction) sign() int {
	if d == Maximize {
		return 1
	}

	return -1
}

// internalStatus tracks what is known about the problem between calls.
type internalStatus uint8

const (
	statusUnsatisfiable internalStatus = iota
	statusPartiallySatisfiable
	statusSatisfiable
	statusUnbounded
	statusOptimized
)

var internalStatusNames = [...]string{
	statusUnsatisfiable:        "UNSATISFIABLE",
	statusPartiallySatisfiable: "PARTIALLY_SATISFIABLE",
	statusSatisfiable:          "SATISFIABLE",
	statusUnbounded:            "UNBOUNDED",
	statusOptimized:            "OPTIMIZED",
}

func (s internalStatus) String() string {
	if int(s) < len(internalStatusNames) {
		return internalStatusNames[s]
	}

	return fmt.Sprintf("internalStatus(%d)", uint8(s))
}

func parseInternalStatus(s string) (internalStatus, bool) {
	for i, name := range internalStatusNames {
		if name == s {
			return internalStatus(i), true
		}
	}

	return 0, false
}

// Point is a rational vector: Num[i]/Den is coordinate i, Den > 0 and
// gcd(Den, Num...) == 1.
type Point struct {
	Num []*big.Int
	Den *big.Int
}

// newPoint builds a normalized Point from rational coordinates.
func newPoint(coords []*big.Rat) Point {
	den := big.NewInt(1)
	var g big.Int
	for _, c := range coords {
		d := c.Denom()
		g.GCD(nil, nil, den, d)
		den.Mul(den, new(big.Int).Quo(d, &g))
	}
	p := Point{Num: make([]*big.Int, len(coords)), Den: den}
	for i, c := range coords {
		n := new(big.Int).Mul(c.Num(), den)
		p.Num[i] = n.Quo(n, c.Denom())
	}

	return p
}

// Dimension returns the number of coordinates.
func (p Point) Dimension() int { return len(p.Num) }

// Coordinate returns coordinate i as a rational.
func (p Point) Coordinate(i int) *big.Rat { return new(big.Rat).SetFrac(p.Num[i], p.Den) }

// IsIntegral reports whether coordinate i is an integer.
func (p Point) IsIntegral(i int) bool {
	var m big.Int

	return m.Mod(p.Num[i], p.Den).Sign() == 0
}

// Clone returns a deep copy.
func (p Point) Clone() Point {
	c := Point{Num: make([]*big.Int, len(p.Num)), Den: new(big.Int).Set(p.Den)}
	for i, n := range p.Num {
		c.Num[i] = new(big.Int).Set(n)
	}

	return c
}

// Equal reports whether both points denote the same vector.
func (p Point) Equal(o Point) bool {
	if len(p.Num) != len(o.Num) || p.Den.Cmp(o.Den) != 0 {
		return false
	}
	for i := range p.Num {
		if p.Num[i].Cmp(o.Num[i]) != 0 {
			return false
		}
	}

	return true
}

// String renders the point as "(n0, n1, ...)/den", omitting "/1".
func (p Point) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, n := range p.Num {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(n.String())
	}
	sb.WriteByte(')')
	if !(p.Den.IsInt64() && p.Den.Int64() == 1) {
		sb.WriteByte('/')
		sb.WriteString(p.Den.String())
	}

	return sb.String()
}
