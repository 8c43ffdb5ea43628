// SPDX-License-Identifier: MIT

package pip

import (
	"math/big"

	"github.com/katalvlaran/exactlp/linear"
)

// Node is a node of a parametric solution tree, either a *Decision or a
// *Solution. A nil Node is the empty solution (⊥).
//
// Every node first defines its artificial parameters, in order, then
// tests its constraints. Expressions range over the problem dimensions;
// artificial parameter k of a path (root first) is dimension
// SpaceDimension()+k.
type Node interface {
	// Constraints returns the local parameter constraints, each read as
	// "expression >= 0" or "expression == 0".
	Constraints() []linear.Constraint
	// Artificials returns the artificial parameters defined by this node.
	Artificials() []Artificial
	// Parent returns the enclosing decision, nil at the root.
	Parent() *Decision

	base() *nodeBase
}

type nodeBase struct {
	constraints []linear.Constraint
	artificials []Artificial
	parent      *Decision
	sp          *space
}

func (b *nodeBase) Constraints() []linear.Constraint { return b.constraints }
func (b *nodeBase) Artificials() []Artificial        { return b.artificials }
func (b *nodeBase) Parent() *Decision                { return b.parent }
func (b *nodeBase) base() *nodeBase                  { return b }

// Decision branches on its constraints.
//
// With a false child it carries exactly one constraint, the discriminant:
// the true child applies where it holds, the false child elsewhere.
// Without a false child its constraints are guards: the true child applies
// where all of them hold, and there is no solution elsewhere.
type Decision struct {
	nodeBase
	trueChild  Node
	falseChild Node
}

// TrueChild returns the subtree applying where the constraints hold; it
// is never nil.
func (d *Decision) TrueChild() Node { return d.trueChild }

// FalseChild returns the subtree applying where the discriminant fails,
// or nil for a guard node.
func (d *Decision) FalseChild() Node { return d.falseChild }

// Solution gives every problem variable as an integral affine expression
// of the parameters, valid where its constraints hold.
type Solution struct {
	nodeBase
	values []linear.Expression
	tab    *tableau
}

// Values returns one expression per problem variable, in the order of
// Problem.Variables.
func (s *Solution) Values() []linear.Expression { return s.values }

// Value returns the expression of the k-th problem variable.
func (s *Solution) Value(k int) linear.Expression { return s.values[k] }

// Walk calls fn on every node of the tree in preorder (a decision, then
// its true subtree, then its false subtree). fn returning false stops the
// descent below that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if d, ok := n.(*Decision); ok {
		Walk(d.trueChild, fn)
		Walk(d.falseChild, fn)
	}
}

// NumDecisions counts the decision nodes of a tree.
func NumDecisions(n Node) int {
	count := 0
	Walk(n, func(x Node) bool {
		if _, ok := x.(*Decision); ok {
			count++
		}

		return true
	})

	return count
}

// NumSolutions counts the solution nodes of a tree.
func NumSolutions(n Node) int {
	count := 0
	Walk(n, func(x Node) bool {
		if _, ok := x.(*Solution); ok {
			count++
		}

		return true
	})

	return count
}

// ancestorArtificials returns the artificial parameters defined above n,
// root first.
func ancestorArtificials(n Node) []Artificial { return pathArtificials(n.Parent()) }

// pathArtificials returns the artificial parameters defined by d and its
// ancestors, root first.
func pathArtificials(d *Decision) []Artificial {
	var chain []*Decision
	for ; d != nil; d = d.parent {
		chain = append(chain, d)
	}
	var out []Artificial
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].artificials...)
	}

	return out
}

// complement returns the integer negation of "e >= 0": -e - 1 >= 0.
func complement(c linear.Constraint) linear.Constraint {
	e := c.Expr.Times(-1)
	e.Inhomogeneous.Sub(e.Inhomogeneous, big.NewInt(1))

	return linear.Ge(e)
}
