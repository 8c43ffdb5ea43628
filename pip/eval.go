// SPDX-License-Identifier: MIT

package pip

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/exactlp/linear"
)

// Evaluate walks the tree rooted at n for one assignment of the
// parameters (in the order of Problem.Parameters) and returns the values
// of the variables (in the order of Problem.Variables). ok is false when
// the tree has no solution for that assignment.
func Evaluate(n Node, params []*big.Int) (values []*big.Int, ok bool, err error) {
	if n == nil {
		return nil, false, nil
	}
	sp := n.base().sp
	if len(params) != sp.numParams() {
		return nil, false, fmt.Errorf("pip: evaluate: %w: %d parameter values for %d parameters",
			ErrDimensionMismatch, len(params), sp.numParams())
	}
	env := make([]*big.Int, sp.dim)
	for k, v := range params {
		if v == nil || v.Sign() < 0 {
			return nil, false, fmt.Errorf("pip: evaluate: %w: %v", ErrNegativeParameter, v)
		}
		env[sp.params[k]] = v
	}
	for _, a := range ancestorArtificials(n) {
		env = append(env, a.Value(env))
	}

	for {
		b := n.base()
		for _, a := range b.artificials {
			env = append(env, a.Value(env))
		}
		holds := satisfied(b.constraints, env)
		switch x := n.(type) {
		case *Solution:
			if !holds {
				return nil, false, nil
			}
			values = make([]*big.Int, len(x.values))
			for k, e := range x.values {
				values[k] = e.Eval(env)
			}

			return values, true, nil
		case *Decision:
			switch {
			case holds:
				n = x.trueChild
			case x.falseChild != nil:
				n = x.falseChild
			default:
				return nil, false, nil
			}
		}
	}
}

func satisfied(cs []linear.Constraint, env []*big.Int) bool {
	for _, c := range cs {
		v := c.Expr.Eval(env)
		if v.Sign() < 0 || (c.IsEquality() && v.Sign() != 0) {
			return false
		}
	}

	return true
}
