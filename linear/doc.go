// SPDX-License-Identifier: MIT

// Package linear is the minimal constraint model consumed by the solvers:
// an affine Expression with arbitrary-precision coefficients and a
// Constraint that compares an Expression against zero.
//
//	x, y := linear.Var(0), linear.Var(1)
//	c := linear.LessEq(x.Plus(y), linear.Const(3)) // x + y <= 3, stored as 3 - x - y >= 0
//
// Normalization, parsing and geometric conversions are not provided here.
package linear
