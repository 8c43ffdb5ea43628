// SPDX-License-Identifier: MIT

// Package pip solves parametric integer programs exactly.
//
// A Problem splits its dimensions into variables and parameters. For every
// assignment of nonnegative integers to the parameters, the answer is the
// lexicographically minimal nonnegative integer point of the variables
// satisfying the constraints. Solve returns that answer for all
// assignments at once, as a tree:
//
//   - a *Decision tests parameter constraints and picks a subtree,
//   - a *Solution gives each variable as an affine expression of the
//     parameters,
//   - a nil Node means no solution.
//
// Nodes may introduce artificial parameters floor(expr/den); these come
// from Gomory cuts and turn fractional values into integral ones.
//
// Algorithm:
//
//   - A parametric dual simplex: rows whose value is negative for every
//     context point are pivoted, rows of unknown sign split the context.
//   - Signs are decided by a compatibility checker (an integer feasibility
//     test over the parameters alone, itself a dual simplex with cuts).
//   - Complexity: exponential in the worst case; all arithmetic is exact.
//
// Strategies (WithCuttingStrategy, WithPivotRowStrategy) trade tree shape
// against effort; they never change the values a tree evaluates to.
//
// Every blocking call takes a context.Context. A cancelled Solve returns
// ErrAbandoned and leaves the Problem exactly as before the call.
package pip
