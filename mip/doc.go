// SPDX-License-Identifier: MIT

// Package mip solves mixed-integer linear programs in exact rational
// arithmetic.
//
// A Problem accumulates:
//   - constraints (equalities and non-strict inequalities over big integers),
//   - an objective with a Minimize/Maximize direction,
//   - a set of variables required to be integral.
//
// Solving:
//
//   - IsSatisfiable runs phase 1 of a two-phase revised simplex on the
//     pending constraints, then branch-and-bound when integer variables
//     exist.
//
//   - Solve continues from the cached feasible basis with phase 2, or with
//     branch-and-bound for mixed-integer problems, and returns Unfeasible,
//     Unbounded or Optimized.
//
//   - Complexity: exponential in the worst case (simplex and B&B); every
//     pivot is exact, so no result depends on floating-point tolerances.
//
// Pricing is configurable (WithPricing, SetPricing): steepest edge with a
// floating-point score (default), steepest edge computed exactly, or the
// textbook first-improving-column rule. After DefaultStallThreshold
// consecutive degenerate pivots a phase falls back to textbook pricing.
//
// Every blocking call takes a context.Context, polled once per pivot.
// A cancelled call returns ErrAbandoned and leaves the Problem exactly as
// it was before the call.
//
// Dump/Load serialize the complete solver state as YAML, so a dumped
// Problem resumes with the same feasible basis.
package mip
