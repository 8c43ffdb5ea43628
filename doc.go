// SPDX-License-Identifier: MIT

// Package exactlp solves linear programs over the rationals and the
// integers with exact arithmetic: every pivot, cut and comparison works on
// arbitrary-precision integers, so results never depend on rounding.
//
// Two solvers share one pivot kernel:
//
//	mip/    - mixed integer programs: two-phase simplex with three pricing
//	          rules, degenerate-pivot fallback, branch-and-bound
//	pip/    - parametric integer programs: lexicographic minimum as a
//	          decision tree over the parameters, Gomory cuts, artificial
//	          parameters
//
// and a handful of supporting packages:
//
//	matrix/      - dense rows and matrices of big integers
//	linear/      - affine expressions and constraints
//	pivot/       - row combination, normalization, lexicographic choices,
//	               cooperative cancellation
//	metrics/     - Prometheus counters for pivots, cuts and tree nodes
//	problemfile/ - YAML problem files and solver configuration
//	cmd/exactlp  - command-line front end
//
// Quick example, the lexicographic minimum of x with x >= n:
//
//	if -n >= 0 then
//	  {x = 0}
//	else
//	  {x = n}
//
// Every solve takes a context.Context; an abandoned solve leaves its
// problem exactly as it was.
//
//	go get github.com/katalvlaran/exactlp
package exactlp
