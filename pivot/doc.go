// SPDX-License-Identifier: MIT

// Package pivot is the exact-arithmetic kernel shared by the simplex engine
// and the parametric solver.
//
// It provides:
//   - LinearCombine: integer row elimination followed by gcd normalization,
//     so tableau entries stay integers and never grow by a common factor.
//   - Compare/LexMinColumn: lexicographic ranking of candidate pivot
//     columns, reconstructing the identity part of the tableau from the
//     position of every tracked variable. This ranking keeps the dual
//     simplex loops from cycling.
//   - CompareRatios: exact comparison of two fractions with positive
//     denominators, used by ratio tests.
//   - Poll / ErrAbandoned: the cooperative cancellation check performed
//     once per pivot or cut.
package pivot
