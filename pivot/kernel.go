// SPDX-License-Identifier: MIT

package pivot

import (
	"math/big"

	"github.com/katalvlaran/exactlp/matrix"
)

// LinearCombine zeroes a's entry in column k using row b.
// MAIN DESCRIPTION:
//   - Replace a with a*k1 - b*k2 for the smallest positive k1 such that the
//     entry of the result in column k is exactly zero, then divide the result
//     by the gcd of its entries.
//
// Implementation:
//   - Stage 1: g = gcd(a[k], b[k]); k1 = |b[k]|/g; k2 = sign(b[k])*a[k]/g.
//   - Stage 2: a = a*k1 - b*k2 (Row.Combine).
//   - Stage 3: a.Normalize().
//
// Behavior highlights:
//   - k1 is always positive, so the orientation of a is preserved: a row
//     whose basic coefficient is positive keeps it positive.
//   - No-op when a[k] is already zero.
//
// Notes:
//   - b[k] must be nonzero and both rows must have the same length.
//
// Complexity:
//   - O(n) big-number multiplications plus one gcd pass.
func LinearCombine(a, b *matrix.Row, k int) {
	ak, bk := a.Get(k), b.Get(k)
	if ak.Sign() == 0 {
		return
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(ak), new(big.Int).Abs(bk))
	k1 := new(big.Int).Abs(bk)
	k1.Quo(k1, g)
	k2 := new(big.Int).Quo(ak, g)
	if bk.Sign() < 0 {
		k2.Neg(k2)
	}
	a.Combine(k1, b, k2)
	a.SetInt64(k, 0)
	a.Normalize()
}

// CompareRatios compares an/ad with bn/bd; ad and bd must be positive.
func CompareRatios(an, ad, bn, bd *big.Int) int {
	var l, r big.Int
	l.Mul(an, bd)
	r.Mul(bn, ad)

	return l.Cmp(&r)
}

// ReduceCommon divides den and every entry of ms by their common gcd.
// It is the normalization used by tableaux sharing one denominator.
func ReduceCommon(den *big.Int, ms ...*matrix.Matrix) {
	g := new(big.Int).Set(den)
	one := big.NewInt(1)
	for _, m := range ms {
		for i := 0; i < m.NumRows() && g.Cmp(one) != 0; i++ {
			rg := m.Row(i).Gcd(0)
			if rg.Sign() != 0 {
				g.GCD(nil, nil, g, rg)
			}
		}
	}
	if g.Sign() == 0 || g.Cmp(one) == 0 {
		return
	}
	den.Quo(den, g)
	for _, m := range ms {
		for i := 0; i < m.NumRows(); i++ {
			m.Row(i).DivExact(g)
		}
	}
}
