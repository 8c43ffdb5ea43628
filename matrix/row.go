// SPDX-License-Identifier: MIT

// Package matrix - Row: owned growable buffer of exact coefficients.
//
// Purpose:
//   - Hold one tableau row (constant term and coefficients) without sharing
//     big.Int storage with any other Row.
//   - Offer the bulk operations the pivot kernel needs (Combine, Scale,
//     Normalize) so that callers never touch the buffer directly.
//
// Complexity quicksheet:
//   - Get/Set: O(1) plus the size of the copied value; Insert/Remove: O(n);
//     Combine/Scale/Normalize/Gcd: O(n) big-number operations.

package matrix

import (
	"fmt"
	"math/big"
	"strings"
)

// Row is a dense vector of arbitrary-precision integers.
// The zero value is an empty Row ready to use.
type Row struct {
	data []*big.Int // len(data) is the logical size; every entry is non-nil
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Row)(nil)

// NewRow returns a zero Row of length n.
// Panics if n is negative (programmer error).
func NewRow(n int) *Row {
	if n < 0 {
		panic(panicNegativeSize)
	}
	r := &Row{data: make([]*big.Int, n)}
	for j := range r.data {
		r.data[j] = new(big.Int)
	}

	return r
}

// RowOf builds a Row from small integers; handy for tests and literals.
func RowOf(vals ...int64) *Row {
	r := &Row{data: make([]*big.Int, len(vals))}
	for j, v := range vals {
		r.data[j] = big.NewInt(v)
	}

	return r
}

// RowFrom builds a Row holding copies of vals. Nil entries are read as zero.
func RowFrom(vals []*big.Int) *Row {
	r := &Row{data: make([]*big.Int, len(vals))}
	for j, v := range vals {
		r.data[j] = new(big.Int)
		if v != nil {
			r.data[j].Set(v)
		}
	}

	return r
}

// Len returns the number of entries.
func (r *Row) Len() int { return len(r.data) }

// Cap returns the capacity of the underlying buffer.
func (r *Row) Cap() int { return cap(r.data) }

// Get returns the entry at j. The returned value must not be modified.
func (r *Row) Get(j int) *big.Int { return r.data[j] }

// Sign returns the sign of the entry at j.
func (r *Row) Sign(j int) int { return r.data[j].Sign() }

// Set stores a copy of v at j.
func (r *Row) Set(j int, v *big.Int) { r.data[j].Set(v) }

// SetInt64 stores v at j.
func (r *Row) SetInt64(j int, v int64) { r.data[j].SetInt64(v) }

// Values returns copies of all entries.
func (r *Row) Values() []*big.Int {
	out := make([]*big.Int, len(r.data))
	for j, v := range r.data {
		out[j] = new(big.Int).Set(v)
	}

	return out
}

// Resize grows the Row with zeros or truncates it to n entries.
func (r *Row) Resize(n int) {
	if n < 0 {
		panic(panicNegativeSize)
	}
	if n <= len(r.data) {
		r.data = r.data[:n]

		return
	}
	for len(r.data) < n {
		r.data = append(r.data, new(big.Int))
	}
}

// Append adds a copy of v at the end.
func (r *Row) Append(v *big.Int) { r.data = append(r.data, new(big.Int).Set(v)) }

// Insert inserts a zero entry at position j, shifting later entries right.
func (r *Row) Insert(j int) {
	r.data = append(r.data, nil)
	copy(r.data[j+1:], r.data[j:])
	r.data[j] = new(big.Int)
}

// Remove deletes the entry at position j, shifting later entries left.
func (r *Row) Remove(j int) {
	copy(r.data[j:], r.data[j+1:])
	r.data[len(r.data)-1] = nil
	r.data = r.data[:len(r.data)-1]
}

// Swap exchanges the entries at i and j.
func (r *Row) Swap(i, j int) { r.data[i], r.data[j] = r.data[j], r.data[i] }

// Clone returns a deep copy.
func (r *Row) Clone() *Row {
	return RowFrom(r.data)
}

// IsZero reports whether every entry is zero.
func (r *Row) IsZero() bool {
	for _, v := range r.data {
		if v.Sign() != 0 {
			return false
		}
	}

	return true
}

// IsZeroFrom reports whether every entry at index >= from is zero.
func (r *Row) IsZeroFrom(from int) bool {
	for j := from; j < len(r.data); j++ {
		if r.data[j].Sign() != 0 {
			return false
		}
	}

	return true
}

// Each calls fn for every nonzero entry in index order.
func (r *Row) Each(fn func(j int, v *big.Int)) {
	for j, v := range r.data {
		if v.Sign() != 0 {
			fn(j, v)
		}
	}
}

// Neg negates every entry in place.
func (r *Row) Neg() {
	for _, v := range r.data {
		v.Neg(v)
	}
}

// Scale multiplies every entry by k in place.
func (r *Row) Scale(k *big.Int) {
	for _, v := range r.data {
		v.Mul(v, k)
	}
}

// Combine replaces r with r*k1 - o*k2. Both rows must have the same length.
func (r *Row) Combine(k1 *big.Int, o *Row, k2 *big.Int) {
	if len(r.data) != len(o.data) {
		panic(panicCombineLength)
	}
	var tmp big.Int
	for j, v := range r.data {
		v.Mul(v, k1)
		if o.data[j].Sign() != 0 {
			tmp.Mul(o.data[j], k2)
			v.Sub(v, &tmp)
		}
	}
}

// Gcd returns the non-negative gcd of the absolute values of the entries
// in [from, Len()). It is zero when all those entries are zero.
func (r *Row) Gcd(from int) *big.Int {
	g := new(big.Int)
	var a big.Int
	for j := from; j < len(r.data); j++ {
		if r.data[j].Sign() == 0 {
			continue
		}
		a.Abs(r.data[j])
		if g.Sign() == 0 {
			g.Set(&a)
		} else {
			g.GCD(nil, nil, g, &a)
		}
		if g.IsInt64() && g.Int64() == 1 {
			break
		}
	}

	return g
}

// DivExact divides every entry by k, which must divide all of them.
func (r *Row) DivExact(k *big.Int) {
	for _, v := range r.data {
		v.Quo(v, k)
	}
}

// Normalize divides all entries by their gcd. The sign pattern is preserved.
func (r *Row) Normalize() {
	g := r.Gcd(0)
	if g.Sign() == 0 || (g.IsInt64() && g.Int64() == 1) {
		return
	}
	r.DivExact(g)
}

// Equal reports whether both rows have the same length and entries.
func (r *Row) Equal(o *Row) bool {
	if len(r.data) != len(o.data) {
		return false
	}
	for j, v := range r.data {
		if v.Cmp(o.data[j]) != 0 {
			return false
		}
	}

	return true
}

// String renders the row as "[a b c]".
func (r *Row) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for j, v := range r.data {
		if j > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')

	return sb.String()
}

// EncodeInts renders vals as decimal strings; nil entries become "0".
// Dumps use strings so that no encoder ever rounds a coefficient through
// float64.
func EncodeInts(vals []*big.Int) []string {
	out := make([]string, len(vals))
	for j, v := range vals {
		if v == nil {
			out[j] = "0"

			continue
		}
		out[j] = v.String()
	}

	return out
}

// DecodeInts parses decimal strings produced by EncodeInts.
func DecodeInts(ss []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(ss))
	for j, s := range ss {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadInteger, s)
		}
		out[j] = v
	}

	return out, nil
}

// Strings renders the row with EncodeInts.
func (r *Row) Strings() []string { return EncodeInts(r.data) }

// RowFromStrings parses a row rendered by Strings.
func RowFromStrings(ss []string) (*Row, error) {
	vals, err := DecodeInts(ss)
	if err != nil {
		return nil, err
	}

	return &Row{data: vals}, nil
}
