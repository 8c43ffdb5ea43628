// SPDX-License-Identifier: MIT

// Package matrix_test validates Row and Matrix:
//  1. Ownership: Clone/RowFrom never alias big.Int storage.
//  2. Bulk algebra: Combine, Normalize, Gcd keep exact values and signs.
//  3. Structural mutators on Matrix: sentinels on bad indices and shapes.
package matrix_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactlp/matrix"
)

func TestRow_NormalizeKeepsSigns(t *testing.T) {
	r := matrix.RowOf(4, -6, 0, 10)
	r.Normalize()
	assert.Equal(t, "[2 -3 0 5]", r.String())

	z := matrix.RowOf(0, 0)
	z.Normalize()
	assert.True(t, z.IsZero())
}

func TestRow_Gcd(t *testing.T) {
	r := matrix.RowOf(7, 12, -18, 0)
	assert.Equal(t, int64(6), r.Gcd(1).Int64())
	assert.Equal(t, int64(1), r.Gcd(0).Int64())
	assert.Equal(t, int64(0), matrix.RowOf(3, 0, 0).Gcd(1).Int64())
}

func TestRow_Combine(t *testing.T) {
	a := matrix.RowOf(1, 2, 3)
	b := matrix.RowOf(0, 4, 1)
	a.Combine(big.NewInt(2), b, big.NewInt(1)) // 2a - b
	assert.Equal(t, "[2 0 5]", a.String())

	require.Panics(t, func() { a.Combine(big.NewInt(1), matrix.RowOf(1), big.NewInt(1)) })
}

func TestRow_CloneDoesNotAlias(t *testing.T) {
	r := matrix.RowOf(1, 2)
	c := r.Clone()
	c.SetInt64(0, 9)
	assert.Equal(t, int64(1), r.Get(0).Int64())

	v := big.NewInt(5)
	f := matrix.RowFrom([]*big.Int{v, nil})
	v.SetInt64(6)
	assert.Equal(t, "[5 0]", f.String())
}

func TestRow_InsertRemoveResize(t *testing.T) {
	r := matrix.RowOf(1, 2, 3)
	r.Insert(1)
	assert.Equal(t, "[1 0 2 3]", r.String())
	r.Remove(0)
	assert.Equal(t, "[0 2 3]", r.String())
	r.Resize(5)
	assert.Equal(t, 5, r.Len())
	assert.True(t, r.IsZeroFrom(3))
	r.Resize(1)
	assert.Equal(t, "[0]", r.String())

	var seen []int
	matrix.RowOf(0, 3, 0, -1).Each(func(j int, _ *big.Int) { seen = append(seen, j) })
	assert.Equal(t, []int{1, 3}, seen)
}

func TestMatrix_Structural(t *testing.T) {
	m, err := matrix.NewMatrix(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.NumRows())
	require.Equal(t, 3, m.NumColumns())

	require.ErrorIs(t, m.AddRow(matrix.RowOf(1, 2)), matrix.ErrDimensionMismatch)
	require.NoError(t, m.AddRow(matrix.RowOf(1, 2, 3)))
	require.Equal(t, 3, m.NumRows())

	require.ErrorIs(t, m.RemoveRow(7), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.SwapRows(0, 3), matrix.ErrOutOfRange)
	require.NoError(t, m.SwapRows(0, 2))
	assert.Equal(t, "[1 2 3]", m.Row(0).String())

	m.AddZeroColumns(2)
	assert.Equal(t, 5, m.Row(1).Len())
	require.NoError(t, m.RemoveColumn(0))
	assert.Equal(t, "[2 3 0 0]", m.Row(0).String())
	require.ErrorIs(t, m.RemoveColumn(4), matrix.ErrOutOfRange)

	c := m.Clone()
	require.True(t, c.Equal(m))
	c.Row(0).SetInt64(0, 42)
	require.False(t, c.Equal(m))

	m.RemoveTrailingRows(10)
	assert.Equal(t, 0, m.NumRows())

	_, err = matrix.NewMatrix(-1, 2)
	require.ErrorIs(t, err, matrix.ErrNegativeSize)
}

func TestRow_StringsRoundTrip(t *testing.T) {
	r := matrix.RowOf(-3, 0, 123456789)
	r.Set(2, new(big.Int).Lsh(big.NewInt(123456789), 100)) // exceeds float64 precision
	back, err := matrix.RowFromStrings(r.Strings())
	require.NoError(t, err)
	assert.True(t, back.Equal(r))

	_, err = matrix.RowFromStrings([]string{"1", "x"})
	require.ErrorIs(t, err, matrix.ErrBadInteger)
	assert.Equal(t, []string{"0", "7"}, matrix.EncodeInts([]*big.Int{nil, big.NewInt(7)}))
}
