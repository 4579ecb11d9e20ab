// SPDX-License-Identifier: MIT

package bacon_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/wbacon/bacon"
	"github.com/katalvlaran/wbacon/order"
)

func TestInitialSubset(t *testing.T) {
	t.Parallel()

	dist := []float64{0.5, 3, 0.1, math.Inf(1), 2, 0.5}
	orig := append([]float64(nil), dist...)

	got, err := bacon.InitialSubset(dist, 1)
	require.NoError(t, err)
	require.Equal(t, []bool{false, false, true, false, false, false}, got)

	// ties at the threshold are admitted together
	got, err = bacon.InitialSubset(dist, 2)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true, false, false, true}, got)

	got, err = bacon.InitialSubset(dist, 6)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, true, true, true, true}, got)
	require.Equal(t, orig, dist)
}

func TestInitialSubset_Errors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		dist []float64
		m    int
	}{
		{"empty", nil, 1},
		{"m-zero", []float64{1, 2}, 0},
		{"m-too-large", []float64{1, 2}, 3},
		{"nan", []float64{1, math.NaN()}, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := bacon.InitialSubset(tc.dist, tc.m)
			require.ErrorIs(t, err, bacon.ErrInvalidSubset)
		})
	}
}

// TestMedianDistances: the intercept has no spread and is skipped; the slope
// column is centred on its weighted median and scaled by its weighted MAD.
func TestMedianDistances(t *testing.T) {
	t.Parallel()

	x, _, w, _ := contaminatedLine()
	got, err := bacon.MedianDistances(x, w)
	require.NoError(t, err)
	// median 4, MAD 2
	require.InDeltaSlice(t, []float64{2, 1.5, 1, 0.5, 0, 0.5, 1, 1.5, 2, 2.5}, got, 1e-12)

	// Weight on the right half moves the median there.
	for i := 5; i < 10; i++ {
		w[i] = 3
	}
	got, err = bacon.MedianDistances(x, w)
	require.NoError(t, err)
	require.Zero(t, got[6], "weighted median is row 6")

	subset, err := bacon.InitialSubset(got, 3)
	require.NoError(t, err)
	require.Equal(t, []bool{false, false, false, false, false, true, true, true, false, false}, subset)
}

func TestMedianDistances_Errors(t *testing.T) {
	t.Parallel()

	x, _, w, _ := contaminatedLine()
	neg := append([]float64(nil), w...)
	neg[0] = -1
	nan := mat.DenseCopyOf(x)
	nan.Set(2, 1, math.NaN())

	tests := []struct {
		name string
		x    mat.Matrix
		w    []float64
		want error
	}{
		{"nil-design", nil, w, bacon.ErrNilMatrix},
		{"short-weights", x, w[:9], bacon.ErrDimensionMismatch},
		{"negative-weight", x, neg, bacon.ErrNegativeWeight},
		{"nan-design", nan, w, bacon.ErrNaNInf},
		{"zero-weights", x, make([]float64, 10), order.ErrInvalidWeight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := bacon.MedianDistances(tc.x, tc.w)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
