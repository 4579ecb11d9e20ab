// SPDX-License-Identifier: MIT

package bacon_test

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// contaminatedLine returns 10 points on y = 2 + 3x with gross outliers at
// rows 3 and 7, unit weights and starting distances that favour four clean
// rows.
func contaminatedLine() (*mat.Dense, []float64, []float64, []float64) {
	n := 10
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(i))
		y[i] = 2 + 3*float64(i)
		w[i] = 1
	}
	y[3] += 500
	y[7] -= 400
	dist := []float64{0.1, 0.2, 0.3, 5, 0.4, 1, 1, 5, 1, 1}

	return x, y, w, dist
}

// noisyLine returns n points on y = 1 + 2x + N(0, 0.25) with the last k rows
// shifted by +20, positive weights and distances flagging the shifted rows.
func noisyLine(n, k int, seed uint64) (*mat.Dense, []float64, []float64, []float64) {
	rng := rand.New(rand.NewPCG(seed, 99))
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	dist := make([]float64, n)
	for i := 0; i < n; i++ {
		xi := 10 * rng.Float64()
		x.Set(i, 0, 1)
		x.Set(i, 1, xi)
		y[i] = 1 + 2*xi + 0.5*rng.NormFloat64()
		w[i] = 1 + rng.Float64()
		dist[i] = abs(xi - 5)
		if i >= n-k {
			y[i] += 20
			dist[i] = 100
		}
	}

	return x, y, w, dist
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
