// SPDX-License-Identifier: MIT

package linalg_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

// randomDesign returns an n×p design with an intercept column, a response
// following a noisy linear model and strictly positive weights.
func randomDesign(n, p int, seed uint64) (*mat.Dense, []float64, []float64) {
	rng := rand.New(rand.NewPCG(seed, 0x5eed))
	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j := 1; j < p; j++ {
			x.Set(i, j, rng.NormFloat64())
		}
		for j := 0; j < p; j++ {
			y[i] += float64(j+1) * x.At(i, j)
		}
		y[i] += 0.1 * rng.NormFloat64()
		w[i] = 0.5 + rng.Float64()
	}

	return x, y, w
}

// crossProduct returns Σ_{i∈subset} w_i x_i x_iᵀ.
func crossProduct(x *mat.Dense, w []float64, subset []bool) *mat.SymDense {
	n, p := x.Dims()
	a := mat.NewSymDense(p, nil)
	for i := 0; i < n; i++ {
		if !subset[i] {
			continue
		}
		for r := 0; r < p; r++ {
			for c := r; c < p; c++ {
				a.SetSym(r, c, a.At(r, c)+w[i]*x.At(i, r)*x.At(i, c))
			}
		}
	}

	return a
}

// lowerOf factorizes a with gonum's Cholesky and returns L.
func lowerOf(t *testing.T, a *mat.SymDense) *mat.TriDense {
	t.Helper()
	var ch mat.Cholesky
	require.True(t, ch.Factorize(a), "matrix must be positive definite")
	var l mat.TriDense
	ch.LTo(&l)

	return &l
}

// product returns L·Lᵀ.
func product(l *mat.TriDense) *mat.Dense {
	var a mat.Dense
	a.Mul(l, l.T())

	return &a
}

// scaledRow returns x_i·√w_i.
func scaledRow(x *mat.Dense, w []float64, i int) []float64 {
	_, p := x.Dims()
	u := make([]float64, p)
	for j := range u {
		u[j] = x.At(i, j) * sqrt(w[i])
	}

	return u
}

func allTrue(n int) []bool {
	s := make([]bool, n)
	for i := range s {
		s[i] = true
	}

	return s
}
