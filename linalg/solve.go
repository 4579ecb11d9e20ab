// SPDX-License-Identifier: MIT

package linalg

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

const panicSolveLen = "linalg: CholSolve: xty and beta must have the factor's order"

// CholSolve recovers regression coefficients from a maintained factor:
// with L·Lᵀ = XᵀWX and xty = XᵀWy it solves L·a = xty, then Lᵀ·beta = a.
//
// Behavior highlights:
//   - Two O(p²) triangular solves instead of a fresh O(n·p²) factorization,
//     and consistent with the incrementally updated L.
//   - beta may alias xty.
//
// Complexity:
//   - Time O(p²), Space O(1).
func CholSolve(l blas64.Triangular, xty, beta []float64) {
	if len(xty) != l.N || len(beta) != l.N {
		panic(panicSolveLen)
	}
	copy(beta, xty)
	v := blas64.Vector{N: l.N, Data: beta, Inc: 1}
	blas64.Trsv(blas.NoTrans, l, v) // forward:  L a = xty
	blas64.Trsv(blas.Trans, l, v)   // backward: Lᵀ beta = a
}
