// SPDX-License-Identifier: MIT
// Package: linalg
//
// Purpose:
//   - Diagonal of the weighted hat matrix H = W^{1/2} X (XᵀWX)⁻¹ Xᵀ W^{1/2}
//     from a lower factor L of XᵀWX, for every observation (in or out of
//     the subset).
//
// Notes:
//   - h_i = w_i · ‖L⁻¹ x_i‖². Row i of X·L⁻ᵀ is (L⁻¹ x_i)ᵀ, so one
//     triangular inverse plus one TRMM gives all n leverages at once.

package linalg

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
)

const opHatDiag = "HatDiag"

const panicHatLen = "linalg: HatDiag: buffer lengths disagree with the design"

// HatWork holds the scratch of HatDiag so that repeated calls do not allocate.
type HatWork struct {
	n, p int
	linv []float64 // p×p, inverse factor
	b    []float64 // n×p, X·L⁻ᵀ
}

// NewHatWork allocates scratch for an n×p design.
func NewHatWork(n, p int) *HatWork {
	return &HatWork{
		n:    n,
		p:    p,
		linv: make([]float64, p*p),
		b:    make([]float64, n*p),
	}
}

// HatDiag writes the weighted hat diagonal into hat.
//
// Implementation:
//   - Stage 1: copy L (lower part) into ws and invert it with LAPACK TRTRI.
//   - Stage 2: B ← X, then B ← B·L⁻ᵀ with BLAS TRMM, row blocks across the pool.
//   - Stage 3: hat_i ← w_i · Σ_j B_ij², summed left to right within the row.
//
// Behavior highlights:
//   - L itself is not modified.
//   - Each worker owns whole rows of B and hat, so the output is
//     bit-identical for any worker count.
//
// Errors:
//   - ErrTriangularSingular if TRTRI reports an exactly zero diagonal.
//
// Complexity:
//   - Time O(n·p² + p³), Space O(n·p + p²) held in ws.
func HatDiag(x blas64.General, l blas64.Triangular, w, hat []float64, ws *HatWork, pool Pool) error {
	n, p := x.Rows, x.Cols
	if l.Uplo != blas.Lower {
		panic(panicFactorNotLower)
	}
	if l.N != p || len(w) != n || len(hat) != n || ws == nil || ws.n != n || ws.p != p {
		panic(panicHatLen)
	}

	// Stage 1: inverse factor.
	var i, j int
	for i = 0; i < p; i++ {
		for j = 0; j < p; j++ {
			if j <= i {
				ws.linv[i*p+j] = l.Data[i*l.Stride+j]
			} else {
				ws.linv[i*p+j] = 0
			}
		}
	}
	linv := blas64.Triangular{N: p, Stride: p, Data: ws.linv, Uplo: blas.Lower, Diag: blas.NonUnit}
	if ok := lapack64.Trtri(linv); !ok {
		return linalgErrorf(opHatDiag, ErrTriangularSingular)
	}

	// Stages 2–3 per row block.
	return pool.For(n*p, n, func(lo, hi int) error {
		rows := hi - lo
		for r := lo; r < hi; r++ {
			copy(ws.b[r*p:(r+1)*p], x.Data[r*x.Stride:r*x.Stride+p])
		}
		blk := blas64.General{Rows: rows, Cols: p, Stride: p, Data: ws.b[lo*p : hi*p]}
		blas64.Trmm(blas.Right, blas.Trans, 1, linv, blk)

		var sum, v float64
		for r := lo; r < hi; r++ {
			sum = 0
			for _, v = range ws.b[r*p : (r+1)*p] {
				sum += v * v
			}
			hat[r] = w[r] * sum
		}

		return nil
	})
}
