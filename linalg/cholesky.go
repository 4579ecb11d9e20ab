// SPDX-License-Identifier: MIT
// Package: linalg
//
// Purpose:
//   - Rank-one update and downdate of a lower Cholesky factor L (L·Lᵀ = A).
//   - Used to move the factor of XᵀWX from one observation subset to the
//     next without refactorizing.
//
// Reference:
//   - Golub, G.H. and Van Loan, C.F. (1996). Matrix Computations, 3rd ed., §12.5.
//
// Notes:
//   - Column i is rotated against the update vector u; the rotation is
//     (b, c) = (r/L_ii, u_i/L_ii) with r the new diagonal.
//   - Negative diagonal entries (as left by Householder QR) are fine: the
//     result has a positive diagonal in every touched column and L·Lᵀ is the
//     same matrix.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

const (
	opCholUpdate   = "CholUpdate"
	opCholDowndate = "CholDowndate"
)

const (
	panicFactorNotLower = "linalg: Cholesky factor must be lower triangular"
	panicUpdateLen      = "linalg: update vector length must equal the factor order"
)

// checkFactor panics when l/u are inconsistent (programmer error).
func checkFactor(l blas64.Triangular, u []float64) {
	if l.Uplo != blas.Lower {
		panic(panicFactorNotLower)
	}
	if len(u) != l.N {
		panic(panicUpdateLen)
	}
}

// CholUpdate overwrites L with the lower Cholesky factor of L·Lᵀ + u·uᵀ.
// For one admitted observation i, u_j = x_ij·sqrt(w_i).
//
// Implementation:
//   - Stage 1: for columns 0..p-2: new diagonal r = hypot(L_ii, u_i);
//     L_ji ← (L_ji + c·u_j)/b and u_j ← b·u_j − c·L_ji for j > i.
//   - Stage 2: last diagonal r = sqrt(L_pp² + u_p²).
//
// Behavior highlights:
//   - Always succeeds: adding a rank-one positive term keeps A positive definite.
//   - u is consumed as scratch.
//
// Complexity:
//   - Time O(p²), Space O(1).
func CholUpdate(l blas64.Triangular, u []float64) {
	checkFactor(l, u)
	p, d, s := l.N, l.Data, l.Stride

	var i, j, at int
	var lii, r, b, c float64
	for i = 0; i < p-1; i++ {
		lii = d[i*s+i]
		r = math.Hypot(lii, u[i])
		b = r / lii
		c = u[i] / lii
		d[i*s+i] = r

		for j = i + 1; j < p; j++ { // column i below the diagonal
			at = j*s + i
			d[at] = (d[at] + c*u[j]) / b
			u[j] = b*u[j] - c*d[at]
		}
	}
	at = (p-1)*s + p - 1
	d[at] = math.Sqrt(d[at]*d[at] + u[p-1]*u[p-1])
}

// CholDowndate overwrites L with the lower Cholesky factor of L·Lᵀ − u·uᵀ.
//
// Implementation:
//   - Stage 1 (dry run): replay the rotation sequence on a copy of u held in
//     work, computing the would-be column entries without storing them. If any
//     L_ii² − u_i² is not positive the downdate is infeasible.
//   - Stage 2 (commit): run the identical arithmetic again, writing into L.
//
// Behavior highlights:
//   - On ErrRankDeficient L and u are left exactly as they were: the verdict is
//     reached before the first write, with bit-identical arithmetic.
//   - A zero (or NaN) new diagonal counts as failure as well: the downdated
//     matrix is at best semidefinite and further rotations would divide by 0.
//
// Inputs:
//   - work: scratch of length ≥ p; nil allocates one.
//
// Errors:
//   - ErrRankDeficient.
//
// Complexity:
//   - Time O(p²) (two passes), Space O(1) beyond work.
func CholDowndate(l blas64.Triangular, u, work []float64) error {
	checkFactor(l, u)
	p, d, s := l.N, l.Data, l.Stride
	if len(work) < p {
		work = make([]float64, p)
	}
	v := work[:p]
	copy(v, u)

	var i, j, at int
	var lii, r, b, c, lji float64

	// Stage 1: feasibility on the copy.
	for i = 0; i < p-1; i++ {
		lii = d[i*s+i]
		r = lii*lii - v[i]*v[i]
		if !(r > 0) {
			return linalgErrorf(opCholDowndate, ErrRankDeficient)
		}
		r = math.Sqrt(r)
		b = r / lii
		c = v[i] / lii
		for j = i + 1; j < p; j++ {
			lji = (d[j*s+i] - c*v[j]) / b
			v[j] = b*v[j] - c*lji
		}
	}
	at = (p-1)*s + p - 1
	if r = d[at]*d[at] - v[p-1]*v[p-1]; !(r > 0) {
		return linalgErrorf(opCholDowndate, ErrRankDeficient)
	}

	// Stage 2: commit.
	for i = 0; i < p-1; i++ {
		lii = d[i*s+i]
		r = math.Sqrt(lii*lii - u[i]*u[i])
		b = r / lii
		c = u[i] / lii
		d[i*s+i] = r

		for j = i + 1; j < p; j++ {
			at = j*s + i
			d[at] = (d[at] - c*u[j]) / b
			u[j] = b*u[j] - c*d[at]
		}
	}
	at = (p-1)*s + p - 1
	d[at] = math.Sqrt(d[at]*d[at] - u[p-1]*u[p-1])

	return nil
}
