// SPDX-License-Identifier: MIT
// Package: linalg
//
// Purpose:
//   - Weighted least squares on a subset of observations, with rank screening.
//   - Keeps the compact QR factorization so the caller can seed a Cholesky
//     factor (L = Rᵀ) without a second pass over the data.
//
// Notes:
//   - Rows outside the subset get weight zero: they stay in the system but
//     contribute nothing to it, so buffers keep their n×p shape across calls.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

const (
	opNewWLS        = "NewWLS"
	opWLSFit        = "WLS.Fit"
	opLowerFactorTo = "WLS.LowerFactorTo"
)

const panicFitLen = "linalg: WLS.Fit: buffer lengths disagree with the design"

// RankTolerance is the smallest |R_ii| accepted as nonzero. It is absolute,
// not relative to the column scale: callers are expected to supply a design
// with columns of comparable magnitude.
var RankTolerance = math.Sqrt(epsilon)

// epsilon is the float64 machine epsilon (2⁻⁵²).
const epsilon = 1.0 / (1 << 52)

// QueryWork returns the optimal length of the least-squares work array for an
// n×p design with one right-hand side. No computation is performed.
func QueryWork(n, p int) int {
	var work [1]float64
	a := blas64.General{Rows: n, Cols: p, Stride: max(1, p)}
	b := blas64.General{Rows: n, Cols: 1, Stride: 1}
	lapack64.Gels(blas.NoTrans, a, b, work[:], -1)

	return int(work[0])
}

// WLS solves repeated weighted least-squares problems on one design.
// The design and response are read, never written; all factorization
// happens in private copies owned by the WLS value.
//
// A WLS is not safe for concurrent use.
type WLS struct {
	n, p int
	x    blas64.General // caller's design (read only)
	y    []float64      // caller's response (read only)
	wx   blas64.General // √w-scaled design, overwritten by the QR factorization
	wy   []float64      // √w-scaled response, first p entries hold β after Fit
	work []float64
	fit  bool // wx currently holds a successful factorization
}

// NewWLS prepares a solver for the n×p design x and response y.
// work may be nil or shorter than QueryWork(n, p); a suitable array is then
// allocated.
//
// Errors:
//   - ErrNilMatrix, ErrTooFewObservations, ErrDimensionMismatch.
func NewWLS(x *mat.Dense, y []float64, work []float64) (*WLS, error) {
	if x == nil {
		return nil, linalgErrorf(opNewWLS, ErrNilMatrix)
	}
	n, p := x.Dims()
	if p < 1 || n <= p {
		return nil, linalgErrorf(opNewWLS, ErrTooFewObservations)
	}
	if err := ValidateVecLen(y, n); err != nil {
		return nil, linalgErrorf(opNewWLS, err)
	}

	if lwork := QueryWork(n, p); len(work) < lwork {
		work = make([]float64, lwork)
	}

	return &WLS{
		n:    n,
		p:    p,
		x:    x.RawMatrix(),
		y:    y,
		wx:   blas64.General{Rows: n, Cols: p, Stride: p, Data: make([]float64, n*p)},
		wy:   make([]float64, n),
		work: work,
	}, nil
}

// Dims returns the design dimensions.
func (s *WLS) Dims() (n, p int) { return s.n, s.p }

// Fit solves min Σ_{i∈subset} w_i (y_i − x_iᵀβ)² with sqrtW holding √w_i.
//
// Implementation:
//   - Stage 1: wx ← diag(√w·[i∈subset])·X, wy likewise; count the members
//     with w > 0.
//   - Stage 2: Householder QR least squares (LAPACK GELS).
//   - Stage 3: rank screening on the diagonal of R.
//   - Stage 4: beta ← first p entries of the solution; resid ← y − X·beta
//     over all n rows, unweighted.
//
// Behavior highlights:
//   - On ErrRankDeficient beta and resid are not written.
//
// Errors:
//   - ErrRankDeficient if at most p members carry positive weight (no degrees
//     of freedom left), if GELS meets an exact zero on R's diagonal or if any
//     |R_ii| < RankTolerance.
//
// Complexity:
//   - Time O(n·p²), Space O(1) beyond the solver's buffers.
func (s *WLS) Fit(sqrtW []float64, subset []bool, beta, resid []float64) error {
	n, p := s.n, s.p
	if len(sqrtW) != n || len(subset) != n || len(beta) != p || len(resid) != n {
		panic(panicFitLen)
	}
	s.fit = false

	// Stage 1: scaled copies.
	var i, j, active int
	var f float64
	for i = 0; i < n; i++ {
		f = 0
		if subset[i] {
			f = sqrtW[i]
		}
		if f > 0 {
			active++
		}
		src := s.x.Data[i*s.x.Stride : i*s.x.Stride+p]
		dst := s.wx.Data[i*p : (i+1)*p]
		for j = range dst {
			dst[j] = f * src[j]
		}
		s.wy[i] = f * s.y[i]
	}
	if active <= p {
		return linalgErrorf(opWLSFit, ErrRankDeficient)
	}

	// Stage 2: least squares.
	b := blas64.General{Rows: n, Cols: 1, Stride: 1, Data: s.wy}
	if ok := lapack64.Gels(blas.NoTrans, s.wx, b, s.work, len(s.work)); !ok {
		return linalgErrorf(opWLSFit, ErrRankDeficient)
	}

	// Stage 3: rank screening.
	for j = 0; j < p; j++ {
		if math.Abs(s.wx.Data[j*p+j]) < RankTolerance {
			return linalgErrorf(opWLSFit, ErrRankDeficient)
		}
	}

	// Stage 4: coefficients and raw residuals.
	copy(beta, s.wy[:p])
	copy(resid, s.y)
	blas64.Gemv(blas.NoTrans, -1, s.x,
		blas64.Vector{N: p, Data: beta, Inc: 1}, 1,
		blas64.Vector{N: n, Data: resid, Inc: 1})
	s.fit = true

	return nil
}

// Factor returns a copy of the compact QR factorization (R in the upper
// triangle, Householder vectors below) left by the last successful Fit,
// or nil if there was none.
func (s *WLS) Factor() *mat.Dense {
	if !s.fit {
		return nil
	}
	data := make([]float64, len(s.wx.Data))
	copy(data, s.wx.Data)

	return mat.NewDense(s.n, s.p, data)
}

// LowerFactorTo writes the lower Cholesky factor of XᵀWX for the last fitted
// subset into dst: L = Rᵀ with column signs flipped so that diag(L) > 0.
//
// Errors:
//   - ErrRankDeficient when no successful Fit preceded the call.
//   - ErrDimensionMismatch when dst is not a p×p lower TriDense.
func (s *WLS) LowerFactorTo(dst *mat.TriDense) error {
	if !s.fit {
		return linalgErrorf(opLowerFactorTo, ErrRankDeficient)
	}
	if dst == nil {
		return linalgErrorf(opLowerFactorTo, ErrNilMatrix)
	}
	if k, kind := dst.Triangle(); k != s.p || kind != mat.Lower {
		return linalgErrorf(opLowerFactorTo, ErrDimensionMismatch)
	}

	raw := dst.RawTriangular()
	p := s.p
	var i, j int
	var sign float64
	for j = 0; j < p; j++ { // row j of R → column j of L
		sign = 1
		if s.wx.Data[j*p+j] < 0 {
			sign = -1
		}
		for i = j; i < p; i++ {
			raw.Data[i*raw.Stride+j] = sign * s.wx.Data[j*p+i]
		}
	}

	return nil
}
