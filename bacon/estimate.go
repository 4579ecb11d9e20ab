// SPDX-License-Identifier: MIT

package bacon

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/wbacon/linalg"
)

// estimate is the mutable state of a run: the fit on the current subset and
// the factor/cross-product pair that tracks it.
type estimate struct {
	beta  []float64 // p
	resid []float64 // n, y − Xβ
	dist  []float64 // n, discrepancies t_i
	sigma float64

	l   *mat.TriDense     // lower factor, L·Lᵀ = XᵀWX on the current subset
	lr  blas64.Triangular // l.RawTriangular()
	xty []float64         // p, XᵀWy on the current subset
}

func newEstimate(n, p int) *estimate {
	l := mat.NewTriDense(p, mat.Lower, nil)

	return &estimate{
		beta:  make([]float64, p),
		resid: make([]float64, n),
		dist:  make([]float64, n),
		l:     l,
		lr:    l.RawTriangular(),
		xty:   make([]float64, p),
	}
}

// syncFactor moves L and xty from the subset from to the subset to.
//
// Implementation:
//   - Stage 1: snapshot L and xty.
//   - Stage 2: admissions (to ∖ from) are applied at once as rank-one
//     updates; evictions (from ∖ to) are pushed on a stack.
//   - Stage 3: evictions are applied as downdates. Updates go first so that
//     the matrix is as large as possible when it shrinks.
//
// Errors:
//   - ErrRankDeficient if a downdate fails; L and xty are then restored to the
//     snapshot, i.e. they still describe from.
func (r *run) syncFactor(from, to []bool) error {
	d, ws, est := r.data, r.ws, r.est
	copy(ws.snapL, est.lr.Data)
	copy(ws.snapXty, est.xty)

	var i, j, updates int
	var wy float64
	ws.stack = ws.stack[:0]
	for i = 0; i < d.n; i++ {
		switch {
		case to[i] && !from[i]:
			d.scaledRow(i, ws.u)
			wy = d.w[i] * d.y[i]
			for j = 0; j < d.p; j++ {
				est.xty[j] += d.raw.Data[i*d.raw.Stride+j] * wy
			}
			linalg.CholUpdate(est.lr, ws.u)
			updates++
		case from[i] && !to[i]:
			ws.stack = append(ws.stack, i)
		}
	}

	for _, i = range ws.stack {
		d.scaledRow(i, ws.u)
		wy = d.w[i] * d.y[i]
		for j = 0; j < d.p; j++ {
			est.xty[j] -= d.raw.Data[i*d.raw.Stride+j] * wy
		}
		if err := linalg.CholDowndate(est.lr, ws.u, ws.down); err != nil {
			copy(est.lr.Data, ws.snapL)
			copy(est.xty, ws.snapXty)
			r.log.Info("downdate failed, widening subset", "phase", r.phase.String(), "row", i)

			return err
		}
	}
	r.log.Info("factor synced", "phase", r.phase.String(), "updates", updates, "downdates", len(ws.stack))

	return nil
}

// solveFromFactor recovers β from L and xty, then residuals over all rows.
func (r *run) solveFromFactor() {
	linalg.CholSolve(r.est.lr, r.est.xty, r.est.beta)
	r.residuals()
}

// residuals sets resid ← y − X·β.
func (r *run) residuals() {
	d, est := r.data, r.est
	copy(est.resid, d.y)
	blas64.Gemv(blas.NoTrans, -1, d.raw,
		blas64.Vector{N: d.p, Data: est.beta, Inc: 1}, 1,
		blas64.Vector{N: d.n, Data: est.resid, Inc: 1})
}

// refit solves weighted least squares on subset from scratch and reseeds L
// from the QR triangle.
func (r *run) refit(subset []bool) error {
	est := r.est
	if err := r.ws.wls.Fit(r.data.sqrtW, subset, est.beta, est.resid); err != nil {
		return err
	}
	r.fitted = true

	return r.ws.wls.LowerFactorTo(est.l)
}
