// SPDX-License-Identifier: MIT

package bacon

import (
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of Fit. Every slice is owned by the Result.
type Result struct {
	// Coefficients and Residuals (y − Xβ, unweighted, all rows) of the last
	// successful fit; nil when no fit succeeded.
	Coefficients []float64
	Residuals    []float64

	// Subset is the final subset of outlier-free observations (the last one
	// reached on failure) and Size its cardinality.
	Subset []bool
	Size   int

	// Distances holds the discrepancies t_i of the last fit; nil when none
	// were computed.
	Distances []float64

	// Iterations is the number of reweighting iterations performed.
	Iterations int

	Success bool
	Phase   Phase // phase the run stopped in (PhaseDone on success)

	// Sigma is the residual scale used in the discrepancies.
	Sigma float64

	// InitialSize is the size of the starting subset after any enlargement.
	InitialSize int

	// Factor is the compact QR factorization of the weighted design
	// (R in the upper triangle) from the last least-squares fit, nil if that
	// fit failed. Cholesky is the lower factor of XᵀWX on the subset the
	// estimate belongs to, nil when no fit succeeded.
	Factor   *mat.Dense
	Cholesky *mat.TriDense
}

// Outliers returns the indices outside the final subset, ascending.
func (res *Result) Outliers() []int {
	var out []int
	for i, in := range res.Subset {
		if !in {
			out = append(out, i)
		}
	}

	return out
}

// result snapshots the run state into a Result.
func (r *run) result(success bool) *Result {
	res := &Result{
		Subset:      slices.Clone(r.current),
		Size:        count(r.current),
		Iterations:  r.iterations,
		Success:     success,
		Phase:       r.phase,
		InitialSize: r.initialSize,
	}
	if !r.fitted {
		return res
	}

	res.Coefficients = slices.Clone(r.est.beta)
	res.Residuals = slices.Clone(r.est.resid)
	res.Factor = r.ws.wls.Factor()
	p := r.data.p
	res.Cholesky = mat.NewTriDense(p, mat.Lower, slices.Clone(r.est.lr.Data[:p*p]))
	res.Sigma = r.est.sigma
	if r.scored {
		res.Distances = slices.Clone(r.est.dist)
	}

	return res
}
