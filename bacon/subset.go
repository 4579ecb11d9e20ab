// SPDX-License-Identifier: MIT

package bacon

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/wbacon/linalg"
	"github.com/katalvlaran/wbacon/order"
)

const (
	opInitialSubset   = "InitialSubset"
	opMedianDistances = "MedianDistances"
)

// MedianDistances returns a robust starting distance for every row of x: the
// Euclidean distance from the coordinate-wise weighted median, each column
// scaled by its weighted median absolute deviation. Columns without spread
// (an intercept) are skipped, so a design with no varying column yields all
// zeros. Feed the result to InitialSubset and Fit.
//
// Implementation:
//   - Stage 1: validate x (no NaN/Inf) and w (length n, finite, ≥ 0).
//   - Stage 2: per column j: med_j ← WeightedMedian(x_·j, w),
//     mad_j ← WeightedMedian(|x_·j − med_j|, w).
//   - Stage 3: d_i ← √Σ_j ((x_ij − med_j)/mad_j)² over columns with mad_j > 0.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrNegativeWeight.
//   - order.ErrInvalidWeight when every weight is zero.
//
// Complexity:
//   - Time expected O(n·p), Space O(n).
func MedianDistances(x mat.Matrix, w []float64) ([]float64, error) {
	if x == nil {
		return nil, baconErrorf(opMedianDistances, ErrNilMatrix)
	}
	n, p := x.Dims()
	if err := linalg.ValidateVecLen(w, n); err != nil {
		return nil, baconErrorf(opMedianDistances, err)
	}
	if err := linalg.ValidateWeights(w); err != nil {
		return nil, baconErrorf(opMedianDistances, err)
	}

	col := make([]float64, n)
	dev := make([]float64, n)
	dist := make([]float64, n)
	var i, j int
	var med, mad float64
	var err error
	for j = 0; j < p; j++ {
		mat.Col(col, j, x)
		if err = linalg.ValidateFinite(col); err != nil {
			return nil, baconErrorf(opMedianDistances, err)
		}
		if med, err = order.WeightedMedian(col, w); err != nil {
			return nil, baconErrorf(opMedianDistances, err)
		}
		for i = range col {
			dev[i] = math.Abs(col[i] - med)
		}
		if mad, err = order.WeightedMedian(dev, w); err != nil {
			return nil, baconErrorf(opMedianDistances, err)
		}
		if mad == 0 {
			continue
		}
		for i = range dev {
			dev[i] /= mad
			dist[i] += dev[i] * dev[i]
		}
	}
	for i = range dist {
		dist[i] = math.Sqrt(dist[i])
	}

	return dist, nil
}

// InitialSubset returns the indicator of the m smallest distances (ties at the
// threshold are admitted as well). Any distance vector from an upstream stage,
// e.g. Mahalanobis distances of the covariates, can seed Fit this way.
//
// Errors:
//   - ErrInvalidSubset for an empty or NaN-carrying dist or m ∉ [1, len(dist)].
func InitialSubset(dist []float64, m int) ([]bool, error) {
	if len(dist) == 0 || m < 1 || m > len(dist) {
		return nil, baconErrorf(opInitialSubset, ErrInvalidSubset)
	}
	for _, v := range dist {
		if math.IsNaN(v) {
			return nil, baconErrorf(opInitialSubset, ErrInvalidSubset)
		}
	}

	subset := make([]bool, len(dist))
	if _, err := order.SelectSubset(dist, make([]float64, len(dist)), m, subset); err != nil {
		return nil, baconErrorf(opInitialSubset, err)
	}

	return subset, nil
}

// count returns the number of members of subset.
func count(subset []bool) int {
	m := 0
	for _, in := range subset {
		if in {
			m++
		}
	}

	return m
}

// admitNext adds the non-member of subset with the smallest key and reports
// its index, or false when every row is already a member.
func (r *run) admitNext(subset []bool, keys []float64) (int, bool, error) {
	idx := r.ws.idx[:0]
	for i, in := range subset {
		if !in {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return -1, false, nil
	}
	if err := order.SelectIndex(keys, idx, 0); err != nil {
		return -1, false, err
	}
	subset[idx[0]] = true

	return idx[0], true, nil
}
