// SPDX-License-Identifier: MIT

package order

import (
	"math"
	"math/rand/v2"
)

const opWeightedQuantile = "WeightedQuantile"

// WeightedQuantile returns the weighted prob-quantile of x: the smallest
// value v of x such that the total weight of {x[i] ≤ v} reaches prob·Σw.
// With unit weights and prob = k/n this is the k-th order statistic.
//
// Implementation:
//   - Stage 1: validate lengths, prob ∈ [0,1], weights finite, ≥ 0, Σw > 0.
//   - Stage 2: copy (x, w) into scratch pairs; inputs stay untouched.
//   - Stage 3: weighted quickselect: partition around a random pivot, compare
//     the weight mass below/at the pivot with the target and recurse into
//     one side only.
//
// Errors:
//   - ErrEmpty, ErrLengthMismatch, ErrInvalidProbability, ErrInvalidWeight, ErrNaN.
//
// Complexity:
//   - Time expected O(n), Space O(n) for the copies.
func WeightedQuantile(x, w []float64, prob float64) (float64, error) {
	n := len(x)
	if n == 0 {
		return 0, orderErrorf(opWeightedQuantile, ErrEmpty)
	}
	if len(w) != n {
		return 0, orderErrorf(opWeightedQuantile, ErrLengthMismatch)
	}
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return 0, orderErrorf(opWeightedQuantile, ErrInvalidProbability)
	}

	total := 0.0
	for i := range n {
		if math.IsNaN(x[i]) {
			return 0, orderErrorf(opWeightedQuantile, ErrNaN)
		}
		if w[i] < 0 || math.IsNaN(w[i]) || math.IsInf(w[i], 0) {
			return 0, orderErrorf(opWeightedQuantile, ErrInvalidWeight)
		}
		total += w[i]
	}
	if total <= 0 {
		return 0, orderErrorf(opWeightedQuantile, ErrInvalidWeight)
	}

	xs := make([]float64, n)
	ws := make([]float64, n)
	copy(xs, x)
	copy(ws, w)

	return weightedSelect(xs, ws, prob*total, newPivotSource(n)), nil
}

// WeightedMedian is WeightedQuantile(x, w, 0.5).
func WeightedMedian(x, w []float64) (float64, error) {
	return WeightedQuantile(x, w, 0.5)
}

// pairs views (x, w) moved together, keyed by x.
type pairs struct{ x, w []float64 }

func (v pairs) key(i int) float64 { return v.x[i] }
func (v pairs) swap(i, j int) {
	v.x[i], v.x[j] = v.x[j], v.x[i]
	v.w[i], v.w[j] = v.w[j], v.w[i]
}

// weightedSelect finds the smallest x whose cumulative weight reaches target.
// xs and ws are permuted together by the partition shared with Select.
func weightedSelect(xs, ws []float64, target float64, rng *rand.Rand) float64 {
	v := pairs{x: xs, w: ws}
	lo, hi := 0, len(xs)-1
	below := 0.0 // weight of everything already discarded on the left

	var lt, gt, i int
	var pivot, wl, we float64
	for {
		pivot = xs[lo+rng.IntN(hi-lo+1)]
		lt, gt = partition3(v, lo, hi, pivot)

		wl, we = 0, 0
		for i = lo; i < lt; i++ {
			wl += ws[i]
		}
		for i = lt; i <= gt; i++ {
			we += ws[i]
		}

		switch {
		case lt > lo && below+wl >= target:
			hi = lt - 1
		case below+wl+we >= target || gt >= hi:
			// gt >= hi: nothing left on the right; rounding in the partial
			// sums must not push the search past the maximum.
			return pivot
		default:
			below += wl + we
			lo = gt + 1
		}
	}
}
