// SPDX-License-Identifier: MIT

package linalg

import "gonum.org/v1/gonum/blas/blas64"

const panicXtyLen = "linalg: WeightedXty: buffer lengths disagree with the design"

// WeightedXty writes xty_j = Σ_{i ∈ subset} w_i·x_ij·y_i for every column j.
//
// Implementation:
//   - One pass per column; columns are split across the pool. Each worker owns
//     its xty slots and sums rows in ascending order, so the result is
//     bit-identical for any worker count.
//
// Complexity:
//   - Time O(n·p), Space O(1).
func WeightedXty(x blas64.General, y, w []float64, subset []bool, xty []float64, pool Pool) {
	n, p := x.Rows, x.Cols
	if len(y) != n || len(w) != n || len(subset) != n || len(xty) != p {
		panic(panicXtyLen)
	}

	_ = pool.For(n*p, p, func(lo, hi int) error {
		var sum float64
		for j := lo; j < hi; j++ {
			sum = 0
			for i := 0; i < n; i++ {
				if subset[i] {
					sum += w[i] * x.Data[i*x.Stride+j] * y[i]
				}
			}
			xty[j] = sum
		}

		return nil
	})
}
