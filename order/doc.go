// SPDX-License-Identifier: MIT

// Package order provides order statistics by partial selection.
//
// What & Why:
//
//	Robust estimators repeatedly need "the m smallest of n values" or a
//	weighted quantile, but never the full ordering. Sorting costs O(n log n)
//	on every call; quickselect finds the k-th order statistic in expected
//	O(n) and leaves the slice partitioned around it, which is all the
//	callers use.
//
// Exposed API:
//   - Select(x, k)                       -> k-th smallest, x partitioned in place
//   - SelectIndex(keys, idx, k)          -> same, permuting an index array
//   - SelectSubset(dist, scratch, m, s)  -> flags every dist[i] ≤ m-th smallest
//   - WeightedQuantile(x, w, prob)       -> weighted quantile by weighted selection
//   - WeightedMedian(x, w)               -> WeightedQuantile(x, w, 0.5)
//
// Determinism:
//
//	Pivots are randomized to keep the expected running time linear, but the
//	generator is seeded from the input length, so two calls on equal inputs
//	perform the same swaps and return the same permutation.
//
// Complexity:
//
//	Expected O(n) time for every selection, O(1) extra space
//	(WeightedQuantile copies its inputs: O(n) space).
package order
