// SPDX-License-Identifier: MIT
// Package: order
//
// Purpose:
//   - Quickselect kernels on float64 slices and on index permutations.
//   - Subset-by-threshold selection used by the BACON subset loop.
//
// Determinism & Performance:
//   - Three-way partitioning: runs of equal keys are settled in one pass, so
//     heavily tied inputs (all-zero residuals) stay linear.
//   - Pivot generator seeded from the input length; no global state.

package order

import (
	"math"
	"math/rand/v2"
)

// Operation name constants for error wrapping.
const (
	opSelect       = "Select"
	opSelectIndex  = "SelectIndex"
	opSelectSubset = "SelectSubset"
)

// pivotSeed is the second PCG seed word; the first is the input length.
const pivotSeed uint64 = 0x9e3779b97f4a7c15

// newPivotSource returns the pivot generator for an input of length n.
func newPivotSource(n int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(n), pivotSeed))
}

// Select partitions x in place so that x[k] holds the k-th smallest value
// (0-based), every element before position k is ≤ x[k] and no element after
// it is smaller. The order inside both halves is unspecified.
//
// Implementation:
//   - Stage 1: validate (non-empty, 0 ≤ k < len(x), no NaN).
//   - Stage 2: randomized three-way quickselect narrowing [lo, hi] to k.
//
// Returns:
//   - float64: the k-th order statistic.
//
// Errors:
//   - ErrEmpty, ErrRankOutOfRange, ErrNaN (x is left untouched).
//
// Complexity:
//   - Time expected O(n), Space O(1).
func Select(x []float64, k int) (float64, error) {
	if len(x) == 0 {
		return 0, orderErrorf(opSelect, ErrEmpty)
	}
	if k < 0 || k >= len(x) {
		return 0, orderErrorf(opSelect, ErrRankOutOfRange)
	}
	for _, v := range x {
		if math.IsNaN(v) {
			return 0, orderErrorf(opSelect, ErrNaN)
		}
	}

	selectK(values(x), 0, len(x)-1, k, newPivotSource(len(x)))

	return x[k], nil
}

// partitioner is a view over positions [0, len) with float keys; partition3
// and selectK work on any view.
type partitioner interface {
	key(i int) float64
	swap(i, j int)
}

// values views x itself.
type values []float64

func (v values) key(i int) float64 { return v[i] }
func (v values) swap(i, j int)      { v[i], v[j] = v[j], v[i] }

// indexed views keys through the permutation idx; only idx moves.
type indexed struct {
	keys []float64
	idx  []int
}

func (v indexed) key(i int) float64 { return v.keys[v.idx[i]] }
func (v indexed) swap(i, j int)      { v.idx[i], v.idx[j] = v.idx[j], v.idx[i] }

// partition3 is the three-way partition of [lo, hi] around pivot.
// On return [lo,lt) < pivot, [lt,gt] == pivot and (gt,hi] > pivot.
func partition3[P partitioner](v P, lo, hi int, pivot float64) (lt, gt int) {
	var i int
	var k float64
	lt, i, gt = lo, lo, hi
	for i <= gt {
		k = v.key(i)
		switch {
		case k < pivot:
			v.swap(lt, i)
			lt++
			i++
		case k > pivot:
			v.swap(i, gt)
			gt--
		default:
			i++
		}
	}

	return lt, gt
}

// selectK is the unchecked quickselect kernel on positions [lo, hi]
// (inclusive). Invariant on exit: key(lo..k-1) ≤ key(k) ≤ key(k+1..hi).
func selectK[P partitioner](v P, lo, hi, k int, rng *rand.Rand) {
	var lt, gt int
	for hi > lo {
		lt, gt = partition3(v, lo, hi, v.key(lo+rng.IntN(hi-lo+1)))

		switch {
		case k < lt:
			hi = lt - 1
		case k > gt:
			lo = gt + 1
		default:
			return // k sits inside the run of pivot-equal keys
		}
	}
}

// SelectIndex permutes idx so that keys[idx[k]] is the k-th smallest of
// {keys[idx[0]], …, keys[idx[len(idx)-1]]}, with the same partition guarantee
// as Select. keys itself is never modified, which lets callers rank
// observations without losing the observation ↔ value correspondence.
//
// Errors:
//   - ErrEmpty, ErrRankOutOfRange, ErrLengthMismatch (an index outside keys),
//     ErrNaN (a referenced key is NaN).
//
// Complexity:
//   - Time expected O(len(idx)), Space O(1).
func SelectIndex(keys []float64, idx []int, k int) error {
	if len(idx) == 0 {
		return orderErrorf(opSelectIndex, ErrEmpty)
	}
	if k < 0 || k >= len(idx) {
		return orderErrorf(opSelectIndex, ErrRankOutOfRange)
	}
	for _, j := range idx {
		if j < 0 || j >= len(keys) {
			return orderErrorf(opSelectIndex, ErrLengthMismatch)
		}
		if math.IsNaN(keys[j]) {
			return orderErrorf(opSelectIndex, ErrNaN)
		}
	}

	selectK(indexed{keys: keys, idx: idx}, 0, len(idx)-1, k, newPivotSource(len(idx)))

	return nil
}

// SelectSubset flags the m smallest entries of dist: subset[i] is true iff
// dist[i] ≤ t, where t is the m-th smallest value of dist. dist is not
// modified; the selection runs on scratch (len(scratch) ≥ len(dist)).
//
// Behavior highlights:
//   - Ties at the threshold admit extra elements, so the returned size is
//     ≥ m, and equals m when no other entry equals t.
//   - The flagged set always contains the true smallest-m set.
//
// Returns:
//   - int: number of flagged entries.
//
// Errors:
//   - ErrEmpty, ErrRankOutOfRange (m < 1 or m > len(dist)),
//     ErrLengthMismatch (subset or scratch too short), ErrNaN.
//
// Complexity:
//   - Time expected O(n), Space O(1) beyond scratch.
func SelectSubset(dist, scratch []float64, m int, subset []bool) (int, error) {
	n := len(dist)
	if n == 0 {
		return 0, orderErrorf(opSelectSubset, ErrEmpty)
	}
	if len(subset) != n || len(scratch) < n {
		return 0, orderErrorf(opSelectSubset, ErrLengthMismatch)
	}
	if m < 1 || m > n {
		return 0, orderErrorf(opSelectSubset, ErrRankOutOfRange)
	}

	buf := scratch[:n]
	copy(buf, dist)
	threshold, err := Select(buf, m-1)
	if err != nil {
		return 0, orderErrorf(opSelectSubset, err)
	}

	size := 0
	for i, v := range dist {
		subset[i] = v <= threshold
		if subset[i] {
			size++
		}
	}

	return size, nil
}
