// SPDX-License-Identifier: MIT

package linalg

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the problem size (n·p) from which Pool.For
// spreads a loop over workers. Below it the goroutine overhead dominates.
const DefaultParallelThreshold = 1 << 15

// Pool describes how data-parallel loops are distributed. The zero value
// runs everything on the calling goroutine.
//
// Every loop handed to For must write only to output slots indexed by its
// own [lo, hi) range; there is no shared accumulator, so the result does not
// depend on the number of workers.
type Pool struct {
	workers   int // ≤ 1 ⇒ sequential
	threshold int // minimum n·p for going parallel
}

// NewPool returns a Pool with the given worker limit and size threshold.
// workers ≤ 0 selects runtime.GOMAXPROCS(0); threshold < 0 selects
// DefaultParallelThreshold.
func NewPool(workers, threshold int) Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold < 0 {
		threshold = DefaultParallelThreshold
	}

	return Pool{workers: workers, threshold: threshold}
}

// Workers returns the configured worker limit.
func (p Pool) Workers() int { return p.workers }

// For runs fn over [0, count) split into contiguous blocks, one block per
// worker. size is the problem size compared against the threshold.
//
// Implementation:
//   - Stage 1: small problems (size < threshold) or a single worker run fn(0, count) inline.
//   - Stage 2: otherwise blocks of ⌈count/workers⌉ run on an errgroup limited to workers.
//
// Errors:
//   - the first error returned by any block (remaining blocks still finish).
//
// Complexity:
//   - O(workers) scheduling overhead on top of fn.
func (p Pool) For(size, count int, fn func(lo, hi int) error) error {
	if count <= 0 {
		return nil
	}
	if p.workers <= 1 || size < p.threshold || count == 1 {
		return fn(0, count)
	}

	workers := min(p.workers, count)
	block := (count + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < count; lo += block {
		hi := min(lo+block, count)
		g.Go(func() error { return fn(lo, hi) })
	}

	return g.Wait()
}
