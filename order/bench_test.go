package order_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/wbacon/order"
)

// benchmarkSelectSubset measures the median-size subset selection on n values.
func benchmarkSelectSubset(b *testing.B, n int) {
	dist := randomSlice(n, uint64(n), 0)
	scratch := make([]float64, n)
	subset := make([]bool, n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := order.SelectSubset(dist, scratch, n/2, subset); err != nil {
			b.Fatalf("SelectSubset: %v", err)
		}
	}
}

func BenchmarkSelectSubset_1e3(b *testing.B) { benchmarkSelectSubset(b, 1_000) }
func BenchmarkSelectSubset_1e5(b *testing.B) { benchmarkSelectSubset(b, 100_000) }

// BenchmarkSortThreshold_1e5 is the full-sort baseline the selector replaces.
func BenchmarkSortThreshold_1e5(b *testing.B) {
	const n = 100_000
	dist := randomSlice(n, n, 0)
	scratch := make([]float64, n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(scratch, dist)
		sort.Float64s(scratch)
	}
}
