// SPDX-License-Identifier: MIT

package bacon

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func lineRun(t *testing.T, x *mat.Dense, y, w []float64, subset []bool, dist []float64, opts ...Option) *run {
	t.Helper()
	r, err := newRun(x, y, w, subset, dist, gatherOptions(opts...))
	require.NoError(t, err)

	return r
}

// TestInitialize_PositiveWeightsOnly: only p+2 rows carry weight and they form
// a well-conditioned design, so no enlargement is needed.
func TestInitialize_PositiveWeightsOnly(t *testing.T) {
	t.Parallel()

	n, p := 10, 2
	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	subset := make([]bool, n)
	noise := []float64{0.3, -0.2, 0.1, -0.25}
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(i))
		y[i] = 1 + float64(i)
	}
	for k, i := range []int{0, 3, 6, 9} { // p+2 rows
		w[i] = 1
		y[i] += noise[k]
		subset[i] = true
	}

	r := lineRun(t, x, y, w, subset, make([]float64, n))
	require.NoError(t, r.initialize())
	require.Zero(t, r.enlarged)
	require.Equal(t, p+2, r.initialSize)
	require.Greater(t, r.est.sigma, 0.0)

	// xty and L describe the weighted subset.
	var a mat.Dense
	a.Mul(r.est.l, r.est.l.T())
	require.InDelta(t, 4.0, a.At(0, 0), 1e-12)
	require.InDelta(t, 0.0+9+36+81, a.At(1, 1), 1e-9)
}

// TestInitialize_EnlargesRankDeficientSubset: a one-row start is grown by
// the smallest starting distance until it holds more than p weighted rows.
func TestInitialize_EnlargesRankDeficientSubset(t *testing.T) {
	t.Parallel()

	n := 6
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(i))
		y[i] = float64(i)
		w[i] = 1
	}
	subset := []bool{false, false, true, false, false, false}
	dist := []float64{3, 4, 0, 2, 1, 5}

	r := lineRun(t, x, y, w, subset, dist, WithSigma(1))
	require.NoError(t, r.initialize())
	require.Equal(t, 2, r.enlarged, "p rows leave no degrees of freedom")
	require.Equal(t, 3, r.initialSize)
	require.Equal(t, []bool{false, false, true, true, true, false}, r.current)
	require.Equal(t, []bool{false, false, true, false, false, false}, subset, "caller's subset untouched")
}

// TestConverge_Idempotent: one more reweighting step from a converged subset
// reproduces it.
func TestConverge_Idempotent(t *testing.T) {
	t.Parallel()

	n := 30
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	dist := make([]float64, n)
	for i := 0; i < n; i++ {
		xi := float64(i) / 3
		x.Set(i, 0, 1)
		x.Set(i, 1, xi)
		y[i] = 4 - xi + 0.2*float64((i*5)%7-3)
		w[i] = 1 + float64(i%3)
		dist[i] = float64((i * 11) % n)
	}
	y[10] += 30
	dist[10] = 100
	subset, err := InitialSubset(dist, 8)
	require.NoError(t, err)

	r := lineRun(t, x, y, w, subset, dist)
	require.NoError(t, r.execute(context.Background()))
	require.Equal(t, PhaseDone, r.phase)
	require.False(t, r.current[10])

	final := slices.Clone(r.current)
	same, err := r.step()
	require.NoError(t, err)
	require.True(t, same)
	require.Equal(t, final, r.candidate)
}

// TestSyncFactor_RollbackOnFailedDowndate: evicting rows down to a rank
// deficient subset restores L and xty.
func TestSyncFactor_RollbackOnFailedDowndate(t *testing.T) {
	t.Parallel()

	n := 5
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(i))
		y[i] = float64(2 * i)
		w[i] = 1
	}
	from := []bool{true, true, true, false, false}
	r := lineRun(t, x, y, w, from, make([]float64, n), WithSigma(1))
	require.NoError(t, r.initialize())

	l := slices.Clone(r.est.lr.Data)
	xty := slices.Clone(r.est.xty)

	// Evicting a row the factor never held drives it indefinite.
	err := r.syncFactor([]bool{true, true, true, false, true}, []bool{true, false, false, false, false})
	require.ErrorIs(t, err, ErrRankDeficient)
	require.Equal(t, l, r.est.lr.Data)
	require.Equal(t, xty, r.est.xty)

	// A feasible move: swap row 2 for rows 3 and 4.
	to := []bool{true, true, false, true, true}
	require.NoError(t, r.syncFactor(from, to))
	var a mat.Dense
	a.Mul(r.est.l, r.est.l.T())
	require.InDelta(t, 4.0, a.At(0, 0), 1e-9)
	require.InDelta(t, 0.0+1+9+16, a.At(1, 1), 1e-9)
	require.InDelta(t, 2*(0.0+1+3+4), r.est.xty[0], 1e-12)
}

func TestGrowTarget(t *testing.T) {
	t.Parallel()

	require.Equal(t, 8, growTarget(4, 100, 2))
	require.Equal(t, 3, growTarget(1, 100, 2))
	require.Equal(t, 10, growTarget(4, 10, 3))
}

func TestCutoff(t *testing.T) {
	t.Parallel()

	for _, m := range []int{4, 10, 100} {
		c := cutoff(0.05, m, 2)
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m - 2)}
		require.InDelta(t, 1-0.05/float64(2*(m+1)), dist.CDF(c), 1e-9)
		require.Greater(t, cutoff(0.01, m, 2), c, "smaller alpha admits more")
	}
	require.PanicsWithValue(t, panicCutoffDegrees, func() { cutoff(0.05, 2, 2) })
}

// tinyLine is a clean 6-row line with a three-row start.
func tinyLine() (*mat.Dense, []float64, []float64, []bool, []float64) {
	n := 6
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(i))
		y[i] = 1 + 2*float64(i)
		w[i] = 1
	}

	return x, y, w, []bool{true, true, true, false, false, false}, []float64{0, 1, 2, 3, 4, 5}
}

// axisRun prepares a grow phase over rows lying on the coordinate axes:
//
//	0:(3,0) 1:(0,3) 2:(0,4) 3:(4,0) 4:(3.75,0) 5:(0,1) 6:(4.6875,0)
//
// The current subset is {0,1,2} with the exact factor L = diag(3, 5). The
// first candidate {0,3,4} spans only the first axis, so evicting rows 1 and 2
// drives the last pivot to exactly zero. The values keep every rotation exact.
func axisRun(t *testing.T, dist []float64) *run {
	t.Helper()
	rows := [][2]float64{{3, 0}, {0, 3}, {0, 4}, {4, 0}, {3.75, 0}, {0, 1}, {4.6875, 0}}
	n := len(rows)
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	for i, row := range rows {
		x.Set(i, 0, row[0])
		x.Set(i, 1, row[1])
		y[i] = row[0] + row[1]
		w[i] = 1
	}
	start := []bool{true, true, true, false, false, false, false}

	r := lineRun(t, x, y, w, start, dist, WithSigma(1), WithCollect(2))
	require.NoError(t, r.initialize())
	r.est.l.SetTri(0, 0, 3)
	r.est.l.SetTri(1, 0, 0)
	r.est.l.SetTri(1, 1, 5)
	copy(r.est.dist, dist)

	return r
}

// TestGrow_ForcedAdmissionRecovers: the first sync fails, the next-smallest
// non-member (row 5) restores full rank and growth completes at target 4.
func TestGrow_ForcedAdmissionRecovers(t *testing.T) {
	t.Parallel()

	r := axisRun(t, []float64{0, 1, 1, 0.1, 0.2, 0.3, 0.4})
	require.NoError(t, r.grow(context.Background()))
	require.Equal(t, PhaseGrow, r.phase)
	require.Equal(t, []bool{true, false, false, true, true, true, false}, r.current)
	require.Equal(t, 4, count(r.current))

	var got mat.Dense
	got.Mul(r.est.l, r.est.l.T())
	require.True(t, mat.EqualApprox(gram(r.data.x, r.current), &got, 1e-9))
	require.InDelta(t, 9+16+3.75*3.75, got.At(0, 0), 1e-9)
	require.InDelta(t, 1, got.At(1, 1), 1e-9)
}

// TestGrow_ForcedAdmissionCapped: the admitted row (6) lies on the same axis,
// the retry fails at the target size and the factor still describes {0,1,2}.
func TestGrow_ForcedAdmissionCapped(t *testing.T) {
	t.Parallel()

	r := axisRun(t, []float64{0, 1, 1, 0.1, 0.2, 0.4, 0.3})
	err := r.grow(context.Background())
	require.ErrorIs(t, err, ErrRankDeficient)
	require.Equal(t, PhaseGrow, r.phase)
	require.Equal(t, []bool{true, true, true, false, false, false, false}, r.current)
	require.Equal(t, 3.0, r.est.l.At(0, 0))
	require.Equal(t, 0.0, r.est.l.At(1, 0))
	require.Equal(t, 5.0, r.est.l.At(1, 1))
}


// gram returns Σ x_i x_iᵀ over the members of subset.
func gram(x *mat.Dense, subset []bool) *mat.Dense {
	_, p := x.Dims()
	g := mat.NewDense(p, p, nil)
	for i, in := range subset {
		if !in {
			continue
		}
		for a := 0; a < p; a++ {
			for b := 0; b < p; b++ {
				g.Set(a, b, g.At(a, b)+x.At(i, a)*x.At(i, b))
			}
		}
	}

	return g
}
