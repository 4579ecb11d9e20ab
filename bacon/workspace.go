// SPDX-License-Identifier: MIT

package bacon

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/wbacon/linalg"
)

// problem is the read-only regression data of one Fit call.
type problem struct {
	n, p  int
	x     *mat.Dense     // private row-major copy of the design
	raw   blas64.General // x.RawMatrix()
	y, w  []float64      // caller's slices, never written
	sqrtW []float64      // √w, computed once
}

func newProblem(x mat.Matrix, y, w []float64) *problem {
	n, p := x.Dims()
	xd := mat.DenseCopyOf(x)
	sw := make([]float64, n)
	for i, v := range w {
		sw[i] = math.Sqrt(v)
	}

	return &problem{n: n, p: p, x: xd, raw: xd.RawMatrix(), y: y, w: w, sqrtW: sw}
}

// scaledRow writes u ← x_i·√w_i.
func (d *problem) scaledRow(i int, u []float64) {
	row := d.raw.Data[i*d.raw.Stride : i*d.raw.Stride+d.p]
	for j, v := range row {
		u[j] = v * d.sqrtW[i]
	}
}

// workspace owns every buffer a Fit call needs. It is allocated once and
// handed to each phase; nothing outlives the call.
type workspace struct {
	wls  *linalg.WLS
	hat  *linalg.HatWork
	pool linalg.Pool

	snapL   []float64 // p×p, factor before a batch of updates
	snapXty []float64 // p
	u       []float64 // p, update vector
	down    []float64 // p, downdate dry-run scratch
	lev     []float64 // n, hat diagonal
	scratch []float64 // n, selector copy of the discrepancies
	idx     []int     // n, candidate indices for forced admissions
	stack   []int     // pending downdates
}

func newWorkspace(d *problem, opts Options) (*workspace, error) {
	n, p := d.n, d.p
	wls, err := linalg.NewWLS(d.x, d.y, make([]float64, linalg.QueryWork(n, p)))
	if err != nil {
		return nil, err
	}

	return &workspace{
		wls:     wls,
		hat:     linalg.NewHatWork(n, p),
		pool:    linalg.NewPool(opts.workers, opts.threshold),
		snapL:   make([]float64, p*p),
		snapXty: make([]float64, p),
		u:       make([]float64, p),
		down:    make([]float64, p),
		lev:     make([]float64, n),
		scratch: make([]float64, n),
		idx:     make([]int, n),
		stack:   make([]int, 0, n),
	}, nil
}
