// SPDX-License-Identifier: MIT

package bacon

import (
	"context"
	"math"
	"slices"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/wbacon/linalg"
)

const opFit = "Fit"

// run is the state of one Fit call.
type run struct {
	opts Options
	log  logr.Logger
	data *problem
	ws   *workspace
	est  *estimate

	start     []float64 // caller's starting distances
	current   []bool
	candidate []bool

	phase       Phase
	fitted      bool // est.beta/resid hold a successful fit
	scored      bool // est.dist holds discrepancies
	enlarged    int
	initialSize int
	iterations  int
}

// Fit computes the weighted BACON regression of y on x.
//
// Implementation:
//   - Stage 1 (Initialize): weighted least squares on subset, enlarged by the
//     smallest dist values while rank deficient; σ fixed.
//   - Stage 2 (Grow): from the p+1 smallest discrepancies, one observation
//     per step up to collect·p, with O(p²) factor updates per change.
//   - Stage 3 (Converge): refit and readmit every observation below the
//     Student-t cutoff until the subset is a fixed point.
//
// Inputs:
//   - x: n×p design (n > p), y: response, w: weights ≥ 0. Never written.
//   - subset: starting subset (see InitialSubset); dist: the distances it
//     was built from, used to pick extra rows when it is rank deficient.
//
// Returns:
//   - On invalid input: (nil, err).
//   - Otherwise a Result; on a runtime failure it comes with a non-nil error,
//     Success == false and the state reached (Coefficients/Residuals are nil
//     if no fit ever succeeded).
//
// Errors:
//   - Validation: ErrNilMatrix, ErrTooFewObservations, ErrDimensionMismatch,
//     ErrNaNInf, ErrNegativeWeight, ErrInvalidSubset.
//   - Runtime: ErrRankDeficient, ErrTriangularSingular, ErrDegenerateScale,
//     ErrConvergenceFailure, ctx.Err().
//
// Concurrency:
//   - Fit keeps no state between calls and may run concurrently with other
//     Fit calls. ctx is checked between phases and on every iteration.
//
// Complexity:
//   - Time O(n·p²) per reweighting iteration and per growth step (hat
//     diagonal), Space O(n·p).
func Fit(ctx context.Context, x mat.Matrix, y, w []float64, subset []bool, dist []float64, opts ...Option) (*Result, error) {
	if err := linalg.ValidateDesign(x, y, w); err != nil {
		return nil, baconErrorf(opFit, err)
	}
	n, _ := x.Dims()
	if len(subset) != n || len(dist) != n {
		return nil, baconErrorf(opFit, ErrInvalidSubset)
	}
	for _, v := range dist {
		if math.IsNaN(v) {
			return nil, baconErrorf(opFit, ErrInvalidSubset)
		}
	}

	r, err := newRun(x, y, w, subset, dist, gatherOptions(opts...))
	if err != nil {
		return nil, baconErrorf(opFit, err)
	}
	err = r.execute(ctx)

	return r.result(err == nil), err
}

func newRun(x mat.Matrix, y, w []float64, subset []bool, dist []float64, opts Options) (*run, error) {
	d := newProblem(x, y, w)
	ws, err := newWorkspace(d, opts)
	if err != nil {
		return nil, err
	}
	r := &run{
		opts:      opts,
		log:       logr.Discard(),
		data:      d,
		ws:        ws,
		est:       newEstimate(d.n, d.p),
		start:     dist,
		current:   slices.Clone(subset),
		candidate: make([]bool, d.n),
	}
	if opts.verbose {
		r.log = opts.logger
	}

	return r, nil
}

// execute drives the phases; errors come back tagged with the failing phase.
func (r *run) execute(ctx context.Context) error {
	phases := []func(context.Context) error{
		func(context.Context) error { return r.initialize() },
		r.grow,
		r.converge,
	}
	for _, fn := range phases {
		if err := ctx.Err(); err != nil {
			return baconErrorf(r.phase.String(), err)
		}
		if err := fn(ctx); err != nil {
			r.log.Info("run failed", "phase", r.phase.String(), "error", err.Error())

			return baconErrorf(r.phase.String(), err)
		}
	}
	r.phase = PhaseDone
	r.log.Info("converged", "iterations", r.iterations, "m", count(r.current))

	return nil
}
