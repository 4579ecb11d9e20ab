// SPDX-License-Identifier: MIT

package bacon

import (
	"context"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

const panicCutoffDegrees = "bacon: cutoff: subset size must exceed the number of columns"

// cutoff returns the upper alpha/(2(m+1)) quantile of Student's t with m−p
// degrees of freedom. Callers guarantee m > p: a subset that small never
// survives WLS.Fit.
//
// Errors:
//   - Panics when m ≤ p.
func cutoff(alpha float64, m, p int) float64 {
	if m <= p {
		panic(panicCutoffDegrees)
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m - p)}

	return t.Quantile(1 - alpha/float64(2*(m+1)))
}

// step performs one reweighting iteration: refit on current, recompute the
// discrepancies and write {i : t_i < cutoff} into candidate. It reports
// whether candidate equals current. A subset with at most p weighted members
// fails the refit with ErrRankDeficient before any cutoff is taken.
func (r *run) step() (bool, error) {
	if err := r.refit(r.current); err != nil {
		return false, err
	}
	if err := r.distances(r.current); err != nil {
		return false, err
	}

	c := cutoff(r.opts.alpha, count(r.current), r.data.p)
	for i, t := range r.est.dist {
		r.candidate[i] = t < c
	}
	r.log.Info("reweighted", "phase", r.phase.String(), "iteration", r.iterations, "cutoff", c, "m", count(r.candidate))

	return slices.Equal(r.current, r.candidate), nil
}

// converge runs the reweighting phase for at most maxIter iterations.
//
// Errors:
//   - ErrConvergenceFailure when the budget runs out; current then holds the
//     last subset adopted.
//   - ErrRankDeficient when a subset no longer supports a fit.
//   - ErrTriangularSingular, context errors.
func (r *run) converge(ctx context.Context) error {
	r.phase = PhaseConverge
	for r.iterations = 1; r.iterations <= r.opts.maxIter; r.iterations++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		same, err := r.step()
		if err != nil {
			return err
		}
		if same {
			return nil
		}
		copy(r.current, r.candidate)
	}
	r.iterations = r.opts.maxIter

	return ErrConvergenceFailure
}
