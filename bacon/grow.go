// SPDX-License-Identifier: MIT

package bacon

import (
	"context"
	"errors"

	"github.com/katalvlaran/wbacon/linalg"
	"github.com/katalvlaran/wbacon/order"
)

// growTarget is collect·p clamped to [p+1, n].
func growTarget(collect, n, p int) int {
	return min(max(collect*p, p+1), n)
}

// grow runs the subset-growth phase: start from the p+1 smallest
// discrepancies and add one observation per step until the subset holds
// growTarget observations.
//
// Implementation (per step):
//   - Stage 1: sync L and xty to the candidate subset; a failed downdate
//     force-admits the next-smallest non-member and retries.
//   - Stage 2: adopt the candidate; β by two triangular solves; residuals.
//   - Stage 3: discrepancies; candidate ← m+1 smallest.
//
// Errors:
//   - ErrRankDeficient once forced admissions reach the target size.
//   - ErrTriangularSingular, context errors.
func (r *run) grow(ctx context.Context) error {
	r.phase = PhaseGrow
	d, est := r.data, r.est
	target := growTarget(r.opts.collect, d.n, d.p)

	m := d.p + 1
	if _, err := order.SelectSubset(est.dist, r.ws.scratch, m, r.candidate); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		for {
			err := r.syncFactor(r.current, r.candidate)
			if err == nil {
				break
			}
			if !errors.Is(err, linalg.ErrRankDeficient) || m >= target {
				return err
			}
			i, ok, serr := r.admitNext(r.candidate, est.dist)
			if serr != nil {
				return serr
			}
			if !ok {
				return err
			}
			m++
			r.log.Info("forced admission", "phase", r.phase.String(), "row", i, "m", m)
		}

		copy(r.current, r.candidate)
		r.solveFromFactor()
		if err := r.distances(r.current); err != nil {
			return err
		}
		r.log.Info("subset grown", "phase", r.phase.String(), "m", m)

		m++
		if m > target {
			return nil
		}
		if _, err := order.SelectSubset(est.dist, r.ws.scratch, m, r.candidate); err != nil {
			return err
		}
	}
}
