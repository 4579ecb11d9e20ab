// SPDX-License-Identifier: MIT

package bacon

import (
	"math"

	"github.com/katalvlaran/wbacon/linalg"
)

const opDiscrepancy = "discrepancy"

// distances computes t_i = |r_i| / (σ·√(1 + s_i·h_i)) for every row, with
// s_i = −1 inside subset and +1 outside, h the weighted hat diagonal of L.
//
// Behavior highlights:
//   - s_i = 1 − 2·[i ∈ subset] is formed arithmetically, so members and
//     non-members with equal leverage get exactly mirrored corrections.
//   - A member whose leverage reaches 1 has no defined discrepancy (0/0 or
//     the root of a negative); it is reported as +Inf and therefore ranks
//     last.
//
// Errors:
//   - ErrTriangularSingular from the hat diagonal.
func (r *run) distances(subset []bool) error {
	d, ws, est := r.data, r.ws, r.est
	if err := linalg.HatDiag(d.raw, est.lr, d.w, ws.lev, ws.hat, ws.pool); err != nil {
		return baconErrorf(opDiscrepancy, err)
	}

	var s, t float64
	for i, h := range ws.lev {
		s = 1
		if subset[i] {
			s = -1
		}
		t = math.Abs(est.resid[i]) / (est.sigma * math.Sqrt(1+s*h))
		if math.IsNaN(t) {
			t = math.Inf(1)
		}
		est.dist[i] = t
	}
	r.scored = true

	return nil
}
