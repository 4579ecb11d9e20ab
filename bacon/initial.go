// SPDX-License-Identifier: MIT

package bacon

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/wbacon/linalg"
)

// initialize fits the caller's starting subset (enlarging it while the fit is
// rank deficient), seeds L and xty, fixes σ and computes the first
// discrepancies.
//
// Implementation:
//   - Stage 1: WLS on current; on ErrRankDeficient admit the non-member with
//     the smallest starting distance and refit.
//   - Stage 2: L from the QR triangle; xty accumulated over the subset.
//   - Stage 3: σ (supplied, or estimated from this fit).
//   - Stage 4: discrepancies t_i.
//
// Errors:
//   - ErrRankDeficient when even the full sample is rank deficient.
//   - ErrDegenerateScale, ErrTriangularSingular.
func (r *run) initialize() error {
	r.phase = PhaseInitialize
	d, est := r.data, r.est

	for {
		err := r.refit(r.current)
		if err == nil {
			break
		}
		if !errors.Is(err, linalg.ErrRankDeficient) {
			return err
		}
		i, ok, serr := r.admitNext(r.current, r.start)
		if serr != nil {
			return serr
		}
		if !ok {
			return err
		}
		r.enlarged++
		r.log.Info("rank deficient, subset enlarged", "phase", r.phase.String(), "row", i, "m", count(r.current))
	}
	r.initialSize = count(r.current)
	r.log.Info("initial fit", "phase", r.phase.String(), "m", r.initialSize, "enlarged", r.enlarged)

	linalg.WeightedXty(d.raw, d.y, d.w, r.current, est.xty, r.ws.pool)

	if r.opts.hasSigma {
		est.sigma = r.opts.sigma
	} else {
		s, err := r.estimateSigma(r.current)
		if err != nil {
			return err
		}
		est.sigma = s
	}

	return r.distances(r.current)
}

// estimateSigma returns √((Σ w r² / Σ w)·m/(m−p)) over the members with
// positive weight (m of them). It reduces to the usual residual standard
// error for unit weights and does not depend on the scale of w.
//
// Errors:
//   - ErrDegenerateScale when m ≤ p or the result is zero or not finite.
func (r *run) estimateSigma(subset []bool) (float64, error) {
	d, ws := r.data, r.ws
	ss, sw := ws.scratch[:0], ws.lev[:0]
	for i, in := range subset {
		if in && d.w[i] > 0 {
			ss = append(ss, d.w[i]*r.est.resid[i]*r.est.resid[i])
			sw = append(sw, d.w[i])
		}
	}
	m := len(ss)
	if m <= d.p {
		return 0, baconErrorf("sigma", ErrDegenerateScale)
	}

	s := math.Sqrt(floats.Sum(ss) / floats.Sum(sw) * float64(m) / float64(m-d.p))
	if !(s > 0) || math.IsInf(s, 0) {
		return 0, baconErrorf("sigma", ErrDegenerateScale)
	}

	return s, nil
}
