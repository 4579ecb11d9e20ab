// SPDX-License-Identifier: MIT

// Package bacon implements weighted BACON regression (Billor, Hadi and
// Velleman, 2000): a robust linear regression that separates outliers from
// the bulk of the data by growing a clean subset of observations.
//
// What & Why:
//
//	Least squares is pulled arbitrarily far by a few gross outliers in y.
//	BACON starts from a small subset believed to be clean, fits on it and
//	ranks every observation by a leverage-corrected discrepancy
//
//	    t_i = |r_i| / (σ·√(1 ± h_i))   (− inside the subset, + outside)
//
//	then rebuilds the subset from the best-ranked observations, until it
//	stops changing. Observations outside the final subset are the outliers.
//
// Phases:
//
//	Initialize  fit the caller's starting subset; while rank deficient,
//	            admit the observation with the next-smallest starting distance.
//	Grow        restart from the p+1 smallest t_i and add one observation
//	            per step up to collect·p. The Cholesky factor of XᵀWX is
//	            carried along by rank-one updates/downdates (O(p²) per
//	            change) instead of refitting.
//	Converge    refit from scratch and readmit {i : t_i < cutoff}, the cutoff
//	            being the upper alpha/(2(m+1)) quantile of Student's t with
//	            m−p degrees of freedom; stop at a fixed point.
//
// Weights:
//
//	Observation weights w_i ≥ 0 (e.g. survey sampling weights) enter every
//	fit, the factor and the leverages. A zero weight keeps an observation in
//	the ranking but out of every fit.
//
// Usage:
//
//	subset, _ := bacon.InitialSubset(dist, 4*p)
//	res, err := bacon.Fit(ctx, x, y, w, subset, dist, bacon.WithAlpha(0.05))
//	if err != nil {
//	    // res (when non-nil) tells where the run stopped
//	}
//	fmt.Println(res.Coefficients, res.Outliers())
//
// Errors:
//
//	Invalid input returns (nil, err). Runtime failures return the state
//	reached together with the error; match kinds with errors.Is against the
//	sentinels in errors.go.
package bacon
