// Package wbacon is a weighted BACON robust regression library: it fits a
// linear model while nominating the observations that do not follow it.
//
// 🚀 What is wbacon?
//
//	The regression stage of BACON (Blocked Adaptive Computationally
//	efficient Outlier Nominators, Billor, Hadi & Velleman 2000), extended
//	to observation weights such as survey sampling weights:
//		• Order statistics: quickselect, subset selection, weighted quantiles
//		• Linear algebra: weighted least squares with rank screening,
//		  Cholesky rank-one update/downdate, hat-matrix diagonal
//		• Orchestration: the Initialize → Grow → Converge state machine
//
// ✨ Why wbacon?
//
//   - Robust – a handful of gross errors cannot drag the fit away
//   - Fast – subset growth maintains the factor in O(p²) per change
//   - Deterministic – identical results for any worker count
//   - Pure Go – gonum BLAS/LAPACK, no cgo
//
// Everything is organized under three subpackages:
//
//	order/  k-th order statistic, m-smallest subset, weighted quantile
//	linalg/ WLS, Cholesky update/downdate, leverages, parallel loops
//	bacon/  Fit, options, Result, InitialSubset
//
// Quick example:
//
//	subset, _ := bacon.InitialSubset(dist, 4*p)
//	res, err := bacon.Fit(ctx, x, y, w, subset, dist)
//	fmt.Println(res.Coefficients, res.Outliers())
//
//	go get github.com/katalvlaran/wbacon
package wbacon
