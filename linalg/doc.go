// SPDX-License-Identifier: MIT

// Package linalg provides the numerical kernels behind weighted BACON
// regression: weighted least squares with rank screening, rank-one
// Cholesky maintenance, coefficient recovery from a maintained factor,
// hat-matrix diagonals and the weighted Xᵀy accumulator.
//
// What & Why:
//
//	The subset loop changes the active observations by a handful of rows
//	per step. Refactorizing X on every step costs O(n·p²); a rank-one
//	update or downdate of the lower Cholesky factor L of XᵀWX costs O(p²).
//	Kernels here operate on gonum's raw blas64 headers so that callers can
//	keep their buffers (allocated once per call) and hand them down without
//	copying.
//
// Storage:
//
//	All matrices are row-major (gonum convention). L is lower triangular
//	and stored in a p×p buffer; its strictly upper part is ignored.
//
// Errors:
//
//	Kernels return the sentinels in errors.go, wrapped with an operation
//	tag; match them with errors.Is. Length mismatches between buffers the
//	caller sized itself are programmer errors and panic.
//
// Concurrency:
//
//	Pool runs data-parallel loops where every worker owns disjoint output
//	slots, so results are bit-identical for any worker count.
package linalg
