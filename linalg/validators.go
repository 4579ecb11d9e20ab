// SPDX-License-Identifier: MIT
// Package: linalg
//
// Purpose:
//  - Single source of truth for input checks on regression data.
//  - Return plain sentinels wrapped with the validator tag so call sites can
//    add their own context uniformly.
//
// Determinism & Performance:
//  - All checks are pure, allocate nothing and run in O(n·p) at most.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return linalgErrorf(tag, err)
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// ValidateDesign checks a regression problem (x, y, w) before any allocation.
//
// Sequence: NotNil → Shape (n > p ≥ 1) → lengths → finite values → weights ≥ 0.
//
// Errors:
//   - ErrNilMatrix, ErrTooFewObservations, ErrDimensionMismatch, ErrNaNInf,
//     ErrNegativeWeight.
//
// Complexity: O(n·p).
func ValidateDesign(x mat.Matrix, y, w []float64) error {
	if x == nil {
		return validatorErrorf("ValidateDesign", ErrNilMatrix)
	}
	n, p := x.Dims()
	if p < 1 || n <= p {
		return validatorErrorf("ValidateDesign", ErrTooFewObservations)
	}
	if err := ValidateVecLen(y, n); err != nil {
		return validatorErrorf("ValidateDesign: y", err)
	}
	if err := ValidateVecLen(w, n); err != nil {
		return validatorErrorf("ValidateDesign: w", err)
	}

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < p; j++ {
			if isNonFinite(x.At(i, j)) {
				return validatorErrorf("ValidateDesign: x", ErrNaNInf)
			}
		}
	}
	if err := ValidateFinite(y); err != nil {
		return validatorErrorf("ValidateDesign: y", err)
	}
	if err := ValidateWeights(w); err != nil {
		return validatorErrorf("ValidateDesign: w", err)
	}

	return nil
}

// ValidateVecLen ensures the vector is non-nil and has length n.
func ValidateVecLen(v []float64, n int) error {
	if v == nil || len(v) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMaskLen ensures a subset indicator has length n.
func ValidateMaskLen(mask []bool, n int) error {
	if len(mask) != n {
		return validatorErrorf("ValidateMaskLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf entries.
func ValidateFinite(v []float64) error {
	for _, x := range v {
		if isNonFinite(x) {
			return validatorErrorf("ValidateFinite", ErrNaNInf)
		}
	}

	return nil
}

// ValidateWeights rejects non-finite and negative weights. Zero is allowed:
// the observation then contributes nothing to any fit.
func ValidateWeights(w []float64) error {
	for _, x := range w {
		if isNonFinite(x) {
			return validatorErrorf("ValidateWeights", ErrNaNInf)
		}
		if x < 0 {
			return validatorErrorf("ValidateWeights", ErrNegativeWeight)
		}
	}

	return nil
}
