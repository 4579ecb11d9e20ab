// SPDX-License-Identifier: MIT
// Package bacon: sentinel error set.
// Runtime failures come back as one of these (or a linalg sentinel
// re-exported below), wrapped with the phase that raised them; match them
// with errors.Is.

package bacon

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/wbacon/linalg"
)

var (
	// ErrConvergenceFailure indicates that the reweighting phase used up its
	// iteration budget without reaching a fixed point. The Result still holds
	// the last subset and estimate.
	ErrConvergenceFailure = errors.New("bacon: reweighting did not converge")

	// ErrDegenerateScale indicates that the residual scale estimated from the
	// initial fit is zero or not finite (e.g. an exact fit), so discrepancies
	// cannot be formed. Supply the scale with WithSigma instead.
	ErrDegenerateScale = errors.New("bacon: degenerate residual scale")

	// ErrInvalidSubset indicates a starting subset or distance vector that
	// does not match the design (wrong length, NaN distances).
	ErrInvalidSubset = errors.New("bacon: invalid starting subset")
)

// Kernel sentinels, re-exported so callers need a single import.
var (
	ErrRankDeficient      = linalg.ErrRankDeficient
	ErrTriangularSingular = linalg.ErrTriangularSingular
	ErrDimensionMismatch  = linalg.ErrDimensionMismatch
	ErrNilMatrix          = linalg.ErrNilMatrix
	ErrTooFewObservations = linalg.ErrTooFewObservations
	ErrNaNInf             = linalg.ErrNaNInf
	ErrNegativeWeight     = linalg.ErrNegativeWeight
)

// baconErrorf wraps err with a phase or operation tag, preserving it for errors.Is.
// Use only when err != nil.
func baconErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
