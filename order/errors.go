// SPDX-License-Identifier: MIT
// Package order: sentinel error set.
// Every algorithm returns these sentinels (possibly wrapped with an
// operation tag); tests match them via errors.Is.

package order

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a selection is requested on an empty slice.
	ErrEmpty = errors.New("order: empty input")

	// ErrRankOutOfRange indicates that the requested rank k (or subset size m)
	// does not address an element of the input.
	ErrRankOutOfRange = errors.New("order: rank out of range")

	// ErrLengthMismatch indicates that companion slices (keys/index,
	// values/weights, distances/subset) have incompatible lengths.
	ErrLengthMismatch = errors.New("order: length mismatch")

	// ErrNaN signals a NaN key; NaN has no position in a total order.
	ErrNaN = errors.New("order: NaN value")

	// ErrInvalidProbability indicates a quantile probability outside [0, 1].
	ErrInvalidProbability = errors.New("order: probability must lie in [0, 1]")

	// ErrInvalidWeight indicates a negative or non-finite weight, or weights
	// whose total is zero.
	ErrInvalidWeight = errors.New("order: invalid weight")
)

// orderErrorf wraps err with an operation tag, preserving it for errors.Is.
func orderErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
