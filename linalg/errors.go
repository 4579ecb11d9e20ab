// SPDX-License-Identifier: MIT
// Package linalg: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the linalg
// package. Kernels return these sentinels wrapped with an operation tag and
// tests check them via errors.Is. Panics are reserved for programmer errors
// (buffers the caller sized inconsistently).

package linalg

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "linalg: ..." for easy grepping. Kernels wrap
// with linalgErrorf(op, ErrX); callers add their own tag on top and still match
// with errors.Is.

var (
	// ErrRankDeficient signals that a subset no longer supports a full-rank fit:
	// a QR diagonal fell below the rank tolerance, or a Cholesky downdate would
	// leave an indefinite matrix.
	ErrRankDeficient = errors.New("linalg: rank deficient")

	// ErrTriangularSingular signals that the Cholesky factor could not be
	// inverted (exact zero on its diagonal).
	ErrTriangularSingular = errors.New("linalg: triangular factor is singular")

	// ErrDimensionMismatch indicates incompatible dimensions between the design,
	// the response, the weights or a subset indicator.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNilMatrix indicates that a nil design matrix was passed.
	ErrNilMatrix = errors.New("linalg: nil matrix")

	// ErrTooFewObservations indicates n ≤ p: no subset can be of full rank.
	ErrTooFewObservations = errors.New("linalg: need more observations than columns")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("linalg: NaN or Inf encountered")

	// ErrNegativeWeight signals a negative observation weight.
	ErrNegativeWeight = errors.New("linalg: negative weight")
)

// linalgErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
