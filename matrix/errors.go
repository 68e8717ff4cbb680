// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (possibly wrapped with call-site
// context via %w); tests check them with errors.Is.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row/Column) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNonRectangular indicates input rows of differing lengths.
	ErrNonRectangular = errors.New("matrix: all rows must have the same length")

	// ErrNilMatrix indicates that a nil *Dense was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
