// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrEmpty indicates an input with no data rows.
	ErrEmpty = errors.New("dataset: no data rows")

	// ErrParse indicates a field that is not a finite number.
	ErrParse = errors.New("dataset: field is not a finite number")

	// ErrNonRectangular indicates rows with differing field counts.
	ErrNonRectangular = errors.New("dataset: rows have differing field counts")

	// ErrColumnRange indicates a column index outside [0, Cols).
	ErrColumnRange = errors.New("dataset: column index out of range")

	// ErrKinds indicates a kinds list whose length differs from the column count.
	ErrKinds = errors.New("dataset: one kind per column required")
)
