// SPDX-License-Identifier: MIT

package view

import "errors"

// Precondition violations are returned wrapped with call-site context;
// match them with errors.Is.
var (
	// ErrBadColumns indicates an invalid column set (duplicates, negatives,
	// or a spec count that does not match the column count).
	ErrBadColumns = errors.New("view: invalid column set")

	// ErrDimensionMismatch indicates a row whose length differs from the
	// number of columns it must align with.
	ErrDimensionMismatch = errors.New("view: row length does not match column count")

	// ErrBadRowIndex indicates a row index outside [0, MaxRowIndex].
	ErrBadRowIndex = errors.New("view: row index out of range")

	// ErrRowExists indicates an insert of a row index already in the view.
	ErrRowExists = errors.New("view: row already in view")

	// ErrRowNotFound indicates a row index that is not in the view.
	ErrRowNotFound = errors.New("view: row not in view")

	// ErrMissingData indicates a row in the view with no entry in the data mapping.
	ErrMissingData = errors.New("view: row missing from data")

	// ErrUnknownCluster indicates a stale or foreign ClusterID.
	ErrUnknownCluster = errors.New("view: unknown cluster")

	// ErrUnknownColumn indicates a global column index not in scope.
	ErrUnknownColumn = errors.New("view: column not in view")

	// ErrMissingColumn indicates an alignment index list that does not cover
	// every in-scope column.
	ErrMissingColumn = errors.New("view: column missing from alignment indices")

	// ErrInconsistentState indicates a broken partition invariant. It signals
	// a programming defect, never a recoverable runtime condition.
	ErrInconsistentState = errors.New("view: inconsistent state")
)
