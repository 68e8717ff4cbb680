// SPDX-License-Identifier: MIT

// Package matrix provides the row-major Dense table that holds a sampling
// run's dataset, plus per-column suffstats.Summary values that
// hyperparameter grids are derived from.
//
// The public surface never panics on user input: At/Set/Row/Column return
// ErrOutOfRange for bad indices and Set/NewFromRows enforce a finite-only
// numeric policy (ErrNaNInf) unless it is disabled with WithAllowNaNInf.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Row/Column: O(c)/O(r) copy;
//     Clone: O(r*c); ColumnSummaries: O(r*c).
package matrix
