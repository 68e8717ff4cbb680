// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Per-column statistics (count, mean, sum of squared deviations, range)
//     in the suffstats.Summary form the column models derive grids from.

package matrix

import "github.com/katalvlaran/dpmix/suffstats"

// ColumnSummaries summarises every column of m with suffstats.Summarize.
//
// Implementation:
//   - Stage 1: validate m (non-nil).
//   - Stage 2: copy each column out of the row-major buffer and summarise it.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r).
func ColumnSummaries(m *Dense) ([]suffstats.Summary, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	out := make([]suffstats.Summary, m.c)
	col := make([]float64, m.r)
	var i, j int
	for j = 0; j < m.c; j++ {
		for i = 0; i < m.r; i++ {
			col[i] = m.data[i*m.c+j]
		}
		out[j] = suffstats.Summarize(col)
	}

	return out, nil
}
