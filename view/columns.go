// SPDX-License-Identifier: MIT

package view

import (
	"context"
	"fmt"
	"slices"
)

// RemoveCol drops a global column from the view: its statistics leave every
// cluster (including empty unreaped ones) and its spec leaves the column set.
// Columns after it shift down one local position, so rows laid out under the
// previous order must be re-aligned with AlignData.
//
// Errors: ErrUnknownColumn if globalCol is not in scope.
//
// Complexity: O(K · #columns).
func (v *View) RemoveCol(globalCol int) error {
	local, ok := v.colIndex[globalCol]
	if !ok {
		return fmt.Errorf("View.RemoveCol(%d): %w", globalCol, ErrUnknownColumn)
	}
	v.arena.each(func(_ ClusterID, c *Cluster) bool {
		c.removeColumn(local)
		return true
	})
	v.specs = slices.Delete(v.specs, local, local+1)
	v.cols = slices.Delete(v.cols, local, local+1)
	delete(v.colIndex, globalCol)
	for j := local; j < len(v.cols); j++ {
		v.colIndex[v.cols[j]] = j
	}
	v.crpScore, v.dataScore = v.calcScoreTerms()
	v.log.LogColumnRemoved(context.Background(), globalCol, len(v.cols))

	return nil
}
