// SPDX-License-Identifier: MIT

package view

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dpmix/numerics"
)

// TransitionCRPAlpha resamples α on its grid from
// CRPLogLikelihood(cluster sizes | a) + log prior(a), independent of the data.
// The cached score is refreshed for the drawn value.
//
// Complexity: O(len(grid) · K).
func (v *View) TransitionCRPAlpha() error {
	from := v.alpha
	counts := v.clusterSizes()
	logPost, err := numerics.AlphaGridLogPosterior(v.alphaGrid, counts, v.alphaPrior)
	if err == nil {
		var k int
		if k, err = v.src.LogCategorical(logPost); err == nil {
			v.alpha = v.alphaGrid[k]
			v.crpScore = numerics.CRPLogLikelihood(counts, v.alpha)
		}
	}
	v.log.LogAlpha(context.Background(), from, v.alpha, err)
	if err != nil {
		return fmt.Errorf("View.TransitionCRPAlpha: %w", err)
	}

	return nil
}
