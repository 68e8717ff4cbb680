// SPDX-License-Identifier: MIT

package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dpmix/suffstats"
	"github.com/katalvlaran/dpmix/view"
)

const fixtureRows = 40

// fixture builds a 3-column table with two well separated groups:
//   - col 0: continuous, around 0 or 10;
//   - col 1: multinomial codes in {0,1,2}, shifted by group;
//   - col 2: continuous, around 0 or −5.
func fixture(t *testing.T) (map[int][]float64, []int, []suffstats.Spec) {
	t.Helper()
	data := make(map[int][]float64, fixtureRows)
	columns := make([][]float64, 3)
	for i := 0; i < fixtureRows; i++ {
		group := float64(i % 2)
		code := group
		if i%3 == 0 {
			code++
		}
		row := []float64{
			group*10 + float64(i%5)*0.3 - 0.6,
			code,
			-5*group + float64(i%7)*0.1,
		}
		data[i] = row
		for j, x := range row {
			columns[j] = append(columns[j], x)
		}
	}
	kinds := []suffstats.Kind{suffstats.Continuous, suffstats.Multinomial, suffstats.Continuous}
	specs := make([]suffstats.Spec, len(kinds))
	for j, k := range kinds {
		spec, err := suffstats.SpecFor(k, columns[j], 11)
		require.NoError(t, err)
		specs[j] = spec
	}

	return data, []int{0, 1, 2}, specs
}

// populated returns a view holding every fixture row.
func populated(t *testing.T, seed int64) (*view.View, map[int][]float64) {
	t.Helper()
	data, cols, specs := fixture(t)
	v, err := view.New(cols, specs, view.WithSeed(seed))
	require.NoError(t, err)
	for r := 0; r < fixtureRows; r++ {
		_, err = v.InsertRow(data[r], r)
		require.NoError(t, err)
	}

	return v, data
}

// assignments snapshots row → member set of its cluster.
func assignments(t *testing.T, v *view.View) map[int][]int {
	t.Helper()
	out := make(map[int][]int, v.NumVectors())
	for _, r := range v.RowIndices() {
		id, ok := v.ClusterOf(r)
		require.True(t, ok)
		c, err := v.Cluster(id)
		require.NoError(t, err)
		out[r] = c.RowIndices()
	}

	return out
}
