// SPDX-License-Identifier: MIT

package view_test

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dpmix/rng"
	"github.com/katalvlaran/dpmix/suffstats"
	"github.com/katalvlaran/dpmix/view"
)

const weightTol = 1e-9

// recordingSource keeps a copy of every log-weight vector it is asked to
// draw from. With pickLast set it always returns the final outcome, which for
// row placement is the new cluster and for grids is the largest candidate.
type recordingSource struct {
	*rng.Rand
	pickLast bool
	calls    [][]float64
}

func (s *recordingSource) LogCategorical(logWeights []float64) (int, error) {
	s.calls = append(s.calls, slices.Clone(logWeights))
	if s.pickLast {
		return len(logWeights) - 1, nil
	}

	return s.Rand.LogCategorical(logWeights)
}

// logMarginal scores rows under fresh columns built from specs.
func logMarginal(t *testing.T, specs []suffstats.Spec, data map[int][]float64, rows ...int) float64 {
	t.Helper()
	var sum float64
	for j, spec := range specs {
		sum += columnLogMarginal(t, spec, j, data, rows...)
	}

	return sum
}

func columnLogMarginal(t *testing.T, spec suffstats.Spec, j int, data map[int][]float64, rows ...int) float64 {
	t.Helper()
	col, err := spec.New()
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, col.Insert(data[r][j]))
	}

	return col.LogMarginal()
}

// twoClusterView builds A = {0, 2, 4} (slot 0) and B = {1, 3} (slot 1).
func twoClusterView(t *testing.T, alpha float64) (*view.View, *recordingSource, map[int][]float64, []suffstats.Spec) {
	t.Helper()
	data, cols, specs := fixture(t)
	src := &recordingSource{Rand: rng.New(1), pickLast: true}
	v, err := view.New(cols, specs, view.WithRand(src), view.WithAlpha(alpha))
	require.NoError(t, err)

	a, err := v.InsertRow(data[0], 0)
	require.NoError(t, err)
	require.NoError(t, v.InsertRowInto(data[2], a, 2))
	require.NoError(t, v.InsertRowInto(data[4], a, 4))
	b, err := v.InsertRow(data[1], 1)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NoError(t, v.InsertRowInto(data[3], b, 3))
	require.Equal(t, []view.ClusterID{a, b}, v.ClusterIDs())
	src.calls = nil

	return v, src, data, specs
}

func TestInsertRow_DrawsFromCollapsedConditional(t *testing.T) {
	const alpha = 2.0
	v, src, data, specs := twoClusterView(t, alpha)
	lm := func(rows ...int) float64 { return logMarginal(t, specs, data, rows...) }

	_, err := v.InsertRow(data[5], 5)
	require.NoError(t, err)
	require.Len(t, src.calls, 1)

	want := []float64{
		math.Log(3) + lm(0, 2, 4, 5) - lm(0, 2, 4),
		math.Log(2) + lm(1, 3, 5) - lm(1, 3),
		math.Log(alpha) + lm(5),
	}
	assert.InDeltaSlice(t, want, src.calls[0], weightTol)
	assert.Equal(t, 3, v.NumClusters())
}

func TestTransitionZs_DrawsFromCollapsedConditional(t *testing.T) {
	const alpha = 0.5
	v, src, data, specs := twoClusterView(t, alpha)
	lm := func(rows ...int) float64 { return logMarginal(t, specs, data, rows...) }
	sweepData := map[int][]float64{0: data[0], 1: data[1], 2: data[2], 3: data[3], 4: data[4]}

	require.NoError(t, v.TransitionZs(sweepData))
	require.Len(t, src.calls, 5)

	// Row 0 leaves A = {2, 4}; the new cluster C = {0} takes slot 2.
	assert.InDeltaSlice(t, []float64{
		math.Log(2) + lm(2, 4, 0) - lm(2, 4),
		math.Log(2) + lm(1, 3, 0) - lm(1, 3),
		math.Log(alpha) + lm(0),
	}, src.calls[0], weightTol)

	// Row 1 leaves B = {3}; D = {1} takes slot 3.
	assert.InDeltaSlice(t, []float64{
		math.Log(2) + lm(2, 4, 1) - lm(2, 4),
		math.Log(1) + lm(3, 1) - lm(3),
		math.Log(1) + lm(0, 1) - lm(0),
		math.Log(alpha) + lm(1),
	}, src.calls[1], weightTol)

	// Row 2 leaves A = {4}; E = {2} takes slot 4. Row 3 then empties B,
	// which is no longer a candidate.
	assert.InDeltaSlice(t, []float64{
		lm(4, 3) - lm(4),
		lm(0, 3) - lm(0),
		lm(1, 3) - lm(1),
		lm(2, 3) - lm(2),
		math.Log(alpha) + lm(3),
	}, src.calls[3], weightTol)

	assert.Equal(t, 5, v.NumClusters())
	require.NoError(t, v.CheckConsistency())
	require.NoError(t, v.CheckStatistics(sweepData))
}

func TestTransitionHypers_DrawsFromSummedGridMarginals(t *testing.T) {
	v, src, data, specs := twoClusterView(t, 1)
	clusters := [][]int{{0, 2, 4}, {1, 3}}

	// gridWeights sums column j's marginal over both clusters for every grid
	// value of name, with the other hypers taken from spec.
	gridWeights := func(spec suffstats.Spec, j int, name string) []float64 {
		grid := spec.Grids[name]
		out := make([]float64, len(grid))
		for i, g := range grid {
			s := spec.Clone()
			s.Hypers[name] = g
			for _, rows := range clusters {
				out[i] += columnLogMarginal(t, s, j, data, rows...)
			}
		}
		return out
	}

	require.NoError(t, v.TransitionHypers())
	// Column 0 has r, nu, s, mu; column 1 has alpha; column 2 has r, nu, s, mu.
	require.Len(t, src.calls, 9)

	col0 := specs[0].Clone()
	assert.InDeltaSlice(t, gridWeights(col0, 0, suffstats.HyperR), src.calls[0], weightTol)

	// The drawn r is in place before nu is scored.
	col0.Hypers[suffstats.HyperR] = lastOf(col0.Grids[suffstats.HyperR])
	assert.InDeltaSlice(t, gridWeights(col0, 0, suffstats.HyperNu), src.calls[1], weightTol)

	assert.InDeltaSlice(t, gridWeights(specs[1], 1, suffstats.HyperAlpha), src.calls[4], weightTol)

	hypers, err := v.Hypers(1)
	require.NoError(t, err)
	assert.Equal(t, lastOf(specs[1].Grids[suffstats.HyperAlpha]), hypers[suffstats.HyperAlpha])
	require.NoError(t, v.CheckConsistency())
}

func lastOf(xs []float64) float64 { return xs[len(xs)-1] }
