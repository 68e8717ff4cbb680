// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dpmix/matrix"
	"github.com/katalvlaran/dpmix/suffstats"
)

func TestNewDense_Shape(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
}

func TestDense_AtSetBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 0, 4.5))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)

	loose, err := matrix.NewDense(1, 1, matrix.WithAllowNaNInf())
	require.NoError(t, err)
	assert.NoError(t, loose.Set(0, 0, math.Inf(1)))
}

func TestNewFromRows(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)

	col, err := m.Column(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, col)

	// Row returns a copy.
	row[0] = 99
	v, _ := m.At(1, 0)
	assert.Equal(t, 4.0, v)

	_, err = m.Row(5)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Column(-1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = matrix.NewFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrNonRectangular)
	_, err = matrix.NewFromRows(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewFromRows([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	assert.Equal(t, "[1, 2, 3]\n[4, 5, 6]\n", m.String())
}

func TestDense_CloneIndependent(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{{1, 2}})
	require.NoError(t, err)
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 7))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

func TestColumnSummaries(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{{1, 10}, {2, 10}, {3, 10}})
	require.NoError(t, err)
	s, err := matrix.ColumnSummaries(m)
	require.NoError(t, err)
	require.Len(t, s, 2)

	assert.Equal(t, 3, s[0].N)
	assert.InDelta(t, 2.0, s[0].Mean, 1e-12)
	assert.InDelta(t, 2.0, s[0].SumSqDev, 1e-12)
	assert.InDelta(t, 1.0, s[0].Variance(), 1e-12)
	assert.Equal(t, 1.0, s[0].Min)
	assert.Equal(t, 3.0, s[0].Max)

	assert.Equal(t, 0.0, s[1].SumSqDev)
	assert.Equal(t, 10.0, s[1].Min)

	_, err = matrix.ColumnSummaries(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestColumnSummaries_MatchSummarize(t *testing.T) {
	rows := [][]float64{{0.5, -3}, {1.25, 4}, {-2, 4}, {7, 0.125}}
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	sums, err := matrix.ColumnSummaries(m)
	require.NoError(t, err)

	for j := range sums {
		col, err := m.Column(j)
		require.NoError(t, err)
		assert.Equal(t, suffstats.Summarize(col), sums[j], "col %d", j)
	}
}
