// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dpmix/config"
	"github.com/katalvlaran/dpmix/dataset"
	"github.com/katalvlaran/dpmix/logging"
	"github.com/katalvlaran/dpmix/suffstats"
)

func writeTable(t *testing.T, name string, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("a,b,c\n")
	for i := 0; i < rows; i++ {
		g := i % 2
		fmt.Fprintf(&b, "%g,%d,%g\n", float64(g)*8+float64(i%4)*0.25, g+i%3/2, float64(i%5)*0.5-float64(g))
	}
	ds, err := dataset.Read(strings.NewReader(b.String()))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, dataset.Save(path, ds))

	return path
}

func TestRun_FullScenario(t *testing.T) {
	col := 2
	cfg := config.Default()
	cfg.Data = writeTable(t, "table.csv.gz", 24)
	cfg.Iterations = 4
	cfg.GridSize = 9
	cfg.Seed = 3
	cfg.RemoveColumn = &col
	cfg.Progress = true
	cfg.Columns = []config.ColumnConfig{{Index: 1, Kind: suffstats.Multinomial}}
	cfg.AlphaPrior = &config.Prior{Shape: 1, Rate: 1}
	require.NoError(t, cfg.Validate())

	var logs, bar bytes.Buffer
	sum, err := run(context.Background(), cfg, logging.NewJSONLogger(&logs, logging.ParseLevel("info")), &bar)
	require.NoError(t, err)

	assert.Equal(t, 24, sum.Rows)
	assert.Equal(t, 2, sum.Columns)
	assert.Equal(t, 4, sum.Iterations)
	assert.GreaterOrEqual(t, sum.Clusters, 1)
	assert.Greater(t, sum.Alpha, 0.0)
	assert.Contains(t, logs.String(), `"msg":"iteration completed"`)
	assert.Contains(t, logs.String(), `"msg":"column removed"`)
	assert.Contains(t, logs.String(), `"msg":"run completed"`)
	assert.NotZero(t, bar.Len())
	assert.Contains(t, sum.String(), "rows=24")
}

func TestRun_SameSeedSameSummary(t *testing.T) {
	cfg := config.Default()
	cfg.Data = writeTable(t, "table.csv.lz4", 16)
	cfg.Iterations = 3
	cfg.GridSize = 7

	a, err := run(context.Background(), cfg, logging.NoopLogger(), nil)
	require.NoError(t, err)
	b, err := run(context.Background(), cfg, logging.NoopLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 3, a.Columns)
}

func TestRun_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Data = filepath.Join(t.TempDir(), "missing.csv")
	_, err := run(context.Background(), cfg, logging.NoopLogger(), nil)
	assert.Error(t, err)

	cfg.Data = writeTable(t, "table.csv", 6)
	cfg.Columns = []config.ColumnConfig{{Index: 7, Kind: suffstats.Multinomial}}
	_, err = run(context.Background(), cfg, logging.NoopLogger(), nil)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg.Columns = []config.ColumnConfig{{Index: 0, Kind: suffstats.Multinomial}}
	_, err = run(context.Background(), cfg, logging.NoopLogger(), nil)
	assert.ErrorIs(t, err, suffstats.ErrOutOfSupport)
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(config.Log{Level: "info", Format: "json"}, &buf).Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	buf.Reset()
	newLogger(config.Log{Level: "error", Format: "text"}, &buf).Info("hidden")
	assert.Empty(t, buf.String())
}
