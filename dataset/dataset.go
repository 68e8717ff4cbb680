// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/dpmix/matrix"
	"github.com/katalvlaran/dpmix/suffstats"
)

// HeaderMode controls how the first CSV record is treated.
type HeaderMode uint8

const (
	// HeaderAuto treats the first record as a header when any field fails to
	// parse as a number.
	HeaderAuto HeaderMode = iota
	// HeaderPresent always treats the first record as a header.
	HeaderPresent
	// HeaderAbsent treats every record as data.
	HeaderAbsent
)

// Option configures Load and Read.
type Option func(*options)

type options struct {
	header      HeaderMode
	comma       rune
	compression *Compression
}

// WithHeader sets the header mode (default HeaderAuto).
func WithHeader(m HeaderMode) Option { return func(o *options) { o.header = m } }

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) Option { return func(o *options) { o.comma = r } }

// WithCompression overrides the codec inferred from the file extension.
func WithCompression(c Compression) Option { return func(o *options) { o.compression = &c } }

// Dataset is a loaded table: optional column names and a rows × cols matrix.
type Dataset struct {
	Header []string
	Matrix *matrix.Dense
}

// Load opens path, decompresses it according to its extension and parses the
// CSV payload.
func Load(path string, opts ...Option) (*Dataset, error) {
	o := buildOptions(opts)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load(%s): %w", path, err)
	}
	defer f.Close()

	c := CompressionFor(path)
	if o.compression != nil {
		c = *o.compression
	}
	r, release, err := decompress(f, c)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load(%s): %w", path, err)
	}
	defer release()

	ds, err := read(r, o)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load(%s): %w", path, err)
	}

	return ds, nil
}

// Read parses an uncompressed CSV stream.
func Read(r io.Reader, opts ...Option) (*Dataset, error) {
	return read(r, buildOptions(opts))
}

func buildOptions(opts []Option) options {
	o := options{header: HeaderAuto, comma: ','}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// read decodes records into a Dense.
//
// Implementation:
//   - Stage 1: read every record; a field-count mismatch is ErrNonRectangular.
//   - Stage 2: resolve the header according to the mode.
//   - Stage 3: parse the remaining fields as finite float64.
func read(r io.Reader, o options) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("%v: %w", err, ErrNonRectangular)
		}
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	var header []string
	switch o.header {
	case HeaderPresent:
		header, records = records[0], records[1:]
	case HeaderAuto:
		if _, perr := parseRecord(records[0], 0); perr != nil {
			header, records = records[0], records[1:]
		}
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	rows := make([][]float64, len(records))
	line := 0
	if header != nil {
		line = 1
	}
	for i, rec := range records {
		if rows[i], err = parseRecord(rec, i+line); err != nil {
			return nil, err
		}
	}
	m, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, err
	}
	for j := range header {
		header[j] = strings.TrimSpace(header[j])
	}

	return &Dataset{Header: header, Matrix: m}, nil
}

func parseRecord(rec []string, line int) ([]float64, error) {
	out := make([]float64, len(rec))
	for j, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil || !finite(v) {
			return nil, fmt.Errorf("record %d field %d (%q): %w", line, j, field, ErrParse)
		}
		out[j] = v
	}

	return out, nil
}

// Save writes ds as CSV to path, compressed according to the extension.
func Save(path string, ds *Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset.Save(%s): %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("dataset.Save(%s): %w", path, cerr)
		}
	}()

	w, err := compress(f, CompressionFor(path))
	if err != nil {
		return fmt.Errorf("dataset.Save(%s): %w", path, err)
	}
	if err = Write(w, ds); err != nil {
		_ = w.Close()
		return fmt.Errorf("dataset.Save(%s): %w", path, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("dataset.Save(%s): %w", path, err)
	}

	return nil
}

// Write encodes ds as uncompressed CSV; the header is written when present.
func Write(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)
	if ds.Header != nil {
		if err := cw.Write(ds.Header); err != nil {
			return err
		}
	}
	rec := make([]string, ds.Cols())
	for i := 0; i < ds.Rows(); i++ {
		row, err := ds.Matrix.Row(i)
		if err != nil {
			return err
		}
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err = cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// Rows is the number of data rows.
func (d *Dataset) Rows() int { return d.Matrix.Rows() }

// Cols is the number of columns.
func (d *Dataset) Cols() int { return d.Matrix.Cols() }

// RowMap returns row index → row values for every row. Each slice is a copy.
func (d *Dataset) RowMap() map[int][]float64 {
	out := make(map[int][]float64, d.Rows())
	for i := 0; i < d.Rows(); i++ {
		row, _ := d.Matrix.Row(i)
		out[i] = row
	}

	return out
}

// Column returns a copy of column j.
func (d *Dataset) Column(j int) ([]float64, error) {
	if j < 0 || j >= d.Cols() {
		return nil, fmt.Errorf("Dataset.Column(%d): %w", j, ErrColumnRange)
	}

	return d.Matrix.Column(j)
}

// GlobalColumns returns 0..Cols-1, the identity layout of every row.
func (d *Dataset) GlobalColumns() []int {
	out := make([]int, d.Cols())
	for j := range out {
		out[j] = j
	}

	return out
}

// ColumnSpecs builds one data-driven spec per column with gridSize candidates
// per hyperparameter. Continuous grids come from the column summaries;
// Multinomial arity is max(value)+1.
//
// Errors: ErrKinds for a length mismatch; suffstats errors for values outside
// a kind's support.
func (d *Dataset) ColumnSpecs(kinds []suffstats.Kind, gridSize int) ([]suffstats.Spec, error) {
	if len(kinds) != d.Cols() {
		return nil, fmt.Errorf("Dataset.ColumnSpecs(%d kinds, %d cols): %w", len(kinds), d.Cols(), ErrKinds)
	}
	summaries, err := matrix.ColumnSummaries(d.Matrix)
	if err != nil {
		return nil, fmt.Errorf("Dataset.ColumnSpecs: %w", err)
	}
	specs := make([]suffstats.Spec, len(kinds))
	for j, k := range kinds {
		var spec suffstats.Spec
		switch k {
		case suffstats.Continuous:
			spec, err = suffstats.ContinuousSpec(summaries[j], gridSize)
		default:
			var col []float64
			if col, err = d.Matrix.Column(j); err == nil {
				spec, err = suffstats.SpecFor(k, col, gridSize)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("Dataset.ColumnSpecs(col %d): %w", j, err)
		}
		specs[j] = spec
	}

	return specs, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
