// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dpmix/suffstats"
)

// Defaults.
const (
	DefaultIterations = 21
	DefaultGridSize   = suffstats.DefaultGridSize
	DefaultAlpha      = 1.0
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config is one sampling run.
type Config struct {
	// Data is the CSV path; compression follows the extension.
	Data string `yaml:"data" toml:"data"`
	// Seed of the chain; 0 selects rng.DefaultSeed.
	Seed int64 `yaml:"seed" toml:"seed"`
	// Iterations of zs → α → hypers.
	Iterations int `yaml:"iterations" toml:"iterations"`
	// GridSize is the number of candidates per hyperparameter and for α.
	GridSize int `yaml:"grid_size" toml:"grid_size"`
	// Alpha is the initial CRP concentration.
	Alpha float64 `yaml:"alpha" toml:"alpha"`
	// AlphaPrior is an optional Gamma prior on α.
	AlphaPrior *Prior `yaml:"alpha_prior,omitempty" toml:"alpha_prior,omitempty"`
	// RemoveColumn, when set, is dropped from the view after the iterations.
	RemoveColumn *int `yaml:"remove_column,omitempty" toml:"remove_column,omitempty"`
	// Columns overrides the model of individual columns; the rest are Continuous.
	Columns []ColumnConfig `yaml:"columns" toml:"columns"`
	// Progress shows a progress bar over the iterations.
	Progress bool `yaml:"progress" toml:"progress"`
	Log      Log  `yaml:"log" toml:"log"`
}

// Prior is a Gamma(shape, rate) prior.
type Prior struct {
	Shape float64 `yaml:"shape" toml:"shape"`
	Rate  float64 `yaml:"rate" toml:"rate"`
}

// ColumnConfig selects the model of one global column.
type ColumnConfig struct {
	Index int            `yaml:"index" toml:"index"`
	Kind  suffstats.Kind `yaml:"kind" toml:"kind"`
}

// Log configures the driver's logger.
type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // text | json
}

// Default returns a Config with every default applied and no data path.
func Default() Config {
	return Config{
		Iterations: DefaultIterations,
		GridSize:   DefaultGridSize,
		Alpha:      DefaultAlpha,
		Log:        Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config.Load(%s): %w", path, err)
	}
	cfg, err := Decode(raw, Format(path))
	if err != nil {
		return Config{}, fmt.Errorf("config.Load(%s): %w", path, err)
	}

	return cfg, nil
}

// Format maps a file extension to "yaml", "toml" or "".
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

// Decode parses raw in the given format over Default and validates it.
func Decode(raw []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("yaml: %v: %w", err, ErrDecode)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("toml: %v: %w", err, ErrDecode)
		}
	default:
		return Config{}, fmt.Errorf("format %q: %w", format, ErrFormat)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Encode renders cfg in the given format.
func (c Config) Encode(format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(c)
	case "toml":
		return toml.Marshal(c)
	default:
		return nil, fmt.Errorf("format %q: %w", format, ErrFormat)
	}
}

// Validate checks ranges and cross-field constraints.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations=%d: %w", c.Iterations, ErrInvalid)
	}
	if c.GridSize < 1 {
		return fmt.Errorf("grid_size=%d: %w", c.GridSize, ErrInvalid)
	}
	if !(c.Alpha > 0) {
		return fmt.Errorf("alpha=%v: %w", c.Alpha, ErrInvalid)
	}
	if p := c.AlphaPrior; p != nil && (!(p.Shape > 0) || !(p.Rate > 0)) {
		return fmt.Errorf("alpha_prior=%+v: %w", *p, ErrInvalid)
	}
	if c.RemoveColumn != nil && *c.RemoveColumn < 0 {
		return fmt.Errorf("remove_column=%d: %w", *c.RemoveColumn, ErrInvalid)
	}
	seen := make(map[int]bool, len(c.Columns))
	for _, col := range c.Columns {
		if col.Index < 0 || seen[col.Index] {
			return fmt.Errorf("columns index %d: %w", col.Index, ErrInvalid)
		}
		seen[col.Index] = true
		if col.Kind.HyperNames() == nil {
			return fmt.Errorf("columns index %d kind %v: %w", col.Index, col.Kind, ErrInvalid)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level=%q: %w", c.Log.Level, ErrInvalid)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format=%q: %w", c.Log.Format, ErrInvalid)
	}

	return nil
}

// Kinds returns the model kind of each of numCols columns: the configured
// kind where one is given, Continuous otherwise.
func (c Config) Kinds(numCols int) ([]suffstats.Kind, error) {
	kinds := make([]suffstats.Kind, numCols)
	for _, col := range c.Columns {
		if col.Index >= numCols {
			return nil, fmt.Errorf("columns index %d of %d: %w", col.Index, numCols, ErrInvalid)
		}
		kinds[col.Index] = col.Kind
	}

	return kinds, nil
}
