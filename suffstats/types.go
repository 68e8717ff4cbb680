// SPDX-License-Identifier: MIT

package suffstats

import (
	"fmt"
	"maps"
	"strings"
)

// Kind selects a column model.
type Kind int

const (
	// Continuous is the Normal-Gamma model for real values.
	Continuous Kind = iota

	// Multinomial is the Dirichlet-multinomial model for categorical codes.
	Multinomial
)

// Hyperparameter names.
const (
	HyperR     = "r"
	HyperNu    = "nu"
	HyperS     = "s"
	HyperMu    = "mu"
	HyperAlpha = "alpha"
)

var (
	continuousHypers  = []string{HyperR, HyperNu, HyperS, HyperMu}
	multinomialHypers = []string{HyperAlpha}
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Multinomial:
		return "multinomial"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a name ("continuous", "multinomial", case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continuous", "normal", "real":
		return Continuous, nil
	case "multinomial", "categorical", "count":
		return Multinomial, nil
	default:
		return 0, fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k.HyperNames() == nil {
		return nil, fmt.Errorf("Kind.MarshalText(%d): %w", int(k), ErrUnknownKind)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}

// HyperNames returns the ordered hyperparameter names of the kind.
func (k Kind) HyperNames() []string {
	switch k {
	case Continuous:
		return append([]string(nil), continuousHypers...)
	case Multinomial:
		return append([]string(nil), multinomialHypers...)
	default:
		return nil
	}
}

// Hypers maps hyperparameter names to values.
type Hypers map[string]float64

// Clone returns an independent copy.
func (h Hypers) Clone() Hypers { return maps.Clone(h) }

// Grids maps hyperparameter names to candidate values for grid resampling.
type Grids map[string][]float64

// Clone returns a deep copy.
func (g Grids) Clone() Grids {
	out := make(Grids, len(g))
	for name, grid := range g {
		out[name] = append([]float64(nil), grid...)
	}

	return out
}

// Column is the sufficient-statistics capability of one column inside one cluster.
type Column interface {
	// Kind reports the model variant.
	Kind() Kind
	// Insert adds one value to the statistics.
	Insert(x float64) error
	// Remove subtracts one previously inserted value.
	Remove(x float64) error
	// Count is the number of values currently aggregated.
	Count() int
	// LogMarginal is the collapsed marginal log-likelihood of the aggregated values.
	LogMarginal() float64
	// LogPredictive is LogMarginal with x added minus LogMarginal, computed
	// without touching the statistics.
	LogPredictive(x float64) (float64, error)
	// Hypers returns a copy of the current hyperparameters.
	Hypers() Hypers
	// HyperNames lists the hyperparameters in a fixed order.
	HyperNames() []string
	// SetHyper replaces one hyperparameter; statistics are untouched.
	SetHyper(name string, v float64) error
	// GridLogMarginals evaluates LogMarginal with hyper name set to each grid
	// value in turn, the others held fixed. The receiver is not modified.
	GridLogMarginals(name string, grid []float64) ([]float64, error)
	// Equal reports whether two columns hold the same statistics and hypers within tol.
	Equal(other Column, tol float64) bool
}

// Spec describes one column's model: kind, arity (Multinomial only), the
// current hyperparameters and the grids used to resample them.
type Spec struct {
	Kind   Kind
	K      int
	Hypers Hypers
	Grids  Grids
}

// Clone returns a deep copy of the spec.
func (s Spec) Clone() Spec {
	return Spec{Kind: s.Kind, K: s.K, Hypers: s.Hypers.Clone(), Grids: s.Grids.Clone()}
}

// Validate checks that the spec can build columns and drive a hyper sweep.
//
// Implementation:
//   - Stage 1: known kind; K ≥ 1 for Multinomial.
//   - Stage 2: every hyper of the kind is present and valid.
//   - Stage 3: every hyper has a non-empty grid of valid values.
func (s Spec) Validate() error {
	names := s.Kind.HyperNames()
	if names == nil {
		return fmt.Errorf("Spec.Validate(kind=%v): %w", s.Kind, ErrUnknownKind)
	}
	if s.Kind == Multinomial && s.K < 1 {
		return fmt.Errorf("Spec.Validate(K=%d): %w", s.K, ErrBadSpec)
	}
	for _, name := range names {
		v, ok := s.Hypers[name]
		if !ok {
			return fmt.Errorf("Spec.Validate(missing hyper %q): %w", name, ErrBadSpec)
		}
		if err := checkHyper(s.Kind, name, v); err != nil {
			return fmt.Errorf("Spec.Validate: %w", err)
		}
		grid := s.Grids[name]
		if len(grid) == 0 {
			return fmt.Errorf("Spec.Validate(missing grid %q): %w", name, ErrBadSpec)
		}
		for _, g := range grid {
			if err := checkHyper(s.Kind, name, g); err != nil {
				return fmt.Errorf("Spec.Validate(grid %q): %w", name, err)
			}
		}
	}

	return nil
}

// New returns an empty Column carrying the spec's current hypers.
func (s Spec) New() (Column, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Kind {
	case Continuous:
		return &ContinuousNG{
			r:  s.Hypers[HyperR],
			nu: s.Hypers[HyperNu],
			s:  s.Hypers[HyperS],
			mu: s.Hypers[HyperMu],
		}, nil
	case Multinomial:
		return &MultinomialDir{counts: make([]int, s.K), alpha: s.Hypers[HyperAlpha]}, nil
	default:
		return nil, fmt.Errorf("Spec.New(kind=%v): %w", s.Kind, ErrUnknownKind)
	}
}

// checkHyper validates a single hyper value for a kind.
func checkHyper(k Kind, name string, v float64) error {
	if !finite(v) {
		return fmt.Errorf("%s=%v: %w", name, v, ErrBadHyper)
	}
	switch {
	case k == Continuous && name == HyperMu:
		return nil
	case k == Continuous && (name == HyperR || name == HyperNu || name == HyperS),
		k == Multinomial && name == HyperAlpha:
		if v <= 0 {
			return fmt.Errorf("%s=%v: %w", name, v, ErrBadHyper)
		}
		return nil
	default:
		return fmt.Errorf("%s for %v: %w", name, k, ErrUnknownHyper)
	}
}
