// SPDX-License-Identifier: MIT

package suffstats_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/dpmix/suffstats"
)

const (
	tol      = 1e-9
	gridSize = 7
)

func continuousSpec(t *testing.T) suffstats.Spec {
	t.Helper()
	spec, err := suffstats.SpecFor(suffstats.Continuous, []float64{-1.5, 0.2, 0.9, 2.4, 3.1}, gridSize)
	require.NoError(t, err)
	return spec
}

func newColumn(t *testing.T, spec suffstats.Spec) suffstats.Column {
	t.Helper()
	col, err := spec.New()
	require.NoError(t, err)
	return col
}

// TestContinuous_SinglePointIsStudentT checks the one-observation marginal
// against the Normal-Gamma posterior predictive (a Student-t).
func TestContinuous_SinglePointIsStudentT(t *testing.T) {
	spec := continuousSpec(t)
	col := newColumn(t, spec)
	const x = 1.3
	require.NoError(t, col.Insert(x))

	h := spec.Hypers
	r, nu, s, mu := h[suffstats.HyperR], h[suffstats.HyperNu], h[suffstats.HyperS], h[suffstats.HyperMu]
	pred := distuv.StudentsT{Mu: mu, Sigma: math.Sqrt(s * (r + 1) / (r * nu)), Nu: nu}
	assert.InDelta(t, pred.LogProb(x), col.LogMarginal(), 1e-8)
}

// TestContinuous_ChainRule checks p(x1, x2) = p(x1) · p(x2 | x1) where the
// conditional is the Student-t predictive under the updated hypers.
func TestContinuous_ChainRule(t *testing.T) {
	spec := continuousSpec(t)
	col := newColumn(t, spec)
	const x1, x2 = 0.4, -0.7
	require.NoError(t, col.Insert(x1))
	l1 := col.LogMarginal()
	require.NoError(t, col.Insert(x2))
	l12 := col.LogMarginal()

	h := spec.Hypers
	r, nu, s, mu := h[suffstats.HyperR], h[suffstats.HyperNu], h[suffstats.HyperS], h[suffstats.HyperMu]
	rp, nup := r+1, nu+1
	mup := (r*mu + x1) / rp
	sp := s + x1*x1 + r*mu*mu - rp*mup*mup
	pred := distuv.StudentsT{Mu: mup, Sigma: math.Sqrt(sp * (rp + 1) / (rp * nup)), Nu: nup}
	assert.InDelta(t, l1+pred.LogProb(x2), l12, 1e-8)
}

func TestContinuous_RoundTripAndUnderflow(t *testing.T) {
	col := newColumn(t, continuousSpec(t))
	empty := col.LogMarginal()
	assert.Equal(t, 0.0, empty)

	values := []float64{0.1, 2.2, -3.3}
	for _, v := range values {
		require.NoError(t, col.Insert(v))
	}
	assert.Equal(t, len(values), col.Count())
	for _, v := range values {
		require.NoError(t, col.Remove(v))
	}
	assert.Equal(t, 0, col.Count())
	assert.Equal(t, empty, col.LogMarginal())
	assert.True(t, col.Equal(newColumn(t, continuousSpec(t)), 0))

	assert.ErrorIs(t, col.Remove(1), suffstats.ErrUnderflow)
	assert.ErrorIs(t, col.Insert(math.NaN()), suffstats.ErrOutOfSupport)
	assert.ErrorIs(t, col.Insert(math.Inf(1)), suffstats.ErrOutOfSupport)
}

func TestMultinomial_Marginal(t *testing.T) {
	spec, err := suffstats.MultinomialSpec(4, 10, gridSize)
	require.NoError(t, err)
	col := newColumn(t, spec)

	// A single observation under a symmetric prior has probability 1/K.
	require.NoError(t, col.Insert(2))
	assert.InDelta(t, -math.Log(4), col.LogMarginal(), tol)

	// Second identical draw: (α+1)/(Kα+1) with α=1, K=4 → 2/5.
	require.NoError(t, col.Insert(2))
	assert.InDelta(t, -math.Log(4)+math.Log(2.0/5.0), col.LogMarginal(), tol)

	assert.ErrorIs(t, col.Insert(4), suffstats.ErrOutOfSupport)
	assert.ErrorIs(t, col.Insert(1.5), suffstats.ErrOutOfSupport)
	assert.ErrorIs(t, col.Insert(-1), suffstats.ErrOutOfSupport)
	assert.ErrorIs(t, col.Remove(0), suffstats.ErrUnderflow)
}

// TestGridLogMarginals checks each grid entry against SetHyper+LogMarginal and
// that the receiver is left unchanged.
func TestGridLogMarginals(t *testing.T) {
	spec := continuousSpec(t)
	col := newColumn(t, spec)
	for _, v := range []float64{0.3, 1.1, 2.5} {
		require.NoError(t, col.Insert(v))
	}
	before := col.Hypers()

	for _, name := range col.HyperNames() {
		grid := spec.Grids[name]
		got, err := col.GridLogMarginals(name, grid)
		require.NoError(t, err)
		require.Len(t, got, len(grid))
		assert.Equal(t, before, col.Hypers(), "GridLogMarginals must not mutate hypers")

		for i, v := range grid {
			probe := newColumn(t, spec)
			for _, x := range []float64{0.3, 1.1, 2.5} {
				require.NoError(t, probe.Insert(x))
			}
			require.NoError(t, probe.SetHyper(name, v))
			assert.InDelta(t, probe.LogMarginal(), got[i], tol, "%s grid[%d]", name, i)
		}
	}

	_, err := col.GridLogMarginals(suffstats.HyperR, []float64{-1})
	assert.ErrorIs(t, err, suffstats.ErrBadHyper)
	_, err = col.GridLogMarginals(suffstats.HyperAlpha, []float64{1})
	assert.ErrorIs(t, err, suffstats.ErrUnknownHyper)
}

func TestSpec_Validate(t *testing.T) {
	spec := continuousSpec(t)
	require.NoError(t, spec.Validate())

	broken := spec.Clone()
	delete(broken.Hypers, suffstats.HyperS)
	assert.ErrorIs(t, broken.Validate(), suffstats.ErrBadSpec)

	broken = spec.Clone()
	broken.Grids[suffstats.HyperNu] = nil
	assert.ErrorIs(t, broken.Validate(), suffstats.ErrBadSpec)

	broken = spec.Clone()
	broken.Hypers[suffstats.HyperR] = 0
	assert.ErrorIs(t, broken.Validate(), suffstats.ErrBadHyper)

	assert.ErrorIs(t, suffstats.Spec{Kind: suffstats.Kind(9)}.Validate(), suffstats.ErrUnknownKind)
	assert.ErrorIs(t, suffstats.Spec{Kind: suffstats.Multinomial}.Validate(), suffstats.ErrBadSpec)
}

func TestSpecFor(t *testing.T) {
	spec, err := suffstats.SpecFor(suffstats.Multinomial, []float64{0, 2, 1, 2}, gridSize)
	require.NoError(t, err)
	assert.Equal(t, 3, spec.K)
	assert.Len(t, spec.Grids[suffstats.HyperAlpha], gridSize)

	_, err = suffstats.SpecFor(suffstats.Multinomial, []float64{0.5}, gridSize)
	assert.ErrorIs(t, err, suffstats.ErrOutOfSupport)

	// Degenerate continuous column still yields a usable mu grid.
	spec, err = suffstats.SpecFor(suffstats.Continuous, []float64{3, 3, 3}, gridSize)
	require.NoError(t, err)
	require.NoError(t, spec.Validate())
	mu := spec.Grids[suffstats.HyperMu]
	assert.Less(t, mu[0], mu[len(mu)-1])
}

func TestParseKind(t *testing.T) {
	k, err := suffstats.ParseKind(" Continuous ")
	require.NoError(t, err)
	assert.Equal(t, suffstats.Continuous, k)
	k, err = suffstats.ParseKind("categorical")
	require.NoError(t, err)
	assert.Equal(t, suffstats.Multinomial, k)
	_, err = suffstats.ParseKind("poisson")
	assert.ErrorIs(t, err, suffstats.ErrUnknownKind)
	assert.Equal(t, "multinomial", suffstats.Multinomial.String())
}

// TestLogPredictive_MatchesMarginalDifference checks the predictive against
// an explicit insert for both kinds, and that statistics are untouched.
func TestLogPredictive_MatchesMarginalDifference(t *testing.T) {
	multi, err := suffstats.MultinomialSpec(3, 12, gridSize)
	require.NoError(t, err)

	cases := []struct {
		name   string
		spec   suffstats.Spec
		seed   []float64
		probes []float64
	}{
		{"continuous", continuousSpec(t), []float64{0.5, 1.5}, []float64{-2, 0, 4.2}},
		{"multinomial", multi, []float64{0, 2, 2}, []float64{0, 1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			col := newColumn(t, tc.spec)
			for _, v := range tc.seed {
				require.NoError(t, col.Insert(v))
			}
			for _, x := range tc.probes {
				base := col.LogMarginal()
				pred, err := col.LogPredictive(x)
				require.NoError(t, err)
				assert.Equal(t, base, col.LogMarginal(), "predictive must not mutate")

				require.NoError(t, col.Insert(x))
				assert.InDelta(t, col.LogMarginal()-base, pred, 1e-9)
				require.NoError(t, col.Remove(x))
			}
		})
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	text, err := suffstats.Multinomial.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "multinomial", string(text))

	var k suffstats.Kind
	require.NoError(t, k.UnmarshalText([]byte("Continuous")))
	assert.Equal(t, suffstats.Continuous, k)
	assert.ErrorIs(t, k.UnmarshalText([]byte("ordinal")), suffstats.ErrUnknownKind)

	_, err = suffstats.Kind(9).MarshalText()
	assert.ErrorIs(t, err, suffstats.ErrUnknownKind)
}
