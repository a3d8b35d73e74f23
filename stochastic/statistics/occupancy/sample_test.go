// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package occupancy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestSample_WalksBinsInIndexOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := NewMockRandomSource(ctrl)
	m, err := New([]float64{1, 1, 2})
	require.NoError(t, err)

	gomock.InOrder(
		rng.EXPECT().Float64().Return(0.1),
		rng.EXPECT().Float64().Return(0.9),
	)
	got, err := m.Sample(2, rng)
	require.NoError(t, err)
	assert.Equal(t, "101", got.String())
}

func TestSample_BoundarySelectsNextBin(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := NewMockRandomSource(ctrl)
	m, err := New([]float64{1, 1, 2})
	require.NoError(t, err)

	rng.EXPECT().Float64().Return(0.25)
	got, err := m.Sample(1, rng)
	require.NoError(t, err)
	assert.Equal(t, "010", got.String())

	rng.EXPECT().Float64().Return(0.5)
	got, err = m.Sample(1, rng)
	require.NoError(t, err)
	assert.Equal(t, "001", got.String())

	rng.EXPECT().Float64().Return(0.0)
	got, err = m.Sample(1, rng)
	require.NoError(t, err)
	assert.Equal(t, "100", got.String())
}

func TestSample_RepeatedHitsAreIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := NewMockRandomSource(ctrl)
	m, err := New([]float64{1, 1, 2})
	require.NoError(t, err)

	rng.EXPECT().Float64().Return(0.75).Times(5)
	got, err := m.Sample(5, rng)
	require.NoError(t, err)
	assert.Equal(t, Pattern{false, false, true}, got)
}

func TestSample_ZeroDrawsConsumesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := NewMockRandomSource(ctrl)
	m, err := New([]float64{1, 2, 3})
	require.NoError(t, err)

	got, err := m.Sample(0, rng)
	require.NoError(t, err)
	assert.Equal(t, make(Pattern, 3), got)
}

func TestSample_RoundingPastTheEndSelectsLastBin(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := NewMockRandomSource(ctrl)
	m, err := New([]float64{1, 1, 1})
	require.NoError(t, err)

	rng.EXPECT().Float64().Return(math.Nextafter(1, 0))
	got, err := m.Sample(1, rng)
	require.NoError(t, err)
	assert.Equal(t, "001", got.String())
}

func TestSample_NegativeDraws(t *testing.T) {
	m, err := New([]float64{1, 2})
	require.NoError(t, err)
	_, err = m.Sample(-1, nil)
	assert.True(t, errors.Is(err, logmath.ErrInvalidArgument))
}

func TestSample_WithoutSource(t *testing.T) {
	m, err := New([]float64{1, 1, 1, 1})
	require.NoError(t, err)
	for range 100 {
		got, err := m.Sample(3, nil)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.GreaterOrEqual(t, got.Count(), 1)
		assert.LessOrEqual(t, got.Count(), 3)
	}
}

// TestSample_FrequenciesMatchLogProbability compares the frequency of every
// pattern with the computed probability using a chi-squared test.
func TestSample_FrequenciesMatchLogProbability(t *testing.T) {
	m, err := New([]float64{1, 2, 5})
	require.NoError(t, err)
	rg := rand.New(rand.NewSource(42))

	const c = 4
	const numSteps = 200000
	counts := map[string]int{}
	for range numSteps {
		p, err := m.Sample(c, rg)
		require.NoError(t, err)
		counts[p.String()]++
	}

	chi2 := 0.0
	df := -1.0
	for _, pattern := range Enumerate(m.Len()) {
		logP, err := m.LogProbability(pattern, c)
		require.NoError(t, err)
		expected := numSteps * math.Exp(logP)
		if expected == 0 {
			assert.Zero(t, counts[pattern.String()], "impossible pattern %v sampled", pattern)
			continue
		}
		diff := expected - float64(counts[pattern.String()])
		chi2 += diff * diff / expected
		df++
	}
	chi2Critical := distuv.ChiSquared{K: df, Src: nil}.Quantile(1.0 - 0.001)
	assert.LessOrEqual(t, chi2, chi2Critical)
}

func TestSample_NewSourceIsReproducible(t *testing.T) {
	m, err := New([]float64{1, 1, 2, 4, 8, 16, 32, 64})
	require.NoError(t, err)
	a, b := NewSource(7), NewSource(7)
	for range 50 {
		x, err := m.Sample(10, a)
		require.NoError(t, err)
		y, err := m.Sample(10, b)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestSample_NewSourceIsUniform(t *testing.T) {
	src := NewSource(1)
	for range 1000 {
		u := src.Float64()
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}
