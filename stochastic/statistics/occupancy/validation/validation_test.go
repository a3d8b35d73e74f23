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

package validation

import (
	"math"
	"testing"

	"github.com/0xsoniclabs/occupancy/logger"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/occupancy"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation_RejectsInvalidConfig(t *testing.T) {
	m, err := occupancy.New([]float64{1, 1})
	require.NoError(t, err)

	tests := map[string]struct {
		cfg  Config
		want error
	}{
		"negative count": {Config{Count: -1, Trials: 1, Resample: 1, Confidence: 0.95}, logmath.ErrInvalidArgument},
		"no trials":      {Config{Count: 2, Trials: 0, Resample: 1, Confidence: 0.95}, logmath.ErrInvalidArgument},
		"no resamples":   {Config{Count: 2, Trials: 1, Resample: 0, Confidence: 0.95}, logmath.ErrInvalidArgument},
		"confidence":     {Config{Count: 2, Trials: 1, Resample: 1, Confidence: 1.5}, logmath.ErrOutOfRange},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Run(m, test.cfg, nil, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, test.want))
		})
	}
}

func TestValidation_ZScore(t *testing.T) {
	assert.InDelta(t, 2.0, zScore(0.5, 0.51, 10000), 1e-9)
	assert.InDelta(t, -2.0, zScore(0.5, 0.49, 10000), 1e-9)
	assert.Equal(t, 0.0, zScore(1, 1, 100))
	assert.True(t, math.IsInf(zScore(1, 0.5, 100), -1))
	assert.True(t, math.IsInf(zScore(0, 0.5, 100), 1))
}

func TestValidation_Passed(t *testing.T) {
	r := &Result{Trials: make([]Trial, 20), Exceeded: 2}
	assert.True(t, r.Passed(0.1))
	r.Exceeded = 3
	assert.False(t, r.Passed(0.1))
}

func TestValidation_RunReportsEveryTrial(t *testing.T) {
	m, err := occupancy.New([]float64{1, 1})
	require.NoError(t, err)
	log := logger.NewLogger("DEBUG", "TestValidation")

	cfg := Config{Count: 2, Trials: 5, Resample: 2000, Confidence: 0.95}
	result, err := Run(m, cfg, occupancy.NewSource(3), log)
	require.NoError(t, err)
	require.Len(t, result.Trials, 5)
	assert.InDelta(t, 1.959964, result.Critical, 1e-5)

	exceeded := 0
	for _, trial := range result.Trials {
		assert.Len(t, trial.Pattern, 2)
		switch trial.Pattern.Count() {
		case 1:
			assert.InDelta(t, 0.25, trial.Computed, 1e-12)
		case 2:
			assert.InDelta(t, 0.5, trial.Computed, 1e-12)
		default:
			t.Fatalf("impossible pattern %v", trial.Pattern)
		}
		assert.GreaterOrEqual(t, trial.Empirical, 0.0)
		assert.LessOrEqual(t, trial.Empirical, 1.0)
		if trial.Exceeded {
			exceeded++
		}
	}
	assert.Equal(t, exceeded, result.Exceeded)
}

// TestValidation_SampledFrequenciesMatchComputedProbabilities compares sampled
// frequencies of patterns with their computed probability for a skewed
// distribution over eight bins.
func TestValidation_SampledFrequenciesMatchComputedProbabilities(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test with 10^7 samples")
	}
	m, err := occupancy.New([]float64{1, 1, 2, 4, 8, 16, 32, 64})
	require.NoError(t, err)

	cfg := Config{Count: 10, Trials: 100, Resample: 100000, Confidence: 0.95}
	result, err := Run(m, cfg, occupancy.NewSource(0), nil)
	require.NoError(t, err)
	assert.True(t, result.Passed(0.12), "%d of %d trials were 5%% unlikely", result.Exceeded, cfg.Trials)
}
