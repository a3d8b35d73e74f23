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

package logmath

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSumExp_Basic(t *testing.T) {
	got, err := LogSumExp([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2), got, 1e-12)

	got, err = LogSumExp([]float64{5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	got, err = LogSumExp([]float64{math.Log(1), math.Log(2), math.Log(3)})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(6), got, 1e-12)
}

func TestLogSumExp_InfiniteMaximum(t *testing.T) {
	got, err := LogSumExp([]float64{math.Inf(-1), math.Inf(-1)})
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, -1))

	got, err = LogSumExp([]float64{3, math.Inf(1), math.Inf(-1)})
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = LogSumExp([]float64{math.Inf(-1), 2})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)
}

func TestLogSumExp_LargeMagnitudes(t *testing.T) {
	got, err := LogSumExp([]float64{1000, 1000})
	require.NoError(t, err)
	assert.InDelta(t, 1000+math.Log(2), got, 1e-9)

	got, err = LogSumExp([]float64{-1000, -1000, -1000})
	require.NoError(t, err)
	assert.InDelta(t, -1000+math.Log(3), got, 1e-9)
}

func TestLogSumExp_MatchesDirectSummation(t *testing.T) {
	values := []float64{-3.5, -0.25, 1.75, 0.5, -12}
	direct := 0.0
	for _, v := range values {
		direct += math.Exp(v)
	}
	got, err := LogSumExp(values)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(direct), got, 1e-12)
}

func TestLogSumExp_Errors(t *testing.T) {
	_, err := LogSumExp(nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = LogSumExp([]float64{1, math.NaN()})
	assert.True(t, errors.Is(err, ErrNumerical))

	_, err = LogSumExp([]float64{math.NaN(), math.Inf(-1)})
	assert.True(t, errors.Is(err, ErrNumerical))
}

func TestApproxLogBinomial_CloseToExactForLargeArguments(t *testing.T) {
	c := NewCache()
	pairs := [][2]int{{100, 10}, {1000, 100}, {1000, 300}, {10000, 3000}}
	for _, p := range pairs {
		exact, err := c.LogBinomial(p[0], p[1])
		require.NoError(t, err)
		approx := ApproxLogBinomial(p[0], p[1])
		// the entropy form is an upper bound on log(n choose k)
		assert.GreaterOrEqual(t, approx, exact, "n=%d, k=%d", p[0], p[1])
		assert.Less(t, (approx-exact)/exact, 0.1, "n=%d, k=%d", p[0], p[1])
	}
}

func TestApproxLogBinomial_Limits(t *testing.T) {
	assert.Equal(t, 0.0, ApproxLogBinomial(10, 0))
	assert.Equal(t, 0.0, ApproxLogBinomial(10, 10))
	assert.True(t, math.IsInf(ApproxLogBinomial(10, 11), -1))
	assert.True(t, math.IsInf(ApproxLogBinomial(10, -1), -1))
	assert.InDelta(t, 2*math.Log(2), ApproxLogBinomial(2, 1), 1e-12)
}
