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
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"
)

func TestCache_LogBinomialClosedForm(t *testing.T) {
	c := NewCache()
	got, err := c.LogBinomial(10, 3)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(120), got, 1e-12)

	for n := 0; n <= 40; n++ {
		for k := 0; k <= n; k++ {
			got, err := c.LogBinomial(n, k)
			require.NoError(t, err)
			want := combin.LogGeneralizedBinomial(float64(n), float64(k))
			assert.InDelta(t, want, got, 1e-9, "n=%d, k=%d", n, k)
		}
	}
}

func TestCache_LogBinomialOutsideSupport(t *testing.T) {
	c := NewCache()
	got, err := c.LogBinomial(10, -1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, -1))

	got, err = c.LogBinomial(10, 11)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, -1))

	got, err = c.LogBinomial(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCache_LogBinomialNegativePopulation(t *testing.T) {
	c := NewCache()
	_, err := c.LogBinomial(-1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 1, c.Len(), "failed calls must not grow the cache")
}

func TestCache_GrowsMonotonically(t *testing.T) {
	c := NewCache()
	assert.Equal(t, 1, c.Len())

	_, err := c.LogBinomial(5, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())

	_, err = c.LogBinomial(3, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())

	_, err = c.LogBinomial(7, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Len())
}

func TestCache_ZeroValueIsUsable(t *testing.T) {
	var c Cache
	assert.Equal(t, 1, c.Len())
	got, err := c.LogFactorial(4)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(24), got, 1e-12)
	assert.Equal(t, 5, c.Len())
}

func TestCache_LogFactorial(t *testing.T) {
	c := NewCache()
	for n := 0; n <= 170; n++ {
		got, err := c.LogFactorial(n)
		require.NoError(t, err)
		want, _ := math.Lgamma(float64(n + 1))
		assert.InDelta(t, want, got, 1e-9*math.Max(1, want), "n=%d", n)
	}
	_, err := c.LogFactorial(-3)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestCache_ConcurrentExtension(t *testing.T) {
	c := NewCache()
	const workers = 16
	var wg sync.WaitGroup
	failures := make(chan string, workers*64)
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 64; i++ {
				n := (w*37 + i*11) % 500
				got, err := c.LogBinomial(n, n/2)
				if err != nil {
					failures <- err.Error()
					continue
				}
				want := combin.LogGeneralizedBinomial(float64(n), float64(n/2))
				if math.Abs(got-want) > 1e-7 {
					failures <- "mismatch"
				}
			}
		}(w)
	}
	wg.Wait()
	close(failures)
	for f := range failures {
		t.Errorf("concurrent LogBinomial failed: %s", f)
	}
	assert.LessOrEqual(t, c.Len(), 500)
}
