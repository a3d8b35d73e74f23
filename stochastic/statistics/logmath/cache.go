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
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Cache holds the logarithms of factorials, i.e., table[i] = log(i!).
// The table only grows. An extension is built on a private copy and then
// published, so readers never observe a partially written table. The zero
// value is ready for use.
type Cache struct {
	table atomic.Pointer[[]float64]
}

// NewCache creates a cache that only knows log(0!).
func NewCache() *Cache {
	c := &Cache{}
	initial := []float64{0}
	c.table.Store(&initial)
	return c
}

// Len returns the number of cached log-factorials.
func (c *Cache) Len() int {
	if t := c.table.Load(); t != nil {
		return len(*t)
	}
	return 1
}

// LogFactorial returns log(n!).
func (c *Cache) LogFactorial(n int) (float64, error) {
	if n < 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "LogFactorial: negative argument (%d)", n)
	}
	return c.lookup(n)[n], nil
}

// LogBinomial returns the logarithm of n choose k. The population size n
// must be non-negative. For k outside of [0,n] the binomial coefficient is
// zero and negative infinity is returned.
func (c *Cache) LogBinomial(n, k int) (float64, error) {
	if n < 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "LogBinomial: population size (%d) must be non-negative", n)
	}
	if k < 0 || k > n {
		return math.Inf(-1), nil
	}
	lf := c.lookup(n)
	return lf[n] - lf[k] - lf[n-k], nil
}

// lookup returns a published table that covers index n.
func (c *Cache) lookup(n int) []float64 {
	for {
		current := c.table.Load()
		lf := []float64{0}
		if current != nil {
			lf = *current
		}
		if n < len(lf) {
			return lf
		}
		extended := make([]float64, n+1)
		copy(extended, lf)
		for i := len(lf); i <= n; i++ {
			extended[i] = extended[i-1] + math.Log(float64(i))
		}
		// a concurrent caller may have published first; retry on its table
		if c.table.CompareAndSwap(current, &extended) {
			return extended
		}
	}
}
