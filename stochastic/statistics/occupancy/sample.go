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
	"time"

	"github.com/0xsoniclabs/occupancy/stochastic/statistics/discrete"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext/prng"
)

// RandomSource produces uniform random numbers in the range [0,1).
// A *rand.Rand satisfies this interface.
//
//go:generate mockgen -source sample.go -destination sample_mock.go -package occupancy
type RandomSource interface {
	Float64() float64
}

// Sample draws c times from the distribution and returns the pattern of bins
// hit at least once. Exactly c numbers are consumed from rng. If rng is nil,
// a fresh source seeded from the clock is used.
func (m *Model) Sample(c int, rng RandomSource) (Pattern, error) {
	if c < 0 {
		return nil, errors.Wrapf(logmath.ErrInvalidArgument, "Sample: negative number of draws (%d)", c)
	}
	if rng == nil {
		rng = newSource()
	}
	pattern := make(Pattern, len(m.probs))
	for range c {
		pattern[discrete.Sample(rng, m.probs)] = true
	}
	return pattern, nil
}

// NewSource creates a Mersenne Twister based source with the given seed.
// The source is not safe for concurrent use.
func NewSource(seed uint64) RandomSource {
	src := prng.NewMT19937()
	src.Seed(seed)
	return rand.New(src)
}

func newSource() RandomSource {
	return NewSource(uint64(time.Now().UnixNano()))
}
