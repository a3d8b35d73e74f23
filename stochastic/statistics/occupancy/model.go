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

// Package occupancy models c independent draws from a categorical distribution
// over a fixed set of bins. It computes the probability that the set of bins
// receiving at least one draw equals a given occupancy pattern, and it draws
// random occupancy patterns from the same process.
package occupancy

import (
	"math"

	"github.com/0xsoniclabs/occupancy/stochastic/statistics/discrete"
	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/cockroachdb/errors"
)

// Model is an immutable categorical distribution over a fixed number of bins.
// A model is safe for concurrent use.
type Model struct {
	probs    []float64      // normalized weights
	logProbs []float64      // natural logarithms of probs
	cache    *logmath.Cache // log-factorials for binomial coefficients
}

// Option configures a Model.
type Option func(*Model)

// WithCache shares a log-factorial cache between models.
func WithCache(c *logmath.Cache) Option {
	return func(m *Model) {
		if c != nil {
			m.cache = c
		}
	}
}

// New creates a model from relative bin likelihoods. The likelihoods are
// normalized by their sum. An empty list is an invalid argument; a weight
// that does not normalize to a strictly positive, finite probability is out
// of range.
func New(weights []float64, opts ...Option) (*Model, error) {
	if len(weights) == 0 {
		return nil, errors.Wrap(logmath.ErrInvalidArgument, "New: must have some weights")
	}
	probs, err := discrete.Normalize(weights)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "New"), logmath.ErrOutOfRange)
	}
	logProbs := make([]float64, len(probs))
	for i, p := range probs {
		logProbs[i] = math.Log(p)
	}
	m := &Model{
		probs:    probs,
		logProbs: logProbs,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = logmath.NewCache()
	}
	return m, nil
}

// Len returns the number of bins.
func (m *Model) Len() int {
	return len(m.probs)
}

// Weights returns a copy of the normalized bin probabilities.
func (m *Model) Weights() []float64 {
	return append([]float64(nil), m.probs...)
}

// LogProbability returns the natural logarithm of the probability that c
// draws occupy exactly the bins set in the pattern. The computation uses
// the dynamic program.
func (m *Model) LogProbability(pattern Pattern, c int) (float64, error) {
	return m.LogProbabilityWith(DynamicProgram, pattern, c)
}

// LogProbabilityWith is LogProbability computed by the given algorithm.
// Impossible combinations, e.g., fewer draws than set bins, yield negative
// infinity. The pattern must have one entry per bin.
func (m *Model) LogProbabilityWith(alg Algorithm, pattern Pattern, c int) (float64, error) {
	if alg == nil {
		return 0, errors.Wrap(logmath.ErrInvalidArgument, "LogProbability: no algorithm")
	}
	if len(pattern) != len(m.probs) {
		return 0, errors.Wrapf(logmath.ErrInvalidArgument, "LogProbability: pattern length (%d) mismatches number of bins (%d)", len(pattern), len(m.probs))
	}
	if c < 0 {
		return 0, errors.Wrapf(logmath.ErrInvalidArgument, "LogProbability: negative number of draws (%d)", c)
	}
	return alg.logProbability(m, pattern, c)
}
