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

// Package logmath provides probability arithmetic in log space.
package logmath

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// ApproxLogBinomial approximates the logarithm of n choose k with the
// entropy form of Stirling's approximation, -n*(e*log(e) + (1-e)*log(1-e))
// where e = k/n. The approximation is meant for large n and k.
func ApproxLogBinomial(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	// limits of the entropy term; choosing none or all has a single outcome
	if k == 0 || k == n {
		return 0
	}
	e := float64(k) / float64(n)
	return -float64(n) * (e*math.Log(e) + (1-e)*math.Log(1-e))
}

// LogSumExp computes log(sum(exp(values))) without overflow or underflow.
// If the maximum of the values is infinite, the maximum is returned. A NaN
// result indicates malformed input and is reported as an error.
func LogSumExp(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "LogSumExp: no values")
	}
	// the maximum search skips NaN, so an infinite maximum would hide it
	for i, v := range values {
		if math.IsNaN(v) {
			return v, errors.Wrapf(ErrNumerical, "LogSumExp(%v): value %d is NaN", values, i)
		}
	}
	result := floats.LogSumExp(values)
	if math.IsNaN(result) {
		return result, errors.Wrapf(ErrNumerical, "LogSumExp(%v) = NaN", values)
	}
	return result, nil
}
