// Copyright 2024 Fantom Foundation
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

package discrete

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Source produces uniform random numbers in the range [0,1).
type Source interface {
	Float64() float64
}

// Normalize scales the given non-negative weights of a discrete finite random
// variable into a probability mass function (pmf). Every scaled weight must
// be strictly positive and finite; otherwise an error naming the first
// offending weight is returned.
func Normalize(weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, errors.New("Normalize: no weights")
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	f := make([]float64, len(weights))
	for i, w := range weights {
		x := w / total
		if !(x > 0) || math.IsInf(x, 0) {
			return nil, errors.Newf("Normalize: weight[%d] = %v is not a positive finite probability (%v)", i, w, x)
		}
		f[i] = x
	}
	return f, nil
}

// Quantile computes the quantile (inverse CDF) for a discrete finite random variable.
// The variate u is reduced by the probability of each index in turn until
// it falls below the probability of the current index. A variate on the
// boundary between two indices selects the upper one. If rounding exhausts
// the pmf, the last index with a positive probability is returned. If all
// probabilities are zero, it returns 0.
func Quantile(f []float64, u float64) int {
	lastPositive := -1
	for i, p := range f {
		if u < p {
			return i
		}
		u -= p
		if p > 0.0 {
			lastPositive = i
		}
	}
	if lastPositive != -1 {
		return lastPositive
	}
	return 0 // default position if all probabilities are zero
}

// Sample the discrete finite random variable defined by the given probability
// mass function (pmf). It draws one uniform random number from the source
// and maps it to an index using the Quantile function.
func Sample(rg Source, f []float64) int {
	return Quantile(f, rg.Float64())
}
