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
	"strings"

	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/cockroachdb/errors"
)

// Algorithm computes the log probability of an occupancy pattern.
type Algorithm interface {
	String() string
	logProbability(m *Model, pattern Pattern, c int) (float64, error)
}

var (
	// DynamicProgram computes the log probability in O(L*c^2) steps.
	DynamicProgram Algorithm = dynamicProgram{}

	// Recursive enumerates every split of the draws among the set bins.
	// Its runtime is exponential; it serves as reference for small inputs.
	Recursive Algorithm = recursive{}
)

// ParseAlgorithm returns the algorithm for a name as printed by String.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case DynamicProgram.String(), "dynamic":
		return DynamicProgram, nil
	case Recursive.String(), "reference":
		return Recursive, nil
	}
	return nil, errors.Wrapf(logmath.ErrInvalidArgument, "unknown algorithm %q", name)
}

type dynamicProgram struct{}

func (dynamicProgram) String() string { return "dp" }

// logProbability processes the bins from the last to the first. After bin
// i, forward[cc] holds the log probability that bins i..L-1 realize the
// pattern with exactly cc draws. A cleared bin takes no draw and leaves the
// table unchanged. A set bin takes j >= 1 of the cc draws, chosen in
// binomial(cc, j) ways.
func (dynamicProgram) logProbability(m *Model, pattern Pattern, c int) (float64, error) {
	forward := make([]float64, c+1)
	for cc := 1; cc <= c; cc++ {
		forward[cc] = math.Inf(-1)
	}
	current := make([]float64, c+1)
	work := make([]float64, c)

	for i := len(pattern) - 1; i >= 0; i-- {
		if !pattern[i] {
			continue
		}
		current[0] = math.Inf(-1)
		for cc := 1; cc <= c; cc++ {
			for j := 1; j <= cc; j++ {
				lb, err := m.cache.LogBinomial(cc, j)
				if err != nil {
					return 0, err
				}
				work[j-1] = lb + float64(j)*m.logProbs[i] + forward[cc-j]
			}
			v, err := logmath.LogSumExp(work[:cc])
			if err != nil {
				return 0, errors.Wrapf(err, "dp: bin %d, draws %d", i, cc)
			}
			current[cc] = v
		}
		forward, current = current, forward
	}
	return forward[c], nil
}

type recursive struct{}

func (recursive) String() string { return "recursive" }

func (recursive) logProbability(m *Model, pattern Pattern, c int) (float64, error) {
	return m.recurse(pattern, c, pattern.Count(), 0)
}

// recurse returns the log probability that bins i..L-1 realize the pattern
// with c draws. stillSet is the number of set bins in pattern[i:].
func (m *Model) recurse(pattern Pattern, c, stillSet, i int) (float64, error) {
	if i >= len(pattern) {
		if c == 0 {
			return 0, nil
		}
		return math.Inf(-1), nil
	}
	if !pattern[i] {
		return m.recurse(pattern, c, stillSet, i+1)
	}

	// stillSet-1 set bins follow, each taking at least one draw,
	// so bin i takes at most c-(stillSet-1) draws.
	limit := c - stillSet + 1
	if limit < 1 {
		return math.Inf(-1), nil
	}
	values := make([]float64, 0, limit)
	for j := 1; j <= limit; j++ {
		lb, err := m.cache.LogBinomial(c, j)
		if err != nil {
			return 0, err
		}
		rest, err := m.recurse(pattern, c-j, stillSet-1, i+1)
		if err != nil {
			return 0, err
		}
		values = append(values, lb+float64(j)*m.logProbs[i]+rest)
	}
	result, err := logmath.LogSumExp(values)
	if err != nil {
		return 0, errors.Wrapf(err, "recursive: bin %d, draws %d", i, c)
	}
	return result, nil
}
