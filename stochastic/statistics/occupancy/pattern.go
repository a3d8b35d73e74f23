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
	"strings"

	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/cockroachdb/errors"
)

// Pattern marks the bins that receive at least one draw.
type Pattern []bool

// ParsePattern parses a string of '0' and '1' characters, one per bin.
func ParsePattern(s string) (Pattern, error) {
	p := make(Pattern, len(s))
	for i, r := range s {
		switch r {
		case '0':
		case '1':
			p[i] = true
		default:
			return nil, errors.Wrapf(logmath.ErrInvalidArgument, "ParsePattern: invalid character %q at position %d", r, i)
		}
	}
	return p, nil
}

// Enumerate returns all 2^n patterns over n bins in binary counting order,
// with bin 0 as the most significant position.
func Enumerate(n int) []Pattern {
	if n < 0 {
		return nil
	}
	patterns := make([]Pattern, 0, 1<<n)
	for bits := 0; bits < 1<<n; bits++ {
		p := make(Pattern, n)
		for i := range n {
			p[i] = bits&(1<<(n-1-i)) != 0
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// Count returns the number of set bins.
func (p Pattern) Count() int {
	count := 0
	for _, b := range p {
		if b {
			count++
		}
	}
	return count
}

// Equal reports whether both patterns have the same length and bins.
func (p Pattern) Equal(other Pattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, b := range p {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
