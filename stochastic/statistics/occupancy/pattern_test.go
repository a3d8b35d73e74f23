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
	"testing"

	"github.com/0xsoniclabs/occupancy/stochastic/statistics/logmath"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_ParseAndString(t *testing.T) {
	p, err := ParsePattern("01101")
	require.NoError(t, err)
	assert.Equal(t, Pattern{false, true, true, false, true}, p)
	assert.Equal(t, "01101", p.String())
	assert.Equal(t, 3, p.Count())

	p, err = ParsePattern("")
	require.NoError(t, err)
	assert.Empty(t, p)
	assert.Equal(t, "", p.String())

	_, err = ParsePattern("01x")
	assert.True(t, errors.Is(err, logmath.ErrInvalidArgument))
}

func TestPattern_Equal(t *testing.T) {
	assert.True(t, Pattern{true, false}.Equal(Pattern{true, false}))
	assert.False(t, Pattern{true, false}.Equal(Pattern{false, true}))
	assert.False(t, Pattern{true}.Equal(Pattern{true, false}))
	assert.True(t, Pattern{}.Equal(nil))
}

func TestPattern_Enumerate(t *testing.T) {
	patterns := Enumerate(3)
	require.Len(t, patterns, 8)
	want := []string{"000", "001", "010", "011", "100", "101", "110", "111"}
	for i, p := range patterns {
		assert.Equal(t, want[i], p.String())
	}
	assert.Len(t, Enumerate(0), 1)
	assert.Nil(t, Enumerate(-1))
}
