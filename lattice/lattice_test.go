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

package lattice

import (
	"testing"

	"github.com/0xsoniclabs/crow/errkind"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	size, err := Size([]int{2, 3, 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, 24, size)

	_, err = Size([]int{10, 10, 10}, 999)
	assert.True(t, errkind.Is(err, errkind.Config))

	_, err = Size([]int{3, 0}, 0)
	assert.True(t, errkind.Is(err, errkind.Config))
}

func TestForEach_VisitsRowMajorOrder(t *testing.T) {
	shape := []int{2, 3}
	var offsets []int
	var visited [][]int
	err := ForEach(shape, func(index []int) error {
		offsets = append(offsets, Flatten(index, shape))
		visited = append(visited, append([]int(nil), index...))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, offsets)
	assert.Equal(t, []int{0, 2}, visited[2])
	assert.Equal(t, []int{1, 0}, visited[3])
}

func TestForEach_StopsOnError(t *testing.T) {
	calls := 0
	stop := errors.New("stop")
	err := ForEach([]int{4, 4}, func([]int) error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, calls)
}

func TestUnflatten_InvertsFlatten(t *testing.T) {
	shape := []int{3, 4, 5}
	index := make([]int, 3)
	for offset := 0; offset < 60; offset++ {
		Unflatten(offset, shape, index)
		assert.Equal(t, offset, Flatten(index, shape))
	}
	assert.Equal(t, []int{7, 7}, Uniform(2, 7))
}
