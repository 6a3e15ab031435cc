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

package interp

import (
	"testing"

	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverseDistance_ExactAtSamples(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	values := []float64{1, 2, 3, 4}
	d, err := NewInverseDistance(points, values, 2)
	require.NoError(t, err)
	for i, p := range points {
		v, err := d.Evaluate(p)
		require.NoError(t, err)
		assert.Equal(t, values[i], v)
	}
	v, err := d.Evaluate([]float64{0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 1e-12)
}

func TestInverseDistance_WeightsByDistancePower(t *testing.T) {
	d, err := NewInverseDistance([][]float64{{0}, {1}}, []float64{0, 1}, 1)
	require.NoError(t, err)
	v, err := d.Evaluate([]float64{0.25})
	require.NoError(t, err)
	// weights 1/0.25^2 and 1/0.75^2
	assert.InDelta(t, 0.1, v, 1e-12)
	lower, upper := d.Bounds()
	assert.Equal(t, []float64{0}, lower)
	assert.Equal(t, []float64{1}, upper)
}

func TestInverseDistance_RejectsInvalidSamples(t *testing.T) {
	_, err := NewInverseDistance(nil, nil, 2)
	assert.True(t, errkind.Is(err, errkind.Config))
	_, err = NewInverseDistance([][]float64{{0}, {1, 2}}, []float64{0, 1}, 2)
	assert.True(t, errkind.Is(err, errkind.Config))
	_, err = NewInverseDistance([][]float64{{0}}, []float64{0}, 0.5)
	assert.True(t, errkind.Is(err, errkind.Config))

	d, err := NewInverseDistance([][]float64{{0}}, []float64{0}, 2)
	require.NoError(t, err)
	_, err = d.Evaluate([]float64{0, 1})
	assert.True(t, errkind.Is(err, errkind.Config))
}

func TestMicroSphere_ExactAtSamplesAndBounded(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.2}}
	values := []float64{1, 2, 3, 4, 0}
	m, err := NewMicroSphere(points, values, 2, 200, random.NewGenerator(3))
	require.NoError(t, err)
	require.Len(t, m.Directions(), 200)
	for _, n := range m.Directions() {
		assert.InDelta(t, 1.0, n[0]*n[0]+n[1]*n[1], 1e-12)
	}
	for i, p := range points {
		v, err := m.Evaluate(p)
		require.NoError(t, err)
		assert.Equal(t, values[i], v)
	}
	for _, x := range [][]float64{{0.3, 0.3}, {0.9, 0.1}, {2, 2}} {
		v, err := m.Evaluate(x)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 4.0)
	}
}

func TestMicroSphere_ConstantData(t *testing.T) {
	points := [][]float64{{0}, {1}, {3}}
	m, err := NewMicroSphere(points, []float64{5, 5, 5}, 2, 50, random.NewGenerator(9))
	require.NoError(t, err)
	v, err := m.Evaluate([]float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v, 1e-12)

	_, err = NewMicroSphere(points, []float64{5, 5, 5}, 2, 0, random.NewGenerator(9))
	assert.True(t, errkind.Is(err, errkind.Config))
}

func TestNearest_FindsClosestSample(t *testing.T) {
	n, err := NewNearest([][]float64{{0, 0}, {10, 0}, {0, 10}}, []float64{1, 2, 3})
	require.NoError(t, err)
	v, err := n.Value([]float64{8, 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	v, err = n.Value([]float64{-3, 7})
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	_, err = n.Value([]float64{1})
	assert.True(t, errkind.Is(err, errkind.Config))
}
