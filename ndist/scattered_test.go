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

package ndist

import (
	"testing"

	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitSamples places samples on a 3x3 lattice of the unit square.
func unitSamples(f func(x, y float64) float64) ([][]float64, []float64) {
	var points [][]float64
	var values []float64
	for _, x := range []float64{0, 0.5, 1} {
		for _, y := range []float64{0, 0.5, 1} {
			points = append(points, []float64{x, y})
			values = append(values, f(x, y))
		}
	}
	return points, values
}

func TestInverseWeight_CdfData(t *testing.T) {
	points, values := unitSamples(func(x, y float64) float64 { return x * y })
	d, err := NewInverseWeight(CdfData, points, values, 2, config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	assert.Equal(t, InverseWeightType, d.Type())
	assert.Equal(t, CdfData, d.Kind())

	v, err := d.Cdf([]float64{0.5, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
	v, err = d.Cdf([]float64{0.3, 0.7})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)

	p, err := d.Pdf([]float64{0.25, 0.75})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p, 0.0)

	m, err := d.Marginal(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m)

	_, err = d.InverseMarginal(0.5, 0)
	assert.True(t, errkind.Is(err, errkind.NotImplemented))
}

func TestInverseWeight_PdfDataIntegratesByMidpointRule(t *testing.T) {
	points, values := unitSamples(func(x, y float64) float64 { return 1 })
	d, err := NewInverseWeight(PdfData, points, values, 2, config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	for _, test := range []struct{ x, want []float64 }{
		{[]float64{1, 1}, []float64{1}},
		{[]float64{0.5, 1}, []float64{0.5}},
		{[]float64{0.5, 0.5}, []float64{0.25}},
		{[]float64{2, 2}, []float64{1}},
		{[]float64{-1, 0.5}, []float64{0}},
	} {
		v, err := d.Cdf(test.x)
		require.NoError(t, err)
		assert.InDelta(t, test.want[0], v, 1e-9, "x=%v", test.x)
	}
	p, err := d.Pdf([]float64{0.2, 0.2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-12)
	p, err = d.Pdf([]float64{1.2, 0.2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestInverseWeight_Samples(t *testing.T) {
	points, values := unitSamples(func(x, y float64) float64 { return 1 })
	cfg := config.Default()
	cfg.CdfDivisions = 4
	d, err := NewInverseWeight(PdfData, points, values, 2, cfg, random.NewGenerator(1))
	require.NoError(t, err)
	src := random.NewGenerator(2)
	for range 20 {
		x, err := d.Sample(src)
		require.NoError(t, err)
		assert.True(t, d.inside(x))
	}
}

func TestScatteredMS_ConstantDensity(t *testing.T) {
	points, values := unitSamples(func(x, y float64) float64 { return 1 })
	d, err := NewScatteredMS(PdfData, points, values, 2, config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	assert.Equal(t, ScatteredMSType, d.Type())
	v, err := d.Cdf([]float64{0.5, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-9)
	_, err = d.InverseMarginal(0.5, 0)
	assert.True(t, errkind.Is(err, errkind.NotImplemented))
}

func TestScattered_RejectsInvalidInput(t *testing.T) {
	cfg := config.Default()
	src := random.NewGenerator(1)
	_, err := NewInverseWeight(PdfData, [][]float64{{0, 0}, {1, 0}}, []float64{1, 1}, 2, cfg, src)
	assert.True(t, errkind.Is(err, errkind.Config), "degenerate axis")
	points, values := unitSamples(func(x, y float64) float64 { return 1 })
	_, err = NewInverseWeight(DataKind(3), points, values, 2, cfg, src)
	assert.True(t, errkind.Is(err, errkind.Config))
	_, err = NewScatteredMS(PdfData, points, values, 2, cfg, nil)
	assert.True(t, errkind.Is(err, errkind.Config))

	d, err := NewInverseWeight(PdfData, points, values, 2, cfg, src)
	require.NoError(t, err)
	_, err = d.Cdf([]float64{0.5})
	assert.True(t, errkind.Is(err, errkind.Config))
}
