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

var unitAxes = [][]float64{{0, 0.25, 0.5, 0.75, 1}, {0, 0.25, 0.5, 0.75, 1}}

func constantValues(n int, v float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

// productCdf tabulates F(x,y)=xy on unitAxes.
func productCdf() []float64 {
	var values []float64
	for _, x := range unitAxes[0] {
		for _, y := range unitAxes[1] {
			values = append(values, x*y)
		}
	}
	return values
}

func TestCartesianSpline_DerivesCdfFromDensity(t *testing.T) {
	d, err := NewCartesianSpline(PdfData, unitAxes, constantValues(25, 1), config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	assert.Equal(t, CartesianSplineType, d.Type())
	assert.Equal(t, 2, d.Dim())

	_, err = d.Cdf([]float64{0.5, 0.5})
	assert.True(t, errkind.Is(err, errkind.Config))

	require.NoError(t, d.FitPdf())
	require.NoError(t, d.DeriveCdf())
	v, err := d.Cdf([]float64{0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, v, 1e-9)
	v, err = d.Cdf([]float64{0.3, 0.8})
	require.NoError(t, err)
	assert.InDelta(t, 0.24, v, 1e-9)

	p, err := d.Pdf([]float64{0.3, 0.8})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-12)
	p, err = d.Pdf([]float64{1.3, 0.8})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestCartesianSpline_DerivesDensityFromCdf(t *testing.T) {
	d, err := NewCartesianSpline(CdfData, unitAxes, productCdf(), config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	_, err = d.Pdf([]float64{0.5, 0.5})
	assert.True(t, errkind.Is(err, errkind.Config))
	require.NoError(t, d.FitPdf())
	p, err := d.Pdf([]float64{0.4, 0.6})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-8)
	v, err := d.Cdf([]float64{0.4, 0.6})
	require.NoError(t, err)
	assert.InDelta(t, 0.24, v, 1e-9)
}

func TestCartesianSpline_RejectsCdfAboveOne(t *testing.T) {
	d, err := NewCartesianSpline(PdfData, unitAxes, constantValues(25, 2), config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	assert.True(t, errkind.Is(d.DeriveCdf(), errkind.Domain))

	values := productCdf()
	values[24] = 1.5
	_, err = NewCartesianSpline(CdfData, unitAxes, values, config.Default(), random.NewGenerator(1))
	assert.True(t, errkind.Is(err, errkind.Domain))
}

func TestCartesianSpline_Marginals(t *testing.T) {
	d, err := NewCartesianSpline(CdfData, unitAxes, productCdf(), config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	v, err := d.Marginal(0.3, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, v, 1e-9)
	x, err := d.InverseMarginal(0.62, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.62, x, 1e-6)
	x, err = d.InverseMarginal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x)

	_, err = d.InverseMarginal(0.5, 4)
	assert.True(t, errkind.Is(err, errkind.Config))
}

func TestCartesianSpline_SamplesInsideGrid(t *testing.T) {
	d, err := NewCartesianSpline(CdfData, unitAxes, productCdf(), config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	src := random.NewGenerator(3)
	sum := []float64{0, 0}
	const n = 1000
	for range n {
		x, err := d.Sample(src)
		require.NoError(t, err)
		require.True(t, d.inside(x))
		sum[0] += x[0]
		sum[1] += x[1]
	}
	assert.InDelta(t, 0.5, sum[0]/n, 0.05)
	assert.InDelta(t, 0.5, sum[1]/n, 0.05)

	x, err := d.InverseCdf(0.5, 0.5)
	require.NoError(t, err)
	assert.Len(t, x, 2)
	_, err = d.InverseCdf(1.5, 0.5)
	assert.True(t, errkind.Is(err, errkind.Domain))
}

func TestCartesianSpline_Parameters(t *testing.T) {
	d, err := NewCartesianSpline(PdfData, unitAxes, constantValues(25, 1), config.Default(), random.NewGenerator(1))
	require.NoError(t, err)
	require.NoError(t, d.UpdateParameter(ParamDivisions, 4))
	p := d.Parameters()
	assert.Equal(t, 4.0, p[ParamDivisions])
	assert.Equal(t, 2.0, p[ParamDimensionality])
	assert.True(t, errkind.Is(d.UpdateParameter(ParamDimensionality, 3), errkind.Config))
	assert.True(t, errkind.Is(d.UpdateParameter(ParamTolerance, 2), errkind.Config))

	_, err = NewCartesianSpline(DataKind(7), unitAxes, constantValues(25, 1), config.Default(), random.NewGenerator(1))
	assert.True(t, errkind.Is(err, errkind.Config))
	_, err = NewCartesianSpline(PdfData, unitAxes, constantValues(25, 1), config.Default(), nil)
	assert.True(t, errkind.Is(err, errkind.Config))
}

func TestParseDataKind(t *testing.T) {
	k, err := ParseDataKind("cdf")
	require.NoError(t, err)
	assert.Equal(t, CdfData, k)
	assert.Equal(t, "pdf", PdfData.String())
	_, err = ParseDataKind("pmf")
	assert.True(t, errkind.Is(err, errkind.Config))
}
