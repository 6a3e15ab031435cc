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

package distribution

import (
	"math"
	"testing"

	"github.com/0xsoniclabs/crow/errkind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func continuousCases() map[string]struct {
	typ    Type
	params Parameters
} {
	return map[string]struct {
		typ    Type
		params Parameters
	}{
		"uniform":     {Uniform, Parameters{XMin: -1, XMax: 3}},
		"normal":      {Normal, Parameters{"mu": 1, "sigma": 2, XMin: -3, XMax: 4}},
		"lognormal":   {LogNormal, Parameters{"mu": 0, "sigma": 0.5, "low": 1, XMax: 6}},
		"logistic":    {Logistic, Parameters{"location": 0, "scale": 1, XMin: -5, XMax: 5}},
		"laplace":     {Laplace, Parameters{"location": 2, "scale": 0.5, XMin: 0, XMax: 4}},
		"triangular":  {Triangular, Parameters{"xPeak": 1, "lowerBound": 0, "upperBound": 4}},
		"exponential": {Exponential, Parameters{"lambda": 1, "low": 0, XMax: 10}},
		"weibull":     {Weibull, Parameters{"k": 1.5, "lambda": 2, "low": 0.5, XMax: 8}},
		"gamma":       {Gamma, Parameters{"k": 2, "theta": 1.5, XMax: 20}},
		"beta":        {Beta, Parameters{"alpha": 2, "beta": 3, "scale": 4, "low": -1}},
	}
}

func TestScalar_CdfIsZeroAndOneAtBounds(t *testing.T) {
	for name, test := range continuousCases() {
		t.Run(name, func(t *testing.T) {
			d, err := New(test.typ, test.params)
			require.NoError(t, err)
			a, b := d.Bounds()
			assert.Equal(t, 0.0, d.Cdf(a))
			assert.Equal(t, 1.0, d.Cdf(b))
			assert.Equal(t, 0.0, d.Cdf(a-1))
			assert.Equal(t, 1.0, d.Cdf(b+1))
		})
	}
}

func TestScalar_QuantileInvertsCdf(t *testing.T) {
	for name, test := range continuousCases() {
		t.Run(name, func(t *testing.T) {
			d, err := New(test.typ, test.params)
			require.NoError(t, err)
			a, b := d.Bounds()
			for i := 1; i < 20; i++ {
				x := a + float64(i)/20*(b-a)
				q, err := d.Quantile(d.Cdf(x))
				require.NoError(t, err)
				assert.InDelta(t, x, q, 1e-6*(b-a), "x=%v", x)
			}
			q, err := d.Quantile(0)
			require.NoError(t, err)
			assert.Equal(t, a, q)
			q, err = d.Quantile(1)
			require.NoError(t, err)
			assert.Equal(t, b, q)
		})
	}
}

func TestScalar_QuantileInUpperTail(t *testing.T) {
	tests := map[string]struct {
		typ    Type
		params Parameters
	}{
		"normal":      {Normal, Parameters{"mu": 0, "sigma": 1, XMin: 5, XMax: 30}},
		"logistic":    {Logistic, Parameters{"location": 0, "scale": 1, XMin: 35, XMax: 60}},
		"laplace":     {Laplace, Parameters{"location": 0, "scale": 1, XMin: 30, XMax: 50}},
		"exponential": {Exponential, Parameters{"lambda": 1, "low": 0, XMin: 25, XMax: 40}},
		"weibull":     {Weibull, Parameters{"k": 2, "lambda": 1, "low": 0, XMin: 5, XMax: 10}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := New(test.typ, test.params)
			require.NoError(t, err)
			a, b := d.Bounds()
			for _, p := range []float64{1e-6, 0.1, 0.5, 0.9, 0.999, 1 - 1e-9} {
				x, err := d.Quantile(p)
				require.NoError(t, err, "p=%v", p)
				assert.True(t, x >= a && x <= b, "x=%v outside [%v,%v]", x, a, b)
				assert.InDelta(t, p, d.Cdf(x), 1e-9, "p=%v", p)
			}
			assert.InDelta(t, 1, integrate(d.Pdf, a, b, 20000), 1e-6)
		})
	}
}

// integrate approximates the integral of f over [a,b] with Simpson's rule.
func integrate(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		sum += w * f(a+float64(i)*h)
	}
	return sum * h / 3
}

func TestScalar_TruncatedDensityIntegratesToOne(t *testing.T) {
	tests := map[string]struct {
		typ    Type
		params Parameters
	}{
		"uniform":     {Uniform, Parameters{XMin: 0, XMax: 1}},
		"normal":      {Normal, Parameters{"mu": 0, "sigma": 1, XMin: -3, XMax: 3}},
		"exponential": {Exponential, Parameters{"lambda": 1, "low": 0, XMax: 10}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := New(test.typ, test.params)
			require.NoError(t, err)
			a, b := d.Bounds()
			assert.InDelta(t, 1.0, integrate(d.Pdf, a, b, 2000), 1e-6)
			assert.Equal(t, 0.0, d.Pdf(a-0.1))
			assert.Equal(t, 0.0, d.Pdf(b+0.1))
		})
	}
}

func TestScalar_DefaultBoundsFollowSupport(t *testing.T) {
	d, err := New(Normal, Parameters{"mu": 0, "sigma": 1})
	require.NoError(t, err)
	a, b := d.Bounds()
	assert.True(t, math.IsInf(a, -1))
	assert.True(t, math.IsInf(b, 1))
	assert.InDelta(t, 0.5, d.Cdf(0), 1e-12)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), d.Pdf(0), 1e-12)

	d, err = New(Exponential, Parameters{"lambda": 2, "low": 1})
	require.NoError(t, err)
	a, _ = d.Bounds()
	assert.Equal(t, 1.0, a)
	assert.InDelta(t, 1-math.Exp(-2), d.Cdf(2), 1e-12)
}

func TestScalar_ShiftAndScaleAreConsistent(t *testing.T) {
	d, err := New(Beta, Parameters{"alpha": 2, "beta": 2, "scale": 4, "low": 1})
	require.NoError(t, err)
	a, b := d.Bounds()
	assert.Equal(t, 1.0, a)
	assert.Equal(t, 5.0, b)
	assert.InDelta(t, 0.5, d.Cdf(3), 1e-12)
	// beta(2,2) has density 1.5 at its center; scaled by 1/4
	assert.InDelta(t, 1.5/4, d.Pdf(3), 1e-12)
	median, err := d.Quantile(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, median, 1e-9)
	assert.InDelta(t, 3.0, d.Mean(), 1e-12)
}

func TestScalar_DiscreteKernels(t *testing.T) {
	tests := map[string]struct {
		typ      Type
		params   Parameters
		x        float64
		pdf, cdf float64
	}{
		"poisson":   {Poisson, Parameters{"mu": 2}, 1, 2 * math.Exp(-2), 3 * math.Exp(-2)},
		"binomial":  {Binomial, Parameters{"n": 4, "p": 0.5}, 2, 6.0 / 16, 11.0 / 16},
		"bernoulli": {Bernoulli, Parameters{"p": 0.3}, 0, 0.7, 0.7},
		"geometric": {Geometric, Parameters{"p": 0.5}, 2, 0.125, 0.875},
		"constant":  {Constant, Parameters{"value": 7}, 7, 1, 1},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := New(test.typ, test.params)
			require.NoError(t, err)
			assert.True(t, d.IsDiscrete())
			assert.InDelta(t, test.pdf, d.Pdf(test.x), 1e-12)
			assert.InDelta(t, test.cdf, d.Cdf(test.x), 1e-12)
			assert.Equal(t, 0.0, d.Pdf(test.x+0.5))
			q, err := d.Quantile(d.Cdf(test.x))
			require.NoError(t, err)
			assert.Equal(t, test.x, q)
		})
	}
}

func TestScalar_DiscreteQuantileIsSmallestCount(t *testing.T) {
	d, err := New(Poisson, Parameters{"mu": 3})
	require.NoError(t, err)
	for _, p := range []float64{0.01, 0.2, 0.5, 0.9, 0.999} {
		q, err := d.Quantile(p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d.Cdf(q), p)
		if q > 0 {
			assert.Less(t, d.Cdf(q-1), p)
		}
	}
}

func TestScalar_InvalidParametersAreConfigErrors(t *testing.T) {
	tests := map[string]struct {
		typ    Type
		params Parameters
	}{
		"negative sigma":      {Normal, Parameters{"mu": 0, "sigma": -1}},
		"missing parameter":   {Normal, Parameters{"mu": 0}},
		"unknown parameter":   {Normal, Parameters{"mu": 0, "sigma": 1, "nu": 3}},
		"inverted bounds":     {Normal, Parameters{"mu": 0, "sigma": 1, XMin: 2, XMax: 1}},
		"empty uniform":       {Uniform, Parameters{XMin: 1, XMax: 1}},
		"negative lambda":     {Exponential, Parameters{"lambda": -1}},
		"zero weibull k":      {Weibull, Parameters{"k": 0, "lambda": 1}},
		"fractional n":        {Binomial, Parameters{"n": 2.5, "p": 0.5}},
		"probability above 1": {Bernoulli, Parameters{"p": 1.5}},
		"zero geometric p":    {Geometric, Parameters{"p": 0}},
		"peak outside":        {Triangular, Parameters{"xPeak": 5, "lowerBound": 0, "upperBound": 1}},
		"no mass":             {Exponential, Parameters{"lambda": 1, "low": 5, XMin: 0, XMax: 5}},
		"unknown type":        {Type("Cauchy"), Parameters{}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(test.typ, test.params)
			require.Error(t, err)
			assert.True(t, errkind.Is(err, errkind.Config), "unexpected error %v", err)
		})
	}
}

func TestScalar_QuantileRejectsInvalidProbability(t *testing.T) {
	d, err := New(Uniform, Parameters{XMin: 0, XMax: 1})
	require.NoError(t, err)
	for _, p := range []float64{-0.1, 1.1, math.NaN()} {
		_, err := d.Quantile(p)
		assert.True(t, errkind.Is(err, errkind.Domain))
	}
}

func TestScalar_Forcing(t *testing.T) {
	d, err := New(Uniform, Parameters{XMin: 0, XMax: 10}, WithForcedValue(3))
	require.NoError(t, err)
	v, err := d.Random(0.9)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	d, err = New(Uniform, Parameters{XMin: 0, XMax: 10}, WithForcedProbability(0.25))
	require.NoError(t, err)
	v, err = d.Random(0.9)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 1e-12)
	mode, p := d.Forcing()
	assert.Equal(t, ForcedProbability, mode)
	assert.Equal(t, 0.25, p)

	d, err = New(Uniform, Parameters{XMin: 0, XMax: 10})
	require.NoError(t, err)
	v, err = d.Random(0.9)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, v, 1e-12)

	_, err = New(Uniform, Parameters{XMin: 0, XMax: 10}, WithForcedProbability(2))
	assert.True(t, errkind.Is(err, errkind.Config))
}

func TestScalar_UntruncatedModeIgnoresBounds(t *testing.T) {
	d, err := New(Normal, Parameters{"mu": 0, "sigma": 1, XMin: -1, XMax: 1}, WithTruncation(Untruncated))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d.Cdf(0), 1e-12)
	assert.Greater(t, d.Pdf(2), 0.0)
	assert.Equal(t, d.UntruncatedCdf(1.5), d.Cdf(1.5))
}

func TestScalar_UpdateParameterRebuildsAndRollsBack(t *testing.T) {
	d, err := New(Normal, Parameters{"mu": 0, "sigma": 1})
	require.NoError(t, err)
	require.NoError(t, d.UpdateParameter("mu", 2))
	mu, err := d.Parameter("mu")
	require.NoError(t, err)
	assert.Equal(t, 2.0, mu)
	assert.InDelta(t, 0.5, d.Cdf(2), 1e-12)

	err = d.UpdateParameter("sigma", -3)
	assert.True(t, errkind.Is(err, errkind.Config))
	sigma, err := d.Parameter("sigma")
	require.NoError(t, err)
	assert.Equal(t, 1.0, sigma)
	assert.InDelta(t, 0.5, d.Cdf(2), 1e-12)

	err = d.UpdateParameter("nu", 1)
	assert.True(t, errkind.Is(err, errkind.Lookup))
	assert.Equal(t, []string{"mu", "sigma", XMax, XMin}, d.VariableNames())
}

func TestScalar_Moments(t *testing.T) {
	d, err := New(Gamma, Parameters{"k": 3, "theta": 2, "low": 1})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, d.Mean(), 1e-12)
	assert.InDelta(t, math.Sqrt(12), d.StdDev(), 1e-12)
	assert.InDelta(t, 5.0, d.Mode(), 1e-12)
	assert.InDelta(t, 0.5, d.Cdf(d.Median()), 1e-9)

	b, err := New(Bernoulli, Parameters{"p": 0.7})
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.Mode())
	assert.InDelta(t, math.Sqrt(0.21), b.StdDev(), 1e-12)
}

func TestScalar_Hazard(t *testing.T) {
	d, err := New(Exponential, Parameters{"lambda": 0.5})
	require.NoError(t, err)
	h, err := d.Hazard(3)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, h, 1e-9)

	c, err := New(Constant, Parameters{"value": 1})
	require.NoError(t, err)
	_, err = c.Hazard(1)
	assert.True(t, errkind.Is(err, errkind.NotImplemented))
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("Weibull")
	require.NoError(t, err)
	assert.Equal(t, Weibull, typ)
	_, err = ParseType("weibull")
	assert.True(t, errkind.Is(err, errkind.Config))
	assert.Len(t, Types(), 15)
}
