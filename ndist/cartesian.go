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
	"math"

	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/interp"
	"github.com/0xsoniclabs/crow/random"
	"github.com/0xsoniclabs/crow/sampler"
)

// CartesianSpline is a distribution tabulated on a rectilinear grid and
// interpolated by tensor-product cubic splines. The spline of the other
// representation is built explicitly with FitPdf and DeriveCdf.
type CartesianSpline struct {
	base
	kind     DataKind
	pdf, cdf *interp.Spline
}

// NewCartesianSpline fits the tabulated values, which are either a density
// or a cdf on the grid spanned by axes.
func NewCartesianSpline(kind DataKind, axes [][]float64, values []float64, cfg *config.Config, src random.Source) (*CartesianSpline, error) {
	b, err := newBase(cfg, src)
	if err != nil {
		return nil, err
	}
	s, err := interp.NewSpline(axes, values)
	if err != nil {
		return nil, err
	}
	b.lower, b.upper = s.Bounds()
	d := &CartesianSpline{base: b, kind: kind}
	switch kind {
	case PdfData:
		d.pdf = s
	case CdfData:
		if err := s.CheckRange(0, 1, d.cdfTolerance); err != nil {
			return nil, err
		}
		d.cdf = s
	default:
		return nil, errkind.Configf("unknown data kind %v", kind)
	}
	return d, nil
}

// FitPdf makes the density available. For cdf data the density is fitted
// to the mixed partial derivative of the cdf spline at the grid nodes.
func (d *CartesianSpline) FitPdf() error {
	if d.pdf != nil {
		return nil
	}
	pdf, err := d.cdf.DerivativeSpline()
	if err != nil {
		return err
	}
	d.pdf = pdf
	return nil
}

// DeriveCdf makes the cdf available. For density data the cdf is fitted to
// the integral of the density spline at the grid nodes.
func (d *CartesianSpline) DeriveCdf() error {
	if d.cdf != nil {
		return nil
	}
	cdf, err := d.pdf.IntegralSpline()
	if err != nil {
		return err
	}
	if err := cdf.CheckRange(0, 1, d.cdfTolerance); err != nil {
		return err
	}
	d.cdf = cdf
	return nil
}

func (d *CartesianSpline) Type() Type { return CartesianSplineType }

// Kind returns the representation of the tabulated values.
func (d *CartesianSpline) Kind() DataKind { return d.kind }

// Spline returns the spline of the tabulated values.
func (d *CartesianSpline) Spline() *interp.Spline {
	if d.kind == PdfData {
		return d.pdf
	}
	return d.cdf
}

// Pdf evaluates the density spline. It is zero outside the grid and
// negative overshoots of the interpolant are cut off.
func (d *CartesianSpline) Pdf(x []float64) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	if d.pdf == nil {
		return 0, errkind.Configf("density spline not fitted, FitPdf must be called first")
	}
	if !d.inside(x) {
		return 0, nil
	}
	v, err := d.pdf.Evaluate(x)
	if err != nil {
		return 0, err
	}
	return math.Max(v, 0), nil
}

// Cdf evaluates the cdf spline.
func (d *CartesianSpline) Cdf(x []float64) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	if d.cdf == nil {
		return 0, errkind.Configf("cdf spline not derived, DeriveCdf must be called first")
	}
	v, err := d.cdf.Evaluate(x)
	if err != nil {
		return 0, err
	}
	return d.probability(v, x)
}

func (d *CartesianSpline) InverseCdf(f, g float64) ([]float64, error) {
	return d.inverseCdf(sampler.CDFFunc(d.Cdf), f, g, d.src)
}

func (d *CartesianSpline) Sample(src random.Source) ([]float64, error) {
	return d.inverseCdf(sampler.CDFFunc(d.Cdf), src.Float64(), src.Float64(), src)
}

func (d *CartesianSpline) Marginal(x float64, axis int) (float64, error) {
	if err := d.checkAxis(axis); err != nil {
		return 0, err
	}
	return d.Cdf(d.marginalPoint(x, axis))
}

// InverseMarginal inverts Marginal by Newton-Raphson iteration on the cdf
// spline.
func (d *CartesianSpline) InverseMarginal(p float64, axis int) (float64, error) {
	if err := d.checkAxis(axis); err != nil {
		return 0, err
	}
	if d.cdf == nil {
		return 0, errkind.Configf("cdf spline not derived, DeriveCdf must be called first")
	}
	orders := make([]int, d.Dim())
	orders[axis] = 1
	marginal := func(x float64) (float64, error) { return d.Marginal(x, axis) }
	density := func(x float64) (float64, error) {
		return d.cdf.PartialDerivative(d.marginalPoint(x, axis), orders)
	}
	return invert(marginal, density, p, d.lower[axis], d.upper[axis], d.newtonTolerance)
}
