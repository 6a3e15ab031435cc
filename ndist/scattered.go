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
	"github.com/0xsoniclabs/crow/lattice"
	"github.com/0xsoniclabs/crow/random"
	"github.com/0xsoniclabs/crow/sampler"
)

// relative step of the central differences turning a cdf into a density
const differenceStep = 1e-3

// interpolator evaluates scattered data.
type interpolator interface {
	Evaluate(x []float64) (float64, error)
	Bounds() ([]float64, []float64)
}

// Scattered is a distribution given by values at scattered points,
// interpolated by inverse distance weighting or by a microsphere.
type Scattered struct {
	base
	typ       Type
	kind      DataKind
	interp    interpolator
	divisions int // quadrature cells per axis for cdfs of density data
}

// NewInverseWeight creates a distribution interpolating the samples by
// inverse distance weighting under the Minkowski distance of exponent p.
func NewInverseWeight(kind DataKind, points [][]float64, values []float64, p float64, cfg *config.Config, src random.Source) (*Scattered, error) {
	idw, err := interp.NewInverseDistance(points, values, p)
	if err != nil {
		return nil, err
	}
	return newScattered(InverseWeightType, kind, idw, cfg, src)
}

// NewScatteredMS creates a distribution interpolating the samples with a
// microsphere whose facet directions are drawn from src.
func NewScatteredMS(kind DataKind, points [][]float64, values []float64, p float64, cfg *config.Config, src random.Source) (*Scattered, error) {
	if src == nil {
		return nil, errkind.Configf("random source is required")
	}
	ms, err := interp.NewMicroSphere(points, values, p, cfg.MicroSphereDirections, src)
	if err != nil {
		return nil, err
	}
	return newScattered(ScatteredMSType, kind, ms, cfg, src)
}

func newScattered(typ Type, kind DataKind, in interpolator, cfg *config.Config, src random.Source) (*Scattered, error) {
	if kind != PdfData && kind != CdfData {
		return nil, errkind.Configf("unknown data kind %v", kind)
	}
	b, err := newBase(cfg, src)
	if err != nil {
		return nil, err
	}
	b.lower, b.upper = in.Bounds()
	for i := range b.lower {
		if !(b.lower[i] < b.upper[i]) {
			return nil, errkind.Configf("samples do not span axis %d", i)
		}
	}
	if _, err := lattice.Size(lattice.Uniform(len(b.lower), cfg.CdfDivisions), cfg.MaxGridCells); err != nil {
		return nil, err
	}
	return &Scattered{base: b, typ: typ, kind: kind, interp: in, divisions: cfg.CdfDivisions}, nil
}

func (d *Scattered) Type() Type { return d.typ }

// Kind returns the representation of the sample values.
func (d *Scattered) Kind() DataKind { return d.kind }

// Pdf returns the interpolated density. For cdf samples it is the mixed
// central difference of the interpolated cdf.
func (d *Scattered) Pdf(x []float64) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	if !d.inside(x) {
		return 0, nil
	}
	if d.kind == PdfData {
		v, err := d.interp.Evaluate(x)
		return math.Max(v, 0), err
	}
	dim := d.Dim()
	step := make([]float64, dim)
	volume := 1.0
	for i := range step {
		step[i] = differenceStep * (d.upper[i] - d.lower[i])
		volume *= step[i]
	}
	corner := make([]float64, dim)
	sum := 0.0
	for c := 0; c < 1<<dim; c++ {
		sign := 1.0
		for i := range corner {
			if (c>>i)&1 == 1 {
				corner[i] = x[i] + step[i]/2
			} else {
				corner[i] = x[i] - step[i]/2
				sign = -sign
			}
		}
		v, err := d.interp.Evaluate(corner)
		if err != nil {
			return 0, err
		}
		sum += sign * v
	}
	return math.Max(sum/volume, 0), nil
}

// Cdf returns the interpolated cdf. For density samples it integrates the
// interpolated density from the lower corner with the midpoint rule.
func (d *Scattered) Cdf(x []float64) (float64, error) {
	if err := d.checkPoint(x); err != nil {
		return 0, err
	}
	if d.kind == CdfData {
		v, err := d.interp.Evaluate(x)
		if err != nil {
			return 0, err
		}
		return d.probability(v, x)
	}
	dim := d.Dim()
	width := make([]float64, dim)
	volume := 1.0
	for i, v := range x {
		if v <= d.lower[i] {
			return 0, nil
		}
		width[i] = (math.Min(v, d.upper[i]) - d.lower[i]) / float64(d.divisions)
		volume *= width[i]
	}
	mid := make([]float64, dim)
	sum := 0.0
	err := lattice.ForEach(lattice.Uniform(dim, d.divisions), func(index []int) error {
		for i, k := range index {
			mid[i] = d.lower[i] + (float64(k)+0.5)*width[i]
		}
		v, err := d.interp.Evaluate(mid)
		if err != nil {
			return err
		}
		sum += math.Max(v, 0)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return d.probability(sum*volume, x)
}

func (d *Scattered) InverseCdf(f, g float64) ([]float64, error) {
	return d.inverseCdf(sampler.CDFFunc(d.Cdf), f, g, d.src)
}

func (d *Scattered) Sample(src random.Source) ([]float64, error) {
	return d.inverseCdf(sampler.CDFFunc(d.Cdf), src.Float64(), src.Float64(), src)
}

func (d *Scattered) Marginal(x float64, axis int) (float64, error) {
	if err := d.checkAxis(axis); err != nil {
		return 0, err
	}
	return d.Cdf(d.marginalPoint(x, axis))
}

func (d *Scattered) InverseMarginal(float64, int) (float64, error) {
	return 0, errkind.NotImplementedf("inverse marginal of %v distribution", d.typ)
}
