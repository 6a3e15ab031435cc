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

// Package ndist provides N-dimensional distributions defined by gridded or
// scattered data and the multivariate normal distribution.
package ndist

import (
	"fmt"
	"math"

	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/distribution"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/random"
	"github.com/0xsoniclabs/crow/sampler"
)

// Type is the tag of an N-dimensional distribution family.
type Type string

const (
	CartesianSplineType    Type = "NDCartesianSpline"
	InverseWeightType      Type = "NDInverseWeight"
	ScatteredMSType        Type = "NDScatteredMS"
	MultivariateNormalType Type = "MultivariateNormal"
)

// DataKind tells whether tabulated values are a density or a cdf.
type DataKind int

const (
	PdfData DataKind = iota
	CdfData
)

func (k DataKind) String() string {
	switch k {
	case PdfData:
		return "pdf"
	case CdfData:
		return "cdf"
	}
	return fmt.Sprintf("DataKind(%d)", int(k))
}

// ParseDataKind converts "pdf" or "cdf" into a data kind.
func ParseDataKind(s string) (DataKind, error) {
	switch s {
	case "pdf", "PDF":
		return PdfData, nil
	case "cdf", "CDF":
		return CdfData, nil
	}
	return 0, errkind.Configf("unknown data kind %q, expected pdf or cdf", s)
}

// Names of the parameters common to all N-dimensional distributions.
const (
	ParamDimensionality = "dimensionality"
	ParamTolerance      = "tolerance"
	ParamDivisions      = "divisions"
	// ParamWeightRule selects the cell weight of the grid sampler:
	// 0 is the rectangle mass, 1 the corner spread.
	ParamWeightRule = "weightRule"
)

// Distribution is an N-dimensional distribution.
type Distribution interface {
	Type() Type
	Dim() int
	// Bounds returns the box searched by the grid sampler.
	Bounds() ([]float64, []float64)
	Pdf(x []float64) (float64, error)
	Cdf(x []float64) (float64, error)
	// InverseCdf maps two uniform draws onto a point; see sampler.Grid.
	InverseCdf(f, g float64) ([]float64, error)
	// Sample draws a point using src for every random decision.
	Sample(src random.Source) ([]float64, error)
	// Marginal is the cdf along one axis with all other axes at their upper bound.
	Marginal(x float64, axis int) (float64, error)
	InverseMarginal(p float64, axis int) (float64, error)
	Parameters() distribution.Parameters
	UpdateParameter(name string, value float64) error
}

// base carries the sampler and the tolerances shared by all N-dimensional
// distributions.
type base struct {
	grid            *sampler.Grid
	src             random.Source
	cdfTolerance    float64
	newtonTolerance float64
	lower, upper    []float64
}

func newBase(cfg *config.Config, src random.Source) (base, error) {
	grid, err := sampler.NewGrid(cfg)
	if err != nil {
		return base{}, err
	}
	if src == nil {
		return base{}, errkind.Configf("random source is required")
	}
	return base{
		grid:            grid,
		src:             src,
		cdfTolerance:    cfg.CdfTolerance,
		newtonTolerance: cfg.NewtonTolerance,
	}, nil
}

func (b *base) Dim() int { return len(b.lower) }

func (b *base) Bounds() ([]float64, []float64) { return b.lower, b.upper }

func (b *base) Parameters() distribution.Parameters {
	tolerance, divisions := b.grid.Precision()
	return distribution.Parameters{
		ParamDimensionality: float64(len(b.lower)),
		ParamTolerance:      tolerance,
		ParamDivisions:      float64(divisions),
		ParamWeightRule:     float64(b.grid.WeightRule()),
	}
}

// UpdateParameter changes the precision of the grid sampler.
func (b *base) UpdateParameter(name string, value float64) error {
	tolerance, divisions := b.grid.Precision()
	switch name {
	case ParamTolerance:
		return b.grid.SetPrecision(value, divisions)
	case ParamDivisions:
		if value != math.Trunc(value) {
			return errkind.Configf("grid divisions must be an integer, got %v", value)
		}
		return b.grid.SetPrecision(tolerance, int(value))
	case ParamWeightRule:
		if value != math.Trunc(value) {
			return errkind.Configf("weight rule must be an integer, got %v", value)
		}
		return b.grid.SetWeightRule(sampler.WeightRule(value))
	case ParamDimensionality:
		return errkind.Configf("parameter %q is read-only", name)
	}
	return errkind.Lookupf("no parameter %q", name)
}

func (b *base) checkPoint(x []float64) error {
	if len(x) != len(b.lower) {
		return errkind.Configf("point has dimension %d, distribution has %d", len(x), len(b.lower))
	}
	return nil
}

func (b *base) checkAxis(axis int) error {
	if axis < 0 || axis >= len(b.lower) {
		return errkind.Configf("axis %d out of range [0,%d)", axis, len(b.lower))
	}
	return nil
}

func (b *base) inside(x []float64) bool {
	for i, v := range x {
		if v < b.lower[i] || v > b.upper[i] {
			return false
		}
	}
	return true
}

// probability accepts interpolated cdf values that overshoot [0,1] by at
// most the cdf tolerance and clamps them.
func (b *base) probability(v float64, x []float64) (float64, error) {
	if math.IsNaN(v) || v < -b.cdfTolerance || v > 1+b.cdfTolerance {
		return 0, errkind.Domainf("cdf value %v at %v is outside [0,1]", v, x)
	}
	return math.Min(math.Max(v, 0), 1), nil
}

// marginalPoint places x on axis and all other coordinates at their upper bound.
func (b *base) marginalPoint(x float64, axis int) []float64 {
	point := append([]float64(nil), b.upper...)
	point[axis] = x
	return point
}

func (b *base) inverseCdf(cdf sampler.CDF, f, g float64, src random.Source) ([]float64, error) {
	if !(f >= 0 && f <= 1) || !(g >= 0 && g <= 1) {
		return nil, errkind.Domainf("draws (%v,%v) outside [0,1]", f, g)
	}
	return b.grid.Sample(cdf, b.lower, b.upper, g, f, src)
}
