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
	"math"

	"github.com/0xsoniclabs/crow/errkind"
	"gonum.org/v1/gonum/floats"
)

// scattered holds a validated set of scattered samples.
type scattered struct {
	points [][]float64
	values []float64
	p      float64 // Minkowski exponent of the distance
	lower  []float64
	upper  []float64
}

func newScattered(points [][]float64, values []float64, p float64) (scattered, error) {
	if len(points) == 0 || len(points) != len(values) {
		return scattered{}, errkind.Configf("scattered data needs matching non-empty points and values, got %d and %d", len(points), len(values))
	}
	if !(p >= 1) {
		return scattered{}, errkind.Configf("Minkowski exponent must be at least 1, got %v", p)
	}
	dim := len(points[0])
	if dim == 0 {
		return scattered{}, errkind.Configf("scattered points need at least one coordinate")
	}
	s := scattered{
		points: make([][]float64, len(points)),
		values: append([]float64(nil), values...),
		p:      p,
		lower:  append([]float64(nil), points[0]...),
		upper:  append([]float64(nil), points[0]...),
	}
	for i, x := range points {
		if len(x) != dim {
			return scattered{}, errkind.Configf("sample %d has dimension %d, expected %d", i, len(x), dim)
		}
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) || floats.HasNaN(x) {
			return scattered{}, errkind.Configf("sample %d is not finite", i)
		}
		s.points[i] = append([]float64(nil), x...)
		for j, v := range x {
			s.lower[j] = math.Min(s.lower[j], v)
			s.upper[j] = math.Max(s.upper[j], v)
		}
	}
	return s, nil
}

func (s *scattered) checkDim(x []float64) error {
	if len(x) != len(s.lower) {
		return errkind.Configf("point has dimension %d, samples have %d", len(x), len(s.lower))
	}
	return nil
}

// Dim returns the dimension of the sample points.
func (s *scattered) Dim() int { return len(s.lower) }

// Bounds returns the bounding box of the sample points.
func (s *scattered) Bounds() ([]float64, []float64) { return s.lower, s.upper }

// Samples returns the sample points and values.
func (s *scattered) Samples() ([][]float64, []float64) { return s.points, s.values }

// InverseDistance interpolates scattered samples by inverse distance
// weighting with weights 1/d^(dim+1) under a Minkowski distance.
type InverseDistance struct {
	scattered
}

// NewInverseDistance creates an interpolator using the Minkowski distance
// of exponent p.
func NewInverseDistance(points [][]float64, values []float64, p float64) (*InverseDistance, error) {
	s, err := newScattered(points, values, p)
	if err != nil {
		return nil, err
	}
	return &InverseDistance{scattered: s}, nil
}

// Evaluate interpolates at x. A sample at distance zero is returned as is.
func (d *InverseDistance) Evaluate(x []float64) (float64, error) {
	if err := d.checkDim(x); err != nil {
		return 0, err
	}
	exponent := float64(d.Dim() + 1)
	var weighted, total float64
	for i, point := range d.points {
		dist := floats.Distance(point, x, d.p)
		if dist == 0 {
			return d.values[i], nil
		}
		w := math.Pow(dist, -exponent)
		weighted += w * d.values[i]
		total += w
	}
	if total == 0 || math.IsInf(total, 0) {
		return 0, errkind.Domainf("inverse distance weights at %v are degenerate", x)
	}
	return weighted / total, nil
}
