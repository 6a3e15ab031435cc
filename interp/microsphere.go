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
	"github.com/0xsoniclabs/crow/random"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// MicroSphere interpolates scattered samples by illuminating the facets of
// a unit sphere centered at the query point. Every sample lights the
// facets facing it with brightness cos(angle)/d^(dim+1); each facet keeps
// its brightest sample and the estimate is the brightness-weighted mean
// of the kept samples.
type MicroSphere struct {
	scattered
	normals [][]float64
}

// NewMicroSphere creates an interpolator whose sphere has the given number
// of facets with random orientations drawn from src.
func NewMicroSphere(points [][]float64, values []float64, p float64, directions int, src random.Source) (*MicroSphere, error) {
	s, err := newScattered(points, values, p)
	if err != nil {
		return nil, err
	}
	if directions < 1 {
		return nil, errkind.Configf("microsphere needs at least one direction, got %d", directions)
	}
	m := &MicroSphere{scattered: s, normals: make([][]float64, directions)}
	for i := range m.normals {
		m.normals[i] = randomDirection(s.Dim(), src)
	}
	return m, nil
}

// randomDirection draws a point uniformly distributed on the unit sphere
// by normalizing a vector of standard normal components.
func randomDirection(dim int, src random.Source) []float64 {
	v := make([]float64, dim)
	for {
		for i := range v {
			u := src.Float64()
			for u == 0 {
				u = src.Float64()
			}
			v[i] = distuv.UnitNormal.Quantile(u)
		}
		if norm := floats.Norm(v, 2); norm > 0 {
			floats.Scale(1/norm, v)
			return v
		}
	}
}

// Directions returns the facet normals.
func (m *MicroSphere) Directions() [][]float64 { return m.normals }

// Evaluate interpolates at x. A sample at distance zero is returned as is.
func (m *MicroSphere) Evaluate(x []float64) (float64, error) {
	if err := m.checkDim(x); err != nil {
		return 0, err
	}
	exponent := float64(m.Dim() + 1)
	illumination := make([]float64, len(m.normals))
	lit := make([]float64, len(m.normals))
	diff := make([]float64, len(x))
	for i, point := range m.points {
		floats.SubTo(diff, point, x)
		dist := floats.Distance(point, x, m.p)
		if dist == 0 {
			return m.values[i], nil
		}
		norm := floats.Norm(diff, 2)
		weight := math.Pow(dist, -exponent)
		for j, n := range m.normals {
			cos := floats.Dot(n, diff) / norm
			if cos <= 0 {
				continue
			}
			if b := cos * weight; b > illumination[j] {
				illumination[j] = b
				lit[j] = m.values[i]
			}
		}
	}
	var weighted, total float64
	for j, b := range illumination {
		weighted += b * lit[j]
		total += b
	}
	if total == 0 {
		return 0, errkind.Domainf("no microsphere facet is lit at %v", x)
	}
	return weighted / total, nil
}
