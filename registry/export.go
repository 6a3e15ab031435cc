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

package registry

import (
	"math"

	"github.com/0xsoniclabs/crow/dataio"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/lattice"
)

// tailProbability trims unbounded scalar supports for tabulation.
const tailProbability = 1e-9

// CdfGrid tabulates the cdf of a distribution on a uniform grid with
// CdfDivisions intervals per axis spanning its bounds.
func (r *Registry) CdfGrid(alias string) (*dataio.Ordered, error) {
	if s, found := r.scalars[alias]; found {
		lo, hi := s.Bounds()
		var err error
		if math.IsInf(lo, 0) {
			if lo, err = s.Quantile(tailProbability); err != nil {
				return nil, err
			}
		}
		if math.IsInf(hi, 0) {
			if hi, err = s.Quantile(1 - tailProbability); err != nil {
				return nil, err
			}
		}
		return r.tabulate([]float64{lo}, []float64{hi}, func(x []float64) (float64, error) {
			return r.Cdf(alias, x[0])
		})
	}
	d, err := r.ND(alias)
	if err != nil {
		return nil, err
	}
	lower, upper := d.Bounds()
	return r.tabulate(lower, upper, func(x []float64) (float64, error) {
		return r.CdfND(alias, x)
	})
}

func (r *Registry) tabulate(lower, upper []float64, cdf func([]float64) (float64, error)) (*dataio.Ordered, error) {
	n := r.cfg.CdfDivisions
	shape := lattice.Uniform(len(lower), n+1)
	size, err := lattice.Size(shape, r.cfg.MaxSplineNodes)
	if err != nil {
		return nil, err
	}
	o := &dataio.Ordered{Axes: make([][]float64, len(lower)), Values: make([]float64, size)}
	for i := range o.Axes {
		if !(lower[i] < upper[i]) {
			return nil, errkind.Domainf("axis %d has an empty range [%v,%v]", i, lower[i], upper[i])
		}
		o.Axes[i] = make([]float64, n+1)
		for k := range o.Axes[i] {
			o.Axes[i][k] = lower[i] + (upper[i]-lower[i])*float64(k)/float64(n)
		}
	}
	x := make([]float64, len(lower))
	err = lattice.ForEach(shape, func(index []int) error {
		for i, k := range index {
			x[i] = o.Axes[i][k]
		}
		v, err := cdf(x)
		o.Values[lattice.Flatten(index, shape)] = v
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// SampleSet draws count points of an N-dimensional distribution together
// with the density at each point. The density is NaN where it is undefined,
// e.g. for a reduced-rank normal.
func (r *Registry) SampleSet(alias string, count int) (*dataio.Scattered, error) {
	if count < 0 {
		return nil, errkind.Configf("sample count must not be negative, got %d", count)
	}
	set := &dataio.Scattered{Points: make([][]float64, count), Values: make([]float64, count)}
	for i := range count {
		x, err := r.RandomND(alias)
		if err != nil {
			return nil, err
		}
		p, err := r.PdfND(alias, x)
		if errkind.Is(err, errkind.Domain) {
			p, err = math.NaN(), nil
		}
		if err != nil {
			return nil, err
		}
		set.Points[i], set.Values[i] = x, p
	}
	return set, nil
}
