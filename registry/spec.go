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
	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/dataio"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/ndist"
	"github.com/0xsoniclabs/crow/random"
)

// NDSpec describes an N-dimensional distribution to build. Data given
// inline takes precedence over data files.
type NDSpec struct {
	Type  ndist.Type
	Alias string

	// Gridded or scattered data of the interpolated families.
	Kind     ndist.DataKind
	Axes     [][]float64 // NDCartesianSpline
	Points   [][]float64 // NDInverseWeight, NDScatteredMS
	Values   []float64
	P        float64 // Minkowski exponent of the scattered families
	DataFile string  // ordered or scattered data file

	// Multivariate normal.
	Mu             []float64
	Covariance     []float64 // row-major N×N
	CovarianceFile string
	Rank           int // zero keeps the full covariance
	CovType        ndist.CovarianceType
}

func (s *NDSpec) build(cfg *config.Config, src random.Source) (ndist.Distribution, error) {
	switch s.Type {
	case ndist.CartesianSplineType:
		if err := s.loadOrdered(); err != nil {
			return nil, err
		}
		d, err := ndist.NewCartesianSpline(s.Kind, s.Axes, s.Values, cfg, src)
		if err != nil {
			return nil, err
		}
		if err := d.FitPdf(); err != nil {
			return nil, err
		}
		if err := d.DeriveCdf(); err != nil {
			return nil, err
		}
		return d, nil
	case ndist.InverseWeightType, ndist.ScatteredMSType:
		if err := s.loadScattered(); err != nil {
			return nil, err
		}
		p := s.P
		if p == 0 {
			p = 2
		}
		if s.Type == ndist.InverseWeightType {
			return ndist.NewInverseWeight(s.Kind, s.Points, s.Values, p, cfg, src)
		}
		return ndist.NewScatteredMS(s.Kind, s.Points, s.Values, p, cfg, src)
	case ndist.MultivariateNormalType:
		if s.Covariance == nil && s.CovarianceFile != "" {
			cov, err := dataio.ReadVector(s.CovarianceFile)
			if err != nil {
				return nil, err
			}
			s.Covariance = cov
		}
		var opts []ndist.MVNOption
		if s.Rank > 0 {
			opts = append(opts, ndist.WithRank(s.Rank, s.CovType))
		}
		return ndist.NewMultivariateNormal(s.Mu, s.Covariance, cfg, src, opts...)
	}
	return nil, errkind.Configf("unknown multivariate distribution type %q", s.Type)
}

func (s *NDSpec) loadOrdered() error {
	if s.Axes != nil || s.DataFile == "" {
		return nil
	}
	o, err := dataio.ReadOrdered(s.DataFile)
	if err != nil {
		return err
	}
	s.Axes, s.Values = o.Axes, o.Values
	return nil
}

func (s *NDSpec) loadScattered() error {
	if s.Points != nil || s.DataFile == "" {
		return nil
	}
	sc, err := dataio.ReadScattered(s.DataFile)
	if err != nil {
		return err
	}
	s.Points, s.Values = sc.Points, sc.Values
	return nil
}
