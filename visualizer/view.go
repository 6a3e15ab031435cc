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

package visualizer

import (
	"sync"

	"github.com/0xsoniclabs/crow/distribution"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/registry"
	"github.com/cockroachdb/errors"
)

// number of points of a marginal cdf curve
const marginalPoints = 100

type scalarView struct {
	typ      string
	pdf, cdf [][2]float64
}

type ndView struct {
	typ       string
	marginals [][][2]float64 // one curve per axis
	samples   [][2]float64   // first two coordinates of random samples
}

type viewState struct {
	aliases []string
	scalars map[string]*scalarView
	nds     map[string]*ndView
	skipped map[string]string // alias -> reason
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(reg *registry.Registry, samples int) error {
	if reg == nil {
		return errors.New("visualizer: registry is nil")
	}
	derived, err := buildViewState(reg, samples)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func buildViewState(reg *registry.Registry, samples int) (*viewState, error) {
	view := &viewState{
		aliases: reg.DistributionNames(),
		scalars: make(map[string]*scalarView),
		nds:     make(map[string]*ndView),
		skipped: make(map[string]string),
	}
	for _, alias := range view.aliases {
		if s, err := reg.Scalar(alias); err == nil {
			sv, err := buildScalarView(s)
			if errkind.Is(err, errkind.Domain) {
				view.skipped[alias] = err.Error()
				continue
			}
			if err != nil {
				return nil, errors.Wrapf(err, "visualizer: distribution %q", alias)
			}
			view.scalars[alias] = sv
			continue
		}
		nv, err := buildNDView(reg, alias, samples)
		if err != nil {
			return nil, errors.Wrapf(err, "visualizer: distribution %q", alias)
		}
		view.nds[alias] = nv
	}
	return view, nil
}

// buildScalarView tabulates the cdf of s and evaluates the density at the
// retained points.
func buildScalarView(s *distribution.Scalar) (*scalarView, error) {
	ecdf, err := distribution.ToECDF(s, 10*distribution.NumECDFPoints)
	if err != nil {
		return nil, err
	}
	view := &scalarView{typ: string(s.Type())}
	width := ecdf.Upper - ecdf.Lower
	for _, p := range ecdf.Points {
		x := ecdf.Lower + p[0]*width
		view.cdf = append(view.cdf, [2]float64{x, p[1]})
		view.pdf = append(view.pdf, [2]float64{x, s.Pdf(x)})
	}
	return view, nil
}

func buildNDView(reg *registry.Registry, alias string, samples int) (*ndView, error) {
	d, err := reg.ND(alias)
	if err != nil {
		return nil, err
	}
	view := &ndView{typ: string(d.Type())}
	lower, upper := d.Bounds()
	for axis := range lower {
		curve := make([][2]float64, 0, marginalPoints+1)
		for i := 0; i <= marginalPoints; i++ {
			x := lower[axis] + float64(i)/marginalPoints*(upper[axis]-lower[axis])
			p, err := reg.MarginalND(alias, x, axis)
			if err != nil {
				return nil, err
			}
			curve = append(curve, [2]float64{x, p})
		}
		view.marginals = append(view.marginals, curve)
	}
	if len(lower) < 2 {
		return view, nil
	}
	for i := 0; i < samples; i++ {
		x, err := reg.RandomND(alias)
		if err != nil {
			return nil, err
		}
		view.samples = append(view.samples, [2]float64{x[0], x[1]})
	}
	return view, nil
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, errors.New("visualizer: distributions not initialised")
	}
	return currentState, nil
}
