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

// Package sampler draws points from N-D distributions that only offer
// point evaluation of their cdf.
package sampler

import (
	"math"

	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/lattice"
	"github.com/0xsoniclabs/crow/random"
)

// CDF is a cumulative distribution evaluated at a point.
type CDF interface {
	Cdf(x []float64) (float64, error)
}

// CDFFunc adapts a function to the CDF interface.
type CDFFunc func(x []float64) (float64, error)

func (f CDFFunc) Cdf(x []float64) (float64, error) { return f(x) }

// WeightRule selects how the probability weight of a cell is estimated
// from the cdf at its corners.
type WeightRule int

const (
	// RectangleMass is the inclusion-exclusion sum of the corner values,
	// the exact cell probability of the cdf.
	RectangleMass WeightRule = iota
	// CornerSpread is the largest minus the smallest corner value. It is
	// exact in one dimension and biased towards the upper corner of the
	// box in higher dimensions.
	CornerSpread
)

// ParseWeightRule maps a configured rule name to its WeightRule.
func ParseWeightRule(name string) (WeightRule, error) {
	switch name {
	case config.RectangleMassRule, "":
		return RectangleMass, nil
	case config.CornerSpreadRule:
		return CornerSpread, nil
	}
	return 0, errkind.Configf("unknown weight rule %q", name)
}

func (r WeightRule) String() string {
	switch r {
	case RectangleMass:
		return config.RectangleMassRule
	case CornerSpread:
		return config.CornerSpreadRule
	}
	return "unknown"
}

// Grid is a two level stratified inverse-transform sampler. The bounding
// box is split into Divisions^N cells, one is picked by its probability
// weight, split again into round(1/Tolerance)^N cells, and a point is
// drawn uniformly inside the finally picked cell.
type Grid struct {
	tolerance float64
	divisions int
	maxCells  int
	rule      WeightRule
}

// NewGrid creates a sampler with the precision given in cfg.
func NewGrid(cfg *config.Config) (*Grid, error) {
	g := &Grid{maxCells: cfg.MaxGridCells}
	if err := g.SetPrecision(cfg.GridTolerance, cfg.GridDivisions); err != nil {
		return nil, err
	}
	rule, err := ParseWeightRule(cfg.GridWeightRule)
	if err != nil {
		return nil, err
	}
	g.rule = rule
	return g, nil
}

// SetPrecision changes the fine tolerance and the coarse subdivision count.
func (g *Grid) SetPrecision(tolerance float64, divisions int) error {
	if !(tolerance > 0 && tolerance <= 1) {
		return errkind.Configf("grid tolerance must be in (0,1], got %v", tolerance)
	}
	if divisions < 1 {
		return errkind.Configf("grid divisions must be positive, got %d", divisions)
	}
	g.tolerance = tolerance
	g.divisions = divisions
	return nil
}

// SetWeightRule changes how cell weights are estimated.
func (g *Grid) SetWeightRule(rule WeightRule) error {
	if rule != RectangleMass && rule != CornerSpread {
		return errkind.Configf("unknown weight rule %d", rule)
	}
	g.rule = rule
	return nil
}

// WeightRule returns the rule cell weights are estimated with.
func (g *Grid) WeightRule() WeightRule { return g.rule }

// Precision returns the fine tolerance and the coarse subdivision count.
func (g *Grid) Precision() (float64, int) { return g.tolerance, g.divisions }

func (g *Grid) fineDivisions() int {
	return max(1, int(math.Round(1/g.tolerance)))
}

// Sample draws a point of the box [lower,upper] distributed according to
// cdf. The draw coarse picks the coarse cell, fine picks the fine cell and
// src places the point inside it.
func (g *Grid) Sample(cdf CDF, lower, upper []float64, coarse, fine float64, src random.Source) ([]float64, error) {
	dim := len(lower)
	if dim == 0 || len(upper) != dim {
		return nil, errkind.Configf("bounding box needs matching non-empty bounds, got %d and %d", len(lower), len(upper))
	}
	for i := range lower {
		if !(lower[i] < upper[i]) || math.IsInf(lower[i], 0) || math.IsInf(upper[i], 0) {
			return nil, errkind.Configf("bounding box axis %d is invalid: [%v,%v]", i, lower[i], upper[i])
		}
	}
	lo := append([]float64(nil), lower...)
	width := make([]float64, dim)
	for i := range width {
		width[i] = upper[i] - lower[i]
	}

	for _, level := range []struct {
		divisions int
		draw      float64
	}{{g.divisions, coarse}, {g.fineDivisions(), fine}} {
		if err := g.refine(cdf, lo, width, level.divisions, level.draw); err != nil {
			return nil, err
		}
	}

	point := make([]float64, dim)
	for i := range point {
		point[i] = lo[i] + src.Float64()*width[i]
	}
	return point, nil
}

// refine splits the cell (lo,width) into divisions^N sub-cells, picks one
// with draw u and overwrites lo and width with the picked cell.
func (g *Grid) refine(cdf CDF, lo, width []float64, divisions int, u float64) error {
	dim := len(lo)
	cells := lattice.Uniform(dim, divisions)
	nodes := lattice.Uniform(dim, divisions+1)
	// nodes cost one cdf evaluation each, cells one visit per corner
	numNodes, err := lattice.Size(nodes, g.maxCells)
	if err != nil {
		return err
	}
	cellLimit := g.maxCells >> dim
	if cellLimit < 1 {
		return errkind.Configf("%d-dimensional cells need %d corner visits, limit is %d", dim, 1<<dim, g.maxCells)
	}
	numCells, err := lattice.Size(cells, cellLimit)
	if err != nil {
		return err
	}

	// the cdf is evaluated once per lattice node and shared by adjacent cells
	values := make([]float64, numNodes)
	x := make([]float64, dim)
	err = lattice.ForEach(nodes, func(index []int) error {
		for i, k := range index {
			x[i] = lo[i] + float64(k)*width[i]/float64(divisions)
		}
		v, err := cdf.Cdf(x)
		if err != nil {
			return err
		}
		values[lattice.Flatten(index, nodes)] = v
		return nil
	})
	if err != nil {
		return err
	}

	weights := make([]float64, numCells)
	corner := make([]int, dim)
	numCorners := 1 << dim
	err = lattice.ForEach(cells, func(index []int) error {
		lowest, highest := math.Inf(1), math.Inf(-1)
		mass := 0.0
		for c := 0; c < numCorners; c++ {
			sign := 1.0
			for i := range corner {
				bit := (c >> i) & 1
				corner[i] = index[i] + bit
				if bit == 0 {
					sign = -sign
				}
			}
			v := values[lattice.Flatten(corner, nodes)]
			lowest = math.Min(lowest, v)
			highest = math.Max(highest, v)
			mass += sign * v
		}
		w := highest - lowest
		if g.rule == RectangleMass {
			// interpolated cdfs may be slightly non-monotone
			w = math.Max(mass, 0)
		}
		weights[lattice.Flatten(index, cells)] = w
		return nil
	})
	if err != nil {
		return err
	}

	picked, err := Pick(weights, u)
	if err != nil {
		return err
	}
	index := make([]int, dim)
	lattice.Unflatten(picked, cells, index)
	for i := range lo {
		width[i] /= float64(divisions)
		lo[i] += float64(index[i]) * width[i]
	}
	return nil
}
