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

package config

import (
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/logger"
	"github.com/urfave/cli/v2"
)

// Config summarizes the tunables of the distribution engine.
type Config struct {
	LogLevel              string  // level of the logging of the engine
	RandomSeed            uint64  // seed of the shared random source
	GridTolerance         float64 // refinement tolerance of the grid sampler; 1/τ cells per axis at the fine level
	GridDivisions         int     // initial subdivision count of the grid sampler per axis
	GridWeightRule        string  // cell weight estimate of the grid sampler (rectangle-mass or corner-spread)
	MaxGridCells          int     // upper bound on cdf evaluations and cell corner visits of one grid-sampler level
	CdfDivisions          int     // intervals per axis of the derived CDF grid of a multivariate normal
	MaxSplineNodes        int     // upper bound on the number of nodes of a derived spline grid
	CdfTolerance          float64 // admissible overshoot of a derived CDF beyond [0,1]
	NewtonTolerance       float64 // precision of Newton-Raphson inversions of marginal CDFs
	MicroSphereDirections int     // number of facets of the microsphere interpolator
}

// Names of the cell weight rules of the grid sampler.
const (
	RectangleMassRule = "rectangle-mass"
	CornerSpreadRule  = "corner-spread"
)

var (
	RandomSeedFlag = cli.Uint64Flag{
		Name:  "random-seed",
		Usage: "seed of the random source shared by all distributions",
		Value: 1,
	}
	GridToleranceFlag = cli.Float64Flag{
		Name:  "grid-tolerance",
		Usage: "refinement tolerance of the grid sampler",
		Value: 0.1,
	}
	GridDivisionsFlag = cli.IntFlag{
		Name:  "grid-divisions",
		Usage: "initial number of grid-sampler subdivisions per axis",
		Value: 10,
	}
	GridWeightRuleFlag = cli.StringFlag{
		Name:  "grid-weight-rule",
		Usage: "cell weight of the grid sampler: \"rectangle-mass\" (inclusion-exclusion of the corner cdfs) or \"corner-spread\" (largest minus smallest corner cdf)",
		Value: RectangleMassRule,
	}
	MaxGridCellsFlag = cli.IntFlag{
		Name:  "max-grid-cells",
		Usage: "maximum number of lattice nodes (cdf evaluations) and of cell corners visited by one refinement level of the grid sampler",
		Value: 1_000_000,
	}
	CdfDivisionsFlag = cli.IntFlag{
		Name:  "cdf-divisions",
		Usage: "number of intervals per axis of tabulated cdf grids (multivariate normal, export-cdf)",
		Value: 20,
	}
	MaxSplineNodesFlag = cli.IntFlag{
		Name:  "max-spline-nodes",
		Usage: "maximum number of nodes of a derived spline grid",
		Value: 1_000_000,
	}
	CdfToleranceFlag = cli.Float64Flag{
		Name:  "cdf-tolerance",
		Usage: "admissible overshoot of a derived CDF outside of [0,1]",
		Value: 1e-3,
	}
	NewtonToleranceFlag = cli.Float64Flag{
		Name:  "newton-tolerance",
		Usage: "precision of the Newton-Raphson inversion of marginal CDFs",
		Value: 1e-8,
	}
	MicroSphereDirectionsFlag = cli.IntFlag{
		Name:  "microsphere-directions",
		Usage: "number of facets of the microsphere interpolator",
		Value: 200,
	}
)

// Flags lists all flags read by NewConfig.
var Flags = []cli.Flag{
	&logger.LogLevelFlag,
	&RandomSeedFlag,
	&GridToleranceFlag,
	&GridDivisionsFlag,
	&GridWeightRuleFlag,
	&MaxGridCellsFlag,
	&CdfDivisionsFlag,
	&MaxSplineNodesFlag,
	&CdfToleranceFlag,
	&NewtonToleranceFlag,
	&MicroSphereDirectionsFlag,
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	return &Config{
		LogLevel:              logger.LogLevelFlag.Value,
		RandomSeed:            RandomSeedFlag.Value,
		GridTolerance:         GridToleranceFlag.Value,
		GridDivisions:         GridDivisionsFlag.Value,
		GridWeightRule:        GridWeightRuleFlag.Value,
		MaxGridCells:          MaxGridCellsFlag.Value,
		CdfDivisions:          CdfDivisionsFlag.Value,
		MaxSplineNodes:        MaxSplineNodesFlag.Value,
		CdfTolerance:          CdfToleranceFlag.Value,
		NewtonTolerance:       NewtonToleranceFlag.Value,
		MicroSphereDirections: MicroSphereDirectionsFlag.Value,
	}
}

// NewConfig creates the configuration from the flags of a command
// and validates it.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges of all tunables.
func (cfg *Config) Validate() error {
	if !(cfg.GridTolerance > 0 && cfg.GridTolerance <= 1) {
		return errkind.Configf("grid tolerance must be in (0,1]; got %v", cfg.GridTolerance)
	}
	if cfg.GridDivisions < 1 {
		return errkind.Configf("grid divisions must be positive; got %v", cfg.GridDivisions)
	}
	if cfg.GridWeightRule != RectangleMassRule && cfg.GridWeightRule != CornerSpreadRule {
		return errkind.Configf("grid weight rule must be %q or %q; got %q", RectangleMassRule, CornerSpreadRule, cfg.GridWeightRule)
	}
	if cfg.MaxGridCells < 1 {
		return errkind.Configf("maximum number of grid cells must be positive; got %v", cfg.MaxGridCells)
	}
	if cfg.CdfDivisions < 1 {
		return errkind.Configf("cdf divisions must be positive; got %v", cfg.CdfDivisions)
	}
	if cfg.MaxSplineNodes < 2 {
		return errkind.Configf("maximum number of spline nodes must be at least two; got %v", cfg.MaxSplineNodes)
	}
	if cfg.CdfTolerance < 0 {
		return errkind.Configf("cdf tolerance must not be negative; got %v", cfg.CdfTolerance)
	}
	if !(cfg.NewtonTolerance > 0) {
		return errkind.Configf("newton tolerance must be positive; got %v", cfg.NewtonTolerance)
	}
	if cfg.MicroSphereDirections < 1 {
		return errkind.Configf("number of microsphere directions must be positive; got %v", cfg.MicroSphereDirections)
	}
	return nil
}
