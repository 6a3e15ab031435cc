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
	"github.com/0xsoniclabs/crow/logger"
	"github.com/urfave/cli/v2"
)

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		LogLevel:              getFlagValue(ctx, logger.LogLevelFlag).(string),
		RandomSeed:            getFlagValue(ctx, RandomSeedFlag).(uint64),
		GridTolerance:         getFlagValue(ctx, GridToleranceFlag).(float64),
		GridDivisions:         getFlagValue(ctx, GridDivisionsFlag).(int),
		GridWeightRule:        getFlagValue(ctx, GridWeightRuleFlag).(string),
		MaxGridCells:          getFlagValue(ctx, MaxGridCellsFlag).(int),
		CdfDivisions:          getFlagValue(ctx, CdfDivisionsFlag).(int),
		MaxSplineNodes:        getFlagValue(ctx, MaxSplineNodesFlag).(int),
		CdfTolerance:          getFlagValue(ctx, CdfToleranceFlag).(float64),
		NewtonTolerance:       getFlagValue(ctx, NewtonToleranceFlag).(float64),
		MicroSphereDirections: getFlagValue(ctx, MicroSphereDirectionsFlag).(int),
	}
	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	var cmdFlags []cli.Flag
	if ctx.Command != nil {
		cmdFlags = ctx.Command.Flags
	}
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Uint64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	}

	return nil
}
