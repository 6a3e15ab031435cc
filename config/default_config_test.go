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
	"flag"
	"testing"

	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// newTestContext creates a context for a command carrying all engine flags
// and sets the given flag values.
func newTestContext(t *testing.T, values map[string]string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", 0)
	for _, f := range Flags {
		require.NoError(t, f.Apply(set))
	}
	for name, value := range values {
		require.NoError(t, set.Set(name, value))
	}
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name:  "testcmd",
			Flags: Flags,
		},
	}
	ctx := cli.NewContext(app, set, nil)
	ctx.Command = app.Commands[0]
	return ctx
}

func TestGetFlagValue(t *testing.T) {
	testCases := []struct {
		name          string
		values        map[string]string
		flagToTest    interface{}
		expectedValue interface{}
	}{
		{
			name:          "IntFlag value",
			values:        map[string]string{GridDivisionsFlag.Name: "42"},
			flagToTest:    GridDivisionsFlag,
			expectedValue: 42,
		},
		{
			name:          "Uint64Flag value",
			values:        map[string]string{RandomSeedFlag.Name: "4711"},
			flagToTest:    RandomSeedFlag,
			expectedValue: uint64(4711),
		},
		{
			name:          "Float64Flag value",
			values:        map[string]string{GridToleranceFlag.Name: "0.05"},
			flagToTest:    GridToleranceFlag,
			expectedValue: 0.05,
		},
		{
			name:          "StringFlag value",
			values:        map[string]string{logger.LogLevelFlag.Name: "debug"},
			flagToTest:    logger.LogLevelFlag,
			expectedValue: "debug",
		},
		{
			name:          "Default value of unknown flag",
			values:        nil,
			flagToTest:    cli.IntFlag{Name: "unknown", Value: 13},
			expectedValue: 13,
		},
		{
			name:          "Unsupported flag type",
			values:        nil,
			flagToTest:    cli.BoolFlag{Name: "boolflag"},
			expectedValue: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := newTestContext(t, tc.values)
			assert.Equal(t, tc.expectedValue, getFlagValue(ctx, tc.flagToTest))
		})
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	ctx := newTestContext(t, nil)
	cfg, err := NewConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10, cfg.GridDivisions)
	assert.Equal(t, 0.1, cfg.GridTolerance)
}

func TestNewConfig_InvalidTolerance(t *testing.T) {
	_, err := NewConfig(newTestContext(t, map[string]string{GridToleranceFlag.Name: "1.5"}))
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.Config))
}

func TestNewConfig_GridToleranceRangeIncludesOne(t *testing.T) {
	cfg, err := NewConfig(newTestContext(t, map[string]string{GridToleranceFlag.Name: "1"}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.GridTolerance)
}

func TestNewConfig_GridWeightRule(t *testing.T) {
	cfg, err := NewConfig(newTestContext(t, map[string]string{GridWeightRuleFlag.Name: CornerSpreadRule}))
	require.NoError(t, err)
	assert.Equal(t, CornerSpreadRule, cfg.GridWeightRule)
	assert.Equal(t, RectangleMassRule, Default().GridWeightRule)

	_, err = NewConfig(newTestContext(t, map[string]string{GridWeightRuleFlag.Name: "max-min"}))
	assert.True(t, errkind.Is(err, errkind.Config))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{"grid divisions", func(cfg *Config) { cfg.GridDivisions = 0 }},
		{"zero grid tolerance", func(cfg *Config) { cfg.GridTolerance = 0 }},
		{"grid weight rule", func(cfg *Config) { cfg.GridWeightRule = "max-min" }},
		{"max grid cells", func(cfg *Config) { cfg.MaxGridCells = 0 }},
		{"cdf divisions", func(cfg *Config) { cfg.CdfDivisions = 0 }},
		{"max spline nodes", func(cfg *Config) { cfg.MaxSplineNodes = 1 }},
		{"cdf tolerance", func(cfg *Config) { cfg.CdfTolerance = -1 }},
		{"newton tolerance", func(cfg *Config) { cfg.NewtonTolerance = 0 }},
		{"microsphere directions", func(cfg *Config) { cfg.MicroSphereDirections = 0 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errkind.Config, errkind.KindOf(err))
		})
	}
	assert.NoError(t, Default().Validate())
}
