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

// Package inspect implements the commands of the crow tool, which load a
// definition file into a registry and inspect its distributions.
package inspect

import (
	"fmt"

	"github.com/0xsoniclabs/crow/config"
	"github.com/0xsoniclabs/crow/dataio"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/logger"
	"github.com/0xsoniclabs/crow/registry"
	"github.com/0xsoniclabs/crow/visualizer"
	"github.com/urfave/cli/v2"
)

var (
	AliasFlag = cli.StringFlag{
		Name:     "alias",
		Usage:    "alias of the distribution to sample",
		Required: true,
	}
	CountFlag = cli.IntFlag{
		Name:  "count",
		Usage: "number of samples to draw",
		Value: 10,
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "port of the web server",
		Value: "8080",
	}
	OutputFlag = cli.PathFlag{
		Name:     "output",
		Usage:    "data file to write, gzip compressed when it ends in .gz",
		Required: true,
	}
	SamplesFlag = cli.IntFlag{
		Name:  "samples",
		Usage: "number of samples plotted per multivariate distribution",
		Value: 500,
	}
)

// SummaryCommand prints the distributions of a definition file.
var SummaryCommand = cli.Command{
	Action:    summaryAction,
	Name:      "summary",
	Usage:     "prints a table of the distributions of a definition file",
	ArgsUsage: "<definition file>",
	Flags:     config.Flags,
}

// SampleCommand draws samples of one distribution.
var SampleCommand = cli.Command{
	Action:    sampleAction,
	Name:      "sample",
	Usage:     "draws random samples of a distribution",
	ArgsUsage: "<definition file>",
	Flags:     append([]cli.Flag{&AliasFlag, &CountFlag}, config.Flags...),
}

// VisualizeCommand serves charts of all distributions.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "serves pdf, cdf and sample charts of the distributions of a definition file",
	ArgsUsage: "<definition file>",
	Flags:     append([]cli.Flag{&PortFlag, &SamplesFlag}, config.Flags...),
}

// ExportCdfCommand writes the cdf of one distribution tabulated on a grid.
var ExportCdfCommand = cli.Command{
	Action:    exportCdfAction,
	Name:      "export-cdf",
	Usage:     "writes the cdf of a distribution on a uniform grid as an ordered data file",
	ArgsUsage: "<definition file>",
	Flags:     append([]cli.Flag{&AliasFlag, &OutputFlag}, config.Flags...),
}

// ExportSamplesCommand writes samples of one distribution to a data file.
var ExportSamplesCommand = cli.Command{
	Action: exportSamplesAction,
	Name:   "export-samples",
	Usage: "writes random samples of a distribution; scalar samples as a vector file, " +
		"multivariate samples with their density as a scattered data file",
	ArgsUsage: "<definition file>",
	Flags:     append([]cli.Flag{&AliasFlag, &CountFlag, &OutputFlag}, config.Flags...),
}

// openRegistry creates a registry from the flags and loads the definition
// file named by the first argument.
func openRegistry(ctx *cli.Context) (*registry.Registry, logger.Logger, error) {
	if ctx.Args().Len() != 1 {
		return nil, nil, errkind.Configf("%s command requires exactly one definition file", ctx.Command.Name)
	}
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewLogger(cfg.LogLevel, "crow")
	reg, err := registry.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := loadDefinitions(reg, ctx.Args().First()); err != nil {
		return nil, nil, err
	}
	return reg, log, nil
}

func summaryAction(ctx *cli.Context) error {
	reg, _, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	reg.Summary(ctx.App.Writer)
	return nil
}

func sampleAction(ctx *cli.Context) error {
	reg, _, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	alias := ctx.String(AliasFlag.Name)
	dim, err := reg.Dimensionality(alias)
	if err != nil {
		return err
	}
	for i := 0; i < ctx.Int(CountFlag.Name); i++ {
		if dim == 1 {
			x, err := reg.Random(alias)
			if err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, x)
			continue
		}
		x, err := reg.RandomND(alias)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, x)
	}
	return nil
}

func visualizeAction(ctx *cli.Context) error {
	reg, log, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	port := ctx.String(PortFlag.Name)
	log.Noticef("Open http://localhost:%s to view the distributions", port)
	return visualizer.FireUpWeb(reg, port, ctx.Int(SamplesFlag.Name))
}

func exportCdfAction(ctx *cli.Context) error {
	reg, log, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	alias := ctx.String(AliasFlag.Name)
	grid, err := reg.CdfGrid(alias)
	if err != nil {
		return err
	}
	output := ctx.Path(OutputFlag.Name)
	if err := dataio.WriteOrdered(output, grid); err != nil {
		return err
	}
	log.Infof("Wrote cdf of %q on %d nodes to %s", alias, len(grid.Values), output)
	return nil
}

func exportSamplesAction(ctx *cli.Context) error {
	reg, log, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	alias := ctx.String(AliasFlag.Name)
	count := ctx.Int(CountFlag.Name)
	dim, err := reg.Dimensionality(alias)
	if err != nil {
		return err
	}
	output := ctx.Path(OutputFlag.Name)
	if dim == 1 {
		values := make([]float64, count)
		for i := range values {
			if values[i], err = reg.Random(alias); err != nil {
				return err
			}
		}
		err = dataio.WriteVector(output, values)
	} else {
		var set *dataio.Scattered
		if set, err = reg.SampleSet(alias, count); err != nil {
			return err
		}
		err = dataio.WriteScattered(output, set)
	}
	if err != nil {
		return err
	}
	log.Infof("Wrote %d samples of %q to %s", count, alias, output)
	return nil
}
