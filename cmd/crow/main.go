package main

import (
	"log"
	"os"

	"github.com/0xsoniclabs/crow/cmd/crow/inspect"
	"github.com/urfave/cli/v2"
)

// CrowApp data structure
var CrowApp = cli.App{
	Name:      "CROW",
	HelpName:  "crow",
	Usage:     "inspect probability distributions defined in a file",
	Copyright: "(c) 2025 Sonic Labs",
	Commands: []*cli.Command{
		&inspect.SummaryCommand,
		&inspect.SampleCommand,
		&inspect.VisualizeCommand,
		&inspect.ExportCdfCommand,
		&inspect.ExportSamplesCommand,
	},
}

// main implements the crow tool
func main() {
	if err := CrowApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
