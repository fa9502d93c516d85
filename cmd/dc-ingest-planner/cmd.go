// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const version = "1.0.0"

var planFlags = []cli.Flag{
	cli.StringFlag{Name: "config, c", Usage: "Path to the ingestion configuration YAML"},
	cli.StringFlag{Name: "storage_type", Usage: "Storage type identifier recorded with each tile job"},
	cli.StringFlag{Name: "satellite", Usage: "Satellite identifier passed through to the ingestion engine"},
	cli.StringFlag{Name: "sensors", Usage: "Comma-separated sensor identifiers"},
	cli.StringFlag{Name: "level", Usage: "Processing level, e.g. sr_refl"},
	cli.Float64Flag{Name: "xmin", Usage: "Western bound, in storage CRS units"},
	cli.Float64Flag{Name: "xmax", Usage: "Eastern bound, in storage CRS units"},
	cli.Float64Flag{Name: "ymin", Usage: "Southern bound, in storage CRS units"},
	cli.Float64Flag{Name: "ymax", Usage: "Northern bound, in storage CRS units"},
	cli.StringFlag{Name: "tmin", Usage: "Start of the requested time range"},
	cli.StringFlag{Name: "tmax", Usage: "End of the requested time range"},
	cli.StringFlag{Name: "temp_dir", Usage: "Scratch directory passed through to the ingestion engine"},
	cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	cli.StringFlag{Name: "output, o", Usage: "Write the plan JSON to this file instead of stdout"},
}

var commands = cli.Commands{
	cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Compute the tile plan for an ingestion configuration",
		Flags:   planFlags,
		Action:  planAction,
	},
	cli.Command{
		Name:    "validate",
		Usage:   "Validate an ingestion configuration and report every violation",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "config, c", Usage: "Path to the ingestion configuration YAML"},
		},
		Action: validateAction,
	},
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the planner webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:      "prepare",
		Usage:     "Prepare Landsat scene directories for ingestion by writing dataset documents",
		ArgsUsage: "<scene directory> [<scene directory>...]",
		Action:    prepareAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the planner CLI",
		Action: func(*cli.Context) {
			fmt.Println(version)
		},
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "dc-ingest-planner"
	app.Usage = "Validate ingestion configurations and plan data cube tile jobs"
	app.Version = version
	app.Commands = commands
	return
}
