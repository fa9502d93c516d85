package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/MaluSegGar/datacube-dataset-config/ingest"
	"github.com/MaluSegGar/datacube-dataset-config/model"
	"github.com/MaluSegGar/datacube-dataset-config/util"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"
)

// planRequest is the pass-through request block of a plan envelope: the
// parameters the external job-submission layer needs but the planner itself
// does not interpret
type planRequest struct {
	StorageType string `json:"storage_type,omitempty"`
	Satellite   string `json:"satellite,omitempty"`
	Sensors     string `json:"sensors,omitempty"`
	Level       string `json:"level,omitempty"`
	TMin        string `json:"tmin,omitempty"`
	TMax        string `json:"tmax,omitempty"`
	TempDir     string `json:"temp_dir,omitempty"`
}

// planEnvelope is the serialized output of the plan command
type planEnvelope struct {
	Request planRequest     `json:"request"`
	Plan    *model.TilePlan `json:"plan"`
}

//planAction loads a config, computes the tile grid over the requested
//bounds and writes the plan JSON. Exit codes distinguish config, template
//and range failures from runtime errors.
func planAction(c *cli.Context) error {
	if c.Bool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	ctx := &util.BasicLogContext{}

	configPath := c.String("config")
	if configPath == "" {
		return cli.NewExitError("no ingestion configuration given; use --config", ingest.ExitConfig)
	}

	cfg, err := ingest.LoadConfigFile(configPath)
	if err != nil {
		return exitError(ctx, err)
	}

	requested, err := boundsFromFlags(c)
	if err != nil {
		return exitError(ctx, err)
	}

	startTime := time.Now().UTC()
	if c.String("tmin") != "" {
		if startTime, err = model.ParseFlexibleTime(c.String("tmin")); err != nil {
			return cli.NewExitError(fmt.Sprintf("invalid tmin: %v", err), ingest.ExitRange)
		}
	}
	if c.String("tmax") != "" {
		endTime, err := model.ParseFlexibleTime(c.String("tmax"))
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("invalid tmax: %v", err), ingest.ExitRange)
		}
		if !endTime.After(startTime) {
			return exitError(ctx, &ingest.RangeError{Axis: "time",
				Min: float64(startTime.Unix()), Max: float64(endTime.Unix())})
		}
	}

	grid, err := ingest.NewTileGrid(cfg, requested)
	if err != nil {
		return exitError(ctx, err)
	}

	plan, err := model.NewTilePlan(cfg, grid, startTime)
	if err != nil {
		return exitError(ctx, err)
	}

	envelope := planEnvelope{
		Request: planRequest{
			StorageType: c.String("storage_type"),
			Satellite:   c.String("satellite"),
			Sensors:     c.String("sensors"),
			Level:       c.String("level"),
			TMin:        c.String("tmin"),
			TMax:        c.String("tmax"),
			TempDir:     c.String("temp_dir"),
		},
		Plan: plan,
	}

	raw, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return exitError(ctx, err)
	}
	raw = append(raw, '\n')

	if outPath := c.String("output"); outPath != "" {
		if err := ioutil.WriteFile(outPath, raw, os.FileMode(0644)); err != nil {
			return exitError(ctx, err)
		}
		util.LogInfo(ctx, fmt.Sprintf("Wrote plan with %d tiles to %s", len(plan.Tiles), outPath))
	} else {
		os.Stdout.Write(raw)
	}

	return nil
}

// boundsFromFlags builds the requested bounds from the xmin/xmax/ymin/ymax
// flags. All four must be given together; none at all means the config's
// ingestion bounds apply.
func boundsFromFlags(c *cli.Context) (*ingest.Bounds, error) {
	set := 0
	for _, name := range []string{"xmin", "xmax", "ymin", "ymax"} {
		if c.IsSet(name) {
			set++
		}
	}
	if set == 0 {
		return nil, nil
	}
	if set != 4 {
		return nil, &ingest.ConfigError{Field: "bounds",
			Reason: "xmin, xmax, ymin and ymax must be given together"}
	}
	return &ingest.Bounds{
		Left:   c.Float64("xmin"),
		Bottom: c.Float64("ymin"),
		Right:  c.Float64("xmax"),
		Top:    c.Float64("ymax"),
	}, nil
}

func exitError(ctx util.LogContext, err error) error {
	util.LogAlert(ctx, err.Error())
	return cli.NewExitError(err.Error(), ingest.ExitCodeForError(err))
}
