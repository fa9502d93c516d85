package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MaluSegGar/datacube-dataset-config/ingest"
	"github.com/MaluSegGar/datacube-dataset-config/util"
	cli "gopkg.in/urfave/cli.v1"
)

//validateAction parses a config and reports every violation found, unlike
//the fail-fast load done by plan.
func validateAction(c *cli.Context) error {
	ctx := &util.BasicLogContext{}

	configPath := c.String("config")
	if configPath == "" {
		return cli.NewExitError("no ingestion configuration given; use --config", ingest.ExitConfig)
	}

	file, err := os.Open(filepath.Clean(configPath))
	if err != nil {
		return exitError(ctx, err)
	}
	defer file.Close()

	cfg, err := ingest.ParseConfig(file)
	if err != nil {
		return exitError(ctx, err)
	}

	violations := ingest.Validate(cfg)
	if len(violations) == 0 {
		fmt.Printf("%s: valid (%d measurements)\n", configPath, len(cfg.Measurements))
		return nil
	}

	for _, violation := range violations {
		fmt.Fprintf(os.Stderr, "%s: %s\n", configPath, violation)
	}
	return cli.NewExitError(fmt.Sprintf("%d violation(s) found", len(violations)), ingest.ExitConfig)
}
