package main

import (
	"fmt"

	"github.com/MaluSegGar/datacube-dataset-config/prepare"
	"github.com/MaluSegGar/datacube-dataset-config/util"
	cli "gopkg.in/urfave/cli.v1"
)

//prepareAction writes a dataset document into each given scene directory
func prepareAction(c *cli.Context) error {
	ctx := &util.BasicLogContext{}

	if c.NArg() == 0 {
		return cli.NewExitError("no scene directories given", 1)
	}

	for _, dir := range c.Args() {
		util.LogInfo(ctx, fmt.Sprintf("Processing %s", dir))
		outPath, err := prepare.WriteDatasetDocument(dir)
		if err != nil {
			return exitError(ctx, err)
		}
		util.LogInfo(ctx, fmt.Sprintf("Wrote %s", outPath))
	}

	return nil
}
