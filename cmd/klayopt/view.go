package main

import (
	"fmt"
	"os"

	"github.com/rbscholtus/klayopt/internal/report"
	"github.com/urfave/cli/v2"
)

var viewCommand = &cli.Command{
	Name:      "view",
	Aliases:   []string{"v"},
	Usage:     "print the full stats report for one or more layout files",
	ArgsUsage: "<layout1.kb> [layout2.kb ...]",
	Flags:     flagsSlice("language", "langdata-dir", "layouts-dir", "config-file", "config"),
	Action:    viewAction,
}

func viewAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("view needs at least one layout file")
	}

	e, err := engineFromFlags(c)
	if err != nil {
		return fmt.Errorf("could not build engine: %w", err)
	}

	for _, arg := range c.Args().Slice() {
		l, err := loadLayoutArg(c, arg)
		if err != nil {
			return err
		}
		l.Score = e.Score(l)
		report.RenderView(os.Stdout, l, e.GetLayoutStats(l))
		report.RenderFingerSpeed(os.Stdout, l, e.GetLayoutStats(l))
	}
	return nil
}
