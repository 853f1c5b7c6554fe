package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rbscholtus/klayopt/internal/anneal"
	"github.com/rbscholtus/klayopt/internal/report"
	"github.com/urfave/cli/v2"
)

var optimiseCommand = &cli.Command{
	Name:      "optimise",
	Aliases:   []string{"o", "optimize"},
	Usage:     "re-optimise an existing layout file around a set of pinned characters",
	ArgsUsage: "<layout.kb>",
	Flags: append(flagsSlice("language", "langdata-dir", "layouts-dir", "config-file", "config", "pins"),
		&cli.BoolFlag{
			Name:  "anneal",
			Usage: "run an eaopt simulated-annealing tail pass after the hill-climb converges",
		},
		&cli.UintFlag{
			Name:  "generations",
			Usage: "number of simulated-annealing generations (only with --anneal)",
			Value: 250,
		},
		&cli.StringFlag{
			Name:  "accept-worse",
			Usage: "simulated-annealing cooling policy: always, never, drop-slow, linear, drop-fast",
			Value: "drop-slow",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "path to save the optimised layout to (defaults to overwriting the input)",
		},
	),
	Action: optimiseAction,
}

func optimiseAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("optimise needs exactly one layout file argument")
	}

	e, err := engineFromFlags(c)
	if err != nil {
		return fmt.Errorf("could not build engine: %w", err)
	}

	base, err := loadLayoutArg(c, c.Args().First())
	if err != nil {
		return err
	}
	before := e.GetLayoutStats(base)
	beforeScore := e.Score(base)

	pins := pinsFromChars(base, c.String("pins"))
	best := e.GenerateWithPins(base, pins)

	if c.Bool("anneal") {
		annealed, err := anneal.Refine(e.Tables, best, pins, c.Uint("generations"), c.String("accept-worse"))
		if err != nil {
			return fmt.Errorf("simulated annealing failed: %w", err)
		}
		best = annealed
	}

	out := c.String("out")
	if out == "" {
		out = c.Args().First()
		if filepath.Dir(out) == "." {
			out = filepath.Join(c.String("layouts-dir"), out)
		}
	}
	if err := best.SaveFile(out); err != nil {
		return fmt.Errorf("could not save optimised layout %q: %w", out, err)
	}

	fmt.Printf("Before: %.3f  After: %.3f  (saved to %s)\n\n", beforeScore, best.Score, out)
	report.RenderView(os.Stdout, base, before)
	report.RenderView(os.Stdout, best, e.GetLayoutStats(best))
	return nil
}
