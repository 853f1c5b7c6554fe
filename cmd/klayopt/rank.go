package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rbscholtus/klayopt/internal/report"
	"github.com/urfave/cli/v2"
)

var rankCommand = &cli.Command{
	Name:      "rank",
	Aliases:   []string{"r"},
	Usage:     "rank every layout file in a directory by score",
	ArgsUsage: "[directory]",
	Flags:     flagsSlice("language", "langdata-dir", "layouts-dir", "config-file", "config"),
	Action:    rankAction,
}

func rankAction(c *cli.Context) error {
	dir := c.String("layouts-dir")
	if c.NArg() > 0 {
		dir = c.Args().First()
	}

	e, err := engineFromFlags(c)
	if err != nil {
		return fmt.Errorf("could not build engine: %w", err)
	}

	var warnings bytes.Buffer
	if err := e.LoadLayouts(dir, &warnings); err != nil {
		return fmt.Errorf("could not load layouts from %q: %w", dir, err)
	}
	if warnings.Len() > 0 {
		fmt.Fprint(os.Stderr, warnings.String())
	}

	ordered := e.OrderedLayouts()
	if len(ordered) == 0 {
		return fmt.Errorf("no layouts found in %q", dir)
	}

	ranked := make([]report.RankedLayout, len(ordered))
	for i, l := range ordered {
		ranked[i] = report.RankedLayout{Layout: l, Stats: e.GetLayoutStats(l)}
	}

	report.RenderRanking(os.Stdout, ranked, fmt.Sprintf("Layout Ranking (%s)", e.Language))
	return nil
}
