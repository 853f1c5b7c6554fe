package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rbscholtus/klayopt/internal/report"
	"github.com/urfave/cli/v2"
)

var generateCommand = &cli.Command{
	Name:    "generate",
	Aliases: []string{"g"},
	Usage:   "generate N independent random-restart layouts, save them all and print them ranked by score",
	Flags: append(flagsSlice("language", "langdata-dir", "config-file", "config", "n"),
		&cli.StringFlag{
			Name:  "out",
			Usage: "directory to save generated layouts into",
			Value: "data/layouts",
		},
	),
	Action: generateAction,
}

func generateAction(c *cli.Context) error {
	e, err := engineFromFlags(c)
	if err != nil {
		return fmt.Errorf("could not build engine: %w", err)
	}

	n := c.Int("n")
	if n < 1 {
		return fmt.Errorf("--n must be at least 1 (got %d)", n)
	}

	layouts := e.GenerateN(n)

	out := c.String("out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("could not create output directory %q: %w", out, err)
	}

	ranked := make([]report.RankedLayout, len(layouts))
	for i, l := range layouts {
		path := filepath.Join(out, fmt.Sprintf("generated-%d.kb", i))
		if err := l.SaveFile(path); err != nil {
			return fmt.Errorf("could not save %q: %w", path, err)
		}
		ranked[i] = report.RankedLayout{Layout: l, Stats: e.GetLayoutStats(l)}
	}

	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j-1].Layout.Score > ranked[j].Layout.Score; j-- {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
		}
	}

	report.RenderRanking(os.Stdout, ranked, fmt.Sprintf("Generated (%s)", e.Language))
	return nil
}
