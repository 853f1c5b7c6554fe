// Package main provides the klayopt CLI entrypoint.
//
// generate.go implements "generate": run N independent random-restart
// optimizations, save every resulting layout and print them ranked by score.
//
// optimise.go implements "optimise": load an existing layout file and
// re-run generation/refinement around a set of pinned characters.
//
// view.go implements "view": load one or more layout files and print their
// full LayoutStats/TrigramStats report.
//
// rank.go implements "rank": load every layout in a directory and print a
// ranking table sorted ascending by score.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// appFlagsMap centralizes flag definitions shared across commands, the
// same pattern the reference CLI uses to avoid repeating flag structs.
var appFlagsMap = map[string]cli.Flag{
	"language": &cli.StringFlag{
		Name:    "language",
		Aliases: []string{"l"},
		Usage:   "language name, used to locate data/langdata/<language>.json",
		Value:   "english",
	},
	"langdata-dir": &cli.StringFlag{
		Name:  "langdata-dir",
		Usage: "directory containing <language>.json language data files",
		Value: "data/langdata",
	},
	"layouts-dir": &cli.StringFlag{
		Name:    "layouts-dir",
		Aliases: []string{"d"},
		Usage:   "directory of .kb layout files",
		Value:   "data/layouts",
	},
	"config-file": &cli.StringFlag{
		Name:  "config-file",
		Usage: "text file of metric=value overlays on the default config",
	},
	"config": &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "metric=value,... overlay on the default config, eg: scissors=2.0,heatmap=0.8",
	},
	"pins": &cli.StringFlag{
		Name:    "pins",
		Aliases: []string{"p"},
		Usage:   "characters to keep fixed in their current position",
	},
	"n": &cli.IntFlag{
		Name:    "n",
		Aliases: []string{"amount"},
		Usage:   "number of independent random restarts to generate",
		Value:   1,
	},
}

func flagsSlice(keys ...string) []cli.Flag {
	flags := make([]cli.Flag, 0, len(keys))
	for _, k := range keys {
		if f, ok := appFlagsMap[k]; ok {
			flags = append(flags, f)
		}
	}
	return flags
}

func main() {
	app := &cli.App{
		Name:  "klayopt",
		Usage: "generate, optimise, view and rank keyboard layouts",
		Commands: []*cli.Command{
			generateCommand,
			optimiseCommand,
			viewCommand,
			rankCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
