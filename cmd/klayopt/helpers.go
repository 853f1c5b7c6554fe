package main

import (
	"fmt"
	"path/filepath"

	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/layoutopt"
	"github.com/rbscholtus/klayopt/internal/trigrams"
	"github.com/urfave/cli/v2"
)

// configFromFlags builds a Config from the defaults, overlaid with
// --config-file then --config, matching config.NewFromParams's precedence.
func configFromFlags(c *cli.Context) (config.Config, error) {
	return config.NewFromParams(c.String("config-file"), c.String("config"))
}

// engineFromFlags loads language data for --language from --langdata-dir
// and builds an Engine around it with the flag-derived Config.
func engineFromFlags(c *cli.Context) (*layoutopt.Engine, error) {
	cfg, err := configFromFlags(c)
	if err != nil {
		return nil, err
	}

	language := c.String("language")
	path := filepath.Join(c.String("langdata-dir"), language+".json")
	return layoutopt.NewFromFiles(language, path, cfg, trigrams.Reference{})
}

// pinsFromChars resolves a string of characters to their positions in l,
// skipping (silently) any character l does not contain.
func pinsFromChars(l *kblayout.Layout, chars string) []uint8 {
	pins := make([]uint8, 0, len(chars))
	for _, r := range chars {
		if p, ok := l.PosOf(r); ok {
			pins = append(pins, p)
		}
	}
	return pins
}

// loadLayoutArg loads a single layout file, resolving a bare name against
// --layouts-dir when path has no directory component of its own.
func loadLayoutArg(c *cli.Context, path string) (*kblayout.Layout, error) {
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	if filepath.Dir(path) == "." {
		path = filepath.Join(c.String("layouts-dir"), path)
	}
	l, err := kblayout.LoadFile(name, path)
	if err != nil {
		return nil, fmt.Errorf("loading layout %q: %w", path, err)
	}
	return l, nil
}
