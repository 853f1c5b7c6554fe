// Package config defines the tunable engine configuration: the geometric
// and ergonomic weights that drive the cost model, plus per-finger usage
// caps and the optional soft-constraint/refinement toggles. It follows the
// same two-layer construction pattern the rest of this codebase uses for
// loadable parameter sets: build from defaults, then overlay a file, then
// overlay an explicit `metric=value,...` string, with the string always
// taking precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rbscholtus/klayopt/internal/geometry"
)

// RefinementMode selects an optional tail optimization pass run after the
// hill-climb plus column-permutation refinement converges.
type RefinementMode int

const (
	// RefinementNone runs no additional pass.
	RefinementNone RefinementMode = iota
	// RefinementSimulatedAnnealing runs internal/anneal's eaopt-backed
	// simulated-annealing search as a tail pass.
	RefinementSimulatedAnnealing
)

func (r RefinementMode) String() string {
	switch r {
	case RefinementSimulatedAnnealing:
		return "simulated-annealing"
	default:
		return "none"
	}
}

// FingerUseCaps bounds how much of the typing load may fall on each finger
// kind, with a single scalar penalty applied per unit of over-cap usage.
type FingerUseCaps struct {
	Pinky   float64
	Ring    float64
	Middle  float64
	Index   float64
	Penalty float64
}

// SoftConstraints toggles the named heuristics of the optional
// score-sign-inversion layer (see internal/layoutopt's soft-constraint
// code). All are off unless Enabled is true.
type SoftConstraints struct {
	Enabled          bool
	HomeRowFinger    bool
	ColumnSeparation bool
	HomeRowBucket    bool
}

// Config holds every weight and toggle the cost model and optimizer read.
type Config struct {
	Heatmap        float64
	LateralPenalty float64

	DsfbRatio  float64
	DsfbRatio2 float64
	DsfbRatio3 float64

	Fspeed   float64
	Scissors float64

	Inrolls       float64
	Outrolls      float64
	Onehands      float64
	Alternates    float64
	AlternatesSfs float64
	Redirects     float64
	BadRedirects  float64

	MaxFingerUse FingerUseCaps
	KeyboardType geometry.KeyboardType

	TrigramPrecision int

	SoftConstraints SoftConstraints
	Refinement       RefinementMode
}

// Default returns the engine's built-in defaults: a neutral scoring
// configuration with no soft constraints and no refinement pass, matching
// what the reference implementation ships with before any user overrides.
func Default() Config {
	return Config{
		Heatmap:        1.0,
		LateralPenalty: 1.0,

		DsfbRatio:  1.0,
		DsfbRatio2: 0.5,
		DsfbRatio3: 0.25,

		Fspeed:   1.0,
		Scissors: 1.0,

		Inrolls:       1.0,
		Outrolls:      0.8,
		Onehands:      0.6,
		Alternates:    0.4,
		AlternatesSfs: 0.2,
		Redirects:     1.0,
		BadRedirects:  2.0,

		MaxFingerUse: FingerUseCaps{
			Pinky:   0.14,
			Ring:    0.18,
			Middle:  0.22,
			Index:   0.28,
			Penalty: 5.0,
		},
		KeyboardType: geometry.AnsiAngle,

		TrigramPrecision: 1000,

		SoftConstraints: SoftConstraints{},
		Refinement:       RefinementNone,
	}
}

// fieldSetters maps the lower-cased metric names accepted by
// NewFromString/AddFromString to a setter closure over *Config. Kept as a
// table, matching the teacher's validated-metric-name pattern, rather than
// a long chain of case-insensitive if statements.
func fieldSetters(c *Config) map[string]func(float64) {
	return map[string]func(float64){
		"heatmap":         func(v float64) { c.Heatmap = v },
		"lateral_penalty": func(v float64) { c.LateralPenalty = v },
		"dsfb_ratio":      func(v float64) { c.DsfbRatio = v },
		"dsfb_ratio2":     func(v float64) { c.DsfbRatio2 = v },
		"dsfb_ratio3":     func(v float64) { c.DsfbRatio3 = v },
		"fspeed":          func(v float64) { c.Fspeed = v },
		"scissors":        func(v float64) { c.Scissors = v },
		"inrolls":         func(v float64) { c.Inrolls = v },
		"outrolls":        func(v float64) { c.Outrolls = v },
		"onehands":        func(v float64) { c.Onehands = v },
		"alternates":      func(v float64) { c.Alternates = v },
		"alternates_sfs":  func(v float64) { c.AlternatesSfs = v },
		"redirects":       func(v float64) { c.Redirects = v },
		"bad_redirects":   func(v float64) { c.BadRedirects = v },

		"max_finger_use.pinky":   func(v float64) { c.MaxFingerUse.Pinky = v },
		"max_finger_use.ring":    func(v float64) { c.MaxFingerUse.Ring = v },
		"max_finger_use.middle":  func(v float64) { c.MaxFingerUse.Middle = v },
		"max_finger_use.index":   func(v float64) { c.MaxFingerUse.Index = v },
		"max_finger_use.penalty": func(v float64) { c.MaxFingerUse.Penalty = v },

		"trigram_precision": func(v float64) { c.TrigramPrecision = int(v) },
	}
}

// AddFromString overlays metric=value pairs (comma separated) onto c. The
// keyboard_type option is handled separately since it is not a float.
func (c *Config) AddFromString(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	setters := fieldSetters(c)

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid config entry: %q", pair)
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		val := strings.TrimSpace(parts[1])

		if key == "keyboard_type" {
			kt, err := geometry.ParseKeyboardType(val)
			if err != nil {
				return fmt.Errorf("invalid keyboard_type %q: %w", val, err)
			}
			c.KeyboardType = kt
			continue
		}

		setter, ok := setters[key]
		if !ok {
			return fmt.Errorf("unknown config key %q", key)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		setter(f)
	}
	return nil
}

// AddFromFile applies each non-blank, non-comment line of path as an
// AddFromString overlay, in file order.
func (c *Config) AddFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := c.AddFromString(line); err != nil {
			return fmt.Errorf("could not parse config file %q: %w", path, err)
		}
	}
	return nil
}

// NewFromString builds a Config from defaults overlaid with s.
func NewFromString(s string) (Config, error) {
	c := Default()
	if err := c.AddFromString(s); err != nil {
		return Config{}, fmt.Errorf("could not build config from string: %w", err)
	}
	return c, nil
}

// NewFromFile builds a Config from defaults overlaid with the contents of
// path.
func NewFromFile(path string) (Config, error) {
	c := Default()
	if err := c.AddFromFile(path); err != nil {
		return Config{}, fmt.Errorf("could not build config from file: %w", err)
	}
	return c, nil
}

// NewFromParams builds a Config from defaults, an optional file overlay,
// then an explicit string overlay — the same file-then-flag precedence the
// rest of this codebase's loadable parameters use.
func NewFromParams(path, s string) (Config, error) {
	c := Default()
	if path != "" {
		if err := c.AddFromFile(path); err != nil {
			return Config{}, fmt.Errorf("could not build config from file: %w", err)
		}
	}
	if err := c.AddFromString(s); err != nil {
		return Config{}, fmt.Errorf("could not build config from string: %w", err)
	}
	return c, nil
}

// DecodeMap decodes an arbitrary map[string]any (e.g. parsed from YAML or
// TOML by a caller) into a Config, using mapstructure: keys are matched to
// Config's Go field names case-insensitively (e.g. "heatmap" or "Heatmap";
// a snake_case key such as "lateral_penalty" does not match LateralPenalty).
func DecodeMap(m map[string]any) (Config, error) {
	c := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &c,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Config{}, fmt.Errorf("building config decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return Config{}, fmt.Errorf("decoding config map: %w", err)
	}
	return c, nil
}
