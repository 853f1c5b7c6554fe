package layoutopt

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/klutil"
	"github.com/rbscholtus/klayopt/internal/langdata"
	"github.com/rbscholtus/klayopt/internal/trigrams"
	"golang.org/x/sync/errgroup"
)

// charsForGeneration returns ld's known characters ordered by descending
// frequency, trimmed (or zero-padded, for a too-small language data set) to
// exactly 30 — the character set Random/RandomWithPins draw from.
func charsForGeneration(ld *langdata.LanguageData) [30]rune {
	pairs := klutil.SortedMap(ld.Characters)
	var out [30]rune
	for i := 0; i < 30 && i < len(pairs); i++ {
		out[i] = rune(pairs[i].Key)
	}
	return out
}

// Engine is the entry point for scoring and generating layouts against one
// language's data and one configuration: it owns the derived Tables, the
// named layouts loaded so far, and the restart seed/evaluation counters a
// batch of generation runs shares.
type Engine struct {
	Language string
	Tables   *Tables
	Layouts  map[string]*kblayout.Layout
	order    []string

	Counters *Counters
	seed     atomic.Uint64
}

// New builds an Engine from already-loaded language data and configuration,
// using classifier for trigram-pattern classification (trigrams.Reference{}
// in normal use; a custom Classifier mainly exists so tests can substitute
// a stub).
func New(language string, ld *langdata.LanguageData, cfg config.Config, classifier trigrams.Classifier) *Engine {
	e := &Engine{
		Language: language,
		Tables:   NewTables(ld, cfg, classifier),
		Layouts:  make(map[string]*kblayout.Layout),
		Counters: &Counters{},
	}
	e.seed.Store(1)
	return e
}

// NewFromFiles loads language data from langDataPath and builds an Engine
// from it, wrapping a missing file as ErrLanguageDataNotFound.
func NewFromFiles(language, langDataPath string, cfg config.Config, classifier trigrams.Classifier) (*Engine, error) {
	ld, err := langdata.LoadJSON(langDataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLanguageDataNotFound, langDataPath)
		}
		return nil, fmt.Errorf("loading language data: %w", err)
	}
	return New(language, ld, cfg, classifier), nil
}

// nextSeed hands out a fresh, monotonically increasing base seed for a
// restart batch, so two Generate calls on the same Engine don't replay the
// same PRNG streams.
func (e *Engine) nextSeed() uint64 {
	return e.seed.Add(1)
}

// LoadLayouts loads every ".kb" file in dir into e.Layouts, skipping (with a
// warning written to warn, or log.Printf if warn is nil) any file that
// fails to parse rather than aborting the whole directory — a directory of
// hand-edited layout files is expected to occasionally contain a malformed
// one. Loading and scoring run concurrently, bounded by GOMAXPROCS.
func (e *Engine) LoadLayouts(dir string, warn io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading layout directory %q: %w", dir, err)
	}

	type loaded struct {
		name   string
		layout *kblayout.Layout
	}
	results := make([]loaded, len(entries))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".kb") {
			continue
		}
		i, entry := i, entry
		g.Go(func() error {
			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			path := filepath.Join(dir, entry.Name())
			layout, err := kblayout.LoadFile(name, path)
			if err != nil {
				klutil.Warnf(warn, "skipping layout file %s: %v", path, err)
				return nil
			}
			layout.Score = e.Tables.Score(layout)
			results[i] = loaded{name: name, layout: layout}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if r.layout == nil {
			continue
		}
		if _, exists := e.Layouts[r.name]; !exists {
			e.order = append(e.order, r.name)
		}
		e.Layouts[r.name] = r.layout
	}
	return nil
}

// OrderedLayouts returns the loaded layouts sorted ascending by score, the
// reference loader's own sort order.
func (e *Engine) OrderedLayouts() []*kblayout.Layout {
	out := make([]*kblayout.Layout, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.Layouts[name])
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Score > out[j].Score; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Score returns the full, from-scratch score of l.
func (e *Engine) Score(l *kblayout.Layout) float64 {
	return e.Tables.Score(l)
}

// GetLayoutStats builds the full LayoutStats report for l.
func (e *Engine) GetLayoutStats(l *kblayout.Layout) LayoutStats {
	return e.Tables.GetLayoutStats(l)
}

// BigramPercent reports l's load under the named bigram/skipgram table; see
// Tables.BigramPercent for the accepted selectors.
func (e *Engine) BigramPercent(l *kblayout.Layout, selector string) (float64, error) {
	return e.Tables.BigramPercent(l, selector)
}

// Generate runs a single random-restart optimization and returns the
// resulting layout.
func (e *Engine) Generate() *kblayout.Layout {
	chars := charsForGeneration(e.Tables.LD)
	return GenerateOne(e.Tables, chars, "generated", rngFromSeed(e.nextSeed()), e.Counters)
}

// GenerateN runs amount independent random restarts in parallel and returns
// every resulting layout.
func (e *Engine) GenerateN(amount int) []*kblayout.Layout {
	chars := charsForGeneration(e.Tables.LD)
	return GenerateN(e.Tables, chars, amount, e.nextSeed(), e.Counters)
}

// GenerateWithPins runs a single pinned random restart based on basedOn,
// holding every position in pins fixed.
func (e *Engine) GenerateWithPins(basedOn *kblayout.Layout, pins []uint8) *kblayout.Layout {
	return GenerateOneWithPins(e.Tables, basedOn.Matrix, pins, "generated", rngFromSeed(e.nextSeed()), e.Counters)
}

// GenerateNWithPins runs amount independent pinned random restarts in
// parallel.
func (e *Engine) GenerateNWithPins(basedOn *kblayout.Layout, pins []uint8, amount int) []*kblayout.Layout {
	return GenerateNWithPins(e.Tables, basedOn.Matrix, pins, amount, e.nextSeed(), e.Counters)
}

// rngFromSeed is newRNG specialized to task 0, for the single-restart
// Generate/GenerateWithPins entry points that don't need a batch of
// independent streams.
func rngFromSeed(seed uint64) *rand.Rand {
	return newRNG(seed, 0)
}
