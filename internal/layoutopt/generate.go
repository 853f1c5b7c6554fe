package layoutopt

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/rbscholtus/klayopt/internal/geometry"
	"github.com/rbscholtus/klayopt/internal/kblayout"
)

// newRNG derives an independent PRNG stream for restart task n from a
// single base seed, so a whole GenerateN batch is reproducible from one
// seed while every task still gets a statistically independent stream.
func newRNG(seed uint64, n int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(n)))
}

// GenerateOne runs one random-restart hill-climb plus column-permutation
// search to convergence and returns the resulting layout, owning its own
// Layout, LayoutCache and PRNG — nothing here is shared with a sibling
// restart.
func GenerateOne(tables *Tables, chars [30]rune, name string, rng *rand.Rand, counters *Counters) *kblayout.Layout {
	layout := kblayout.Random(name, chars, rng)
	cache := NewLayoutCache(tables, layout)
	Optimize(tables, layout, cache, geometry.PossibleSwaps[:], counters)
	return layout
}

// GenerateOneWithPins runs a pinned random restart: only the unpinned
// positions are shuffled, and only hill-climb swaps that leave every
// pinned position untouched are ever considered. Unlike GenerateOne it
// does not run the column-permutation refinement, since a caller's pins
// may conflict with that search's assumption that whole columns can
// rotate freely.
func GenerateOneWithPins(tables *Tables, basedOn [30]rune, pins []uint8, name string, rng *rand.Rand, counters *Counters) *kblayout.Layout {
	layout := kblayout.RandomWithPins(name, basedOn, pins, rng)
	cache := NewLayoutCache(tables, layout)
	swaps := kblayout.UnpinnedSwaps(pins)
	OptimizeCached(cache, swaps, counters)
	layout.Score = tables.Score(layout)
	return layout
}

// GenerateN runs amount independent random restarts, bounded to
// runtime.GOMAXPROCS(0) concurrent goroutines at a time, and returns every
// resulting layout. seed makes a whole batch reproducible while still
// giving every task a statistically independent PRNG stream.
func GenerateN(tables *Tables, chars [30]rune, amount int, seed uint64, counters *Counters) []*kblayout.Layout {
	var (
		results = make([]*kblayout.Layout, amount)
		wg      sync.WaitGroup
		sem     = make(chan struct{}, runtime.GOMAXPROCS(0))
	)

	for i := 0; i < amount; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			rng := newRNG(seed, i)
			results[i] = GenerateOne(tables, chars, fmt.Sprintf("generated %d", i), rng, counters)
		}(i)
	}
	wg.Wait()

	return results
}

// GenerateNWithPins is GenerateN's pinned counterpart: amount independent
// restarts seeded from basedOn with pins held fixed, bounded the same way.
func GenerateNWithPins(tables *Tables, basedOn [30]rune, pins []uint8, amount int, seed uint64, counters *Counters) []*kblayout.Layout {
	var (
		results = make([]*kblayout.Layout, amount)
		wg      sync.WaitGroup
		sem     = make(chan struct{}, runtime.GOMAXPROCS(0))
	)

	for i := 0; i < amount; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			rng := newRNG(seed, i)
			results[i] = GenerateOneWithPins(tables, basedOn, pins, fmt.Sprintf("generated %d", i), rng, counters)
		}(i)
	}
	wg.Wait()

	return results
}
