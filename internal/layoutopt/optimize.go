package layoutopt

import (
	"github.com/rbscholtus/klayopt/internal/geometry"
	"github.com/rbscholtus/klayopt/internal/kblayout"
)

// Optimize alternates the swap-based hill-climb with the column-permutation
// refinement until neither improves on the other's result, then performs a
// final full-precision rescore (Tables.Score) to set layout.Score — the
// delta-cache total can drift from a from-scratch score by tiny
// floating-point rounding over a long run, and callers comparing layouts
// across restarts need the authoritative value.
func Optimize(tables *Tables, layout *kblayout.Layout, cache *LayoutCache, swaps []geometry.PosPair, counters *Counters) float64 {
	for {
		OptimizeCached(cache, swaps, counters)
		optimizedScore := cache.TotalScore()
		withColScore := OptimizeCols(cache, layout, optimizedScore)
		// The column pass must beat the hill-climb by more than rounding
		// noise, so two passes cannot keep trading equally scored layouts.
		if withColScore <= optimizedScore+1e-9 {
			break
		}
	}

	layout.Score = tables.Score(layout)
	return layout.Score
}
