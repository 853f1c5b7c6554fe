package layoutopt

import (
	"math"

	"github.com/rbscholtus/klayopt/internal/geometry"
)

// BestSwapCached scans swaps and returns the one giving the highest
// prospective score, plus that score. Ties keep the first swap seen
// (later equal-or-lower candidates never replace it, since the comparison
// is strictly greater-than). ok is false if swaps is empty.
func BestSwapCached(cache *LayoutCache, swaps []geometry.PosPair, counters *Counters) (best geometry.PosPair, bestScore float64, ok bool) {
	bestScore = -math.MaxFloat64 / 2
	for _, sw := range swaps {
		score := cache.ScoreSwapCached(sw[0], sw[1], counters)
		if score > bestScore {
			bestScore = score
			best = sw
			ok = true
		}
	}
	return
}

// OptimizeCached repeatedly finds and accepts the best-improving swap from
// swaps until no swap improves on the running best score, then returns that
// score. It never materializes a candidate layout: every trial runs
// through ScoreSwapCached's swap-score-unswap cycle, and only the winning
// swap per round is actually committed via AcceptSwap.
func OptimizeCached(cache *LayoutCache, swaps []geometry.PosPair, counters *Counters) float64 {
	currentBest := -math.MaxFloat64 / 2
	for {
		best, score, ok := BestSwapCached(cache, swaps, counters)
		if !ok || score <= currentBest {
			return currentBest
		}
		currentBest = score
		cache.AcceptSwap(best[0], best[1])
	}
}
