package layoutopt

import (
	"github.com/rbscholtus/klayopt/internal/geometry"
	"github.com/rbscholtus/klayopt/internal/kblayout"
)

// OptimizeCols exhaustively tries every permutation of the characters at
// the six geometry.RefinementColumns positions (the top-row keys of the six
// non-index columns; the other rows of those columns are not moved), via
// Heap's algorithm driven entirely through cache.AcceptSwap
// so no candidate layout is ever cloned), then repeats the search with the
// two index clusters mirrored, and leaves layout/cache holding whichever of
// the 1440 arrangements scored best — including the identity, since
// initialScore seeds the comparison. Returns that best score.
func OptimizeCols(cache *LayoutCache, layout *kblayout.Layout, initialScore float64) float64 {
	bestScore := initialScore
	bestMatrix := layout.Matrix

	colPerms(cache, layout, &bestScore, &bestMatrix, 6)

	mirrorIndexClusters(cache)
	colPerms(cache, layout, &bestScore, &bestMatrix, 6)
	mirrorIndexClusters(cache) // undo, so cache/layout are self-consistent before the restore below

	layout.SetMatrix(bestMatrix)
	cache.Reinit()

	return bestScore
}

// colPerms walks every permutation of the first k of geometry.RefinementColumns
// via Heap's algorithm, recording the best (layout, score) pair seen at
// each leaf (k == 1). It leaves the cache at an arbitrary leaf of the
// traversal when it returns; the caller is responsible for restoring the
// best arrangement.
func colPerms(cache *LayoutCache, layout *kblayout.Layout, bestScore *float64, bestMatrix *[30]rune, k int) {
	if k == 1 {
		if cache.TotalScore() > *bestScore {
			*bestScore = cache.TotalScore()
			*bestMatrix = layout.Matrix
		}
		return
	}

	cols := geometry.RefinementColumns
	for i := 0; i < k; i++ {
		colPerms(cache, layout, bestScore, bestMatrix, k-1)
		if k%2 == 0 {
			cache.AcceptSwap(cols[i], cols[k-1])
		} else {
			cache.AcceptSwap(cols[0], cols[k-1])
		}
	}
}

// mirrorIndexClusters swaps every position in one column of each hand's
// two-column index cluster with its sibling in the other column (e.g. the
// top-row index key with the top-row inner-index key), for both hands at
// once. Applying it twice is the identity.
func mirrorIndexClusters(cache *LayoutCache) {
	for _, pair := range geometry.IndexClusterSiblings {
		cache.AcceptSwap(pair[0], pair[1])
	}
}
