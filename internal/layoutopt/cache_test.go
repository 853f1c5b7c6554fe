package layoutopt

import (
	"testing"

	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutCacheMatchesRawScore(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()

	cache := NewLayoutCache(tbl, l)

	_, usage := tbl.FingerUsage(l)
	_, fspeed := tbl.FingerSpeed(l)
	want := tbl.TrigramScore(l) - tbl.Effort(l) - usage - fspeed - tbl.Scissors(l)

	assert.InDelta(t, want, cache.TotalScore(), 1e-9)
}

func TestScoreSwapCachedIsNonDestructive(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()
	cache := NewLayoutCache(tbl, l)

	before := l.Matrix
	beforeScore := cache.TotalScore()

	_ = cache.ScoreSwapCached(0, 2, nil)

	assert.Equal(t, before, l.Matrix)
	assert.InDelta(t, beforeScore, cache.TotalScore(), 1e-9)
}

func TestScoreSwapCachedMatchesFullRescoreAfterManualSwap(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()
	cache := NewLayoutCache(tbl, l)

	prospective := cache.ScoreSwapCached(3, 16, nil)

	// Apply the same swap directly to an independent layout and rescore it
	// from scratch (minus the soft-constraint layer, since TotalScore never
	// applies it either).
	l2 := testLayout()
	l2.Swap(3, 16)
	_, usage := tbl.FingerUsage(l2)
	_, fspeed := tbl.FingerSpeed(l2)
	want := tbl.TrigramScore(l2) - tbl.Effort(l2) - usage - fspeed - tbl.Scissors(l2)

	assert.InDelta(t, want, prospective, 1e-6)
}

func TestScoreSwapCachedSamePositionIsNoop(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()
	cache := NewLayoutCache(tbl, l)

	assert.InDelta(t, cache.TotalScore(), cache.ScoreSwapCached(5, 5, nil), 1e-9)
}

func TestScoreSwapCachedUpdatesCounters(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()
	cache := NewLayoutCache(tbl, l)
	counters := &Counters{}

	cache.ScoreSwapCached(0, 1, counters)
	assert.EqualValues(t, 1, counters.Evaluated.Load())
	assert.EqualValues(t, 0, counters.Pruned.Load())
}

func TestAcceptSwapCommitsAndMatchesFullRescore(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()
	cache := NewLayoutCache(tbl, l)

	cache.AcceptSwap(3, 16)

	require.NotEqual(t, testLayout().Matrix, l.Matrix) // swap actually happened on l itself

	_, usage := tbl.FingerUsage(l)
	_, fspeed := tbl.FingerSpeed(l)
	want := tbl.TrigramScore(l) - tbl.Effort(l) - usage - fspeed - tbl.Scissors(l)
	assert.InDelta(t, want, cache.TotalScore(), 1e-6)
}

func TestAcceptSwapSamePositionIsNoop(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()
	cache := NewLayoutCache(tbl, l)

	before := l.Matrix
	beforeScore := cache.TotalScore()
	cache.AcceptSwap(7, 7)

	assert.Equal(t, before, l.Matrix)
	assert.InDelta(t, beforeScore, cache.TotalScore(), 1e-9)
}

func TestReinitRecomputesFromCurrentMatrix(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()
	cache := NewLayoutCache(tbl, l)

	cache.AcceptSwap(3, 16)
	scoreAfterAccept := cache.TotalScore()

	cache.Reinit()
	assert.InDelta(t, scoreAfterAccept, cache.TotalScore(), 1e-6)
}
