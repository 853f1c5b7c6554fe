package layoutopt

import (
	"testing"

	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigramStatsForSumsToMatchClassification(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()

	s := tbl.TrigramStatsFor(l)

	var total float64
	for _, tf := range tbl.LD.Trigrams {
		total += tf.Freq
	}
	sum := s.Alternates + s.AlternatesSfs + s.Inrolls + s.Outrolls + s.Onehands +
		s.Redirects + s.BadRedirects + s.Sfbs + s.BadSfbs + s.Sfts + s.Other + s.Invalid
	assert.InDelta(t, total, sum, 1e-9)
}

func TestTrigramStatsForIgnoresTrigramPrecisionTruncation(t *testing.T) {
	cfg := config.Default()
	cfg.TrigramPrecision = 2 // fewer than testLanguageData's 6 trigrams
	tbl := testTables(cfg)
	l := testLayout()

	require.Less(t, len(tbl.TopTrigrams), len(tbl.LD.Trigrams))

	s := tbl.TrigramStatsFor(l)
	var total float64
	for _, tf := range tbl.LD.Trigrams {
		total += tf.Freq
	}
	sum := s.Alternates + s.AlternatesSfs + s.Inrolls + s.Outrolls + s.Onehands +
		s.Redirects + s.BadRedirects + s.Sfbs + s.BadSfbs + s.Sfts + s.Other + s.Invalid
	assert.InDelta(t, total, sum, 1e-9)
}

func TestTrigramStatsStringFormatsAsPercentages(t *testing.T) {
	s := TrigramStats{Inrolls: 0.25, Outrolls: 0.1}
	out := s.String()
	assert.Contains(t, out, "Inrolls: 25.000%")
	assert.Contains(t, out, "Outrolls: 10.000%")
	assert.Contains(t, out, "Total Rolls: 35.000%")
}

func TestBigramPercentSelectors(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()

	for _, selector := range []string{"bigram", "bigrams", "sfb", "sfbs", "skipgram", "dsfb", "skipgram2", "dsfb2", "skipgram3", "dsfb3"} {
		_, err := tbl.BigramPercent(l, selector)
		assert.NoErrorf(t, err, "selector %q", selector)
	}
}

func TestBigramPercentUnknownSelector(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()

	_, err := tbl.BigramPercent(l, "nonsense")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBigramType)
}

func TestGetLayoutStatsFingerSpeedMatchesCache(t *testing.T) {
	cfg := config.Default()
	tbl := testTables(cfg)
	l := testLayout()

	stats := tbl.GetLayoutStats(l)

	_, wantTotal := tbl.FingerSpeed(l)
	assert.InDelta(t, wantTotal, stats.Fspeed, 1e-9)

	wantPerFinger, _ := tbl.FingerSpeed(l)
	assert.InDelta(t, wantPerFinger[0], stats.FingerSpeed[0], 1e-9)
}

func TestGetLayoutStatsScissorsIsUnweighted(t *testing.T) {
	cfg := config.Default()
	cfg.Scissors = 4.0
	tbl := testTables(cfg)
	l := testLayout()

	stats := tbl.GetLayoutStats(l)
	assert.InDelta(t, tbl.Scissors(l)/4.0, stats.Scissors, 1e-9)
}
