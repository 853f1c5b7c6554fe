package layoutopt

import (
	"fmt"
	"strings"

	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/trigrams"
)

// TrigramStats tallies the frequency-weighted share of every trigram
// pattern observed over the language data's full trigram list (see
// TrigramStatsFor).
type TrigramStats struct {
	Alternates    float64
	AlternatesSfs float64
	Inrolls       float64
	Outrolls      float64
	Onehands      float64
	Redirects     float64
	BadRedirects  float64
	Sfbs          float64
	BadSfbs       float64
	Sfts          float64
	Other         float64
	Invalid       float64
}

// String renders the ratios as percentages, grouped the way the reference
// report does: rolls, alternates, redirects, then the standalone same-
// finger/repeat figures.
func (s TrigramStats) String() string {
	return fmt.Sprintf(
		"Inrolls: %.3f%%\nOutrolls: %.3f%%\nTotal Rolls: %.3f%%\nOnehands: %.3f%%\n\n"+
			"Alternates: %.3f%%\nAlternates (sfs): %.3f%%\nTotal Alternates: %.3f%%\n\n"+
			"Redirects: %.3f%%\nBad Redirects: %.3f%%\nTotal Redirects: %.3f%%\n\n"+
			"Bad Sfbs: %.3f%%\nSft: %.3f%%",
		s.Inrolls*100, s.Outrolls*100, (s.Inrolls+s.Outrolls)*100, s.Onehands*100,
		s.Alternates*100, s.AlternatesSfs*100, (s.Alternates+s.AlternatesSfs)*100,
		s.Redirects*100, s.BadRedirects*100, (s.Redirects+s.BadRedirects)*100,
		s.BadSfbs*100, s.Sfts*100,
	)
}

// TrigramStatsFor classifies every trigram in t.LD.Trigrams (the full
// corpus trigram list, not just the top TrigramPrecision trigrams the score
// itself is truncated to — matching the reference's get_layout_stats, which
// always classifies with an unbounded precision) against l and sums their
// frequency into the matching TrigramStats bucket.
func (t *Tables) TrigramStatsFor(l *kblayout.Layout) TrigramStats {
	var s TrigramStats
	for _, tf := range t.LD.Trigrams {
		p0 := placement(l, tf.Trigram[0])
		p1 := placement(l, tf.Trigram[1])
		p2 := placement(l, tf.Trigram[2])
		pat := t.Classifier.Classify(tf.Trigram[0], tf.Trigram[1], tf.Trigram[2], p0, p1, p2)
		switch pat {
		case trigrams.Alternate:
			s.Alternates += tf.Freq
		case trigrams.AlternateSfs:
			s.AlternatesSfs += tf.Freq
		case trigrams.Inroll:
			s.Inrolls += tf.Freq
		case trigrams.Outroll:
			s.Outrolls += tf.Freq
		case trigrams.Onehand:
			s.Onehands += tf.Freq
		case trigrams.Redirect:
			s.Redirects += tf.Freq
		case trigrams.BadRedirect:
			s.BadRedirects += tf.Freq
		case trigrams.Sfb:
			s.Sfbs += tf.Freq
		case trigrams.BadSfb:
			s.BadSfbs += tf.Freq
		case trigrams.Sft:
			s.Sfts += tf.Freq
		case trigrams.Other:
			s.Other += tf.Freq
		case trigrams.Invalid:
			s.Invalid += tf.Freq
		}
	}
	return s
}

// LayoutStats is the full per-layout report: same-finger-bigram and skipgram
// load, scissor load, per-finger speed, and the trigram pattern breakdown.
type LayoutStats struct {
	Sfb          float64
	Dsfb         float64
	Dsfb2        float64
	Dsfb3        float64
	Scissors     float64
	Fspeed       float64
	FingerSpeed  [8]float64
	TrigramStats TrigramStats
}

// String renders the report the way the reference CLI prints it: ratios as
// percentages, finger speed in the same ×10 units used throughout the
// reference's finger-speed reporting.
func (s LayoutStats) String() string {
	fs := make([]string, 8)
	for i, v := range s.FingerSpeed {
		fs[i] = fmt.Sprintf("%.3f", v*10)
	}
	return fmt.Sprintf(
		"Sfb:  %.3f%%\nDsfb: %.3f%%\nFinger Speed: %.3f\n    [%s]\nScissors: %.3f%%\n\n%s",
		s.Sfb*100, s.Dsfb*100, s.Fspeed*10, strings.Join(fs, ", "), s.Scissors*100, s.TrigramStats,
	)
}

// BigramPercent sums, over every finger-speed position pair, the named
// bigram-frequency table's weight in both character orders — the same
// denominator col_fspeed's distance-weighted sum uses, but unweighted by
// distance, giving a plain load percentage. selector (case-insensitive)
// must be one of "bigram", "bigrams", "sfb", "sfbs"; "skipgram",
// "skipgrams", "dsfb", "dsfbs"; "skipgram2", "skipgrams2", "dsfb2",
// "dsfbs2"; or "skipgram3", "skipgrams3", "dsfb3", "dsfbs3".
func (t *Tables) BigramPercent(l *kblayout.Layout, selector string) (float64, error) {
	var gap int
	switch strings.ToLower(selector) {
	case "bigram", "bigrams", "sfb", "sfbs":
		gap = 0
	case "skipgram", "skipgrams", "dsfb", "dsfbs":
		gap = 1
	case "skipgram2", "skipgrams2", "dsfb2", "dsfbs2":
		gap = 2
	case "skipgram3", "skipgrams3", "dsfb3", "dsfbs3":
		gap = 3
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBigramType, selector)
	}

	var res float64
	for _, fp := range t.FspeedPairs {
		c1, c2 := l.Matrix[fp.Pair[0]], l.Matrix[fp.Pair[1]]
		if gap == 0 {
			res += t.LD.BigramFreq(c1, c2) + t.LD.BigramFreq(c2, c1)
		} else {
			res += t.LD.SkipgramFreq(gap, c1, c2) + t.LD.SkipgramFreq(gap, c2, c1)
		}
	}
	return res, nil
}

// GetLayoutStats builds the full LayoutStats report for l, computing
// finger-speed and its per-finger breakdown from a fresh cache so this can
// be called on any layout, not just one already under an active cache.
func (t *Tables) GetLayoutStats(l *kblayout.Layout) LayoutStats {
	sfb, _ := t.BigramPercent(l, "sfbs")
	dsfb, _ := t.BigramPercent(l, "skipgrams")
	dsfb2, _ := t.BigramPercent(l, "skipgrams2")
	dsfb3, _ := t.BigramPercent(l, "skipgrams3")

	cache := NewLayoutCache(t, l)

	return LayoutStats{
		Sfb:          sfb,
		Dsfb:         dsfb,
		Dsfb2:        dsfb2,
		Dsfb3:        dsfb3,
		Scissors:     t.Scissors(l) / t.Cfg.Scissors,
		Fspeed:       cache.fspeedTotal,
		FingerSpeed:  cache.fspeed,
		TrigramStats: t.TrigramStatsFor(l),
	}
}
