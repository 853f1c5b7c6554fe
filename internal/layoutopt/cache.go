package layoutopt

import (
	"math"
	"sync/atomic"

	"github.com/rbscholtus/klayopt/internal/geometry"
	"github.com/rbscholtus/klayopt/internal/kblayout"
)

// Counters accumulates the swap-evaluation tallies a single optimization
// run produces, shared by reference across every restart task so an Engine
// can report an aggregate total. The reference scorer's pruning guard
// (cache.total_score < f64::MAX) never actually triggers — it's always
// true — so Pruned stays at zero in practice; it's kept observable rather
// than removed, since a future score formula with bounded output could make
// it live again.
type Counters struct {
	Evaluated atomic.Int64
	Pruned    atomic.Int64
}

// LayoutCache holds the decomposed, per-position/per-finger partial sums
// behind a Layout's score, so a swap's effect on the score can be computed
// from the handful of rows it actually touches instead of a full rescore.
// A LayoutCache is tied to the exact Layout it was built from; Reinit must
// be run (or a fresh cache built) if that pairing changes.
type LayoutCache struct {
	tables *Tables
	layout *kblayout.Layout

	effort      [30]float64
	effortTotal float64

	usage      [8]float64
	usageTotal float64

	fspeed      [8]float64
	fspeedTotal float64

	scissors      float64
	trigramsTotal float64

	totalScore float64
}

// NewLayoutCache builds a LayoutCache from a full recompute of every table
// in t against l.
func NewLayoutCache(t *Tables, l *kblayout.Layout) *LayoutCache {
	c := &LayoutCache{tables: t, layout: l}
	c.fullInit()
	return c
}

func (c *LayoutCache) fullInit() {
	t, l := c.tables, c.layout

	for i, r := range l.Matrix {
		c.effort[i] = t.LD.CharFreq(r) * t.EffortMap[i]
		c.effortTotal += c.effort[i]
	}

	for f := uint8(0); f < 8; f++ {
		c.usage[f] = t.fingerUsageOne(l, f)
		c.usageTotal += c.usage[f]
		c.fspeed[f] = t.fingerSpeedOne(l, f)
		c.fspeedTotal += c.fspeed[f]
	}

	c.scissors = t.Scissors(l)
	c.trigramsTotal = t.TrigramScore(l)
	c.refreshTotal()
}

func (c *LayoutCache) refreshTotal() {
	c.totalScore = c.trigramsTotal - c.scissors - c.effortTotal - c.usageTotal - c.fspeedTotal
}

// TotalScore returns the cache's current composite score, kept in sync by
// AcceptSwap. It matches a full recompute of the raw score (trigrams minus
// effort, usage, finger speed and scissors) up to floating-point rounding;
// unlike Tables.Score it never applies the soft-constraint layer.
func (c *LayoutCache) TotalScore() float64 {
	return c.totalScore
}

// Reinit fully recomputes every cached row from the layout's current
// matrix. Used after the layout's matrix has been replaced wholesale
// (kblayout.Layout.SetMatrix) rather than through a sequence of AcceptSwap
// calls, e.g. restoring the winner of a column-permutation search.
func (c *LayoutCache) Reinit() {
	c.effort = [30]float64{}
	c.effortTotal = 0
	c.usage = [8]float64{}
	c.usageTotal = 0
	c.fspeed = [8]float64{}
	c.fspeedTotal = 0
	c.fullInit()
}

// trigramDelta returns the per-char-trigram score for the trigrams a swap
// between the characters currently at i1 and i2 can possibly affect — the
// only trigrams a delta update needs to touch.
func (c *LayoutCache) trigramDelta(i1, i2 uint8) float64 {
	t, l := c.tables, c.layout
	a, b := l.Matrix[i1], l.Matrix[i2]
	var sum float64
	for _, te := range t.TrigramIdx.For(a, b) {
		sum += t.trigramContribution(l, te.Trigram, te.Freq)
	}
	return sum
}

// ScoreSwapCached returns the prospective total score if i1 and i2 were
// swapped, without mutating the layout or the cache: it performs the swap,
// measures the delta, then reverses the swap before returning. counters may
// be nil (e.g. in tests); when non-nil its Evaluated/Pruned tallies are
// updated. The pruning guard below mirrors the reference scorer's
// `cache.total_score < f64::MAX` check, which is permanently true in
// practice — MaxFloat64 is never reached by this score formula — so the
// pruned branch is unreachable in normal operation and kept only for
// parity with the source this was ported from.
func (c *LayoutCache) ScoreSwapCached(i1, i2 uint8, counters *Counters) float64 {
	if i1 == i2 {
		return c.totalScore
	}

	t, l := c.tables, c.layout

	if c.totalScore >= math.MaxFloat64 {
		if counters != nil {
			counters.Pruned.Add(1)
		}
		return -math.MaxFloat64 / 2
	}
	if counters != nil {
		counters.Evaluated.Add(1)
	}

	before := c.trigramDelta(i1, i2)
	l.Swap(i1, i2)

	newEffort1 := t.LD.CharFreq(l.Matrix[i1]) * t.EffortMap[i1]
	newEffort2 := t.LD.CharFreq(l.Matrix[i2]) * t.EffortMap[i2]
	newEffortTotal := c.effortTotal - c.effort[i1] - c.effort[i2] + newEffort1 + newEffort2

	f1, f2 := geometry.PosToFinger(i1), geometry.PosToFinger(i2)

	var newUsageTotal float64
	if f1 == f2 {
		nu := t.fingerUsageOne(l, f1)
		newUsageTotal = c.usageTotal - c.usage[f1] + nu
	} else {
		nu1, nu2 := t.fingerUsageOne(l, f1), t.fingerUsageOne(l, f2)
		newUsageTotal = c.usageTotal - c.usage[f1] - c.usage[f2] + nu1 + nu2
	}

	var newFspeedTotal float64
	if f1 == f2 {
		nf := t.fingerSpeedOne(l, f1)
		newFspeedTotal = c.fspeedTotal - c.fspeed[f1] + nf
	} else {
		nf1, nf2 := t.fingerSpeedOne(l, f1), t.fingerSpeedOne(l, f2)
		newFspeedTotal = c.fspeedTotal - c.fspeed[f1] - c.fspeed[f2] + nf1 + nf2
	}

	newScissors := c.scissors
	if geometry.AffectsScissor[i1] || geometry.AffectsScissor[i2] {
		newScissors = t.Scissors(l)
	}

	after := c.trigramDelta(i1, i2)
	newTrigramsTotal := c.trigramsTotal - before + after

	l.Swap(i1, i2) // reverse: leave layout and cache exactly as found

	return newTrigramsTotal - newScissors - newEffortTotal - newUsageTotal - newFspeedTotal
}

// AcceptSwap commits a swap between i1 and i2: it mutates the underlying
// Layout and updates every cache row the swap can affect in place,
// refreshing TotalScore. Callers that already know a swap improves the
// score (via ScoreSwapCached) call this to make it permanent.
func (c *LayoutCache) AcceptSwap(i1, i2 uint8) {
	if i1 == i2 {
		return
	}
	t, l := c.tables, c.layout

	trigramsStart := c.trigramDelta(i1, i2)

	l.Swap(i1, i2)

	c.effortTotal -= c.effort[i1] + c.effort[i2]
	c.effort[i1] = t.LD.CharFreq(l.Matrix[i1]) * t.EffortMap[i1]
	c.effort[i2] = t.LD.CharFreq(l.Matrix[i2]) * t.EffortMap[i2]
	c.effortTotal += c.effort[i1] + c.effort[i2]

	f1, f2 := geometry.PosToFinger(i1), geometry.PosToFinger(i2)

	if f1 == f2 {
		c.fspeedTotal -= c.fspeed[f1]
		c.fspeed[f1] = t.fingerSpeedOne(l, f1)
		c.fspeedTotal += c.fspeed[f1]

		c.usageTotal -= c.usage[f1]
		c.usage[f1] = t.fingerUsageOne(l, f1)
		c.usageTotal += c.usage[f1]
	} else {
		c.fspeedTotal -= c.fspeed[f1] + c.fspeed[f2]
		c.fspeed[f1] = t.fingerSpeedOne(l, f1)
		c.fspeed[f2] = t.fingerSpeedOne(l, f2)
		c.fspeedTotal += c.fspeed[f1] + c.fspeed[f2]

		c.usageTotal -= c.usage[f1] + c.usage[f2]
		c.usage[f1] = t.fingerUsageOne(l, f1)
		c.usage[f2] = t.fingerUsageOne(l, f2)
		c.usageTotal += c.usage[f1] + c.usage[f2]
	}

	trigramsEnd := c.trigramDelta(i1, i2)
	c.trigramsTotal = c.trigramsTotal - trigramsStart + trigramsEnd

	if geometry.AffectsScissor[i1] || geometry.AffectsScissor[i2] {
		c.scissors = t.Scissors(l)
	}

	c.refreshTotal()
}
