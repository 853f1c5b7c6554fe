// Package layoutopt is the layout-scoring and optimization core: the
// decomposed cost model, the incremental cache, the hill-climb plus
// column-permutation refinement, and the parallel multi-restart driver.
package layoutopt

import (
	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/rbscholtus/klayopt/internal/geometry"
	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/langdata"
	"github.com/rbscholtus/klayopt/internal/trigrams"
)

// Tables bundles every derived, read-only structure the cost model needs:
// the effort map, scissor/fspeed position tables, the weighted-bigram
// table, and the per-character trigram index. Built once per Engine and
// shared by reference across every optimization task; nothing here is
// mutated after NewTables returns.
type Tables struct {
	Cfg config.Config
	LD  *langdata.LanguageData

	EffortMap    [30]float64
	ScissorPairs [26]geometry.PosPair
	FspeedPairs  [48]geometry.FspeedPair
	FspeedGroups [48]uint8
	FspeedByFinger [8][]int
	FingerPos    [8][]uint8
	FingerCaps   [8]float64

	Bigrams     WeightedBigrams
	TrigramIdx  CharTrigramIndex
	TopTrigrams []langdata.TrigramFreq

	Classifier trigrams.Classifier
}

// NewTables builds every derived table from ld and cfg using classifier as
// the trigram-pattern capability.
func NewTables(ld *langdata.LanguageData, cfg config.Config, classifier trigrams.Classifier) *Tables {
	t := &Tables{
		Cfg:          cfg,
		LD:           ld,
		EffortMap:    geometry.EffortMap(cfg.Heatmap, cfg.KeyboardType),
		ScissorPairs: geometry.ScissorIndices(),
		FspeedPairs:  geometry.FspeedPairs(cfg.LateralPenalty),
		FspeedGroups: geometry.FspeedFingerGroups(),
		FingerPos:    geometry.FingerPositions(),
		Bigrams:      BuildWeightedBigrams(ld, cfg),
		TrigramIdx:   BuildCharTrigramIndex(ld, cfg.TrigramPrecision),
		Classifier:   classifier,
	}

	caps := cfg.MaxFingerUse
	t.FingerCaps = [8]float64{
		caps.Pinky, caps.Ring, caps.Middle, caps.Index,
		caps.Index, caps.Middle, caps.Ring, caps.Pinky,
	}

	top := ld.Trigrams
	if cfg.TrigramPrecision > 0 && cfg.TrigramPrecision < len(top) {
		top = top[:cfg.TrigramPrecision]
	}
	t.TopTrigrams = top

	for i, g := range t.FspeedGroups {
		t.FspeedByFinger[g] = append(t.FspeedByFinger[g], i)
	}

	return t
}

// Effort returns Σ_i characters[matrix[i]] * effort_map[i].
func (t *Tables) Effort(l *kblayout.Layout) float64 {
	var total float64
	for i, r := range l.Matrix {
		total += t.LD.CharFreq(r) * t.EffortMap[i]
	}
	return total
}

// FingerUsage returns, per finger (0-7), the over-cap penalty
// penalty * max(0, usage - cap), and their sum.
func (t *Tables) FingerUsage(l *kblayout.Layout) (perFinger [8]float64, total float64) {
	for f := 0; f < 8; f++ {
		var sum float64
		for _, pos := range t.FingerPos[f] {
			sum += t.LD.CharFreq(l.Matrix[pos])
		}
		over := sum - t.FingerCaps[f]
		if over < 0 {
			over = 0
		}
		perFinger[f] = t.Cfg.MaxFingerUse.Penalty * over
		total += perFinger[f]
	}
	return
}

// FingerSpeed returns, per finger (0-7), the weighted same-finger travel
// total, and their sum.
func (t *Tables) FingerSpeed(l *kblayout.Layout) (perFinger [8]float64, total float64) {
	for i, fp := range t.FspeedPairs {
		p, q := fp.Pair[0], fp.Pair[1]
		a, b := l.Matrix[p], l.Matrix[q]
		v := (t.Bigrams.Get(a, b) + t.Bigrams.Get(b, a)) * fp.Dist
		perFinger[t.FspeedGroups[i]] += v
	}
	for _, v := range perFinger {
		total += v
	}
	return
}

// fingerUsageOne recomputes the over-cap penalty for a single finger f,
// the per-finger unit cache.go's delta update needs after a swap touches f.
func (t *Tables) fingerUsageOne(l *kblayout.Layout, f uint8) float64 {
	var sum float64
	for _, pos := range t.FingerPos[f] {
		sum += t.LD.CharFreq(l.Matrix[pos])
	}
	over := sum - t.FingerCaps[f]
	if over < 0 {
		over = 0
	}
	return t.Cfg.MaxFingerUse.Penalty * over
}

// fingerSpeedOne recomputes the weighted same-finger travel total for a
// single finger f, the per-finger unit cache.go's delta update needs after a
// swap touches f.
func (t *Tables) fingerSpeedOne(l *kblayout.Layout, f uint8) float64 {
	var sum float64
	for _, i := range t.FspeedByFinger[f] {
		fp := t.FspeedPairs[i]
		p, q := fp.Pair[0], fp.Pair[1]
		a, b := l.Matrix[p], l.Matrix[q]
		sum += (t.Bigrams.Get(a, b) + t.Bigrams.Get(b, a)) * fp.Dist
	}
	return sum
}

// Scissors returns scissor_weight * Σ (bigrams[m[p],m[q]] +
// bigrams[m[q],m[p]]) over the scissor position pairs, using the raw
// (unweighted) bigram frequencies — scissors measure actual typed-bigram
// load, not finger-speed composite.
func (t *Tables) Scissors(l *kblayout.Layout) float64 {
	var sum float64
	for _, sp := range t.ScissorPairs {
		a, b := l.Matrix[sp[0]], l.Matrix[sp[1]]
		sum += t.LD.BigramFreq(a, b) + t.LD.BigramFreq(b, a)
	}
	return t.Cfg.Scissors * sum
}

// PatternWeight returns the scoring contribution weight for a trigram
// pattern; only the seven reward/penalty patterns enter the score
// directly (Sfb/BadSfb/Sft are already captured via finger-speed and
// scissors; Other/Invalid contribute nothing).
func (t *Tables) PatternWeight(p trigrams.Pattern) float64 {
	switch p {
	case trigrams.Inroll:
		return t.Cfg.Inrolls
	case trigrams.Outroll:
		return t.Cfg.Outrolls
	case trigrams.Onehand:
		return t.Cfg.Onehands
	case trigrams.Alternate:
		return t.Cfg.Alternates
	case trigrams.AlternateSfs:
		return t.Cfg.AlternatesSfs
	case trigrams.Redirect:
		return -t.Cfg.Redirects
	case trigrams.BadRedirect:
		return -t.Cfg.BadRedirects
	default:
		return 0
	}
}

// placement builds the minimal KeyPlacement view a trigrams.Classifier
// needs for r, deriving Hand from the finger index (0-3 left, 4-7 right).
func placement(l *kblayout.Layout, r rune) trigrams.KeyPlacement {
	f, ok := l.Finger(r)
	if !ok {
		return trigrams.KeyPlacement{}
	}
	pos, _ := l.PosOf(r)
	hand := trigrams.Left
	if f >= 4 {
		hand = trigrams.Right
	}
	return trigrams.KeyPlacement{Hand: hand, Finger: f, Pos: pos, Valid: true}
}

// TrigramScore classifies every trigram in t.TopTrigrams against l and
// sums freq * PatternWeight(pattern).
func (t *Tables) TrigramScore(l *kblayout.Layout) float64 {
	var score float64
	for _, tf := range t.TopTrigrams {
		score += t.trigramContribution(l, tf.Trigram, tf.Freq)
	}
	return score
}

func (t *Tables) trigramContribution(l *kblayout.Layout, tri langdata.Trigram, freq float64) float64 {
	p0 := placement(l, tri[0])
	p1 := placement(l, tri[1])
	p2 := placement(l, tri[2])
	pat := t.Classifier.Classify(tri[0], tri[1], tri[2], p0, p1, p2)
	return freq * t.PatternWeight(pat)
}

// Score computes the full, from-scratch score of l:
// trigram_score - effort - (usage + fspeed) - scissors, then applies the
// optional soft-constraint sign-inversion layer. The hill-climb and
// column-permutation search optimize LayoutCache.TotalScore directly and
// never apply soft constraints mid-search — only this externally reported
// score does, matching the reference scorer where the equivalent guard
// lives solely in the full scorer, not the cached-delta path.
func (t *Tables) Score(l *kblayout.Layout) float64 {
	_, usageTotal := t.FingerUsage(l)
	_, fspeedTotal := t.FingerSpeed(l)
	score := t.TrigramScore(l) - t.Effort(l) - usageTotal - fspeedTotal - t.Scissors(l)
	return ApplySoftConstraints(l, t.Cfg.SoftConstraints, score)
}
