package layoutopt

import (
	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/rbscholtus/klayopt/internal/langdata"
)

// WeightedBigrams gives, for an ordered character pair, the single scalar
// combining direct same-finger-bigram frequency with weighted skipgrams at
// gaps 1/2/3, scaled by Config.Fspeed. It is the table col_fspeed sums over;
// entries whose value would be zero are omitted.
type WeightedBigrams map[[2]rune]float64

// Get returns the weighted value for the ordered pair (a, b), or 0 if
// absent.
func (wb WeightedBigrams) Get(a, b rune) float64 {
	return wb[[2]rune{a, b}]
}

// BuildWeightedBigrams derives the weighted-bigram table from ld and cfg,
// iterating every ordered pair of characters known to ld.
func BuildWeightedBigrams(ld *langdata.LanguageData, cfg config.Config) WeightedBigrams {
	chars := make([]rune, 0, len(ld.Characters))
	for u := range ld.Characters {
		chars = append(chars, rune(u))
	}

	wb := make(WeightedBigrams, len(chars)*len(chars))
	for _, a := range chars {
		for _, b := range chars {
			if a == b {
				continue
			}
			sfb := ld.BigramFreq(a, b)
			dsfb1 := ld.SkipgramFreq(1, a, b) * cfg.DsfbRatio
			dsfb2 := ld.SkipgramFreq(2, a, b) * cfg.DsfbRatio2
			dsfb3 := ld.SkipgramFreq(3, a, b) * cfg.DsfbRatio3
			v := (sfb + dsfb1 + dsfb2 + dsfb3) * cfg.Fspeed
			if v != 0 {
				wb[[2]rune{a, b}] = v
			}
		}
	}
	return wb
}
