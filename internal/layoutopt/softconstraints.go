package layoutopt

import (
	"sort"

	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/rbscholtus/klayopt/internal/kblayout"
)

// referenceLetters lists the characters the soft-constraint layer keys off.
// A constraint only applies when all of them are present in the layout;
// otherwise it is silently skipped, matching the reference scorer's
// guard-chain behaviour of leaving the score untouched when any referenced
// character is missing. The reference's own guard chain tests a wider set
// of twelve letters (including t, s, d, u) before applying any constraint,
// but none of the three heuristics below read those extra four, so they are
// left out here; a layout missing only one of them would otherwise be
// exempted from checks that never look at it.
var referenceLetters = [...]rune{'e', 'a', 'o', 'i', 'n', 'h', 'r', 'l'}

// ApplySoftConstraints folds a positive score to negative (never the other
// way) when l violates one or more of the named heuristics, each
// independently toggled by cfg:
//
//   - HomeRowFinger: 'e' must sit on a middle finger (LM or RM).
//   - ColumnSeparation: 'r', 'l' and 'h' must not all three share a finger.
//   - HomeRowBucket: the left/right-hand split of e, a, o, i, and of n vs h,
//     must match one of four accepted patterns.
//
// All three require SoftConstraints.Enabled and are no-ops otherwise.
func ApplySoftConstraints(l *kblayout.Layout, cfg config.SoftConstraints, score float64) float64 {
	if !cfg.Enabled {
		return score
	}

	fingers := make(map[rune]uint8, len(referenceLetters))
	for _, r := range referenceLetters {
		f, ok := l.Finger(r)
		if !ok {
			return score
		}
		fingers[r] = f
	}

	violated := false
	if cfg.HomeRowFinger {
		e := fingers['e']
		if !(e == 2 || e == 5) {
			violated = true
		}
	}
	if cfg.ColumnSeparation {
		r, lf, h := fingers['r'], fingers['l'], fingers['h']
		if r == lf && lf == h {
			violated = true
		}
	}
	if violated {
		score = foldIfPositive(score)
	}

	if cfg.HomeRowBucket {
		leftHanded := func(r rune) bool { return fingers[r] < 4 }
		n, h := leftHanded('n'), leftHanded('h')
		nrts := []bool{leftHanded('e'), leftHanded('a'), leftHanded('o'), leftHanded('i'), n != h}
		sort.Slice(nrts, func(i, j int) bool { return !nrts[i] && nrts[j] })
		if !matchesAcceptedBucketPattern(nrts) {
			score = foldIfPositive(score)
		}
	}

	return score
}

func foldIfPositive(score float64) float64 {
	if score > 0 {
		return -score
	}
	return score
}

// acceptedBucketPatterns are the sorted five-boolean patterns the
// HomeRowBucket heuristic accepts without penalty.
var acceptedBucketPatterns = [][5]bool{
	{true, true, true, true, false},
	{false, true, true, true, true},
	{false, false, false, false, true},
	{true, false, false, false, false},
}

func matchesAcceptedBucketPattern(nrts []bool) bool {
	for _, p := range acceptedBucketPatterns {
		if nrts[0] == p[0] && nrts[1] == p[1] && nrts[2] == p[2] && nrts[3] == p[3] && nrts[4] == p[4] {
			return true
		}
	}
	return false
}
