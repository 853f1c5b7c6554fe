package layoutopt

import "github.com/rbscholtus/klayopt/internal/langdata"

// TrigramEntry pairs a trigram with its frequency, trimmed to the slice the
// per-character index needs.
type TrigramEntry struct {
	Trigram langdata.Trigram
	Freq    float64
}

// CharTrigramIndex maps an unordered character pair to the deduplicated
// union of the top-N trigrams (N = Config.TrigramPrecision) containing
// either character. A swap of the positions of characters a and b changes
// the classification only of the trigrams in CharTrigramIndex[{a,b}]; the
// cache's delta update rescans exactly that set instead of the full top-N.
type CharTrigramIndex map[[2]rune][]TrigramEntry

func pairKey(a, b rune) [2]rune {
	if a > b {
		a, b = b, a
	}
	return [2]rune{a, b}
}

// For returns the trigrams affected by a swap between characters a and b.
func (idx CharTrigramIndex) For(a, b rune) []TrigramEntry {
	return idx[pairKey(a, b)]
}

// BuildCharTrigramIndex builds the per-character-pair trigram index from
// the top `precision` trigrams of ld (by descending frequency; ld.Trigrams
// is already sorted that way). precision <= 0 means "use all". The index is
// keyed over every character in ld.Characters (the full corpus/layout
// alphabet, matching generate.rs's cartesian product over possible_chars),
// not just the characters that happen to appear in the top-N trigrams: a
// character absent from every top-N trigram still needs a (possibly empty)
// entry so For(a, b) returns the other character's affected trigrams
// instead of silently dropping them.
func BuildCharTrigramIndex(ld *langdata.LanguageData, precision int) CharTrigramIndex {
	top := ld.Trigrams
	if precision > 0 && precision < len(top) {
		top = top[:precision]
	}

	perChar := make(map[rune][]int)
	for i, tf := range top {
		seen := make(map[rune]bool, 3)
		for _, r := range tf.Trigram {
			if seen[r] {
				continue
			}
			seen[r] = true
			perChar[r] = append(perChar[r], i)
		}
	}

	chars := make([]rune, 0, len(ld.Characters))
	for r := range ld.Characters {
		chars = append(chars, rune(r))
	}

	idx := make(CharTrigramIndex)
	for i := 0; i < len(chars); i++ {
		for j := i + 1; j < len(chars); j++ {
			a, b := chars[i], chars[j]
			merged := mergeUniqueSorted(perChar[a], perChar[b])
			entries := make([]TrigramEntry, len(merged))
			for k, n := range merged {
				entries[k] = TrigramEntry{Trigram: top[n].Trigram, Freq: top[n].Freq}
			}
			idx[pairKey(a, b)] = entries
		}
	}
	return idx
}

// mergeUniqueSorted merges two ascending-sorted, duplicate-free int slices
// into one ascending-sorted, duplicate-free slice. perChar's per-character
// index lists are built in ascending order by construction (increasing i),
// so a linear merge suffices; no intermediate sort is needed.
func mergeUniqueSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
