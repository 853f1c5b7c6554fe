// Package geometry holds the static, configuration-only tables the cost
// model is built from: the column-to-finger map, the full enumeration of
// swappable position pairs, the same-finger ("fspeed") pair list with
// per-pair distances, the scissor-bigram pair list, and the per-keyboard-type
// effort map. Every table here depends only on Config, never on a Layout or
// a LanguageData bundle, and is built once and shared read-only across all
// optimization tasks.
package geometry

import (
	"fmt"
	"math"
	"strings"
)

// PosPair is an unordered pair of layout positions (0-29).
type PosPair [2]uint8

// ColToFinger maps a column (0-9) to one of 8 fingers; the two index
// columns per hand (3,4 and 5,6) collapse to the same finger index.
var ColToFinger = [10]uint8{0, 1, 2, 3, 3, 4, 4, 5, 6, 7}

// PosToCol maps a position (0-29) to its column (0-9): row-major, so it is
// simply i % 10.
var PosToCol [30]uint8

func init() {
	for i := range PosToCol {
		PosToCol[i] = uint8(i % 10)
	}
}

// PosToFinger maps a position (0-29) directly to its finger (0-7).
func PosToFinger(pos uint8) uint8 {
	return ColToFinger[PosToCol[pos]]
}

// AffectsScissor marks which of the 30 positions participate in at least
// one scissor pair; used to skip recomputing the scissor total on swaps
// that cannot change it.
var AffectsScissor = [30]bool{
	true, true, true, true, true, true, true, true, true, true,
	true, true, true, true, true, false, false, true, true, true,
	true, true, true, false, true, false, false, true, true, true,
}

// PossibleSwaps is the full unordered set of position pairs {(i,j) | 0 <=
// i < j < 30}, 435 entries in ascending (i,j) order.
var PossibleSwaps = buildPossibleSwaps()

func buildPossibleSwaps() [435]PosPair {
	var res [435]PosPair
	i := 0
	for pos1 := uint8(0); pos1 < 30; pos1++ {
		for pos2 := pos1 + 1; pos2 < 30; pos2++ {
			res[i] = PosPair{pos1, pos2}
			i++
		}
	}
	return res
}

// KeyboardType selects an effort-map variant.
type KeyboardType int

const (
	AnsiAngle KeyboardType = iota
	IsoAngle
	RowstagDefault
	Ortho
	Colstag
)

func (k KeyboardType) String() string {
	switch k {
	case AnsiAngle:
		return "ansi-angle"
	case IsoAngle:
		return "iso-angle"
	case RowstagDefault:
		return "rowstag"
	case Ortho:
		return "ortho"
	case Colstag:
		return "colstag"
	default:
		return "unknown"
	}
}

// ParseKeyboardType accepts both the hyphenated canonical spellings
// ("ansi-angle") and the original source's space/alias forms ("ansi angle",
// "iso", "jis"), matching the `TryFrom<String>` parsing of the reference
// implementation this table set is grounded on.
func ParseKeyboardType(s string) (KeyboardType, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	lower = strings.ReplaceAll(lower, "-", " ")
	fields := strings.Fields(lower)

	switch len(fields) {
	case 1:
		switch fields[0] {
		case "ortho":
			return Ortho, nil
		case "colstag":
			return Colstag, nil
		case "rowstag", "iso", "ansi", "jis":
			return RowstagDefault, nil
		}
	case 2:
		switch {
		case fields[0] == "ansi" && fields[1] == "angle":
			return AnsiAngle, nil
		case fields[0] == "iso" && fields[1] == "angle":
			return IsoAngle, nil
		}
	}
	return 0, fmt.Errorf("unrecognised keyboard type: %q", s)
}

// effortTables holds the base (pre-heatmap) effort values per keyboard
// type, transcribed verbatim from the reference implementation.
var effortTables = map[KeyboardType][30]float64{
	IsoAngle: {
		3.0, 2.4, 2.0, 2.2, 2.4, 3.3, 2.2, 2.0, 2.4, 3.0,
		1.8, 1.3, 1.1, 1.0, 2.6, 2.6, 1.0, 1.1, 1.3, 1.8,
		3.3, 2.8, 2.4, 1.8, 2.2, 2.2, 1.8, 2.4, 2.8, 3.3,
	},
	AnsiAngle: {
		3.0, 2.4, 2.0, 2.2, 2.4, 3.3, 2.2, 2.0, 2.4, 3.0,
		1.8, 1.3, 1.1, 1.0, 2.6, 2.6, 1.0, 1.1, 1.3, 1.8,
		3.7, 2.8, 2.4, 1.8, 2.2, 2.2, 1.8, 2.4, 2.8, 3.3,
	},
	RowstagDefault: {
		3.0, 2.4, 2.0, 2.2, 2.4, 3.3, 2.2, 2.0, 2.4, 3.0,
		1.8, 1.3, 1.1, 1.0, 2.6, 2.6, 1.0, 1.1, 1.3, 1.8,
		3.5, 3.0, 2.7, 2.2, 3.7, 2.2, 1.8, 2.4, 2.8, 3.3,
	},
	Ortho: {
		3.0, 2.4, 2.0, 2.2, 3.1, 3.1, 2.2, 2.0, 2.4, 3.0,
		1.7, 1.3, 1.1, 1.0, 2.6, 2.6, 1.0, 1.1, 1.3, 1.7,
		3.2, 2.6, 2.3, 1.6, 3.0, 3.0, 1.6, 2.3, 2.6, 3.2,
	},
	Colstag: {
		3.0, 2.4, 2.0, 2.2, 3.1, 3.1, 2.2, 2.0, 2.4, 3.0,
		1.7, 1.3, 1.1, 1.0, 2.6, 2.6, 1.0, 1.1, 1.3, 1.7,
		3.4, 2.7, 2.2, 1.8, 3.2, 3.2, 1.8, 2.2, 2.7, 3.4,
	},
}

// EffortMap returns the 30-position effort table for kt, scaled by
// heatmapWeight: each base value v is transformed as (v - 0.2) / 4.5 *
// heatmapWeight.
func EffortMap(heatmapWeight float64, kt KeyboardType) [30]float64 {
	base := effortTables[kt]
	var res [30]float64
	for i, v := range base {
		res[i] = (v - 0.2) / 4.5 * heatmapWeight
	}
	return res
}

// FspeedPair pairs a same-finger position pair with its travel distance.
type FspeedPair struct {
	Pair PosPair
	Dist float64
}

// fingerWeights is, per non-index column group (pinky, ring, middle on the
// left hand then mirrored on the right), the weight used in the distance
// formula below.
var fingerWeights = [6]float64{1.4, 3.6, 4.8, 4.8, 3.6, 1.4}

// nonIndexCols are the six columns (three per hand) whose three row
// positions form same-finger pairs on their own.
var nonIndexCols = [6]int{0, 1, 2, 7, 8, 9}

// indexClusterGrid lays the six positions of one hand's two-column index
// cluster on a 3-row x 2-column grid, in the same order SfbIndices below
// enumerates pair combinations.
var indexClusterGrid = [6][2]int{
	{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2},
}

// SfbIndices returns the 48 same-finger position pairs: 18 from the six
// non-index columns (3 row-combinations each) followed by 30 from the two
// index-column clusters (C(6,2)=15 combinations each).
func SfbIndices() [48]PosPair {
	var res [48]PosPair
	n := 0
	for _, col := range nonIndexCols {
		positions := [3]int{col, col + 10, col + 20}
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				res[n] = PosPair{uint8(positions[i]), uint8(positions[j])}
				n++
			}
		}
	}
	for _, base := range [2]int{0, 2} {
		positions := [6]int{3 + base, 13 + base, 23 + base, 4 + base, 14 + base, 24 + base}
		for i := 0; i < 6; i++ {
			for j := i + 1; j < 6; j++ {
				res[n] = PosPair{uint8(positions[i]), uint8(positions[j])}
				n++
			}
		}
	}
	return res
}

func pow65(v float64) float64 {
	// (v^2)^0.65, matching the reference's `f.powi(2).powf(0.65)`.
	return math.Pow(v*v, 0.65)
}

// FspeedPairs returns the 48 SfbIndices paired with their travel distances,
// computed the same order get_fspeed/get_distances build them in the
// reference source: 18 non-index-column distances first, then 30
// index-cluster distances, scaled by lateralPenalty on the cluster term.
func FspeedPairs(lateralPenalty float64) [48]FspeedPair {
	idx := SfbIndices()
	var dist [48]float64
	n := 0
	for _, fw := range fingerWeights {
		ratio := 5.5 / fw
		dist[n] = pow65(1.0) * ratio
		dist[n+1] = pow65(2.0) * ratio
		dist[n+2] = pow65(1.0) * ratio
		n += 3
	}
	for h := 0; h < 2; h++ {
		for i := 0; i < 6; i++ {
			for j := i + 1; j < 6; j++ {
				xy1 := indexClusterGrid[i]
				xy2 := indexClusterGrid[j]
				xDist := float64(xy1[0] - xy2[0])
				yDist := float64(xy1[1] - xy2[1])
				dist[n] = math.Pow(xDist*xDist*lateralPenalty+yDist*yDist, 0.65)
				n++
			}
		}
		_ = h
	}

	var res [48]FspeedPair
	for i := range res {
		res[i] = FspeedPair{Pair: idx[i], Dist: dist[i]}
	}
	return res
}

// qwertyPos maps a QWERTY key identity to its position index (0-29), used
// only to express ScissorIndices in the same terms the reference source
// does.
var qwertyPos = map[rune]uint8{
	'q': 0, 'w': 1, 'e': 2, 'r': 3, 't': 4, 'y': 5, 'u': 6, 'i': 7, 'o': 8, 'p': 9,
	'a': 10, 's': 11, 'd': 12, 'f': 13, 'g': 14, 'h': 15, 'j': 16, 'k': 17, 'l': 18, ';': 19,
	'z': 20, 'x': 21, 'c': 22, 'v': 23, 'b': 24, 'n': 25, 'm': 26, ',': 27, '.': 28, '/': 29,
}

func fromQwerty(c1, c2 rune) PosPair {
	return PosPair{qwertyPos[c1], qwertyPos[c2]}
}

// ScissorIndices returns the 26 ergonomically "bad" bigram position pairs:
// pinky-to-ring home-row stretches, pinky-to-ring bottom-row stretches,
// inner-index stretches, and the adjacent-column two-row stretches,
// expressed in QWERTY position terms and translated via qwertyPos.
func ScissorIndices() [26]PosPair {
	return [26]PosPair{
		fromQwerty('q', 's'), fromQwerty('p', 'l'),
		fromQwerty('a', 'x'), fromQwerty(';', '.'),
		fromQwerty('e', 'b'), fromQwerty('e', 'g'), fromQwerty('c', 't'), fromQwerty('y', ','),
		fromQwerty('q', 'x'), fromQwerty('w', 'z'), fromQwerty('w', 'c'), fromQwerty('e', 'x'),
		fromQwerty('r', 'c'), fromQwerty('u', ','), fromQwerty('i', '.'), fromQwerty('o', ','),
		fromQwerty('o', '/'), fromQwerty('p', '.'), fromQwerty('f', 'c'), fromQwerty('d', 't'),
		fromQwerty('y', 'k'), fromQwerty('d', 'r'), fromQwerty('u', 'k'), fromQwerty('d', 'b'),
		fromQwerty('s', 'r'), fromQwerty('s', 't'),
	}
}

// FspeedFingerGroups gives, for each of the 48 FspeedPairs entries (same
// order as SfbIndices/FspeedPairs), the finger group (0-7) whose
// per-finger finger-speed total the pair contributes to.
func FspeedFingerGroups() [48]uint8 {
	var res [48]uint8
	n := 0
	for _, col := range nonIndexCols {
		finger := ColToFinger[col]
		for i := 0; i < 3; i++ {
			res[n] = finger
			n++
		}
	}
	for i := 0; i < 15; i++ {
		res[n] = ColToFinger[3]
		n++
	}
	for i := 0; i < 15; i++ {
		res[n] = ColToFinger[5]
		n++
	}
	return res
}

// FingerPositions groups the 30 positions by the finger (0-7) that types
// them, used to compute each finger's per-finger usage total.
func FingerPositions() [8][]uint8 {
	var res [8][]uint8
	for i := uint8(0); i < 30; i++ {
		f := PosToFinger(i)
		res[f] = append(res[f], i)
	}
	return res
}

// RefinementColumns are the six positions permuted by the column-permutation
// refinement pass: the top-row positions of the six non-index columns
// (pinky, ring and middle of each hand). The pass swaps these positions
// only; the home-row and bottom-row keys of those columns stay in place.
var RefinementColumns = [6]uint8{0, 1, 2, 7, 8, 9}

// IndexClusterSiblings pairs every position in a hand's two-column index
// cluster with its sibling in the other index column of the same hand and
// row, used by the hand-mirror step of the column-permutation refinement.
var IndexClusterSiblings = [6][2]uint8{
	{3, 4}, {13, 14}, {23, 24},
	{5, 6}, {15, 16}, {25, 26},
}
