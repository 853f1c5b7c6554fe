// Package kblayout defines the fixed 30-character keyboard matrix the cost
// model and optimizer operate on, plus the two operations the rest of the
// core needs from it: loading/saving the ".kb" file format, and swapping
// two positions in place.
package kblayout

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/rbscholtus/klayopt/internal/geometry"
	"github.com/rbscholtus/klayopt/internal/klutil"
)

// Layout is a fixed 3x10 assignment of characters to key positions,
// row-major (0-9 top row, 10-19 home row, 20-29 bottom row), plus the
// character -> finger map kept in sync with Matrix. Score holds the last
// value a full rescore produced; callers must not trust it stale across a
// swap until the layout's owner rescores.
type Layout struct {
	Name     string
	Matrix   [30]rune
	charFing map[rune]uint8
	charPos  map[rune]uint8
	Score    float64
}

// New builds a Layout from a 30-character matrix. It panics if the matrix
// does not contain exactly 30 distinct characters: a Layout's invariant
// (every character appears exactly once) is assumed everywhere else in the
// core, and this is the only constructor that can catch a violation before
// it silently corrupts scoring.
func New(name string, matrix [30]rune) *Layout {
	l := &Layout{Name: name, Matrix: matrix}
	l.rebuildMaps()
	if len(l.charFing) != 30 {
		panic(fmt.Sprintf("layout %q: matrix does not contain 30 distinct characters", name))
	}
	return l
}

func (l *Layout) rebuildMaps() {
	l.charFing = make(map[rune]uint8, 30)
	l.charPos = make(map[rune]uint8, 30)
	for i, r := range l.Matrix {
		l.charFing[r] = geometry.PosToFinger(uint8(i))
		l.charPos[r] = uint8(i)
	}
}

// Finger returns the finger (0-7) that types r, and whether r is present.
func (l *Layout) Finger(r rune) (uint8, bool) {
	f, ok := l.charFing[r]
	return f, ok
}

// PosOf returns the position (0-29) of r, and whether r is present.
func (l *Layout) PosOf(r rune) (uint8, bool) {
	p, ok := l.charPos[r]
	return p, ok
}

// Swap exchanges the characters at positions i and j and updates the
// character->finger map incrementally (no full rebuild).
func (l *Layout) Swap(i, j uint8) {
	if i == j {
		return
	}
	l.Matrix[i], l.Matrix[j] = l.Matrix[j], l.Matrix[i]
	l.charFing[l.Matrix[i]] = geometry.PosToFinger(i)
	l.charFing[l.Matrix[j]] = geometry.PosToFinger(j)
	l.charPos[l.Matrix[i]] = i
	l.charPos[l.Matrix[j]] = j
}

// SetMatrix replaces l's matrix wholesale and rebuilds the character maps.
// Used by the column-permutation refinement to restore the best
// arrangement found after a full traversal has left the layout at an
// arbitrary leaf.
func (l *Layout) SetMatrix(m [30]rune) {
	l.Matrix = m
	l.rebuildMaps()
}

// Clone returns an independent copy of l, suitable for a parallel-restart
// task that must not share mutable state with its siblings.
func (l *Layout) Clone() *Layout {
	c := &Layout{Name: l.Name, Matrix: l.Matrix, Score: l.Score}
	c.rebuildMaps()
	return c
}

// Random builds a layout by shuffling chars using rng, then assigning them
// row-major to the 30 positions.
func Random(name string, chars [30]rune, rng *rand.Rand) *Layout {
	shuffled := chars
	rng.Shuffle(30, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return New(name, shuffled)
}

// RandomWithPins builds a layout starting from based, shuffling only the
// positions not listed in pins and leaving pinned positions untouched.
func RandomWithPins(name string, based [30]rune, pins []uint8, rng *rand.Rand) *Layout {
	pinned := make(map[uint8]bool, len(pins))
	for _, p := range pins {
		pinned[p] = true
	}

	free := make([]uint8, 0, 30)
	for i := uint8(0); i < 30; i++ {
		if !pinned[i] {
			free = append(free, i)
		}
	}

	result := based
	values := make([]rune, len(free))
	for i, p := range free {
		values[i] = based[p]
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
	for i, p := range free {
		result[p] = values[i]
	}

	return New(name, result)
}

// UnpinnedSwaps returns the subset of geometry.PossibleSwaps where neither
// position is in pins: the reduced candidate set generate_with_pins uses.
func UnpinnedSwaps(pins []uint8) []geometry.PosPair {
	pinned := make(map[uint8]bool, len(pins))
	for _, p := range pins {
		pinned[p] = true
	}
	out := make([]geometry.PosPair, 0, len(geometry.PossibleSwaps))
	for _, sw := range geometry.PossibleSwaps {
		if !pinned[sw[0]] && !pinned[sw[1]] {
			out = append(out, sw)
		}
	}
	return out
}

// readLine returns the next non-blank, non-comment line from scanner.
func readLine(scanner *bufio.Scanner) (string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("unexpected end of file")
}

// LoadFile reads a ".kb" layout file: three whitespace-separated lines of
// ten single-character fields each, normalized to a flat 30-character
// matrix. It returns an error (never panics) on a malformed file, so
// callers performing a batch load can skip-and-warn per file.
func LoadFile(name, path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer klutil.CloseFile(f)

	scanner := bufio.NewScanner(f)

	var matrix [30]rune
	seen := make(map[rune]struct{}, 30)
	idx := 0
	for row := 0; row < 3; row++ {
		line, err := readLine(scanner)
		if err != nil {
			return nil, fmt.Errorf("layout file %s: row %d: %w", path, row+1, err)
		}
		fields := strings.Fields(line)
		if len(fields) != 10 {
			return nil, fmt.Errorf("layout file %s: row %d has %d keys, expected 10", path, row+1, len(fields))
		}
		for _, field := range fields {
			runes := []rune(field)
			if len(runes) != 1 {
				return nil, fmt.Errorf("layout file %s: row %d: key %q is not a single character", path, row+1, field)
			}
			r := runes[0]
			if _, dup := seen[r]; dup {
				return nil, fmt.Errorf("layout file %s: duplicate character %q", path, string(r))
			}
			seen[r] = struct{}{}
			matrix[idx] = r
			idx++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(seen) != 30 {
		return nil, fmt.Errorf("layout file %s: found %d distinct characters, expected 30", path, len(seen))
	}

	return New(name, matrix), nil
}

// SaveFile writes l to path in the three-lines-of-ten ".kb" format.
func (l *Layout) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer klutil.CloseFile(f)

	w := bufio.NewWriter(f)
	defer klutil.FlushWriter(w)

	for row := 0; row < 3; row++ {
		for col := 0; col < 10; col++ {
			if col > 0 {
				klutil.MustFprintf(w, " ")
			}
			klutil.MustFprintf(w, "%c", l.Matrix[row*10+col])
		}
		klutil.MustFprintf(w, "\n")
	}
	return nil
}

// String renders the layout as the same three-lines-of-ten text SaveFile
// writes, without touching disk — used by reports and tests.
func (l *Layout) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < 10; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(l.Matrix[row*10+col])
		}
	}
	return sb.String()
}
