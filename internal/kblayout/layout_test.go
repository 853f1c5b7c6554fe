package kblayout

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qwertyMatrix() [30]rune {
	return [30]rune{
		'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p',
		'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';',
		'z', 'x', 'c', 'v', 'b', 'n', 'm', ',', '.', '/',
	}
}

func TestNewPanicsOnDuplicateCharacters(t *testing.T) {
	m := qwertyMatrix()
	m[1] = 'q' // duplicate
	assert.Panics(t, func() { New("broken", m) })
}

func TestFingerAndPosOf(t *testing.T) {
	l := New("qwerty", qwertyMatrix())

	f, ok := l.Finger('q')
	require.True(t, ok)
	assert.EqualValues(t, 0, f)

	pos, ok := l.PosOf('q')
	require.True(t, ok)
	assert.EqualValues(t, 0, pos)

	_, ok = l.Finger('!')
	assert.False(t, ok)
}

func TestSwapUpdatesBothMaps(t *testing.T) {
	l := New("qwerty", qwertyMatrix())

	l.Swap(0, 1) // q <-> w
	assert.Equal(t, 'w', l.Matrix[0])
	assert.Equal(t, 'q', l.Matrix[1])

	pos, ok := l.PosOf('q')
	require.True(t, ok)
	assert.EqualValues(t, 1, pos)

	f, ok := l.Finger('q')
	require.True(t, ok)
	assert.EqualValues(t, 1, f) // position 1 -> finger 1 (LR)
}

func TestCloneIsIndependent(t *testing.T) {
	l := New("qwerty", qwertyMatrix())
	c := l.Clone()
	c.Swap(0, 1)

	assert.Equal(t, 'q', l.Matrix[0])
	assert.Equal(t, 'w', c.Matrix[0])
}

func TestRandomPreservesCharacterSet(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	l := Random("r", qwertyMatrix(), rng)

	seen := make(map[rune]bool, 30)
	for _, r := range l.Matrix {
		seen[r] = true
	}
	assert.Len(t, seen, 30)
}

func TestRandomWithPinsKeepsPinnedPositions(t *testing.T) {
	base := qwertyMatrix()
	pins := []uint8{0, 5, 29}
	rng := rand.New(rand.NewPCG(7, 3))

	l := RandomWithPins("pinned", base, pins, rng)
	for _, p := range pins {
		assert.Equal(t, base[p], l.Matrix[p])
	}
}

func TestUnpinnedSwapsExcludesPinnedPositions(t *testing.T) {
	pins := []uint8{0, 1}
	swaps := UnpinnedSwaps(pins)
	for _, sw := range swaps {
		assert.NotEqual(t, uint8(0), sw[0])
		assert.NotEqual(t, uint8(0), sw[1])
		assert.NotEqual(t, uint8(1), sw[0])
		assert.NotEqual(t, uint8(1), sw[1])
	}
}

func TestSaveAndLoadFileRoundTrip(t *testing.T) {
	l := New("qwerty", qwertyMatrix())
	path := filepath.Join(t.TempDir(), "qwerty.kb")
	require.NoError(t, l.SaveFile(path))

	loaded, err := LoadFile("qwerty", path)
	require.NoError(t, err)
	assert.Equal(t, l.Matrix, loaded.Matrix)
	assert.Equal(t, l.String(), loaded.String())
}

func TestLoadFileRejectsDuplicateCharacter(t *testing.T) {
	content := "q w e r t y u i o p\na s d f g h j k l ;\nz x c v b n m , . q\n"
	path := filepath.Join(t.TempDir(), "dup.kb")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadFile("dup", path)
	assert.Error(t, err)
}

func TestLoadFileRejectsWrongFieldCount(t *testing.T) {
	content := "q w e r t y u i o\na s d f g h j k l ;\nz x c v b n m , . /\n"
	path := filepath.Join(t.TempDir(), "short.kb")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadFile("short", path)
	assert.Error(t, err)
}
