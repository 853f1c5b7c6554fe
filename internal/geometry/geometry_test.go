package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosToFinger(t *testing.T) {
	tests := []struct {
		pos  uint8
		want uint8
	}{
		{0, 0},   // top-left pinky
		{3, 3},   // left index, outer index column
		{4, 3},   // left index, inner index column
		{5, 4},   // right index, inner index column
		{6, 4},   // right index, outer index column
		{9, 7},   // top-right pinky
		{13, 3},  // home row, left index outer column
		{29, 7},  // bottom-right pinky
	}
	for _, tc := range tests {
		assert.Equalf(t, tc.want, PosToFinger(tc.pos), "pos %d", tc.pos)
	}
}

func TestPossibleSwapsCount(t *testing.T) {
	// every unordered pair of 30 positions: C(30,2) = 435.
	assert.Len(t, PossibleSwaps, 435)

	seen := make(map[PosPair]bool)
	for _, p := range PossibleSwaps {
		require.Less(t, p[0], p[1])
		require.False(t, seen[p])
		seen[p] = true
	}
}

func TestParseKeyboardType(t *testing.T) {
	tests := []struct {
		in      string
		want    KeyboardType
		wantErr bool
	}{
		{"ansi-angle", AnsiAngle, false},
		{"ansi angle", AnsiAngle, false},
		{"iso-angle", IsoAngle, false},
		{"ortho", Ortho, false},
		{"colstag", Colstag, false},
		{"rowstag", RowstagDefault, false},
		{"iso", RowstagDefault, false},
		{"jis", RowstagDefault, false},
		{"ANSI", RowstagDefault, false},
		{"nonsense", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseKeyboardType(tc.in)
		if tc.wantErr {
			assert.Errorf(t, err, "input %q", tc.in)
			continue
		}
		require.NoErrorf(t, err, "input %q", tc.in)
		assert.Equalf(t, tc.want, got, "input %q", tc.in)
	}
}

func TestEffortMapHeatmapScaling(t *testing.T) {
	base := EffortMap(1.0, AnsiAngle)
	doubled := EffortMap(2.0, AnsiAngle)
	for i := range base {
		assert.InDeltaf(t, base[i]*2, doubled[i], 1e-9, "position %d", i)
	}
}

func TestSfbIndicesLength(t *testing.T) {
	idx := SfbIndices()
	assert.Len(t, idx, 48)
	seen := make(map[PosPair]bool)
	for _, p := range idx {
		assert.False(t, seen[p], "duplicate pair %v", p)
		seen[p] = true
	}
}

func TestFspeedPairsNonNegative(t *testing.T) {
	pairs := FspeedPairs(1.0)
	for _, p := range pairs {
		assert.GreaterOrEqualf(t, p.Dist, 0.0, "pair %v", p.Pair)
	}
}

func TestScissorIndicesCount(t *testing.T) {
	assert.Len(t, ScissorIndices(), 26)
}

func TestFingerPositionsPartitionsAllThirty(t *testing.T) {
	groups := FingerPositions()
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, 30, total)
}
