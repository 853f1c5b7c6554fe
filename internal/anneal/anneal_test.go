package anneal

import (
	"testing"

	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/langdata"
	"github.com/rbscholtus/klayopt/internal/layoutopt"
	"github.com/rbscholtus/klayopt/internal/trigrams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatrix() [30]rune {
	return [30]rune{
		'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p',
		'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';',
		'z', 'x', 'c', 'v', 'b', 'n', 'm', ',', '.', '/',
	}
}

func testTables() *layoutopt.Tables {
	ld := langdata.New("test")
	for r, f := range map[rune]float64{'e': 0.12, 't': 0.09, 'a': 0.08, 'h': 0.06, 'r': 0.06} {
		ld.Characters[langdata.Unigram(r)] = f
	}
	ld.Bigrams[langdata.Bigram{'t', 'h'}] = 0.03
	return layoutopt.NewTables(ld, config.Default(), trigrams.Reference{})
}

func TestRefineRejectsUnknownAcceptPolicy(t *testing.T) {
	tbl := testTables()
	l := kblayout.New("t", testMatrix())
	_, err := Refine(tbl, l, nil, 5, "bogus")
	assert.Error(t, err)
}

func TestRefineReturnsScoredClone(t *testing.T) {
	tbl := testTables()
	l := kblayout.New("t", testMatrix())
	before := l.Matrix

	best, err := Refine(tbl, l, nil, 3, "always")
	require.NoError(t, err)
	require.NotNil(t, best)

	assert.Equal(t, before, l.Matrix) // the caller's original layout is untouched
	assert.InDelta(t, tbl.Score(best), best.Score, 1e-9)
}

func TestRefineHoldsPinnedPositions(t *testing.T) {
	tbl := testTables()
	l := kblayout.New("t", testMatrix())
	pins := []uint8{0, 1, 2}

	best, err := Refine(tbl, l, pins, 3, "always")
	require.NoError(t, err)
	for _, p := range pins {
		assert.Equal(t, l.Matrix[p], best.Matrix[p])
	}
}
