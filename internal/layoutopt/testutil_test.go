package layoutopt

import (
	"github.com/rbscholtus/klayopt/internal/config"
	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/langdata"
	"github.com/rbscholtus/klayopt/internal/trigrams"
)

// testMatrix is a qwerty-shaped 30-key matrix; every character it contains
// also appears in testLanguageData so every table has something non-zero to
// chew on.
func testMatrix() [30]rune {
	return [30]rune{
		'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p',
		'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';',
		'z', 'x', 'c', 'v', 'b', 'n', 'm', ',', '.', '/',
	}
}

// testLanguageData builds a small, hand-authored frequency bundle covering
// every character in testMatrix, with deliberately uneven character
// frequencies, a handful of direct bigrams/skipgrams, and a short trigram
// list touching several of trigrams.Reference's pattern branches.
func testLanguageData() *langdata.LanguageData {
	ld := langdata.New("test")

	freqs := map[rune]float64{
		'e': 0.12, 't': 0.09, 'a': 0.08, 'o': 0.075, 'i': 0.07,
		'n': 0.067, 's': 0.063, 'h': 0.061, 'r': 0.06, 'd': 0.043,
		'l': 0.04, 'u': 0.028, 'c': 0.028, 'm': 0.024, 'w': 0.024,
		'f': 0.022, 'g': 0.02, 'y': 0.02, 'p': 0.019, 'b': 0.015,
		'v': 0.0098, 'k': 0.0077, 'j': 0.0015, 'x': 0.0015, 'q': 0.00095,
		'z': 0.00074,
	}
	for r, f := range freqs {
		ld.Characters[langdata.Unigram(r)] = f
	}
	// round out the matrix's punctuation keys with small, non-zero weight.
	for _, r := range []rune{';', ',', '.', '/'} {
		ld.Characters[langdata.Unigram(r)] = 0.002
	}

	ld.Bigrams[langdata.Bigram{'t', 'h'}] = 0.03
	ld.Bigrams[langdata.Bigram{'h', 'e'}] = 0.025
	ld.Bigrams[langdata.Bigram{'e', 'r'}] = 0.02
	ld.Bigrams[langdata.Bigram{'a', 'n'}] = 0.018
	ld.Bigrams[langdata.Bigram{'r', 'e'}] = 0.012

	ld.Skipgrams[langdata.Bigram{'t', 'e'}] = 0.01
	ld.Skipgrams2[langdata.Bigram{'t', 'h'}] = 0.004
	ld.Skipgrams3[langdata.Bigram{'a', 'e'}] = 0.002

	ld.Trigrams = []langdata.TrigramFreq{
		{Trigram: langdata.Trigram{'t', 'h', 'e'}, Freq: 0.012},
		{Trigram: langdata.Trigram{'a', 'n', 'd'}, Freq: 0.008},
		{Trigram: langdata.Trigram{'i', 'n', 'g'}, Freq: 0.006},
		{Trigram: langdata.Trigram{'h', 'e', 'r'}, Freq: 0.004},
		{Trigram: langdata.Trigram{'e', 's', 't'}, Freq: 0.003},
		{Trigram: langdata.Trigram{'e', 'r', 'e'}, Freq: 0.002},
	}
	return ld
}

func testTables(cfg config.Config) *Tables {
	return NewTables(testLanguageData(), cfg, trigrams.Reference{})
}

func testLayout() *kblayout.Layout {
	return kblayout.New("test", testMatrix())
}
