// Package langdata holds the frequency bundle the optimizer scores layouts
// against: per-character frequencies, bigrams, three skip-distances of
// skipgrams, and an ordered trigram list. It deserializes a pre-materialized
// bundle from JSON; it does not tokenize raw text or count n-grams itself —
// that ingestion step is a separate external collaborator, out of scope here.
package langdata

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rbscholtus/klayopt/internal/klutil"
)

// Unigram is a single character, given its own type so it can implement
// encoding.TextMarshaler and serialize as a bare JSON map key.
type Unigram rune

func (u Unigram) String() string { return string(rune(u)) }

func (u Unigram) MarshalText() ([]byte, error) {
	return []byte(string(rune(u))), nil
}

func (u *Unigram) UnmarshalText(text []byte) error {
	runes := []rune(string(text))
	if len(runes) != 1 {
		return fmt.Errorf("invalid Unigram length: %d", len(runes))
	}
	*u = Unigram(runes[0])
	return nil
}

// Bigram is an ordered pair of characters: a direct bigram, or the (first,
// last) pair of a skipgram window, depending on which map it keys.
type Bigram [2]rune

func (b Bigram) String() string { return string(b[:]) }

func (b Bigram) MarshalText() ([]byte, error) {
	return []byte(string(b[:])), nil
}

func (b *Bigram) UnmarshalText(text []byte) error {
	runes := []rune(string(text))
	if len(runes) != 2 {
		return fmt.Errorf("invalid Bigram length: %d", len(runes))
	}
	b[0], b[1] = runes[0], runes[1]
	return nil
}

// Trigram is an ordered triple of characters.
type Trigram [3]rune

func (t Trigram) String() string { return string(t[:]) }

func (t Trigram) MarshalText() ([]byte, error) {
	return []byte(string(t[:])), nil
}

func (t *Trigram) UnmarshalText(text []byte) error {
	runes := []rune(string(text))
	if len(runes) != 3 {
		return fmt.Errorf("invalid Trigram length: %d", len(runes))
	}
	t[0], t[1], t[2] = runes[0], runes[1], runes[2]
	return nil
}

// TrigramFreq pairs a trigram with its frequency. LanguageData.Trigrams is
// kept ordered descending by Freq, matching what the optimizer's per-char
// trigram index needs: the top-N most frequent trigrams.
type TrigramFreq struct {
	Trigram Trigram `json:"trigram"`
	Freq    float64 `json:"freq"`
}

// LanguageData is the immutable frequency bundle for one language. It is
// built once at Engine construction and thereafter read by every task
// without mutation.
type LanguageData struct {
	Name string `json:"name"`

	// Characters maps each character to its frequency in [0,1]; frequencies
	// across the bundle sum to approximately 1.
	Characters map[Unigram]float64 `json:"characters"`

	// Bigrams holds direct two-character sequences. Skipgrams, Skipgrams2
	// and Skipgrams3 hold pairs formed by skipping 1, 2 and 3 intermediate
	// characters respectively.
	Bigrams    map[Bigram]float64 `json:"bigrams"`
	Skipgrams  map[Bigram]float64 `json:"skipgrams"`
	Skipgrams2 map[Bigram]float64 `json:"skipgrams2"`
	Skipgrams3 map[Bigram]float64 `json:"skipgrams3"`

	// Trigrams is ordered descending by Freq.
	Trigrams []TrigramFreq `json:"trigrams"`
}

// New returns an empty LanguageData with all maps initialized, ready to be
// populated by a caller or a test fixture.
func New(name string) *LanguageData {
	return &LanguageData{
		Name:       name,
		Characters: make(map[Unigram]float64),
		Bigrams:    make(map[Bigram]float64),
		Skipgrams:  make(map[Bigram]float64),
		Skipgrams2: make(map[Bigram]float64),
		Skipgrams3: make(map[Bigram]float64),
	}
}

// CharFreq returns the frequency of r, or 0 if r is not in the bundle.
func (ld *LanguageData) CharFreq(r rune) float64 {
	return klutil.WithDefault(ld.Characters, Unigram(r), 0)
}

// BigramFreq returns the frequency of the ordered pair (a, b) in bigrams.
func (ld *LanguageData) BigramFreq(a, b rune) float64 {
	return klutil.WithDefault(ld.Bigrams, Bigram{a, b}, 0)
}

// SkipgramFreq returns the frequency of the ordered pair (a, b) at the given
// gap (1, 2, or 3 intermediate characters skipped).
func (ld *LanguageData) SkipgramFreq(gap int, a, b rune) float64 {
	switch gap {
	case 1:
		return klutil.WithDefault(ld.Skipgrams, Bigram{a, b}, 0)
	case 2:
		return klutil.WithDefault(ld.Skipgrams2, Bigram{a, b}, 0)
	case 3:
		return klutil.WithDefault(ld.Skipgrams3, Bigram{a, b}, 0)
	default:
		return 0
	}
}

// sortTrigrams re-sorts Trigrams descending by Freq; called after Load so
// callers can rely on ordering regardless of how the JSON source serialized
// the list.
func (ld *LanguageData) sortTrigrams() {
	sort.SliceStable(ld.Trigrams, func(i, j int) bool {
		return ld.Trigrams[i].Freq > ld.Trigrams[j].Freq
	})
}

// LoadJSON loads a LanguageData bundle from the given JSON file path.
func LoadJSON(path string) (*LanguageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer klutil.CloseFile(f)

	var ld LanguageData
	dec := json.NewDecoder(f)
	if err := dec.Decode(&ld); err != nil {
		return nil, fmt.Errorf("decoding language data %s: %w", path, err)
	}
	if ld.Characters == nil {
		ld.Characters = make(map[Unigram]float64)
	}
	ld.sortTrigrams()
	return &ld, nil
}

// SaveJSON writes the bundle to path as indented JSON, useful for tests and
// for caching a bundle built by an external ingestion tool.
func (ld *LanguageData) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer klutil.CloseFile(f)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ld); err != nil {
		return fmt.Errorf("encoding language data to %s: %w", path, err)
	}
	return nil
}
