package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/langdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func testMatrix() [30]rune {
	return [30]rune{
		'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p',
		'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';',
		'z', 'x', 'c', 'v', 'b', 'n', 'm', ',', '.', '/',
	}
}

// setupEnv builds a temp langdata file and layouts dir, returning the two
// common flag arguments every command needs.
func setupEnv(t *testing.T) (langdataDir, layoutsDir string) {
	t.Helper()
	dir := t.TempDir()

	langdataDir = filepath.Join(dir, "langdata")
	require.NoError(t, os.MkdirAll(langdataDir, 0o755))
	ld := langdata.New("english")
	for r, f := range map[rune]float64{'e': 0.12, 't': 0.09, 'a': 0.08, 'h': 0.06, 'r': 0.06, 'n': 0.05, 'i': 0.05, 'o': 0.04} {
		ld.Characters[langdata.Unigram(r)] = f
	}
	// generate draws its 30 keys from the language data's characters, so
	// every key of testMatrix needs an entry.
	for _, r := range testMatrix() {
		if _, ok := ld.Characters[langdata.Unigram(r)]; !ok {
			ld.Characters[langdata.Unigram(r)] = 0.001
		}
	}
	ld.Bigrams[langdata.Bigram{'t', 'h'}] = 0.03
	require.NoError(t, ld.SaveJSON(filepath.Join(langdataDir, "english.json")))

	layoutsDir = filepath.Join(dir, "layouts")
	require.NoError(t, os.MkdirAll(layoutsDir, 0o755))

	return langdataDir, layoutsDir
}

func testApp() *cli.App {
	return &cli.App{
		Name: "klayopt",
		Commands: []*cli.Command{
			generateCommand,
			optimiseCommand,
			viewCommand,
			rankCommand,
		},
	}
}

func TestGenerateCommandSavesLayouts(t *testing.T) {
	langdataDir, layoutsDir := setupEnv(t)

	err := testApp().Run([]string{"klayopt", "generate",
		"--langdata-dir", langdataDir, "--out", layoutsDir, "--n", "2"})
	require.NoError(t, err)

	entries, err := os.ReadDir(layoutsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestViewCommandAcceptsLayoutFile(t *testing.T) {
	langdataDir, layoutsDir := setupEnv(t)

	l := kblayout.New("qwerty", testMatrix())
	path := filepath.Join(layoutsDir, "qwerty.kb")
	require.NoError(t, l.SaveFile(path))

	err := testApp().Run([]string{"klayopt", "view",
		"--langdata-dir", langdataDir, "--layouts-dir", layoutsDir, path})
	assert.NoError(t, err)
}

func TestViewCommandRequiresAtLeastOneArgument(t *testing.T) {
	langdataDir, _ := setupEnv(t)
	err := testApp().Run([]string{"klayopt", "view", "--langdata-dir", langdataDir})
	assert.Error(t, err)
}

func TestRankCommandRanksLayoutDirectory(t *testing.T) {
	langdataDir, layoutsDir := setupEnv(t)

	m2 := testMatrix()
	m2[0], m2[1] = m2[1], m2[0]
	require.NoError(t, kblayout.New("a", testMatrix()).SaveFile(filepath.Join(layoutsDir, "a.kb")))
	require.NoError(t, kblayout.New("b", m2).SaveFile(filepath.Join(layoutsDir, "b.kb")))

	err := testApp().Run([]string{"klayopt", "rank",
		"--langdata-dir", langdataDir, "--layouts-dir", layoutsDir})
	assert.NoError(t, err)
}

func TestRankCommandErrorsOnEmptyDirectory(t *testing.T) {
	langdataDir, layoutsDir := setupEnv(t)
	err := testApp().Run([]string{"klayopt", "rank",
		"--langdata-dir", langdataDir, "--layouts-dir", layoutsDir})
	assert.Error(t, err)
}

func TestOptimiseCommandHoldsPinsAndSavesResult(t *testing.T) {
	langdataDir, layoutsDir := setupEnv(t)

	l := kblayout.New("qwerty", testMatrix())
	path := filepath.Join(layoutsDir, "qwerty.kb")
	require.NoError(t, l.SaveFile(path))

	out := filepath.Join(layoutsDir, "optimised.kb")
	err := testApp().Run([]string{"klayopt", "optimise",
		"--langdata-dir", langdataDir, "--layouts-dir", layoutsDir,
		"--pins", "qw", "--out", out, path})
	require.NoError(t, err)

	result, err := kblayout.LoadFile("optimised", out)
	require.NoError(t, err)
	assert.Equal(t, l.Matrix[0], result.Matrix[0])
	assert.Equal(t, l.Matrix[1], result.Matrix[1])
}

func TestOptimiseCommandRejectsWrongArgCount(t *testing.T) {
	langdataDir, _ := setupEnv(t)
	err := testApp().Run([]string{"klayopt", "optimise", "--langdata-dir", langdataDir})
	assert.Error(t, err)
}
