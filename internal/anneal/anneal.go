// Package anneal is the optional simulated-annealing tail pass: after the
// hill-climb plus column-permutation search in internal/layoutopt converges,
// a caller whose Config.Refinement selects RefinementSimulatedAnnealing may
// hand the result to Refine for a further eaopt-driven search, grounded on
// the teacher's optimisation.go.
package anneal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/MaxHalford/eaopt"
	"github.com/rbscholtus/klayopt/internal/kblayout"
	"github.com/rbscholtus/klayopt/internal/layoutopt"
)

// genome adapts a *kblayout.Layout to eaopt.Genome: Evaluate negates
// Tables.Score since eaopt minimizes fitness and this engine maximizes
// score; Mutate swaps two unpinned positions; Crossover is a no-op, matching
// the teacher's own single-genome annealing (no population recombination).
type genome struct {
	tables *layoutopt.Tables
	layout *kblayout.Layout
	pinned []bool
}

func newGenome(t *layoutopt.Tables, l *kblayout.Layout, pins []uint8) *genome {
	pinned := make([]bool, 30)
	for _, p := range pins {
		pinned[p] = true
	}
	return &genome{tables: t, layout: l, pinned: pinned}
}

func (g *genome) Evaluate() (float64, error) {
	return -g.tables.Score(g.layout), nil
}

func (g *genome) Mutate(rng *rand.Rand) {
	free := make([]uint8, 0, 30)
	for i, pinned := range g.pinned {
		if !pinned {
			free = append(free, uint8(i))
		}
	}
	if len(free) < 2 {
		panic(fmt.Sprintf("not enough unpinned positions to mutate: %d", len(free)))
	}

	i := rng.Intn(len(free))
	j := rng.Intn(len(free))
	for j == i {
		j = rng.Intn(len(free))
	}
	g.layout.Swap(free[i], free[j])
}

// Crossover does nothing; it exists only so *genome implements eaopt.Genome.
func (g *genome) Crossover(_ eaopt.Genome, _ *rand.Rand) {}

func (g *genome) Clone() eaopt.Genome {
	return &genome{tables: g.tables, layout: g.layout.Clone(), pinned: g.pinned}
}

// acceptFunc returns a ModSimulatedAnnealing.Accept function for the named
// cooling policy, matching the five policies the teacher's getAcceptFunc
// offers.
func acceptFunc(name string) (func(gen, maxGen uint, e0, e1 float64) float64, error) {
	switch name {
	case "always":
		return func(gen, maxGen uint, e0, e1 float64) float64 { return 1.0 }, nil
	case "never":
		return func(gen, maxGen uint, e0, e1 float64) float64 { return 0.0 }, nil
	case "drop-slow":
		return func(gen, maxGen uint, e0, e1 float64) float64 {
			t := 1.0 - float64(gen)/float64(maxGen)
			return (math.Cos(t*math.Pi) + 1.0) / 2.0
		}, nil
	case "linear":
		return func(gen, maxGen uint, e0, e1 float64) float64 {
			return 1.0 - float64(gen)/float64(maxGen)
		}, nil
	case "drop-fast":
		return func(gen, maxGen uint, e0, e1 float64) float64 {
			t := 1.0 - float64(gen)/float64(maxGen)
			return math.Exp(-3.0 * (1 - t))
		}, nil
	default:
		return nil, fmt.Errorf("unknown accept-worse policy %q", name)
	}
}

// Refine runs eaopt's simulated-annealing GA model for generations
// iterations starting from layout (typically one layoutopt.Optimize has
// already converged), honoring pins, and returns the best layout found —
// cloned, so the caller's original layout is left untouched. acceptWorse
// selects the cooling policy ("always", "never", "drop-slow", "linear",
// "drop-fast").
func Refine(tables *layoutopt.Tables, layout *kblayout.Layout, pins []uint8, generations uint, acceptWorse string) (*kblayout.Layout, error) {
	accept, err := acceptFunc(acceptWorse)
	if err != nil {
		return nil, err
	}

	cfg := eaopt.NewDefaultGAConfig()
	cfg.NGenerations = generations
	cfg.Model = eaopt.ModSimulatedAnnealing{Accept: accept}

	ga, err := cfg.NewGA()
	if err != nil {
		return nil, fmt.Errorf("building simulated-annealing GA: %w", err)
	}

	seed := newGenome(tables, layout.Clone(), pins)
	if err := ga.Minimize(func(_ *rand.Rand) eaopt.Genome { return seed }); err != nil {
		return nil, fmt.Errorf("running simulated annealing: %w", err)
	}

	best := ga.HallOfFame[0].Genome.(*genome)
	best.layout.Score = tables.Score(best.layout)
	return best.layout, nil
}
