package sample

import (
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/oisee/ecc-bqm-compiler/pkg/bqm"
)

// chain is a single Metropolis-Hastings MCMC chain with geometric
// temperature decay, carried over from the teacher's stoke.Chain: the
// accept/reject rule in step is unchanged, with byte/cycle cost
// replaced by BQM energy and instruction-sequence mutation replaced by
// single-bit flips.
type chain struct {
	vars        []bqm.Name
	current     map[bqm.Name]int
	currentCost int64
	best        map[bqm.Name]int
	bestCost    int64
	temperature float64
	rng         *rand.Rand

	accepted, rejected int64
}

func newChain(snap *bqm.Snapshot, vars []bqm.Name, temperature float64, seed uint64) *chain {
	rng := rand.New(rand.NewPCG(seed, seed^0xDEADBEEF))
	current := make(map[bqm.Name]int, len(vars))
	for _, v := range vars {
		current[v] = rng.IntN(2)
	}
	cost := snap.Energy(current)
	return &chain{
		vars:        vars,
		current:     current,
		currentCost: cost,
		best:        cloneAssignment(current),
		bestCost:    cost,
		temperature: temperature,
		rng:         rng,
	}
}

// step flips one random bit, evaluates the resulting energy, and
// accepts or rejects it by the Metropolis criterion before decaying
// the temperature.
func (c *chain) step(snap *bqm.Snapshot, decay float64) {
	if len(c.vars) == 0 {
		return
	}
	flip := c.vars[c.rng.IntN(len(c.vars))]
	c.current[flip] ^= 1
	newCost := snap.Energy(c.current)
	delta := newCost - c.currentCost

	accept := false
	switch {
	case delta <= 0:
		accept = true
	case c.temperature > 0:
		prob := math.Exp(-float64(delta) / c.temperature)
		accept = c.rng.Float64() < prob
	}

	if accept {
		c.currentCost = newCost
		c.accepted++
		if newCost < c.bestCost {
			c.best = cloneAssignment(c.current)
			c.bestCost = newCost
		}
	} else {
		c.current[flip] ^= 1 // revert
		c.rejected++
	}

	c.temperature *= decay
}

// Annealer is a multi-chain simulated annealer: Chains independent
// chains run Iterations Metropolis-Hastings steps each, starting from a
// random assignment and a temperature that decays by Decay every step.
// The lowest-energy sample seen across every chain is returned.
//
// Unlike Exact, Annealer gives no guarantee of finding the true ground
// state — it is the practical sampler for models too large to
// enumerate, mirroring the teacher's STOKE search, which trades the
// same completeness for scale.
type Annealer struct {
	Chains      int
	Iterations  int
	Decay       float64
	Temperature float64
	// Seed seeds every chain deterministically (chain i uses
	// Seed + i*golden-ratio-constant); zero means derive a seed from
	// the runtime random source, matching the teacher's rand.Uint64()
	// base seed.
	Seed uint64
}

func (a Annealer) withDefaults() Annealer {
	if a.Chains <= 0 {
		a.Chains = 1
	}
	if a.Iterations <= 0 {
		a.Iterations = 100_000
	}
	if a.Decay <= 0 || a.Decay >= 1 {
		a.Decay = 0.9999
	}
	if a.Temperature <= 0 {
		a.Temperature = 1.0
	}
	if a.Seed == 0 {
		a.Seed = rand.Uint64()
	}
	return a
}

// Sample runs Chains independent chains concurrently, one goroutine
// each, and returns the single lowest-energy assignment found as a
// one-element SampleSet.
func (a Annealer) Sample(snap *bqm.Snapshot) (bqm.SampleSet, error) {
	cfg := a.withDefaults()
	vars := snap.Variables()
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	results := make([]*chain, cfg.Chains)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Chains; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			seed := cfg.Seed + uint64(idx)*0x9E3779B97F4A7C15
			c := newChain(snap, vars, cfg.Temperature, seed)
			for iter := 0; iter < cfg.Iterations; iter++ {
				c.step(snap, cfg.Decay)
			}
			results[idx] = c
		}(i)
	}
	wg.Wait()

	var best *chain
	for _, c := range results {
		if best == nil || c.bestCost < best.bestCost {
			best = c
		}
	}
	if best == nil {
		return bqm.SampleSet{{Assignment: map[bqm.Name]int{}, Energy: snap.Offset, Occurrences: 1}}, nil
	}
	return bqm.SampleSet{{
		Assignment:  best.best,
		Energy:      best.bestCost,
		Occurrences: 1,
	}}, nil
}
