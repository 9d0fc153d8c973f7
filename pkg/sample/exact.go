// Package sample provides circuit.Sampler implementations: Exact, a
// brute-force enumerator suitable for small models, and Annealer, a
// multi-chain Metropolis-Hastings simulated annealer for everything
// else. Neither depends on pkg/circuit; each only sees a *bqm.Snapshot,
// matching the sampler boundary the circuit layer defines.
package sample

import (
	"fmt"

	"github.com/oisee/ecc-bqm-compiler/pkg/bqm"
)

// Exact enumerates every assignment of the snapshot's free variables
// and returns one ground state (the first minimum-energy assignment in
// enumeration order), recording how many distinct assignments shared
// that energy in Occurrences; the other ground states are not returned.
// It is only practical for models with about two dozen free variables
// or fewer — the enumeration is 2^n in the variable count.
//
// The recursive bit-by-bit construction mirrors the teacher's
// EnumerateSequences: build the assignment positionally, recurse, and
// let the leaf callback decide what to keep.
type Exact struct {
	// MaxVariables caps the snapshot size Sample will accept, guarding
	// against an accidental 2^large_n enumeration. Zero means no cap.
	MaxVariables int
}

// Sample enumerates every {0,1} assignment of snap's variables and
// returns a one-element set holding the first minimum-energy
// assignment, with Occurrences counting how many assignments achieved
// that energy.
func (e Exact) Sample(snap *bqm.Snapshot) (bqm.SampleSet, error) {
	vars := snap.Variables()
	if e.MaxVariables > 0 && len(vars) > e.MaxVariables {
		return nil, &tooManyVariablesError{count: len(vars), max: e.MaxVariables}
	}

	assignment := make(map[bqm.Name]int, len(vars))
	var best *bqm.Sample
	occurrences := 0

	var rec func(i int)
	rec = func(i int) {
		if i == len(vars) {
			e := snap.Energy(assignment)
			switch {
			case best == nil || e < best.Energy:
				snapshot := cloneAssignment(assignment)
				best = &bqm.Sample{Assignment: snapshot, Energy: e}
				occurrences = 1
			case e == best.Energy:
				occurrences++
			}
			return
		}
		name := vars[i]
		assignment[name] = 0
		rec(i + 1)
		assignment[name] = 1
		rec(i + 1)
	}
	rec(0)

	if best == nil {
		return bqm.SampleSet{{Assignment: map[bqm.Name]int{}, Energy: snap.Offset, Occurrences: 1}}, nil
	}
	best.Occurrences = occurrences
	return bqm.SampleSet{*best}, nil
}

func cloneAssignment(a map[bqm.Name]int) map[bqm.Name]int {
	out := make(map[bqm.Name]int, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

type tooManyVariablesError struct {
	count, max int
}

func (e *tooManyVariablesError) Error() string {
	return fmt.Sprintf("sample: exact enumeration over %d variables exceeds cap of %d", e.count, e.max)
}
