package result

import (
	"sort"
	"sync"

	"github.com/oisee/ecc-bqm-compiler/pkg/bqm"
)

// Table collects samples found across one or more sampler runs (e.g.
// several Annealer.Sample calls with different seeds) and ranks them.
type Table struct {
	mu      sync.Mutex
	samples []bqm.Sample
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add records a sample.
func (t *Table) Add(s bqm.Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = append(t.samples, s)
}

// AddSet records every sample in ss.
func (t *Table) AddSet(ss bqm.SampleSet) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = append(t.samples, ss...)
}

// Samples returns a copy of every recorded sample, sorted by ascending
// energy (the lowest-energy, i.e. best, solution first).
func (t *Table) Samples() []bqm.Sample {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]bqm.Sample, len(t.samples))
	copy(out, t.samples)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Energy < out[j].Energy
	})
	return out
}

// Len returns the number of recorded samples.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.samples)
}

// Best returns the lowest-energy recorded sample.
func (t *Table) Best() (bqm.Sample, bool) {
	return bqm.SampleSet(t.Samples()).Best()
}
