package bqm

// Sample is one returned assignment from a Sampler: a complete or
// partial {0,1} assignment to the snapshot's variables, its energy
// under the snapshot, and how many times the sampler produced it.
type Sample struct {
	Assignment map[Name]int
	Energy     int64
	Occurrences int
}

// SampleSet is an enumeration of samples, as returned by a Sampler. By
// convention the lowest-energy sample is SampleSet[0] when non-empty.
type SampleSet []Sample

// Best returns the lowest-energy sample, or the zero Sample and false
// if the set is empty.
func (ss SampleSet) Best() (Sample, bool) {
	if len(ss) == 0 {
		return Sample{}, false
	}
	best := ss[0]
	for _, s := range ss[1:] {
		if s.Energy < best.Energy {
			best = s
		}
	}
	return best, true
}
