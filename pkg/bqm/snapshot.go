package bqm

// Snapshot is an immutable copy of a Store's terms, handed to a Sampler
// at the sampler boundary. Samplers never see the live, mutable Store.
type Snapshot struct {
	Linear    map[Name]int64
	Quadratic map[Pair]int64
	Offset    int64
}

// Snapshot copies the current state of s into an immutable Snapshot.
func (s *Store) Snapshot() *Snapshot {
	linear := make(map[Name]int64, len(s.linear))
	for k, v := range s.linear {
		linear[k] = v
	}
	quadratic := make(map[Pair]int64, len(s.quadratic))
	for k, v := range s.quadratic {
		quadratic[k] = v
	}
	return &Snapshot{Linear: linear, Quadratic: quadratic, Offset: s.offset}
}

// Variables returns every name referenced by the snapshot, linear or
// quadratic, in no particular order.
func (snap *Snapshot) Variables() []Name {
	seen := make(map[Name]struct{})
	for n := range snap.Linear {
		seen[n] = struct{}{}
	}
	for k := range snap.Quadratic {
		seen[k.lo] = struct{}{}
		seen[k.hi] = struct{}{}
	}
	out := make([]Name, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	return out
}

// Energy evaluates E(assignment) for a complete assignment of every
// variable the snapshot references. Missing variables are treated as 0.
func (snap *Snapshot) Energy(assignment map[Name]int) int64 {
	e := snap.Offset
	for n, h := range snap.Linear {
		if assignment[n] != 0 {
			e += h
		}
	}
	for k, J := range snap.Quadratic {
		if assignment[k.lo] != 0 && assignment[k.hi] != 0 {
			e += J
		}
	}
	return e
}

// Endpoints exposes a quadratic key's two names, for callers (e.g. the
// result package) that need to iterate Quadratic directly.
func (k Pair) Endpoints() (Name, Name) { return k.lo, k.hi }
