// Package bqm implements a sparse Binary Quadratic Model: a quadratic
// pseudo-Boolean function
//
//	E(s) = offset + sum_i h_i*s_i + sum_{i<j} J_ij*s_i*s_j,   s_i in {0,1}
//
// over named {0,1} variables. The gate and arithmetic layers add terms
// to a Store so that the ground (minimum-energy) assignment encodes a
// correct computation; Store itself only knows about linear/quadratic
// bookkeeping, fixing, flipping, and merge-folding — it has no notion
// of what the terms mean.
package bqm

// Name identifies a variable inside the model. Names come from the
// caller (normally the canonical name of a bit.Table entry); Store
// does not allocate them.
type Name int

type Pair struct {
	lo, hi Name
}

func MakePair(a, b Name) Pair {
	if a <= b {
		return Pair{a, b}
	}
	return Pair{b, a}
}

// Store is a sparse, mutable quadratic pseudo-Boolean model.
type Store struct {
	linear    map[Name]int64
	quadratic map[Pair]int64
	adj       map[Name]map[Name]struct{}
	offset    int64
}

// New returns an empty model (offset 0, no terms).
func New() *Store {
	return &Store{
		linear:    make(map[Name]int64),
		quadratic: make(map[Pair]int64),
		adj:       make(map[Name]map[Name]struct{}),
	}
}

// AddLinear accumulates delta into the linear bias of name.
func (s *Store) AddLinear(name Name, delta int64) {
	if delta == 0 {
		return
	}
	s.linear[name] += delta
	if s.linear[name] == 0 {
		delete(s.linear, name)
	}
}

// AddOffset accumulates delta into the constant offset.
func (s *Store) AddOffset(delta int64) {
	s.offset += delta
}

// Offset returns the current constant offset.
func (s *Store) Offset() int64 {
	return s.offset
}

// AddQuadratic accumulates delta into the quadratic bias between n1 and
// n2. A self-quadratic term (n1 == n2) collapses to a linear term,
// since s*s == s for s in {0,1} — this is the case the spec calls out
// as arising naturally after a bit merge.
func (s *Store) AddQuadratic(n1, n2 Name, delta int64) {
	if n1 == n2 {
		s.AddLinear(n1, delta)
		return
	}
	s.addQuadraticRaw(n1, n2, delta)
}

func (s *Store) addQuadraticRaw(n1, n2 Name, delta int64) {
	if delta == 0 {
		return
	}
	k := MakePair(n1, n2)
	v := s.quadratic[k] + delta
	if v == 0 {
		delete(s.quadratic, k)
		s.unlink(n1, n2)
		return
	}
	s.quadratic[k] = v
	s.link(n1, n2)
}

func (s *Store) link(a, b Name) {
	if s.adj[a] == nil {
		s.adj[a] = make(map[Name]struct{})
	}
	s.adj[a][b] = struct{}{}
	if s.adj[b] == nil {
		s.adj[b] = make(map[Name]struct{})
	}
	s.adj[b][a] = struct{}{}
}

func (s *Store) unlink(a, b Name) {
	delete(s.adj[a], b)
	if len(s.adj[a]) == 0 {
		delete(s.adj, a)
	}
	delete(s.adj[b], a)
	if len(s.adj[b]) == 0 {
		delete(s.adj, b)
	}
}

// GetLinear returns the current linear bias of name (0 if absent).
func (s *Store) GetLinear(name Name) int64 {
	return s.linear[name]
}

// GetQuadratic returns the current quadratic bias between n1 and n2 (0
// if absent or n1 == n2).
func (s *Store) GetQuadratic(n1, n2 Name) int64 {
	if n1 == n2 {
		return 0
	}
	return s.quadratic[MakePair(n1, n2)]
}

// Neighbours returns the names sharing a quadratic term with name.
func (s *Store) Neighbours(name Name) []Name {
	if len(s.adj[name]) == 0 {
		return nil
	}
	out := make([]Name, 0, len(s.adj[name]))
	for n := range s.adj[name] {
		out = append(out, n)
	}
	return out
}

// Fix substitutes s_name = v (v must be 0 or 1), folding its linear and
// quadratic terms into neighbours and the offset, then removes name
// from the model entirely.
func (s *Store) Fix(name Name, v int) {
	h := s.linear[name]
	s.offset += int64(v) * h
	delete(s.linear, name)

	for m := range s.adj[name] {
		J := s.quadratic[MakePair(name, m)]
		s.AddLinear(m, int64(v)*J)
		delete(s.quadratic, MakePair(name, m))
		delete(s.adj[m], name)
		if len(s.adj[m]) == 0 {
			delete(s.adj, m)
		}
	}
	delete(s.adj, name)
}

// Flip substitutes s_name -> 1 - s_name in place, without removing the
// variable.
func (s *Store) Flip(name Name) {
	h := s.linear[name]
	if h != 0 {
		s.offset += h
		s.linear[name] = -h
		if s.linear[name] == 0 {
			delete(s.linear, name)
		}
	}
	for m := range s.adj[name] {
		k := MakePair(name, m)
		J := s.quadratic[k]
		if J == 0 {
			continue
		}
		s.AddLinear(m, J)
		s.quadratic[k] = -J
		if s.quadratic[k] == 0 {
			delete(s.quadratic, k)
			s.unlink(name, m)
		}
	}
}

// Remove deletes all terms touching name (no offset adjustment, unlike
// Fix — the variable simply disappears from the model rather than
// being substituted for a value).
func (s *Store) Remove(name Name) {
	delete(s.linear, name)
	for m := range s.adj[name] {
		delete(s.quadratic, MakePair(name, m))
		delete(s.adj[m], name)
		if len(s.adj[m]) == 0 {
			delete(s.adj, m)
		}
	}
	delete(s.adj, name)
}

// MergeFold folds loser's terms into winner, as used when bit.Table
// unifies two names. Any quadratic term that ends up between winner and
// itself (i.e. loser was already linked to winner) collapses to linear,
// same as AddQuadratic's self-term rule.
func (s *Store) MergeFold(winner, loser Name) {
	if winner == loser {
		return
	}
	s.AddLinear(winner, s.linear[loser])
	delete(s.linear, loser)

	for m := range s.adj[loser] {
		J := s.quadratic[MakePair(loser, m)]
		if m == winner {
			s.AddLinear(winner, J)
		} else {
			s.addQuadraticRaw(winner, m, J)
		}
	}
	s.Remove(loser)
}
