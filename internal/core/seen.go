package core

// seenSet is a two-bit-per-variable mark reused by conflict analysis and LBD
// computation (one bit per plane, see polarity). It reuses yass's ResetSet
// timestamp trick (internal/core/set.go) so that Clear is O(1) regardless of
// how many variables were marked, but stores two independent timestamps per
// variable so conflict analysis ("have I resolved var v already") and LBD
// computation ("have I counted the decision level of var v already") can
// share one structure without one invalidating the other's marks mid-conflict.
type seenSet struct {
	mark [2][]uint16
	ts   uint16
}

// polarity selects which of the two bit-planes a caller wants. Conflict
// analysis uses plane 0 for "variable resolved"; LBD computation uses plane 1
// for "decision level counted".
type polarity int

const (
	polResolved polarity = 0
	polLevel    polarity = 1
)

func newSeenSet() *seenSet {
	// Slot 0 is the sentinel variable/level, never grown by Grow; both
	// planes start with it preallocated so indexing by a 1-based Var (up
	// to NumVars) or a decision level (up to DecisionLevel()==NumVars)
	// never runs past the end of mark.
	return &seenSet{mark: [2][]uint16{{0}, {0}}, ts: 1}
}

// Grow extends the set to cover a newly added variable.
func (s *seenSet) Grow() {
	s.mark[0] = append(s.mark[0], 0)
	s.mark[1] = append(s.mark[1], 0)
}

func (s *seenSet) Contains(p polarity, v Var) bool {
	return s.mark[p][v] == s.ts
}

func (s *seenSet) Add(p polarity, v Var) {
	s.mark[p][v] = s.ts
}

// Remove unmarks v. s.ts is never 0 (Clear skips that value on wraparound),
// so 0 always reads back as "not contained" until the next Clear.
func (s *seenSet) Remove(p polarity, v Var) {
	s.mark[p][v] = 0
}

// Clear resets both bit-planes in O(1).
func (s *seenSet) Clear() {
	s.ts++
	if s.ts == 0 { // wrapped around
		s.ts = 1
		for i := range s.mark[0] {
			s.mark[0][i] = 0
			s.mark[1][i] = 0
		}
	}
}
