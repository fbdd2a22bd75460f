package core

// atmostone.go is a tiny cardinality post-propagator: at most one literal
// among a fixed set may hold at once. It gives the PostPropagator interface
// a concrete, testable instance without reimplementing a grounder: encoding
// the same constraint as O(n^2) binary clauses would work too, but this is
// the "external collaborator" the interface is meant for, watched-count
// style rather than clause-backed.
type AtMostOne struct {
	lits     []Literal
	priority uint32
	trueLit  Literal // the one set literal currently known true, or -1
}

// NewAtMostOne builds a post-propagator enforcing that at most one literal
// in lits holds simultaneously.
func NewAtMostOne(lits []Literal, priority uint32) *AtMostOne {
	return &AtMostOne{
		lits:     append([]Literal(nil), lits...),
		priority: priority,
		trueLit:  -1,
	}
}

func (a *AtMostOne) Priority() uint32    { return a.priority }
func (a *AtMostOne) Init(s *Solver) error { return nil }
func (a *AtMostOne) Reset()              { a.trueLit = -1 }

// Propagate scans the set for its first true literal and forces every other
// member false, using the witness as their antecedent (the same
// {witness, other} pair a binary clause ¬witness∨¬other would produce, so it
// reuses binaryReason rather than needing its own reason representation).
// It reports a conflict if two members are ever true simultaneously.
func (a *AtMostOne) Propagate(s *Solver) bool {
	if a.trueLit != -1 {
		return a.forceRest(s, a.trueLit)
	}
	for _, l := range a.lits {
		if s.asg.LitValue(l) == True {
			a.trueLit = l
			return a.forceRest(s, l)
		}
	}
	return true
}

func (a *AtMostOne) forceRest(s *Solver, witness Literal) bool {
	for _, other := range a.lits {
		if other == witness {
			continue
		}
		switch s.asg.LitValue(other) {
		case True:
			s.SetConflict([]Literal{witness, other})
			return false
		case Free:
			s.asg.Assign(other.Opposite(), s.asg.DecisionLevel(), binaryReason(witness))
		}
	}
	return true
}
