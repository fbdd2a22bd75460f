package core

// propagate.go drains the propagation queue (the unprocessed suffix of the
// trail), checking the implicit
// binary/ternary implication graph before ever touching general-clause
// watch lists, and only hands control to the post-propagator chain once
// that cheaper propagation reaches a fixpoint. A post-propagator that
// enqueues new literals sends control back to the cheap propagators before
// the remaining post-propagators run.

// conflict is the result of a failed propagation step: the set of
// currently-true literals whose conjunction is unsatisfiable, in the same
// convention as Clause.explainConflict. clause is non-nil when the conflict
// came from a general clause, so ConflictAnalysis can bump its activity.
type conflict struct {
	lits   []Literal
	clause *Clause
}

// SetConflict lets a PostPropagator report a conflict. lits must be the
// true antecedent literals responsible for the contradiction.
func (s *Solver) SetConflict(lits []Literal) {
	s.conflictLits = append(s.conflictLits[:0], lits...)
}

func (s *Solver) conflictFromLits(lits []Literal) *conflict {
	s.conflictLits = append(s.conflictLits[:0], lits...)
	return &conflict{lits: s.conflictLits}
}

func (s *Solver) conflictFromClause(c *Clause) *conflict {
	s.conflictLits = c.explainConflict(s.conflictLits[:0])
	return &conflict{lits: s.conflictLits, clause: c}
}

// propagate drains s.asg's trail from s.qhead onward. It returns the first
// conflict encountered, or nil once both the watch-based propagation and
// every post-propagator have settled without one.
func (s *Solver) propagate() *conflict {
	for {
		for s.qhead < s.asg.TrailLen() {
			l := s.asg.TrailAt(s.qhead)
			s.qhead++
			s.stats.Propagations++

			if c := s.propagateBinary(l); c != nil {
				s.post.resetAll()
				return c
			}
			if c := s.propagateTernary(l); c != nil {
				s.post.resetAll()
				return c
			}
			if c := s.propagateGeneral(l); c != nil {
				s.post.resetAll()
				return c
			}
		}

		progressed := false
		for _, p := range s.post.list {
			before := s.asg.TrailLen()
			if !p.Propagate(s) {
				s.post.resetAll()
				return &conflict{lits: s.conflictLits}
			}
			if s.asg.TrailLen() > before {
				progressed = true
				break
			}
		}
		if !progressed {
			return nil
		}
	}
}

// propagateBinary checks every binary edge that fires when l becomes true.
func (s *Solver) propagateBinary(l Literal) *conflict {
	for _, e := range s.cdb.binEdges[l] {
		switch s.asg.LitValue(e.to) {
		case True:
			continue
		case False:
			return s.conflictFromLits([]Literal{l, e.to.Opposite()})
		default:
			s.asg.Assign(e.to, s.asg.DecisionLevel(), binaryReason(l))
		}
	}
	return nil
}

// propagateTernary checks every ternary edge that fires when l becomes true.
func (s *Solver) propagateTernary(l Literal) *conflict {
	for _, e := range s.cdb.terEdges[l] {
		v1, v2 := s.asg.LitValue(e.to1), s.asg.LitValue(e.to2)
		if v1 == True || v2 == True {
			continue
		}
		switch {
		case v1 == False && v2 == False:
			return s.conflictFromLits([]Literal{l, e.to1.Opposite(), e.to2.Opposite()})
		case v1 == False:
			s.asg.Assign(e.to2, s.asg.DecisionLevel(), ternaryReason(l, e.to1.Opposite()))
		case v2 == False:
			s.asg.Assign(e.to1, s.asg.DecisionLevel(), ternaryReason(l, e.to2.Opposite()))
		}
	}
	return nil
}

// propagateGeneral scans the general-clause watch list for l, the classic
// two-watched-literal fixpoint scan. The list is copied into a scratch
// buffer first because Clause.propagate re-registers watches (possibly
// back onto l's own list) as it goes.
func (s *Solver) propagateGeneral(l Literal) *conflict {
	ws := s.cdb.watchers[l]
	s.tmpWatchers = append(s.tmpWatchers[:0], ws...)
	s.cdb.watchers[l] = ws[:0]

	for i, w := range s.tmpWatchers {
		if s.asg.LitValue(w.blocker) == True {
			s.cdb.watchers[l] = append(s.cdb.watchers[l], w)
			continue
		}
		if !w.clause.propagate(s.cdb, s.asg, l) {
			s.cdb.watchers[l] = append(s.cdb.watchers[l], s.tmpWatchers[i+1:]...)
			return s.conflictFromClause(w.clause)
		}
	}
	return nil
}
