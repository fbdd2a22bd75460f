package core

// analysis.go implements first-UIP resolution over the trail, optional
// recursive minimization, LBD computation, and backjump level selection.

// analyze resolves a conflict into an asserting clause. It returns the
// learnt literals (asserting literal first, a literal at the backjump level
// second when the clause has more than one literal), the level to backjump
// to, and the clause's LBD. The returned slice aliases the solver's scratch
// buffer and is only valid until the next call to analyze.
func (s *Solver) analyze(confl *conflict) ([]Literal, int, uint32) {
	s.seen.Clear()
	s.tmpLearnt = append(s.tmpLearnt[:0], LitFalse) // placeholder for the asserting literal

	if confl.clause != nil {
		s.cdb.BumpActivity(confl.clause)
	}

	reasonLits := confl.lits
	pending := 0
	idx := s.asg.TrailLen() - 1
	var p Literal

	for {
		s.heur.UpdateReason(reasonLits, p)
		for _, q := range reasonLits {
			v := q.Var()
			if s.seen.Contains(polResolved, v) {
				continue
			}
			lvl := s.asg.Level(v)
			if lvl == 0 {
				continue // level-0 antecedents are always true, never part of the learnt clause
			}
			s.seen.Add(polResolved, v)
			if lvl == s.asg.DecisionLevel() {
				pending++
			} else {
				s.tmpLearnt = append(s.tmpLearnt, q.Opposite())
			}
		}

		for !s.seen.Contains(polResolved, s.asg.TrailAt(idx).Var()) {
			idx--
		}
		p = s.asg.TrailAt(idx)
		idx--
		pending--
		if pending == 0 {
			break // p is the first UIP
		}
		reasonLits = s.explainReason(p.Var())
	}
	s.tmpLearnt[0] = p.Opposite()

	learnt := s.minimize(s.tmpLearnt)
	lbd := s.computeLBD(learnt)
	level := s.backjumpLevel(learnt)
	return learnt, level, lbd
}

// explainReason returns the antecedent literals that forced v, bumping the
// reason clause's activity when it comes from general-clause storage. The
// returned slice aliases s.tmpReason.
func (s *Solver) explainReason(v Var) []Literal {
	r := s.asg.Reason(v)
	switch r.kind {
	case reasonBinary:
		return append(s.tmpReason[:0], r.other)
	case reasonTernary:
		return append(s.tmpReason[:0], r.other, r.other2)
	case reasonClause:
		s.cdb.BumpActivity(r.clause)
		return r.clause.explainAssign(s.tmpReason[:0])
	default:
		return s.tmpReason[:0]
	}
}

// minimize drops literals from learnt[1:] whose negation is already implied
// by the rest of the clause (recursive minimization). It is a no-op unless
// the search config enables it.
func (s *Solver) minimize(learnt []Literal) []Literal {
	if !s.cfg.Minimize {
		return learnt
	}
	j := 1
	for i := 1; i < len(learnt); i++ {
		l := learnt[i]
		if !s.litRedundant(l) {
			learnt[j] = l
			j++
		}
	}
	return learnt[:j]
}

// litRedundant reports whether l's negation is implied by literals already
// known to belong to the learnt clause (marked seen) or by level-0 facts,
// by walking the antecedent DAG rooted at l.Var(). Any decision-level
// ancestor not already in the clause blocks the removal.
func (s *Solver) litRedundant(l Literal) bool {
	root := l.Var()
	if s.asg.Reason(root).isDecision() {
		return false
	}

	stack := s.tmpMinStack[:0]
	stack = append(stack, root)
	marked := s.tmpMinMarked[:0]

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, a := range s.explainReason(v) {
			av := a.Var()
			if av == root || s.seen.Contains(polResolved, av) {
				continue
			}
			if s.asg.Level(av) == 0 {
				continue
			}
			if s.asg.Reason(av).isDecision() {
				// Undo every mark this walk added: they were only
				// provisional, and leaving them set would make a later
				// litRedundant call in the same minimize pass treat an
				// unrelated literal as already in the clause.
				for _, u := range marked {
					s.seen.Remove(polResolved, u)
				}
				s.tmpMinStack = stack
				s.tmpMinMarked = marked[:0]
				return false
			}
			if s.cfg.CCMinKeepAct {
				s.heur.UpdateReason(nil, a)
			}
			s.seen.Add(polResolved, av)
			marked = append(marked, av)
			stack = append(stack, av)
		}
	}
	s.tmpMinStack = stack
	s.tmpMinMarked = marked
	return true
}

// computeLBD counts the number of distinct decision levels represented among
// lits, reusing seenSet's second bit-plane keyed by level number rather than
// by variable.
func (s *Solver) computeLBD(lits []Literal) uint32 {
	var lbd uint32
	for _, l := range lits {
		lvl := s.asg.Level(l.Var())
		if lvl == 0 {
			continue
		}
		if !s.seen.Contains(polLevel, Var(lvl)) {
			s.seen.Add(polLevel, Var(lvl))
			lbd++
		}
	}
	return lbd
}

// backjumpLevel moves the learnt literal at the highest decision level
// (other than the asserting literal) into slot 1 and returns that level, the
// level the search should backtrack to. A unit clause backjumps to level 0.
func (s *Solver) backjumpLevel(learnt []Literal) int {
	if len(learnt) == 1 {
		return 0
	}
	maxI := 1
	maxLevel := s.asg.Level(learnt[1].Var())
	for i := 2; i < len(learnt); i++ {
		if lvl := s.asg.Level(learnt[i].Var()); lvl > maxLevel {
			maxLevel = lvl
			maxI = i
		}
	}
	learnt[1], learnt[maxI] = learnt[maxI], learnt[1]
	return maxLevel
}
