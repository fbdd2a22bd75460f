package core

// search.go holds the decision/propagate/analyze loop, restart and reduce
// scheduling, assumption handling, and model enumeration.

// SolveResult is the outcome of a Solve call.
type SolveResult int

const (
	ResultSAT SolveResult = iota
	ResultUNSAT
	// ResultAssumptionConflict means the problem is unsatisfiable given the
	// current assumptions (not unconditionally); Core() holds the reason.
	ResultAssumptionConflict
	ResultInterrupted
	ResultLimitReached
)

func (r SolveResult) String() string {
	switch r {
	case ResultSAT:
		return "sat"
	case ResultUNSAT:
		return "unsat"
	case ResultAssumptionConflict:
		return "assumption-conflict"
	case ResultInterrupted:
		return "interrupted"
	case ResultLimitReached:
		return "limit-reached"
	default:
		return "unknown"
	}
}

// Solve searches for a model under the given assumptions. Assumptions are
// pushed as root-level decisions for the duration of this call and undone
// before it returns unless the result is ResultSAT, in which case
// Model/Value remain valid until the next Solve.
func (s *Solver) Solve(assumps []Literal) SolveResult {
	if s.unsat {
		return ResultUNSAT
	}
	s.cdb.Freeze()
	s.heur.StartInit(s)
	defer s.heur.EndInit(s)

	s.rootLevel = s.asg.DecisionLevel()
	if len(assumps) == 1 {
		s.tagLit = assumps[0]
	}
	defer func() { s.tagLit = -1 }()
	if res, ok := s.pushAssumptions(assumps); !ok {
		return res
	}
	s.rootLevel = s.asg.DecisionLevel()

	startConflicts := s.stats.Conflicts
	s.restartTarget = s.stats.Conflicts + s.restartNext()

	for {
		if s.interrupted {
			s.interrupted = false
			return ResultInterrupted
		}
		if s.cfg.ConflictLimit > 0 && s.stats.Conflicts-startConflicts >= s.cfg.ConflictLimit {
			return ResultLimitReached
		}

		confl := s.propagate()
		if confl != nil {
			s.stats.Conflicts++
			if s.asg.DecisionLevel() <= s.rootLevel {
				return s.handleRootConflict(confl)
			}

			if s.cfg.Mode == SearchNoLearning {
				s.chronoBacktrack()
				continue
			}

			learnt, level, lbd := s.analyze(confl)
			if level < s.rootLevel {
				level = s.rootLevel
			}
			s.asg.UndoUntil(level)
			s.qhead = s.asg.TrailLen()
			s.installLearnt(learnt, lbd)
			s.cdb.DecayActivity()
			if s.cfg.RestartSchedule == RestartGlucose {
				s.lbdFast.add(float64(lbd))
				s.lbdSlow.add(float64(lbd))
				s.glucoseConflicts++
			}
			continue
		}

		if s.asg.DecisionLevel() == 0 {
			s.maybeSimplify()
		}
		s.maybeReduce()

		if s.restartDue() {
			s.stats.Restarts++
			s.asg.UndoUntil(s.rootLevel)
			s.qhead = s.asg.TrailLen()
			s.restartTarget = s.stats.Conflicts + s.restartNext()
			if s.cfg.RestartSchedule == RestartGlucose {
				s.glucoseConflicts = 0
			}
			if s.cfg.ReduceOnRestart {
				s.reduceLimit = s.cfg.ReduceInitialLimit
			}
			s.logger.Info("search event", "event", "restart", "conflicts", s.stats.Conflicts, "learnts", s.cdb.NumLearnts())
			continue
		}

		lit := s.heur.Select(s)
		if lit == LitFalse {
			if s.qhead < s.asg.TrailLen() {
				// the heuristic assigned a literal itself; propagate it first
				continue
			}
			return s.foundModel()
		}
		s.stats.Decisions++
		s.asg.PushLevel()
		s.asg.Assign(lit, s.asg.DecisionLevel(), decisionReason)
	}
}

// restartNext asks the active restart policy for the next conflict budget,
// capping it when cfg.BoundedRestarts is set so the inter-restart interval
// can never grow past 100x the configured base, keeping restarts frequent
// throughout a long run instead of the geometric/Luby growth eventually
// spacing them out so far apart that a single bad branch can dominate.
func (s *Solver) restartNext() int64 {
	n := s.restart.Next()
	if s.cfg.BoundedRestarts {
		if limit := int64(s.cfg.RestartBase * 100); n > limit {
			n = limit
		}
	}
	return n
}

// restartDue reports whether the active restart policy says now is the
// time: either the fixed-schedule conflict target, or (RestartGlucose) a
// short-term LBD average running hot relative to the long-term one.
func (s *Solver) restartDue() bool {
	if s.cfg.RestartSchedule == RestartGlucose {
		return s.glucoseConflicts > s.cfg.GlucoseMinConflicts &&
			s.lbdFast.get() > s.lbdSlow.get()*s.cfg.GlucoseMargin
	}
	return s.stats.Conflicts >= s.restartTarget
}

// handleRootConflict classifies a conflict discovered at or below the root
// level: unconditional unsatisfiability if there were no assumptions, or an
// assumption conflict with a computed core otherwise.
func (s *Solver) handleRootConflict(confl *conflict) SolveResult {
	if s.rootLevel == 0 {
		s.unsat = true
		return ResultUNSAT
	}
	s.unsatCore = s.analyzeFinal(confl)
	s.asg.UndoUntil(0)
	s.qhead = 0
	s.rootLevel = 0
	return ResultAssumptionConflict
}

// chronoBacktrack implements the no_learning search mode: instead of
// learning a clause, flip the topmost decision to its opposite value and
// treat it as forced (no further decision possible at that level).
func (s *Solver) chronoBacktrack() {
	dl := s.asg.DecisionLevel()
	if dl <= s.rootLevel {
		return
	}
	last := s.asg.Decision(dl)
	s.asg.UndoUntil(dl - 1)
	s.qhead = s.asg.TrailLen()
	s.asg.Assign(last.Opposite(), dl-1, decisionReason)
}

// installLearnt installs the clause produced by analyze and enqueues its
// asserting literal; new learnt clauses are watched like any other clause.
func (s *Solver) installLearnt(learnt []Literal, lbd uint32) {
	// dl is the level search has already backjumped to (possibly clamped up
	// to rootLevel under assumptions); the asserting literal must be
	// recorded there, not at a hardcoded 0, or it lands on the trail after
	// higher-level assumption literals while claiming a lower level,
	// breaking trail-level monotonicity.
	dl := s.asg.DecisionLevel()
	if len(learnt) == 1 {
		s.asg.Assign(learnt[0], dl, decisionReason)
		s.heur.NewConstraint(learnt, ConstraintLearnt)
		return
	}

	c := s.cdb.AddLearntClause(learnt, lbd)
	switch {
	case c != nil:
		s.asg.Assign(learnt[0], dl, clauseReason(c))
	case len(learnt) == 2:
		s.asg.Assign(learnt[0], dl, binaryReason(learnt[1].Opposite()))
	default: // len(learnt) == 3
		s.asg.Assign(learnt[0], dl, ternaryReason(learnt[1].Opposite(), learnt[2].Opposite()))
	}
	s.heur.NewConstraint(learnt, ConstraintLearnt)
}

// maybeSimplify runs ClauseDB.Simplify, gated by cfg.CompressLimit: a zero
// limit simplifies on every fixpoint reached at decision level 0 (clasp's
// unconditional default), a nonzero one waits until the trail has grown by
// at least that many literals since the last pass, so the sweep over every
// tracked clause isn't repeated on every single level-0 fixpoint of a
// long incremental session.
func (s *Solver) maybeSimplify() {
	if s.cfg.CompressLimit > 0 && s.asg.TrailLen()-s.lastSimplifyTrail < int(s.cfg.CompressLimit) {
		return
	}
	s.cdb.Simplify(s.asg)
	s.lastSimplifyTrail = s.asg.TrailLen()
}

// maybeReduce triggers reduceLearnts once the learnt clause count reaches
// the current threshold, called when propagation has reached a fixpoint.
func (s *Solver) maybeReduce() {
	if s.cdb.NumLearnts() < s.reduceLimit {
		return
	}
	s.reduceLearnts()
}

// pushAssumptions pushes each assumed literal as its own decision level,
// propagating after each one. It returns (result, false) on the first
// conflict, leaving the assignment at level 0.
func (s *Solver) pushAssumptions(assumps []Literal) (SolveResult, bool) {
	for _, a := range assumps {
		s.asg.PushLevel()
		if !s.asg.Assign(a, s.asg.DecisionLevel(), decisionReason) {
			// a's negation is already forced, possibly by propagation from
			// an earlier assumption in this same call: trace back through
			// its antecedents rather than reporting a alone, or the core
			// could omit the assumption that actually caused the conflict.
			// a itself never reached the trail, so it is appended by hand.
			s.unsatCore = append(s.analyzeFinal(&conflict{lits: []Literal{a.Opposite()}}), a)
			s.asg.UndoUntil(0)
			s.qhead = 0
			return ResultAssumptionConflict, false
		}
		if confl := s.propagate(); confl != nil {
			s.unsatCore = s.analyzeFinal(confl)
			s.asg.UndoUntil(0)
			s.qhead = 0
			return ResultAssumptionConflict, false
		}
	}
	return ResultSAT, true
}

// analyzeFinal walks the antecedent graph rooted at a conflict's literals
// back to the decision literals responsible for it, used to compute an
// unsatisfiable core under assumptions.
func (s *Solver) analyzeFinal(confl *conflict) []Literal {
	s.seen.Clear()
	core := s.unsatCore[:0]
	stack := append([]Literal(nil), confl.lits...)
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := l.Var()
		if v == 0 || s.asg.Level(v) == 0 || s.seen.Contains(polResolved, v) {
			continue
		}
		s.seen.Add(polResolved, v)
		r := s.asg.Reason(v)
		if r.isDecision() {
			core = append(core, l)
			continue
		}
		switch r.kind {
		case reasonBinary:
			stack = append(stack, r.other)
		case reasonTernary:
			stack = append(stack, r.other, r.other2)
		case reasonClause:
			stack = append(stack, r.clause.explainAssign(nil)...)
		}
	}
	return core
}

// foundModel records the current total assignment as a model.
func (s *Solver) foundModel() SolveResult {
	n := s.asg.NumVars()
	if cap(s.model) < n {
		s.model = make([]LBool, n)
	}
	s.model = s.model[:n]
	for v := Var(1); int(v) <= n; v++ {
		s.model[s.asg.idx(v)] = s.asg.Value(v)
	}
	s.stats.Models++
	if s.cfg.RestartOnModel {
		s.restart = s.newRestartPolicy(s.cfg)
		s.restartTarget = s.stats.Conflicts + s.restartNext()
	}
	return ResultSAT
}

// PushRoot permanently assumes lit at the root level across future Solve
// calls, for incremental solving. It must be called at decision level ==
// the current root level.
func (s *Solver) PushRoot(lit Literal) (SolveResult, bool) {
	s.asg.PushLevel()
	if !s.asg.Assign(lit, s.asg.DecisionLevel(), decisionReason) {
		s.asg.UndoUntil(s.asg.DecisionLevel() - 1)
		return ResultAssumptionConflict, false
	}
	s.rootLevel = s.asg.DecisionLevel()
	if confl := s.propagate(); confl != nil {
		s.unsatCore = s.analyzeFinal(confl)
		return ResultAssumptionConflict, false
	}
	return ResultSAT, true
}

// PopRoot undoes the last n permanent root assumptions.
func (s *Solver) PopRoot(n int) {
	target := s.rootLevel - n
	if target < 0 {
		target = 0
	}
	s.asg.UndoUntil(target)
	s.qhead = s.asg.TrailLen()
	s.rootLevel = target
}

// ClearAssumptions undoes every permanent root assumption.
func (s *Solver) ClearAssumptions() {
	s.asg.UndoUntil(0)
	s.qhead = 0
	s.rootLevel = 0
}

// PushAuxVar adds a temporary variable intended to be retracted later via
// PopAuxVar. Since the trail and heuristic structures only ever grow,
// retraction is simulated (see PopAuxVar) rather than truly shrinking them.
func (s *Solver) PushAuxVar() Var {
	return s.AddVar(VarHybrid)
}

// PopAuxVar retracts v by forcing it false at level 0 and dropping it from
// heuristic selection. v must be the most recently pushed auxiliary
// variable and currently unassigned.
func (s *Solver) PopAuxVar(v Var) {
	s.heur.UpdateVar(v, VarRemoved)
	if s.asg.Value(v) == Free {
		s.asg.Assign(NegLit(v), 0, decisionReason)
	}
}

// EnumerateModels calls Solve repeatedly under assumps, recording each model
// and then blocking it with a clause before the next call, until the result
// is no longer ResultSAT or limit models have been found. limit <= 0 means
// unbounded.
func (s *Solver) EnumerateModels(assumps []Literal, limit int) ([][]LBool, SolveResult) {
	var models [][]LBool
	block := make([]Literal, 0, s.asg.NumVars())
	for limit <= 0 || len(models) < limit {
		res := s.Solve(assumps)
		if res != ResultSAT {
			return models, res
		}
		models = append(models, append([]LBool(nil), s.model...))

		block = block[:0]
		for v := Var(1); int(v) <= s.asg.NumVars(); v++ {
			switch s.model[s.asg.idx(v)] {
			case True:
				block = append(block, NegLit(v))
			case False:
				block = append(block, PosLit(v))
			}
		}
		s.ClearAssumptions()
		if ok, err := s.cdb.addBlockingClause(s.asg, block); err != nil || !ok {
			return models, ResultUNSAT
		}
	}
	return models, ResultSAT
}
