package core

import (
	"math/rand"

	"github.com/go-logr/logr"
)

// Solver is the top-level aggregate wiring the assignment, clause database,
// heuristic, post-propagators, and restart policy together and exposing
// the public API.
type Solver struct {
	asg     *Assignment
	cdb     *ClauseDB
	heur    Heuristic
	post    postPropagators
	restart RestartPolicy

	cfg    SearchConfig
	rng    *rand.Rand
	logger logr.Logger
	stats  Stats

	qhead int

	// Conflict analysis scratch buffers, reused across calls to avoid
	// per-conflict allocation on the propagation hot path.
	seen         *seenSet
	tmpLearnt    []Literal
	tmpReason    []Literal
	tmpMinStack  []Var
	tmpMinMarked []Var
	tmpWatchers  []watcher
	conflictLits []Literal

	rootLevel int // decision level below which nothing is ever undone

	unsat     bool      // permanently unsatisfiable, discovered at or below rootLevel
	unsatCore []Literal // failed assumptions, valid after an AssumptionConflict result

	model []LBool // last satisfying assignment, indexed like Assignment (1-based var ids)

	reduceLimit   int   // current learnt-clause count threshold for the next reduceLearnts
	restartTarget int64 // stats.Conflicts value at which the next restart fires

	lastSimplifyTrail int // trail length as of the last ClauseDB.Simplify pass, see cfg.CompressLimit

	tagLit Literal // the current volatile assumption literal, or -1 if none; see SetTagLiteral

	lbdFast, lbdSlow ema   // glucose-style restart trigger, see RestartGlucose
	glucoseConflicts int64

	interrupted bool
}

// NewSolver builds a Solver with cfg applied. A zero SearchConfig is not
// valid; pass DefaultSearchConfig or a value derived from it.
func NewSolver(cfg SearchConfig) *Solver {
	s := &Solver{
		asg:    newAssignment(),
		cdb:    newClauseDB(cfg.ClauseDecay),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(1)),
		logger: logr.Discard(),
		seen:   newSeenSet(),
		tagLit: -1,
	}
	s.asg.SetSavePhases(cfg.PhaseSaving)
	s.heur = s.newHeuristic(cfg.Heuristic)
	s.restart = s.newRestartPolicy(cfg)
	s.reduceLimit = s.cfg.ReduceInitialLimit
	s.lbdFast = newEMA(cfg.GlucoseFastDecay)
	s.lbdSlow = newEMA(cfg.GlucoseSlowDecay)
	s.asg.SetOnUnassign(s.onUnassign)
	return s
}

func (s *Solver) newHeuristic(kind HeuristicKind) Heuristic {
	switch kind {
	case HeuristicBerkmin:
		return newBerkmin(s.cfg.VarDecay, s.cfg.PhaseSaving, s.rng)
	case HeuristicVMTF:
		return newVMTF()
	case HeuristicUnit:
		return unitHeuristic{}
	case HeuristicNone:
		return noneHeuristic{}
	default:
		h := newVSIDS(s.cfg.VarDecay, s.cfg.PhaseSaving, s.rng)
		h.randomFreq = s.cfg.RandomFreq
		return h
	}
}

func (s *Solver) newRestartPolicy(cfg SearchConfig) RestartPolicy {
	switch cfg.RestartSchedule {
	case RestartLuby:
		return NewLubyRestart(cfg.LubyUnit)
	case RestartGeometric:
		return NewGeometricRestart(cfg.RestartBase, cfg.RestartFactor)
	default:
		return NewInnerOuterGeometricRestart(cfg.RestartBase, cfg.RestartFactor, cfg.RestartOuterFactor)
	}
}

// SetLogger installs a structured logger (the ambient logging facade used
// across the module); the zero value keeps logging discarded.
func (s *Solver) SetLogger(l logr.Logger) { s.logger = l }

// onUnassign is Assignment's undo hook: it reinserts the freed variable into
// whichever heuristic supports it, notifies post-propagators that asked
// for undo callbacks, and resets every post-propagator, since backtracking
// may have taken back literals they asserted or counted.
func (s *Solver) onUnassign(v Var, wasValue LBool) {
	if r, ok := s.heur.(interface {
		reinsert(v Var, wasValue LBool)
	}); ok {
		r.reinsert(v, wasValue)
	}
	for _, p := range s.post.list {
		if u, ok := p.(undoNotified); ok {
			u.Undo(s.asg.DecisionLevel())
		}
	}
	s.post.resetAll()
}

// AddVar installs a new variable and returns its id. typ is currently
// advisory only; see VarType.
func (s *Solver) AddVar(typ VarType) Var {
	v := s.asg.AddVar()
	s.cdb.growTo(v)
	s.seen.Grow()
	s.heur.UpdateVar(v, VarAdded)
	return v
}

// AddClause installs a problem clause. It must be called before the first
// call to Solve.
func (s *Solver) AddClause(lits []Literal) error {
	s.initWatches(lits)
	ok, err := s.cdb.AddProblemClause(s.asg, lits)
	if err != nil {
		return wrapError(KindClauseAfterFreeze, err)
	}
	if !ok {
		s.unsat = true
	}
	return nil
}

// initWatches applies cfg.WatchInit to a problem clause before it reaches
// the clause database: WatchInitFirst leaves literals[0]/[1] as given,
// WatchInitRand swaps in two literals chosen at random so the initial two
// watches aren't biased by the input's literal order. Only clauses long
// enough to use general (non-binary/ternary) storage have watches at all.
func (s *Solver) initWatches(lits []Literal) {
	if s.cfg.WatchInit != WatchInitRand || len(lits) <= 3 {
		return
	}
	i := s.rng.Intn(len(lits))
	lits[0], lits[i] = lits[i], lits[0]
	j := 1 + s.rng.Intn(len(lits)-1)
	lits[1], lits[j] = lits[j], lits[1]
}

// AddPost installs a post-propagator.
func (s *Solver) AddPost(p PostPropagator) error {
	if err := p.Init(s); err != nil {
		return wrapError(KindAllocationFailure, err)
	}
	s.post.add(p)
	return nil
}

// RemovePost uninstalls a previously added post-propagator.
func (s *Solver) RemovePost(p PostPropagator) { s.post.remove(p) }

// SetHeuristic swaps the decision heuristic before search has started.
func (s *Solver) SetHeuristic(h Heuristic) { s.heur = h }

// SetSearchConfig replaces the tunables governing restarts, reduction, and
// minimization.
func (s *Solver) SetSearchConfig(cfg SearchConfig) {
	s.cfg = cfg
	s.asg.SetSavePhases(cfg.PhaseSaving)
	s.restart = s.newRestartPolicy(cfg)
	s.lbdFast = newEMA(cfg.GlucoseFastDecay)
	s.lbdSlow = newEMA(cfg.GlucoseSlowDecay)
	s.glucoseConflicts = 0
}

// NumVars returns the number of variables installed so far.
func (s *Solver) NumVars() int { return s.asg.NumVars() }

// Stats returns a snapshot of the running search statistics.
func (s *Solver) Stats() Stats { return s.stats }

// NumLearnts returns the number of learnt clauses currently held.
func (s *Solver) NumLearnts() int { return s.cdb.NumLearnts() }

// Interrupt cooperatively stops the current or next Solve call at the next
// safe point (the top of the search loop), where Solve returns
// ResultInterrupted.
func (s *Solver) Interrupt() { s.interrupted = true }

// Value returns the truth value v held in the last model produced by Solve,
// or Free if there is none.
func (s *Solver) Value(v Var) LBool {
	if s.model == nil {
		return Free
	}
	return s.model[s.asg.idx(v)]
}

// Core returns the subset of the last assumption set responsible for an
// AssumptionConflict result.
func (s *Solver) Core() []Literal { return s.unsatCore }

// SetTagLiteral marks lit as the current volatile assumption: a literal an
// incremental caller wants treated as extra, throwaway context for the
// duration of one Solve call, distinct from the permanent root path built
// by PushRoot. Post-propagators and heuristics may consult TagLiteral to
// avoid treating it as part of the problem's permanent structure.
func (s *Solver) SetTagLiteral(lit Literal) { s.tagLit = lit }

// TagLiteral returns the current volatile assumption literal, or -1 if none
// is set. Solve automatically tags the sole assumption of a
// single-assumption call and clears the tag once that call returns.
func (s *Solver) TagLiteral() Literal { return s.tagLit }
