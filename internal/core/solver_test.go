package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lit(n int) Literal {
	if n < 0 {
		return NegLit(Var(-n))
	}
	return PosLit(Var(n))
}

func clause(ns ...int) []Literal {
	lits := make([]Literal, len(ns))
	for i, n := range ns {
		lits[i] = lit(n)
	}
	return lits
}

func newTestSolver(t *testing.T, nVars int) *Solver {
	t.Helper()
	s := NewSolver(DefaultSearchConfig)
	for i := 0; i < nVars; i++ {
		s.AddVar(VarAtom)
	}
	return s
}

func TestSolveSatisfiable(t *testing.T) {
	s := newTestSolver(t, 2)
	require.NoError(t, s.AddClause(clause(1, 2)))
	require.NoError(t, s.AddClause(clause(-1, 2)))
	require.NoError(t, s.AddClause(clause(1, -2)))

	require.Equal(t, ResultSAT, s.Solve(nil))
	require.Equal(t, True, s.Value(1))
	require.Equal(t, True, s.Value(2))
}

func TestSolveUnsatisfiable(t *testing.T) {
	s := newTestSolver(t, 1)
	require.NoError(t, s.AddClause(clause(1)))
	require.NoError(t, s.AddClause(clause(-1)))

	require.Equal(t, ResultUNSAT, s.Solve(nil))
}

func TestSolveUnsatDiscoveredDuringSetup(t *testing.T) {
	// A unit clause and its negation both added at setup time; on the
	// second AddClause the literal already false at level 0 is dropped,
	// leaving an empty clause, so the unsatisfiability is latched before
	// Solve is ever called.
	s := newTestSolver(t, 1)
	require.NoError(t, s.AddClause(clause(1)))
	require.NoError(t, s.AddClause(clause(-1)))
	require.Equal(t, ResultUNSAT, s.Solve(nil))
	require.Equal(t, ResultUNSAT, s.Solve(nil)) // stays unsat on repeat calls
}

func TestSolveExactlyOneOfThree(t *testing.T) {
	// Exactly-one-of-three instance: one at-least-one clause plus the three
	// pairwise at-most-one clauses; any model has a single true variable.
	s := newTestSolver(t, 3)
	require.NoError(t, s.AddClause(clause(1, 2, 3)))
	require.NoError(t, s.AddClause(clause(-1, -2)))
	require.NoError(t, s.AddClause(clause(-2, -3)))
	require.NoError(t, s.AddClause(clause(-1, -3)))

	require.Equal(t, ResultSAT, s.Solve(nil))
	trueCount := 0
	for v := Var(1); v <= 3; v++ {
		if s.Value(v) == True {
			trueCount++
		}
	}
	require.Equal(t, 1, trueCount, "exactly one of the three variables must be true")
}

func TestSolveWithAssumptions(t *testing.T) {
	s := newTestSolver(t, 2)
	require.NoError(t, s.AddClause(clause(1, 2)))
	require.NoError(t, s.AddClause(clause(-1, -2)))

	require.Equal(t, ResultSAT, s.Solve([]Literal{lit(-1)}))
	require.Equal(t, True, s.Value(2))

	res := s.Solve([]Literal{lit(1), lit(2)})
	require.Equal(t, ResultAssumptionConflict, res)
	require.NotEmpty(t, s.Core())
}

func TestEnumerateModelsFindsAll(t *testing.T) {
	// x1 xor x2: exactly two models.
	s := newTestSolver(t, 2)
	require.NoError(t, s.AddClause(clause(1, 2)))
	require.NoError(t, s.AddClause(clause(-1, -2)))

	models, res := s.EnumerateModels(nil, 0)
	require.Equal(t, ResultUNSAT, res)
	require.Len(t, models, 2)
}

func TestAtMostOnePostPropagator(t *testing.T) {
	s := newTestSolver(t, 3)
	amo := NewAtMostOne([]Literal{lit(1), lit(2), lit(3)}, 0)
	require.NoError(t, s.AddPost(amo))
	require.NoError(t, s.AddClause(clause(1, 2, 3)))

	require.Equal(t, ResultSAT, s.Solve(nil))
	trueCount := 0
	for v := Var(1); v <= 3; v++ {
		if s.Value(v) == True {
			trueCount++
		}
	}
	require.Equal(t, 1, trueCount)
}

func TestTagLiteralSetForSingleAssumptionSolve(t *testing.T) {
	s := newTestSolver(t, 1)
	require.Equal(t, Literal(-1), s.TagLiteral(), "no tag outside Solve")

	// Checked from inside a post-propagator so it observes the tag while
	// the Solve call that set it is still in progress.
	var observed Literal = -2
	probe := &tagProbe{onPropagate: func(s *Solver) { observed = s.TagLiteral() }}
	require.NoError(t, s.AddPost(probe))
	require.NoError(t, s.AddClause(clause(1)))

	a := lit(1)
	s.Solve([]Literal{a})
	require.Equal(t, a, observed)
	require.Equal(t, Literal(-1), s.TagLiteral(), "tag cleared once Solve returns")
}

type tagProbe struct {
	onPropagate func(s *Solver)
}

func (p *tagProbe) Init(s *Solver) error { return nil }
func (p *tagProbe) Reset()               {}
func (p *tagProbe) Priority() uint32      { return 0 }
func (p *tagProbe) Propagate(s *Solver) bool {
	p.onPropagate(s)
	return true
}

func TestWatchInitRandStillFindsModels(t *testing.T) {
	cfg := DefaultSearchConfig
	cfg.WatchInit = WatchInitRand
	s := NewSolver(cfg)
	for i := 0; i < 4; i++ {
		s.AddVar(VarAtom)
	}
	require.NoError(t, s.AddClause(clause(1, 2, 3, 4)))
	require.NoError(t, s.AddClause(clause(-1, -2, -3, -4)))

	require.Equal(t, ResultSAT, s.Solve(nil))
}

func TestBoundedRestartsCapsInterval(t *testing.T) {
	cfg := DefaultSearchConfig
	cfg.BoundedRestarts = true
	cfg.RestartSchedule = RestartGeometric
	cfg.RestartBase = 10
	cfg.RestartFactor = 1000 // would blow past any reasonable cap unbounded
	s := NewSolver(cfg)
	for i := 0; i < 3; i++ {
		_ = s.restartNext()
	}
	require.LessOrEqual(t, s.restartNext(), int64(cfg.RestartBase*100))
}

func TestCompressLimitGatesSimplify(t *testing.T) {
	cfg := DefaultSearchConfig
	cfg.CompressLimit = 100
	s := NewSolver(cfg)
	s.AddVar(VarAtom)
	s.AddVar(VarAtom)

	s.asg.PushLevel()
	require.True(t, s.asg.Assign(lit(1), s.asg.DecisionLevel(), decisionReason))
	s.maybeSimplify()
	require.Equal(t, 0, s.lastSimplifyTrail, "trail only grew by 1, below CompressLimit")

	s.cfg.CompressLimit = 0
	s.maybeSimplify()
	require.Equal(t, s.asg.TrailLen(), s.lastSimplifyTrail, "a zero limit always simplifies")
}

func TestRestartOnModelResetsPolicy(t *testing.T) {
	cfg := DefaultSearchConfig
	cfg.RestartOnModel = true
	cfg.RestartSchedule = RestartGeometric
	cfg.RestartBase = 1
	cfg.RestartFactor = 2
	s := NewSolver(cfg)
	s.AddVar(VarAtom)
	require.NoError(t, s.AddClause(clause(1)))

	require.Equal(t, ResultSAT, s.Solve(nil))
	// foundModel rebuilt the restart policy from scratch and recomputed
	// restartTarget from it, so with zero conflicts so far the target is
	// exactly the fresh policy's first value rather than one already grown
	// by whatever restarts happened before the model was found.
	require.Equal(t, int64(0), s.stats.Conflicts)
	require.Equal(t, int64(cfg.RestartBase), s.restartTarget)
}

func TestSignDefaultAppliesWhenNoOtherHintExists(t *testing.T) {
	cfg := DefaultSearchConfig
	cfg.Heuristic = HeuristicVSIDS
	cfg.PhaseSaving = false
	cfg.SignDefault = False
	cfg.RandomFreq = 0
	s := NewSolver(cfg)
	s.AddVar(VarAtom)

	require.Equal(t, ResultSAT, s.Solve(nil))
	require.Equal(t, False, s.Value(1), "free variable, no clauses: decided by SignDefault")
}

func TestPushPopRoot(t *testing.T) {
	s := newTestSolver(t, 2)
	require.NoError(t, s.AddClause(clause(1, 2)))

	res, ok := s.PushRoot(lit(-1))
	require.True(t, ok)
	require.Equal(t, ResultSAT, res)
	require.Equal(t, True, s.asg.Value(2)) // propagated immediately, before any model is recorded

	s.PopRoot(1)
	require.Equal(t, ResultSAT, s.Solve(nil))
}
