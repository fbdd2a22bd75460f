package core

import (
	"testing"

	"github.com/mitchellh/hashstructure"
	"github.com/stretchr/testify/require"
)

// trace of one Solve run's branching and outcome, hashed to compare two
// otherwise-identical runs: same problem, same config and RNG seed must
// reproduce the same search.
type trace struct {
	Decisions []Literal
	Result    SolveResult
	Model     []LBool
}

func runTraced(nVars int, clauses [][]int) trace {
	s := NewSolver(DefaultSearchConfig)
	for i := 0; i < nVars; i++ {
		s.AddVar(VarAtom)
	}
	for _, c := range clauses {
		_ = s.AddClause(clause(c...))
	}

	res := s.Solve(nil)
	decisions := append([]Literal(nil), s.asg.trail...)

	model := make([]LBool, nVars)
	for v := Var(1); int(v) <= nVars; v++ {
		model[v-1] = s.Value(v)
	}
	return trace{Decisions: decisions, Result: res, Model: model}
}

func TestDeterminismAcrossIdenticalRuns(t *testing.T) {
	clauses := [][]int{
		{1, 2, 3},
		{-1, -2},
		{-2, -3},
		{-1, -3},
		{4, 5},
		{-4, -5},
	}

	h1, err := hashstructure.Hash(runTraced(5, clauses), nil)
	require.NoError(t, err)
	h2, err := hashstructure.Hash(runTraced(5, clauses), nil)
	require.NoError(t, err)

	require.Equal(t, h1, h2, "two fresh solvers given the same problem and default config (hence the same seeded RNG) must reach the same trail and result")
}
