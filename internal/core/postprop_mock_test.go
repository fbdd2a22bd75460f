package core

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// Two post-propagators installed out of priority order must still run
// lowest-priority-first, and a conflict reported by either one must reset
// every installed propagator, not just the one that failed.
func TestPostPropagatorResetOrdering(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := NewSolver(DefaultSearchConfig)
	s.AddVar(VarAtom)

	high := NewMockPostPropagator(ctrl) // priority 5, installed first
	low := NewMockPostPropagator(ctrl)  // priority 1, must run before high despite being added second

	high.EXPECT().Priority().Return(uint32(5)).AnyTimes()
	low.EXPECT().Priority().Return(uint32(1)).AnyTimes()
	high.EXPECT().Init(gomock.Any()).Return(nil)
	low.EXPECT().Init(gomock.Any()).Return(nil)

	require.NoError(t, s.AddPost(high))
	require.NoError(t, s.AddPost(low))

	lowCall := low.EXPECT().Propagate(gomock.Any()).DoAndReturn(func(*Solver) bool {
		return true // no progress, no conflict: proceed to the next propagator
	})
	highCall := high.EXPECT().Propagate(gomock.Any()).DoAndReturn(func(s *Solver) bool {
		s.SetConflict([]Literal{lit(1)})
		return false
	}).After(lowCall)
	low.EXPECT().Reset().After(highCall)
	high.EXPECT().Reset().After(highCall)

	confl := s.propagate()

	require.NotNil(t, confl)
	require.Equal(t, []Literal{lit(1)}, confl.lits)
}
