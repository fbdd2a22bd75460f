package core

import "sort"

// PostPropagator is the external collaborator interface: a theory
// propagator (e.g. an unfounded-set checker) called after unit propagation
// over watches reaches a fixpoint.
type PostPropagator interface {
	// Init is called once after the problem is loaded, before search starts.
	Init(s *Solver) error
	// Propagate may enqueue further literals on s; it returns false to
	// signal a conflict, in which case the solver's conflict set must be
	// populated via s.SetConflict before returning.
	Propagate(s *Solver) bool
	// Reset is called whenever the solver backtracks and unassigns a
	// variable, and on conflict, before leaving propagation.
	Reset()
	// Priority is fixed at install time; lower numbers run first.
	Priority() uint32
}

// undoNotified is the optional extension a PostPropagator can implement to
// be notified from Assignment.UndoUntil.
type undoNotified interface {
	Undo(level int)
}

// postPropagators stores registered propagators sorted by priority at
// install time; propagation iterates the vector. Removal shifts elements,
// but removal is rare enough for that to be acceptable.
type postPropagators struct {
	list []PostPropagator
}

func (pp *postPropagators) add(p PostPropagator) {
	pp.list = append(pp.list, p)
	sort.SliceStable(pp.list, func(i, j int) bool {
		return pp.list[i].Priority() < pp.list[j].Priority()
	})
}

func (pp *postPropagators) remove(p PostPropagator) {
	for i, q := range pp.list {
		if q == p {
			pp.list = append(pp.list[:i], pp.list[i+1:]...)
			return
		}
	}
}

func (pp *postPropagators) resetAll() {
	for _, p := range pp.list {
		p.Reset()
	}
}
