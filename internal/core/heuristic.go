package core

import (
	"math/rand"

	"github.com/rhartert/yagh"
)

// VarEvent describes why UpdateVar was called.
type VarEvent int

const (
	VarAdded VarEvent = iota
	VarRemoved
	VarResurrected
)

// ConstraintKind tags a clause installed via NewConstraint.
type ConstraintKind int

const (
	ConstraintProblem ConstraintKind = iota
	ConstraintLearnt
)

// Heuristic is the decision heuristic interface: it owns variable ordering
// and proposes the next decision literal.
type Heuristic interface {
	StartInit(s *Solver)
	EndInit(s *Solver)
	UpdateVar(v Var, ev VarEvent)
	Simplify(s *Solver, trailStart int)
	NewConstraint(lits []Literal, kind ConstraintKind)
	UpdateReason(lits []Literal, resolveLit Literal)
	// Select returns a literal whose variable is currently Free, or
	// LitFalse (var 0) as the sentinel meaning the heuristic itself has
	// already assumed a literal and has nothing further to propose.
	Select(s *Solver) Literal
}

// HeuristicKind selects one of the five supported decision strategies.
type HeuristicKind int

const (
	HeuristicVSIDS HeuristicKind = iota
	HeuristicBerkmin
	HeuristicVMTF
	HeuristicUnit
	HeuristicNone
)

// --- VSIDS --------------------------------------------------------------

// vsids is the classic activity-based heuristic, grounded on yass's
// VarOrder (internal/sat/ordering.go): a yagh binary heap keyed by negated
// activity, with phase saving and rescaling on overflow.
type vsids struct {
	heap        *yagh.IntMap[float64]
	inHeap      []bool
	activity    []float64
	activityInc float64
	decay       float64
	phaseSaving bool
	rng         *rand.Rand
	randomFreq  float64
}

func newVSIDS(decay float64, phaseSaving bool, rng *rand.Rand) *vsids {
	return &vsids{
		heap:        yagh.New[float64](0),
		activityInc: 1,
		decay:       decay,
		phaseSaving: phaseSaving,
		rng:         rng,
	}
}

func (h *vsids) StartInit(s *Solver) {}
func (h *vsids) EndInit(s *Solver)   {}

func (h *vsids) UpdateVar(v Var, ev VarEvent) {
	i := int(v)
	for len(h.activity) <= i {
		h.activity = append(h.activity, 0)
		h.inHeap = append(h.inHeap, false)
		h.heap.GrowBy(1)
	}
	switch ev {
	case VarAdded, VarResurrected:
		h.inHeap[i] = true
		h.heap.Put(i, -h.activity[i])
	case VarRemoved:
		h.inHeap[i] = false
		if h.heap.Contains(i) {
			h.heap.Remove(i)
		}
	}
}

func (h *vsids) Simplify(s *Solver, trailStart int) {}

func (h *vsids) NewConstraint(lits []Literal, kind ConstraintKind) {}

func (h *vsids) UpdateReason(lits []Literal, resolveLit Literal) {
	h.bump(resolveLit.Var())
	for _, l := range lits {
		h.bump(l.Var())
	}
	h.decayScores()
}

func (h *vsids) bump(v Var) {
	if v == 0 {
		return // sentinel variable, never a real decision candidate
	}
	i := int(v)
	h.activity[i] += h.activityInc
	if h.inHeap[i] {
		h.heap.Put(i, -h.activity[i])
	}
	if h.activity[i] > 1e100 {
		h.rescale()
	}
}

func (h *vsids) decayScores() {
	h.activityInc /= h.decay
	if h.activityInc > 1e100 {
		h.rescale()
	}
}

func (h *vsids) rescale() {
	h.activityInc *= 1e-100
	for i := range h.activity {
		h.activity[i] *= 1e-100
		if h.inHeap[i] {
			h.heap.Put(i, -h.activity[i])
		}
	}
}

func (h *vsids) Select(s *Solver) Literal {
	for {
		next, ok := h.heap.Pop()
		if !ok {
			return LitFalse // no free variable left: total assignment
		}
		v := Var(next.Elem)
		h.inHeap[int(v)] = false
		if s.asg.Value(v) != Free {
			continue
		}
		return h.decisionLiteral(s, v)
	}
}

// decisionLiteral applies the sign_def policy: a random sign a randomFreq
// fraction of the time, otherwise the highest-precedence preference hint,
// then (if phase saving is on) the last value v held, falling back to
// cfg.SignDefault.
func (h *vsids) decisionLiteral(s *Solver, v Var) Literal {
	if h.rng != nil && h.randomFreq > 0 && h.rng.Float64() < h.randomFreq {
		if h.rng.Intn(2) == 0 {
			return PosLit(v)
		}
		return NegLit(v)
	}
	if pref := s.asg.PrefSign(v); pref != Free {
		return litForSign(v, pref)
	}
	if h.phaseSaving {
		if saved := s.asg.SavedPhase(v); saved != Free {
			return litForSign(v, saved)
		}
	}
	return litForSign(v, s.cfg.SignDefault)
}

func litForSign(v Var, sign LBool) Literal {
	if sign == False {
		return NegLit(v)
	}
	return PosLit(v)
}

// reinsert is called via Assignment.onUnassign (see solver.go wiring) so
// that a variable freed by backtracking becomes selectable again.
func (h *vsids) reinsert(v Var, wasValue LBool) {
	i := int(v)
	if !h.inHeap[i] {
		h.inHeap[i] = true
		h.heap.Put(i, -h.activity[i])
	}
}

// --- Unit (fixed order, no activity) ------------------------------------

// unitHeuristic always selects the lowest-numbered free variable positively.
// It is the simplest of the five named strategies and a useful baseline for
// determinism tests.
type unitHeuristic struct{}

func (unitHeuristic) StartInit(s *Solver)                         {}
func (unitHeuristic) EndInit(s *Solver)                           {}
func (unitHeuristic) UpdateVar(v Var, ev VarEvent)                {}
func (unitHeuristic) Simplify(s *Solver, trailStart int)          {}
func (unitHeuristic) NewConstraint(lits []Literal, k ConstraintKind) {}
func (unitHeuristic) UpdateReason(lits []Literal, resolveLit Literal) {}

func (unitHeuristic) Select(s *Solver) Literal {
	for v := Var(1); int(v) <= s.asg.NumVars(); v++ {
		if s.asg.Value(v) == Free {
			return PosLit(v)
		}
	}
	return LitFalse
}

// --- None (external control only) ---------------------------------------

// noneHeuristic never proposes a decision; it is used when every decision is
// expected to arrive through an assumption (push_root) or another external
// collaborator.
type noneHeuristic struct{}

func (noneHeuristic) StartInit(s *Solver)                         {}
func (noneHeuristic) EndInit(s *Solver)                           {}
func (noneHeuristic) UpdateVar(v Var, ev VarEvent)                {}
func (noneHeuristic) Simplify(s *Solver, trailStart int)          {}
func (noneHeuristic) NewConstraint(lits []Literal, k ConstraintKind) {}
func (noneHeuristic) UpdateReason(lits []Literal, resolveLit Literal) {}
func (noneHeuristic) Select(s *Solver) Literal                    { return LitFalse }

// --- BerkMin (recent-conflict-clause first, VSIDS fallback) -------------

// berkmin layers a small "recent conflict clauses" stack on top of a vsids
// instance: Select first looks for a free, unsatisfied literal in the most
// recently learnt clauses (most recent first) and only falls back to the
// global activity heap when none of them has a usable candidate. This is a
// simplified version of BerkMin's clause-stack-driven decision heuristic.
type berkmin struct {
	*vsids
	recent    [][]Literal
	maxRecent int
}

func newBerkmin(decay float64, phaseSaving bool, rng *rand.Rand) *berkmin {
	return &berkmin{vsids: newVSIDS(decay, phaseSaving, rng), maxRecent: 32}
}

func (h *berkmin) NewConstraint(lits []Literal, kind ConstraintKind) {
	if kind != ConstraintLearnt {
		return
	}
	h.recent = append(h.recent, lits)
	if len(h.recent) > h.maxRecent {
		h.recent = h.recent[1:]
	}
}

func (h *berkmin) Select(s *Solver) Literal {
	for i := len(h.recent) - 1; i >= 0; i-- {
		clause := h.recent[i]
		satisfied := false
		var best Literal = -1
		var bestAct float64 = -1
		for _, l := range clause {
			switch s.asg.LitValue(l) {
			case True:
				satisfied = true
			case Free:
				if a := h.activity[int(l.Var())]; a > bestAct {
					bestAct = a
					best = l
				}
			}
		}
		if satisfied || best == -1 {
			continue
		}
		return best
	}
	return h.vsids.Select(s)
}

// --- VMTF (variable move-to-front) ---------------------------------------

// vmtf is a simplified variable-move-to-front heuristic: free variables are
// scanned in a list order, and every variable touched during conflict
// resolution is moved to the front of that list, so recently-involved
// variables are preferred without needing a heap.
type vmtf struct {
	order []Var
	pos   []int // pos[v] = index of v in order, or -1 if not present
	free  []bool
}

func newVMTF() *vmtf {
	return &vmtf{}
}

func (h *vmtf) StartInit(s *Solver) {}
func (h *vmtf) EndInit(s *Solver)   {}

func (h *vmtf) UpdateVar(v Var, ev VarEvent) {
	i := int(v)
	for len(h.free) <= i {
		h.free = append(h.free, false)
		h.pos = append(h.pos, -1)
	}
	switch ev {
	case VarAdded, VarResurrected:
		h.free[i] = true
		h.order = append([]Var{v}, h.order...)
		h.reindex()
	case VarRemoved:
		h.free[i] = false
	}
}

func (h *vmtf) reindex() {
	for i, v := range h.order {
		h.pos[int(v)] = i
	}
}

func (h *vmtf) Simplify(s *Solver, trailStart int) {}

func (h *vmtf) NewConstraint(lits []Literal, kind ConstraintKind) {}

func (h *vmtf) UpdateReason(lits []Literal, resolveLit Literal) {
	h.moveToFront(resolveLit.Var())
	for _, l := range lits {
		h.moveToFront(l.Var())
	}
}

func (h *vmtf) moveToFront(v Var) {
	i := h.pos[int(v)]
	if i <= 0 {
		return
	}
	copy(h.order[1:i+1], h.order[0:i])
	h.order[0] = v
	h.reindex()
}

func (h *vmtf) Select(s *Solver) Literal {
	for _, v := range h.order {
		if s.asg.Value(v) != Free {
			continue
		}
		if pref := s.asg.PrefSign(v); pref != Free {
			return litForSign(v, pref)
		}
		return litForSign(v, s.cfg.SignDefault)
	}
	return LitFalse
}
