package core

import "github.com/pkg/errors"

// ClauseDB holds problem/learnt clause storage, the binary/ternary
// implication graph, and per-literal watch lists.
type ClauseDB struct {
	problem []*Clause
	learnts []*Clause

	watchers [][]watcher // general-clause watches, indexed by Literal
	binEdges [][]binEdge // indexed by Literal
	terEdges [][]terEdge // indexed by Literal

	frozen bool // true once search has started

	clauseInc   float64
	clauseDecay float64

	memUse int64 // running byte estimate

	alloc *clauseAllocator
}

func newClauseDB(decay float64) *ClauseDB {
	return &ClauseDB{
		clauseInc:   1,
		clauseDecay: decay,
		alloc:       newClauseAllocator(),
	}
}

// growTo extends the per-literal lists to cover a newly added variable.
func (cdb *ClauseDB) growTo(v Var) {
	for Literal(len(cdb.watchers)) <= NegLit(v) {
		cdb.watchers = append(cdb.watchers, nil)
		cdb.binEdges = append(cdb.binEdges, nil)
		cdb.terEdges = append(cdb.terEdges, nil)
	}
}

// Freeze marks the clause database frozen: no more problem clauses may be
// added.
func (cdb *ClauseDB) Freeze()        { cdb.frozen = true }
func (cdb *ClauseDB) Frozen() bool   { return cdb.frozen }
func (cdb *ClauseDB) NumProblem() int { return len(cdb.problem) }
func (cdb *ClauseDB) NumLearnts() int { return len(cdb.learnts) }

// ErrClauseAfterFreeze is returned by AddProblemClause once the solver has
// started searching.
var ErrClauseAfterFreeze = errors.New("add_problem_clause called after search start")

// dedupAndSimplify removes duplicate/false literals in place, detects
// tautologies, and returns the surviving literal count. It mirrors yass's
// NewClause pre-processing (sat/clauses.go).
func dedupAndSimplify(asg *Assignment, lits []Literal) (n int, tautology bool) {
	seen := map[Literal]bool{}
	size := len(lits)
	for i := size - 1; i >= 0; i-- {
		if seen[lits[i].Opposite()] {
			return 0, true
		}
		if seen[lits[i]] {
			size--
			lits[i], lits[size] = lits[size], lits[i]
			continue
		}
		seen[lits[i]] = true
		switch asg.LitValue(lits[i]) {
		case True:
			return 0, true
		case False:
			size--
			lits[i], lits[size] = lits[size], lits[i]
		}
	}
	return size, false
}

// AddProblemClause adds a non-learnt clause, dispatching to the implicit
// binary/ternary storage for size 2/3 and to general clause storage
// otherwise. It must be called before Freeze.
func (cdb *ClauseDB) AddProblemClause(asg *Assignment, lits []Literal) (bool, error) {
	if cdb.frozen {
		return false, errors.WithStack(ErrClauseAfterFreeze)
	}

	buf := append([]Literal(nil), lits...)
	n, tautology := dedupAndSimplify(asg, buf)
	if tautology {
		return true, nil
	}
	buf = buf[:n]

	switch len(buf) {
	case 0:
		return false, nil // empty clause: unsatisfiable
	case 1:
		ok := asg.Assign(buf[0], 0, decisionReason)
		return ok, nil
	case 2:
		cdb.addBinary(buf[0], buf[1], false)
		return true, nil
	case 3:
		cdb.addTernary(buf[0], buf[1], buf[2], false)
		return true, nil
	default:
		c := cdb.alloc.newClause(buf, false)
		cdb.problem = append(cdb.problem, c)
		cdb.attach(c)
		cdb.memUse += int64(cap(c.literals)) * 4
		return true, nil
	}
}

// AddLearntClause installs a clause derived by ConflictAnalysis. The caller
// (search.go) is responsible for ordering lits so that lits[0] is the
// asserting literal and lits[1] is a literal at the backjump level;
// AddLearntClause does not reorder them. Size-2/3 learnts go to the
// implicit storage and are returned with a nil *Clause.
func (cdb *ClauseDB) AddLearntClause(lits []Literal, lbd uint32) *Clause {
	switch len(lits) {
	case 1:
		return nil // caller enqueues the unit directly
	case 2:
		cdb.addBinary(lits[0], lits[1], true)
		return nil
	case 3:
		cdb.addTernary(lits[0], lits[1], lits[2], true)
		return nil
	default:
		c := cdb.alloc.newClause(lits, true)
		c.lbd = lbd
		cdb.learnts = append(cdb.learnts, c)
		cdb.attach(c)
		cdb.memUse += int64(cap(c.literals)) * 4
		return c
	}
}

// addBlockingClause installs a clause bypassing the frozen check, used
// internally by model enumeration to rule out an already-found model after
// search has started.
func (cdb *ClauseDB) addBlockingClause(asg *Assignment, lits []Literal) (bool, error) {
	wasFrozen := cdb.frozen
	cdb.frozen = false
	ok, err := cdb.AddProblemClause(asg, lits)
	cdb.frozen = wasFrozen
	return ok, err
}

// removeClause detaches, frees, and forgets a general clause.
func (cdb *ClauseDB) removeClause(c *Clause, fromLearnts bool) {
	cdb.detach(c)
	cdb.memUse -= int64(cap(c.literals)) * 4
	c.status |= statusDeleted
	cdb.alloc.freeClause(c)

	slicePtr := &cdb.problem
	if fromLearnts {
		slicePtr = &cdb.learnts
	}
	s := *slicePtr
	for i, cc := range s {
		if cc == c {
			s[i] = s[len(s)-1]
			*slicePtr = s[:len(s)-1]
			break
		}
	}
}

// Simplify removes problem/learnt clauses that are satisfied given the
// current (level-0) assignment. Must only be called at decision level 0
// with an empty propagation queue.
func (cdb *ClauseDB) Simplify(asg *Assignment) {
	cdb.simplifySlice(asg, &cdb.learnts, true)
	cdb.simplifySlice(asg, &cdb.problem, false)
}

func (cdb *ClauseDB) simplifySlice(asg *Assignment, slicePtr *[]*Clause, learnt bool) {
	clauses := *slicePtr
	j := 0
	for i := range clauses {
		c := clauses[i]
		if c.simplify(asg) {
			cdb.removeClause(c, learnt)
			continue
		}
		clauses[j] = c
		j++
	}
	*slicePtr = clauses[:j]
}

// BumpActivity increases c's activity, rescaling every learnt clause's
// activity by 1e-20 if the bumped clause now exceeds 1e20.
func (cdb *ClauseDB) BumpActivity(c *Clause) {
	c.activity += cdb.clauseInc
	if c.activity > 1e20 {
		cdb.clauseInc *= 1e-20
		for _, l := range cdb.learnts {
			l.activity *= 1e-20
		}
	}
}

// DecayActivity scales up the activity increment once per conflict, which
// is equivalent to decaying every clause's score relative to it.
func (cdb *ClauseDB) DecayActivity() {
	cdb.clauseInc /= cdb.clauseDecay
}

// MemUse returns the running byte estimate consumed by tracked clauses.
func (cdb *ClauseDB) MemUse() int64 { return cdb.memUse }
