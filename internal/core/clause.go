package core

// clauseStatus packs the small per-clause flags (learnt, protected,
// deleted), grounded on yass's newer sat/clauses.go status bitmask.
type clauseStatus uint8

const (
	statusLearnt    clauseStatus = 0b001
	statusProtected clauseStatus = 0b010 // glue/frozen: survives reduceLearnts regardless of score
	statusDeleted   clauseStatus = 0b100
)

// Clause is a general (size >= 4) clause stored as a contiguous literal
// array with a two-watched-literal header. Binary and ternary clauses never
// use this representation; they live in the implicit lists (implications.go).
type Clause struct {
	literals []Literal
	activity float64
	lbd      uint32
	// prevPos caches where Propagate last found a replacement watch, so the
	// next call resumes scanning from there instead of from slot 2 every
	// time (teacher: sat/clauses.go).
	prevPos int
	status  clauseStatus
}

func newGeneralClause(lits []Literal, learnt bool) *Clause {
	c := &Clause{
		literals: append([]Literal(nil), lits...),
		prevPos:  2,
	}
	if learnt {
		c.status |= statusLearnt
	}
	return c
}

func (c *Clause) IsLearnt() bool  { return c.status&statusLearnt != 0 }
func (c *Clause) IsDeleted() bool { return c.status&statusDeleted != 0 }
func (c *Clause) IsProtected() bool { return c.status&statusProtected != 0 }
func (c *Clause) SetProtected(on bool) {
	if on {
		c.status |= statusProtected
	} else {
		c.status &^= statusProtected
	}
}

// Literals returns the clause's current literals. Callers must not retain
// slices across a Simplify/Propagate call, which may mutate or shrink it.
func (c *Clause) Literals() []Literal { return c.literals }

// LBD returns the last-computed literal block distance. It is only ever
// lowered, never raised, once set.
func (c *Clause) LBD() uint32 { return c.lbd }

// Activity returns the clause's current activity score.
func (c *Clause) Activity() float64 { return c.activity }

// watcher is a general-clause entry on a literal's watch list: the clause to
// wake when the literal becomes true, plus a blocker literal that, if
// already true, proves the clause satisfied without touching clause memory.
type watcher struct {
	clause  *Clause
	blocker Literal
}

// watch registers c to be woken when lit becomes true (i.e. ~lit becomes
// false and must be checked), remembering guard as the blocker.
func (cdb *ClauseDB) watch(lit Literal, c *Clause, guard Literal) {
	cdb.watchers[lit] = append(cdb.watchers[lit], watcher{clause: c, blocker: guard})
}

// unwatch removes c from lit's watch list.
func (cdb *ClauseDB) unwatch(lit Literal, c *Clause) {
	ws := cdb.watchers[lit]
	j := 0
	for i := range ws {
		if ws[i].clause != c {
			ws[j] = ws[i]
			j++
		}
	}
	cdb.watchers[lit] = ws[:j]
}

// attach installs the two-watch invariant for a freshly built general
// clause: slot 0 and slot 1 are watched on their own complements, guarded by
// the other watch literal.
func (cdb *ClauseDB) attach(c *Clause) {
	cdb.watch(c.literals[0].Opposite(), c, c.literals[1])
	cdb.watch(c.literals[1].Opposite(), c, c.literals[0])
}

// detach removes both of c's watches. Used when a clause is deleted or
// promoted to a unit reason and no longer needs watching.
func (cdb *ClauseDB) detach(c *Clause) {
	cdb.unwatch(c.literals[0].Opposite(), c)
	cdb.unwatch(c.literals[1].Opposite(), c)
}

// locked reports whether c is the reason for a currently-true literal; a
// locked learnt clause must not be deleted.
func (c *Clause) locked(asg *Assignment) bool {
	v := c.literals[0].Var()
	r := asg.Reason(v)
	return r.kind == reasonClause && r.clause == c
}

// simplify drops literals that are false at level 0 and reports whether the
// clause is satisfied (and thus removable) at level 0.
func (c *Clause) simplify(asg *Assignment) bool {
	k := 0
	for _, lit := range c.literals {
		switch asg.LitValue(lit) {
		case True:
			return true
		case False:
			// discard
		default:
			c.literals[k] = lit
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// propagate is invoked when literal l (the complement of one of c's watches)
// has just become true: ensure slot 1 is the watch that triggered, check the
// blocker in slot 0, scan slots 2.. for a replacement, and otherwise
// unit-propagate or signal conflict by returning false.
func (c *Clause) propagate(cdb *ClauseDB, asg *Assignment, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], opp
	}

	if asg.LitValue(c.literals[0]) == True {
		cdb.watch(l, c, c.literals[0])
		return true
	}

	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i := c.prevPos; i < len(c.literals); i++ {
		if asg.LitValue(c.literals[i]) != False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], opp
			cdb.watch(c.literals[1].Opposite(), c, c.literals[0])
			return true
		}
	}
	for i := 2; i < c.prevPos; i++ {
		if asg.LitValue(c.literals[i]) != False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], opp
			cdb.watch(c.literals[1].Opposite(), c, c.literals[0])
			return true
		}
	}

	// All of literals[1:] are false: literals[0] must become true or we have
	// a conflict (the caller enqueues/detects via asg.Assign's return value).
	cdb.watch(l, c, c.literals[0])
	return asg.Assign(c.literals[0], asg.DecisionLevel(), clauseReason(c))
}

// explainConflict returns the negation of every literal in c, used when c
// itself is the conflicting clause.
func (c *Clause) explainConflict(out []Literal) []Literal {
	out = out[:0]
	for _, l := range c.literals {
		out = append(out, l.Opposite())
	}
	return out
}

// explainAssign returns the negation of every literal but the asserted one,
// used when resolving the reason for an implied literal.
func (c *Clause) explainAssign(out []Literal) []Literal {
	out = out[:0]
	for _, l := range c.literals[1:] {
		out = append(out, l.Opposite())
	}
	return out
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "()"
	}
	s := "(" + c.literals[0].String()
	for _, l := range c.literals[1:] {
		s += " " + l.String()
	}
	return s + ")"
}
