package core

import "sync"

// shortClauseCap is the largest literal count the small-object allocator
// pools. At 4 bytes/literal (Literal is int32) this caps fixed-size blocks
// at 32 bytes for short learnt clauses; anything larger falls back to a
// regular allocation, matching clasp's own small-block allocator threshold.
const shortClauseCap = 8

// clauseAllocator owns the pool of short-clause literal backing arrays. It
// replaces yass's two build-tag-selected variants (clause_alloc.go's
// no-op and clause_allocpool.go's sync.Pool) with a single always-on
// allocator, running the small-object allocator unconditionally rather than
// as an opt-in build flag (see DESIGN.md).
type clauseAllocator struct {
	shortPool sync.Pool
}

func newClauseAllocator() *clauseAllocator {
	return &clauseAllocator{
		shortPool: sync.Pool{
			New: func() any {
				s := make([]Literal, 0, shortClauseCap)
				return &s
			},
		},
	}
}

func (ca *clauseAllocator) newClause(lits []Literal, learnt bool) *Clause {
	c := &Clause{prevPos: 2}
	if learnt {
		c.status |= statusLearnt
	}

	if len(lits) <= shortClauseCap {
		ref := ca.shortPool.Get().(*[]Literal)
		s := (*ref)[:0]
		s = append(s, lits...)
		c.literals = s
	} else {
		c.literals = append([]Literal(nil), lits...)
	}
	return c
}

// freeClause returns c's backing array to the pool if it is short-clause
// sized, and clears the clause's literal slice so it can be garbage
// collected even if the *Clause value itself is still referenced (e.g. by a
// stale watcher entry pending removal).
func (ca *clauseAllocator) freeClause(c *Clause) {
	if cap(c.literals) == shortClauseCap {
		s := c.literals[:0]
		ca.shortPool.Put(&s)
	}
	c.literals = nil
}
