package core

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestEndToEndScenarios(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "core end-to-end scenarios")
}

var _ = ginkgo.Describe("unit propagation chain", func() {
	// clauses {¬a,b}, {¬b,c}, {¬c,d}, assume a. Every other variable should
	// fall out by pure binary propagation, with no decision and no conflict.
	ginkgo.It("derives b, c and d from a alone", func() {
		s := NewSolver(DefaultSearchConfig)
		for i := 0; i < 4; i++ {
			s.AddVar(VarAtom)
		}
		gomega.Expect(s.AddClause(clause(-1, 2))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(-2, 3))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(-3, 4))).To(gomega.Succeed())

		res := s.Solve([]Literal{lit(1)})

		gomega.Expect(res).To(gomega.Equal(ResultSAT))
		gomega.Expect(s.Value(1)).To(gomega.Equal(True))
		gomega.Expect(s.Value(2)).To(gomega.Equal(True))
		gomega.Expect(s.Value(3)).To(gomega.Equal(True))
		gomega.Expect(s.Value(4)).To(gomega.Equal(True))
		gomega.Expect(s.Stats().Conflicts).To(gomega.Equal(int64(0)))
		// Every trail literal (a itself, then b, c, d) is dequeued once; the
		// assumption's push is the scenario's "one decision" and is not
		// counted in Stats.Decisions, which only tracks heuristic branching.
		gomega.Expect(s.Stats().Propagations).To(gomega.Equal(int64(4)))
	})
})

var _ = ginkgo.Describe("first UIP derivation", func() {
	// clauses {¬x1,x2}, {¬x1,x3}, {¬x2,¬x3,x4}, {¬x4,x5}, {¬x4,x6},
	// {¬x5,¬x6}. Deciding x1 true propagates x5=x6=true and conflicts on
	// the last clause; the first UIP is ¬x4, backjumping to level 0.
	ginkgo.It("learns the unit clause {¬x4} and backjumps to level 0", func() {
		s := NewSolver(DefaultSearchConfig)
		for i := 0; i < 6; i++ {
			s.AddVar(VarAtom)
		}
		gomega.Expect(s.AddClause(clause(-1, 2))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(-1, 3))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(-2, -3, 4))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(-4, 5))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(-4, 6))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(-5, -6))).To(gomega.Succeed())
		s.cdb.Freeze()

		s.asg.PushLevel()
		gomega.Expect(s.asg.Assign(lit(1), s.asg.DecisionLevel(), decisionReason)).To(gomega.BeTrue())

		confl := s.propagate()
		gomega.Expect(confl).NotTo(gomega.BeNil())

		learnt, level, lbd := s.analyze(confl)

		gomega.Expect(learnt).To(gomega.Equal([]Literal{NegLit(4)}))
		gomega.Expect(level).To(gomega.Equal(0))
		gomega.Expect(lbd).To(gomega.Equal(uint32(1)))
	})
})

var _ = ginkgo.Describe("watch movement", func() {
	// clause {a,b,c,d,e}, watches start on a,b. Assigning ¬a moves the
	// watch to c; assigning ¬b then moves it to d; the clause stays
	// non-unit until ¬c,¬d are both assigned, at which point it propagates
	// e=true.
	ginkgo.It("slides its two watches across false literals before propagating", func() {
		s := NewSolver(DefaultSearchConfig)
		for i := 0; i < 5; i++ {
			s.AddVar(VarAtom)
		}
		gomega.Expect(s.AddClause(clause(1, 2, 3, 4, 5))).To(gomega.Succeed())
		s.cdb.Freeze()
		c := s.cdb.problem[0]

		assignAndPropagate := func(n int) {
			s.asg.PushLevel()
			gomega.Expect(s.asg.Assign(lit(n), s.asg.DecisionLevel(), decisionReason)).To(gomega.BeTrue())
			gomega.Expect(s.propagate()).To(gomega.BeNil())
		}
		watched := func() (Literal, Literal) { return c.literals[0], c.literals[1] }

		assignAndPropagate(-1)
		w0, w1 := watched()
		gomega.Expect([]Literal{w0, w1}).To(gomega.ContainElement(lit(2)))
		gomega.Expect([]Literal{w0, w1}).To(gomega.ContainElement(lit(3)))
		gomega.Expect(s.asg.Value(5)).To(gomega.Equal(Free))

		assignAndPropagate(-2)
		w0, w1 = watched()
		gomega.Expect([]Literal{w0, w1}).To(gomega.ContainElement(lit(3)))
		gomega.Expect([]Literal{w0, w1}).To(gomega.ContainElement(lit(4)))
		gomega.Expect(s.asg.Value(5)).To(gomega.Equal(Free))

		assignAndPropagate(-3)
		gomega.Expect(s.asg.Value(5)).To(gomega.Equal(Free), "still not unit: one free watch remains")

		assignAndPropagate(-4)
		gomega.Expect(s.asg.Value(5)).To(gomega.Equal(True), "all other literals false: e is forced")
	})
})

var _ = ginkgo.Describe("restart correctness", func() {
	// A restart-heavy schedule must still converge on the correct answer:
	// restarting never loses or corrupts the permanent (root-level) part
	// of the assignment. Every variable v has both {v,w} and {v,¬w}, so the
	// first (negative, by SignDefault) decision conflicts at once, the
	// learnt unit lands at level 0, and the one-conflict budget restarts.
	ginkgo.It("still finds the unique solution when restarting on every conflict", func() {
		cfg := DefaultSearchConfig
		cfg.RestartSchedule = RestartGeometric
		cfg.RestartBase = 1
		cfg.RestartFactor = 1
		cfg.RandomFreq = 0
		s := NewSolver(cfg)
		for i := 0; i < 3; i++ {
			s.AddVar(VarAtom)
		}
		gomega.Expect(s.AddClause(clause(1, 2))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(1, -2))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(2, 3))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(2, -3))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(3, 1))).To(gomega.Succeed())
		gomega.Expect(s.AddClause(clause(3, -1))).To(gomega.Succeed())

		res := s.Solve(nil)

		gomega.Expect(res).To(gomega.Equal(ResultSAT))
		gomega.Expect(s.Stats().Restarts).To(gomega.BeNumerically(">", 0))
		trueCount := 0
		for v := Var(1); v <= 3; v++ {
			if s.Value(v) == True {
				trueCount++
			}
		}
		gomega.Expect(trueCount).To(gomega.Equal(3))
	})
})

var _ = ginkgo.Describe("learnt reduction keeps locks", func() {
	// 1000 learnts, 100 locked by being the reason for a current
	// assignment. reduceLearnts(0.9) must remove ~810 of the 900 unlocked
	// candidates and none of the 100 locked ones.
	ginkgo.It("never removes a clause that is the reason for an assignment", func() {
		cfg := DefaultSearchConfig
		cfg.ReduceFraction = 0.9
		cfg.ReduceGlueLimit = 0
		s := NewSolver(cfg)

		dummyA := s.AddVar(VarAtom)
		dummyB := s.AddVar(VarAtom)
		dummyC := s.AddVar(VarAtom)

		// Four literals each: learnts of size 2 or 3 go to the implicit
		// lists and never become *Clause values that reduceLearnts sees.
		const total, locked = 1000, 100
		lockVars := make([]Var, total)
		clauses := make([]*Clause, total)
		for i := 0; i < total; i++ {
			lockVars[i] = s.AddVar(VarAtom)
			lits := []Literal{PosLit(lockVars[i]), NegLit(dummyA), NegLit(dummyB), NegLit(dummyC)}
			clauses[i] = s.cdb.AddLearntClause(lits, 1)
		}

		s.asg.PushLevel()
		lockedClauses := make([]*Clause, 0, locked)
		for i := 0; i < locked; i++ {
			gomega.Expect(s.asg.Assign(PosLit(lockVars[i]), s.asg.DecisionLevel(), clauseReason(clauses[i]))).To(gomega.BeTrue())
			lockedClauses = append(lockedClauses, clauses[i])
		}

		gomega.Expect(s.cdb.NumLearnts()).To(gomega.Equal(total))
		s.reduceLearnts()

		gomega.Expect(s.cdb.NumLearnts()).To(gomega.Equal(total - int(float64(total-locked)*cfg.ReduceFraction)))
		for _, c := range lockedClauses {
			gomega.Expect(c.IsDeleted()).To(gomega.BeFalse())
		}
	})
})

var _ = ginkgo.Describe("assumption core", func() {
	// clauses {¬a,¬b}, {a,c}, {b,c}. Assuming a, b and ¬c together is
	// unsatisfiable; the reported core must be a subset of those three
	// assumptions that is, on its own, still unsatisfiable against the
	// same clauses.
	ginkgo.It("reports a core that is itself sufficient to derive false", func() {
		build := func() *Solver {
			s := NewSolver(DefaultSearchConfig)
			for i := 0; i < 3; i++ {
				s.AddVar(VarAtom)
			}
			gomega.Expect(s.AddClause(clause(-1, -2))).To(gomega.Succeed())
			gomega.Expect(s.AddClause(clause(1, 3))).To(gomega.Succeed())
			gomega.Expect(s.AddClause(clause(2, 3))).To(gomega.Succeed())
			return s
		}

		s := build()
		assumps := []Literal{lit(1), lit(2), lit(-3)}
		res := s.Solve(assumps)

		gomega.Expect(res).To(gomega.Equal(ResultAssumptionConflict))
		core := s.Core()
		gomega.Expect(core).NotTo(gomega.BeEmpty())
		allowed := map[Literal]bool{assumps[0]: true, assumps[1]: true, assumps[2]: true}
		for _, l := range core {
			gomega.Expect(allowed[l]).To(gomega.BeTrue(), "core literal %v must come from the original assumptions", l)
		}

		s2 := build()
		gomega.Expect(s2.Solve(core)).To(gomega.Equal(ResultAssumptionConflict), "the core alone must still be contradictory")
	})
})
