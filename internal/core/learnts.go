package core

import "sort"

// learnts.go decides which learnt clauses to discard and when.

// reduceLearnts discards the worst-scoring cfg.ReduceFraction of removable
// learnt clauses. A clause is never removable while it is locked (the
// reason for a current assignment) or glue (LBD at or below
// cfg.ReduceGlueLimit).
func (s *Solver) reduceLearnts() {
	type candidate struct {
		c     *Clause
		score float64
	}

	learnts := s.cdb.learnts
	cands := make([]candidate, 0, len(learnts))
	for _, c := range learnts {
		if c.locked(s.asg) || c.IsProtected() || c.LBD() <= s.cfg.ReduceGlueLimit {
			continue
		}
		cands = append(cands, candidate{c: c, score: s.reduceScore(c)})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].score < cands[j].score })

	n := int(float64(len(cands)) * s.cfg.ReduceFraction)
	for i := 0; i < n; i++ {
		s.cdb.removeClause(cands[i].c, true)
	}

	s.stats.Reductions++
	s.growReduceLimit()
	s.logger.Info("search event", "event", "reduce", "removed", n, "learnts", s.cdb.NumLearnts())
}

// reduceScore ranks a clause for removal: lower scores are removed first.
func (s *Solver) reduceScore(c *Clause) float64 {
	switch s.cfg.ReduceScore {
	case ScoreGlue:
		return float64(c.LBD())
	case ScoreBoth:
		// LBD dominates; activity breaks ties among equal-LBD clauses.
		return float64(c.LBD()) - c.Activity()/(1+c.Activity())
	case ScoreInLP:
		return float64(len(c.Literals()))
	default: // ScoreHeur
		return -c.Activity()
	}
}

// growReduceLimit advances the clause-count threshold for the next
// reduceLearnts call, either linearly or geometrically.
func (s *Solver) growReduceLimit() {
	if s.cfg.ReduceLinearStep > 0 {
		s.reduceLimit += s.cfg.ReduceLinearStep
		return
	}
	s.reduceLimit = int(float64(s.reduceLimit) * s.cfg.ReduceGrowth)
}
