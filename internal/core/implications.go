package core

// implications.go holds the binary/ternary "implicit clause" storage:
// clauses of size 2 or 3 are recorded as edges in per-literal lists rather
// than as general Clause objects, so they propagate without ever
// dereferencing clause memory.

// binEdge is one direction of a binary clause {lit, to}: "lit is false
// implies to must be true".
type binEdge struct {
	to     Literal
	learnt bool
}

// terEdge is one direction of a ternary clause {lit, to1, to2}.
type terEdge struct {
	to1, to2 Literal
	learnt   bool
}

// addBinary records both directions of a binary clause.
func (cdb *ClauseDB) addBinary(a, b Literal, learnt bool) {
	cdb.binEdges[a.Opposite()] = append(cdb.binEdges[a.Opposite()], binEdge{to: b, learnt: learnt})
	cdb.binEdges[b.Opposite()] = append(cdb.binEdges[b.Opposite()], binEdge{to: a, learnt: learnt})
}

// addTernary records all three directions of a ternary clause.
func (cdb *ClauseDB) addTernary(a, b, c Literal, learnt bool) {
	cdb.terEdges[a.Opposite()] = append(cdb.terEdges[a.Opposite()], terEdge{to1: b, to2: c, learnt: learnt})
	cdb.terEdges[b.Opposite()] = append(cdb.terEdges[b.Opposite()], terEdge{to1: a, to2: c, learnt: learnt})
	cdb.terEdges[c.Opposite()] = append(cdb.terEdges[c.Opposite()], terEdge{to1: a, to2: b, learnt: learnt})
}

// Note on reason.other/other2 for binary/ternary reasons (see assignment.go):
// they store the TRUE trail literal(s) that triggered the implication
// directly (not the clause's own literals), so conflict analysis can use them
// as antecedents without any further negation — consistent with how a
// reasonClause's explainAssign already returns TRUE antecedent literals.
