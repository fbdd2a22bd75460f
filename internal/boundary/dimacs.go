// Package boundary holds the glue between the solver core and the outside
// world: DIMACS instance/model loading and search configuration decoding.
// Nothing in internal/core imports this package; it exists so cmd/cdnl and
// the integration tests have somewhere to build a Solver from a file instead
// of hand-assembling clauses.
package boundary

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/rhagen/cdnl/internal/core"
)

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses a DIMACS CNF file and installs its variables and clauses
// into s, in order, using github.com/rhartert/dimacs to do the actual
// parsing.
func LoadDIMACS(filename string, gzipped bool, s *core.Solver) error {
	r, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &clauseBuilder{s: s}
	return dimacs.ReadBuilder(r, b)
}

// clauseBuilder implements dimacs.Builder over a *core.Solver.
type clauseBuilder struct {
	s *core.Solver
}

func (b *clauseBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported DIMACS problem type %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.s.AddVar(core.VarAtom)
	}
	return nil
}

func (b *clauseBuilder) Clause(tmpClause []int) error {
	lits := make([]core.Literal, len(tmpClause))
	for i, l := range tmpClause {
		lits[i] = dimacsLiteral(l)
	}
	return b.s.AddClause(lits)
}

func (b *clauseBuilder) Comment(_ string) error {
	return nil
}

func dimacsLiteral(l int) core.Literal {
	if l < 0 {
		return core.NegLit(core.Var(-l))
	}
	return core.PosLit(core.Var(l))
}

// ReadModels parses a file of DIMACS-style model lines (one satisfying
// assignment per line, as produced by many SAT competition scripts) for use
// as golden data in tests.
func ReadModels(filename string) ([][]bool, error) {
	r, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error { return nil }

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
