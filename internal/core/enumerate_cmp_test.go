package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// TestEnumerateModelsMatchesExactSet compares the full enumerated model set
// against the known set for x1 xor x2, rather than just its length: model
// order from EnumerateModels is search-dependent, so the comparison sorts
// both sides lexicographically by LBool value before diffing.
func TestEnumerateModelsMatchesExactSet(t *testing.T) {
	s := newTestSolver(t, 2)
	if err := s.AddClause(clause(1, 2)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddClause(clause(-1, -2)); err != nil {
		t.Fatal(err)
	}

	got, res := s.EnumerateModels(nil, 0)
	if res != ResultUNSAT {
		t.Fatalf("EnumerateModels result = %v, want ResultUNSAT once models are exhausted", res)
	}

	want := [][]LBool{
		{True, False},
		{False, True},
	}

	less := func(a, b []LBool) bool {
		for i := range a {
			if a[i] != b[i] {
				return a[i] < b[i]
			}
		}
		return false
	}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("enumerated model set mismatch (-want +got):\n%s", diff)
	}
}
