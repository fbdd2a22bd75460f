package core

import "testing"

func TestLubyRestart(t *testing.T) {
	want := []int64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	r := NewLubyRestart(1)
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Fatalf("term %d: got %d, want %d", i, got, w)
		}
	}
}

func TestLubyRestartScaledByUnit(t *testing.T) {
	r := NewLubyRestart(100)
	want := []int64{100, 100, 200, 100}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Fatalf("term %d: got %d, want %d", i, got, w)
		}
	}
}

func TestGeometricRestart(t *testing.T) {
	r := NewGeometricRestart(100, 2)
	want := []int64{100, 200, 400, 800}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Fatalf("term %d: got %d, want %d", i, got, w)
		}
	}
}

func TestInnerOuterGeometricRestart(t *testing.T) {
	r := NewInnerOuterGeometricRestart(100, 2, 2)
	want := []int64{100, 100, 200}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Fatalf("term %d: got %d, want %d", i, got, w)
		}
	}
}
