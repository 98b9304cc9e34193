package core

import (
	"slices"
	"testing"
)

func TestFillStatesDeterministic(t *testing.T) {
	a := make([]uint8, 256)
	b := make([]uint8, 256)
	FillStates(NewRNG(3).Source(), a, 5)
	FillStates(NewRNG(3).Source(), b, 5)
	if !slices.Equal(a, b) {
		t.Fatal("same seed produced different fills")
	}
	for i, v := range a {
		if v >= 5 {
			t.Fatalf("cell %d = %d, want < 5", i, v)
		}
	}
}

func TestFillDensityBounds(t *testing.T) {
	buf := make([]uint8, 64)
	FillDensity(NewRNG(1).Source(), buf, 1, 3)
	for i, v := range buf {
		if v != 3 {
			t.Fatalf("density 1: cell %d = %d", i, v)
		}
	}
	FillDensity(NewRNG(1).Source(), buf, 0, 3)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("density 0: cell %d = %d", i, v)
		}
	}
}
