package core

import (
	"slices"
	"testing"
	"time"
)

func TestByteGridLoadSlice(t *testing.T) {
	size := Size{W: 2, H: 2, D: 3}
	volume := []uint8{0, 0, 0, 0, 1, 2, 3, 4, 9, 9, 9, 9}
	g := NewByteGrid(2, 2)
	if !g.LoadSlice(volume, size, 1) {
		t.Fatal("LoadSlice(z=1) failed")
	}
	if !slices.Equal(g.Cells(), []uint8{1, 2, 3, 4}) {
		t.Fatalf("slice = %v", g.Cells())
	}
	if g.LoadSlice(volume, size, 3) {
		t.Fatal("LoadSlice(z=3) must fail")
	}
	if !slices.Equal(g.Cells(), []uint8{0, 0, 0, 0}) {
		t.Fatalf("failed load must clear, got %v", g.Cells())
	}
}

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }
	fs.accumulator = 0

	if n := fs.Due(); n != 0 {
		t.Fatalf("first call due = %d, want 0", n)
	}
	clock = clock.Add(250 * time.Millisecond)
	if n := fs.Due(); n != 2 {
		t.Fatalf("due after 250ms = %d, want 2", n)
	}
	clock = clock.Add(10 * time.Second)
	if n := fs.Due(); n != maxCatchUp {
		t.Fatalf("due after stall = %d, want %d", n, maxCatchUp)
	}
	if fs.TPS() != 10 {
		t.Fatalf("tps = %d", fs.TPS())
	}
}

func TestFixedStepClampsTPS(t *testing.T) {
	fs := NewFixedStep(2_000_000_000)
	if got := fs.TPS(); got != int(time.Second) {
		t.Fatalf("tps = %d, want %d", got, int(time.Second))
	}
	fs.SetTPS(-5)
	if got := fs.TPS(); got != 60 {
		t.Fatalf("tps after non-positive = %d, want 60", got)
	}
}
