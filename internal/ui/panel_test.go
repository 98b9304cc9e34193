package ui

import (
	"slices"
	"strings"
	"testing"

	"uft-ca/internal/core"
	"uft-ca/internal/sims/lattice"
	"uft-ca/pkg/ca"
)

func TestPanelLines(t *testing.T) {
	sim := lattice.New(4, 4, 3)
	lines := panelLines(sim, sim.Parameters(), Status{Tick: 7, Slice: 1, Depth: 3, Paused: true, TPS: 30})

	if lines[0] != "Lattice" {
		t.Fatalf("title = %q", lines[0])
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"[Lattice]", "[Rule]", "tick  7 (paused)", "slice 2/3", "tps   30"} {
		if !strings.Contains(joined, want) {
			t.Errorf("panel missing %q:\n%s", want, joined)
		}
	}
}

func TestPanelLinesWithoutParameters(t *testing.T) {
	lines := panelLines(nil, core.ParameterSnapshot{}, Status{})
	if lines[0] != "Parameters" || lines[len(lines)-2] != "slice 1/1" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestSliceHeat(t *testing.T) {
	size := core.Size{W: 3, H: 3, D: 3}
	l := ca.NewLattice3D(3, 3, 3)
	cells := make([]uint8, size.Cells())
	cells[l.Index(1, 1, 1)] = 1

	counts, limit, err := sliceHeat(size, cells, 0)
	if err != nil {
		t.Fatal(err)
	}
	if limit != ca.MaxMooreNeighbors || len(counts) != 9 {
		t.Fatalf("limit=%d len=%d", limit, len(counts))
	}
	want := []uint8{1, 1, 1, 1, 1, 1, 1, 1, 1}
	if !slices.Equal(counts, want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}

	mid, _, _ := sliceHeat(size, cells, 1)
	if mid[4] != 0 || mid[0] != 1 {
		t.Fatalf("middle slice = %v", mid)
	}

	if _, _, err := sliceHeat(size, cells[:5], 0); err == nil {
		t.Fatal("expected length mismatch")
	}
	flat, limit, _ := sliceHeat(core.Size{W: 2, H: 2, D: 1}, []uint8{1, 0, 0, 0}, 0)
	if limit != 8 || !slices.Equal(flat, []uint8{0, 1, 1, 1}) {
		t.Fatalf("flat = %v limit %d", flat, limit)
	}
}
