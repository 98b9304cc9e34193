package ui

import (
	"fmt"
	"strings"

	"uft-ca/internal/core"
	"uft-ca/pkg/ca"
)

// Status is the viewer state shown beneath the parameter list.
type Status struct {
	Tick   uint64
	Slice  int
	Depth  int
	Paused bool
	TPS    int
}

// panelLines lays out the HUD text: title, one block per parameter group, then
// the run status.
func panelLines(sim core.Sim, snap core.ParameterSnapshot, st Status) []string {
	title := "Parameters"
	if sim != nil && sim.Name() != "" {
		title = strings.ToUpper(sim.Name()[:1]) + sim.Name()[1:]
	}
	lines := []string{title, ""}
	for _, g := range snap.Groups {
		if g.Name != "" {
			lines = append(lines, "["+g.Name+"]")
		}
		for _, p := range g.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			lines = append(lines, fmt.Sprintf("%-13s %s", label, p.Value))
		}
		lines = append(lines, "")
	}
	state := "running"
	if st.Paused {
		state = "paused"
	}
	lines = append(lines,
		fmt.Sprintf("tick  %d (%s)", st.Tick, state),
		fmt.Sprintf("slice %d/%d", st.Slice+1, max(st.Depth, 1)),
		fmt.Sprintf("tps   %d", st.TPS),
	)
	return lines
}

// sliceHeat returns the live Moore neighbor count of every cell in plane z,
// together with the largest possible count for the volume's shape.
func sliceHeat(size core.Size, cells []uint8, z int) ([]uint8, int, error) {
	l := ca.NewLattice3D(size.W, size.H, size.D)
	counts, err := ca.LiveCounts(l, cells)
	if err != nil {
		return nil, 0, err
	}
	limit := ca.MaxMooreNeighbors
	if size.D == 1 {
		limit = 8
	}
	plane := size.W * size.H
	if z < 0 || z >= size.D {
		return make([]uint8, plane), limit, nil
	}
	return counts[z*plane : (z+1)*plane], limit, nil
}
