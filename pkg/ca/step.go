package ca

import "github.com/pkg/errors"

// StepLattice3D computes the next generation of states on l. Every cell reads
// only the previous generation; states is left untouched.
func StepLattice3D(l Lattice3D, states []uint8, rule Rule) ([]uint8, error) {
	if len(states) != l.Size() {
		return nil, errors.Wrapf(ErrLengthMismatch, "lattice %dx%dx%d needs %d states, got %d", l.Width, l.Height, l.Depth, l.Size(), len(states))
	}
	next := make([]uint8, len(states))
	stepLatticeSlab(l, states, next, rule, 0, l.Depth)
	return next, nil
}

// stepLatticeSlab fills next for the z-planes [z0, z1).
func stepLatticeSlab(l Lattice3D, states, next []uint8, rule Rule, z0, z1 int) {
	nbuf := make([]int, 0, MaxMooreNeighbors)
	for z := z0; z < z1; z++ {
		for y := 0; y < l.Height; y++ {
			for x := 0; x < l.Width; x++ {
				idx := l.Index(x, y, z)
				nbuf = l.AppendMooreNeighbors(nbuf[:0], x, y, z)
				next[idx] = rule.Next(states[idx], countLive(states, nbuf))
			}
		}
	}
}

// StepGraph computes the next generation of g.States. Only outgoing adjacency
// is counted: a node's live count is the number of its out-neighbors whose
// current state is non-zero.
func StepGraph(g *GraphCA, rule Rule) ([]uint8, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	next := make([]uint8, len(g.States))
	stepGraphRange(g, next, rule, 0, g.numNodes)
	return next, nil
}

func stepGraphRange(g *GraphCA, next []uint8, rule Rule, lo, hi int) {
	for node := lo; node < hi; node++ {
		next[node] = rule.Next(g.States[node], countLive(g.States, g.adjacency[node]))
	}
}

// check verifies the state array length and that every edge target is a node.
func (g *GraphCA) check() error {
	if len(g.States) != g.numNodes {
		return errors.Wrapf(ErrLengthMismatch, "graph has %d nodes, %d states", g.numNodes, len(g.States))
	}
	for from, nbrs := range g.adjacency {
		if !g.valid(from) {
			return errors.Wrapf(ErrInvalidIndex, "adjacency for node %d", from)
		}
		for _, to := range nbrs {
			if !g.valid(to) {
				return errors.Wrapf(ErrInvalidIndex, "edge %d->%d", from, to)
			}
		}
	}
	return nil
}

func countLive(states []uint8, idx []int) int {
	n := 0
	for _, i := range idx {
		if states[i] != 0 {
			n++
		}
	}
	return n
}

// LiveCounts returns, for every lattice cell, its number of live Moore
// neighbors.
func LiveCounts(l Lattice3D, states []uint8) ([]uint8, error) {
	if len(states) != l.Size() {
		return nil, errors.Wrapf(ErrLengthMismatch, "lattice needs %d states, got %d", l.Size(), len(states))
	}
	counts := make([]uint8, len(states))
	nbuf := make([]int, 0, MaxMooreNeighbors)
	for z := 0; z < l.Depth; z++ {
		for y := 0; y < l.Height; y++ {
			for x := 0; x < l.Width; x++ {
				nbuf = l.AppendMooreNeighbors(nbuf[:0], x, y, z)
				counts[l.Index(x, y, z)] = uint8(countLive(states, nbuf))
			}
		}
	}
	return counts, nil
}

// CountActive returns the number of non-Void codes in states.
func CountActive(states []uint8) int {
	n := 0
	for _, s := range states {
		if s != 0 {
			n++
		}
	}
	return n
}
