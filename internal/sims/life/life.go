package life

import (
	"strconv"

	"uft-ca/internal/core"
	"uft-ca/pkg/ca"
	pcore "uft-ca/pkg/core"
)

// rule is Conway's B3/S23 expressed for the kernel's notation.
var rule = ca.MustParseNotation("B3/S2,3")

// Config holds the board dimensions.
type Config struct {
	Width  int
	Height int
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := Config{Width: 256, Height: 256}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	return c
}

// Life implements Conway's Game of Life as a one-plane Moore lattice. Board
// edges are hard walls.
type Life struct {
	lattice ca.Lattice3D
	cur     []uint8
	tick    uint64
}

// New returns a Life simulation with the provided dimensions.
func New(w, h int) *Life {
	l := ca.NewLattice3D(w, h, 1)
	return &Life{lattice: l, cur: make([]uint8, l.Size())}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size {
	return core.Size{W: l.lattice.Width, H: l.lattice.Height, D: 1}
}

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur }

// Tick returns the number of generations since the last reset.
func (l *Life) Tick() uint64 { return l.tick }

// Reset randomizes the board using the provided seed.
func (l *Life) Reset(seed int64) {
	rng := pcore.NewRNG(seed).Source()
	pcore.FillBinary(rng, l.cur)
	l.tick = 0
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	next, err := ca.StepLattice3D(l.lattice, l.cur, rule)
	if err != nil {
		return
	}
	l.cur = next
	l.tick++
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return New(c.Width, c.Height)
	})
}
