package core

import "sort"

// Size describes the dimensions of a simulation volume. Flat 2D sims use D=1.
type Size struct {
	W int
	H int
	D int
}

// Cells returns W*H*D.
func (s Size) Cells() int { return s.W * s.H * s.D }

// Sim defines the minimal contract a steppable automaton must implement.
// Cells returns the current generation laid out z-major, then y, then x.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Tick() uint64
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists registered simulations in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
