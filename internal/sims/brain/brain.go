// Package brain runs a Brian's Brain style excitable medium on a Moore
// lattice: void cells fire when their live neighbor count is in the birth
// set, firing cells turn refractory, and refractory cells return to void.
// Refractory cells still count as live neighbors.
package brain

import (
	"log"
	"strconv"

	"uft-ca/internal/core"
	"uft-ca/pkg/ca"
	pcore "uft-ca/pkg/core"
)

const (
	stateDead       = ca.Void
	stateFiring     = ca.Energy
	stateRefractory = ca.Compute
)

// Config holds the board dimensions and birth counts.
type Config struct {
	Width   int
	Height  int
	Depth   int
	Seed    int64
	Birth   string
	Density float64
}

// DefaultConfig returns the classic flat board.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Depth: 1, Seed: 1, Birth: "2", Density: 0.125}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for key, dst := range map[string]*int{"w": &c.Width, "h": &c.Height, "d": &c.Depth} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["birth"]; ok && v != "" {
		c.Birth = v
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// Rule builds the three-state table for the given birth counts.
func Rule(birth ca.CountSet) ca.TableRule {
	table := make(map[ca.TableKey]uint8, 2*(ca.MaxMooreNeighbors+1))
	for n := 0; n <= ca.MaxMooreNeighbors; n++ {
		if birth.Contains(n) {
			table[ca.TableKey{State: stateDead.Byte(), Live: n}] = stateFiring.Byte()
		}
		table[ca.TableKey{State: stateFiring.Byte(), Live: n}] = stateRefractory.Byte()
	}
	return ca.TableRule{Table: table, Default: stateDead.Byte()}
}

// Brain implements the excitable medium.
type Brain struct {
	cfg     Config
	lattice ca.Lattice3D
	birth   ca.CountSet
	rule    ca.TableRule
	cur     []uint8
	tick    uint64
}

// New creates a Brain simulation. Unparsable birth counts fall back to 2.
func New(cfg Config) *Brain {
	birth := ca.NewCountSet(ca.CountRange{Min: 2, Max: 2})
	if parsed, err := ca.ParseNotation("B" + cfg.Birth + "/S"); err == nil {
		birth = parsed.Birth
	} else {
		log.Printf("brain: birth %q: %v; using 2", cfg.Birth, err)
	}
	l := ca.NewLattice3D(cfg.Width, cfg.Height, cfg.Depth)
	return &Brain{cfg: cfg, lattice: l, birth: birth, rule: Rule(birth), cur: make([]uint8, l.Size())}
}

// Name identifies the simulation.
func (b *Brain) Name() string { return "brain" }

// Size returns the board dimensions.
func (b *Brain) Size() core.Size {
	return core.Size{W: b.lattice.Width, H: b.lattice.Height, D: b.lattice.Depth}
}

// Cells exposes the current state buffer.
func (b *Brain) Cells() []uint8 { return b.cur }

// Tick returns the generations since the last reset.
func (b *Brain) Tick() uint64 { return b.tick }

// Reset randomizes cells into dead or firing states.
func (b *Brain) Reset(seed int64) {
	if seed == 0 {
		seed = b.cfg.Seed
	}
	pcore.FillDensity(pcore.NewRNG(seed).Source(), b.cur, b.cfg.Density, stateFiring.Byte())
	b.tick = 0
}

// Step advances the automaton by one tick.
func (b *Brain) Step() {
	next, err := ca.StepLattice3D(b.lattice, b.cur, b.rule)
	if err != nil {
		log.Printf("brain: step %d: %v", b.tick, err)
		return
	}
	b.cur = next
	b.tick++
}

// Parameters describes the configuration for the HUD.
func (b *Brain) Parameters() core.ParameterSnapshot {
	var firing, refractory int
	for _, c := range b.cur {
		switch ca.Decode(c) {
		case stateFiring:
			firing++
		case stateRefractory:
			refractory++
		}
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Brain",
		Params: []core.Parameter{
			core.StringParam("birth", "Birth", b.birth.String()),
			core.FloatParam("density", "Seed density", b.cfg.Density),
			core.IntParam("firing", "Firing", firing),
			core.IntParam("refractory", "Refractory", refractory),
		},
	}}}
}

func init() {
	core.Register("brain", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
