package lattice

import (
	"context"
	"log"

	"uft-ca/internal/core"
	"uft-ca/pkg/ca"
	pcore "uft-ca/pkg/core"
)

// Lattice runs an outer-totalistic rule on a 3D Moore lattice.
type Lattice struct {
	cfg     Config
	lattice ca.Lattice3D
	rule    ca.Rule
	ruleStr string
	ruleErr error
	stepErr error
	cur     []uint8
	tick    uint64
}

// New returns a lattice simulation with the provided dimensions using defaults.
func New(w, h, d int) *Lattice {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Depth = w, h, d
	return NewWithConfig(cfg)
}

// NewWithConfig builds the simulation. An unparsable rule falls back to the
// reference 3D rule; the parse error is logged and kept in RuleErr.
func NewWithConfig(cfg Config) *Lattice {
	l := ca.NewLattice3D(cfg.Width, cfg.Height, cfg.Depth)
	var rule ca.Rule = ca.Conway3D
	ruleStr := "conway-3d"
	parsed, err := ca.ParseNotation(cfg.Rule)
	if err == nil {
		rule, ruleStr = parsed, parsed.String()
	} else {
		log.Printf("lattice: rule %q: %v; using conway-3d", cfg.Rule, err)
	}
	return &Lattice{
		cfg:     cfg,
		lattice: l,
		rule:    rule,
		ruleStr: ruleStr,
		ruleErr: err,
		cur:     make([]uint8, l.Size()),
	}
}

// RuleErr returns the error that forced the conway-3d fallback, if any.
func (s *Lattice) RuleErr() error { return s.ruleErr }

// Err returns the error from the last failed step. It clears once a step
// succeeds.
func (s *Lattice) Err() error { return s.stepErr }

// Name returns the simulation identifier.
func (s *Lattice) Name() string { return "lattice" }

// Size reports the lattice dimensions.
func (s *Lattice) Size() core.Size {
	return core.Size{W: s.lattice.Width, H: s.lattice.Height, D: s.lattice.Depth}
}

// Cells exposes the current generation.
func (s *Lattice) Cells() []uint8 { return s.cur }

// Tick returns the number of steps since the last reset.
func (s *Lattice) Tick() uint64 { return s.tick }

// Reset seeds Structural cells at the configured density. A zero seed uses the
// config seed.
func (s *Lattice) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	pcore.FillDensity(pcore.NewRNG(seed).Source(), s.cur, s.cfg.Density, ca.Structural.Byte())
	s.tick = 0
}

// Step advances the lattice by one generation.
func (s *Lattice) Step() {
	next, err := ca.StepLattice3DParallel(context.Background(), s.lattice, s.cur, s.rule, s.cfg.Workers)
	if err != nil {
		if s.stepErr == nil {
			log.Printf("lattice: step %d: %v", s.tick, err)
		}
		s.stepErr = err
		return
	}
	s.stepErr = nil
	s.cur = next
	s.tick++
}

// Parameters describes the configuration for the HUD.
func (s *Lattice) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.IntParam("d", "Depth", s.cfg.Depth),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.StringParam("rule", "Rule", s.ruleStr),
				core.FloatParam("density", "Seed density", s.cfg.Density),
				core.IntParam("active", "Active cells", ca.CountActive(s.cur)),
			},
		},
	}}
}

func init() {
	core.Register("lattice", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
