package graph

import (
	"context"
	"log"
	"math"
	"strconv"

	"uft-ca/internal/core"
	"uft-ca/pkg/ca"
	pcore "uft-ca/pkg/core"
)

// Config holds parameters for the random graph automaton.
type Config struct {
	Nodes   int
	Degree  int
	Seed    int64
	Rule    string
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Nodes: 4096, Degree: 6, Seed: 1337, Rule: "B2-3/S2-3", Density: 0.25}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["nodes"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Nodes = parsed
		}
	}
	if v, ok := cfg["degree"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Degree = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// Graph runs a rule over a random directed graph with fixed out-degree. Nodes
// are displayed as tiles of a square grid in id order.
type Graph struct {
	cfg     Config
	graph   *ca.GraphCA
	rule    ca.Rule
	ruleStr string
	ruleErr error
	stepErr error
	side    int
	display []uint8
	tick    uint64
}

// New creates a graph simulation. An unparsable rule is logged and replaced
// by conway-3d.
func New(cfg Config) *Graph {
	var rule ca.Rule = ca.Conway3D
	ruleStr := "conway-3d"
	parsed, err := ca.ParseNotation(cfg.Rule)
	if err == nil {
		rule, ruleStr = parsed, parsed.String()
	} else {
		log.Printf("graph: rule %q: %v; using conway-3d", cfg.Rule, err)
	}
	side := int(math.Ceil(math.Sqrt(float64(cfg.Nodes))))
	if side < 1 {
		side = 1
	}
	return &Graph{
		cfg:     cfg,
		graph:   ca.NewGraphCA(cfg.Nodes),
		rule:    rule,
		ruleStr: ruleStr,
		ruleErr: err,
		side:    side,
		display: make([]uint8, side*side),
	}
}

// Name identifies the simulation.
func (g *Graph) Name() string { return "graph" }

// Size returns the tile grid dimensions.
func (g *Graph) Size() core.Size { return core.Size{W: g.side, H: g.side, D: 1} }

// Cells exposes node states padded to the tile grid.
func (g *Graph) Cells() []uint8 { return g.display }

// Tick returns the number of steps since the last reset.
func (g *Graph) Tick() uint64 { return g.tick }

// RuleErr returns the error that forced the conway-3d fallback, if any.
func (g *Graph) RuleErr() error { return g.ruleErr }

// Err returns the error from the last failed step.
func (g *Graph) Err() error { return g.stepErr }

// Topology exposes the underlying graph.
func (g *Graph) Topology() *ca.GraphCA { return g.graph }

// Reset rebuilds the edges and seeds node states from seed.
func (g *Graph) Reset(seed int64) {
	if seed == 0 {
		seed = g.cfg.Seed
	}
	rng := pcore.NewRNG(seed)
	g.graph = ca.NewGraphCA(g.cfg.Nodes)
	for n := 0; n < g.cfg.Nodes; n++ {
		for k := 0; k < g.cfg.Degree; k++ {
			_ = g.graph.AddEdge(n, rng.IntN(g.cfg.Nodes))
		}
	}
	pcore.FillDensity(rng.Source(), g.graph.States, g.cfg.Density, ca.Structural.Byte())
	g.tick = 0
	g.refresh()
}

// Step advances the graph by one generation.
func (g *Graph) Step() {
	next, err := ca.StepGraphParallel(context.Background(), g.graph, g.rule, 0)
	if err != nil {
		if g.stepErr == nil {
			log.Printf("graph: step %d: %v", g.tick, err)
		}
		g.stepErr = err
		return
	}
	g.stepErr = nil
	g.graph.States = next
	g.tick++
	g.refresh()
}

func (g *Graph) refresh() {
	n := copy(g.display, g.graph.States)
	clear(g.display[n:])
}

// Parameters describes the configuration for the HUD.
func (g *Graph) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Graph",
			Params: []core.Parameter{
				core.IntParam("nodes", "Nodes", g.cfg.Nodes),
				core.IntParam("degree", "Out-degree", g.cfg.Degree),
				core.IntParam("edges", "Edges", g.graph.NumEdges()),
				core.Int64Param("seed", "Seed", g.cfg.Seed),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.StringParam("rule", "Rule", g.ruleStr),
				core.IntParam("active", "Active nodes", ca.CountActive(g.graph.States)),
			},
		},
	}}
}

func init() {
	core.Register("graph", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
