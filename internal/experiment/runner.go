// Package experiment loads rule and experiment files and drives multi-step
// automaton runs, recording metrics, snapshots and a run index.
package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"uft-ca/internal/logging"
	"uft-ca/internal/persistence/indexdb"
	"uft-ca/internal/persistence/snapshot"
	"uft-ca/internal/transport/ws"
	"uft-ca/pkg/ca"
)

// Publisher receives every generation of a run.
type Publisher interface {
	Publish(f ws.Frame)
}

// Result summarizes a finished run.
type Result struct {
	Experiment   string  `json:"experiment"`
	Rule         string  `json:"rule"`
	Steps        int     `json:"steps"`
	FinalMetrics Metrics `json:"final_metrics"`
	MetricsPath  string  `json:"metrics_path"`
	SnapshotPath string  `json:"snapshot_path"`
	RunID        int64   `json:"run_id,omitempty"`
}

// Runner executes one experiment.
type Runner struct {
	cfg  Config
	spec RuleSpec
	rule ca.Rule

	log       *slog.Logger
	index     *indexdb.SQLiteIndex
	publisher Publisher

	lattice ca.Lattice3D
	graph   *ca.GraphCA
	states  []uint8
	history []Metrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.log = l } }

// WithIndex records the run in a sqlite index.
func WithIndex(idx *indexdb.SQLiteIndex) Option { return func(r *Runner) { r.index = idx } }

// WithPublisher streams each generation to p.
func WithPublisher(p Publisher) Option { return func(r *Runner) { r.publisher = p } }

// NewRunner loads the rule spec named by cfg and checks it against the
// experiment's topology.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	spec, err := LoadRuleSpec(cfg.RulePath)
	if err != nil {
		return nil, err
	}
	return newRunner(cfg, spec, opts...)
}

func newRunner(cfg Config, spec RuleSpec, opts ...Option) (*Runner, error) {
	rule, err := spec.Build()
	if err != nil {
		return nil, err
	}
	want := NeighborhoodGraph
	if cfg.IsLattice() {
		want = NeighborhoodMoore3D
	}
	if spec.Rule.Neighborhood != want {
		return nil, errors.Wrapf(ErrTopologyMismatch, "rule %q uses %s", spec.Rule.Name, spec.Rule.Neighborhood)
	}
	r := &Runner{cfg: cfg, spec: spec, rule: rule, log: logging.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// States returns the current generation.
func (r *Runner) States() []uint8 { return r.states }

// History returns the metrics recorded so far. A later Run starts a new slice,
// so callers may keep the result.
func (r *Runner) History() []Metrics { return r.history }

// Init loads or generates the seed and builds the topology.
func (r *Runner) Init() error {
	var seed Seed
	if r.cfg.SeedPath != "" {
		s, err := LoadSeed(r.cfg.SeedPath)
		if err != nil {
			return err
		}
		seed = s
		if !r.cfg.IsLattice() && len(seed.Edges) == 0 {
			seed.Edges = RandomSeed(r.cfg, r.spec.NumStates()).Edges
		}
	} else {
		seed = RandomSeed(r.cfg, r.spec.NumStates())
	}

	if r.cfg.IsLattice() {
		r.lattice = ca.NewLattice3D(r.cfg.LatticeSize[0], r.cfg.LatticeSize[1], r.cfg.LatticeSize[2])
		if len(seed.States) != r.lattice.Size() {
			return errors.Wrapf(ca.ErrLengthMismatch, "seed has %d states for %d cells", len(seed.States), r.lattice.Size())
		}
		r.states = seed.States
	} else {
		g, err := BuildGraph(r.cfg.GraphNodes, seed)
		if err != nil {
			return err
		}
		r.graph = g
		r.states = g.States
	}
	r.history = nil
	return nil
}

func (r *Runner) step(ctx context.Context) error {
	var next []uint8
	var err error
	if r.graph != nil {
		r.graph.States = r.states
		next, err = ca.StepGraphParallel(ctx, r.graph, r.rule, r.cfg.Workers)
	} else {
		next, err = ca.StepLattice3DParallel(ctx, r.lattice, r.states, r.rule, r.cfg.Workers)
	}
	if err != nil {
		return err
	}
	r.states = next
	return nil
}

func (r *Runner) record(step int) Metrics {
	var prev *Metrics
	if n := len(r.history); n > 0 {
		prev = &r.history[n-1]
	}
	m := ComputeMetrics(step, r.states, prev)
	r.history = append(r.history, m)
	r.publish(uint64(step), m)
	return m
}

func (r *Runner) publish(tick uint64, m Metrics) {
	if r.publisher == nil {
		return
	}
	f := ws.Frame{
		Name:     r.cfg.Name,
		Tick:     tick,
		Topology: r.topology(),
		Active:   m.ActiveCells,
		States:   r.states,
	}
	if r.graph == nil {
		f.Dims = [3]int{r.lattice.Width, r.lattice.Height, r.lattice.Depth}
	}
	r.publisher.Publish(f)
}

func (r *Runner) topology() string {
	if r.cfg.IsLattice() {
		return snapshot.TopologyLattice
	}
	return snapshot.TopologyGraph
}

// Run executes the experiment: metrics are recorded before each step and once
// after the last, then artifacts are written.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if err := r.Init(); err != nil {
		return Result{}, err
	}
	logEvery := r.cfg.LogEvery
	if logEvery <= 0 {
		logEvery = 100
	}
	r.log.Info("running experiment", "name", r.cfg.Name, "rule", r.spec.Describe(), "steps", r.cfg.Steps, "cells", len(r.states))

	var runID int64
	if r.index != nil {
		id, err := r.index.BeginRun(ctx, indexdb.Run{
			Name: r.cfg.Name, Rule: r.spec.Describe(), Topology: r.topology(),
			Cells: len(r.states), Steps: r.cfg.Steps, StartedAt: time.Now(),
		})
		if err != nil {
			return Result{}, err
		}
		runID = id
	}

	for step := 0; step < r.cfg.Steps; step++ {
		m := r.record(step)
		if step%logEvery == 0 {
			r.log.Info("progress", "step", step, "of", r.cfg.Steps, "active_cells", m.ActiveCells)
		}
		r.log.Log(ctx, logging.LevelTrace, "generation", "step", step, "active_cells", m.ActiveCells, "branching_factor", m.BranchingFactor)
		if err := r.step(ctx); err != nil {
			return Result{}, errors.Wrapf(err, "step %d", step)
		}
	}
	final := r.record(r.cfg.Steps)

	res := Result{
		Experiment:   r.cfg.Name,
		Rule:         r.spec.Rule.Name,
		Steps:        r.cfg.Steps,
		FinalMetrics: final,
		RunID:        runID,
	}
	if err := r.save(ctx, &res); err != nil {
		return res, err
	}
	return res, nil
}

func (r *Runner) save(ctx context.Context, res *Result) error {
	res.MetricsPath = filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%s_metrics.csv", r.cfg.Name))
	if err := WriteMetricsCSV(res.MetricsPath, r.cfg.Metrics, r.history); err != nil {
		return err
	}
	r.log.Info("saved metrics", "path", res.MetricsPath)

	res.SnapshotPath = filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%s_final_state.ca.zst", r.cfg.Name))
	if err := snapshot.WriteSnapshot(res.SnapshotPath, r.Snapshot()); err != nil {
		return errors.Wrap(err, "write final state")
	}
	r.log.Info("saved final state", "path", res.SnapshotPath)

	if r.index == nil {
		return nil
	}
	rows := make([]indexdb.MetricRow, len(r.history))
	for i, m := range r.history {
		rows[i] = indexdb.MetricRow{Step: m.Step, ActiveCells: m.ActiveCells, Density: m.Density, BranchingFactor: m.BranchingFactor}
	}
	if err := r.index.RecordMetrics(ctx, res.RunID, rows); err != nil {
		return err
	}
	return r.index.FinishRun(ctx, res.RunID, res.FinalMetrics.ActiveCells, res.SnapshotPath)
}

// Snapshot captures the current generation.
func (r *Runner) Snapshot() snapshot.SnapshotV1 {
	var tick uint64
	if n := len(r.history); n > 0 {
		tick = uint64(r.history[n-1].Step)
	}
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Name:     r.cfg.Name,
			Tick:     tick,
			Topology: r.topology(),
			Rule:     r.spec.Describe(),
		},
		States: r.states,
	}
	if r.graph != nil {
		for n := 0; n < r.graph.NumNodes(); n++ {
			for _, to := range r.graph.Neighbors(n) {
				snap.Edges = append(snap.Edges, [2]int{n, to})
			}
		}
		return snap
	}
	snap.Width, snap.Height, snap.Depth = r.lattice.Width, r.lattice.Height, r.lattice.Depth
	return snap
}
