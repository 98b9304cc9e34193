package experiment

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Metric names accepted in experiment configs, in CSV column order.
const (
	MetricDensity         = "density"
	MetricBranchingFactor = "branching_factor"
	MetricConnectivity    = "connectivity"
	MetricSurvival        = "survival"
)

var knownMetrics = []string{MetricDensity, MetricBranchingFactor, MetricConnectivity, MetricSurvival}

// Config describes one experiment.
type Config struct {
	Name        string   `yaml:"name"`
	RulePath    string   `yaml:"rule"`
	SeedPath    string   `yaml:"seed"`
	Steps       int      `yaml:"steps"`
	LatticeSize []int    `yaml:"lattice_size"`
	GraphNodes  int      `yaml:"graph_nodes"`
	GraphDegree int      `yaml:"graph_degree"`
	Metrics     []string `yaml:"metrics"`
	OutputDir   string   `yaml:"output_dir"`
	Workers     int      `yaml:"workers"`
	LogEvery    int      `yaml:"log_every"`
	RandomSeed  int64    `yaml:"random_seed"`
}

type configFile struct {
	Experiment Config `yaml:"experiment"`
}

// DefaultConfig returns the defaults applied before a config file is read.
func DefaultConfig() Config {
	return Config{
		OutputDir:   "artifacts",
		LogEvery:    100,
		GraphDegree: 4,
		RandomSeed:  1,
	}
}

// LoadConfig reads an experiment YAML file. Relative rule, seed and output
// paths resolve against the file's directory.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read experiment config")
	}
	cf := configFile{Experiment: DefaultConfig()}
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return Config{}, errors.Wrapf(ErrBadConfig, "%s: %v", path, err)
	}
	cfg := cf.Experiment
	base := filepath.Dir(path)
	cfg.RulePath = resolve(base, cfg.RulePath)
	cfg.SeedPath = resolve(base, cfg.SeedPath)
	cfg.OutputDir = resolve(base, cfg.OutputDir)
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return cfg, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks required fields and the topology choice.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.Wrap(ErrBadConfig, "experiment.name is required")
	}
	if c.RulePath == "" {
		return errors.Wrap(ErrBadConfig, "experiment.rule is required")
	}
	if c.Steps < 0 {
		return errors.Wrapf(ErrBadConfig, "steps must be >= 0, got %d", c.Steps)
	}
	hasLattice := len(c.LatticeSize) > 0
	hasGraph := c.GraphNodes > 0
	if hasLattice == hasGraph {
		return ErrNoTopology
	}
	if hasLattice {
		if len(c.LatticeSize) != 3 {
			return errors.Wrapf(ErrBadConfig, "lattice_size needs 3 dimensions, got %d", len(c.LatticeSize))
		}
		for _, d := range c.LatticeSize {
			if d <= 0 {
				return errors.Wrapf(ErrBadConfig, "lattice_size %v must be positive", c.LatticeSize)
			}
		}
	}
	if c.GraphDegree < 0 {
		return errors.Wrapf(ErrBadConfig, "graph_degree must be >= 0, got %d", c.GraphDegree)
	}
	for _, m := range c.Metrics {
		if !isKnownMetric(m) {
			return errors.Wrapf(ErrUnknownMetric, "%q", m)
		}
	}
	return nil
}

// IsLattice reports whether the experiment runs on a 3D lattice.
func (c Config) IsLattice() bool { return len(c.LatticeSize) == 3 }

// Cells returns the number of cells or nodes.
func (c Config) Cells() int {
	if c.IsLattice() {
		return c.LatticeSize[0] * c.LatticeSize[1] * c.LatticeSize[2]
	}
	return c.GraphNodes
}

func isKnownMetric(name string) bool {
	for _, m := range knownMetrics {
		if m == name {
			return true
		}
	}
	return false
}
