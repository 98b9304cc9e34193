package experiment

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"uft-ca/pkg/ca"
)

const (
	NeighborhoodMoore3D = "moore-3d"
	NeighborhoodGraph   = "graph"

	TransitionConway3D        = "conway-3d"
	TransitionOuterTotalistic = "outer-totalistic"
	TransitionTable           = "table"
)

// RuleSpec is a rule definition file.
type RuleSpec struct {
	Rule   RuleHeader `yaml:"rule" toml:"rule"`
	Params RuleParams `yaml:"params" toml:"params"`
}

type RuleHeader struct {
	Name         string   `yaml:"name" toml:"name"`
	States       []string `yaml:"states" toml:"states"`
	Neighborhood string   `yaml:"neighborhood" toml:"neighborhood"`
	Transition   string   `yaml:"transition" toml:"transition"`
}

// RuleParams holds transition-specific settings. Outer-totalistic rules take
// either Notation or Birth/Survive count lists such as "4-7" or "2,3".
type RuleParams struct {
	Notation string       `yaml:"notation" toml:"notation"`
	Birth    string       `yaml:"birth" toml:"birth"`
	Survive  string       `yaml:"survive" toml:"survive"`
	Table    []TableEntry `yaml:"table" toml:"table"`
	Default  uint8        `yaml:"default" toml:"default"`
}

type TableEntry struct {
	State uint8 `yaml:"state" toml:"state"`
	Live  int   `yaml:"live" toml:"live"`
	Next  uint8 `yaml:"next" toml:"next"`
}

// LoadRuleSpec reads and validates a rule spec file. Files ending in .toml are
// decoded as TOML, anything else as YAML.
func LoadRuleSpec(path string) (RuleSpec, error) {
	var spec RuleSpec
	raw, err := os.ReadFile(path)
	if err != nil {
		return spec, errors.Wrap(err, "read rule spec")
	}
	if err := decodeRuleSpec(path, raw, &spec); err != nil {
		return spec, errors.Wrapf(ErrBadRuleSpec, "%s: %v", path, err)
	}
	if err := spec.Validate(); err != nil {
		return spec, errors.Wrap(err, path)
	}
	return spec, nil
}

func decodeRuleSpec(path string, raw []byte, spec *RuleSpec) error {
	if isTOML(path) {
		_, err := toml.Decode(string(raw), spec)
		return err
	}
	return yaml.Unmarshal(raw, spec)
}

func isTOML(path string) bool { return strings.EqualFold(filepath.Ext(path), ".toml") }

// Validate checks names, neighborhood and transition.
func (s RuleSpec) Validate() error {
	if s.Rule.Name == "" {
		return errors.Wrap(ErrBadRuleSpec, "rule.name is required")
	}
	if len(s.Rule.States) == 0 || len(s.Rule.States) > ca.NumStates {
		return errors.Wrapf(ErrBadRuleSpec, "rule.states must list 1 to %d states", ca.NumStates)
	}
	for _, name := range s.Rule.States {
		if _, ok := ca.ParseCellState(name); !ok {
			return errors.Wrapf(ErrBadRuleSpec, "unknown state %q", name)
		}
	}
	switch s.Rule.Neighborhood {
	case NeighborhoodMoore3D, NeighborhoodGraph:
	default:
		return errors.Wrapf(ErrBadRuleSpec, "unknown neighborhood %q", s.Rule.Neighborhood)
	}
	_, err := s.Build()
	return err
}

// NumStates returns the number of states random seeds draw from.
func (s RuleSpec) NumStates() uint8 { return uint8(len(s.Rule.States)) }

// Build returns the transition rule described by the spec.
func (s RuleSpec) Build() (ca.Rule, error) {
	switch s.Rule.Transition {
	case TransitionConway3D:
		return ca.Conway3D, nil
	case TransitionOuterTotalistic:
		notation := s.Params.Notation
		if notation == "" {
			notation = "B" + s.Params.Birth + "/S" + s.Params.Survive
		}
		r, err := ca.ParseNotation(notation)
		if err != nil {
			return nil, withKind(ErrBadRuleSpec, err)
		}
		return r, nil
	case TransitionTable:
		if len(s.Params.Table) == 0 {
			return nil, errors.Wrap(ErrBadRuleSpec, "table transition needs params.table entries")
		}
		table := make(map[ca.TableKey]uint8, len(s.Params.Table))
		for _, e := range s.Params.Table {
			table[ca.TableKey{State: e.State, Live: e.Live}] = e.Next
		}
		return ca.TableRule{Table: table, Default: s.Params.Default}, nil
	default:
		return nil, errors.Wrapf(ErrBadRuleSpec, "unknown transition %q", s.Rule.Transition)
	}
}

// Describe renders the rule for logs and the run index.
func (s RuleSpec) Describe() string {
	r, err := s.Build()
	if err != nil {
		return s.Rule.Name
	}
	if ot, ok := r.(ca.OuterTotalistic); ok {
		return s.Rule.Name + " " + ot.String()
	}
	return s.Rule.Name
}
