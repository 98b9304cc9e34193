package app

import (
	"flag"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim    string
	Scale  int
	TPS    int
	Seed   int64
	Panel  int
	Params KeyValues
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "lattice", Scale: 8, TPS: 10, Seed: 42, Panel: 220, Params: KeyValues{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Panel, "panel", c.Panel, "HUD panel width in pixels (0 hides it)")
	fs.Var(&c.Params, "cfg", "simulation setting key=value (repeatable)")
}

// KeyValues collects repeated key=value flags into a map.
type KeyValues map[string]string

func (kv KeyValues) String() string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + kv[k]
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (kv *KeyValues) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return errors.Errorf("expected key=value, got %q", s)
	}
	if *kv == nil {
		*kv = KeyValues{}
	}
	(*kv)[key] = strings.TrimSpace(value)
	return nil
}
