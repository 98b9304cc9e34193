package experiment

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"uft-ca/pkg/ca"
	pcore "uft-ca/pkg/core"
)

//go:embed seed.schema.json
var seedSchemaJSON string

var seedSchema = jsonschema.MustCompileString("seed.schema.json", seedSchemaJSON)

// Seed is an initial generation, plus edges for graph experiments.
type Seed struct {
	States []uint8  `json:"states"`
	Edges  [][2]int `json:"edges,omitempty"`
}

// LoadSeed reads and validates a seed file. Files ending in .toml are decoded
// as TOML, anything else as JSON; both go through the same schema.
func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, errors.Wrap(err, "read seed")
	}
	if isTOML(path) {
		return ParseTOMLSeed(raw)
	}
	return ParseSeed(raw)
}

// ParseTOMLSeed decodes a TOML seed document and validates it like JSON.
func ParseTOMLSeed(raw []byte) (Seed, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(raw), &doc); err != nil {
		return Seed{}, errors.Wrapf(ErrBadSeed, "decode: %v", err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return Seed{}, errors.Wrapf(ErrBadSeed, "encode: %v", err)
	}
	return ParseSeed(js)
}

// ParseSeed validates raw against the seed schema and decodes it.
func ParseSeed(raw []byte) (Seed, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Seed{}, errors.Wrapf(ErrBadSeed, "decode: %v", err)
	}
	if err := seedSchema.Validate(doc); err != nil {
		return Seed{}, errors.Wrapf(ErrBadSeed, "%v", err)
	}
	var wire struct {
		States []int    `json:"states"`
		Edges  [][2]int `json:"edges"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Seed{}, errors.Wrapf(ErrBadSeed, "decode: %v", err)
	}
	s := Seed{States: make([]uint8, len(wire.States)), Edges: wire.Edges}
	for i, v := range wire.States {
		s.States[i] = uint8(v)
	}
	return s, nil
}

// RandomSeed draws every cell uniformly from the rule's states. Graph
// experiments also get degree random out-edges per node.
func RandomSeed(cfg Config, numStates uint8) Seed {
	rng := pcore.NewRNG(cfg.RandomSeed)
	s := Seed{States: make([]uint8, cfg.Cells())}
	pcore.FillStates(rng.Source(), s.States, numStates)
	if !cfg.IsLattice() {
		s.Edges = make([][2]int, 0, cfg.GraphNodes*cfg.GraphDegree)
		for n := 0; n < cfg.GraphNodes; n++ {
			for k := 0; k < cfg.GraphDegree; k++ {
				s.Edges = append(s.Edges, [2]int{n, rng.IntN(cfg.GraphNodes)})
			}
		}
	}
	return s
}

// BuildGraph creates the graph topology for a seed.
func BuildGraph(nodes int, s Seed) (*ca.GraphCA, error) {
	if len(s.States) != nodes {
		return nil, errors.Wrapf(ca.ErrLengthMismatch, "seed has %d states for %d nodes", len(s.States), nodes)
	}
	g := ca.NewGraphCA(nodes)
	for _, e := range s.Edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, withKind(ErrBadSeed, err)
		}
	}
	copy(g.States, s.States)
	return g, nil
}
