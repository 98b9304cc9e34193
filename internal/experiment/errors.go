package experiment

import "github.com/pkg/errors"

// Errors
var (
	ErrNoTopology       = errors.New("experiment must set exactly one of lattice_size or graph_nodes")
	ErrTopologyMismatch = errors.New("rule neighborhood does not match experiment topology")
	ErrBadRuleSpec      = errors.New("bad rule spec")
	ErrBadConfig        = errors.New("bad experiment config")
	ErrBadSeed          = errors.New("bad seed file")
	ErrUnknownMetric    = errors.New("unknown metric")
)

// kindError tags a lower-level cause with one of the sentinels above so that
// errors.Is matches both.
type kindError struct {
	kind  error
	cause error
}

func withKind(kind, cause error) error { return &kindError{kind: kind, cause: cause} }

func (e *kindError) Error() string   { return e.kind.Error() + ": " + e.cause.Error() }
func (e *kindError) Unwrap() []error { return []error{e.kind, e.cause} }
