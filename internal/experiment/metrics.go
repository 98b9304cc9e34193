package experiment

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"uft-ca/pkg/ca"
)

// Metrics is the record of one generation. Only requested fields are written
// to the CSV; ActiveCells and TotalCells always are.
type Metrics struct {
	Step            int
	ActiveCells     int
	TotalCells      int
	Density         float64
	BranchingFactor float64
	Connectivity    float64
	Survival        float64
}

// ComputeMetrics measures states. prev is the previous record, nil for the
// first one.
func ComputeMetrics(step int, states []uint8, prev *Metrics) Metrics {
	active := ca.CountActive(states)
	m := Metrics{Step: step, ActiveCells: active, TotalCells: len(states), BranchingFactor: 1}
	if len(states) > 0 {
		frac := float64(active) / float64(len(states))
		m.Density = frac
		m.Connectivity = frac
		m.Survival = frac
	}
	if prev != nil {
		m.BranchingFactor = float64(active) / float64(max(prev.ActiveCells, 1))
	}
	return m
}

func (m Metrics) value(name string) float64 {
	switch name {
	case MetricDensity:
		return m.Density
	case MetricBranchingFactor:
		return m.BranchingFactor
	case MetricConnectivity:
		return m.Connectivity
	case MetricSurvival:
		return m.Survival
	}
	return 0
}

// orderedMetrics returns the requested metrics in canonical column order.
func orderedMetrics(requested []string) []string {
	want := make(map[string]bool, len(requested))
	for _, r := range requested {
		want[r] = true
	}
	var out []string
	for _, m := range knownMetrics {
		if want[m] {
			out = append(out, m)
		}
	}
	return out
}

// WriteMetricsCSV writes one row per record with the requested metric columns.
func WriteMetricsCSV(path string, requested []string, history []Metrics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create metrics csv")
	}
	defer f.Close()

	cols := orderedMetrics(requested)
	w := csv.NewWriter(f)
	header := append(append([]string{}, cols...), "active_cells", "total_cells", "step")
	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, 0, len(header))
	for _, m := range history {
		row = row[:0]
		for _, c := range cols {
			row = append(row, strconv.FormatFloat(m.value(c), 'g', -1, 64))
		}
		row = append(row, strconv.Itoa(m.ActiveCells), strconv.Itoa(m.TotalCells), strconv.Itoa(m.Step))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
