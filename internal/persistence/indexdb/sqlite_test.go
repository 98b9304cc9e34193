package indexdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer idx.Close()

	id, err := idx.BeginRun(ctx, Run{Name: "plus", Rule: "B4-7/S4-7", Topology: "lattice", Cells: 27, Steps: 2, StartedAt: time.Now()})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	rows := []MetricRow{
		{Step: 0, ActiveCells: 5, Density: 5.0 / 27, BranchingFactor: 1},
		{Step: 1, ActiveCells: 11, Density: 11.0 / 27, BranchingFactor: 2.2},
	}
	if err := idx.RecordMetrics(ctx, id, rows); err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if err := idx.FinishRun(ctx, id, 11, "/tmp/final.ca.zst"); err != nil {
		t.Fatalf("finish: %v", err)
	}

	runs, err := idx.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Name != "plus" || runs[0].FinalActive != 11 || runs[0].FinishedAt.IsZero() {
		t.Fatalf("runs = %+v", runs)
	}
	got, err := idx.Metrics(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].ActiveCells != 11 {
		t.Fatalf("metrics = %+v", got)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil || err.Error() != "empty db path" {
		t.Fatalf("err = %v, want empty db path", err)
	}
}
