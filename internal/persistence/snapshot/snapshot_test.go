package snapshot

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

func TestWriteReadLattice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "final.ca.zst")
	in := SnapshotV1{
		Header: Header{Name: "plus", Tick: 12, Topology: TopologyLattice, Rule: "B4-7/S4-7"},
		Width:  3, Height: 3, Depth: 3,
		States: make([]uint8, 27),
	}
	in.States[13] = 1
	if err := WriteSnapshot(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Header.Version != Version || out.Header.Tick != 12 || out.Header.Cells != 27 {
		t.Fatalf("header = %+v", out.Header)
	}
	if out.Width != 3 || out.Depth != 3 || !slices.Equal(out.States, in.States) {
		t.Fatal("body mismatch")
	}

	h, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	if h.Name != "plus" || h.Topology != TopologyLattice {
		t.Fatalf("header = %+v", h)
	}
}

func TestWriteReadGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.ca.zst")
	in := SnapshotV1{
		Header: Header{Name: "g", Topology: TopologyGraph},
		Edges:  [][2]int{{0, 1}, {1, 0}},
		States: []uint8{1, 0},
	}
	if err := WriteSnapshot(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Edges) != 2 || out.Edges[1] != [2]int{1, 0} {
		t.Fatalf("edges = %v", out.Edges)
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadCorruptBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ca.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	enc.Write([]byte(`{"version":1,"name":"bad"}` + "\nnot gob"))
	enc.Close()
	f.Close()

	if h, err := ReadHeader(path); err != nil || h.Name != "bad" {
		t.Fatalf("header = %+v, %v", h, err)
	}
	_, err = ReadSnapshot(path)
	if err == nil || !strings.HasPrefix(err.Error(), "gob decode: ") {
		t.Fatalf("err = %v, want gob decode context", err)
	}
}

func TestReadMissingKeepsCause(t *testing.T) {
	_, err := ReadHeader(filepath.Join(t.TempDir(), "missing.ca.zst"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}
