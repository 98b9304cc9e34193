// Package snapshot stores automaton generations as zstd-compressed files: one
// JSON header line followed by a gob-encoded body.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Version is the current snapshot format version.
const Version = 1

const (
	TopologyLattice = "lattice"
	TopologyGraph   = "graph"
)

type Header struct {
	Version  int    `json:"version"`
	Name     string `json:"name"`
	Tick     uint64 `json:"tick"`
	Topology string `json:"topology"`
	Rule     string `json:"rule"`
	Cells    int    `json:"cells"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	// Lattice dimensions, zero for graphs.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	Depth  int `json:"depth,omitempty"`

	// Directed edges, graphs only.
	Edges [][2]int `json:"edges,omitempty"`

	States []uint8 `json:"states"`
}

func WriteSnapshot(path string, snap SnapshotV1) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	snap.Header.Version = Version
	snap.Header.Cells = len(snap.States)
	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		_ = enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		_ = enc.Close()
		return errors.Wrap(err, "gob encode")
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	br, closeFn, err := open(path)
	if err != nil {
		return snap, err
	}
	defer closeFn()

	// The gob body repeats the header.
	if _, err := br.ReadBytes('\n'); err != nil {
		return snap, errors.Wrap(err, "read header")
	}
	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, errors.Wrap(err, "gob decode")
	}
	if snap.Header.Version != Version {
		return snap, errors.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	return snap, nil
}

// ReadHeader decodes only the JSON header line.
func ReadHeader(path string) (Header, error) {
	var h Header
	br, closeFn, err := open(path)
	if err != nil {
		return h, err
	}
	defer closeFn()

	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, errors.Wrap(err, "read header")
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, errors.Wrap(err, "decode header")
	}
	return h, nil
}

func open(path string) (*bufio.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return bufio.NewReaderSize(dec, 256*1024), func() {
		dec.Close()
		_ = f.Close()
	}, nil
}
