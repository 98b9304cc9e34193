// Package ca implements the synchronous stepping kernel for outer-totalistic
// cellular automata on 3D Moore lattices and directed adjacency graphs.
//
// State arrays are flat byte slices owned by the caller. Step functions only
// read their input and always return a freshly allocated next generation.
package ca

import "strings"

// CellState enumerates the cell kinds carried by a state byte.
type CellState uint8

const (
	Void CellState = iota
	Structural
	Compute
	Energy
	Sensor
)

// NumStates is the number of canonical cell states.
const NumStates = 5

var stateNames = [NumStates]string{"void", "structural", "compute", "energy", "sensor"}

// Decode maps a raw state byte to a CellState. Unknown codes decode to Void.
func Decode(b uint8) CellState {
	if b >= NumStates {
		return Void
	}
	return CellState(b)
}

// Byte returns the wire code for s.
func (s CellState) Byte() uint8 { return uint8(s) }

// IsLive reports whether s counts as an active neighbor.
func (s CellState) IsLive() bool { return s != Void }

func (s CellState) String() string {
	if s >= NumStates {
		return "void"
	}
	return stateNames[s]
}

// ParseCellState resolves a state name (case-insensitive) to its CellState.
func ParseCellState(name string) (CellState, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range stateNames {
		if sn == n {
			return CellState(i), true
		}
	}
	return Void, false
}
