package ca

import "github.com/pkg/errors"

// MaxMooreNeighbors is the neighbor count of an interior lattice cell.
const MaxMooreNeighbors = 26

// Lattice3D describes a dense 3D grid. It owns no cell data; state arrays are
// supplied by the caller and sized to Size().
type Lattice3D struct {
	Width  int
	Height int
	Depth  int
}

// NewLattice3D returns a lattice descriptor. Non-positive dimensions yield an
// empty lattice.
func NewLattice3D(w, h, d int) Lattice3D {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if d < 0 {
		d = 0
	}
	return Lattice3D{Width: w, Height: h, Depth: d}
}

// Size returns the total number of cells.
func (l Lattice3D) Size() int { return l.Width * l.Height * l.Depth }

// Index returns the linear index of (x, y, z). Coordinates are not checked.
func (l Lattice3D) Index(x, y, z int) int {
	return z*(l.Width*l.Height) + y*l.Width + x
}

// Contains reports whether (x, y, z) lies inside the lattice.
func (l Lattice3D) Contains(x, y, z int) bool {
	return x >= 0 && x < l.Width &&
		y >= 0 && y < l.Height &&
		z >= 0 && z < l.Depth
}

// CheckedIndex is Index with bounds checking.
func (l Lattice3D) CheckedIndex(x, y, z int) (int, error) {
	if !l.Contains(x, y, z) {
		return 0, errors.Wrapf(ErrInvalidIndex, "coordinate (%d,%d,%d) outside %dx%dx%d lattice", x, y, z, l.Width, l.Height, l.Depth)
	}
	return l.Index(x, y, z), nil
}

// Coord converts a linear index back to coordinates.
func (l Lattice3D) Coord(i int) (x, y, z int) {
	plane := l.Width * l.Height
	z = i / plane
	rem := i % plane
	y = rem / l.Width
	x = rem % l.Width
	return x, y, z
}

// MooreNeighbors returns the linear indices of the in-bounds Moore neighbors of
// (x, y, z). Offsets are visited dz outer, dy middle, dx inner. Boundaries do
// not wrap, so face, edge and corner cells have fewer than 26 neighbors.
func (l Lattice3D) MooreNeighbors(x, y, z int) []int {
	return l.AppendMooreNeighbors(make([]int, 0, MaxMooreNeighbors), x, y, z)
}

// AppendMooreNeighbors appends the Moore neighbors of (x, y, z) to dst.
func (l Lattice3D) AppendMooreNeighbors(dst []int, x, y, z int) []int {
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				nx, ny, nz := x+dx, y+dy, z+dz
				if l.Contains(nx, ny, nz) {
					dst = append(dst, l.Index(nx, ny, nz))
				}
			}
		}
	}
	return dst
}
