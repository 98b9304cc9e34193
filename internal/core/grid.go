package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// Viewers use it to hold one z-slice of a volume.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// LoadSlice copies plane z of a volume with the given size into the grid. The
// grid must match the volume's W and H. It reports false when z or the volume
// length is out of range, leaving the grid cleared.
func (g *ByteGrid) LoadSlice(volume []uint8, size Size, z int) bool {
	if size.W != g.W || size.H != g.H {
		return false
	}
	plane := g.W * g.H
	start := z * plane
	if z < 0 || z >= size.D || start+plane > len(volume) {
		g.Clear()
		return false
	}
	copy(g.data, volume[start:start+plane])
	return true
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	clear(g.data)
}
