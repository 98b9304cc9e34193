//go:build ebiten

package ui

import (
	"uft-ca/internal/core"
	"uft-ca/internal/render"
	"uft-ca/pkg/ca"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Graph sims lay nodes out on tiles, so lattice neighborhoods do not apply to
// them.
type topologyProvider interface {
	Topology() *ca.GraphCA
}

// Overlay draws optional debugging visuals on top of the base simulation.
// Key 1 toggles the live neighbor heat map of the visible slice.
type Overlay struct {
	sim      core.Sim
	scale    int
	showHeat bool
	painter  *render.GridPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{sim: sim, scale: scale, painter: render.NewGridPainter(size.W, size.H)}
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
}

// Draw renders the enabled overlays for plane z.
func (o *Overlay) Draw(screen *ebiten.Image, z int) {
	if !o.showHeat {
		return
	}
	if _, ok := o.sim.(topologyProvider); ok {
		return
	}
	counts, limit, err := sliceHeat(o.sim.Size(), o.sim.Cells(), z)
	if err != nil {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	o.painter.BlitHeat(screen, counts, limit, scale)
}
