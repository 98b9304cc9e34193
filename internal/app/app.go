//go:build ebiten

package app

import (
	"time"

	"uft-ca/internal/core"
	"uft-ca/internal/render"
	"uft-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface, showing one
// z-slice of its volume at a time.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	slice   *core.ByteGrid
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.FixedStep

	scale    int
	z        int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		slice:   core.NewByteGrid(size.W, size.H),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		hud:     ui.NewHUD(sim, cfg.Panel),
		clock:   core.NewFixedStep(cfg.TPS),
		scale:   cfg.Scale,
		z:       size.D / 2,
		seed:    cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) && g.z < g.sim.Size().D-1 {
		g.z++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && g.z > 0 {
		g.z--
	}

	g.overlay.Update()
	g.hud.Update()

	due := g.clock.Due()
	switch {
	case g.tickOnce:
		g.sim.Step()
		g.tickOnce = false
	case !g.paused:
		for i := 0; i < due; i++ {
			g.sim.Step()
		}
	}
	return nil
}

// Draw renders the current slice, overlays and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.sim.Size()
	g.slice.LoadSlice(g.sim.Cells(), size, g.z)
	g.painter.Blit(screen, g.slice.Cells(), render.StatePalette, g.scale)
	g.overlay.Draw(screen, g.z)
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale, ui.Status{
		Tick:   g.sim.Tick(),
		Slice:  g.z,
		Depth:  size.D,
		Paused: g.paused,
		TPS:    g.clock.TPS(),
	})
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
