//go:build ebiten

package app

import (
	"time"

	"autotile/internal/core"
	"autotile/internal/render"
	"autotile/internal/ui"
	"autotile/pkg/grid"
	"autotile/pkg/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

var brushKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	s       *Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pal     render.Palette

	scale  int
	detail bool

	gen         core.Generator
	solid, open terrain.Type
	ticker      *core.Ticker
	steps       int
	maxSteps    int
	seed        int64
}

// New constructs a Game for the provided session.
func New(s *Session, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		s:       s,
		hud:     ui.NewHUD(s, hudWidth),
		overlay: ui.NewOverlay(scale),
		pal:     render.NewPalette(s.Doc.TileSet),
		scale:   scale,
		detail:  scale >= 6,
	}
	g.resize()
	return g
}

// SetGenerator lets G regenerate the map, animating steps smoothing passes at
// hz passes per second.
func (g *Game) SetGenerator(gen core.Generator, solid, open terrain.Type, steps, hz int, seed int64) {
	g.gen, g.solid, g.open = gen, solid, open
	g.maxSteps = steps
	g.ticker = core.NewTicker(hz)
	g.seed = seed
}

func (g *Game) resize() {
	b := g.s.Bounds()
	if g.painter != nil {
		if w, h := g.painter.Size(); w == b.Size.X*g.scale && h == b.Size.Y*g.scale {
			return
		}
	}
	g.painter = render.NewGridPainter(b.Size.X, b.Size.Y, g.scale)
}

func (g *Game) regenerate() {
	g.seed++
	g.gen.Reset(g.seed)
	g.s.Reseed(g.seed)
	g.steps = 0
	g.loadMask()
}

func (g *Game) loadMask() {
	if _, err := g.s.LoadMask(core.MaskOf(g.gen), g.solid, g.open); err == nil {
		g.resize()
	}
}

// Update handles per-frame input and generator animation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.s.NextBrush(-1)
		} else {
			g.s.NextBrush(1)
		}
	}
	for i, k := range brushKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.s.SelectBrush(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.detail = !g.detail
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.s.Clear()
	}
	if g.gen != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.regenerate()
		}
		if g.steps < g.maxSteps && g.ticker.Due(time.Now()) {
			g.gen.Step()
			g.steps++
			g.loadMask()
		}
	}

	cx, cy := ebiten.CursorPosition()
	cell := grid.Coord{X: floorDiv(cx, g.scale), Y: floorDiv(cy, g.scale)}
	b := g.s.Bounds()
	inside := b.HasPoint(b.Position.Add(cell))
	if inside {
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			g.s.Paint(b.Position.Add(cell))
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			g.s.Erase(b.Position.Add(cell))
		}
	}

	g.overlay.Update(cell.X, cell.Y, inside)
	g.hud.Update()
	return nil
}

// Draw renders the map, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.detail, g.s.View, g.pal)
	g.overlay.Draw(screen)
	w, h := g.painter.Size()
	g.hud.Draw(screen, w, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.painter.Size()
	return w + g.hud.Width(), h
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
