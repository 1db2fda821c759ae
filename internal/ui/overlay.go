//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var helpLines = []string{
	"LMB paint  RMB erase",
	"Tab/Shift+Tab or 1-9 brush",
	"D detail  R regenerate  C clear",
	"H help  Q quit",
}

// Overlay draws the cursor and key help on top of the map.
type Overlay struct {
	scale    int
	showHelp bool
	pixel    *ebiten.Image
	cursorX  int
	cursorY  int
	hasCur   bool
}

// NewOverlay constructs an overlay for cells of scale pixels.
func NewOverlay(scale int) *Overlay {
	o := &Overlay{scale: scale, showHelp: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles help and records the hovered cell.
func (o *Overlay) Update(cellX, cellY int, inside bool) {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
	o.cursorX, o.cursorY, o.hasCur = cellX, cellY, inside
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.hasCur && o.scale > 0 {
		s := float64(o.scale)
		x, y := float64(o.cursorX)*s, float64(o.cursorY)*s
		o.rect(screen, x, y, s, 1)
		o.rect(screen, x, y+s-1, s, 1)
		o.rect(screen, x, y, 1, s)
		o.rect(screen, x+s-1, y, 1, s)
	}
	if !o.showHelp {
		return
	}
	face := basicfont.Face7x13
	for i, line := range helpLines {
		y := 16 + i*15
		text.Draw(screen, line, face, 9, y+1, color.Black)
		text.Draw(screen, line, face, 8, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
	}
}

func (o *Overlay) rect(dst *ebiten.Image, x, y, w, h float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	dst.DrawImage(o.pixel, op)
}
