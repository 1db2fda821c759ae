//go:build ebiten

package ui

import (
	"image/color"

	"autotile/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the readout panel to the right of the map view.
type HUD struct {
	src        core.ReadoutProvider
	width      int
	panel      *ebiten.Image
	lastHeight int
	groups     []core.ReadoutGroup
}

// NewHUD constructs a HUD for the provided source and panel width.
func NewHUD(src core.ReadoutProvider, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{src: src, width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached readouts.
func (h *HUD) Update() {
	if h == nil || h.src == nil {
		return
	}
	h.groups = h.src.Readouts()
}

// Draw paints the panel at offsetX, height pixels tall.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	heading := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	label := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	value := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	y := panelPadding + headerBaseline
	for _, g := range h.groups {
		text.Draw(h.panel, g.Name, face, panelPadding, y, heading)
		y += lineHeight
		for _, item := range g.Items {
			text.Draw(h.panel, item.Label, face, panelPadding, y, label)
			w := text.BoundString(face, item.Value).Dx()
			text.Draw(h.panel, item.Value, face, h.width-panelPadding-w, y, value)
			y += lineHeight
		}
		y += groupGap
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

const (
	panelPadding   = 12
	headerBaseline = 14
	lineHeight     = 18
	groupGap       = 10
)
