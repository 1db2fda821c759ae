//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter owns an RGBA image of a block of map cells.
type GridPainter struct {
	w, h, cell int
	img        *ebiten.Image
	buf        []byte
}

// NewGridPainter allocates a painter for w*h cells of cell pixels each.
func NewGridPainter(w, h, cell int) *GridPainter {
	gp := &GridPainter{w: w, h: h, cell: cell, buf: make([]byte, 4*w*h*cell*cell)}
	gp.img = ebiten.NewImage(w*cell, h*cell)
	return gp
}

// Blit rasterises the cells and draws them at the origin of dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, detail bool, view func(x, y int) CellView, pal Palette) {
	FillCells(gp.buf, gp.w, gp.h, gp.cell, detail, view, pal)
	gp.img.WritePixels(gp.buf)
	dst.DrawImage(gp.img, &ebiten.DrawImageOptions{})
}

// Size returns the painted area in pixels.
func (gp *GridPainter) Size() (int, int) { return gp.w * gp.cell, gp.h * gp.cell }
