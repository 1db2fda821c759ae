// Package render rasterises autotiled maps for the viewer.
package render

import (
	"image/color"

	"autotile/pkg/catalog"
	"autotile/pkg/grid"
	"autotile/pkg/terrain"
)

// Palette maps terrain ids to display colours.
type Palette struct {
	colors     []color.RGBA
	Background color.RGBA
	// Foreign marks cells holding tiles without terrain metadata.
	Foreign color.RGBA
}

// NewPalette takes the terrain colours from ts.
func NewPalette(ts *catalog.TileSet) Palette {
	p := Palette{
		Background: color.RGBA{R: 12, G: 12, B: 16, A: 255},
		Foreign:    color.RGBA{R: 255, G: 0, B: 255, A: 255},
	}
	if ts == nil {
		return p
	}
	for i := 0; i < ts.Count(); i++ {
		t, _ := ts.Terrain(terrain.Type(i))
		p.colors = append(p.colors, t.Color)
	}
	return p
}

// Color returns the colour for t.
func (p Palette) Color(t terrain.Type) color.RGBA {
	switch {
	case t == terrain.Empty:
		return p.Background
	case t < 0 || int(t) >= len(p.colors):
		return p.Foreign
	}
	return p.colors[t]
}

// CellView is what the rasteriser needs to know about one cell: its terrain
// and the peering of the tile placed there, already transformed.
type CellView struct {
	Type    terrain.Type
	Peering terrain.Peering
}

// View describes cell c of layer as resolved by r.
func View(r *terrain.Resolver, cat terrain.Catalog, m terrain.Map, layer int, c grid.Coord) CellView {
	v := CellView{Type: r.GetCell(layer, c)}
	if v.Type < 0 {
		return v
	}
	tile, ok := m.Cell(layer, c)
	if !ok {
		return v
	}
	meta, ok := cat.TileMeta(tile)
	if !ok {
		return v
	}
	v.Peering = terrain.Transform(meta.Peering, tile.Alternate&terrain.TransformMask)
	return v
}

// subcell position of each neighbour inside a 3x3 block
var subcells = map[grid.Neighbor][2]int{
	grid.TopLeftCorner:     {0, 0},
	grid.TopSide:           {1, 0},
	grid.TopRightCorner:    {2, 0},
	grid.LeftSide:          {0, 1},
	grid.RightSide:         {2, 1},
	grid.BottomLeftCorner:  {0, 2},
	grid.BottomSide:        {1, 2},
	grid.BottomRightCorner: {2, 2},
}

// FillCells rasterises a w*h block of cells into buf, cell pixels per cell
// side. With detail set and cells of at least three pixels, each cell is
// split into a 3x3 block whose outer parts show the first terrain accepted
// on that side or corner.
func FillCells(buf []byte, w, h, cell int, detail bool, view func(x, y int) CellView, pal Palette) {
	if cell <= 0 {
		return
	}
	stride := w * cell * 4
	if len(buf) < stride*h*cell {
		return
	}
	third := cell / 3
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			v := view(cx, cy)
			base := pal.Color(v.Type)
			fillRect(buf, stride, cx*cell, cy*cell, cell, cell, base)
			if !detail || third == 0 || v.Type < 0 {
				continue
			}
			for n, targets := range v.Peering {
				pos, ok := subcells[n]
				if !ok || len(targets) == 0 {
					continue
				}
				col := shade(pal.Color(targets[0]))
				fillRect(buf, stride, cx*cell+pos[0]*third, cy*cell+pos[1]*third, third, third, col)
			}
		}
	}
}

func fillRect(buf []byte, stride, x0, y0, w, h int, c color.RGBA) {
	for y := y0; y < y0+h; y++ {
		row := y * stride
		for x := x0; x < x0+w; x++ {
			i := row + x*4
			buf[i+0] = c.R
			buf[i+1] = c.G
			buf[i+2] = c.B
			buf[i+3] = c.A
		}
	}
}

// shade darkens c so peering marks stand out against the cell colour.
func shade(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 4 * 3, G: c.G / 4 * 3, B: c.B / 4 * 3, A: c.A}
}
