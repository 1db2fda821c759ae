// Package mapio reads painted terrain maps and writes resolved tile layers.
package mapio

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"autotile/pkg/grid"
	"autotile/pkg/terrain"
)

// Paint is a sparse terrain painting. Empty cells are not stored.
type Paint struct {
	Width, Height int
	Cells         map[grid.Coord]terrain.Type
}

// NewPaint returns an empty painting of the given size.
func NewPaint(w, h int) *Paint {
	return &Paint{Width: w, Height: h, Cells: map[grid.Coord]terrain.Type{}}
}

// Bounds returns the painted rectangle, starting at the origin.
func (p *Paint) Bounds() grid.Rect { return grid.NewRect(0, 0, p.Width, p.Height) }

// ByType groups the painted cells by terrain, each list ordered by X, then Y.
func (p *Paint) ByType() map[terrain.Type][]grid.Coord {
	out := map[terrain.Type][]grid.Coord{}
	for c, t := range p.Cells {
		out[t] = append(out[t], c)
	}
	for _, cs := range out {
		slices.SortFunc(cs, grid.Compare)
	}
	return out
}

// ReadPaint parses a text painting: one row per line, one glyph per cell.
// '.' and ' ' are empty; every other glyph must appear in legend.
func ReadPaint(r io.Reader, legend map[rune]terrain.Type) (*Paint, error) {
	p := NewPaint(0, 0)
	sc := bufio.NewScanner(r)
	y := 0
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		x := 0
		for _, g := range line {
			if g != '.' && g != ' ' {
				t, ok := legend[g]
				if !ok {
					return nil, fmt.Errorf("paint: line %d col %d: unknown glyph %q", y+1, x+1, g)
				}
				p.Cells[grid.Coord{X: x, Y: y}] = t
			}
			x++
		}
		p.Width = max(p.Width, x)
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("paint: %w", err)
	}
	p.Height = y
	return p, nil
}

// WritePaint renders p using the first glyph legend assigns to each type.
// Types without a glyph are written as '?'.
func WritePaint(w io.Writer, p *Paint, legend map[rune]terrain.Type) error {
	glyphs := map[terrain.Type]rune{}
	keys := make([]rune, 0, len(legend))
	for g := range legend {
		keys = append(keys, g)
	}
	slices.Sort(keys)
	for _, g := range keys {
		if _, ok := glyphs[legend[g]]; !ok {
			glyphs[legend[g]] = g
		}
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			t, ok := p.Cells[grid.Coord{X: x, Y: y}]
			g := '.'
			if ok {
				if g, ok = glyphs[t]; !ok {
					g = '?'
				}
			}
			bw.WriteRune(g)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
