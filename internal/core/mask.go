package core

import "autotile/pkg/grid"

// Mask stores a 2D grid of byte-sized cell values in row-major order.
type Mask struct {
	W, H int
	data []uint8
}

// NewMask allocates a mask with the given dimensions.
func NewMask(w, h int) *Mask {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Mask{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (m *Mask) Cells() []uint8 { return m.data }

// Index returns the linear slice index for coordinates (x, y).
func (m *Mask) Index(x, y int) int { return y*m.W + x }

// In reports whether (x, y) lies inside the mask.
func (m *Mask) In(x, y int) bool { return x >= 0 && y >= 0 && x < m.W && y < m.H }

// At returns the value at (x, y), or outside when the point is off the mask.
func (m *Mask) At(x, y int, outside uint8) uint8 {
	if !m.In(x, y) {
		return outside
	}
	return m.data[m.Index(x, y)]
}

// Count8 returns how many of the eight cells around (x, y) are non-zero.
func (m *Mask) Count8(x, y int, outside uint8) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if m.At(x+dx, y+dy, outside) != 0 {
				n++
			}
		}
	}
	return n
}

// Coords lists the cells holding v, row by row.
func (m *Mask) Coords(v uint8) []grid.Coord {
	var out []grid.Coord
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.data[m.Index(x, y)] == v {
				out = append(out, grid.Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// Clear fills the mask with zeros.
func (m *Mask) Clear() { clear(m.data) }

// MaskOf views a generator's current cells as a mask. The mask shares the
// generator's buffer and is only valid until its next step.
func MaskOf(g Generator) *Mask {
	s := g.Size()
	return &Mask{W: s.W, H: s.H, data: g.Cells()}
}
