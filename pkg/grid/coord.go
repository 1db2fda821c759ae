// Package grid describes cell coordinates and the neighbour geometry of the
// supported map shapes.
package grid

import "fmt"

// Coord addresses a single map cell.
type Coord struct {
	X, Y int
}

// Add returns the component-wise sum of c and o.
func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Less orders coordinates by X, then Y.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// Compare is Less in the three-way form expected by slices.SortFunc.
func Compare(a, b Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

// Rect is an axis-aligned block of cells. Size may be negative until Abs is
// applied.
type Rect struct {
	Position Coord
	Size     Coord
}

// NewRect builds a rectangle from its top-left cell and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{Position: Coord{X: x, Y: y}, Size: Coord{X: w, Y: h}}
}

// Abs returns an equivalent rectangle with non-negative size.
func (r Rect) Abs() Rect {
	out := r
	if out.Size.X < 0 {
		out.Position.X += out.Size.X
		out.Size.X = -out.Size.X
	}
	if out.Size.Y < 0 {
		out.Position.Y += out.Size.Y
		out.Size.Y = -out.Size.Y
	}
	return out
}

// End returns the first coordinate past the bottom-right corner.
func (r Rect) End() Coord { return r.Position.Add(r.Size) }

// HasPoint reports whether p lies inside r.
func (r Rect) HasPoint(p Coord) bool {
	end := r.End()
	return p.X >= r.Position.X && p.Y >= r.Position.Y && p.X < end.X && p.Y < end.Y
}

// Area returns the number of cells covered by r.
func (r Rect) Area() int {
	if r.Size.X <= 0 || r.Size.Y <= 0 {
		return 0
	}
	return r.Size.X * r.Size.Y
}

// Merge grows r so it also covers p. A zero-area r becomes the single cell p.
func (r Rect) Merge(p Coord) Rect {
	if r.Area() == 0 {
		return Rect{Position: p, Size: Coord{X: 1, Y: 1}}
	}
	start, end := r.Position, r.End()
	start.X = min(start.X, p.X)
	start.Y = min(start.Y, p.Y)
	end.X = max(end.X, p.X+1)
	end.Y = max(end.Y, p.Y+1)
	return Rect{Position: start, Size: Coord{X: end.X - start.X, Y: end.Y - start.Y}}
}

// Tile references one visual tile: an atlas source, a cell inside that
// atlas, and an alternate id which may carry transform flags.
type Tile struct {
	Source    int
	Atlas     Coord
	Alternate int
}

// NoSource marks the erase tile.
const NoSource = -1

// IsEmpty reports whether t is the erase tile.
func (t Tile) IsEmpty() bool { return t.Source == NoSource }
