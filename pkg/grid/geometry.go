package grid

import (
	"fmt"
	"strings"
)

// Shape enumerates the supported cell shapes.
type Shape int

const (
	Square Shape = iota
	Isometric
	Hexagon
)

func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	case Isometric:
		return "isometric"
	case Hexagon:
		return "hexagon"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape resolves a shape name.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "square":
		return Square, nil
	case "isometric", "iso":
		return Isometric, nil
	case "hexagon", "hex":
		return Hexagon, nil
	}
	return Square, fmt.Errorf("unknown shape %q", s)
}

// Axis selects which rows or columns are shifted by half a cell in the
// stacked layouts used by isometric and hexagonal maps.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseAxis resolves an offset axis name.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown offset axis %q", s)
}

// Geometry answers neighbour questions for one shape and offset axis.
// Square maps ignore the axis.
type Geometry struct {
	Shape Shape
	Axis  Axis
}

var (
	squarePeering     = []Neighbor{RightSide, BottomRightCorner, BottomSide, BottomLeftCorner, LeftSide, TopLeftCorner, TopSide, TopRightCorner}
	isometricPeering  = []Neighbor{RightCorner, BottomRightSide, BottomCorner, BottomLeftSide, LeftCorner, TopLeftSide, TopCorner, TopRightSide}
	horizontalPeering = []Neighbor{RightSide, BottomRightSide, BottomLeftSide, LeftSide, TopLeftSide, TopRightSide}
	verticalPeering   = []Neighbor{BottomRightSide, BottomSide, BottomLeftSide, TopLeftSide, TopSide, TopRightSide}

	squareCorners     = []Neighbor{BottomRightCorner, BottomLeftCorner, TopLeftCorner, TopRightCorner}
	isometricCorners  = []Neighbor{RightCorner, BottomCorner, LeftCorner, TopCorner}
	horizontalCorners = []Neighbor{BottomRightCorner, BottomCorner, BottomLeftCorner, TopLeftCorner, TopCorner, TopRightCorner}
	verticalCorners   = []Neighbor{RightCorner, BottomRightCorner, BottomLeftCorner, LeftCorner, TopLeftCorner, TopRightCorner}
)

// cells adjacent to each corner, expressed as neighbour directions
var (
	squareCornerCells = map[Neighbor][]Neighbor{
		BottomRightCorner: {RightSide, BottomRightCorner, BottomSide},
		BottomLeftCorner:  {BottomSide, BottomLeftCorner, LeftSide},
		TopLeftCorner:     {LeftSide, TopLeftCorner, TopSide},
		TopRightCorner:    {TopSide, TopRightCorner, RightSide},
	}
	isometricCornerCells = map[Neighbor][]Neighbor{
		RightCorner:  {TopRightSide, RightCorner, BottomRightSide},
		BottomCorner: {BottomRightSide, BottomCorner, BottomLeftSide},
		LeftCorner:   {BottomLeftSide, LeftCorner, TopLeftSide},
		TopCorner:    {TopLeftSide, TopCorner, TopRightSide},
	}
	horizontalCornerCells = map[Neighbor][]Neighbor{
		BottomRightCorner: {RightSide, BottomRightSide},
		BottomCorner:      {BottomRightSide, BottomLeftSide},
		BottomLeftCorner:  {BottomLeftSide, LeftSide},
		TopLeftCorner:     {LeftSide, TopLeftSide},
		TopCorner:         {TopLeftSide, TopRightSide},
		TopRightCorner:    {TopRightSide, RightSide},
	}
	verticalCornerCells = map[Neighbor][]Neighbor{
		RightCorner:       {TopRightSide, BottomRightSide},
		BottomRightCorner: {BottomRightSide, BottomSide},
		BottomLeftCorner:  {BottomSide, BottomLeftSide},
		LeftCorner:        {BottomLeftSide, TopLeftSide},
		TopLeftCorner:     {TopLeftSide, TopSide},
		TopRightCorner:    {TopSide, TopRightSide},
	}
)

// Peering returns every neighbour a tile-matching terrain may constrain. It is
// also the neighbourhood used to widen update batches.
func (g Geometry) Peering() []Neighbor {
	switch {
	case g.Shape == Square:
		return squarePeering
	case g.Shape == Isometric:
		return isometricPeering
	case g.Axis == Vertical:
		return verticalPeering
	}
	return horizontalPeering
}

// Corners returns the corners a vertex-matching terrain may constrain.
func (g Geometry) Corners() []Neighbor {
	switch {
	case g.Shape == Square:
		return squareCorners
	case g.Shape == Isometric:
		return isometricCorners
	case g.Axis == Vertical:
		return verticalCorners
	}
	return horizontalCorners
}

// Has reports whether n is part of this geometry's peering set.
func (g Geometry) Has(n Neighbor) bool {
	for _, p := range g.Peering() {
		if p == n {
			return true
		}
	}
	return false
}

// HasCorner reports whether n is a corner of this geometry.
func (g Geometry) HasCorner(n Neighbor) bool {
	for _, p := range g.Corners() {
		if p == n {
			return true
		}
	}
	return false
}

// NeighborCell returns the cell across side or corner n of c. Neighbours the
// shape does not define resolve to c itself.
func (g Geometry) NeighborCell(c Coord, n Neighbor) Coord {
	var d Coord
	var ok bool
	switch g.Shape {
	case Square:
		d, ok = squareDelta(n)
	case Isometric:
		d, ok = isometricDelta(c, n, g.Axis)
	default:
		d, ok = hexagonDelta(c, n, g.Axis)
	}
	if !ok {
		return c
	}
	return c.Add(d)
}

// CornerCells returns the cells other than c that touch corner n of c: three
// for square and isometric maps, two for hexagons. An undefined corner yields
// nil.
func (g Geometry) CornerCells(c Coord, n Neighbor) []Coord {
	var table map[Neighbor][]Neighbor
	switch {
	case g.Shape == Square:
		table = squareCornerCells
	case g.Shape == Isometric:
		table = isometricCornerCells
	case g.Axis == Vertical:
		table = verticalCornerCells
	default:
		table = horizontalCornerCells
	}
	dirs, ok := table[n]
	if !ok {
		return nil
	}
	out := make([]Coord, len(dirs))
	for i, d := range dirs {
		out[i] = g.NeighborCell(c, d)
	}
	return out
}

func squareDelta(n Neighbor) (Coord, bool) {
	switch n {
	case RightSide:
		return Coord{1, 0}, true
	case BottomRightCorner:
		return Coord{1, 1}, true
	case BottomSide:
		return Coord{0, 1}, true
	case BottomLeftCorner:
		return Coord{-1, 1}, true
	case LeftSide:
		return Coord{-1, 0}, true
	case TopLeftCorner:
		return Coord{-1, -1}, true
	case TopSide:
		return Coord{0, -1}, true
	case TopRightCorner:
		return Coord{1, -1}, true
	}
	return Coord{}, false
}

// odd rows (horizontal axis) or columns (vertical axis) are shifted forward
func shifted(c Coord, axis Axis) bool {
	if axis == Vertical {
		return c.X&1 != 0
	}
	return c.Y&1 != 0
}

func isometricDelta(c Coord, n Neighbor, axis Axis) (Coord, bool) {
	off := shifted(c, axis)
	if axis == Vertical {
		switch n {
		case RightCorner:
			return Coord{2, 0}, true
		case BottomRightSide:
			return Coord{1, pick(off, 1, 0)}, true
		case BottomCorner:
			return Coord{0, 1}, true
		case BottomLeftSide:
			return Coord{-1, pick(off, 1, 0)}, true
		case LeftCorner:
			return Coord{-2, 0}, true
		case TopLeftSide:
			return Coord{-1, pick(off, 0, -1)}, true
		case TopCorner:
			return Coord{0, -1}, true
		case TopRightSide:
			return Coord{1, pick(off, 0, -1)}, true
		}
		return Coord{}, false
	}
	switch n {
	case RightCorner:
		return Coord{1, 0}, true
	case BottomRightSide:
		return Coord{pick(off, 1, 0), 1}, true
	case BottomCorner:
		return Coord{0, 2}, true
	case BottomLeftSide:
		return Coord{pick(off, 0, -1), 1}, true
	case LeftCorner:
		return Coord{-1, 0}, true
	case TopLeftSide:
		return Coord{pick(off, 0, -1), -1}, true
	case TopCorner:
		return Coord{0, -2}, true
	case TopRightSide:
		return Coord{pick(off, 1, 0), -1}, true
	}
	return Coord{}, false
}

func hexagonDelta(c Coord, n Neighbor, axis Axis) (Coord, bool) {
	off := shifted(c, axis)
	if axis == Vertical {
		switch n {
		case BottomRightSide:
			return Coord{1, pick(off, 1, 0)}, true
		case BottomSide:
			return Coord{0, 1}, true
		case BottomLeftSide:
			return Coord{-1, pick(off, 1, 0)}, true
		case TopLeftSide:
			return Coord{-1, pick(off, 0, -1)}, true
		case TopSide:
			return Coord{0, -1}, true
		case TopRightSide:
			return Coord{1, pick(off, 0, -1)}, true
		}
		return Coord{}, false
	}
	switch n {
	case RightSide:
		return Coord{1, 0}, true
	case BottomRightSide:
		return Coord{pick(off, 1, 0), 1}, true
	case BottomLeftSide:
		return Coord{pick(off, 0, -1), 1}, true
	case LeftSide:
		return Coord{-1, 0}, true
	case TopLeftSide:
		return Coord{pick(off, 0, -1), -1}, true
	case TopRightSide:
		return Coord{pick(off, 1, 0), -1}, true
	}
	return Coord{}, false
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
