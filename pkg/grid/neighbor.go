package grid

import "fmt"

// Neighbor names a side or corner of a cell. The numbering is shared by every
// shape; each shape only uses a subset.
type Neighbor int

const (
	RightSide Neighbor = iota
	RightCorner
	BottomRightSide
	BottomRightCorner
	BottomSide
	BottomCorner
	BottomLeftSide
	BottomLeftCorner
	LeftSide
	LeftCorner
	TopLeftSide
	TopLeftCorner
	TopSide
	TopCorner
	TopRightSide
	TopRightCorner
	NeighborCount
)

var neighborNames = [NeighborCount]string{
	"right_side",
	"right_corner",
	"bottom_right_side",
	"bottom_right_corner",
	"bottom_side",
	"bottom_corner",
	"bottom_left_side",
	"bottom_left_corner",
	"left_side",
	"left_corner",
	"top_left_side",
	"top_left_corner",
	"top_side",
	"top_corner",
	"top_right_side",
	"top_right_corner",
}

// Valid reports whether n is one of the sixteen named neighbours.
func (n Neighbor) Valid() bool { return n >= 0 && n < NeighborCount }

func (n Neighbor) String() string {
	if !n.Valid() {
		return fmt.Sprintf("neighbor(%d)", int(n))
	}
	return neighborNames[n]
}

// ParseNeighbor resolves a snake_case neighbour name.
func ParseNeighbor(s string) (Neighbor, error) {
	for i, name := range neighborNames {
		if name == s {
			return Neighbor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown neighbor %q", s)
}
