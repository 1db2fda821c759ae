package terrain

import (
	"fmt"
	"strings"

	"autotile/pkg/grid"
)

// Symmetry tells the cache builder which mirrored and rotated copies of an
// authored tile to generate.
type Symmetry int

const (
	SymmetryNone Symmetry = iota
	SymmetryMirror
	SymmetryFlip
	SymmetryReflect
	SymmetryRotateClockwise
	SymmetryRotateCounterClockwise
	SymmetryRotate180
	SymmetryRotateAll
	SymmetryAll
	SymmetryCount
)

var symmetryNames = [SymmetryCount]string{
	"none",
	"mirror",
	"flip",
	"reflect",
	"rotate_clockwise",
	"rotate_counter_clockwise",
	"rotate_180",
	"rotate_all",
	"all",
}

// Valid reports whether s is a known symmetry class.
func (s Symmetry) Valid() bool { return s >= 0 && s < SymmetryCount }

func (s Symmetry) String() string {
	if !s.Valid() {
		return fmt.Sprintf("symmetry(%d)", int(s))
	}
	return symmetryNames[s]
}

// ParseSymmetry resolves a snake_case symmetry name. The empty string is none.
func ParseSymmetry(s string) (Symmetry, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SymmetryNone, nil
	}
	for i, name := range symmetryNames {
		if name == s {
			return Symmetry(i), nil
		}
	}
	return SymmetryNone, fmt.Errorf("unknown symmetry %q", s)
}

// Transform flags OR-ed into a placement's alternate id.
const (
	TransformFlipH     = 0x1000
	TransformFlipV     = 0x2000
	TransformTranspose = 0x4000

	TransformMask = TransformFlipH | TransformFlipV | TransformTranspose
)

var symmetryFlags = [SymmetryCount][]int{
	SymmetryNone:    {0},
	SymmetryMirror:  {0, TransformFlipH},
	SymmetryFlip:    {0, TransformFlipV},
	SymmetryReflect: {0, TransformFlipH, TransformFlipV, TransformFlipH | TransformFlipV},

	SymmetryRotateClockwise:        {0, TransformFlipH | TransformTranspose},
	SymmetryRotateCounterClockwise: {0, TransformFlipV | TransformTranspose},
	SymmetryRotate180:              {0, TransformFlipH | TransformFlipV},
	SymmetryRotateAll: {
		0,
		TransformFlipH | TransformTranspose,
		TransformFlipH | TransformFlipV,
		TransformFlipV | TransformTranspose,
	},
	SymmetryAll: {
		0,
		TransformFlipH,
		TransformFlipV,
		TransformFlipH | TransformFlipV,
		TransformTranspose,
		TransformFlipH | TransformTranspose,
		TransformFlipV | TransformTranspose,
		TransformFlipH | TransformFlipV | TransformTranspose,
	},
}

// Flags returns the transform combinations generated by s, in output order.
// Unknown classes behave as none.
func (s Symmetry) Flags() []int {
	if !s.Valid() {
		return symmetryFlags[SymmetryNone]
	}
	return symmetryFlags[s]
}

// neighbour permutations, indexed by grid.Neighbor; each is its own inverse
var (
	flipHTable     = [grid.NeighborCount]grid.Neighbor{8, 9, 6, 7, 4, 5, 2, 3, 0, 1, 14, 15, 12, 13, 10, 11}
	flipVTable     = [grid.NeighborCount]grid.Neighbor{0, 1, 14, 15, 12, 13, 10, 11, 8, 9, 6, 7, 4, 5, 2, 3}
	transposeTable = [grid.NeighborCount]grid.Neighbor{4, 5, 2, 3, 0, 1, 14, 15, 12, 13, 10, 11, 8, 9, 6, 7}
)

// TransformNeighbor maps n through the transforms in flags: transpose, then
// horizontal flip, then vertical flip.
func TransformNeighbor(n grid.Neighbor, flags int) grid.Neighbor {
	if !n.Valid() {
		return n
	}
	if flags&TransformTranspose != 0 {
		n = transposeTable[n]
	}
	if flags&TransformFlipH != 0 {
		n = flipHTable[n]
	}
	if flags&TransformFlipV != 0 {
		n = flipVTable[n]
	}
	return n
}

// InvertNeighbor undoes TransformNeighbor for the same flags.
func InvertNeighbor(n grid.Neighbor, flags int) grid.Neighbor {
	if !n.Valid() {
		return n
	}
	if flags&TransformFlipV != 0 {
		n = flipVTable[n]
	}
	if flags&TransformFlipH != 0 {
		n = flipHTable[n]
	}
	if flags&TransformTranspose != 0 {
		n = transposeTable[n]
	}
	return n
}

// Transform returns a copy of p with every key remapped by flags. Target
// lists are shared with p.
func Transform(p Peering, flags int) Peering {
	if flags&TransformMask == 0 {
		return p
	}
	out := make(Peering, len(p))
	for k, v := range p {
		out[TransformNeighbor(k, flags)] = v
	}
	return out
}

// Invert reverses Transform.
func Invert(p Peering, flags int) Peering {
	if flags&TransformMask == 0 {
		return p
	}
	out := make(Peering, len(p))
	for k, v := range p {
		out[InvertNeighbor(k, flags)] = v
	}
	return out
}

// Variant is one symmetry copy of an authored peering map.
type Variant struct {
	Flags   int
	Peering Peering
}

// Expand produces the variants of base generated by s. Every variant is
// derived from base directly.
func Expand(base Peering, s Symmetry) []Variant {
	flags := s.Flags()
	out := make([]Variant, 0, len(flags))
	for _, f := range flags {
		out = append(out, Variant{Flags: f, Peering: Transform(base, f)})
	}
	return out
}
