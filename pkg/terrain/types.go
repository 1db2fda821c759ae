// Package terrain selects visual tiles for painted terrain types so that
// neighbouring cells line up according to authored adjacency rules.
//
// A Resolver is bound to one Map. Init builds a candidate cache from the
// map's catalog; SetCell paints raw terrain; the UpdateTerrain* calls resolve
// the best matching tile for every affected cell against a single snapshot of
// neighbour types.
package terrain

import (
	"fmt"
	"strings"

	"autotile/pkg/grid"
)

// Type identifies a terrain by its index in the catalog.
type Type int

// Pseudo-types returned for cells that do not hold a terrain tile.
const (
	Empty      Type = -1 // no tile
	NonTerrain Type = -2 // a tile without terrain metadata
	Error      Type = -3 // invalid query
)

func (t Type) String() string {
	switch t {
	case Empty:
		return "empty"
	case NonTerrain:
		return "non-terrain"
	case Error:
		return "error"
	}
	return fmt.Sprintf("terrain(%d)", int(t))
}

// Kind selects how a terrain type is matched against its neighbours.
type Kind int

const (
	MatchTiles Kind = iota
	MatchVertices
	Category
	Decoration
	KindCount
)

var kindNames = [KindCount]string{"match_tiles", "match_vertices", "category", "decoration"}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k >= 0 && k < KindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a snake_case kind name.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return MatchTiles, fmt.Errorf("unknown terrain kind %q", s)
}

// Peering maps a side or corner to the terrain types accepted there.
type Peering map[grid.Neighbor][]Type

// Scores added per satisfied and per violated peering constraint. A single
// violation outweighs three satisfied constraints.
const (
	ScoreMatch    = 3
	ScoreMismatch = -10
)

// Probe is a neighbour type read from an update snapshot. Cells outside the
// snapshot are unknown and never satisfy a constraint.
type Probe struct {
	Type  Type
	Known bool
}

// Known wraps a type read from the snapshot.
func Known(t Type) Probe { return Probe{Type: t, Known: true} }

// Unknown is the probe for a cell the snapshot does not cover.
var Unknown = Probe{}

// In reports whether the probe satisfies a target list.
func (p Probe) In(targets []Type) bool {
	if !p.Known {
		return false
	}
	for _, t := range targets {
		if t == p.Type {
			return true
		}
	}
	return false
}

// Source supplies the randomness used by weighted selection.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}
