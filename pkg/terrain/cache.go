package terrain

import (
	"github.com/zyedidia/generic/mapset"

	"autotile/pkg/grid"
)

// Placement is one candidate tile for a terrain type.
type Placement struct {
	Tile        grid.Tile
	Peering     Peering
	Probability float64
}

// IsErase reports whether placing p clears the cell.
func (p *Placement) IsErase() bool { return p.Tile.IsEmpty() }

var emptyPlacement = Placement{
	Tile:        grid.Tile{Source: grid.NoSource, Alternate: -1},
	Probability: 1,
}

// Cache maps every terrain type, plus Empty, to its ordered candidates.
type Cache map[Type][]Placement

// Candidates returns the placements cached for t.
func (c Cache) Candidates(t Type) []Placement { return c[t] }

// Size returns the total number of placements, excluding the Empty entry.
func (c Cache) Size() int {
	n := 0
	for t, ps := range c {
		if t != Empty {
			n += len(ps)
		}
	}
	return n
}

// BuildReport summarises one cache build.
type BuildReport struct {
	Types      int
	Tiles      int
	Placements int
	// OutOfRange counts tiles declaring a type the catalog does not have.
	OutOfRange int
	// Unconstrained counts decoration tiles skipped for lacking peering.
	Unconstrained int
}

// BuildCache derives the candidate cache from the catalog. The result depends
// only on the catalog contents, so identical catalogs give identical caches.
func BuildCache(cat Catalog) (Cache, BuildReport) {
	defs := cat.Terrains()
	rep := BuildReport{Types: len(defs)}

	members := memberSets(defs)
	// Empty first, then ascending ids, so resolved target lists are ordered.
	order := make([]Type, 0, len(defs)+1)
	order = append(order, Empty)
	for i := range defs {
		order = append(order, Type(i))
	}

	cache := make(Cache, len(defs)+1)
	for i := range defs {
		cache[Type(i)] = nil
	}
	cache[Empty] = []Placement{emptyPlacement}

	for _, tv := range cat.Tiles() {
		rep.Tiles++
		meta := tv.Meta
		if meta.Type < 0 || int(meta.Type) >= len(defs) {
			rep.OutOfRange++
			continue
		}

		peering := make(Peering, len(meta.Peering))
		for k, raw := range meta.Peering {
			peering[k] = resolveTargets(raw, order, members)
		}
		if defs[meta.Type].Kind == Decoration && len(peering) == 0 {
			rep.Unconstrained++
			continue
		}

		for _, v := range Expand(peering, meta.Symmetry) {
			tile := tv.Tile
			tile.Alternate |= v.Flags
			cache[meta.Type] = append(cache[meta.Type], Placement{
				Tile:        tile,
				Peering:     v.Peering,
				Probability: meta.Probability,
			})
			rep.Placements++
		}
	}
	return cache, rep
}

// memberSets returns, per type, the ids that satisfy a constraint naming that
// type: itself and the categories it belongs to. A category's set holds only
// Empty, so it is admitted wherever Empty is.
func memberSets(defs []TerrainDef) map[Type]mapset.Set[Type] {
	sets := make(map[Type]mapset.Set[Type], len(defs)+1)
	empty := mapset.New[Type]()
	empty.Put(Empty)
	sets[Empty] = empty
	for i, d := range defs {
		s := mapset.New[Type]()
		if d.Kind == Category {
			s.Put(Empty)
		} else {
			s.Put(Type(i))
			for _, c := range d.Categories {
				s.Put(c)
			}
		}
		sets[Type(i)] = s
	}
	return sets
}

// resolveTargets expands a raw authored list into the concrete types whose
// member set intersects it.
func resolveTargets(raw []Type, order []Type, members map[Type]mapset.Set[Type]) []Type {
	targets := make([]Type, 0, len(raw))
	for _, t := range order {
		set := members[t]
		for _, r := range raw {
			if set.Has(r) {
				targets = append(targets, t)
				break
			}
		}
	}
	return targets
}
