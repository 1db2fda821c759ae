package terrain

import (
	"errors"
	"fmt"
	"log"
	"time"

	"autotile/pkg/core"
	"autotile/pkg/grid"
)

var (
	// ErrNoMap is returned by Init when no map is supplied.
	ErrNoMap = errors.New("terrain: no map")
	// ErrNoCatalog is returned by Init when the map carries no catalog.
	ErrNoCatalog = errors.New("terrain: map has no catalog")
	// ErrVersion is returned by Init when the catalog format does not match.
	ErrVersion = errors.New("terrain: catalog version mismatch")
)

// Resolver autotiles one map. It is not safe for concurrent use; the map and
// its catalog must not change while a call is running.
type Resolver struct {
	m     Map
	cat   Catalog
	geom  grid.Geometry
	kinds []Kind
	cache Cache

	rng    Source
	logger *log.Logger
}

// New returns an uninitialised resolver drawing randomness from rng. A nil rng
// is replaced by a time-seeded one.
func New(rng Source) *Resolver {
	if rng == nil {
		rng = core.NewRNG(time.Now().UnixNano())
	}
	return &Resolver{rng: rng}
}

// SetLogger enables init and build diagnostics. A nil logger silences them.
func (r *Resolver) SetLogger(l *log.Logger) { r.logger = l }

// SetSource replaces the random source.
func (r *Resolver) SetSource(rng Source) {
	if rng != nil {
		r.rng = rng
	}
}

func (r *Resolver) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

// Init binds the resolver to m and rebuilds the candidate cache. On failure
// all previous state is dropped.
func (r *Resolver) Init(m Map) error {
	r.reset()
	if m == nil {
		return ErrNoMap
	}
	cat := m.Catalog()
	if cat == nil {
		return ErrNoCatalog
	}
	if v := cat.Version(); v != MetaVersion {
		return fmt.Errorf("%w: got %q, want %q", ErrVersion, v, MetaVersion)
	}

	defs := cat.Terrains()
	kinds := make([]Kind, len(defs))
	for i, d := range defs {
		kinds[i] = d.Kind
	}
	cache, rep := BuildCache(cat)

	r.m = m
	r.cat = cat
	r.geom = m.Geometry()
	r.kinds = kinds
	r.cache = cache

	r.logf("init: %d terrains, %d tiles, %d placements", rep.Types, rep.Tiles, rep.Placements)
	if rep.OutOfRange > 0 || rep.Unconstrained > 0 {
		r.logf("init: skipped %d tiles with unknown type, %d unconstrained decorations", rep.OutOfRange, rep.Unconstrained)
	}
	return nil
}

func (r *Resolver) reset() {
	r.m = nil
	r.cat = nil
	r.geom = grid.Geometry{}
	r.kinds = nil
	r.cache = nil
}

// Ready reports whether Init has succeeded.
func (r *Resolver) Ready() bool { return r.m != nil }

// Cache exposes the candidate cache. Callers must not modify it.
func (r *Resolver) Cache() Cache { return r.cache }

// Kind returns the kind of t, or false for pseudo-types and unknown ids.
func (r *Resolver) Kind(t Type) (Kind, bool) {
	if t < 0 || int(t) >= len(r.kinds) {
		return 0, false
	}
	return r.kinds[t], true
}

func (r *Resolver) validLayer(layer int) bool {
	return r.m != nil && layer >= 0 && layer < r.m.Layers()
}

// GetCell returns the terrain type painted at c.
func (r *Resolver) GetCell(layer int, c grid.Coord) Type {
	if !r.validLayer(layer) {
		return Error
	}
	tile, ok := r.m.Cell(layer, c)
	if !ok || tile.IsEmpty() {
		return Empty
	}
	meta, ok := r.cat.TileMeta(tile)
	if !ok {
		return Empty
	}
	return meta.Type
}

// SetCell paints t at c using the first cached candidate, without looking at
// neighbours. Empty erases the cell. It reports false for invalid arguments
// and for types with no candidates.
func (r *Resolver) SetCell(layer int, c grid.Coord, t Type) bool {
	return r.SetCells(layer, []grid.Coord{c}, t)
}

// SetCells paints t at every coordinate; see SetCell.
func (r *Resolver) SetCells(layer int, cs []grid.Coord, t Type) bool {
	if !r.validLayer(layer) || t < Empty {
		return false
	}
	if t == Empty {
		for _, c := range cs {
			r.m.EraseCell(layer, c)
		}
		return true
	}
	if int(t) >= len(r.kinds) {
		return false
	}
	candidates := r.cache[t]
	if len(candidates) == 0 {
		return false
	}
	first := candidates[0].Tile
	for _, c := range cs {
		r.m.SetCell(layer, c, first)
	}
	return true
}

// resolve chooses a placement for c against snap, or nil when c should be
// left alone.
func (r *Resolver) resolve(c grid.Coord, snap Snapshot) *Placement {
	t, ok := snap[c]
	if !ok {
		t = Empty
	}
	kind, ok := r.Kind(t)
	if !ok {
		return nil
	}
	candidates := r.cache[t]
	if len(candidates) == 0 {
		return nil
	}

	var best []*Placement
	switch kind {
	case MatchTiles, Decoration:
		best = bestCandidates(candidates, func(p *Placement) int {
			return ScoreTiles(r.geom, c, p, snap)
		})
	case MatchVertices:
		best = bestCandidates(candidates, func(p *Placement) int {
			return ScoreVertices(r.geom, c, t, p, snap)
		})
	default:
		return nil
	}
	if len(best) == 0 {
		return nil
	}
	return Select(best, kind == Decoration, r.rng)
}

// apply resolves c and writes the result. It reports whether the cell was
// written.
func (r *Resolver) apply(layer int, c grid.Coord, snap Snapshot) bool {
	p := r.resolve(c, snap)
	if p == nil {
		return false
	}
	if p.IsErase() {
		r.m.EraseCell(layer, c)
	} else {
		r.m.SetCell(layer, c, p.Tile)
	}
	return true
}
