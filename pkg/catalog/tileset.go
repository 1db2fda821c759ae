package catalog

import (
	"errors"
	"fmt"
	"slices"

	"autotile/pkg/grid"
	"autotile/pkg/terrain"
)

var (
	ErrSource = errors.New("catalog: unknown source")
	ErrTile   = errors.New("catalog: unknown tile")
	ErrTarget = errors.New("catalog: invalid peering target")
)

// TileSet holds the terrain catalog together with the atlas sources whose
// tiles carry terrain metadata.
type TileSet struct {
	terrains []Terrain
	sources  []*source
	byID     map[int]*source
}

type tileKey struct {
	Atlas     grid.Coord
	Alternate int
}

type tileEntry struct {
	key         tileKey
	probability float64
	meta        *terrain.TileMeta
}

type source struct {
	id    int
	tiles []*tileEntry
	index map[tileKey]*tileEntry
}

// New returns an empty tile set.
func New() *TileSet {
	return &TileSet{byID: map[int]*source{}}
}

// Version reports the metadata format, see terrain.MetaVersion.
func (ts *TileSet) Version() string { return terrain.MetaVersion }

// Terrains implements terrain.Catalog.
func (ts *TileSet) Terrains() []terrain.TerrainDef {
	out := make([]terrain.TerrainDef, len(ts.terrains))
	for i, t := range ts.terrains {
		out[i] = terrain.TerrainDef{Name: t.Name, Kind: t.Kind, Categories: slices.Clone(t.Categories)}
	}
	return out
}

// Tiles implements terrain.Catalog. Tiles are listed by source in the order
// the sources were added, then in the order the tiles were added.
func (ts *TileSet) Tiles() []terrain.TileVariant {
	var out []terrain.TileVariant
	for _, src := range ts.sources {
		for _, e := range src.tiles {
			if e.meta == nil {
				continue
			}
			out = append(out, terrain.TileVariant{
				Tile: grid.Tile{Source: src.id, Atlas: e.key.Atlas, Alternate: e.key.Alternate},
				Meta: e.snapshot(),
			})
		}
	}
	return out
}

// TileMeta implements terrain.Catalog.
func (ts *TileSet) TileMeta(t grid.Tile) (terrain.TileMeta, bool) {
	e, err := ts.entry(t)
	if err != nil {
		return terrain.TileMeta{}, false
	}
	if e.meta == nil {
		return terrain.TileMeta{Type: terrain.NonTerrain, Probability: e.probability}, true
	}
	return e.snapshot(), true
}

func (e *tileEntry) snapshot() terrain.TileMeta {
	m := *e.meta
	m.Probability = e.probability
	m.Peering = make(terrain.Peering, len(e.meta.Peering))
	for k, v := range e.meta.Peering {
		m.Peering[k] = slices.Clone(v)
	}
	return m
}

// AddSource registers an atlas source id.
func (ts *TileSet) AddSource(id int) error {
	if id < 0 {
		return fmt.Errorf("%w: negative id %d", ErrSource, id)
	}
	if _, ok := ts.byID[id]; ok {
		return fmt.Errorf("%w: duplicate id %d", ErrSource, id)
	}
	src := &source{id: id, index: map[tileKey]*tileEntry{}}
	ts.sources = append(ts.sources, src)
	ts.byID[id] = src
	return nil
}

// Sources returns the registered source ids in insertion order.
func (ts *TileSet) Sources() []int {
	out := make([]int, len(ts.sources))
	for i, s := range ts.sources {
		out[i] = s.id
	}
	return out
}

// AddTile registers a tile without terrain metadata and probability 1.
// Transform flags in the alternate id are ignored.
func (ts *TileSet) AddTile(t grid.Tile) error {
	src, ok := ts.byID[t.Source]
	if !ok {
		return fmt.Errorf("%w: %d", ErrSource, t.Source)
	}
	key := keyOf(t)
	if _, ok := src.index[key]; ok {
		return fmt.Errorf("%w: duplicate tile %v/%d", ErrTile, key.Atlas, key.Alternate)
	}
	e := &tileEntry{key: key, probability: 1}
	src.tiles = append(src.tiles, e)
	src.index[key] = e
	return nil
}

// SetTileTerrain assigns terrain t to a tile and clears its peering.
func (ts *TileSet) SetTileTerrain(tile grid.Tile, t terrain.Type) error {
	e, err := ts.entry(tile)
	if err != nil {
		return err
	}
	if !ts.valid(t) {
		return fmt.Errorf("%w: %d", ErrIndex, t)
	}
	e.meta = &terrain.TileMeta{Type: t, Peering: terrain.Peering{}}
	return nil
}

// SetTilePeering replaces the accepted targets on side or corner n.
func (ts *TileSet) SetTilePeering(tile grid.Tile, n grid.Neighbor, targets ...terrain.Type) error {
	e, err := ts.terrainEntry(tile)
	if err != nil {
		return err
	}
	if !n.Valid() {
		return fmt.Errorf("%w: neighbor %d", ErrTarget, int(n))
	}
	for _, t := range targets {
		if err := ts.checkTarget(t); err != nil {
			return err
		}
	}
	e.meta.Peering[n] = slices.Clone(targets)
	return nil
}

// AddTilePeering adds one accepted target on side or corner n.
func (ts *TileSet) AddTilePeering(tile grid.Tile, n grid.Neighbor, target terrain.Type) error {
	e, err := ts.terrainEntry(tile)
	if err != nil {
		return err
	}
	if !n.Valid() {
		return fmt.Errorf("%w: neighbor %d", ErrTarget, int(n))
	}
	if err := ts.checkTarget(target); err != nil {
		return err
	}
	if !slices.Contains(e.meta.Peering[n], target) {
		e.meta.Peering[n] = append(e.meta.Peering[n], target)
	}
	return nil
}

// RemoveTilePeering drops one target from side or corner n. An emptied side
// is removed entirely.
func (ts *TileSet) RemoveTilePeering(tile grid.Tile, n grid.Neighbor, target terrain.Type) error {
	e, err := ts.terrainEntry(tile)
	if err != nil {
		return err
	}
	targets := slices.DeleteFunc(e.meta.Peering[n], func(t terrain.Type) bool { return t == target })
	if len(targets) == 0 {
		delete(e.meta.Peering, n)
		return nil
	}
	e.meta.Peering[n] = targets
	return nil
}

// SetTileSymmetry sets the symmetry class used to expand a tile.
func (ts *TileSet) SetTileSymmetry(tile grid.Tile, s terrain.Symmetry) error {
	e, err := ts.terrainEntry(tile)
	if err != nil {
		return err
	}
	if !s.Valid() {
		return fmt.Errorf("catalog: invalid symmetry %d", int(s))
	}
	e.meta.Symmetry = s
	return nil
}

// SetTileProbability sets a tile's selection weight.
func (ts *TileSet) SetTileProbability(tile grid.Tile, p float64) error {
	e, err := ts.entry(tile)
	if err != nil {
		return err
	}
	if p < 0 {
		return fmt.Errorf("catalog: negative probability %v", p)
	}
	e.probability = p
	return nil
}

func keyOf(t grid.Tile) tileKey {
	return tileKey{Atlas: t.Atlas, Alternate: t.Alternate &^ terrain.TransformMask}
}

func (ts *TileSet) entry(t grid.Tile) (*tileEntry, error) {
	src, ok := ts.byID[t.Source]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSource, t.Source)
	}
	e, ok := src.index[keyOf(t)]
	if !ok {
		return nil, fmt.Errorf("%w: %v/%d", ErrTile, t.Atlas, t.Alternate)
	}
	return e, nil
}

func (ts *TileSet) terrainEntry(t grid.Tile) (*tileEntry, error) {
	e, err := ts.entry(t)
	if err != nil {
		return nil, err
	}
	if e.meta == nil {
		return nil, fmt.Errorf("%w: %v/%d has no terrain", ErrTile, t.Atlas, t.Alternate)
	}
	return e, nil
}

func (ts *TileSet) checkTarget(t terrain.Type) error {
	if t == terrain.Empty || ts.valid(t) {
		return nil
	}
	return fmt.Errorf("%w: %d", ErrTarget, t)
}
