package terrain

import (
	"autotile/pkg/grid"
)

type fakeCatalog struct {
	version  string
	terrains []TerrainDef
	tiles    []TileVariant
	plain    []grid.Tile // tiles without terrain metadata
}

func newFakeCatalog(defs ...TerrainDef) *fakeCatalog {
	return &fakeCatalog{version: MetaVersion, terrains: defs}
}

func (c *fakeCatalog) Version() string        { return c.version }
func (c *fakeCatalog) Terrains() []TerrainDef { return c.terrains }
func (c *fakeCatalog) Tiles() []TileVariant   { return c.tiles }

func (c *fakeCatalog) TileMeta(t grid.Tile) (TileMeta, bool) {
	t.Alternate &^= TransformMask
	for _, tv := range c.tiles {
		if tv.Tile == t {
			return tv.Meta, true
		}
	}
	for _, p := range c.plain {
		if p == t {
			return TileMeta{Type: NonTerrain, Probability: 1}, true
		}
	}
	return TileMeta{}, false
}

// add registers a tile at atlas (x, 0) of source 0 and returns it.
func (c *fakeCatalog) add(x int, typ Type, peering Peering, sym Symmetry, prob float64) grid.Tile {
	tile := grid.Tile{Source: 0, Atlas: grid.Coord{X: x}}
	c.tiles = append(c.tiles, TileVariant{
		Tile: tile,
		Meta: TileMeta{Type: typ, Peering: peering, Symmetry: sym, Probability: prob},
	})
	return tile
}

type fakeMap struct {
	geom   grid.Geometry
	cat    Catalog
	layers int
	cells  map[int]map[grid.Coord]grid.Tile
}

func newFakeMap(geom grid.Geometry, cat Catalog) *fakeMap {
	return &fakeMap{geom: geom, cat: cat, layers: 1, cells: map[int]map[grid.Coord]grid.Tile{0: {}}}
}

func (m *fakeMap) Catalog() Catalog        { return m.cat }
func (m *fakeMap) Geometry() grid.Geometry { return m.geom }
func (m *fakeMap) Layers() int             { return m.layers }

func (m *fakeMap) Cell(layer int, c grid.Coord) (grid.Tile, bool) {
	t, ok := m.cells[layer][c]
	return t, ok
}

func (m *fakeMap) SetCell(layer int, c grid.Coord, t grid.Tile) {
	if t.IsEmpty() {
		m.EraseCell(layer, c)
		return
	}
	m.cells[layer][c] = t
}

func (m *fakeMap) EraseCell(layer int, c grid.Coord) { delete(m.cells[layer], c) }

// scripted replays fixed draws and fails the test when it runs dry.
type scripted struct {
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scripted source: no float draws left")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scripted) IntN(n int) int {
	if len(s.ints) == 0 {
		panic("scripted source: no int draws left")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// all8 constrains every square neighbour to targets.
func all8(targets ...Type) Peering {
	p := Peering{}
	for _, n := range (grid.Geometry{Shape: grid.Square}).Peering() {
		p[n] = targets
	}
	return p
}
