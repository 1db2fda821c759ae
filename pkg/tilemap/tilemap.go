// Package tilemap is a sparse, layered, in-memory tile map. It is the host
// grid used by the commands and tests; a *Map satisfies terrain.Map.
package tilemap

import (
	"slices"

	"autotile/pkg/catalog"
	"autotile/pkg/grid"
	"autotile/pkg/terrain"
)

// Map stores one tile per cell and layer.
type Map struct {
	geom   grid.Geometry
	tiles  *catalog.TileSet
	layers []map[grid.Coord]grid.Tile
}

// New allocates a map with at least one layer.
func New(geom grid.Geometry, tiles *catalog.TileSet, layers int) *Map {
	if layers <= 0 {
		layers = 1
	}
	m := &Map{geom: geom, tiles: tiles, layers: make([]map[grid.Coord]grid.Tile, layers)}
	for i := range m.layers {
		m.layers[i] = map[grid.Coord]grid.Tile{}
	}
	return m
}

// Catalog implements terrain.Map.
func (m *Map) Catalog() terrain.Catalog {
	if m.tiles == nil {
		return nil
	}
	return m.tiles
}

// TileSet returns the attached tile set, possibly nil.
func (m *Map) TileSet() *catalog.TileSet { return m.tiles }

// Geometry implements terrain.Map.
func (m *Map) Geometry() grid.Geometry { return m.geom }

// Layers implements terrain.Map.
func (m *Map) Layers() int { return len(m.layers) }

func (m *Map) layer(l int) map[grid.Coord]grid.Tile {
	if l < 0 || l >= len(m.layers) {
		return nil
	}
	return m.layers[l]
}

// Cell implements terrain.Map.
func (m *Map) Cell(layer int, c grid.Coord) (grid.Tile, bool) {
	t, ok := m.layer(layer)[c]
	return t, ok
}

// SetCell implements terrain.Map. The erase tile clears the cell.
func (m *Map) SetCell(layer int, c grid.Coord, t grid.Tile) {
	l := m.layer(layer)
	if l == nil {
		return
	}
	if t.IsEmpty() {
		delete(l, c)
		return
	}
	l[c] = t
}

// EraseCell implements terrain.Map.
func (m *Map) EraseCell(layer int, c grid.Coord) {
	if l := m.layer(layer); l != nil {
		delete(l, c)
	}
}

// Clear empties a layer.
func (m *Map) Clear(layer int) {
	if l := m.layer(layer); l != nil {
		clear(l)
	}
}

// UsedCells returns the occupied cells of a layer ordered by X, then Y.
func (m *Map) UsedCells(layer int) []grid.Coord {
	l := m.layer(layer)
	out := make([]grid.Coord, 0, len(l))
	for c := range l {
		out = append(out, c)
	}
	slices.SortFunc(out, grid.Compare)
	return out
}

// UsedRect returns the bounding rectangle of a layer's occupied cells.
func (m *Map) UsedRect(layer int) grid.Rect {
	var r grid.Rect
	for c := range m.layer(layer) {
		r = r.Merge(c)
	}
	return r
}
