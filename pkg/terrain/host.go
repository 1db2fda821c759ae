package terrain

import "autotile/pkg/grid"

// MetaVersion is the catalog format understood by this package.
const MetaVersion = "0.2"

// TerrainDef is the part of a catalog entry the resolver needs.
type TerrainDef struct {
	Name       string
	Kind       Kind
	Categories []Type
}

// TileMeta is the terrain metadata authored on one tile. Peering targets are
// raw catalog ids: terrain ids, category ids or Empty.
type TileMeta struct {
	Type        Type
	Peering     Peering
	Symmetry    Symmetry
	Probability float64
}

// TileVariant pairs a tile with its metadata.
type TileVariant struct {
	Tile grid.Tile
	Meta TileMeta
}

// Catalog is the authored terrain and tile metadata store.
type Catalog interface {
	Version() string
	Terrains() []TerrainDef
	// Tiles lists every tile carrying terrain metadata, in scan order.
	Tiles() []TileVariant
	// TileMeta looks up a tile, ignoring transform flags in the alternate id.
	// ok is false when the catalog has no such tile; a tile without terrain
	// metadata reports NonTerrain.
	TileMeta(t grid.Tile) (meta TileMeta, ok bool)
}

// Map is the host grid: geometry plus layered cell storage.
type Map interface {
	// Catalog returns nil when no catalog is attached.
	Catalog() Catalog
	Geometry() grid.Geometry
	Layers() int
	Cell(layer int, c grid.Coord) (grid.Tile, bool)
	SetCell(layer int, c grid.Coord, t grid.Tile)
	EraseCell(layer int, c grid.Coord)
}
