// Package tileset loads terrain tile sets from YAML documents.
//
// A document names the map geometry, the terrain catalog and the atlas tiles
// carrying terrain metadata. Documents are checked against an embedded JSON
// Schema before they are decoded, then built through the catalog API so the
// same validation applies as for programmatic edits.
package tileset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"autotile/pkg/catalog"
	"autotile/pkg/grid"
	"autotile/pkg/terrain"
)

var (
	// ErrInvalid wraps schema violations.
	ErrInvalid = errors.New("tileset: invalid document")
	// ErrReference is returned for terrain references that do not resolve.
	ErrReference = errors.New("tileset: unknown terrain reference")
)

//go:embed schema.json
var schemaJSON string

var docSchema = jsonschema.MustCompileString("tileset.schema.json", schemaJSON)

// Document is a loaded tile set.
type Document struct {
	Name     string
	TileSet  *catalog.TileSet
	Geometry grid.Geometry
	// Legend maps paint-map glyphs to terrain types.
	Legend map[rune]terrain.Type
}

type fileDoc struct {
	Version    string        `yaml:"version"`
	Name       string        `yaml:"name"`
	Shape      string        `yaml:"shape"`
	OffsetAxis string        `yaml:"offset_axis"`
	Terrains   []fileTerrain `yaml:"terrains"`
	Sources    []fileSource  `yaml:"sources"`
}

type fileTerrain struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Color      string `yaml:"color"`
	Categories []ref  `yaml:"categories"`
	Glyph      string `yaml:"glyph"`
}

type fileSource struct {
	ID    int        `yaml:"id"`
	Tiles []fileTile `yaml:"tiles"`
}

type fileTile struct {
	Atlas       []int            `yaml:"atlas"`
	Alternate   int              `yaml:"alternate"`
	Probability *float64         `yaml:"probability"`
	Terrain     *ref             `yaml:"terrain"`
	Symmetry    string           `yaml:"symmetry"`
	Peering     map[string][]ref `yaml:"peering"`
}

// ref is a terrain reference: a name, "empty", or a numeric id.
type ref struct {
	name  string
	index int
	isNum bool
}

func (r *ref) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: terrain reference must be a scalar", n.Line)
	}
	if n.Tag == "!!int" {
		v, err := strconv.Atoi(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		r.index, r.isNum = v, true
		return nil
	}
	r.name = n.Value
	return nil
}

func (r ref) String() string {
	if r.isNum {
		return strconv.Itoa(r.index)
	}
	return r.name
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse validates and builds a document.
func Parse(data []byte) (*Document, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	var fd fileDoc
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("tileset: %w", err)
	}
	return build(fd)
}

// validate checks the YAML document against the schema. The schema library
// works on JSON values, so the decoded tree is round-tripped through JSON.
func validate(data []byte) error {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("tileset: %w", err)
	}
	js, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var inst any
	if err := json.Unmarshal(js, &inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := docSchema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func build(fd fileDoc) (*Document, error) {
	if fd.Version != terrain.MetaVersion {
		return nil, fmt.Errorf("%w: version %q, want %q", ErrInvalid, fd.Version, terrain.MetaVersion)
	}
	shape, err := grid.ParseShape(fd.Shape)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	axis, err := grid.ParseAxis(fd.OffsetAxis)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	doc := &Document{
		Name:     fd.Name,
		TileSet:  catalog.New(),
		Geometry: grid.Geometry{Shape: shape, Axis: axis},
		Legend:   map[rune]terrain.Type{},
	}
	ts := doc.TileSet

	// Terrains are added first without categories so that forward references
	// between entries resolve.
	for i, ft := range fd.Terrains {
		kind := terrain.MatchTiles
		if ft.Kind != "" {
			if kind, err = terrain.ParseKind(ft.Kind); err != nil {
				return nil, fmt.Errorf("%w: terrain %q: %v", ErrInvalid, ft.Name, err)
			}
		}
		c, err := parseColor(ft.Color, i)
		if err != nil {
			return nil, fmt.Errorf("%w: terrain %q: %v", ErrInvalid, ft.Name, err)
		}
		if _, dup := ts.Lookup(ft.Name); dup {
			return nil, fmt.Errorf("%w: duplicate terrain %q", ErrInvalid, ft.Name)
		}
		if _, err := ts.AddTerrain(ft.Name, c, kind); err != nil {
			return nil, fmt.Errorf("tileset: %w", err)
		}
	}
	for i, ft := range fd.Terrains {
		id := terrain.Type(i)
		entry, _ := ts.Terrain(id)
		if len(ft.Categories) > 0 {
			cats := make([]terrain.Type, 0, len(ft.Categories))
			for _, r := range ft.Categories {
				c, err := resolve(ts, r)
				if err != nil {
					return nil, err
				}
				cats = append(cats, c)
			}
			if err := ts.SetTerrain(id, entry.Name, entry.Color, entry.Kind, cats...); err != nil {
				return nil, fmt.Errorf("tileset: terrain %q: %w", ft.Name, err)
			}
		}
		if ft.Glyph != "" {
			g, _ := utf8.DecodeRuneInString(ft.Glyph)
			if entry.Kind == terrain.Category {
				return nil, fmt.Errorf("%w: category %q cannot be painted", ErrInvalid, ft.Name)
			}
			if prev, dup := doc.Legend[g]; dup {
				return nil, fmt.Errorf("%w: glyph %q used by terrain %d and %d", ErrInvalid, g, prev, id)
			}
			doc.Legend[g] = id
		}
	}

	for _, src := range fd.Sources {
		if err := ts.AddSource(src.ID); err != nil {
			return nil, fmt.Errorf("tileset: %w", err)
		}
		for _, ft := range src.Tiles {
			if err := addTile(doc, src.ID, ft); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func addTile(doc *Document, source int, ft fileTile) error {
	ts := doc.TileSet
	tile := grid.Tile{Source: source, Atlas: grid.Coord{X: ft.Atlas[0], Y: ft.Atlas[1]}, Alternate: ft.Alternate}
	if err := ts.AddTile(tile); err != nil {
		return fmt.Errorf("tileset: %w", err)
	}
	if ft.Probability != nil {
		if err := ts.SetTileProbability(tile, *ft.Probability); err != nil {
			return fmt.Errorf("tileset: %w", err)
		}
	}
	if ft.Terrain == nil {
		if len(ft.Peering) > 0 || ft.Symmetry != "" {
			return fmt.Errorf("%w: tile %v has peering but no terrain", ErrInvalid, tile.Atlas)
		}
		return nil
	}

	t, err := resolve(ts, *ft.Terrain)
	if err != nil {
		return err
	}
	if err := ts.SetTileTerrain(tile, t); err != nil {
		return fmt.Errorf("tileset: tile %v: %w", tile.Atlas, err)
	}
	sym, err := terrain.ParseSymmetry(ft.Symmetry)
	if err != nil {
		return fmt.Errorf("%w: tile %v: %v", ErrInvalid, tile.Atlas, err)
	}
	if err := ts.SetTileSymmetry(tile, sym); err != nil {
		return fmt.Errorf("tileset: %w", err)
	}

	entry, _ := ts.Terrain(t)
	for key, refs := range ft.Peering {
		n, err := grid.ParseNeighbor(key)
		if err != nil {
			return fmt.Errorf("%w: tile %v: %v", ErrInvalid, tile.Atlas, err)
		}
		if !allowed(doc.Geometry, entry.Kind, n) {
			return fmt.Errorf("%w: tile %v: %s is not a %s peering bit on a %s map",
				ErrInvalid, tile.Atlas, n, entry.Kind, doc.Geometry.Shape)
		}
		targets := make([]terrain.Type, 0, len(refs))
		for _, r := range refs {
			target, err := resolve(ts, r)
			if err != nil {
				return err
			}
			targets = append(targets, target)
		}
		if err := ts.SetTilePeering(tile, n, targets...); err != nil {
			return fmt.Errorf("tileset: tile %v: %w", tile.Atlas, err)
		}
	}
	return nil
}

func allowed(g grid.Geometry, kind terrain.Kind, n grid.Neighbor) bool {
	if kind == terrain.MatchVertices {
		return g.HasCorner(n)
	}
	return g.Has(n)
}

func resolve(ts *catalog.TileSet, r ref) (terrain.Type, error) {
	if r.isNum {
		if r.index == int(terrain.Empty) {
			return terrain.Empty, nil
		}
		if r.index < 0 || r.index >= ts.Count() {
			return 0, fmt.Errorf("%w: %s", ErrReference, r)
		}
		return terrain.Type(r.index), nil
	}
	if strings.EqualFold(r.name, "empty") {
		return terrain.Empty, nil
	}
	if t, ok := ts.Lookup(r.name); ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrReference, r.name)
}

// palette for terrains without an explicit colour
var fallbackColors = []color.RGBA{
	{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	{R: 0x21, G: 0x96, B: 0xf3, A: 0xff},
	{R: 0xff, G: 0xc1, B: 0x07, A: 0xff},
	{R: 0x79, G: 0x55, B: 0x48, A: 0xff},
	{R: 0x9c, G: 0x27, B: 0xb0, A: 0xff},
	{R: 0x60, G: 0x7d, B: 0x8b, A: 0xff},
}

func parseColor(s string, index int) (color.RGBA, error) {
	if s == "" {
		return fallbackColors[index%len(fallbackColors)], nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
