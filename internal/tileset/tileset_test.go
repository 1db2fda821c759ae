package tileset

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"autotile/pkg/grid"
	"autotile/pkg/terrain"
)

const small = `
version: "0.2"
shape: square
terrains:
  - name: Grass
    glyph: g
    categories: [Ground]
  - name: Ground
    kind: category
sources:
  - id: 2
    tiles:
      - atlas: [0, 1]
        terrain: Grass
        symmetry: mirror
        probability: 0.5
        peering:
          right_side: [Ground, empty]
          top_side: [0]
      - atlas: [4, 4]
`

func TestParseSmall(t *testing.T) {
	doc, err := Parse([]byte(small))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Geometry != (grid.Geometry{Shape: grid.Square}) {
		t.Fatalf("geometry = %+v", doc.Geometry)
	}
	if doc.Legend['g'] != 0 || len(doc.Legend) != 1 {
		t.Fatalf("legend = %v", doc.Legend)
	}

	ts := doc.TileSet
	grass, _ := ts.Terrain(0)
	if !slices.Equal(grass.Categories, []terrain.Type{1}) {
		t.Fatalf("forward category reference not resolved: %v", grass.Categories)
	}

	tile := grid.Tile{Source: 2, Atlas: grid.Coord{X: 0, Y: 1}}
	meta, ok := ts.TileMeta(tile)
	if !ok || meta.Type != 0 || meta.Symmetry != terrain.SymmetryMirror || meta.Probability != 0.5 {
		t.Fatalf("tile meta = %+v, %v", meta, ok)
	}
	if got := meta.Peering[grid.RightSide]; !slices.Equal(got, []terrain.Type{1, terrain.Empty}) {
		t.Fatalf("right side = %v", got)
	}
	if got := meta.Peering[grid.TopSide]; !slices.Equal(got, []terrain.Type{0}) {
		t.Fatalf("top side = %v", got)
	}
	plain, ok := ts.TileMeta(grid.Tile{Source: 2, Atlas: grid.Coord{X: 4, Y: 4}})
	if !ok || plain.Type != terrain.NonTerrain {
		t.Fatalf("plain tile = %+v, %v", plain, ok)
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"missing version", `terrains: []`, ErrInvalid},
		{"old version", "version: \"0.1\"\nterrains: []", ErrInvalid},
		{"unknown field", "version: \"0.2\"\nterrains: []\ncolour: red", ErrInvalid},
		{"bad kind", "version: \"0.2\"\nterrains:\n  - {name: A, kind: lava}", ErrInvalid},
		{"bad colour", "version: \"0.2\"\nterrains:\n  - {name: A, color: green}", ErrInvalid},
		{"short atlas", "version: \"0.2\"\nterrains: [{name: A}]\nsources:\n  - id: 0\n    tiles: [{atlas: [1]}]", ErrInvalid},
		{"unknown terrain", "version: \"0.2\"\nterrains: [{name: A}]\nsources:\n  - id: 0\n    tiles: [{atlas: [0, 0], terrain: B}]", ErrReference},
		{"unknown index", "version: \"0.2\"\nterrains: [{name: A}]\nsources:\n  - id: 0\n    tiles: [{atlas: [0, 0], terrain: 3}]", ErrReference},
		{"corner on a side matcher", "version: \"0.2\"\nterrains: [{name: A}]\nsources:\n  - id: 0\n    tiles: [{atlas: [0, 0], terrain: A, peering: {right_corner: [A]}}]", ErrInvalid},
		{"side on a vertex matcher", "version: \"0.2\"\nterrains: [{name: A, kind: match_vertices}]\nsources:\n  - id: 0\n    tiles: [{atlas: [0, 0], terrain: A, peering: {top_side: [A]}}]", ErrInvalid},
		{"duplicate glyph", "version: \"0.2\"\nterrains: [{name: A, glyph: x}, {name: B, glyph: x}]", ErrInvalid},
		{"painted category", "version: \"0.2\"\nterrains: [{name: A, kind: category, glyph: x}]", ErrInvalid},
		{"duplicate name", "version: \"0.2\"\nterrains: [{name: A}, {name: a}]", ErrInvalid},
		{"peering without terrain", "version: \"0.2\"\nterrains: [{name: A}]\nsources:\n  - id: 0\n    tiles: [{atlas: [0, 0], peering: {top_side: [A]}}]", ErrInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadAddsPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(p, []byte("version: 3"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "broken.yaml") {
		t.Fatalf("Load error should name the file, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v", err)
	}
}

func TestPresetsBuild(t *testing.T) {
	names := Presets()
	if len(names) < 3 {
		t.Fatalf("presets = %v", names)
	}
	for _, name := range names {
		doc, err := Preset(name)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if doc.Name != name {
			t.Fatalf("preset %s reports name %q", name, doc.Name)
		}
		if len(doc.TileSet.Tiles()) == 0 || len(doc.Legend) == 0 {
			t.Fatalf("preset %s is empty", name)
		}
		cache, rep := terrain.BuildCache(doc.TileSet)
		if rep.OutOfRange != 0 || rep.Unconstrained != 0 {
			t.Fatalf("preset %s skipped tiles: %+v", name, rep)
		}
		for glyph, typ := range doc.Legend {
			if len(cache[typ]) == 0 {
				t.Fatalf("preset %s: glyph %q paints a terrain without tiles", name, glyph)
			}
		}
	}
	if _, err := Preset("nope"); err == nil {
		t.Fatal("unknown preset should fail")
	}
}

func TestMeadowCategoryTargets(t *testing.T) {
	doc, err := Preset("meadow")
	if err != nil {
		t.Fatal(err)
	}
	land, _ := doc.TileSet.Lookup("land")
	grass, _ := doc.TileSet.Lookup("grass")
	sand, _ := doc.TileSet.Lookup("sand")
	flowers, _ := doc.TileSet.Lookup("flowers")

	cache, _ := terrain.BuildCache(doc.TileSet)
	centre := cache[grass][0]
	want := []terrain.Type{grass, sand, flowers}
	if got := centre.Peering[grid.TopSide]; !slices.Equal(got, want) {
		t.Fatalf("Land should expand to its members %v, got %v", want, got)
	}
	if len(cache[land]) != 0 {
		t.Fatal("a category has no tiles")
	}
}
