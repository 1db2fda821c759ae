package app

import (
	"errors"
	"flag"
	"maps"
	"slices"
	"strings"
	"testing"

	"autotile/internal/core"
	"autotile/internal/mapio"
	"autotile/internal/tileset"
	rng "autotile/pkg/core"
	"autotile/pkg/grid"
	"autotile/pkg/terrain"
)

func meadow(t *testing.T, w, h int) *Session {
	t.Helper()
	doc, err := tileset.Preset("meadow")
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(doc, w, h, rng.NewRNG(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBrushes(t *testing.T) {
	s := meadow(t, 8, 8)
	names := []string{}
	for _, b := range s.Brushes() {
		names = append(names, b.Name)
	}
	if got := strings.Join(names, ","); got != "Grass,Sand,Water,Flowers" {
		t.Fatalf("brushes = %s", got)
	}
	if b, _ := s.Brush(); b.Name != "Grass" {
		t.Fatalf("default brush = %+v", b)
	}
	s.NextBrush(-1)
	if b, _ := s.Brush(); b.Name != "Flowers" {
		t.Fatalf("wrapped brush = %+v", b)
	}
	if !s.SelectBrush(2) || s.SelectBrush(4) || s.SelectBrush(-1) {
		t.Fatal("SelectBrush by index")
	}
	if b, _ := s.Brush(); b.Name != "Water" {
		t.Fatalf("selected brush = %+v", b)
	}
}

func TestPaintAndErase(t *testing.T) {
	s := meadow(t, 8, 8)
	c := grid.Coord{X: 3, Y: 3}
	if !s.Paint(c) {
		t.Fatal("Paint failed")
	}
	grass, _ := s.Lookup("grass")
	if s.Resolver.GetCell(0, c) != grass {
		t.Fatal("painted cell lost its terrain")
	}
	if tile, _ := s.Map.Cell(0, c); tile.Atlas != (grid.Coord{X: 3, Y: 3}) {
		t.Fatalf("a lone grass cell should use the tuft tile, got %+v", tile)
	}
	if want := (terrain.Report{Rendered: 9, Snapshot: 25, Committed: 1, Skipped: 8}); s.last != want {
		t.Fatalf("report = %+v, want %+v", s.last, want)
	}

	if s.Paint(c) {
		t.Fatal("repainting the same terrain is a no-op")
	}
	if s.Paint(grid.Coord{X: 8, Y: 0}) {
		t.Fatal("painting outside the bounds must fail")
	}
	if !s.Erase(c) || s.Resolver.GetCell(0, c) != terrain.Empty {
		t.Fatal("Erase failed")
	}
	if s.Erase(c) {
		t.Fatal("erasing an empty cell is a no-op")
	}
}

func TestLoadMask(t *testing.T) {
	s := meadow(t, 1, 1)
	m := core.NewMask(4, 4)
	for i := range m.Cells() {
		m.Cells()[i] = 1
	}
	grass, _ := s.Lookup("Grass")
	empty, _ := s.Lookup("empty")

	rep, err := s.LoadMask(m, grass, empty)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Rendered != 16 || rep.Committed != 16 {
		t.Fatalf("report = %+v", rep)
	}
	corner, _ := s.Map.Cell(0, grid.Coord{})
	if corner != (grid.Tile{Source: 0, Atlas: grid.Coord{X: 0, Y: 0}}) {
		t.Fatalf("top-left corner = %+v", corner)
	}
	inner, _ := s.Map.Cell(0, grid.Coord{X: 1, Y: 1})
	if inner != (grid.Tile{Source: 0, Atlas: grid.Coord{X: 1, Y: 1}}) {
		t.Fatalf("interior = %+v", inner)
	}
	if s.Bounds() != grid.NewRect(0, 0, 4, 4) {
		t.Fatalf("bounds = %+v", s.Bounds())
	}
	if _, err := s.LoadMask(m, 0, empty); err == nil {
		t.Fatal("a category has no tiles to paint")
	}
}

func TestLoadPaintRoundTrip(t *testing.T) {
	s := meadow(t, 1, 1)
	src := "ggs\nwgg\n"
	p, err := mapio.ReadPaint(strings.NewReader(src), s.Doc.Legend)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := s.LoadPaint(p)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Rendered != 6 || rep.Committed != 6 {
		t.Fatalf("report = %+v", rep)
	}
	if got := s.Painting(); !maps.Equal(got.Cells, p.Cells) {
		t.Fatalf("painting = %v, want %v", got.Cells, p.Cells)
	}
	recs := s.Records()
	if len(recs) != 6 || recs[0].Terrain != "Grass" {
		t.Fatalf("records = %+v", recs)
	}
}

func TestLoadRejectsUnpaintableBeforeWriting(t *testing.T) {
	s := meadow(t, 1, 1)
	p, err := mapio.ReadPaint(strings.NewReader("gw\n"), s.Doc.Legend)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadPaint(p); err != nil {
		t.Fatal(err)
	}
	before := s.Painting()

	land, _ := s.Lookup("land")
	grass, _ := s.Lookup("grass")
	bad := mapio.NewPaint(5, 5)
	for x := 0; x < 5; x++ {
		bad.Cells[grid.Coord{X: x, Y: 0}] = grass
		bad.Cells[grid.Coord{X: x, Y: 1}] = land
	}
	if _, err := s.LoadPaint(bad); !errors.Is(err, ErrUnpaintable) || !strings.Contains(err.Error(), "Land") {
		t.Fatalf("LoadPaint with a category: got %v", err)
	}
	if _, err := s.LoadMask(core.NewMask(4, 4), land, grass); !errors.Is(err, ErrUnpaintable) {
		t.Fatalf("LoadMask with a category: got %v", err)
	}

	after := s.Painting()
	if s.Bounds() != grid.NewRect(0, 0, 2, 1) || !maps.Equal(after.Cells, before.Cells) {
		t.Fatalf("failed loads changed the map: bounds %+v cells %v", s.Bounds(), after.Cells)
	}
}

func TestReseedReproducesSelection(t *testing.T) {
	m := core.NewMask(10, 10)
	for y := 2; y < 8; y++ {
		for x := 2; x < 8; x++ {
			m.Cells()[m.Index(x, y)] = 1
		}
	}
	load := func(s *Session) []mapio.TileRecord {
		t.Helper()
		grass, _ := s.Lookup("grass")
		water, _ := s.Lookup("water")
		if _, err := s.LoadMask(m, grass, water); err != nil {
			t.Fatal(err)
		}
		return s.Records()
	}

	doc, err := tileset.Preset("meadow")
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := NewSession(doc, 1, 1, rng.NewRNG(9), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := load(fresh)

	s := meadow(t, 1, 1)
	load(s)
	s.Reseed(9)
	if got := load(s); !slices.Equal(got, want) {
		t.Fatalf("reseeded session differs from a fresh one:\n got %v\nwant %v", got, want)
	}
}

func TestReadouts(t *testing.T) {
	s := meadow(t, 4, 4)
	s.Paint(grid.Coord{X: 1, Y: 1})
	groups := s.Readouts()
	if len(groups) != 3 || groups[0].Name != "meadow" {
		t.Fatalf("groups = %+v", groups)
	}
	if got := groups[0].Items[0]; got.Value != "Grass [g]" {
		t.Fatalf("brush readout = %+v", got)
	}
	if got := groups[1].Items[2]; got.Label != "Committed" || got.Value != "1" {
		t.Fatalf("last update readout = %+v", got)
	}
}

func TestConfig(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-gen", "islands", "-gen-opts", "fill=0.5, steps = 2,flag", "-w", "20"}); err != nil {
		t.Fatal(err)
	}
	got := cfg.GeneratorConfig()
	want := map[string]string{"fill": "0.5", "steps": "2", "flag": "", "w": "20", "h": "32"}
	if !maps.Equal(got, want) {
		t.Fatalf("GeneratorConfig = %v, want %v", got, want)
	}
	if cfg.Generator != "islands" {
		t.Fatalf("gen = %q", cfg.Generator)
	}
}
