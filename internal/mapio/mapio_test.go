package mapio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"autotile/pkg/grid"
	"autotile/pkg/terrain"
	"autotile/pkg/tilemap"
)

var legend = map[rune]terrain.Type{'g': 0, 'w': 1, 'G': 0}

func TestReadPaint(t *testing.T) {
	src := "gg.w\r\n g\n\nwww\n"
	p, err := ReadPaint(strings.NewReader(src), legend)
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 4 || p.Height != 4 {
		t.Fatalf("size = %dx%d", p.Width, p.Height)
	}
	groups := p.ByType()
	wantGrass := []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	if !slices.Equal(groups[0], wantGrass) {
		t.Fatalf("grass = %v", groups[0])
	}
	wantWater := []grid.Coord{{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 0}}
	if !slices.Equal(groups[1], wantWater) {
		t.Fatalf("water = %v", groups[1])
	}

	_, err = ReadPaint(strings.NewReader("g\ngx"), legend)
	if err == nil || !strings.Contains(err.Error(), "line 2 col 2") {
		t.Fatalf("unknown glyph error = %v", err)
	}
}

func TestWritePaintRoundTrip(t *testing.T) {
	src := "Gg.\n.ww\n"
	p, err := ReadPaint(strings.NewReader(src), legend)
	if err != nil {
		t.Fatal(err)
	}
	p.Cells[grid.Coord{X: 0, Y: 1}] = 7

	var buf bytes.Buffer
	if err := WritePaint(&buf, p, legend); err != nil {
		t.Fatal(err)
	}
	// 'G' sorts before 'g' and wins for grass
	if got, want := buf.String(), "GG.\n?ww\n"; got != want {
		t.Fatalf("WritePaint = %q, want %q", got, want)
	}
}

func sampleMap() *tilemap.Map {
	m := tilemap.New(grid.Geometry{}, nil, 2)
	m.SetCell(0, grid.Coord{X: 2, Y: 1}, grid.Tile{Source: 0, Atlas: grid.Coord{X: 1, Y: 1}})
	m.SetCell(0, grid.Coord{X: -1, Y: 0}, grid.Tile{Source: 0, Atlas: grid.Coord{X: 1, Y: 0}, Alternate: 0x5000})
	m.SetCell(1, grid.Coord{X: 0, Y: 0}, grid.Tile{Source: 3, Atlas: grid.Coord{X: 2, Y: 2}, Alternate: 1})
	return m
}

func TestTilesRoundTrip(t *testing.T) {
	for _, name := range []string{"tiles.jsonl", "tiles.jsonl.zst"} {
		t.Run(name, func(t *testing.T) {
			m := sampleMap()
			recs := Records(m, func(layer int, c grid.Coord) string {
				if layer == 0 {
					return "grass"
				}
				return ""
			})
			if len(recs) != 3 || recs[0].X != -1 || recs[2].Layer != 1 {
				t.Fatalf("records = %+v", recs)
			}

			path := filepath.Join(t.TempDir(), name)
			if err := WriteTiles(path, recs); err != nil {
				t.Fatal(err)
			}
			got, err := ReadTiles(path)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, recs) {
				t.Fatalf("read back %+v, want %+v", got, recs)
			}

			out := tilemap.New(grid.Geometry{}, nil, 2)
			if err := Apply(out, got); err != nil {
				t.Fatal(err)
			}
			for l := 0; l < 2; l++ {
				if !slices.Equal(out.UsedCells(l), m.UsedCells(l)) {
					t.Fatalf("layer %d cells differ", l)
				}
			}
		})
	}
}

func TestCompressedFileIsZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.zst")
	if err := WriteTiles(path, Records(sampleMap(), nil)); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	magic := []byte{0x28, 0xb5, 0x2f, 0xfd}
	if !bytes.HasPrefix(raw, magic) {
		t.Fatalf("missing zstd frame magic: % x", raw[:min(len(raw), 4)])
	}
}

func TestApplyRejectsBadLayer(t *testing.T) {
	m := tilemap.New(grid.Geometry{}, nil, 1)
	err := Apply(m, []TileRecord{{Layer: 2}})
	if !errors.Is(err, ErrLayer) {
		t.Fatalf("got %v", err)
	}
	if _, err := DecodeTiles(strings.NewReader("{\"layer\":0}\nnot json\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("decode error = %v", err)
	}
}
