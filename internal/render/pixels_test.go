package render

import (
	"image/color"
	"testing"

	"autotile/pkg/catalog"
	"autotile/pkg/grid"
	"autotile/pkg/terrain"
)

func pixel(buf []byte, stride, x, y int) color.RGBA {
	i := y*stride + x*4
	return color.RGBA{R: buf[i], G: buf[i+1], B: buf[i+2], A: buf[i+3]}
}

func testPalette(t *testing.T) Palette {
	t.Helper()
	ts := catalog.New()
	if _, err := ts.AddTerrain("Grass", color.RGBA{G: 200, A: 255}, terrain.MatchTiles); err != nil {
		t.Fatal(err)
	}
	if _, err := ts.AddTerrain("Water", color.RGBA{B: 200, A: 255}, terrain.MatchTiles); err != nil {
		t.Fatal(err)
	}
	return NewPalette(ts)
}

func TestPaletteColor(t *testing.T) {
	pal := testPalette(t)
	if pal.Color(terrain.Empty) != pal.Background {
		t.Fatal("empty should be background")
	}
	if pal.Color(terrain.NonTerrain) != pal.Foreign || pal.Color(7) != pal.Foreign {
		t.Fatal("unknown ids should be foreign")
	}
	if pal.Color(1) != (color.RGBA{B: 200, A: 255}) {
		t.Fatalf("water = %v", pal.Color(1))
	}
}

func TestFillCellsDetail(t *testing.T) {
	pal := testPalette(t)
	const cell = 6
	buf := make([]byte, 2*cell*cell*4)
	stride := 2 * cell * 4
	view := func(x, y int) CellView {
		if x == 1 {
			return CellView{Type: terrain.Empty}
		}
		return CellView{Type: 0, Peering: terrain.Peering{grid.RightSide: {1}}}
	}

	FillCells(buf, 2, 1, cell, true, view, pal)

	grass := pal.Color(0)
	if got := pixel(buf, stride, 2, 2); got != grass {
		t.Fatalf("centre = %v, want %v", got, grass)
	}
	if got, want := pixel(buf, stride, 5, 3), shade(pal.Color(1)); got != want {
		t.Fatalf("right side mark = %v, want %v", got, want)
	}
	if got := pixel(buf, stride, 0, 0); got != grass {
		t.Fatalf("unconstrained corner = %v", got)
	}
	if got := pixel(buf, stride, cell+1, 1); got != pal.Background {
		t.Fatalf("empty cell = %v", got)
	}

	FillCells(buf, 2, 1, cell, false, view, pal)
	if got := pixel(buf, stride, 5, 3); got != grass {
		t.Fatalf("detail off should draw flat cells, got %v", got)
	}
}
