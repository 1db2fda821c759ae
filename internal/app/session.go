// Package app drives an autotiled map for the commands: a Session owns the
// map, its resolver and the paint brushes; the ebiten Game renders a Session.
package app

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"

	"autotile/internal/core"
	"autotile/internal/mapio"
	"autotile/internal/render"
	"autotile/internal/tileset"
	rng "autotile/pkg/core"
	"autotile/pkg/grid"
	"autotile/pkg/terrain"
	"autotile/pkg/tilemap"
)

// ErrUnpaintable reports a terrain with no tiles to place.
var ErrUnpaintable = errors.New("terrain has no tiles")

// Brush is a paintable terrain.
type Brush struct {
	Glyph rune
	Type  terrain.Type
	Name  string
}

// Session is one editable map.
type Session struct {
	Doc      *tileset.Document
	Map      *tilemap.Map
	Resolver *terrain.Resolver
	Layer    int

	bounds  grid.Rect
	brushes []Brush
	brush   int

	last    terrain.Report
	total   terrain.Report
	strokes int
}

// NewSession builds a w*h map for doc and initialises its resolver.
func NewSession(doc *tileset.Document, w, h int, src terrain.Source, logger *log.Logger) (*Session, error) {
	m := tilemap.New(doc.Geometry, doc.TileSet, 1)
	r := terrain.New(src)
	r.SetLogger(logger)
	if err := r.Init(m); err != nil {
		return nil, fmt.Errorf("init resolver: %w", err)
	}
	s := &Session{
		Doc:      doc,
		Map:      m,
		Resolver: r,
		bounds:   grid.NewRect(0, 0, max(w, 1), max(h, 1)),
	}
	for g, t := range doc.Legend {
		entry, err := doc.TileSet.Terrain(t)
		if err != nil {
			continue
		}
		s.brushes = append(s.brushes, Brush{Glyph: g, Type: t, Name: entry.Name})
	}
	slices.SortFunc(s.brushes, func(a, b Brush) int {
		if a.Type != b.Type {
			return int(a.Type) - int(b.Type)
		}
		return int(a.Glyph) - int(b.Glyph)
	})
	return s, nil
}

// Bounds returns the editable area.
func (s *Session) Bounds() grid.Rect { return s.bounds }

// Brushes lists the paintable terrains in id order.
func (s *Session) Brushes() []Brush { return s.brushes }

// Brush returns the selected brush, or false when the tile set has none.
func (s *Session) Brush() (Brush, bool) {
	if len(s.brushes) == 0 {
		return Brush{}, false
	}
	return s.brushes[s.brush], true
}

// NextBrush moves the selection by delta, wrapping around.
func (s *Session) NextBrush(delta int) {
	n := len(s.brushes)
	if n == 0 {
		return
	}
	s.brush = ((s.brush+delta)%n + n) % n
}

// SelectBrush selects the i-th brush.
func (s *Session) SelectBrush(i int) bool {
	if i < 0 || i >= len(s.brushes) {
		return false
	}
	s.brush = i
	return true
}

// Lookup resolves a terrain name; "empty" is terrain.Empty.
func (s *Session) Lookup(name string) (terrain.Type, error) {
	if strings.EqualFold(name, "empty") {
		return terrain.Empty, nil
	}
	if t, ok := s.Doc.TileSet.Lookup(name); ok {
		return t, nil
	}
	return terrain.Error, fmt.Errorf("unknown terrain %q", name)
}

// Paint sets c to the selected brush and re-resolves it with its neighbours.
func (s *Session) Paint(c grid.Coord) bool {
	b, ok := s.Brush()
	if !ok {
		return false
	}
	return s.stroke(c, b.Type)
}

// Erase clears c and re-resolves its neighbours.
func (s *Session) Erase(c grid.Coord) bool { return s.stroke(c, terrain.Empty) }

func (s *Session) stroke(c grid.Coord, t terrain.Type) bool {
	if !s.bounds.HasPoint(c) {
		return false
	}
	if s.Resolver.GetCell(s.Layer, c) == t {
		return false
	}
	if !s.Resolver.SetCell(s.Layer, c, t) {
		return false
	}
	s.record(s.Resolver.UpdateTerrainCell(s.Layer, c, true))
	s.strokes++
	return true
}

func (s *Session) record(rep terrain.Report) {
	s.last = rep
	s.total.Add(rep)
}

// LoadPaint replaces the map with p and autotiles the painted area.
func (s *Session) LoadPaint(p *mapio.Paint) (terrain.Report, error) {
	groups := p.ByType()
	types := make([]terrain.Type, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	slices.Sort(types)
	if err := s.checkPaintable(types...); err != nil {
		return terrain.Report{}, err
	}
	s.Map.Clear(s.Layer)
	for _, t := range types {
		s.Resolver.SetCells(s.Layer, groups[t], t)
	}
	s.bounds = grid.NewRect(0, 0, max(p.Width, 1), max(p.Height, 1))
	return s.refresh(), nil
}

// LoadMask paints solid on every set cell of m and open elsewhere, then
// autotiles the whole mask.
func (s *Session) LoadMask(m *core.Mask, solid, open terrain.Type) (terrain.Report, error) {
	if err := s.checkPaintable(solid, open); err != nil {
		return terrain.Report{}, err
	}
	s.Map.Clear(s.Layer)
	s.Resolver.SetCells(s.Layer, m.Coords(1), solid)
	s.Resolver.SetCells(s.Layer, m.Coords(0), open)
	s.bounds = grid.NewRect(0, 0, m.W, m.H)
	return s.refresh(), nil
}

// checkPaintable fails on the first type that cannot be painted, before
// anything is written.
func (s *Session) checkPaintable(types ...terrain.Type) error {
	cache := s.Resolver.Cache()
	for _, t := range types {
		if t == terrain.Empty {
			continue
		}
		if _, ok := s.Resolver.Kind(t); !ok || len(cache[t]) == 0 {
			return fmt.Errorf("%w: %s", ErrUnpaintable, s.typeName(t))
		}
	}
	return nil
}

func (s *Session) typeName(t terrain.Type) string {
	if entry, err := s.Map.TileSet().Terrain(t); err == nil {
		return entry.Name
	}
	return fmt.Sprint(t)
}

// Reseed restarts tile selection from seed, so a regenerated map picks its
// variants the same way a fresh session with that seed would.
func (s *Session) Reseed(seed int64) {
	s.Resolver.SetSource(rng.NewRNG(seed))
}

// Clear erases the map.
func (s *Session) Clear() {
	s.Map.Clear(s.Layer)
	s.last = terrain.Report{}
}

func (s *Session) refresh() terrain.Report {
	rep := s.Resolver.UpdateTerrainArea(s.Layer, s.bounds, false)
	s.record(rep)
	return rep
}

// View describes cell (x, y) of the editable area for the rasteriser.
func (s *Session) View(x, y int) render.CellView {
	c := s.bounds.Position.Add(grid.Coord{X: x, Y: y})
	return render.View(s.Resolver, s.Doc.TileSet, s.Map, s.Layer, c)
}

// Painting returns the terrain painting of the editable area.
func (s *Session) Painting() *mapio.Paint {
	p := mapio.NewPaint(s.bounds.Size.X, s.bounds.Size.Y)
	for _, c := range s.Map.UsedCells(s.Layer) {
		if !s.bounds.HasPoint(c) {
			continue
		}
		if t := s.Resolver.GetCell(s.Layer, c); t >= 0 {
			p.Cells[c.Add(grid.Coord{X: -s.bounds.Position.X, Y: -s.bounds.Position.Y})] = t
		}
	}
	return p
}

// Records lists the resolved tiles with their terrain names.
func (s *Session) Records() []mapio.TileRecord {
	return mapio.Records(s.Map, func(layer int, c grid.Coord) string {
		t := s.Resolver.GetCell(layer, c)
		if entry, err := s.Map.TileSet().Terrain(t); err == nil {
			return entry.Name
		}
		return ""
	})
}

// Readouts implements core.ReadoutProvider.
func (s *Session) Readouts() []core.ReadoutGroup {
	brush := "none"
	if b, ok := s.Brush(); ok {
		brush = fmt.Sprintf("%s [%c]", b.Name, b.Glyph)
	}
	name := s.Doc.Name
	if name == "" {
		name = "tileset"
	}
	return []core.ReadoutGroup{
		{Name: name, Items: []core.Readout{
			{Label: "Brush", Value: brush},
			{Label: "Shape", Value: s.Doc.Geometry.Shape.String()},
			{Label: "Placements", Value: itoa(s.Resolver.Cache().Size())},
			{Label: "Strokes", Value: itoa(s.strokes)},
		}},
		reportGroup("Last update", s.last),
		reportGroup("Total", s.total),
	}
}

func reportGroup(name string, rep terrain.Report) core.ReadoutGroup {
	return core.ReadoutGroup{Name: name, Items: []core.Readout{
		{Label: "Rendered", Value: itoa(rep.Rendered)},
		{Label: "Snapshot", Value: itoa(rep.Snapshot)},
		{Label: "Committed", Value: itoa(rep.Committed)},
		{Label: "Skipped", Value: itoa(rep.Skipped)},
	}}
}

func itoa(v int) string { return strconv.Itoa(v) }
