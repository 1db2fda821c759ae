// Package catalog stores terrain definitions and per-tile terrain metadata.
// A *TileSet satisfies terrain.Catalog.
package catalog

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"autotile/pkg/terrain"
)

var (
	ErrIndex    = errors.New("catalog: terrain index out of range")
	ErrName     = errors.New("catalog: terrain name must not be empty")
	ErrKind     = errors.New("catalog: invalid terrain kind")
	ErrCategory = errors.New("catalog: invalid category")
)

// Terrain is one catalog entry.
type Terrain struct {
	Name       string
	Color      color.RGBA
	Kind       terrain.Kind
	Categories []terrain.Type
}

// Category is a catalog entry of kind terrain.Category.
type Category struct {
	ID    terrain.Type
	Name  string
	Color color.RGBA
}

// Count returns the number of terrains.
func (ts *TileSet) Count() int { return len(ts.terrains) }

// Terrain returns a copy of entry i.
func (ts *TileSet) Terrain(i terrain.Type) (Terrain, error) {
	if !ts.valid(i) {
		return Terrain{}, fmt.Errorf("%w: %d", ErrIndex, i)
	}
	t := ts.terrains[i]
	t.Categories = slices.Clone(t.Categories)
	return t, nil
}

// Lookup finds a terrain by name, case-insensitively.
func (ts *TileSet) Lookup(name string) (terrain.Type, bool) {
	for i, t := range ts.terrains {
		if strings.EqualFold(t.Name, name) {
			return terrain.Type(i), true
		}
	}
	return terrain.Error, false
}

// Categories lists the category entries in catalog order.
func (ts *TileSet) Categories() []Category {
	var out []Category
	for i, t := range ts.terrains {
		if t.Kind == terrain.Category {
			out = append(out, Category{ID: terrain.Type(i), Name: t.Name, Color: t.Color})
		}
	}
	return out
}

// AddTerrain appends a terrain and returns its id.
func (ts *TileSet) AddTerrain(name string, c color.RGBA, kind terrain.Kind, categories ...terrain.Type) (terrain.Type, error) {
	t := Terrain{Name: name, Color: c, Kind: kind, Categories: slices.Clone(categories)}
	if err := ts.validate(t, terrain.Type(len(ts.terrains))); err != nil {
		return terrain.Error, err
	}
	ts.terrains = append(ts.terrains, t)
	return terrain.Type(len(ts.terrains) - 1), nil
}

// SetTerrain replaces entry i. Turning a category into a plain terrain drops
// it from every other terrain's category list.
func (ts *TileSet) SetTerrain(i terrain.Type, name string, c color.RGBA, kind terrain.Kind, categories ...terrain.Type) error {
	if !ts.valid(i) {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	t := Terrain{Name: name, Color: c, Kind: kind, Categories: slices.Clone(categories)}
	if err := ts.validate(t, i); err != nil {
		return err
	}
	wasCategory := ts.terrains[i].Kind == terrain.Category
	ts.terrains[i] = t
	if wasCategory && kind != terrain.Category {
		for j := range ts.terrains {
			ts.terrains[j].Categories = slices.DeleteFunc(ts.terrains[j].Categories, func(c terrain.Type) bool { return c == i })
		}
	}
	return nil
}

// RemoveTerrain deletes entry i. Tiles of that terrain lose their terrain
// metadata, references to i disappear and higher ids shift down by one.
func (ts *TileSet) RemoveTerrain(i terrain.Type) error {
	if !ts.valid(i) {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	ts.terrains = slices.Delete(ts.terrains, int(i), int(i)+1)
	ts.remap(func(t terrain.Type) (terrain.Type, bool) {
		switch {
		case t == i:
			return t, false
		case t > i:
			return t - 1, true
		}
		return t, true
	})
	return nil
}

// SwapTerrains exchanges the ids of entries i and j everywhere.
func (ts *TileSet) SwapTerrains(i, j terrain.Type) error {
	if !ts.valid(i) || !ts.valid(j) {
		return fmt.Errorf("%w: %d, %d", ErrIndex, i, j)
	}
	if i == j {
		return nil
	}
	ts.terrains[i], ts.terrains[j] = ts.terrains[j], ts.terrains[i]
	ts.remap(func(t terrain.Type) (terrain.Type, bool) {
		switch t {
		case i:
			return j, true
		case j:
			return i, true
		}
		return t, true
	})
	return nil
}

func (ts *TileSet) valid(i terrain.Type) bool {
	return i >= 0 && int(i) < len(ts.terrains)
}

func (ts *TileSet) validate(t Terrain, self terrain.Type) error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrName
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrKind, int(t.Kind))
	}
	if t.Kind == terrain.Category && len(t.Categories) > 0 {
		return fmt.Errorf("%w: a category cannot belong to categories", ErrCategory)
	}
	for _, c := range t.Categories {
		if c == self || !ts.valid(c) || ts.terrains[c].Kind != terrain.Category {
			return fmt.Errorf("%w: %d is not a category", ErrCategory, c)
		}
	}
	return nil
}

// remap rewrites every stored terrain id. Ids for which fn reports false are
// dropped; a dropped tile type clears that tile's terrain metadata.
func (ts *TileSet) remap(fn func(terrain.Type) (terrain.Type, bool)) {
	rewrite := func(ids []terrain.Type) []terrain.Type {
		out := ids[:0]
		for _, id := range ids {
			if id < 0 {
				out = append(out, id)
				continue
			}
			if n, ok := fn(id); ok {
				out = append(out, n)
			}
		}
		return out
	}
	for i := range ts.terrains {
		ts.terrains[i].Categories = rewrite(ts.terrains[i].Categories)
	}
	for _, src := range ts.sources {
		for _, e := range src.tiles {
			if e.meta == nil {
				continue
			}
			n, ok := fn(e.meta.Type)
			if !ok {
				e.meta = nil
				continue
			}
			e.meta.Type = n
			for k, v := range e.meta.Peering {
				e.meta.Peering[k] = rewrite(v)
			}
		}
	}
}
