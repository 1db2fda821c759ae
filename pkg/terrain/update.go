package terrain

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"autotile/pkg/grid"
)

// Plan is the working set of one update batch.
type Plan struct {
	// Render lists the cells resolved and written, in commit order.
	Render []grid.Coord
	// Outer lists extra cells around an area that are also written.
	Outer []grid.Coord
	// Snapshot lists every cell whose type is read before any write.
	Snapshot []grid.Coord
}

// Report counts what an update batch did.
type Report struct {
	Rendered  int
	Snapshot  int
	Committed int
	Skipped   int
}

// Add accumulates o into rep.
func (rep *Report) Add(o Report) {
	rep.Rendered += o.Rendered
	rep.Snapshot += o.Snapshot
	rep.Committed += o.Committed
	rep.Skipped += o.Skipped
}

// PlanCells computes the working set for UpdateTerrainCells.
func (r *Resolver) PlanCells(cells []grid.Coord, andSurrounding bool) Plan {
	if r.m == nil {
		return Plan{}
	}
	render := sortedUnique(cells)
	if andSurrounding {
		render = r.widen(render)
	}
	return Plan{Render: render, Snapshot: r.widen(render)}
}

// PlanArea computes the working set for UpdateTerrainArea.
func (r *Resolver) PlanArea(area grid.Rect, andSurrounding bool) Plan {
	if r.m == nil {
		return Plan{}
	}
	area = area.Abs()
	if area.Area() == 0 {
		return Plan{}
	}
	start, end := area.Position, area.End()

	var edges []grid.Coord
	for x := start.X; x < end.X; x++ {
		edges = append(edges, grid.Coord{X: x, Y: start.Y}, grid.Coord{X: x, Y: end.Y - 1})
	}
	for y := start.Y + 1; y < end.Y-1; y++ {
		edges = append(edges, grid.Coord{X: start.X, Y: y}, grid.Coord{X: end.X - 1, Y: y})
	}

	var outer []grid.Coord
	needed := r.widenExcluding(edges, area)
	if andSurrounding {
		outer = needed
		needed = r.widenExcluding(outer, area)
	}

	interior := make([]grid.Coord, 0, area.Area())
	for y := start.Y; y < end.Y; y++ {
		for x := start.X; x < end.X; x++ {
			interior = append(interior, grid.Coord{X: x, Y: y})
		}
	}
	snapshot := make([]grid.Coord, 0, len(interior)+len(needed))
	snapshot = append(snapshot, interior...)
	snapshot = append(snapshot, needed...)
	return Plan{Render: interior, Outer: outer, Snapshot: snapshot}
}

// UpdateTerrainCells re-resolves cells, plus their neighbours when
// andSurrounding is set. Every resolution reads the same snapshot taken
// before the first write.
func (r *Resolver) UpdateTerrainCells(layer int, cells []grid.Coord, andSurrounding bool) Report {
	if !r.validLayer(layer) {
		return Report{}
	}
	return r.run(layer, r.PlanCells(cells, andSurrounding))
}

// UpdateTerrainCell is UpdateTerrainCells for a single cell.
func (r *Resolver) UpdateTerrainCell(layer int, c grid.Coord, andSurrounding bool) Report {
	return r.UpdateTerrainCells(layer, []grid.Coord{c}, andSurrounding)
}

// UpdateTerrainArea re-resolves every cell of area, plus the ring around it
// when andSurrounding is set.
func (r *Resolver) UpdateTerrainArea(layer int, area grid.Rect, andSurrounding bool) Report {
	if !r.validLayer(layer) {
		return Report{}
	}
	return r.run(layer, r.PlanArea(area, andSurrounding))
}

func (r *Resolver) run(layer int, plan Plan) Report {
	snap := r.snapshot(layer, plan.Snapshot)
	rep := Report{Snapshot: len(snap)}
	for _, cells := range [][]grid.Coord{plan.Render, plan.Outer} {
		for _, c := range cells {
			rep.Rendered++
			if r.apply(layer, c, snap) {
				rep.Committed++
			} else {
				rep.Skipped++
			}
		}
	}
	return rep
}

// snapshot reads the current type of every cell in cells.
func (r *Resolver) snapshot(layer int, cells []grid.Coord) Snapshot {
	snap := make(Snapshot, len(cells))
	for _, c := range cells {
		snap[c] = r.GetCell(layer, c)
	}
	return snap
}

// widen returns coords plus all their peering neighbours.
func (r *Resolver) widen(coords []grid.Coord) []grid.Coord {
	set := mapset.New[grid.Coord]()
	for _, c := range coords {
		set.Put(c)
		for _, n := range r.geom.Peering() {
			set.Put(r.geom.NeighborCell(c, n))
		}
	}
	return sortedSet(set)
}

// widenExcluding is widen with every cell inside exclusion dropped.
func (r *Resolver) widenExcluding(coords []grid.Coord, exclusion grid.Rect) []grid.Coord {
	set := mapset.New[grid.Coord]()
	for _, c := range coords {
		if !exclusion.HasPoint(c) {
			set.Put(c)
		}
		for _, n := range r.geom.Peering() {
			if t := r.geom.NeighborCell(c, n); !exclusion.HasPoint(t) {
				set.Put(t)
			}
		}
	}
	return sortedSet(set)
}

func sortedSet(set mapset.Set[grid.Coord]) []grid.Coord {
	out := make([]grid.Coord, 0, set.Size())
	set.Each(func(c grid.Coord) { out = append(out, c) })
	slices.SortFunc(out, grid.Compare)
	return out
}

func sortedUnique(cells []grid.Coord) []grid.Coord {
	out := slices.Clone(cells)
	slices.SortFunc(out, grid.Compare)
	return slices.Compact(out)
}
