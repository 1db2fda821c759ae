package terrain

import "autotile/pkg/grid"

// Snapshot holds the terrain type of every cell an update batch may read.
type Snapshot map[grid.Coord]Type

// Lookup returns the snapshot entry for c, or Unknown.
func (s Snapshot) Lookup(c grid.Coord) Probe {
	t, ok := s[c]
	if !ok {
		return Unknown
	}
	return Known(t)
}

// typeAt reads c, treating cells outside the snapshot as Empty.
func (s Snapshot) typeAt(c grid.Coord) Type {
	if t, ok := s[c]; ok {
		return t
	}
	return Empty
}

// ScoreTiles scores p for the cell at c by comparing each constrained
// neighbour's snapshot type with the accepted targets.
func ScoreTiles(g grid.Geometry, c grid.Coord, p *Placement, snap Snapshot) int {
	score := 0
	for dir, targets := range p.Peering {
		if snap.Lookup(g.NeighborCell(c, dir)).In(targets) {
			score += ScoreMatch
		} else {
			score += ScoreMismatch
		}
	}
	return score
}

// ScoreVertices scores p for the cell at c, of type self, using the corner
// probe for every constrained corner.
func ScoreVertices(g grid.Geometry, c grid.Coord, self Type, p *Placement, snap Snapshot) int {
	score := 0
	for corner, targets := range p.Peering {
		if ProbeCorner(g, c, corner, self, snap).In(targets) {
			score += ScoreMatch
		} else {
			score += ScoreMismatch
		}
	}
	return score
}

// ProbeCorner decides which terrain owns corner of the cell at c. When every
// cell sharing the corner holds the same type, that type wins. Otherwise self
// is discarded and the lowest remaining id wins. Cells missing from the
// snapshot count as Empty; an undefined corner is Unknown.
func ProbeCorner(g grid.Geometry, c grid.Coord, corner grid.Neighbor, self Type, snap Snapshot) Probe {
	cells := g.CornerCells(c, corner)
	if len(cells) == 0 {
		return Unknown
	}
	types := make([]Type, len(cells))
	for i, cell := range cells {
		types[i] = snap.typeAt(cell)
	}
	return Known(cornerWinner(types, self))
}

func cornerWinner(types []Type, self Type) Type {
	first := types[0]
	allEqual := true
	for _, t := range types[1:] {
		if t != first {
			allEqual = false
			break
		}
	}
	if allEqual {
		return first
	}
	best, found := Type(0), false
	for _, t := range types {
		if t == self {
			continue
		}
		if !found || t < best {
			best, found = t, true
		}
	}
	if !found {
		return self
	}
	return best
}

// bestCandidates returns the candidates sharing the highest score.
func bestCandidates(candidates []Placement, score func(*Placement) int) []*Placement {
	var best []*Placement
	bestScore := 0
	for i := range candidates {
		p := &candidates[i]
		s := score(p)
		switch {
		case len(best) == 0 || s > bestScore:
			bestScore = s
			best = append(best[:0], p)
		case s == bestScore:
			best = append(best, p)
		}
	}
	return best
}

// Select picks one of choices with probability proportional to its weight.
//
// With applyEmpty set, a set of choices whose highest weight is below 1 may
// instead yield the erase placement: a uniform draw above that weight means
// "no tile here". All-zero weights fall back to a uniform pick by index. The
// result is reproducible for a given Source state; nil is returned only for
// an empty choice list.
func Select(choices []*Placement, applyEmpty bool, rng Source) *Placement {
	if len(choices) == 0 {
		return nil
	}

	if applyEmpty {
		best := 0.0
		for _, p := range choices {
			best = max(best, p.Probability)
		}
		if best < 1.0 && rng.Float64() > best {
			return &emptyPlacement
		}
	}

	if len(choices) == 1 {
		return choices[0]
	}

	sum := 0.0
	for _, p := range choices {
		sum += p.Probability
	}
	if sum == 0 {
		return choices[rng.IntN(len(choices))]
	}

	pick := rng.Float64() * sum
	for _, p := range choices {
		if pick < p.Probability {
			return p
		}
		pick -= p.Probability
	}
	return choices[len(choices)-1]
}
