package grid

import "github.com/vovakirdan/gridreach/internal/geom"

// edge checks the direct move from a one step in dir, ignoring corners.
// The move is allowed when both cells exist, the destination is not
// obstructed, and neither side has a Full wall on the shared edge.
// Its cost is 2 if either side of the edge is Half or the destination is
// difficult, otherwise 1.
func (g *Grid) edge(a geom.Location, dir geom.Direction) (bool, int) {
	from := g.cell(a)
	to := g.cell(geom.Neighbor(a, dir))
	if from == nil || to == nil || to.Obstructed {
		return false, 0
	}

	back := dir.Opposite()
	if !from.PassableToward(dir) || !to.PassableToward(back) {
		return false, 0
	}

	cost := max(from.CostToward(dir), to.CostToward(back))
	if to.Difficult {
		cost = 2
	}
	return true, cost
}

// step checks a full move from a in dir.
//
// Cardinal moves are a single edge. A diagonal move must also be possible
// around each corner: for every axis component c, a -> a+c and
// a+c -> destination (recursively) must be passable, in addition to the
// direct edge. For planar diagonals those are exactly the five edges
// A-C1, A-C2, C1-D, C2-D and A-D. Under CornerDirect, vertical diagonals
// only check the direct edge.
//
// Costs saturate: the result is 2 if any contributing edge costs 2.
func (g *Grid) step(a geom.Location, dir geom.Direction) (bool, int) {
	ok, cost := g.edge(a, dir)
	if !ok {
		return false, 0
	}
	if dir.IsCardinal() || (!dir.IsPlanar() && g.corner == CornerDirect) {
		return true, cost
	}

	for _, c := range dir.Components() {
		ok, first := g.edge(a, c)
		if !ok {
			return false, 0
		}
		rest, _ := dir.Without(c)
		ok, second := g.step(geom.Neighbor(a, c), rest)
		if !ok {
			return false, 0
		}
		cost = max(cost, first, second)
	}
	return true, cost
}

// Passable reports whether a unit can move from one location to an
// adjacent one in a single step.
func (g *Grid) Passable(from, to geom.Location) bool {
	dir, err := geom.DirectionBetween(from, to)
	if err != nil || !g.allows(dir) {
		return false
	}
	ok, _ := g.step(from, dir)
	return ok
}

// Cost returns the movement cost (1 or 2) of a passable single step.
// It reports false when the step is not passable, including when the
// locations are not adjacent or out of bounds.
func (g *Grid) Cost(from, to geom.Location) (int, bool) {
	dir, err := geom.DirectionBetween(from, to)
	if err != nil || !g.allows(dir) {
		return 0, false
	}
	ok, cost := g.step(from, dir)
	if !ok {
		return 0, false
	}
	return cost, true
}

// Move steps from a location in dir. It returns the destination and its
// cost, or false if the move is blocked.
func (g *Grid) Move(from geom.Location, dir geom.Direction) (geom.Location, int, bool) {
	if !g.allows(dir) {
		return geom.Location{}, 0, false
	}
	ok, cost := g.step(from, dir)
	if !ok {
		return geom.Location{}, 0, false
	}
	return geom.Neighbor(from, dir), cost, true
}

// Neighbors returns every in-bounds neighbor of l, whether passable or not.
// Returns nil if l is out of bounds.
func (g *Grid) Neighbors(l geom.Location) []geom.Location {
	if !g.InBounds(l) {
		return nil
	}
	out := make([]geom.Location, 0, len(g.dirs))
	for _, d := range g.dirs {
		if n := geom.Neighbor(l, d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// VisitableNeighbors returns the neighbors of l reachable in one passable
// step. Returns nil if l is out of bounds.
func (g *Grid) VisitableNeighbors(l geom.Location) []geom.Location {
	if !g.InBounds(l) {
		return nil
	}
	out := make([]geom.Location, 0, len(g.dirs))
	for _, d := range g.dirs {
		if ok, _ := g.step(l, d); ok {
			out = append(out, geom.Neighbor(l, d))
		}
	}
	return out
}

// allows reports whether dir belongs to the grid's direction set.
func (g *Grid) allows(dir geom.Direction) bool {
	return g.volumetric || dir.IsPlanar()
}
