package grid_test

import (
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/grid"
)

// courtyard builds the 6x5 reference layout on layer z of g.
// The east wall sits on (1,1) so that moving east from (1,0) stays open
// while the south-east diagonal from (1,0) is cut by two walled corners.
func courtyard(g *grid.Grid, z int) {
	at := func(x, y int) geom.Location { return geom.L3(x, y, z) }

	g.AddBoundary(at(2, 0), geom.S, grid.Full)
	g.AddBoundary(at(3, 0), geom.S, grid.Full)
	g.AddBoundary(at(1, 1), geom.E, grid.Full)
	g.AddBoundary(at(4, 0), geom.SE, grid.Full)
	g.AddBoundary(at(3, 0), geom.S, grid.Half)

	g.ToggleDifficultTerrain(at(2, 3))
	g.ToggleDifficultTerrain(at(2, 4))
	g.ToggleObstruction(at(4, 3))
}

func TestCourtyardScenario(t *testing.T) {
	planar := grid.New(6, 5)
	courtyard(planar, 0)

	volume := grid.NewVolume(6, 5, 2)
	courtyard(volume, 1)

	variants := []struct {
		name string
		g    *grid.Grid
		z    int
	}{
		{"planar", planar, 0},
		{"second layer", volume, 1},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			at := func(x, y int) geom.Location { return geom.L3(x, y, v.z) }

			if _, _, ok := v.g.Move(at(2, 0), geom.S); ok {
				t.Error("moving south from (2,0) should be blocked by the full wall")
			}
			if _, _, ok := v.g.Move(at(1, 0), geom.SE); ok {
				t.Error("moving south-east from (1,0) should be blocked by corner-cutting")
			}

			dest, cost, ok := v.g.Move(at(1, 0), geom.E)
			if !ok || dest != at(2, 0) || cost != 1 {
				t.Errorf("Move((1,0), E) = %v, %d, %v; expected %v, 1, true", dest, cost, ok, at(2, 0))
			}

			dest, cost, ok = v.g.Move(at(4, 0), geom.SW)
			if !ok || dest != at(3, 1) || cost != 2 {
				t.Errorf("Move((4,0), SW) = %v, %d, %v; expected %v, 2, true", dest, cost, ok, at(3, 1))
			}

			// The half wall replaced the full one on both sides.
			if b, _ := v.g.Boundary(at(3, 1), geom.N); b != grid.Half {
				t.Errorf("mirrored boundary at (3,1) N = %v, expected half", b)
			}
			if _, _, ok := v.g.Move(at(4, 0), geom.SE); ok {
				t.Error("moving south-east from (4,0) should be blocked by the diagonal wall")
			}
			if v.g.Passable(at(4, 2), at(4, 3)) {
				t.Error("obstructed (4,3) should not be enterable")
			}
			if c, ok := v.g.Cost(at(1, 3), at(2, 3)); !ok || c != 2 {
				t.Errorf("entering difficult (2,3) costs %d, %v; expected 2", c, ok)
			}
		})
	}
}

func TestMirroring(t *testing.T) {
	center := geom.L3(1, 1, 1)

	for _, kind := range []grid.Boundary{grid.Full, grid.Half} {
		for _, d := range geom.All() {
			g := grid.NewVolume(3, 3, 3)
			g.AddBoundary(center, d, kind)
			n := geom.Neighbor(center, d)

			back, ok := g.Boundary(n, d.Opposite())
			if !ok || back != kind {
				t.Errorf("%v wall %v: neighbor has %v, %v", kind, d, back, ok)
			}

			if kind == grid.Full {
				if g.Passable(center, n) || g.Passable(n, center) {
					t.Errorf("full wall %v: passable in some direction", d)
				}
				continue
			}
			if c, ok := g.Cost(center, n); !ok || c != 2 {
				t.Errorf("half wall %v: forward cost %d, %v", d, c, ok)
			}
			if c, ok := g.Cost(n, center); !ok || c != 2 {
				t.Errorf("half wall %v: backward cost %d, %v", d, c, ok)
			}
		}
	}
}

func TestRemoveBoundary(t *testing.T) {
	g := grid.New(3, 3)
	g.AddBoundary(geom.L(1, 1), geom.E, grid.Full)
	g.RemoveBoundary(geom.L(2, 1), geom.W)

	if _, ok := g.Boundary(geom.L(1, 1), geom.E); ok {
		t.Error("removing the mirror side should clear both sides")
	}
	if !g.Passable(geom.L(1, 1), geom.L(2, 1)) {
		t.Error("edge should be open after removal")
	}
}

func TestObstructionDominance(t *testing.T) {
	g := grid.NewVolume(3, 3, 3)
	b := geom.L3(1, 1, 1)

	// Half walls and difficult terrain around b do not matter.
	g.AddBoundary(b, geom.N, grid.Half)
	g.AddBoundary(b, geom.UpE, grid.Half)
	g.ToggleDifficultTerrain(b)
	g.ToggleObstruction(b)

	for _, a := range g.Neighbors(b) {
		if g.Passable(a, b) {
			t.Errorf("obstructed %v is enterable from %v", b, a)
		}
	}

	// Leaving an obstructed cell is still allowed.
	if !g.Passable(b, geom.L3(1, 1, 0)) {
		t.Error("moving out of an obstructed cell should be allowed")
	}

	g.ToggleObstruction(b)
	if !g.Passable(geom.L3(0, 1, 1), b) {
		t.Error("toggling obstruction twice should reopen the cell")
	}
}

func TestCostSaturates(t *testing.T) {
	g := grid.New(3, 1)
	g.AddBoundary(geom.L(0, 0), geom.E, grid.Half)
	g.ToggleDifficultTerrain(geom.L(1, 0))

	c, ok := g.Cost(geom.L(0, 0), geom.L(1, 0))
	if !ok || c != 2 {
		t.Errorf("half wall into difficult terrain costs %d, %v; expected 2", c, ok)
	}

	// Difficult terrain is an entry cost only.
	c, ok = g.Cost(geom.L(1, 0), geom.L(2, 0))
	if !ok || c != 1 {
		t.Errorf("leaving difficult terrain costs %d, %v; expected 1", c, ok)
	}
}

func TestDiagonalCornerCutting(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(g *grid.Grid)
		passable bool
		cost     int
	}{
		{"open", func(g *grid.Grid) {}, true, 1},
		{"wall on first flank", func(g *grid.Grid) {
			g.AddBoundary(geom.L(1, 1), geom.E, grid.Full)
		}, false, 0},
		{"wall on second flank", func(g *grid.Grid) {
			g.AddBoundary(geom.L(1, 1), geom.N, grid.Full)
		}, false, 0},
		{"wall on far corner", func(g *grid.Grid) {
			g.AddBoundary(geom.L(2, 0), geom.S, grid.Full)
		}, false, 0},
		{"direct diagonal wall", func(g *grid.Grid) {
			g.AddBoundary(geom.L(1, 1), geom.NE, grid.Full)
		}, false, 0},
		{"obstructed flank", func(g *grid.Grid) {
			g.ToggleObstruction(geom.L(2, 1))
		}, false, 0},
		{"half wall on far corner", func(g *grid.Grid) {
			g.AddBoundary(geom.L(1, 0), geom.E, grid.Half)
		}, true, 2},
		{"difficult flank", func(g *grid.Grid) {
			g.ToggleDifficultTerrain(geom.L(1, 0))
		}, true, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := grid.New(3, 3)
			tc.setup(g)

			from, to := geom.L(1, 1), geom.L(2, 0)
			if got := g.Passable(from, to); got != tc.passable {
				t.Fatalf("Passable(NE) = %v, expected %v", got, tc.passable)
			}
			c, ok := g.Cost(from, to)
			if ok != tc.passable || c != tc.cost {
				t.Errorf("Cost(NE) = %d, %v; expected %d", c, ok, tc.cost)
			}
		})
	}
}

func TestVerticalCornerRule(t *testing.T) {
	from := geom.L3(1, 1, 0)
	to := geom.Neighbor(from, geom.UpN)

	for _, rule := range []grid.CornerRule{grid.CornerStrict, grid.CornerDirect} {
		t.Run(rule.String(), func(t *testing.T) {
			g := grid.NewVolume(3, 3, 2, grid.WithCornerRule(rule))
			g.AddBoundary(from, geom.Up, grid.Full)

			got := g.Passable(from, to)
			if expected := rule == grid.CornerDirect; got != expected {
				t.Errorf("Passable(UpN) with ceiling wall = %v, expected %v", got, expected)
			}

			// The direct edge is checked under both rules.
			g.AddBoundary(from, geom.UpN, grid.Full)
			if g.Passable(from, to) {
				t.Error("a wall on the direct edge should always block")
			}
		})
	}

	// A three-axis diagonal needs every planar and vertical corner clear.
	g := grid.NewVolume(3, 3, 3)
	a := geom.L3(1, 1, 1)
	d := geom.Neighbor(a, geom.UpNE)
	if c, ok := g.Cost(a, d); !ok || c != 1 {
		t.Fatalf("open UpNE costs %d, %v; expected 1", c, ok)
	}
	g.ToggleDifficultTerrain(geom.L3(2, 1, 2))
	if c, ok := g.Cost(a, d); !ok || c != 2 {
		t.Errorf("UpNE past a difficult corner costs %d, %v; expected 2", c, ok)
	}
	g.AddBoundary(geom.L3(2, 0, 1), geom.Up, grid.Full)
	if g.Passable(a, d) {
		t.Error("UpNE with a walled inner corner should be blocked under the strict rule")
	}
}

func TestPlanarGridIgnoresVerticalDirections(t *testing.T) {
	g := grid.New(3, 3)
	if _, _, ok := g.Move(geom.L(1, 1), geom.Up); ok {
		t.Error("planar grid should not allow vertical moves")
	}
	if len(g.Directions()) != 8 {
		t.Errorf("planar grid has %d directions, expected 8", len(g.Directions()))
	}
	if len(grid.NewVolume(2, 2, 2).Directions()) != 26 {
		t.Error("volumetric grid should have 26 directions")
	}
}

func TestOutOfBounds(t *testing.T) {
	g := grid.New(3, 3)
	outside := []geom.Location{geom.L(-1, 0), geom.L(3, 0), geom.L(0, 3), geom.L3(0, 0, 1)}

	for _, l := range outside {
		if g.InBounds(l) {
			t.Errorf("InBounds(%v) = true", l)
		}
		if g.ToggleDifficultTerrain(l) || g.ToggleObstruction(l) || g.SetObstructed(l, true) {
			t.Errorf("mutation at %v reported success", l)
		}
		g.AddBoundary(l, geom.E, grid.Full)
		if n := g.Neighbors(l); n != nil {
			t.Errorf("Neighbors(%v) = %v, expected nil", l, n)
		}
		if n := g.VisitableNeighbors(l); n != nil {
			t.Errorf("VisitableNeighbors(%v) = %v, expected nil", l, n)
		}
		if _, ok := g.Cell(l); ok {
			t.Errorf("Cell(%v) reported a cell", l)
		}
	}

	// The wall placed west of (0,0) from outside must not have been mirrored in.
	if _, ok := g.Boundary(geom.L(0, 0), geom.W); ok {
		t.Error("out-of-bounds AddBoundary mirrored into the grid")
	}

	// Walls on the rim only set the in-bounds side.
	g.AddBoundary(geom.L(0, 0), geom.W, grid.Full)
	if b, ok := g.Boundary(geom.L(0, 0), geom.W); !ok || b != grid.Full {
		t.Error("rim wall was not stored")
	}

	if g.Passable(geom.L(0, 0), geom.L(0, 2)) {
		t.Error("non-adjacent locations should not be passable")
	}
	if _, ok := g.Cost(geom.L(0, 0), geom.L(0, 0)); ok {
		t.Error("cost of a zero-length move should be absent")
	}

	empty := grid.New(0, 4)
	if empty.InBounds(geom.L(0, 0)) || len(empty.Locations()) != 0 {
		t.Error("zero-width grid should contain nothing")
	}
}

func TestNeighborsCounts(t *testing.T) {
	g := grid.New(3, 3)
	tests := []struct {
		loc      geom.Location
		expected int
	}{
		{geom.L(1, 1), 8},
		{geom.L(0, 0), 3},
		{geom.L(1, 0), 5},
	}
	for _, tc := range tests {
		if got := len(g.Neighbors(tc.loc)); got != tc.expected {
			t.Errorf("len(Neighbors(%v)) = %d, expected %d", tc.loc, got, tc.expected)
		}
	}

	v := grid.NewVolume(3, 3, 3)
	if got := len(v.Neighbors(geom.L3(1, 1, 1))); got != 26 {
		t.Errorf("volumetric center has %d neighbors, expected 26", got)
	}

	g.ToggleObstruction(geom.L(2, 2))
	g.AddBoundary(geom.L(1, 1), geom.N, grid.Full)
	// N, NE and NW are lost to the wall, SE to the obstruction.
	if got := len(g.VisitableNeighbors(geom.L(1, 1))); got != 4 {
		t.Errorf("len(VisitableNeighbors((1,1))) = %d, expected 4", got)
	}
}

func TestCostBoundsRandomized(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	g := grid.New(8, 8)
	locs := g.Locations()

	for i := 0; i < 60; i++ {
		l := locs[rng.IntN(len(locs))]
		d := geom.Planar()[rng.IntN(8)]
		kind := grid.Full
		if rng.IntN(2) == 0 {
			kind = grid.Half
		}
		g.AddBoundary(l, d, kind)
	}
	for i := 0; i < 8; i++ {
		g.ToggleDifficultTerrain(locs[rng.IntN(len(locs))])
	}

	for _, a := range locs {
		for _, d := range g.Directions() {
			dest, cost, ok := g.Move(a, d)
			if !ok {
				continue
			}
			if cost != 1 && cost != 2 {
				t.Fatalf("Move(%v, %v) cost %d outside {1,2}", a, d, cost)
			}
			if d.IsCardinal() {
				continue
			}
			// Every flanking edge must itself be passable and no dearer.
			for _, c := range d.Components() {
				mid := geom.Neighbor(a, c)
				first, ok1 := g.Cost(a, mid)
				second, ok2 := g.Cost(mid, dest)
				if !ok1 || !ok2 {
					t.Fatalf("diagonal %v from %v passable through a blocked corner", d, a)
				}
				if cost < first || cost < second {
					t.Fatalf("diagonal %v from %v costs %d, below a flank cost", d, a, cost)
				}
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := grid.New(3, 3)
	g.AddBoundary(geom.L(0, 0), geom.E, grid.Full)
	clone := g.Clone()

	g.RemoveBoundary(geom.L(0, 0), geom.E)
	g.ToggleObstruction(geom.L(2, 2))

	if clone.Passable(geom.L(0, 0), geom.L(1, 0)) {
		t.Error("clone lost its wall when the original changed")
	}
	if clone.IsObstructed(geom.L(2, 2)) {
		t.Error("clone picked up an obstruction from the original")
	}

	cell, _ := clone.Cell(geom.L(0, 0))
	cell.AddBoundary(geom.S, grid.Full)
	if _, ok := clone.Boundary(geom.L(0, 0), geom.S); ok {
		t.Error("Cell() should return a copy")
	}
}
