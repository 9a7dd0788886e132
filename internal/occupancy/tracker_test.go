package occupancy_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/grid"
	"github.com/vovakirdan/gridreach/internal/occupancy"
	"github.com/vovakirdan/gridreach/internal/search"
)

func TestAttachDetach(t *testing.T) {
	tr := occupancy.NewTracker(nil)
	here := geom.L(1, 1)

	if !tr.Attach(here, "a") || !tr.Attach(here, "b") {
		t.Fatal("Attach failed")
	}
	if tr.Attach(geom.L(2, 2), "a") {
		t.Error("attaching an already placed id should fail")
	}

	ids := tr.At(here)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("At(%v) = %v, expected [a b]", here, ids)
	}
	if l, ok := tr.Locate("b"); !ok || l != here {
		t.Errorf("Locate(b) = %v, %v", l, ok)
	}

	if tr.Detach(geom.L(0, 0), "a") {
		t.Error("detaching from the wrong location should fail")
	}
	if !tr.Detach(here, "a") {
		t.Fatal("Detach(a) failed")
	}
	if !tr.Occupied(here) || tr.Len() != 1 {
		t.Error("b should still be placed")
	}
	tr.Detach(here, "b")
	if tr.Occupied(here) || tr.Len() != 0 {
		t.Error("tracker should be empty")
	}
}

func TestTrackerDrivesObstruction(t *testing.T) {
	g := grid.New(4, 4)
	tr := occupancy.NewTracker(g)
	cell := geom.L(2, 2)

	if tr.Attach(geom.L(4, 0), "x") {
		t.Error("attaching outside the grid should fail")
	}

	tr.Attach(cell, "x")
	tr.Attach(cell, "y")
	if !g.IsObstructed(cell) {
		t.Fatal("occupied cell should be obstructed")
	}
	if search.Reachable(g, geom.L(0, 0), 10).Contains(cell) {
		t.Error("occupied cell should not be reachable")
	}

	tr.Detach(cell, "x")
	if !g.IsObstructed(cell) {
		t.Error("cell should stay obstructed while y remains")
	}

	if !tr.Move("y", geom.L(3, 3)) {
		t.Fatal("Move(y) failed")
	}
	if g.IsObstructed(cell) {
		t.Error("vacated cell should be released")
	}
	if !g.IsObstructed(geom.L(3, 3)) {
		t.Error("destination should be obstructed after Move")
	}
	if tr.Move("ghost", geom.L(0, 0)) {
		t.Error("moving an unplaced id should fail")
	}
}

func TestTrackerKeepsTerrainObstructions(t *testing.T) {
	g := grid.New(3, 3)
	rock := geom.L(1, 1)
	g.ToggleObstruction(rock)

	tr := occupancy.NewTracker(g)
	tr.Attach(rock, "climber")
	tr.Detach(rock, "climber")

	if !g.IsObstructed(rock) {
		t.Error("pre-existing obstruction was cleared by the tracker")
	}
}

func TestNewID(t *testing.T) {
	a, b := occupancy.NewID(), occupancy.NewID()
	if a == b {
		t.Error("NewID returned the same id twice")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("NewID() = %q is not a UUID: %v", a, err)
	}

	tr := occupancy.NewTracker(nil)
	tr.Attach(geom.L(0, 0), "zeta")
	tr.Attach(geom.L(0, 1), "alpha")
	ids := tr.IDs()
	if len(ids) != 2 || ids[0] != "alpha" {
		t.Errorf("IDs() = %v, expected sorted", ids)
	}
}
