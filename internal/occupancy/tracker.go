// Package occupancy tracks which entities stand on which grid locations.
// It is a side table keyed by location, so the grid itself never stores
// entity handles. The tracker may keep the grid's obstruction flag in sync,
// but it never looks at walls.
package occupancy

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/vovakirdan/gridreach/internal/geom"
)

// Obstructor is the part of a grid the tracker may touch.
// *grid.Grid satisfies it.
type Obstructor interface {
	InBounds(l geom.Location) bool
	IsObstructed(l geom.Location) bool
	SetObstructed(l geom.Location, obstructed bool) bool
}

// NewID returns a fresh random entity identifier.
func NewID() string {
	return uuid.NewString()
}

// Tracker maps locations to the entities on them. It is safe for
// concurrent use.
type Tracker struct {
	mu    sync.RWMutex
	at    map[geom.Location][]string
	where map[string]geom.Location
	owned map[geom.Location]bool // obstructions set by the tracker
	grid  Obstructor
}

// NewTracker creates an empty tracker. If grid is non-nil, occupied cells
// are marked obstructed and released when their last entity leaves.
// Cells that were already obstructed before any entity arrived stay
// obstructed.
func NewTracker(grid Obstructor) *Tracker {
	return &Tracker{
		at:    make(map[geom.Location][]string),
		where: make(map[string]geom.Location),
		owned: make(map[geom.Location]bool),
		grid:  grid,
	}
}

// Attach places id at l. It fails if l is outside the attached grid or
// the id is already placed somewhere.
func (t *Tracker) Attach(l geom.Location, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.grid != nil && !t.grid.InBounds(l) {
		return false
	}
	if _, placed := t.where[id]; placed {
		return false
	}
	t.attach(l, id)
	return true
}

// Detach removes id from l. It fails if id is not at l.
func (t *Tracker) Detach(l geom.Location, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.where[id]; !ok || cur != l {
		return false
	}
	t.detach(l, id)
	return true
}

// Move relocates a placed id to l.
func (t *Tracker) Move(id string, l geom.Location) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.where[id]
	if !ok {
		return false
	}
	if t.grid != nil && !t.grid.InBounds(l) {
		return false
	}
	if cur == l {
		return true
	}
	t.detach(cur, id)
	t.attach(l, id)
	return true
}

// At returns the ids at l in the order they arrived.
func (t *Tracker) At(l geom.Location) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.at[l])
}

// Locate returns where id is placed.
func (t *Tracker) Locate(id string) (geom.Location, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	l, ok := t.where[id]
	return l, ok
}

// Occupied reports whether any entity is at l.
func (t *Tracker) Occupied(l geom.Location) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.at[l]) > 0
}

// IDs returns every placed id, sorted.
func (t *Tracker) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.where))
	for id := range t.where {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of placed entities.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.where)
}

func (t *Tracker) attach(l geom.Location, id string) {
	t.at[l] = append(t.at[l], id)
	t.where[id] = l
	if t.grid != nil && len(t.at[l]) == 1 && !t.grid.IsObstructed(l) {
		t.grid.SetObstructed(l, true)
		t.owned[l] = true
	}
}

func (t *Tracker) detach(l geom.Location, id string) {
	ids := t.at[l]
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	}
	if len(ids) == 0 {
		delete(t.at, l)
		if t.owned[l] {
			t.grid.SetObstructed(l, false)
			delete(t.owned, l)
		}
	} else {
		t.at[l] = ids
	}
	delete(t.where, id)
}
