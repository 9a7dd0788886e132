// Package grid provides the cell storage and movement rules for tactical
// grids: directional walls, difficult terrain and obstructions, and the
// passability and cost of single moves derived from them.
// The package is pure and does no I/O.
package grid

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridreach/internal/geom"
)

// CornerRule selects how diagonal moves that change the layer are checked.
// Planar diagonals always use the full corner check.
type CornerRule uint8

const (
	// CornerStrict checks every flanking edge of a diagonal move, in any
	// number of axes. For planar diagonals this is the five-edge rule.
	CornerStrict CornerRule = iota
	// CornerDirect checks only the direct edge for vertical diagonals.
	CornerDirect
)

// String returns the string representation of a corner rule.
func (r CornerRule) String() string {
	switch r {
	case CornerStrict:
		return "strict"
	case CornerDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// ParseCornerRule parses "strict" or "direct". The empty string is strict.
func ParseCornerRule(s string) (CornerRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return CornerStrict, nil
	case "direct":
		return CornerDirect, nil
	default:
		return 0, fmt.Errorf("grid: unknown corner rule %q", s)
	}
}

// Dims are the extents of a grid. Layers is 1 for planar grids.
type Dims struct {
	W      int
	H      int
	Layers int
}

// Grid owns one Cell for every in-bounds location.
// Cells are stored in layer-major, then row-major order:
// index = (z*H + y)*W + x.
//
// A Grid is not safe for concurrent mutation. Concurrent reads are safe
// while no mutation is in flight; use Clone to hand out snapshots.
type Grid struct {
	dims       Dims
	volumetric bool
	dirs       []geom.Direction
	corner     CornerRule
	cells      []Cell
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithCornerRule sets the corner rule for vertical diagonal moves.
func WithCornerRule(r CornerRule) Option {
	return func(g *Grid) {
		g.corner = r
	}
}

// New creates a planar grid of w×h open cells using the 8 compass
// directions.
func New(w, h int, opts ...Option) *Grid {
	return build(Dims{W: w, H: h, Layers: 1}, false, opts)
}

// NewVolume creates a volumetric grid of w×h×layers open cells using all
// 26 directions.
func NewVolume(w, h, layers int, opts ...Option) *Grid {
	return build(Dims{W: w, H: h, Layers: layers}, true, opts)
}

func build(d Dims, volumetric bool, opts []Option) *Grid {
	// Non-positive extents give an empty grid where nothing is in bounds.
	if d.W <= 0 || d.H <= 0 || d.Layers <= 0 {
		d = Dims{}
	}

	g := &Grid{
		dims:       d,
		volumetric: volumetric,
		cells:      make([]Cell, d.W*d.H*d.Layers),
	}
	if volumetric {
		g.dirs = geom.All()
	} else {
		g.dirs = geom.Planar()
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dims returns the grid extents.
func (g *Grid) Dims() Dims {
	return g.dims
}

// Volumetric reports whether the grid uses all 26 directions.
func (g *Grid) Volumetric() bool {
	return g.volumetric
}

// CornerRule returns the rule used for vertical diagonal moves.
func (g *Grid) CornerRule() CornerRule {
	return g.corner
}

// Directions returns the grid's direction set (8 or 26).
func (g *Grid) Directions() []geom.Direction {
	return append([]geom.Direction(nil), g.dirs...)
}

// index converts an in-bounds location to a flat slice index.
func (g *Grid) index(l geom.Location) int {
	return (l.Z*g.dims.H+l.Y)*g.dims.W + l.X
}

// InBounds returns true if every axis of l lies in [0, extent).
func (g *Grid) InBounds(l geom.Location) bool {
	return l.X >= 0 && l.X < g.dims.W &&
		l.Y >= 0 && l.Y < g.dims.H &&
		l.Z >= 0 && l.Z < g.dims.Layers
}

// cell returns a pointer to the cell at l, or nil if out of bounds.
func (g *Grid) cell(l geom.Location) *Cell {
	if !g.InBounds(l) {
		return nil
	}
	return &g.cells[g.index(l)]
}

// Cell returns a copy of the cell at l.
func (g *Grid) Cell(l geom.Location) (Cell, bool) {
	c := g.cell(l)
	if c == nil {
		return Cell{}, false
	}
	return c.clone(), true
}

// Boundary returns the wall on l's edge toward dir.
func (g *Grid) Boundary(l geom.Location, dir geom.Direction) (Boundary, bool) {
	c := g.cell(l)
	if c == nil {
		return 0, false
	}
	return c.Boundary(dir)
}

// IsDifficult reports whether l is in bounds and difficult terrain.
func (g *Grid) IsDifficult(l geom.Location) bool {
	c := g.cell(l)
	return c != nil && c.Difficult
}

// IsObstructed reports whether l is in bounds and obstructed.
func (g *Grid) IsObstructed(l geom.Location) bool {
	c := g.cell(l)
	return c != nil && c.Obstructed
}

// AddBoundary places a wall on l's edge toward dir and mirrors it on the
// neighbor's edge facing back. Out-of-bounds l is a no-op; an
// out-of-bounds neighbor only skips the mirror.
func (g *Grid) AddBoundary(l geom.Location, dir geom.Direction, b Boundary) {
	c := g.cell(l)
	if c == nil {
		return
	}
	c.AddBoundary(dir, b)
	if n := g.cell(geom.Neighbor(l, dir)); n != nil {
		n.AddBoundary(dir.Opposite(), b)
	}
}

// RemoveBoundary clears the wall on l's edge toward dir and its mirror.
func (g *Grid) RemoveBoundary(l geom.Location, dir geom.Direction) {
	c := g.cell(l)
	if c == nil {
		return
	}
	c.RemoveBoundary(dir)
	if n := g.cell(geom.Neighbor(l, dir)); n != nil {
		n.RemoveBoundary(dir.Opposite())
	}
}

// ToggleDifficultTerrain flips the difficult-terrain flag at l.
// Returns false if l is out of bounds.
func (g *Grid) ToggleDifficultTerrain(l geom.Location) bool {
	c := g.cell(l)
	if c == nil {
		return false
	}
	c.Difficult = !c.Difficult
	return true
}

// ToggleObstruction flips the obstruction flag at l.
// Returns false if l is out of bounds.
func (g *Grid) ToggleObstruction(l geom.Location) bool {
	c := g.cell(l)
	if c == nil {
		return false
	}
	c.Obstructed = !c.Obstructed
	return true
}

// SetObstructed sets the obstruction flag at l.
// Returns false if l is out of bounds.
func (g *Grid) SetObstructed(l geom.Location, obstructed bool) bool {
	c := g.cell(l)
	if c == nil {
		return false
	}
	c.Obstructed = obstructed
	return true
}

// Locations returns every in-bounds location ordered by layer, row, column.
func (g *Grid) Locations() []geom.Location {
	locs := make([]geom.Location, 0, len(g.cells))
	for z := 0; z < g.dims.Layers; z++ {
		for y := 0; y < g.dims.H; y++ {
			for x := 0; x < g.dims.W; x++ {
				locs = append(locs, geom.L3(x, y, z))
			}
		}
	}
	return locs
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	for i, c := range g.cells {
		cells[i] = c.clone()
	}
	return &Grid{
		dims:       g.dims,
		volumetric: g.volumetric,
		dirs:       append([]geom.Direction(nil), g.dirs...),
		corner:     g.corner,
		cells:      cells,
	}
}
