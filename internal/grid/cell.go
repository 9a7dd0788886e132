package grid

import (
	"fmt"
	"maps"
	"strings"

	"github.com/vovakirdan/gridreach/internal/geom"
)

// Boundary is a wall kind on one edge of a cell.
type Boundary uint8

const (
	// Full walls cannot be crossed.
	Full Boundary = iota + 1
	// Half walls can be crossed at extra cost.
	Half
)

// String returns the string representation of a boundary.
func (b Boundary) String() string {
	switch b {
	case Full:
		return "full"
	case Half:
		return "half"
	default:
		return "none"
	}
}

// ParseBoundary parses "full" or "half" (case-insensitive).
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return Full, nil
	case "half":
		return Half, nil
	default:
		return 0, fmt.Errorf("grid: unknown boundary %q", s)
	}
}

// Cell holds the walls, terrain and obstruction state of one location.
// The zero value is an open cell.
type Cell struct {
	boundaries map[geom.Direction]Boundary // nil until the first wall
	Difficult  bool
	Obstructed bool
}

// NewCell returns an open cell: no walls, not difficult, not obstructed.
func NewCell() Cell {
	return Cell{}
}

// AddBoundary sets the wall kind toward dir, replacing any previous one.
func (c *Cell) AddBoundary(dir geom.Direction, b Boundary) {
	if c.boundaries == nil {
		c.boundaries = make(map[geom.Direction]Boundary)
	}
	c.boundaries[dir] = b
}

// RemoveBoundary clears the wall toward dir, if any.
func (c *Cell) RemoveBoundary(dir geom.Direction) {
	delete(c.boundaries, dir)
}

// Boundary returns the wall toward dir and whether one exists.
func (c Cell) Boundary(dir geom.Direction) (Boundary, bool) {
	b, ok := c.boundaries[dir]
	return b, ok
}

// Boundaries returns a copy of the cell's walls.
func (c Cell) Boundaries() map[geom.Direction]Boundary {
	return maps.Clone(c.boundaries)
}

// PassableToward reports whether the cell's own wall allows leaving in dir.
// Only a Full wall blocks.
func (c Cell) PassableToward(dir geom.Direction) bool {
	return c.boundaries[dir] != Full
}

// CostToward returns the cost contribution of the cell's wall in dir:
// 2 for a Half wall, 1 otherwise. A Full wall's cost is never consulted
// because it is not passable.
func (c Cell) CostToward(dir geom.Direction) int {
	if c.boundaries[dir] == Half {
		return 2
	}
	return 1
}

// PassableTo is PassableToward keyed by locations. A neighbor that is not
// adjacent to from is never passable.
func (c Cell) PassableTo(from, neighbor geom.Location) bool {
	dir, err := geom.DirectionBetween(from, neighbor)
	if err != nil {
		return false
	}
	return c.PassableToward(dir)
}

// CostTo is CostToward keyed by locations. It returns 0 for a neighbor
// that is not adjacent to from.
func (c Cell) CostTo(from, neighbor geom.Location) int {
	dir, err := geom.DirectionBetween(from, neighbor)
	if err != nil {
		return 0
	}
	return c.CostToward(dir)
}

// clone returns a deep copy of the cell.
func (c Cell) clone() Cell {
	c.boundaries = maps.Clone(c.boundaries)
	return c
}
