// Package geom provides the coordinate and direction vocabulary for grids.
// It contains no dependencies on grid storage so the types stay pure values
// usable as map keys and heap items.
package geom

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Location is a cell coordinate. Planar grids use (X, Y) with Z = 0.
// Volumetric grids use Z as the vertical layer, so planar directions move
// along the same axes in both cases.
// X increases to the east, Y increases to the south, Z increases upward.
type Location struct {
	X int
	Y int
	Z int
}

// L is a convenience constructor for a planar Location.
func L(x, y int) Location {
	return Location{X: x, Y: y}
}

// L3 is a convenience constructor for a volumetric Location.
func L3(x, y, z int) Location {
	return Location{X: x, Y: y, Z: z}
}

// String returns a string representation of the location.
// Planar locations (Z == 0) print as (x,y).
func (l Location) String() string {
	if l.Z == 0 {
		return fmt.Sprintf("(%d,%d)", l.X, l.Y)
	}
	return fmt.Sprintf("(%d,%d,%d)", l.X, l.Y, l.Z)
}

// Add returns the location shifted by the given offset.
func (l Location) Add(o Offset) Location {
	return Location{X: l.X + o.DX, Y: l.Y + o.DY, Z: l.Z + o.DZ}
}

// Sub returns the offset that leads from other to l.
func (l Location) Sub(other Location) Offset {
	return Offset{DX: l.X - other.X, DY: l.Y - other.Y, DZ: l.Z - other.Z}
}

// Compare orders locations by X, then Y, then Z.
// It returns -1, 0 or +1 like cmp.Compare.
func (l Location) Compare(other Location) int {
	if c := cmp.Compare(l.X, other.X); c != 0 {
		return c
	}
	if c := cmp.Compare(l.Y, other.Y); c != 0 {
		return c
	}
	return cmp.Compare(l.Z, other.Z)
}

// Less reports whether l sorts before other.
func (l Location) Less(other Location) bool {
	return l.Compare(other) < 0
}

// Chebyshev returns the king-move distance to another location.
func (l Location) Chebyshev(other Location) int {
	d := l.Sub(other)
	return max(abs(d.DX), abs(d.DY), abs(d.DZ))
}

// SortLocations sorts locations in place using Compare.
func SortLocations(locs []Location) {
	slices.SortFunc(locs, Location.Compare)
}

// ParseLocation parses "x,y" or "x,y,z". Surrounding parentheses and
// whitespace are ignored.
func ParseLocation(s string) (Location, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return Location{}, fmt.Errorf("geom: location %q: want x,y or x,y,z", s)
	}

	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Location{}, fmt.Errorf("geom: location %q: %w", s, err)
		}
		vals[i] = v
	}
	return Location{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
