package geom

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the 26 unit moves on a volumetric grid.
// The first eight values are the planar compass directions.
type Direction uint8

const (
	N Direction = iota
	NE
	E
	SE
	S
	SW
	W
	NW
	Up
	Down
	UpN
	UpNE
	UpE
	UpSE
	UpS
	UpSW
	UpW
	UpNW
	DownN
	DownNE
	DownE
	DownSE
	DownS
	DownSW
	DownW
	DownNW

	numDirections = int(DownNW) + 1
)

// ErrNotAdjacent is returned by DirectionBetween when the two locations are
// not one unit move apart.
var ErrNotAdjacent = errors.New("geom: locations are not adjacent")

// Offset is a coordinate delta.
type Offset struct {
	DX, DY, DZ int
}

// directionInfo is the single source of truth for every direction.
// Inverse lookups and opposites are generated from it in init.
var directionInfo = [numDirections]struct {
	name   string
	long   string
	offset Offset
}{
	N:  {"N", "north", Offset{0, -1, 0}},
	NE: {"NE", "north-east", Offset{1, -1, 0}},
	E:  {"E", "east", Offset{1, 0, 0}},
	SE: {"SE", "south-east", Offset{1, 1, 0}},
	S:  {"S", "south", Offset{0, 1, 0}},
	SW: {"SW", "south-west", Offset{-1, 1, 0}},
	W:  {"W", "west", Offset{-1, 0, 0}},
	NW: {"NW", "north-west", Offset{-1, -1, 0}},

	Up:   {"U", "up", Offset{0, 0, 1}},
	Down: {"D", "down", Offset{0, 0, -1}},

	UpN:  {"UN", "up-north", Offset{0, -1, 1}},
	UpNE: {"UNE", "up-north-east", Offset{1, -1, 1}},
	UpE:  {"UE", "up-east", Offset{1, 0, 1}},
	UpSE: {"USE", "up-south-east", Offset{1, 1, 1}},
	UpS:  {"US", "up-south", Offset{0, 1, 1}},
	UpSW: {"USW", "up-south-west", Offset{-1, 1, 1}},
	UpW:  {"UW", "up-west", Offset{-1, 0, 1}},
	UpNW: {"UNW", "up-north-west", Offset{-1, -1, 1}},

	DownN:  {"DN", "down-north", Offset{0, -1, -1}},
	DownNE: {"DNE", "down-north-east", Offset{1, -1, -1}},
	DownE:  {"DE", "down-east", Offset{1, 0, -1}},
	DownSE: {"DSE", "down-south-east", Offset{1, 1, -1}},
	DownS:  {"DS", "down-south", Offset{0, 1, -1}},
	DownSW: {"DSW", "down-south-west", Offset{-1, 1, -1}},
	DownW:  {"DW", "down-west", Offset{-1, 0, -1}},
	DownNW: {"DNW", "down-north-west", Offset{-1, -1, -1}},
}

var (
	byOffset  map[Offset]Direction
	opposites [numDirections]Direction
	byName    map[string]Direction

	planar = []Direction{N, NE, E, SE, S, SW, W, NW}
	all    []Direction
)

func init() {
	byOffset = make(map[Offset]Direction, numDirections)
	byName = make(map[string]Direction, numDirections*3)
	all = make([]Direction, 0, numDirections)

	for i := range directionInfo {
		d := Direction(i)
		info := directionInfo[i]
		o := info.offset
		if o == (Offset{}) || abs(o.DX) > 1 || abs(o.DY) > 1 || abs(o.DZ) > 1 {
			panic(fmt.Sprintf("geom: direction %s has invalid offset %v", info.name, o))
		}
		if prev, dup := byOffset[o]; dup {
			panic(fmt.Sprintf("geom: directions %s and %s share offset %v", directionInfo[prev].name, info.name, o))
		}
		byOffset[o] = d
		all = append(all, d)

		byName[strings.ToLower(info.name)] = d
		byName[info.long] = d
		byName[strings.ReplaceAll(info.long, "-", "")] = d
	}

	// Identifier-style names for compound verticals: "upnw", "downse".
	for _, d := range all {
		o := d.Offset()
		if o.DZ == 0 || (o.DX == 0 && o.DY == 0) {
			continue
		}
		prefix := "up"
		if o.DZ < 0 {
			prefix = "down"
		}
		flat := byOffset[Offset{DX: o.DX, DY: o.DY}]
		byName[prefix+strings.ToLower(directionInfo[flat].name)] = d
	}

	// 26 distinct non-zero unit offsets cover {-1,0,1}^3 \ {0} exactly,
	// so every offset has its negation in the table.
	for i := range directionInfo {
		o := directionInfo[i].offset
		opp, ok := byOffset[Offset{-o.DX, -o.DY, -o.DZ}]
		if !ok {
			panic(fmt.Sprintf("geom: direction %s has no opposite", directionInfo[i].name))
		}
		opposites[i] = opp
	}
}

// Planar returns the eight compass directions in clockwise order from N.
func Planar() []Direction {
	return append([]Direction(nil), planar...)
}

// All returns all 26 directions.
func All() []Direction {
	return append([]Direction(nil), all...)
}

// Valid reports whether d is a defined direction.
func (d Direction) Valid() bool {
	return int(d) < numDirections
}

// String returns the short name of the direction ("N", "UNE", ...).
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionInfo[d].name
}

// LongName returns the hyphenated name ("up-north-east").
func (d Direction) LongName() string {
	if !d.Valid() {
		return d.String()
	}
	return directionInfo[d].long
}

// Offset returns the unit coordinate delta for d.
func (d Direction) Offset() Offset {
	if !d.Valid() {
		return Offset{}
	}
	return directionInfo[d].offset
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}
	return opposites[d]
}

// Axes returns how many coordinate axes d changes (1, 2 or 3).
func (d Direction) Axes() int {
	o := d.Offset()
	n := 0
	for _, v := range [3]int{o.DX, o.DY, o.DZ} {
		if v != 0 {
			n++
		}
	}
	return n
}

// IsCardinal reports whether d moves along exactly one axis.
func (d Direction) IsCardinal() bool {
	return d.Axes() == 1
}

// IsPlanar reports whether d stays on its layer.
func (d Direction) IsPlanar() bool {
	return d.Valid() && d.Offset().DZ == 0
}

// Components splits d into its single-axis directions, ordered X, Y, Z.
// A cardinal direction returns itself.
func (d Direction) Components() []Direction {
	o := d.Offset()
	parts := make([]Direction, 0, 3)
	if o.DX != 0 {
		parts = append(parts, byOffset[Offset{DX: o.DX}])
	}
	if o.DY != 0 {
		parts = append(parts, byOffset[Offset{DY: o.DY}])
	}
	if o.DZ != 0 {
		parts = append(parts, byOffset[Offset{DZ: o.DZ}])
	}
	return parts
}

// Without returns the direction left after removing component c from d.
// It reports false if c is not a component of d or nothing would remain.
func (d Direction) Without(c Direction) (Direction, bool) {
	o, co := d.Offset(), c.Offset()
	rest := Offset{DX: o.DX, DY: o.DY, DZ: o.DZ}
	switch {
	case co.DX != 0 && co.DX == o.DX:
		rest.DX = 0
	case co.DY != 0 && co.DY == o.DY:
		rest.DY = 0
	case co.DZ != 0 && co.DZ == o.DZ:
		rest.DZ = 0
	default:
		return d, false
	}
	r, ok := byOffset[rest]
	return r, ok
}

// DirectionOf returns the direction with the given offset.
func DirectionOf(o Offset) (Direction, bool) {
	d, ok := byOffset[o]
	return d, ok
}

// ParseDirection accepts short names ("ne", "UNW"), hyphenated long names
// ("up-north-west") and their unhyphenated form ("upnorthwest").
// Matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if d, ok := byName[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("geom: unknown direction %q", s)
}

// Neighbor returns loc moved one step in dir.
func Neighbor(loc Location, dir Direction) Location {
	return loc.Add(dir.Offset())
}

// DirectionBetween returns the direction d such that Neighbor(a, d) == b.
// It returns an error wrapping ErrNotAdjacent if no such direction exists.
func DirectionBetween(a, b Location) (Direction, error) {
	d, ok := byOffset[b.Sub(a)]
	if !ok {
		return 0, fmt.Errorf("%w: %v -> %v", ErrNotAdjacent, a, b)
	}
	return d, nil
}
