// Package render draws grids and reachability overlays as text.
// Cells sit on odd columns and rows of a character canvas; the even
// positions between them show boundaries.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridreach/internal/config"
	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/grid"
)

// class selects the style of a canvas position.
type class uint8

const (
	classBlank class = iota
	classFloor
	classWall
	classReach
	classPath
	classStart
	classCursor
	classDifficult
	classObstruction
	classUnit
)

// Occupancy reports whether an entity stands on a location.
type Occupancy interface {
	Occupied(l geom.Location) bool
}

// Overlay is the query state drawn on top of a grid layer.
type Overlay struct {
	Layer     int
	Start     *geom.Location
	Costs     map[geom.Location]int // Reached locations and their minimum costs
	Path      []geom.Location
	Cursor    *geom.Location
	Occupancy Occupancy
}

// Renderer turns grids into strings.
type Renderer struct {
	plain  bool
	styles map[class]lipgloss.Style
}

// New creates a renderer from display settings. Color disabled means
// plain output with no escape sequences.
func New(cfg config.DisplayConfig) *Renderer {
	p := cfg.Palette
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &Renderer{
		plain: !cfg.Color,
		styles: map[class]lipgloss.Style{
			classBlank:       lipgloss.NewStyle(),
			classFloor:       fg(p.Floor),
			classWall:        fg(p.Wall).Bold(true),
			classReach:       fg(p.Reach),
			classPath:        fg(p.Path).Bold(true),
			classStart:       fg(p.Start).Bold(true),
			classCursor:      lipgloss.NewStyle().Background(lipgloss.Color(p.Cursor)).Bold(true),
			classDifficult:   fg(p.Difficult),
			classObstruction: fg(p.Obstruction),
			classUnit:        fg(p.Unit).Bold(true),
		},
	}
}

// Plain reports whether the renderer emits unstyled text.
func (r *Renderer) Plain() bool {
	return r.plain
}

type glyph struct {
	r rune
	c class
}

// Map draws one layer of g with the overlay applied.
func (r *Renderer) Map(g *grid.Grid, o Overlay) string {
	d := g.Dims()
	if d.W == 0 || o.Layer < 0 || o.Layer >= d.Layers {
		return ""
	}

	cw, ch := 2*d.W+1, 2*d.H+1
	canvas := make([][]glyph, ch)
	for y := range canvas {
		canvas[y] = make([]glyph, cw)
		for x := range canvas[y] {
			canvas[y][x] = glyph{' ', classBlank}
		}
	}

	onPath := make(map[geom.Location]bool, len(o.Path))
	for _, l := range o.Path {
		onPath[l] = true
	}

	for y := range d.H {
		for x := range d.W {
			l := geom.L3(x, y, o.Layer)
			cx, cy := 2*x+1, 2*y+1
			canvas[cy][cx] = r.cellGlyph(g, l, o, onPath)
			drawBoundaries(g, l, canvas, cx, cy)
		}
	}
	drawFrame(canvas)

	return r.paint(canvas)
}

func (r *Renderer) cellGlyph(g *grid.Grid, l geom.Location, o Overlay, onPath map[geom.Location]bool) glyph {
	gl := baseGlyph(g, l, o, onPath)
	if o.Cursor != nil && *o.Cursor == l {
		gl.c = classCursor
	}
	return gl
}

func baseGlyph(g *grid.Grid, l geom.Location, o Overlay, onPath map[geom.Location]bool) glyph {
	if o.Start != nil && *o.Start == l {
		return glyph{'S', classStart}
	}
	if o.Occupancy != nil && o.Occupancy.Occupied(l) {
		return glyph{'@', classUnit}
	}
	if g.IsObstructed(l) {
		return glyph{'#', classObstruction}
	}
	if cost, ok := o.Costs[l]; ok {
		if onPath[l] {
			return glyph{costRune(cost), classPath}
		}
		return glyph{costRune(cost), classReach}
	}
	if g.IsDifficult(l) {
		return glyph{'~', classDifficult}
	}
	return glyph{floorRune(g, l), classFloor}
}

func costRune(cost int) rune {
	if cost >= 0 && cost < 10 {
		return rune('0' + cost)
	}
	return '+'
}

// floorRune marks open stairwells on layered grids.
func floorRune(g *grid.Grid, l geom.Location) rune {
	if !g.Volumetric() {
		return '.'
	}
	up := g.Passable(l, geom.Neighbor(l, geom.Up))
	down := g.Passable(l, geom.Neighbor(l, geom.Down))
	switch {
	case up && down:
		return '↕'
	case up:
		return '^'
	case down:
		return 'v'
	}
	return '.'
}

// drawBoundaries writes the walls of l that face south, east and the two
// southern diagonals. Mirroring means the other sides are drawn by the
// neighbors, and the frame covers the outer edge.
func drawBoundaries(g *grid.Grid, l geom.Location, canvas [][]glyph, cx, cy int) {
	if b, ok := g.Boundary(l, geom.E); ok {
		canvas[cy][cx+1] = glyph{pick(b, '┃', '╎'), classWall}
	}
	if b, ok := g.Boundary(l, geom.S); ok {
		canvas[cy+1][cx] = glyph{pick(b, '━', '╌'), classWall}
	}
	if b, ok := g.Boundary(l, geom.W); ok && l.X == 0 {
		canvas[cy][cx-1] = glyph{pick(b, '┃', '╎'), classWall}
	}
	if b, ok := g.Boundary(l, geom.N); ok && l.Y == 0 {
		canvas[cy-1][cx] = glyph{pick(b, '━', '╌'), classWall}
	}

	if b, ok := g.Boundary(l, geom.SE); ok {
		mergeCorner(&canvas[cy+1][cx+1], pick(b, '╲', '⋱'))
	}
	if b, ok := g.Boundary(l, geom.SW); ok {
		mergeCorner(&canvas[cy+1][cx-1], pick(b, '╱', '⋰'))
	}
}

func mergeCorner(gl *glyph, r rune) {
	if gl.c == classWall && gl.r != r {
		gl.r = '╳'
		return
	}
	*gl = glyph{r, classWall}
}

func pick(b grid.Boundary, full, half rune) rune {
	if b == grid.Half {
		return half
	}
	return full
}

// drawFrame draws the outer border wherever no boundary was set.
func drawFrame(canvas [][]glyph) {
	h, w := len(canvas), len(canvas[0])
	for x := 0; x < w; x++ {
		if canvas[0][x].c == classBlank {
			canvas[0][x] = glyph{'─', classFloor}
		}
		if canvas[h-1][x].c == classBlank {
			canvas[h-1][x] = glyph{'─', classFloor}
		}
	}
	for y := 0; y < h; y++ {
		if canvas[y][0].c == classBlank {
			canvas[y][0] = glyph{'│', classFloor}
		}
		if canvas[y][w-1].c == classBlank {
			canvas[y][w-1] = glyph{'│', classFloor}
		}
	}
	for _, y := range []int{0, h - 1} {
		for _, x := range []int{0, w - 1} {
			canvas[y][x] = glyph{'+', classFloor}
		}
	}
}

// paint converts the canvas to a string. Adjacent positions with the same
// class share one styled run to keep escape sequences short.
func (r *Renderer) paint(canvas [][]glyph) string {
	var sb strings.Builder
	sb.Grow(len(canvas) * (len(canvas[0]) + 1) * 2)

	for y, row := range canvas {
		if y > 0 {
			sb.WriteRune('\n')
		}
		if r.plain {
			for _, gl := range row {
				sb.WriteRune(gl.r)
			}
			continue
		}

		x := 0
		for x < len(row) {
			c := row[x].c
			var run strings.Builder
			for x < len(row) && row[x].c == c {
				run.WriteRune(row[x].r)
				x++
			}
			sb.WriteString(r.styles[c].Render(run.String()))
		}
	}
	return sb.String()
}

// Legend explains the map glyphs.
func (r *Renderer) Legend() string {
	items := []struct {
		g    glyph
		text string
	}{
		{glyph{'S', classStart}, "start"},
		{glyph{'3', classReach}, "reachable (cost)"},
		{glyph{'3', classPath}, "path"},
		{glyph{'~', classDifficult}, "difficult"},
		{glyph{'#', classObstruction}, "obstructed"},
		{glyph{'@', classUnit}, "unit"},
		{glyph{'┃', classWall}, "full wall"},
		{glyph{'╎', classWall}, "half wall"},
	}

	parts := make([]string, len(items))
	for i, it := range items {
		sym := string(it.g.r)
		if !r.plain {
			sym = r.styles[it.g.c].Render(sym)
		}
		parts[i] = sym + " " + it.text
	}
	return strings.Join(parts, "  ")
}
