// Package scenario builds grids and unit placements from YAML files.
// This package depends on grid but grid does not depend on scenario.
package scenario

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/grid"
	"github.com/vovakirdan/gridreach/internal/occupancy"
)

// yamlScenario represents the YAML structure for a scenario file.
type yamlScenario struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	Size         yamlSize          `yaml:"size"`
	CornerRule   string            `yaml:"corner_rule,omitempty"`
	Walls        []yamlWall        `yaml:"walls,omitempty"`
	Difficult    []yamlPoint       `yaml:"difficult,omitempty"`
	Obstructions []yamlPoint       `yaml:"obstructions,omitempty"`
	Units        []yamlUnit        `yaml:"units,omitempty"`
	Metadata     map[string]string `yaml:"metadata,omitempty"`
}

type yamlSize struct {
	W      int `yaml:"w"`
	H      int `yaml:"h"`
	Layers int `yaml:"layers,omitempty"` // 0 or 1 = planar
}

type yamlPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z,omitempty"`
}

type yamlWall struct {
	yamlPoint `yaml:",inline"`
	Dir       string `yaml:"dir"`
	Kind      string `yaml:"kind"`
}

type yamlUnit struct {
	yamlPoint `yaml:",inline"`
	ID        string `yaml:"id,omitempty"`
	Budget    int    `yaml:"budget"`
}

func (p yamlPoint) loc() geom.Location {
	return geom.L3(p.X, p.Y, p.Z)
}

// Wall is one boundary placement.
type Wall struct {
	At   geom.Location
	Dir  geom.Direction
	Kind grid.Boundary
}

// Unit is an entity placed on the grid with its movement budget.
type Unit struct {
	ID     string
	At     geom.Location
	Budget int
}

// Scenario is a parsed, validated scenario ready to build.
type Scenario struct {
	ID           string
	Name         string
	Description  string
	Width        int
	Height       int
	Layers       int
	Corner       grid.CornerRule
	Walls        []Wall
	Difficult    []geom.Location
	Obstructions []geom.Location
	Units        []Unit
	Metadata     map[string]string
	FilePath     string // empty for built-in scenarios
}

// ValidationError reports the first invalid field of a scenario.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scenario: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	errRequired    = errors.New("required")
	errOutOfBounds = errors.New("outside the grid")
	errDuplicate   = errors.New("duplicate")
)

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Volumetric reports whether the scenario builds a multi-layer grid.
func (s Scenario) Volumetric() bool {
	return s.Layers > 1
}

// InBounds reports whether l lies inside the scenario's extents.
func (s Scenario) InBounds(l geom.Location) bool {
	return l.X >= 0 && l.X < s.Width &&
		l.Y >= 0 && l.Y < s.Height &&
		l.Z >= 0 && l.Z < s.Layers
}

// Unit returns the unit with the given id.
func (s Scenario) Unit(id string) (Unit, bool) {
	for _, u := range s.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// Parse parses and validates a YAML scenario. Units without an id get a
// generated one.
func Parse(data []byte) (Scenario, error) {
	var ys yamlScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("scenario: yaml unmarshal: %w", err)
	}

	if ys.ID == "" {
		return Scenario{}, invalid("id", errRequired)
	}
	if ys.Size.W <= 0 || ys.Size.H <= 0 || ys.Size.Layers < 0 {
		return Scenario{}, invalid("size", fmt.Errorf("must be positive, got %dx%dx%d", ys.Size.W, ys.Size.H, ys.Size.Layers))
	}
	corner, err := grid.ParseCornerRule(ys.CornerRule)
	if err != nil {
		return Scenario{}, invalid("corner_rule", err)
	}

	s := Scenario{
		ID:          ys.ID,
		Name:        ys.Name,
		Description: ys.Description,
		Width:       ys.Size.W,
		Height:      ys.Size.H,
		Layers:      max(ys.Size.Layers, 1),
		Corner:      corner,
		Metadata:    ys.Metadata,
	}
	if s.Name == "" {
		s.Name = s.ID
	}

	for i, w := range ys.Walls {
		field := fmt.Sprintf("walls[%d]", i)
		at := w.loc()
		if !s.InBounds(at) {
			return Scenario{}, invalid(field, fmt.Errorf("%v %w", at, errOutOfBounds))
		}
		dir, err := geom.ParseDirection(w.Dir)
		if err != nil {
			return Scenario{}, invalid(field+".dir", err)
		}
		if !s.Volumetric() && !dir.IsPlanar() {
			return Scenario{}, invalid(field+".dir", fmt.Errorf("%v needs a layered grid", dir))
		}
		kind, err := grid.ParseBoundary(w.Kind)
		if err != nil {
			return Scenario{}, invalid(field+".kind", err)
		}
		s.Walls = append(s.Walls, Wall{At: at, Dir: dir, Kind: kind})
	}

	s.Difficult, err = points(s, "difficult", ys.Difficult)
	if err != nil {
		return Scenario{}, err
	}
	s.Obstructions, err = points(s, "obstructions", ys.Obstructions)
	if err != nil {
		return Scenario{}, err
	}

	seen := make(map[string]bool)
	for i, u := range ys.Units {
		field := fmt.Sprintf("units[%d]", i)
		id := u.ID
		if id == "" {
			id = occupancy.NewID()
		}
		if seen[id] {
			return Scenario{}, invalid(field+".id", fmt.Errorf("%w %q", errDuplicate, id))
		}
		seen[id] = true
		at := u.loc()
		if !s.InBounds(at) {
			return Scenario{}, invalid(field, fmt.Errorf("%v %w", at, errOutOfBounds))
		}
		if u.Budget < 0 {
			return Scenario{}, invalid(field+".budget", fmt.Errorf("must not be negative, got %d", u.Budget))
		}
		s.Units = append(s.Units, Unit{ID: id, At: at, Budget: u.Budget})
	}

	return s, nil
}

// points converts and bounds-checks a list of cells, dropping duplicates.
func points(s Scenario, field string, in []yamlPoint) ([]geom.Location, error) {
	out := make([]geom.Location, 0, len(in))
	seen := make(map[geom.Location]bool, len(in))
	for i, p := range in {
		at := p.loc()
		if !s.InBounds(at) {
			return nil, invalid(fmt.Sprintf("%s[%d]", field, i), fmt.Errorf("%v %w", at, errOutOfBounds))
		}
		if seen[at] {
			continue
		}
		seen[at] = true
		out = append(out, at)
	}
	return out, nil
}

// Build creates the grid described by the scenario and places its units.
// Unit cells are obstructed through the tracker.
func (s Scenario) Build() (*grid.Grid, *occupancy.Tracker) {
	var g *grid.Grid
	if s.Volumetric() {
		g = grid.NewVolume(s.Width, s.Height, s.Layers, grid.WithCornerRule(s.Corner))
	} else {
		g = grid.New(s.Width, s.Height, grid.WithCornerRule(s.Corner))
	}

	// Walls apply in file order so later entries overwrite earlier ones.
	for _, w := range s.Walls {
		g.AddBoundary(w.At, w.Dir, w.Kind)
	}
	for _, l := range s.Difficult {
		g.ToggleDifficultTerrain(l)
	}
	for _, l := range s.Obstructions {
		g.SetObstructed(l, true)
	}

	tracker := occupancy.NewTracker(g)
	for _, u := range s.Units {
		tracker.Attach(u.At, u.ID)
	}
	return g, tracker
}
