package scenario

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrNotFound is returned when no scenario matches a lookup.
var ErrNotFound = errors.New("scenario: not found")

// Loader handles loading scenarios from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scenario files.
// Invalid files are skipped. Returns scenarios sorted by ID.
func (l *Loader) LoadAll() ([]Scenario, error) {
	var scenarios []Scenario

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(p)) {
			return nil
		}

		s, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		scenarios = append(scenarios, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scenario: walking directory %s: %w", l.Root, err)
	}

	sortByID(scenarios)
	return scenarios, nil
}

// LoadFile loads a single scenario file.
func (l *Loader) LoadFile(p string) (Scenario, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: reading file %s: %w", p, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	s.FilePath = p
	return s, nil
}

// LoadByID loads a specific scenario by ID.
func (l *Loader) LoadByID(id string) (Scenario, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return Scenario{}, err
	}
	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all scenario IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s.ID
	}
	return ids, nil
}

// BuiltIn returns the scenarios embedded in the binary, sorted by ID.
func BuiltIn() ([]Scenario, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("scenario: reading built-ins: %w", err)
	}

	scenarios := make([]Scenario, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("scenario: reading built-in %s: %w", e.Name(), err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("built-in %s: %w", e.Name(), err)
		}
		scenarios = append(scenarios, s)
	}

	sortByID(scenarios)
	return scenarios, nil
}

// Catalog returns the built-in scenarios merged with those under root.
// Scenarios from root replace built-ins with the same ID. An empty root
// or a missing directory yields only the built-ins.
func Catalog(root string) ([]Scenario, error) {
	builtins, err := BuiltIn()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Scenario, len(builtins))
	for _, s := range builtins {
		byID[s.ID] = s
	}

	if root != "" {
		if _, statErr := os.Stat(root); statErr == nil {
			local, err := NewLoader(root).LoadAll()
			if err != nil {
				return nil, err
			}
			for _, s := range local {
				byID[s.ID] = s
			}
		}
	}

	out := make([]Scenario, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	sortByID(out)
	return out, nil
}

// Resolve finds a scenario by reference: a path to a YAML file, or an ID
// looked up in Catalog(root).
func Resolve(ref, root string) (Scenario, error) {
	if isSupportedExtension(filepath.Ext(ref)) {
		if _, err := os.Stat(ref); err == nil {
			return NewLoader(filepath.Dir(ref)).LoadFile(ref)
		}
	}

	scenarios, err := Catalog(root)
	if err != nil {
		return Scenario{}, err
	}
	for _, s := range scenarios {
		if s.ID == ref {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func sortByID(scenarios []Scenario) {
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})
}
