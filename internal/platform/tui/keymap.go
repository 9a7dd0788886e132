package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/gridreach/internal/geom"
)

// ExplorerKeyMap defines the key bindings for the grid explorer.
type ExplorerKeyMap struct {
	North      key.Binding
	South      key.Binding
	West       key.Binding
	East       key.Binding
	NorthWest  key.Binding
	NorthEast  key.Binding
	SouthWest  key.Binding
	SouthEast  key.Binding
	BudgetUp   key.Binding
	BudgetDown key.Binding
	NextUnit   key.Binding
	PrevUnit   key.Binding
	Layer      key.Binding
	Origin     key.Binding
	Commit     key.Binding
	Obstruct   key.Binding
	Terrain    key.Binding
	Reset      key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ExplorerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.BudgetUp, k.BudgetDown, k.NextUnit, k.Layer, k.Commit, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ExplorerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.North, k.South, k.West, k.East},
		{k.NorthWest, k.NorthEast, k.SouthWest, k.SouthEast},
		{k.BudgetUp, k.BudgetDown, k.NextUnit, k.PrevUnit, k.Layer},
		{k.Origin, k.Commit, k.Obstruct, k.Terrain, k.Reset},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultExplorerKeyMap returns default key bindings.
func DefaultExplorerKeyMap() ExplorerKeyMap {
	return ExplorerKeyMap{
		North: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "north"),
		),
		South: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "south"),
		),
		West: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "west"),
		),
		East: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "east"),
		),
		NorthWest: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "north-west"),
		),
		NorthEast: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "north-east"),
		),
		SouthWest: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "south-west"),
		),
		SouthEast: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "south-east"),
		),
		BudgetUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "budget up"),
		),
		BudgetDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "budget down"),
		),
		NextUnit: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next unit"),
		),
		PrevUnit: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev unit"),
		),
		Layer: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "next layer"),
		),
		Origin: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "reach from cursor/unit"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "move unit"),
		),
		Obstruct: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle obstruction"),
		),
		Terrain: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle difficult"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// moves pairs cursor bindings with the direction they step in.
func (k ExplorerKeyMap) moves() []struct {
	binding key.Binding
	dir     geom.Direction
} {
	return []struct {
		binding key.Binding
		dir     geom.Direction
	}{
		{k.North, geom.N},
		{k.South, geom.S},
		{k.West, geom.W},
		{k.East, geom.E},
		{k.NorthWest, geom.NW},
		{k.NorthEast, geom.NE},
		{k.SouthWest, geom.SW},
		{k.SouthEast, geom.SE},
	}
}

// PickerKeyMap defines the key bindings for the scenario picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select, k.Quit}}
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "explore"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
