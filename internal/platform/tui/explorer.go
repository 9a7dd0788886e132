package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridreach/internal/config"
	"github.com/vovakirdan/gridreach/internal/geom"
	"github.com/vovakirdan/gridreach/internal/grid"
	"github.com/vovakirdan/gridreach/internal/occupancy"
	"github.com/vovakirdan/gridreach/internal/render"
	"github.com/vovakirdan/gridreach/internal/scenario"
	"github.com/vovakirdan/gridreach/internal/search"
	"github.com/vovakirdan/gridreach/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	mapStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ExplorerModel is the Bubble Tea model for exploring one scenario.
// It shows what can be reached from the cursor or from a selected unit,
// and the cheapest route from that unit to the cursor.
type ExplorerModel struct {
	scn      scenario.Scenario
	cfg      config.Config
	store    *storage.Store
	grid     *grid.Grid
	tracker  *occupancy.Tracker
	renderer *render.Renderer
	keys     ExplorerKeyMap
	help     help.Model

	cursor   geom.Location
	unit     int  // Index into scn.Units, -1 when the scenario has none
	fromUnit bool // Reach is measured from the selected unit, not the cursor
	budget   int

	result search.Result
	path   []geom.Location

	status    string
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewExplorerModel creates an explorer over a freshly built scenario grid.
// store may be nil, in which case nothing is recorded.
func NewExplorerModel(scn scenario.Scenario, cfg config.Config, store *storage.Store) ExplorerModel {
	h := help.New()
	h.ShowAll = false

	m := ExplorerModel{
		scn:      scn,
		cfg:      cfg,
		store:    store,
		renderer: render.New(cfg.Display),
		keys:     DefaultExplorerKeyMap(),
		help:     h,
		unit:     -1,
	}
	m.reset()
	return m
}

// reset rebuilds the grid and puts every unit back at its start.
func (m *ExplorerModel) reset() {
	m.grid, m.tracker = m.scn.Build()
	m.cursor = geom.L3(0, 0, 0)
	m.fromUnit = false
	m.budget = m.cfg.Search.ClampBudget(m.cfg.Search.DefaultBudget)
	m.unit = -1
	if len(m.scn.Units) > 0 {
		m.selectUnit(0)
	}
	m.recompute()
}

func (m *ExplorerModel) selectUnit(i int) {
	u := m.scn.Units[i]
	m.unit = i
	m.fromUnit = true
	budget := u.Budget
	if budget == 0 {
		budget = m.cfg.Search.DefaultBudget
	}
	m.budget = m.cfg.Search.ClampBudget(budget)
	if at, ok := m.tracker.Locate(u.ID); ok {
		m.cursor = at
	}
}

// origin returns where the current search starts.
func (m ExplorerModel) origin() geom.Location {
	if m.fromUnit && m.unit >= 0 {
		if at, ok := m.tracker.Locate(m.scn.Units[m.unit].ID); ok {
			return at
		}
	}
	return m.cursor
}

func (m *ExplorerModel) recompute() {
	m.result = search.Explore(m.grid, m.origin(), m.budget)
	m.path = nil
	if m.fromUnit {
		if p, _, ok := m.result.Path(m.cursor); ok {
			m.path = p
		}
	}
}

// Init initializes the explorer.
func (m ExplorerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the explorer.
func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m ExplorerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	for _, mv := range m.keys.moves() {
		if key.Matches(msg, mv.binding) {
			if next := geom.Neighbor(m.cursor, mv.dir); m.grid.InBounds(next) {
				m.cursor = next
				m.recompute()
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.goingBack = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.BudgetUp):
		m.budget = m.cfg.Search.ClampBudget(m.budget + 1)
		m.recompute()

	case key.Matches(msg, m.keys.BudgetDown):
		m.budget = m.cfg.Search.ClampBudget(m.budget - 1)
		m.recompute()

	case key.Matches(msg, m.keys.NextUnit), key.Matches(msg, m.keys.PrevUnit):
		n := len(m.scn.Units)
		if n == 0 {
			m.status = "this scenario has no units"
			return m, nil
		}
		step := 1
		if key.Matches(msg, m.keys.PrevUnit) {
			step = n - 1
		}
		m.selectUnit((max(m.unit, 0) + step) % n)
		m.recompute()

	case key.Matches(msg, m.keys.Layer):
		layers := m.grid.Dims().Layers
		m.cursor.Z = (m.cursor.Z + 1) % layers
		m.recompute()

	case key.Matches(msg, m.keys.Origin):
		if m.unit < 0 {
			m.status = "this scenario has no units"
			return m, nil
		}
		m.fromUnit = !m.fromUnit
		m.recompute()

	case key.Matches(msg, m.keys.Commit):
		m.commitMove()

	case key.Matches(msg, m.keys.Obstruct):
		if m.tracker.Occupied(m.cursor) {
			m.status = "a unit stands here"
			return m, nil
		}
		m.grid.ToggleObstruction(m.cursor)
		m.recompute()

	case key.Matches(msg, m.keys.Terrain):
		m.grid.ToggleDifficultTerrain(m.cursor)
		m.recompute()

	case key.Matches(msg, m.keys.Reset):
		m.reset()
		m.status = "scenario reset"
	}

	return m, nil
}

// commitMove moves the selected unit to the cursor along the shown path
// and records the query.
func (m *ExplorerModel) commitMove() {
	if !m.fromUnit || m.unit < 0 {
		m.status = "select a unit first"
		return
	}
	u := m.scn.Units[m.unit]
	from := m.origin()
	if from == m.cursor {
		m.status = u.ID + " is already here"
		return
	}
	_, cost, ok := m.result.Path(m.cursor)
	if !ok {
		m.status = fmt.Sprintf("%v is out of reach", m.cursor)
		m.record(from, -1)
		return
	}

	m.tracker.Move(u.ID, m.cursor)
	m.record(from, cost)
	m.status = fmt.Sprintf("%s moved %v -> %v for %d", u.ID, from, m.cursor, cost)
	m.recompute()
}

// record saves the attempted move. cost is -1 when the cursor was out of reach.
func (m *ExplorerModel) record(from geom.Location, cost int) {
	if m.store == nil || !m.cfg.Storage.RecordHistory {
		return
	}
	target := m.cursor
	q := storage.QueryRecord{
		ScenarioID: m.scn.ID,
		Kind:       storage.KindPath,
		Start:      from,
		Budget:     m.budget,
		Reached:    m.result.Len(),
		Target:     &target,
		PathCost:   cost,
	}
	if _, err := m.store.SaveQuery(q); err != nil {
		m.status = "could not record query: " + err.Error()
	}
}

// View renders the explorer.
func (m ExplorerModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "GRIDREACH - " + m.scn.Name
	if m.grid.Volumetric() {
		title += fmt.Sprintf("  (layer %d/%d)", m.cursor.Z+1, m.grid.Dims().Layers)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	origin := m.origin()
	overlay := render.Overlay{
		Layer:     m.cursor.Z,
		Start:     &origin,
		Costs:     m.result.Costs,
		Path:      m.path,
		Cursor:    &m.cursor,
		Occupancy: m.tracker,
	}
	b.WriteString(mapStyle.Render(m.renderer.Map(m.grid, overlay)))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(m.originLine()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(m.cursorLine()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderer.Legend())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ExplorerModel) originLine() string {
	from := "cursor"
	if m.fromUnit && m.unit >= 0 {
		from = m.scn.Units[m.unit].ID
	}
	return fmt.Sprintf("from %s %v  budget %d  reached %d", from, m.origin(), m.budget, m.result.Len())
}

func (m ExplorerModel) cursorLine() string {
	line := fmt.Sprintf("cursor %v", m.cursor)
	if ids := m.tracker.At(m.cursor); len(ids) > 0 {
		line += " [" + strings.Join(ids, ",") + "]"
	}
	cost, ok := m.result.Costs[m.cursor]
	if !ok {
		return line + "  out of reach"
	}
	line += fmt.Sprintf("  cost %d", cost)
	if len(m.path) > 1 {
		line += fmt.Sprintf("  path %d steps", len(m.path)-1)
	}
	return line
}

// IsGoingBack returns true if user wants to go back to the picker.
func (m ExplorerModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ExplorerModel) IsQuitting() bool {
	return m.quitting
}
