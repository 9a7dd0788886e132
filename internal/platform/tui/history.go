package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridreach/internal/storage"
)

// History layout constants
const (
	historyTableMinHeight = 5
	maxHistoryRows        = 200
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextScenario key.Binding
	PrevScenario key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScenario, k.PrevScenario, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScenario, k.PrevScenario},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScenario: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scenario"),
		),
		PrevScenario: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scenario"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded queries.
// The first tab shows every scenario; the others one scenario each.
type HistoryModel struct {
	store    *storage.Store
	tabs     []string // "" means all scenarios
	tab      int
	queries  []storage.QueryRecord
	stats    *storage.ScenarioStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history browser for the given scenario IDs.
func NewHistoryModel(store *storage.Store, scenarioIDs []string, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		tabs:   append([]string{""}, scenarioIDs...),
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 13},
		{Title: "Scenario", Width: 12},
		{Title: "Kind", Width: 6},
		{Title: "From", Width: 10},
		{Title: "Budget", Width: 6},
		{Title: "Reached", Width: 7},
		{Title: "Target", Width: 10},
		{Title: "Cost", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, historyTableMinHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the queries for the current tab.
func (m *HistoryModel) load() {
	m.queries, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		id := m.tabs[m.tab]
		if id == "" {
			m.queries, m.loadErr = m.store.RecentQueries(maxHistoryRows)
		} else {
			m.queries, m.loadErr = m.store.QueriesForScenario(id, maxHistoryRows)
			if m.loadErr == nil {
				m.stats, m.loadErr = m.store.ScenarioStats(id)
			}
		}
	}
	m.table.SetRows(HistoryRows(m.queries))
	m.table.GotoTop()
}

// HistoryRows formats queries as table rows.
func HistoryRows(queries []storage.QueryRecord) []table.Row {
	rows := make([]table.Row, len(queries))
	for i, q := range queries {
		target, cost := "-", "-"
		if q.Target != nil {
			target = q.Target.String()
			cost = "n/a"
			if q.PathCost >= 0 {
				cost = fmt.Sprintf("%d", q.PathCost)
			}
		}
		rows[i] = table.Row{
			q.CreatedAt.Format("Jan 02 15:04"),
			q.ScenarioID,
			q.Kind,
			q.Start.String(),
			fmt.Sprintf("%d", q.Budget),
			fmt.Sprintf("%d", q.Reached),
			target,
			cost,
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScenario):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevScenario):
			m.tab--
			if m.tab < 0 {
				m.tab = len(m.tabs) - 1
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(HistoryRows(m.queries))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "QUERY HISTORY - all scenarios"
	if id := m.tabs[m.tab]; id != "" {
		title = "QUERY HISTORY - " + id
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.Queries > 0 {
		b.WriteString(infoStyle.Render(fmt.Sprintf(
			"%d queries (%d paths)  avg reached %.1f  max %d  last %s",
			m.stats.Queries, m.stats.PathQueries, m.stats.AvgReached, m.stats.MaxReached,
			m.stats.LastQueried.Format("Jan 02 15:04"),
		)))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.loadErr != nil:
		b.WriteString(statusStyle.Render("could not load history: " + m.loadErr.Error()))
	case len(m.queries) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No queries recorded yet.\nRun reach or path to record one.")))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, scenarioIDs []string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, scenarioIDs, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
