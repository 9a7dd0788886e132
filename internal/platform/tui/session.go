package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridreach/internal/config"
	"github.com/vovakirdan/gridreach/internal/scenario"
	"github.com/vovakirdan/gridreach/internal/storage"
)

// PickerModel is the Bubble Tea model for choosing a scenario.
type PickerModel struct {
	scenarios []scenario.Scenario
	cursor    int
	keys      PickerKeyMap
	help      help.Model
	width     int
	quitting  bool
	selected  *scenario.Scenario // Set when user picks a scenario
}

// NewPickerModel creates a new picker over the given scenarios.
func NewPickerModel(scenarios []scenario.Scenario, width int) PickerModel {
	return PickerModel{
		scenarios: scenarios,
		keys:      DefaultPickerKeyMap(),
		help:      help.New(),
		width:     width,
	}
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.scenarios)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.scenarios) > 0 {
				selected := m.scenarios[m.cursor]
				m.selected = &selected
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("G R I D R E A C H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a scenario", m.width))
	b.WriteString("\n\n")

	if len(m.scenarios) == 0 {
		b.WriteString(centerText("No scenarios found.", m.width))
		b.WriteString("\n")
	}
	for i, s := range m.scenarios {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-12s %dx%d", cursor, s.ID, s.Width, s.Height)
		if s.Volumetric() {
			line += fmt.Sprintf("x%d", s.Layers)
		}
		if s.Name != s.ID {
			line += "  " + s.Name
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the picked scenario, or nil if none was picked.
func (m PickerModel) Selected() *scenario.Scenario {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// SessionModel manages the full session flow: picker -> explorer -> picker.
// It is the top-level model for SSH sessions and for local runs started
// without a scenario.
type SessionModel struct {
	scenarios  []scenario.Scenario
	cfg        config.Config
	store      *storage.Store
	width      int
	height     int
	picker     PickerModel
	explorer   *ExplorerModel
	quitting   bool
	singleShot bool // Leaving the explorer quits instead of returning to the picker
}

// NewSessionModel creates a session that starts at the scenario picker.
func NewSessionModel(scenarios []scenario.Scenario, cfg config.Config, store *storage.Store, width, height int) SessionModel {
	return SessionModel{
		scenarios: scenarios,
		cfg:       cfg,
		store:     store,
		width:     width,
		height:    height,
		picker:    NewPickerModel(scenarios, width),
	}
}

// NewScenarioSession creates a session that opens scn directly and ends
// when the explorer is left.
func NewScenarioSession(scn scenario.Scenario, cfg config.Config, store *storage.Store, width, height int) SessionModel {
	m := NewSessionModel([]scenario.Scenario{scn}, cfg, store, width, height)
	m.singleShot = true
	m.open(scn)
	return m
}

func (m *SessionModel) open(scn scenario.Scenario) {
	explorer := NewExplorerModel(scn, m.cfg, m.store)
	explorer.width = m.width
	explorer.height = m.height
	explorer.help.Width = m.width
	m.explorer = &explorer
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.explorer != nil {
		return m.updateExplorer(msg)
	}
	return m.updatePicker(msg)
}

func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		m.open(*selected)
		m.picker.selected = nil
		return m, m.explorer.Init()
	}
	return m, cmd
}

func (m SessionModel) updateExplorer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.explorer.Update(msg)
	if explorer, ok := newModel.(ExplorerModel); ok {
		m.explorer = &explorer
	}

	if m.explorer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.explorer.IsGoingBack() {
		m.explorer = nil
		if m.singleShot {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.explorer != nil {
		return m.explorer.View()
	}
	return m.picker.View()
}

// Run explores scn in the local terminal until the user quits.
func Run(scn scenario.Scenario, cfg config.Config, store *storage.Store) error {
	return runSession(NewScenarioSession(scn, cfg, store, 0, 0))
}

// RunPicker lets the user choose among scenarios in the local terminal.
func RunPicker(scenarios []scenario.Scenario, cfg config.Config, store *storage.Store) error {
	return runSession(NewSessionModel(scenarios, cfg, store, 0, 0))
}

func runSession(model SessionModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
