// Package agencies provides the agencies tab: agency selection and per-agency trends.
package agencies

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/govnews-dashboard-tui/internal/app"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle agency"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all agencies"),
		),
	}
}

// Model represents the agencies tab state.
type Model struct {
	state  *app.State
	keys   keyMap
	cursor int
	offset int
	width  int
	height int
}

// New creates a new agencies model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		keys:  defaultKeyMap(),
	}
}

// Init initializes the agencies tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the agencies tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	agencies := m.state.Agencies()
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-1, len(agencies))
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(1, len(agencies))
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(-m.listHeight(), len(agencies))
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(m.listHeight(), len(agencies))

	case key.Matches(keyMsg, m.keys.Toggle):
		q, ok := m.state.GetQuery()
		if !ok || m.cursor >= len(agencies) {
			return m, nil
		}
		return m, app.SetQueryCmd(app.ToggleAgency(q, agencies[m.cursor]))

	case key.Matches(keyMsg, m.keys.SelectAll):
		q, ok := m.state.GetQuery()
		if !ok || len(q.Criteria.Agencies) == 0 {
			return m, nil
		}
		return m, app.SetQueryCmd(app.SelectAllAgencies(q))
	}
	return m, nil
}

func (m *Model) moveCursor(delta, n int) {
	if n == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// listHeight is the number of agency rows visible at once.
func (m *Model) listHeight() int {
	return max(1, m.height-6)
}

// SetSize sets the available size for the agencies tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.moveCursor(0, len(m.state.Agencies()))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.SelectAll, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown},
		{m.keys.Toggle, m.keys.SelectAll},
	}
}
