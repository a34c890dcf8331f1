// Package info provides the info tab: configuration, dataset and build information.
package info

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/govnews-dashboard-tui/internal/app"
	"github.com/j-veylop/govnews-dashboard-tui/internal/config"
	"github.com/j-veylop/govnews-dashboard-tui/internal/db"
)

// SnapshotStore describes the persisted copy of the dataset.
type SnapshotStore interface {
	LatestSnapshotInfo(source string) (*db.SnapshotInfo, error)
}

type keyMap struct {
	Up   key.Binding
	Down key.Binding
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
	}
}

// storedInfoMsg carries the description of the persisted snapshot.
type storedInfoMsg struct {
	info *db.SnapshotInfo
	err  error
	at   time.Time // state update the lookup was made for
}

// Model represents the info tab state.
type Model struct {
	state     *app.State
	config    *config.Config
	store     SnapshotStore
	stored    *db.SnapshotInfo
	storedErr error
	storedAt  time.Time
	pending   bool
	keys      keyMap
	viewport  viewport.Model
	width     int
	height    int
}

// New creates a new info model. store may be nil when snapshots are not persisted.
func New(state *app.State, cfg *config.Config, store SnapshotStore) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		store:    store,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) loadStoredInfoCmd(at time.Time) tea.Cmd {
	store, source := m.store, m.config.SourceName()
	return func() tea.Msg {
		info, err := store.LatestSnapshotInfo(source)
		return storedInfoMsg{info: info, err: err, at: at}
	}
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case storedInfoMsg:
		m.pending = false
		m.stored, m.storedErr, m.storedAt = msg.info, msg.err, msg.at
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	// The stored copy changes whenever a new snapshot is loaded.
	if m.store != nil && m.config != nil && !m.pending {
		if updated := m.state.GetLastUpdated(); !updated.Equal(m.storedAt) {
			m.pending = true
			cmds = append(cmds, m.loadStoredInfoCmd(updated))
		}
	}

	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(0, width-6)
	m.viewport.Height = max(0, height-2)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
	}
}
