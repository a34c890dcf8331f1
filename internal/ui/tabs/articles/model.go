// Package articles provides the articles tab: the filtered articles of the ranked agencies.
package articles

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/govnews-dashboard-tui/internal/app"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
)

// detailHeight is the number of lines reserved under the table for the selected article.
const detailHeight = 5

// Model represents the articles tab state.
type Model struct {
	state  *app.State
	result *models.QueryResult // result the rows were built from
	table  table.Model
	width  int
	height int
}

// New creates a new articles model.
func New(state *app.State) *Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle.Padding(0, 1)
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	return &Model{state: state, table: t}
}

// columns splits width between date, agency, title and URL.
func columns(width int) []table.Column {
	const dateWidth = 10
	rest := max(width-dateWidth-8, 40)
	agencyWidth := rest / 5
	urlWidth := rest / 4
	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Agency", Width: agencyWidth},
		{Title: "Title", Width: rest - agencyWidth - urlWidth},
		{Title: "URL", Width: urlWidth},
	}
}

// Init initializes the articles tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// sync rebuilds the rows when a new query result is available.
func (m *Model) sync() {
	result := m.state.GetResult()
	if result == m.result {
		return
	}
	m.result = result

	var rows []table.Row
	if result != nil {
		rows = make([]table.Row, len(result.Articles))
		for i, a := range result.Articles {
			rows[i] = table.Row{a.PublishedAt.Format("02/01/2006"), a.Agency, a.Title, a.URL}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Update handles messages for the articles tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

// Selected returns the article under the cursor.
func (m *Model) Selected() (models.Article, bool) {
	m.sync()
	if m.result == nil {
		return models.Article{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.result.Articles) {
		return models.Article{}, false
	}
	return m.result.Articles[i], true
}

// SetSize sets the available size for the articles tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inner := max(40, width-6)
	m.table.SetColumns(columns(inner))
	m.table.SetWidth(inner)
	m.table.SetHeight(max(3, height-detailHeight-4))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	km := m.table.KeyMap
	return []key.Binding{km.LineUp, km.LineDown, km.PageUp, km.PageDown}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	km := m.table.KeyMap
	return [][]key.Binding{
		{km.LineUp, km.LineDown, km.PageUp, km.PageDown},
		{km.HalfPageUp, km.HalfPageDown, km.GotoBottom},
	}
}
