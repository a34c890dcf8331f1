package articles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
)

var labelStyle = lipgloss.NewStyle().Width(10).Foreground(styles.TextMuted)

// View renders the articles tab.
func (m *Model) View() string {
	m.sync()

	if m.result == nil {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(styles.HelpStyle.Render("No query result yet."))
	}

	if len(m.result.Articles) == 0 {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(lipgloss.JoinVertical(lipgloss.Left,
				m.renderHeader(),
				styles.HelpStyle.Render("No articles for the ranked agencies in this range."),
			))
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			m.table.View(),
			m.renderDetail(),
		))
}

func (m *Model) renderHeader() string {
	r := m.result
	return styles.SubTitleStyle.Render(fmt.Sprintf("%s articles from ranks %d-%d",
		humanize.Comma(int64(len(r.Articles))), r.Query.Window.From, r.Query.Window.To))
}

func (m *Model) renderDetail() string {
	a, ok := m.Selected()
	if !ok {
		return ""
	}
	width := max(20, m.width-18)

	rows := []string{
		"",
		labelStyle.Render("Title") + ansi.Truncate(a.Title, width, "…"),
		labelStyle.Render("Agency") + a.Agency,
		labelStyle.Render("Published") + a.PublishedAt.Format("02/01/2006 15:04"),
	}
	if a.URL != "" {
		rows = append(rows, labelStyle.Render("URL")+styles.InfoTextStyle.Render(ansi.Truncate(a.URL, width, "…")))
	}
	if a.Category != "" {
		rows = append(rows, labelStyle.Render("Category")+a.Category)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
