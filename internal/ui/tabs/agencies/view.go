package agencies

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/govnews-dashboard-tui/internal/app"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
)

const (
	listWidth  = 34
	sparkWidth = 8
)

// View renders the agencies tab.
func (m *Model) View() string {
	agencies := m.state.Agencies()
	if len(agencies) == 0 {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(styles.HelpStyle.Render("No agencies loaded yet."))
	}

	q, _ := m.state.GetQuery()
	r := m.state.GetResult()
	list := m.renderList(agencies, q, r)
	detail := m.renderDetail(r)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail))
}

func (m *Model) renderList(agencies []string, q models.Query, r *models.QueryResult) string {
	selected := "all"
	if n := len(q.Criteria.Agencies); n > 0 {
		selected = fmt.Sprintf("%d of %d", n, len(agencies))
	}

	rows := []string{
		styles.SubTitleStyle.Render("Agencies"),
		styles.HelpStyle.Render("selected: " + selected),
		"",
	}

	end := min(len(agencies), m.offset+m.listHeight())
	for i := m.offset; i < end; i++ {
		mark := "[ ]"
		if len(q.Criteria.Agencies) == 0 {
			mark = "[*]"
		} else if app.IsSelected(q, agencies[i]) {
			mark = "[x]"
		}

		nameWidth := listWidth - 2 - sparkWidth - 1
		line := ansi.Truncate(fmt.Sprintf("%s %s", mark, agencies[i]), nameWidth, "…")
		if r != nil {
			line += strings.Repeat(" ", nameWidth-lipgloss.Width(line)+1) +
				components.RenderSparkline(r.ByAgency.Series(agencies[i]), sparkWidth)
		}
		if i == m.cursor {
			rows = append(rows, styles.SelectedListItemStyle.Render("> "+line))
		} else {
			rows = append(rows, styles.ListItemStyle.Render(line))
		}
	}

	if len(agencies) > m.listHeight() {
		rows = append(rows, styles.HelpStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(agencies))))
	}

	return lipgloss.NewStyle().Width(listWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderDetail(r *models.QueryResult) string {
	if r == nil {
		return styles.HelpStyle.Render("Computing...")
	}
	if len(r.Ranking) == 0 {
		return styles.HelpStyle.Render("No articles match the current filters.")
	}

	width := max(30, m.width-listWidth-12)

	labels := make([]string, len(r.Ranking))
	series := make([][]float64, len(r.Ranking))
	for i, at := range r.Ranking {
		labels[i] = fmt.Sprintf("%d. %s", at.Rank, at.Agency)
		series[i] = r.ByAgency.Series(at.Agency)
	}

	bucketLabels := r.ByAgency.Labels()
	caption := fmt.Sprintf("Articles per %s", r.Query.Granularity)
	if len(bucketLabels) > 0 {
		caption = fmt.Sprintf("%s, %s .. %s", caption, bucketLabels[0], bucketLabels[len(bucketLabels)-1])
	}

	bar := components.NewShareBar(min(28, width/3))
	shares := make([]string, len(r.Ranking))
	for i, at := range r.Ranking {
		shares[i] = bar.View(labels[i], at.Count, r.Matched, width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render(fmt.Sprintf("Ranks %d-%d by %s", r.Query.Window.From, r.Query.Window.To, r.Query.Granularity)),
		components.RenderMultiLineChart(series, width-8, max(5, m.height/3), caption),
		"",
		components.RenderLegend(components.SeriesLegend(labels), width),
		"",
		styles.SubTitleStyle.Render("Share of matched articles"),
		lipgloss.JoinVertical(lipgloss.Left, shares...),
	)
}
