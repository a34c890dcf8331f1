package overview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
)

// View renders the overview tab.
func (m *Model) View() string {
	result := m.state.GetResult()
	switch {
	case result != nil:
	case m.state.IsInitialLoading() || m.state.Loading.Dataset:
		return m.renderMessage(styles.HelpStyle.Render("Loading dataset..."))
	case m.state.GetSnapshot() == nil:
		return m.renderMessage(lipgloss.JoinVertical(lipgloss.Left,
			styles.ErrorTextStyle.Render("Dataset unavailable."),
			styles.HelpStyle.Render("Press r to try again."),
		))
	default:
		return m.renderMessage(styles.HelpStyle.Render("Computing..."))
	}

	sections := []string{
		m.renderHeader(result),
		m.renderMetrics(result),
		m.renderTotalsChart(result),
		m.renderRanking(result),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderMessage(content string) string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(r *models.QueryResult) string {
	title := styles.TitleStyle.Render("Government News Overview")

	var source string
	if snap := m.state.GetSnapshot(); snap != nil {
		source = fmt.Sprintf("%s, fetched %s", snap.Source, humanize.Time(snap.FetchedAt))
	}
	if err := m.state.FetchError(); err != nil {
		source += " " + styles.WarningTextStyle.Render("(offline copy)")
	}

	agencies := "all agencies"
	if n := len(r.Query.Criteria.Agencies); n > 0 {
		agencies = fmt.Sprintf("%d selected %s", n, plural(n, "agency", "agencies"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.HelpStyle.Render(source),
		styles.HelpStyle.Render(agencies),
		"",
	)
}

func (m *Model) renderMetrics(r *models.QueryResult) string {
	publishing := 0
	if r.ByAgency != nil {
		seen := make(map[string]struct{})
		for _, b := range r.ByAgency.Buckets {
			seen[b.Agency] = struct{}{}
		}
		publishing = len(seen)
	}

	cards := []string{
		metricCard("Articles", humanize.Comma(int64(r.Matched))),
		metricCard("Agencies", humanize.Comma(int64(publishing))),
		metricCard(r.Query.Granularity.Title()+"s", humanize.Comma(int64(len(r.Totals.Labels())))),
		metricCard("Range", fmt.Sprintf("%s - %s",
			r.Query.Criteria.Start.Format("02/01/2006"),
			r.Query.Criteria.End.Format("02/01/2006"))),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n"
}

func metricCard(label, value string) string {
	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.HelpStyle.Render(label),
		styles.MetricValueStyle.Render(value),
	))
}

func (m *Model) renderTotalsChart(r *models.QueryResult) string {
	title := styles.SubTitleStyle.Render(fmt.Sprintf("Articles per %s", strings.ToLower(r.Query.Granularity.Title())))

	labels := r.Totals.Labels()
	if len(labels) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			styles.HelpStyle.Render("No articles in the selected range."), "")
	}

	caption := labels[0]
	if len(labels) > 1 {
		caption = fmt.Sprintf("%s .. %s", labels[0], labels[len(labels)-1])
	}
	chart := components.RenderLineChart(r.Totals.Series(""), m.chartWidth(), 10, caption)

	return lipgloss.JoinVertical(lipgloss.Left, title, chart, "")
}

func (m *Model) renderRanking(r *models.QueryResult) string {
	title := styles.SubTitleStyle.Render(fmt.Sprintf("Top agencies (ranks %d-%d)",
		r.Query.Window.From, r.Query.Window.To))

	if len(r.Ranking) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render("No agencies to rank."))
	}

	values := make([]int, len(r.Ranking))
	labels := make([]string, len(r.Ranking))
	for i, at := range r.Ranking {
		values[i] = at.Count
		labels[i] = fmt.Sprintf("%d. %s", at.Rank, at.Agency)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title,
		components.RenderBarChart(values, labels, m.chartWidth()))
}

func (m *Model) chartWidth() int {
	return max(20, m.width-16)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
