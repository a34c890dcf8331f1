package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/govnews-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderDatasetCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, dataset and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

func (m *Model) renderCard(title string, rows []string) string {
	content := append([]string{styles.CardTitleStyle.Render(title), ""}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	) + "\n"
}

func (m *Model) renderConfigCard() string {
	if m.config == nil {
		return m.renderCard("Configuration", []string{styles.HelpStyle.Render("Configuration not loaded")})
	}
	c := m.config

	rows := []string{renderRow("Dataset", c.SourceName())}
	if c.DatasetFile == "" {
		rows = append(rows,
			renderRow("Fetch", fmt.Sprintf("%d rows/page, %d concurrent, %s per request",
				c.FetchPageSize, c.FetchConcurrency, c.FetchTimeout)))
	}
	rows = append(rows,
		renderRow("Cache TTL", c.CacheTTL.String()),
		renderRow("Database", valueOr(c.DatabasePath, "disabled")),
		renderRow("Log File", valueOr(c.LogFile, "stderr")),
		renderRow("Granularity", c.DefaultGranularity.String()),
		renderRow("Top N", fmt.Sprintf("%d", c.DefaultTopN)),
		renderRow("Range Start", c.DefaultRangeStart.Format("02/01/2006")),
	)
	return m.renderCard("Configuration", rows)
}

func (m *Model) renderDatasetCard() string {
	snap := m.state.GetSnapshot()
	if snap == nil {
		return m.renderCard("Dataset", []string{styles.HelpStyle.Render("No snapshot loaded")})
	}

	status := styles.SuccessTextStyle.Render("fresh")
	if err := m.state.FetchError(); err != nil {
		status = styles.WarningTextStyle.Render("offline copy: " + err.Error())
	}

	rows := []string{
		renderRow("Source", snap.Source),
		renderRow("Fetched", fmt.Sprintf("%s (%s)", snap.FetchedAt.Format("02/01/2006 15:04"), humanize.Time(snap.FetchedAt))),
		renderRow("Status", status),
		renderRow("Articles", humanize.Comma(int64(snap.Articles.Len()))),
		renderRow("Agencies", humanize.Comma(int64(len(m.state.Agencies())))),
	}
	if minDate, maxDate, ok := snap.Articles.DateBounds(); ok {
		rows = append(rows, renderRow("Dates", fmt.Sprintf("%s - %s",
			minDate.Format("02/01/2006"), maxDate.Format("02/01/2006"))))
	}

	switch {
	case m.store == nil:
	case m.storedErr != nil:
		rows = append(rows, renderRow("Stored Copy", styles.ErrorTextStyle.Render(m.storedErr.Error())))
	case m.stored != nil:
		rows = append(rows, renderRow("Stored Copy", fmt.Sprintf("#%d, %s articles, %s",
			m.stored.ID, humanize.Comma(int64(m.stored.ArticleCount)), humanize.Time(m.stored.FetchedAt))))
	case !m.pending:
		rows = append(rows, renderRow("Stored Copy", "none"))
	}

	return m.renderCard("Dataset", rows)
}

func (m *Model) renderAboutCard() string {
	rows := []string{
		renderRow("Version", version.GetVersion()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}
	return m.renderCard("About "+version.Name, rows)
}

func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(14).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
