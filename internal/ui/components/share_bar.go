package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
)

// ShareBar renders an agency's share of the matched articles.
type ShareBar struct {
	progress   progress.Model
	labelWidth int
}

// NewShareBar creates a share bar with gradient colors.
func NewShareBar(labelWidth int) ShareBar {
	p := progress.New(
		progress.WithScaledGradient("#5fafff", "#00af5f"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return ShareBar{progress: p, labelWidth: labelWidth}
}

// View renders "label [bar] count pct%" in width columns.
// count out of total sets the filled part; total 0 renders an empty bar.
func (s ShareBar) View(label string, count, total, width int) string {
	percent := 0.0
	if total > 0 {
		percent = float64(count) * 100 / float64(total)
	}

	countStr := humanize.Comma(int64(count))
	s.progress.Width = max(width-s.labelWidth-len(countStr)-10, 10)

	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(s.labelWidth).
		Render(ansi.Truncate(label, s.labelWidth-1, "…"))

	percentStr := styles.GetShareStyle(percent).
		Width(7).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.1f%%", percent))

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		labelStr,
		s.progress.ViewAs(percent/100),
		" ",
		countStr,
		percentStr,
	)
}
