package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
)

// LoadingSpinner animates while a dataset load is in flight and reports how
// long the load has been running.
type LoadingSpinner struct {
	started time.Time
	spinner spinner.Model
	label   string
	style   lipgloss.Style
}

// NewSpinner creates an idle spinner with the given label.
func NewSpinner(label string) LoadingSpinner {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return LoadingSpinner{
		spinner: s,
		label:   label,
		style:   lipgloss.NewStyle().Foreground(styles.TextSecondary),
	}
}

// Start marks the beginning of a load.
func (l *LoadingSpinner) Start(label string, now time.Time) {
	l.label = label
	l.started = now
}

// Stop marks the load as finished.
func (l *LoadingSpinner) Stop() {
	l.started = time.Time{}
}

// Running reports whether a load is in flight.
func (l LoadingSpinner) Running() bool {
	return !l.started.IsZero()
}

// Elapsed returns how long the current load has been running.
func (l LoadingSpinner) Elapsed(now time.Time) time.Duration {
	if !l.Running() {
		return 0
	}
	return now.Sub(l.started).Truncate(time.Second)
}

// Update handles spinner tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// View renders the spinner glyph.
func (l LoadingSpinner) View() string {
	return l.spinner.View()
}

// ViewWithLabel renders the glyph, the label and, after the first second,
// the elapsed time.
func (l LoadingSpinner) ViewWithLabel(now time.Time) string {
	text := l.label
	if d := l.Elapsed(now); d >= time.Second {
		text += " " + d.String()
	}
	return l.spinner.View() + " " + l.style.Render(text)
}

// Tick returns the tick command for the spinner.
func (l LoadingSpinner) Tick() tea.Cmd {
	return l.spinner.Tick
}
