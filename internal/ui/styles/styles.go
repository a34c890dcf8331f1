// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the dashboard theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("35")  // Green
	Secondary = lipgloss.Color("220") // Yellow
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("214") // Orange
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 2).
	MarginRight(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary)

// MetricValueStyle styles the big number inside a metric card.
var MetricValueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpDescStyle styles help descriptions.
var HelpDescStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// ListItemStyle styles list items.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedListItemStyle styles the list item under the cursor.
var SelectedListItemStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(Subtle)

// TableSelectedStyle styles selected table rows.
var TableSelectedStyle = lipgloss.NewStyle().
	Background(BgAccent).
	Foreground(TextPrimary).
	Bold(true)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// ShareHighStyle for agencies publishing more than a quarter of the articles.
var ShareHighStyle = lipgloss.NewStyle().
	Foreground(Success).
	Bold(true)

// ShareMediumStyle for agencies publishing 5-25% of the articles.
var ShareMediumStyle = lipgloss.NewStyle().
	Foreground(Secondary)

// ShareLowStyle for the long tail.
var ShareLowStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// GetShareStyle returns the style for an agency's share of the articles, in percent.
func GetShareStyle(percent float64) lipgloss.Style {
	switch {
	case percent > 25:
		return ShareHighStyle
	case percent >= 5:
		return ShareMediumStyle
	default:
		return ShareLowStyle
	}
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
