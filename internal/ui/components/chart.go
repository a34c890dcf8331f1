// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
)

// SeriesPalette colors chart lines in rank order.
var SeriesPalette = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Lime,
	asciigraph.Yellow,
	asciigraph.Blue,
	asciigraph.Magenta,
	asciigraph.Cyan,
	asciigraph.DarkOrange,
	asciigraph.MediumPurple,
	asciigraph.DeepPink,
	asciigraph.Chartreuse,
	asciigraph.DodgerBlue,
	asciigraph.Gold,
}

// SeriesColor returns the chart color of the i-th series and the matching
// lipgloss color for legends.
func SeriesColor(i int) (asciigraph.AnsiColor, lipgloss.Color) {
	c := SeriesPalette[i%len(SeriesPalette)]
	return c, lipgloss.Color(strconv.Itoa(int(c)))
}

func chartSize(width, height int) (int, int) {
	return max(width, 20), max(height, 3)
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	width, height = chartSize(width, height)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// RenderMultiLineChart plots one line per series, colored with SeriesPalette.
// Shorter series are padded with zeros.
func RenderMultiLineChart(series [][]float64, width, height int, caption string) string {
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s))
	}
	if maxLen == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	width, height = chartSize(width, height)

	data := make([][]float64, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	for i, s := range series {
		data[i] = make([]float64, maxLen)
		copy(data[i], s)
		colors[i], _ = SeriesColor(i)
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// RenderBarChart creates a horizontal bar chart of integer counts.
func RenderBarChart(values []int, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 1
	for _, v := range values {
		maxVal = max(maxVal, v)
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}
	maxLabelLen = min(maxLabelLen, max(10, width/3))

	valueWidth := len(humanize.Comma(int64(maxVal))) + 1
	barWidth := max(width-maxLabelLen-valueWidth-3, 10)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = ansi.Truncate(labels[i], maxLabelLen, "…")
		}
		padded := strings.Repeat(" ", maxLabelLen-lipgloss.Width(label)) + label

		barLen := max(0, v*barWidth/maxVal)
		_, color := SeriesColor(i)
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen))

		lines = append(lines, fmt.Sprintf("%s │%s %s", padded, bar, humanize.Comma(int64(v))))
	}

	return strings.Join(lines, "\n")
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	step := max(float64(len(values))/float64(width), 1)

	var result strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderLegend creates a chart legend, wrapping entries to fit width.
func RenderLegend(items []LegendItem, width int) string {
	var lines []string
	var line string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		entry := fmt.Sprintf("%s %s", colorBox, item.Label)
		switch {
		case line == "":
			line = entry
		case width > 0 && lipgloss.Width(line)+2+lipgloss.Width(entry) > width:
			lines = append(lines, line)
			line = entry
		default:
			line += "  " + entry
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// SeriesLegend builds legend items for labels colored like RenderMultiLineChart.
func SeriesLegend(labels []string) []LegendItem {
	items := make([]LegendItem, len(labels))
	for i, l := range labels {
		_, color := SeriesColor(i)
		items[i] = LegendItem{Label: l, Color: color}
	}
	return items
}
