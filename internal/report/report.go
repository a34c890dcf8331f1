// Package report renders query results as shareable Markdown or JSON documents.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// Format selects the output encoding of a report.
type Format string

const (
	// FormatMarkdown renders tables and a mermaid pie chart.
	FormatMarkdown Format = "markdown"
	// FormatJSON renders the report for programmatic use.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat accepts "markdown", "md" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".md"
}

// DefaultFileName returns a timestamped report file name.
func DefaultFileName(f Format, now time.Time) string {
	return "govnews-report-" + now.Format("20060102-150405") + f.Ext()
}

// Report is a query result together with the snapshot it was computed from.
type Report struct {
	GeneratedAt time.Time
	FetchedAt   time.Time
	Result      *models.QueryResult
	Source      string
	Agencies    int // distinct agencies in the whole snapshot
	Articles    int // articles in the whole snapshot
	MaxArticles int // article rows to include; 0 means all
}

// New builds a report. snap may be nil when only the result is known.
func New(snap *models.Snapshot, result *models.QueryResult, now time.Time) *Report {
	r := &Report{
		GeneratedAt: now,
		Result:      result,
	}
	if snap != nil {
		r.Source = snap.Source
		r.FetchedAt = snap.FetchedAt
		r.Articles = snap.Articles.Len()
		r.Agencies = len(snap.Articles.Agencies())
	}
	return r
}

// articleRows returns the articles to list, honoring MaxArticles.
func (r *Report) articleRows() (models.Dataset, bool) {
	if r.Result == nil {
		return nil, false
	}
	rows := r.Result.Articles
	if r.MaxArticles > 0 && len(rows) > r.MaxArticles {
		return rows[:r.MaxArticles], true
	}
	return rows, false
}

// Writer outputs a report.
type Writer interface {
	Write(r *Report) error
}

// NewWriter returns the writer for a format.
func NewWriter(f Format, output io.Writer) (Writer, error) {
	switch f {
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// displayDate formats article dates the way the dashboard shows them.
func displayDate(t time.Time) string {
	return t.Format("02/01/2006")
}
