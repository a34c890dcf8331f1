package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

const maxTitleLen = 80

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the report.
func (w *MarkdownWriter) Write(r *Report) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, r)
	if r.Result == nil {
		md.Warningf("No query result available for %s.", r.Source)
		return md.Build()
	}
	w.writeRanking(md, r)
	w.writeTimeline(md, r)
	w.writeArticles(md, r)
	w.writeFooter(md, r)

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, r *Report) {
	md.H1("Government News Report")
	md.PlainText("")

	rows := [][]string{
		{"Source", "`" + r.Source + "`"},
		{"Snapshot", r.FetchedAt.Format("2006-01-02 15:04:05 MST")},
		{"Articles in snapshot", humanize.Comma(int64(r.Articles))},
		{"Agencies in snapshot", strconv.Itoa(r.Agencies)},
	}
	if res := r.Result; res != nil {
		q := res.Query
		rows = append(rows,
			[]string{"Date range", displayDate(q.Criteria.Start) + " - " + displayDate(q.Criteria.End)},
			[]string{"Granularity", q.Granularity.Title()},
			[]string{"Rank window", strconv.Itoa(q.Window.From) + " - " + strconv.Itoa(q.Window.To)},
			[]string{"Matching articles", humanize.Comma(int64(res.Matched))},
		)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if r.Result != nil && len(r.Result.Query.Criteria.Agencies) > 0 {
		md.PlainText("### Selected agencies")
		md.PlainText("")
		md.BulletList(r.Result.Query.Criteria.Agencies...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeRanking(md *markdown.Markdown, r *Report) {
	md.H2("Agency Ranking")
	md.PlainText("")

	ranking := r.Result.Ranking
	if len(ranking) == 0 {
		md.Note("No agencies published articles in the selected range.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(ranking))
	for i, a := range ranking {
		rows[i] = []string{strconv.Itoa(a.Rank), a.Agency, humanize.Comma(int64(a.Count))}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Agency", "Articles"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Articles per agency"),
		piechart.WithShowData(true),
	)
	for _, a := range ranking {
		if a.Count > 0 {
			chart.LabelAndIntValue(a.Agency, uint64(a.Count))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeTimeline(md *markdown.Markdown, r *Report) {
	totals := r.Result.Totals
	md.H2("Articles per " + r.Result.Query.Granularity.String())
	md.PlainText("")

	if totals == nil || len(totals.Buckets) == 0 {
		md.PlainText("No articles in the selected range.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(totals.Buckets))
	for i, b := range totals.Buckets {
		rows[i] = []string{totals.Granularity.Label(b.Bucket), humanize.Comma(int64(b.Count))}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Period", "Articles"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeArticles(md *markdown.Markdown, r *Report) {
	md.H2("Articles")
	md.PlainText("")

	articles, truncated := r.articleRows()
	if len(articles) == 0 {
		md.PlainText("No articles for the ranked agencies.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(articles))
	for i, a := range articles {
		title := truncateString(a.Title, maxTitleLen)
		if a.URL != "" {
			title = "[" + title + "](" + a.URL + ")"
		}
		rows[i] = []string{displayDate(a.PublishedAt), a.Agency, title}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Date", "Agency", "Title"},
		Rows:   rows,
	})
	md.PlainText("")

	if truncated {
		md.Note(fmt.Sprintf("Showing the latest %d of %s articles.", len(articles),
			humanize.Comma(int64(len(r.Result.Articles)))))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, r *Report) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated %s*", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
}

// truncateString truncates a string to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
