package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONWriter outputs reports in JSON format.
type JSONWriter struct {
	output io.Writer
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type jsonReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	FetchedAt   time.Time      `json:"fetched_at"`
	Query       *jsonQuery     `json:"query,omitempty"`
	Source      string         `json:"source"`
	Ranking     []jsonRank     `json:"ranking"`
	Timeline    []jsonBucket   `json:"timeline"`
	Articles    []jsonArticle  `json:"articles"`
	Snapshot    jsonSnapshotSz `json:"snapshot"`
	Matched     int            `json:"matched"`
	Truncated   bool           `json:"truncated,omitempty"`
}

type jsonSnapshotSz struct {
	Articles int `json:"articles"`
	Agencies int `json:"agencies"`
}

type jsonQuery struct {
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Granularity string   `json:"granularity"`
	Agencies    []string `json:"agencies,omitempty"`
	RankFrom    int      `json:"rank_from"`
	RankTo      int      `json:"rank_to"`
}

type jsonRank struct {
	Agency string `json:"agency"`
	Rank   int    `json:"rank"`
	Count  int    `json:"count"`
}

type jsonBucket struct {
	Bucket string `json:"bucket"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type jsonArticle struct {
	PublishedAt time.Time `json:"published_at"`
	Date        string    `json:"date"`
	Agency      string    `json:"agency"`
	Title       string    `json:"title,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// Write outputs the report.
func (w *JSONWriter) Write(r *Report) error {
	out := jsonReport{
		GeneratedAt: r.GeneratedAt,
		FetchedAt:   r.FetchedAt,
		Source:      r.Source,
		Snapshot:    jsonSnapshotSz{Articles: r.Articles, Agencies: r.Agencies},
		Ranking:     []jsonRank{},
		Timeline:    []jsonBucket{},
		Articles:    []jsonArticle{},
	}

	if res := r.Result; res != nil {
		q := res.Query
		out.Query = &jsonQuery{
			Start:       q.Criteria.Start.Format(time.DateOnly),
			End:         q.Criteria.End.Format(time.DateOnly),
			Granularity: q.Granularity.String(),
			Agencies:    q.Criteria.Agencies,
			RankFrom:    q.Window.From,
			RankTo:      q.Window.To,
		}
		out.Matched = res.Matched

		for _, a := range res.Ranking {
			out.Ranking = append(out.Ranking, jsonRank{Agency: a.Agency, Rank: a.Rank, Count: a.Count})
		}
		if res.Totals != nil {
			for _, b := range res.Totals.Buckets {
				out.Timeline = append(out.Timeline, jsonBucket{
					Bucket: b.Bucket.Format(time.DateOnly),
					Label:  res.Totals.Granularity.Label(b.Bucket),
					Count:  b.Count,
				})
			}
		}

		articles, truncated := r.articleRows()
		out.Truncated = truncated
		for _, a := range articles {
			out.Articles = append(out.Articles, jsonArticle{
				PublishedAt: a.PublishedAt,
				Date:        displayDate(a.PublishedAt),
				Agency:      a.Agency,
				Title:       a.Title,
				URL:         a.URL,
			})
		}
	}

	enc := json.NewEncoder(w.output)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	return enc.Encode(out)
}
