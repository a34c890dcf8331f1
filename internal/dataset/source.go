// Package dataset loads the news dataset from its remote or local source and
// caches the resulting snapshot for a configurable window.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// Source fetches a complete copy of the dataset.
type Source interface {
	// Name identifies the source; snapshots are stored under this name.
	Name() string

	// Fetch downloads every row. Rows that fail to decode are returned with
	// zero fields and dropped by the loader.
	Fetch(ctx context.Context) (models.Dataset, error)
}

var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	time.DateOnly,
}

// ParseDate parses the date and timestamp forms found in the dataset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// decodeRow maps a raw row to an article. Unknown scalar columns end up in Extra.
func decodeRow(row map[string]any) models.Article {
	var a models.Article
	for key, value := range row {
		switch key {
		case "agency":
			a.Agency = strings.TrimSpace(stringValue(value))
		case "published_at", "published_date":
		case "title":
			a.Title = stringValue(value)
		case "url":
			a.URL = stringValue(value)
		case "category":
			a.Category = stringValue(value)
		default:
			s, ok := value.(string)
			if !ok || s == "" {
				continue
			}
			if a.Extra == nil {
				a.Extra = make(map[string]string)
			}
			a.Extra[key] = s
		}
	}

	// published_at carries the time of day; published_date is the fallback.
	a.PublishedAt = timeValue(row["published_at"])
	if a.PublishedAt.IsZero() {
		a.PublishedAt = timeValue(row["published_date"])
	}
	return a
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// timeValue accepts strings in any of dateFormats or epoch milliseconds.
func timeValue(v any) time.Time {
	switch val := v.(type) {
	case string:
		if t, err := ParseDate(val); err == nil {
			return t
		}
		if ms, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	case float64:
		if !math.IsNaN(val) && !math.IsInf(val, 0) {
			return time.UnixMilli(int64(val)).UTC()
		}
	case json.Number:
		if ms, err := val.Int64(); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	}
	return time.Time{}
}
