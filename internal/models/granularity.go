package models

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the time-bucketing unit used for aggregation.
type Granularity int

const (
	// GranularityYear buckets by calendar year.
	GranularityYear Granularity = iota
	// GranularityMonth buckets by calendar month.
	GranularityMonth
	// GranularityWeek buckets by ISO week, starting on Monday.
	GranularityWeek
	// GranularityDay buckets by calendar day.
	GranularityDay
)

// Granularities lists every supported granularity from coarsest to finest.
var Granularities = []Granularity{GranularityYear, GranularityMonth, GranularityWeek, GranularityDay}

// String returns the lowercase name of the granularity.
func (g Granularity) String() string {
	switch g {
	case GranularityYear:
		return "year"
	case GranularityMonth:
		return "month"
	case GranularityWeek:
		return "week"
	case GranularityDay:
		return "day"
	default:
		return "unknown"
	}
}

// Title returns the display name of the granularity.
func (g Granularity) Title() string {
	switch g {
	case GranularityYear:
		return "Year"
	case GranularityMonth:
		return "Month"
	case GranularityWeek:
		return "Week"
	case GranularityDay:
		return "Day"
	default:
		return "Unknown"
	}
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	return g >= GranularityYear && g <= GranularityDay
}

// Next cycles to the next finer granularity, wrapping to year after day.
func (g Granularity) Next() Granularity {
	return (g + 1) % Granularity(len(Granularities))
}

// ParseGranularity parses a granularity name, case-insensitively.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "year":
		return GranularityYear, nil
	case "month":
		return GranularityMonth, nil
	case "week":
		return GranularityWeek, nil
	case "day":
		return GranularityDay, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
	}
}

// Truncate maps a date to the start of the bucket containing it.
func (g Granularity) Truncate(t time.Time) (time.Time, error) {
	d := DateOf(t)
	switch g {
	case GranularityYear:
		return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
	case GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case GranularityWeek:
		// time.Weekday has Sunday = 0; shift so Monday is the first day.
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset), nil
	case GranularityDay:
		return d, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidGranularity, int(g))
	}
}

// Step moves a bucket start n buckets forward (or backward for negative n).
func (g Granularity) Step(t time.Time, n int) time.Time {
	switch g {
	case GranularityYear:
		return t.AddDate(n, 0, 0)
	case GranularityMonth:
		return t.AddDate(0, n, 0)
	case GranularityWeek:
		return t.AddDate(0, 0, 7*n)
	default:
		return t.AddDate(0, 0, n)
	}
}

// Label formats a bucket start for display.
func (g Granularity) Label(bucket time.Time) string {
	switch g {
	case GranularityYear:
		return bucket.Format("2006")
	case GranularityMonth:
		return bucket.Format("2006-01")
	case GranularityWeek:
		year, week := bucket.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return bucket.Format("2006-01-02")
	}
}
