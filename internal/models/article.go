// Package models defines data structures and domain types.
package models

import (
	"slices"
	"time"
)

// Article is a single news item published by a government agency.
type Article struct {
	PublishedAt time.Time
	Extra       map[string]string
	Agency      string
	Title       string
	URL         string
	Category    string
}

// Date returns the calendar date the article was published on, at midnight UTC.
func (a Article) Date() time.Time {
	return DateOf(a.PublishedAt)
}

// Valid reports whether the article satisfies the dataset invariant.
func (a Article) Valid() bool {
	return a.Agency != "" && !a.PublishedAt.IsZero()
}

// DateOf strips the time of day from t, keeping its calendar date in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Dataset is an ordered sequence of articles.
type Dataset []Article

// Len returns the number of articles.
func (d Dataset) Len() int {
	return len(d)
}

// Agencies returns the distinct agencies in the dataset, sorted ascending.
func (d Dataset) Agencies() []string {
	seen := make(map[string]struct{})
	agencies := make([]string, 0)
	for _, a := range d {
		if _, ok := seen[a.Agency]; ok {
			continue
		}
		seen[a.Agency] = struct{}{}
		agencies = append(agencies, a.Agency)
	}
	slices.Sort(agencies)
	return agencies
}

// DateBounds returns the earliest and latest publication dates.
// ok is false for an empty dataset.
func (d Dataset) DateBounds() (minDate, maxDate time.Time, ok bool) {
	if len(d) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate = d[0].Date()
	maxDate = minDate
	for _, a := range d[1:] {
		date := a.Date()
		if date.Before(minDate) {
			minDate = date
		}
		if date.After(maxDate) {
			maxDate = date
		}
	}
	return minDate, maxDate, true
}

// Snapshot is one immutable, fully loaded copy of the dataset.
type Snapshot struct {
	FetchedAt time.Time
	Source    string
	Articles  Dataset
}

// Age returns how long ago the snapshot was fetched.
func (s *Snapshot) Age(now time.Time) time.Duration {
	if s == nil || s.FetchedAt.IsZero() {
		return 0
	}
	return now.Sub(s.FetchedAt)
}
