package models

import (
	"fmt"
	"time"
)

// Criteria selects the articles that take part in a query.
type Criteria struct {
	Start    time.Time
	End      time.Time
	Agencies []string // empty selects every agency
}

// Validate checks that the date range is well formed.
func (c Criteria) Validate() error {
	if DateOf(c.Start).After(DateOf(c.End)) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			c.Start.Format(time.DateOnly), c.End.Format(time.DateOnly))
	}
	return nil
}

// AgencySet returns the selected agencies as a set; nil means all agencies.
func (c Criteria) AgencySet() map[string]struct{} {
	if len(c.Agencies) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(c.Agencies))
	for _, a := range c.Agencies {
		set[a] = struct{}{}
	}
	return set
}

// BucketCount is the number of articles in one time bucket, optionally for one agency.
type BucketCount struct {
	Bucket time.Time
	Agency string // empty when counts are summed across agencies
	Count  int
}

// BucketedCounts is the output of the temporal aggregator.
type BucketedCounts struct {
	Buckets     []BucketCount
	Granularity Granularity
	ByAgency    bool
}

// Total returns the sum of all bucket counts.
func (b *BucketedCounts) Total() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, bc := range b.Buckets {
		total += bc.Count
	}
	return total
}

// Labels returns the distinct bucket labels in bucket order.
func (b *BucketedCounts) Labels() []string {
	if b == nil {
		return nil
	}
	labels := make([]string, 0, len(b.Buckets))
	var last time.Time
	for i, bc := range b.Buckets {
		if i > 0 && bc.Bucket.Equal(last) {
			continue
		}
		last = bc.Bucket
		labels = append(labels, b.Granularity.Label(bc.Bucket))
	}
	return labels
}

// Series returns the counts for a single agency aligned to Labels().
// With an empty agency it returns the per-bucket totals.
func (b *BucketedCounts) Series(agency string) []float64 {
	if b == nil || len(b.Buckets) == 0 {
		return nil
	}
	var series []float64
	var last time.Time
	for i, bc := range b.Buckets {
		if i == 0 || !bc.Bucket.Equal(last) {
			series = append(series, 0)
			last = bc.Bucket
		}
		if agency == "" || bc.Agency == agency {
			series[len(series)-1] += float64(bc.Count)
		}
	}
	return series
}

// AgencyTotal is one entry of an agency ranking.
type AgencyTotal struct {
	Agency string
	Rank   int
	Count  int
}

// RankWindow is an inclusive, 1-based range of ranking positions.
type RankWindow struct {
	From int
	To   int
}

// DefaultRankWindow returns 1..min(topN, agencies).
func DefaultRankWindow(topN, agencies int) RankWindow {
	return RankWindow{From: 1, To: min(topN, agencies)}
}

// Query bundles everything needed for one recomputation pass.
type Query struct {
	Criteria    Criteria
	Granularity Granularity
	Window      RankWindow
}

// QueryResult is what the presentation layer renders.
type QueryResult struct {
	Totals   *BucketedCounts
	ByAgency *BucketedCounts
	Ranking  []AgencyTotal
	Articles Dataset // filtered, restricted to ranked agencies, sorted for display
	Query    Query
	Matched  int // articles matching the criteria, before the rank window
}
