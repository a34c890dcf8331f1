package models

import (
	"errors"
	"testing"
	"time"
)

func TestCriteria_Validate(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := (Criteria{Start: day, End: day}).Validate(); err != nil {
		t.Errorf("zero-width range should be valid, got %v", err)
	}
	// Same calendar day with a later time of day is still a zero-width range.
	if err := (Criteria{Start: day.Add(20 * time.Hour), End: day}).Validate(); err != nil {
		t.Errorf("same-day range should be valid, got %v", err)
	}
	err := (Criteria{Start: day.AddDate(0, 0, 1), End: day}).Validate()
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("Validate() error = %v, want ErrInvalidDateRange", err)
	}
}

func TestCriteria_AgencySet(t *testing.T) {
	if set := (Criteria{}).AgencySet(); set != nil {
		t.Errorf("AgencySet() = %v, want nil for all agencies", set)
	}
	set := (Criteria{Agencies: []string{"a", "b", "a"}}).AgencySet()
	if len(set) != 2 {
		t.Errorf("AgencySet() has %d entries, want 2", len(set))
	}
}

func TestBucketedCounts_SeriesAndLabels(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	counts := &BucketedCounts{
		Granularity: GranularityMonth,
		ByAgency:    true,
		Buckets: []BucketCount{
			{Bucket: jan, Agency: "A", Count: 1},
			{Bucket: jan, Agency: "B", Count: 2},
			{Bucket: feb, Agency: "A", Count: 4},
		},
	}

	labels := counts.Labels()
	if len(labels) != 2 || labels[0] != "2024-01" || labels[1] != "2024-02" {
		t.Errorf("Labels() = %v", labels)
	}

	tests := []struct {
		agency string
		want   []float64
	}{
		{"", []float64{3, 4}},
		{"A", []float64{1, 4}},
		{"B", []float64{2, 0}},
	}
	for _, tt := range tests {
		got := counts.Series(tt.agency)
		if len(got) != len(tt.want) {
			t.Fatalf("Series(%q) = %v, want %v", tt.agency, got, tt.want)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Series(%q)[%d] = %v, want %v", tt.agency, i, got[i], tt.want[i])
			}
		}
	}

	if counts.Total() != 7 {
		t.Errorf("Total() = %d, want 7", counts.Total())
	}

	var nilCounts *BucketedCounts
	if nilCounts.Total() != 0 || nilCounts.Series("") != nil || nilCounts.Labels() != nil {
		t.Error("nil BucketedCounts should behave as empty")
	}
}

func TestDefaultRankWindow(t *testing.T) {
	if w := DefaultRankWindow(10, 3); w.From != 1 || w.To != 3 {
		t.Errorf("DefaultRankWindow(10, 3) = %+v", w)
	}
	if w := DefaultRankWindow(10, 40); w.To != 10 {
		t.Errorf("DefaultRankWindow(10, 40) = %+v", w)
	}
}
