package analysis

import (
	"errors"
	"testing"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

func TestAggregate_MonthTotals(t *testing.T) {
	got, err := Aggregate(sampleDataset(t), models.GranularityMonth, false)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	want := []struct {
		label string
		count int
	}{
		{"2024-01", 2},
		{"2024-02", 1},
	}
	if len(got.Buckets) != len(want) {
		t.Fatalf("Aggregate() returned %d buckets, want %d", len(got.Buckets), len(want))
	}
	for i, w := range want {
		b := got.Buckets[i]
		if label := models.GranularityMonth.Label(b.Bucket); label != w.label {
			t.Errorf("bucket %d label = %q, want %q", i, label, w.label)
		}
		if b.Count != w.count {
			t.Errorf("bucket %d count = %d, want %d", i, b.Count, w.count)
		}
		if b.Agency != "" {
			t.Errorf("bucket %d agency = %q, want empty", i, b.Agency)
		}
	}
}

func TestAggregate_ByAgency(t *testing.T) {
	got, err := Aggregate(sampleDataset(t), models.GranularityMonth, true)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if !got.ByAgency {
		t.Error("ByAgency should be set")
	}

	want := []models.BucketCount{
		{Bucket: date(t, "2024-01-01"), Agency: "A", Count: 1},
		{Bucket: date(t, "2024-01-01"), Agency: "B", Count: 1},
		{Bucket: date(t, "2024-02-01"), Agency: "A", Count: 1},
	}
	if len(got.Buckets) != len(want) {
		t.Fatalf("Aggregate() returned %d buckets, want %d", len(got.Buckets), len(want))
	}
	for i, w := range want {
		b := got.Buckets[i]
		if !b.Bucket.Equal(w.Bucket) || b.Agency != w.Agency || b.Count != w.Count {
			t.Errorf("bucket %d = %+v, want %+v", i, b, w)
		}
	}
}

func TestAggregate_Truncation(t *testing.T) {
	// 2024-01-05 is a Friday; its ISO week starts on Monday 2024-01-01.
	ds := models.Dataset{article(t, "A", "2024-01-05")}

	tests := []struct {
		granularity models.Granularity
		want        string
	}{
		{models.GranularityYear, "2024-01-01"},
		{models.GranularityMonth, "2024-01-01"},
		{models.GranularityWeek, "2024-01-01"},
		{models.GranularityDay, "2024-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.granularity.String(), func(t *testing.T) {
			got, err := Aggregate(ds, tt.granularity, false)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if len(got.Buckets) != 1 {
				t.Fatalf("Aggregate() returned %d buckets, want 1", len(got.Buckets))
			}
			if !got.Buckets[0].Bucket.Equal(date(t, tt.want)) {
				t.Errorf("bucket = %s, want %s", got.Buckets[0].Bucket.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestAggregate_SparseBuckets(t *testing.T) {
	ds := models.Dataset{
		article(t, "A", "2024-01-15"),
		article(t, "A", "2024-04-15"),
	}
	got, err := Aggregate(ds, models.GranularityMonth, false)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(got.Buckets) != 2 {
		t.Errorf("Aggregate() returned %d buckets, want 2 (no zero-filled months)", len(got.Buckets))
	}
}

func TestAggregate_TotalConserved(t *testing.T) {
	ds := models.Dataset{
		article(t, "A", "2019-12-30"),
		article(t, "B", "2020-01-01"),
		article(t, "A", "2020-01-01"),
		article(t, "C", "2020-02-29"),
		article(t, "B", "2021-07-04"),
		article(t, "B", "2021-07-05"),
	}
	filtered, err := Filter(ds, fullRange(t))
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}

	for _, g := range models.Granularities {
		for _, byAgency := range []bool{false, true} {
			got, err := Aggregate(ds, g, byAgency)
			if err != nil {
				t.Fatalf("Aggregate(%s) error = %v", g, err)
			}
			if got.Total() != len(filtered) {
				t.Errorf("Aggregate(%s, %v) total = %d, want %d", g, byAgency, got.Total(), len(filtered))
			}
		}
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	ds := models.Dataset{
		article(t, "Z", "2024-03-01"),
		article(t, "A", "2024-03-01"),
		article(t, "M", "2024-01-01"),
	}
	first, err := Aggregate(ds, models.GranularityDay, true)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	for range 10 {
		again, err := Aggregate(ds, models.GranularityDay, true)
		if err != nil {
			t.Fatalf("Aggregate() error = %v", err)
		}
		for i := range first.Buckets {
			if first.Buckets[i] != again.Buckets[i] {
				t.Fatalf("Aggregate() bucket %d differs between runs: %+v vs %+v",
					i, first.Buckets[i], again.Buckets[i])
			}
		}
	}
}

func TestAggregate_InvalidGranularity(t *testing.T) {
	_, err := Aggregate(sampleDataset(t), models.Granularity(42), false)
	if !errors.Is(err, models.ErrInvalidGranularity) {
		t.Errorf("Aggregate() error = %v, want ErrInvalidGranularity", err)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got, err := Aggregate(nil, models.GranularityYear, true)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(got.Buckets) != 0 || got.Total() != 0 {
		t.Errorf("Aggregate(nil) = %+v, want no buckets", got)
	}
}
