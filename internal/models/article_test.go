package models

import (
	"testing"
	"time"
)

func TestArticle_Date(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	a := Article{PublishedAt: time.Date(2024, 5, 10, 22, 15, 0, 0, loc)}

	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	if got := a.Date(); !got.Equal(want) {
		t.Errorf("Date() = %v, want %v", got, want)
	}
}

func TestArticle_Valid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		a    Article
		want bool
	}{
		{"Valid", Article{Agency: "mec", PublishedAt: now}, true},
		{"NoAgency", Article{PublishedAt: now}, false},
		{"NoDate", Article{Agency: "mec"}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDataset_Agencies(t *testing.T) {
	now := time.Now()
	ds := Dataset{
		{Agency: "saude", PublishedAt: now},
		{Agency: "mec", PublishedAt: now},
		{Agency: "saude", PublishedAt: now},
	}

	got := ds.Agencies()
	want := []string{"mec", "saude"}
	if len(got) != len(want) {
		t.Fatalf("Agencies() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Agencies()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := (Dataset{}).Agencies(); got == nil || len(got) != 0 {
		t.Errorf("Agencies() on empty dataset = %v, want empty slice", got)
	}
}

func TestDataset_DateBounds(t *testing.T) {
	ds := Dataset{
		{Agency: "a", PublishedAt: time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Agency: "b", PublishedAt: time.Date(2019, 7, 4, 10, 0, 0, 0, time.UTC)},
		{Agency: "c", PublishedAt: time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC)},
	}

	minDate, maxDate, ok := ds.DateBounds()
	if !ok {
		t.Fatal("DateBounds() ok = false")
	}
	if !minDate.Equal(time.Date(2019, 7, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("min = %v", minDate)
	}
	if !maxDate.Equal(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("max = %v", maxDate)
	}

	if _, _, ok := (Dataset{}).DateBounds(); ok {
		t.Error("DateBounds() on empty dataset should report ok = false")
	}
}

func TestSnapshot_Age(t *testing.T) {
	now := time.Now()
	s := &Snapshot{FetchedAt: now.Add(-time.Hour)}
	if got := s.Age(now); got != time.Hour {
		t.Errorf("Age() = %v, want 1h", got)
	}

	var nilSnap *Snapshot
	if got := nilSnap.Age(now); got != 0 {
		t.Errorf("Age() on nil = %v, want 0", got)
	}
}
