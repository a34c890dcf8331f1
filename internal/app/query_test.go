package app

import (
	"testing"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseQuery() models.Query {
	return models.Query{
		Criteria: models.Criteria{
			Start: date(2015, 1, 1),
			End:   date(2020, 1, 1),
		},
		Granularity: models.GranularityYear,
		Window:      models.RankWindow{From: 1, To: 3},
	}
}

func TestCycleGranularity(t *testing.T) {
	q := baseQuery()
	want := []models.Granularity{
		models.GranularityMonth,
		models.GranularityWeek,
		models.GranularityDay,
		models.GranularityYear,
	}
	for _, g := range want {
		q = CycleGranularity(q)
		if q.Granularity != g {
			t.Errorf("Granularity = %v, want %v", q.Granularity, g)
		}
	}
}

func TestShiftStart(t *testing.T) {
	b := Bounds{Min: date(2014, 6, 1), Max: date(2021, 3, 1)}

	tests := []struct {
		name string
		want time.Time
		n    int
	}{
		{"one year later", date(2016, 1, 1), 1},
		{"clamped to dataset start", date(2014, 6, 1), -2},
		{"clamped to range end", date(2020, 1, 1), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShiftStart(baseQuery(), tt.n, b)
			if !got.Criteria.Start.Equal(tt.want) {
				t.Errorf("Start = %v, want %v", got.Criteria.Start, tt.want)
			}
		})
	}
}

func TestShiftEnd(t *testing.T) {
	b := Bounds{Min: date(2014, 6, 1), Max: date(2021, 3, 1)}

	tests := []struct {
		name string
		want time.Time
		n    int
	}{
		{"one year earlier", date(2019, 1, 1), -1},
		{"clamped to dataset end", date(2021, 3, 1), 5},
		{"clamped to range start", date(2015, 1, 1), -20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShiftEnd(baseQuery(), tt.n, b)
			if !got.Criteria.End.Equal(tt.want) {
				t.Errorf("End = %v, want %v", got.Criteria.End, tt.want)
			}
		})
	}
}

func TestShiftStart_Month(t *testing.T) {
	q := baseQuery()
	q.Granularity = models.GranularityMonth
	got := ShiftStart(q, 2, Bounds{})
	if want := date(2015, 3, 1); !got.Criteria.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", got.Criteria.Start, want)
	}
}

func TestResizeWindow(t *testing.T) {
	tests := []struct {
		name     string
		want     models.RankWindow
		n        int
		agencies int
	}{
		{"grow", models.RankWindow{From: 1, To: 4}, 1, 10},
		{"shrink", models.RankWindow{From: 1, To: 2}, -1, 10},
		{"not below from", models.RankWindow{From: 1, To: 1}, -10, 10},
		{"not beyond agencies", models.RankWindow{From: 1, To: 5}, 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResizeWindow(baseQuery(), tt.n, tt.agencies).Window; got != tt.want {
				t.Errorf("Window = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShiftWindow(t *testing.T) {
	tests := []struct {
		name     string
		want     models.RankWindow
		n        int
		agencies int
	}{
		{"down", models.RankWindow{From: 2, To: 4}, 1, 10},
		{"not above first rank", models.RankWindow{From: 1, To: 3}, -1, 10},
		{"not past last agency", models.RankWindow{From: 3, To: 5}, 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftWindow(baseQuery(), tt.n, tt.agencies).Window; got != tt.want {
				t.Errorf("Window = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToggleAgency(t *testing.T) {
	q := baseQuery()

	q = ToggleAgency(q, "mec")
	q = ToggleAgency(q, "agu")
	if got := q.Criteria.Agencies; len(got) != 2 || got[0] != "agu" || got[1] != "mec" {
		t.Fatalf("Agencies = %v, want [agu mec]", got)
	}
	if !IsSelected(q, "mec") || IsSelected(q, "saude") {
		t.Error("IsSelected does not match the selection")
	}

	q = ToggleAgency(q, "mec")
	q = ToggleAgency(q, "agu")
	if q.Criteria.Agencies != nil {
		t.Errorf("empty selection should be nil, got %v", q.Criteria.Agencies)
	}
	if !IsSelected(q, "saude") {
		t.Error("empty selection should select every agency")
	}
}

func TestToggleAgency_DoesNotAlias(t *testing.T) {
	q := baseQuery()
	q.Criteria.Agencies = []string{"a", "b"}
	original := q.Criteria.Agencies

	_ = ToggleAgency(q, "a")
	if original[0] != "a" || original[1] != "b" {
		t.Errorf("ToggleAgency modified its input: %v", original)
	}
}

func TestSelectAllAgencies(t *testing.T) {
	q := baseQuery()
	q.Criteria.Agencies = []string{"a"}
	if got := SelectAllAgencies(q); got.Criteria.Agencies != nil {
		t.Errorf("Agencies = %v, want nil", got.Criteria.Agencies)
	}
}
