package dataset

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-05T10:11:12", time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC), true},
		{"2024-03-05 10:11:12", time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC), true},
		{"2024-03-05T10:11:12Z", time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC), true},
		{" 2024-03-05 ", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"05/03/2024", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseDate(%q) error = %v, want ok=%v", tt.input, err, tt.ok)
			}
			if tt.ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeRow(t *testing.T) {
	row := map[string]any{
		"agency":       " mec ",
		"published_at": "2024-01-02T08:00:00",
		"title":        "Title",
		"url":          "https://example.gov/a",
		"category":     "Education",
		"summary":      "short",
		"views":        json.Number("12"),
	}

	a := decodeRow(row)
	if a.Agency != "mec" {
		t.Errorf("Agency = %q, want mec", a.Agency)
	}
	if !a.PublishedAt.Equal(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("PublishedAt = %v", a.PublishedAt)
	}
	if a.Title != "Title" || a.URL != "https://example.gov/a" || a.Category != "Education" {
		t.Errorf("unexpected fields: %+v", a)
	}
	if a.Extra["summary"] != "short" {
		t.Errorf("Extra[summary] = %q, want short", a.Extra["summary"])
	}
	if _, ok := a.Extra["views"]; ok {
		t.Error("non-string columns should not be kept in Extra")
	}
}

func TestDecodeRow_Dates(t *testing.T) {
	want := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value any
	}{
		{"published_date string", "2023-06-01"},
		{"epoch millis number", json.Number("1685577600000")},
		{"epoch millis float", float64(1685577600000)},
		{"epoch millis string", "1685577600000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := decodeRow(map[string]any{"agency": "x", "published_date": tt.value})
			if !a.PublishedAt.Equal(want) {
				t.Errorf("PublishedAt = %v, want %v", a.PublishedAt, want)
			}
		})
	}
}

func TestDecodeRow_InvalidDate(t *testing.T) {
	a := decodeRow(map[string]any{"agency": "x", "published_at": "not a date"})
	if a.Valid() {
		t.Error("article with an unparsable date should be invalid")
	}

	a = decodeRow(map[string]any{"agency": "x", "published_at": nil})
	if a.Valid() {
		t.Error("article with a null date should be invalid")
	}
}

func TestDecodeRow_PrefersPublishedAt(t *testing.T) {
	want := time.Date(2023, 6, 1, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		row  map[string]any
		want time.Time
	}{
		{
			name: "both columns",
			row:  map[string]any{"agency": "x", "published_date": "2023-05-31", "published_at": "2023-06-01T14:30:00"},
			want: want,
		},
		{
			name: "unparsable published_at",
			row:  map[string]any{"agency": "x", "published_date": "2023-05-31", "published_at": "soon"},
			want: time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "null published_at",
			row:  map[string]any{"agency": "x", "published_date": "2023-05-31", "published_at": nil},
			want: time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Map iteration order varies, so decode repeatedly.
			for range 20 {
				if a := decodeRow(tt.row); !a.PublishedAt.Equal(tt.want) {
					t.Fatalf("PublishedAt = %v, want %v", a.PublishedAt, tt.want)
				}
			}
		})
	}
}
