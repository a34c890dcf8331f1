package analysis

import (
	"testing"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func article(t *testing.T, agency, published string) models.Article {
	t.Helper()
	return models.Article{Agency: agency, PublishedAt: date(t, published), Title: agency + " " + published}
}

// sampleDataset is the three-article example used throughout the tests.
func sampleDataset(t *testing.T) models.Dataset {
	t.Helper()
	return models.Dataset{
		article(t, "A", "2024-01-05"),
		article(t, "A", "2024-02-10"),
		article(t, "B", "2024-01-20"),
	}
}

func fullRange(t *testing.T) models.Criteria {
	t.Helper()
	return models.Criteria{Start: date(t, "2000-01-01"), End: date(t, "2100-01-01")}
}
