package analysis

import (
	"cmp"
	"slices"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// SortForDisplay returns a copy of ds ordered by publication time descending,
// then agency ascending.
func SortForDisplay(ds models.Dataset) models.Dataset {
	out := slices.Clone(ds)
	slices.SortStableFunc(out, func(a, b models.Article) int {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Agency, b.Agency)
	})
	return out
}
