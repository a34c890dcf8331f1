package analysis

import (
	"cmp"
	"slices"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// Totals sums bucket counts per agency and returns the full ranking:
// count descending, ties broken by agency name ascending.
// Buckets without an agency do not contribute.
func Totals(counts *models.BucketedCounts) []models.AgencyTotal {
	if counts == nil {
		return []models.AgencyTotal{}
	}

	sums := make(map[string]int)
	for _, bc := range counts.Buckets {
		if bc.Agency == "" {
			continue
		}
		sums[bc.Agency] += bc.Count
	}

	ranking := make([]models.AgencyTotal, 0, len(sums))
	for agency, n := range sums {
		ranking = append(ranking, models.AgencyTotal{Agency: agency, Count: n})
	}
	slices.SortFunc(ranking, func(a, b models.AgencyTotal) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Agency, b.Agency)
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}

// Rank returns the topN agencies by total article count.
// topN <= 0 yields an empty ranking.
func Rank(counts *models.BucketedCounts, topN int) []models.AgencyTotal {
	return RankRange(counts, 1, topN)
}

// RankRange returns the agencies ranked from..to (1-based, inclusive).
// Out of range bounds are clamped; an empty window yields an empty ranking.
func RankRange(counts *models.BucketedCounts, from, to int) []models.AgencyTotal {
	if to <= 0 || from > to {
		return []models.AgencyTotal{}
	}
	from = max(from, 1)

	ranking := Totals(counts)
	if from > len(ranking) {
		return []models.AgencyTotal{}
	}
	to = min(to, len(ranking))
	return ranking[from-1 : to]
}
