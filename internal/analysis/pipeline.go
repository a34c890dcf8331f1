package analysis

import (
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// Run executes one full pass: filter, aggregate totals and per-agency counts,
// rank the agencies inside the query window and list their articles.
func Run(ds models.Dataset, q models.Query) (*models.QueryResult, error) {
	filtered, err := Filter(ds, q.Criteria)
	if err != nil {
		return nil, err
	}

	totals, err := Aggregate(filtered, q.Granularity, false)
	if err != nil {
		return nil, err
	}

	byAgency, err := Aggregate(filtered, q.Granularity, true)
	if err != nil {
		return nil, err
	}

	ranking := RankRange(byAgency, q.Window.From, q.Window.To)
	agencies := make([]string, len(ranking))
	for i, r := range ranking {
		agencies[i] = r.Agency
	}

	return &models.QueryResult{
		Query:    q,
		Totals:   totals,
		ByAgency: byAgency,
		Ranking:  ranking,
		Articles: SortForDisplay(FilterAgencies(filtered, agencies)),
		Matched:  filtered.Len(),
	}, nil
}
