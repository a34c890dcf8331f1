// Package analysis implements the filtering, temporal bucketing and ranking
// pipeline behind the dashboard. Every function here is pure: inputs are never
// mutated and identical inputs always produce identical outputs.
package analysis

import (
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// Filter returns the articles matching both the agency set and the inclusive date range.
// An empty result is not an error.
func Filter(ds models.Dataset, c models.Criteria) (models.Dataset, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	start := models.DateOf(c.Start)
	end := models.DateOf(c.End)
	agencies := c.AgencySet()

	out := make(models.Dataset, 0)
	for _, a := range ds {
		if agencies != nil {
			if _, ok := agencies[a.Agency]; !ok {
				continue
			}
		}
		date := a.Date()
		if date.Before(start) || date.After(end) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// FilterAgencies keeps the articles published by one of the given agencies.
func FilterAgencies(ds models.Dataset, agencies []string) models.Dataset {
	set := make(map[string]struct{}, len(agencies))
	for _, a := range agencies {
		set[a] = struct{}{}
	}
	out := make(models.Dataset, 0)
	for _, a := range ds {
		if _, ok := set[a.Agency]; ok {
			out = append(out, a)
		}
	}
	return out
}
