package app

import (
	"slices"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// Bounds are the first and last publication dates of the loaded dataset.
type Bounds struct {
	Min time.Time
	Max time.Time
}

// CycleGranularity switches to the next granularity.
func CycleGranularity(q models.Query) models.Query {
	q.Granularity = q.Granularity.Next()
	return q
}

// ShiftStart moves the range start by n granularity steps, keeping it inside
// the dataset bounds and not after the range end.
func ShiftStart(q models.Query, n int, b Bounds) models.Query {
	start := q.Granularity.Step(q.Criteria.Start, n)
	start = clampDate(start, b.Min, q.Criteria.End)
	q.Criteria.Start = start
	return q
}

// ShiftEnd moves the range end by n granularity steps, keeping it inside the
// dataset bounds and not before the range start.
func ShiftEnd(q models.Query, n int, b Bounds) models.Query {
	end := q.Granularity.Step(q.Criteria.End, n)
	end = clampDate(end, q.Criteria.Start, b.Max)
	q.Criteria.End = end
	return q
}

func clampDate(t, lo, hi time.Time) time.Time {
	if !lo.IsZero() && t.Before(lo) {
		t = lo
	}
	if !hi.IsZero() && t.After(hi) {
		t = hi
	}
	return models.DateOf(t)
}

// ResizeWindow grows or shrinks the rank window end by n, keeping at least
// one position and at most agencies positions.
func ResizeWindow(q models.Query, n, agencies int) models.Query {
	w := q.Window
	w.To = max(w.From, min(w.To+n, agencies))
	q.Window = w
	return q
}

// ShiftWindow slides the rank window by n positions inside 1..agencies.
func ShiftWindow(q models.Query, n, agencies int) models.Query {
	w := q.Window
	width := w.To - w.From
	from := max(1, w.From+n)
	if agencies > 0 {
		from = min(from, max(1, agencies-width))
	}
	q.Window = models.RankWindow{From: from, To: from + width}
	return q
}

// ToggleAgency adds agency to the selection or removes it.
// The selection is kept sorted; an empty selection means all agencies.
func ToggleAgency(q models.Query, agency string) models.Query {
	selected := slices.Clone(q.Criteria.Agencies)
	if i := slices.Index(selected, agency); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected = append(selected, agency)
		slices.Sort(selected)
	}
	if len(selected) == 0 {
		selected = nil
	}
	q.Criteria.Agencies = selected
	return q
}

// SelectAllAgencies clears the agency selection.
func SelectAllAgencies(q models.Query) models.Query {
	q.Criteria.Agencies = nil
	return q
}

// IsSelected reports whether agency passes the query's agency filter.
func IsSelected(q models.Query, agency string) bool {
	return len(q.Criteria.Agencies) == 0 || slices.Contains(q.Criteria.Agencies, agency)
}
