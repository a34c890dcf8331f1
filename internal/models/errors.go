package models

import "errors"

var (
	// ErrInvalidGranularity is returned for a granularity outside year, month, week and day.
	ErrInvalidGranularity = errors.New("invalid granularity")

	// ErrInvalidDateRange is returned when a date range starts after it ends.
	ErrInvalidDateRange = errors.New("invalid date range: start is after end")
)
