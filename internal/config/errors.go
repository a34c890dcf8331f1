package config

import "errors"

// Configuration validation errors returned by Load and Config.Validate.
var (
	// ErrInvalidCacheTTL is returned when CACHE_TTL is not positive.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be positive")

	// ErrInvalidTopN is returned when DEFAULT_TOP_N is not positive.
	ErrInvalidTopN = errors.New("invalid default top N: must be positive")

	// ErrInvalidPageSize is returned when FETCH_PAGE_SIZE is outside 1..100.
	ErrInvalidPageSize = errors.New("invalid fetch page size: must be between 1 and 100")

	// ErrInvalidConcurrency is returned when FETCH_CONCURRENCY is not positive.
	ErrInvalidConcurrency = errors.New("invalid fetch concurrency: must be positive")

	// ErrInvalidTimeout is returned when FETCH_TIMEOUT is not positive.
	ErrInvalidTimeout = errors.New("invalid fetch timeout: must be positive")

	// ErrInvalidRangeStart is returned when DEFAULT_RANGE_START is not a YYYY-MM-DD date.
	ErrInvalidRangeStart = errors.New("invalid default range start: expected YYYY-MM-DD")

	// ErrNoDataset is returned when neither a dataset name nor a local file is configured.
	ErrNoDataset = errors.New("no dataset configured: set DATASET_NAME or DATASET_FILE")
)
