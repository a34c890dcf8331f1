package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

type bucketKey struct {
	bucket time.Time
	agency string
}

// Aggregate counts articles per time bucket, and per agency when byAgency is set.
//
// Buckets are sparse: only truncated dates present in ds get a bin, empty
// intermediate periods are left out rather than zero-filled.
func Aggregate(ds models.Dataset, g models.Granularity, byAgency bool) (*models.BucketedCounts, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidGranularity, int(g))
	}

	counts := make(map[bucketKey]int)
	for _, a := range ds {
		bucket, err := g.Truncate(a.PublishedAt)
		if err != nil {
			return nil, err
		}
		key := bucketKey{bucket: bucket}
		if byAgency {
			key.agency = a.Agency
		}
		counts[key]++
	}

	buckets := make([]models.BucketCount, 0, len(counts))
	for k, n := range counts {
		buckets = append(buckets, models.BucketCount{Bucket: k.bucket, Agency: k.agency, Count: n})
	}
	slices.SortFunc(buckets, func(a, b models.BucketCount) int {
		if c := a.Bucket.Compare(b.Bucket); c != 0 {
			return c
		}
		return cmp.Compare(a.Agency, b.Agency)
	})

	return &models.BucketedCounts{
		Buckets:     buckets,
		Granularity: g,
		ByAgency:    byAgency,
	}, nil
}
