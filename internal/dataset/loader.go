package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/j-veylop/govnews-dashboard-tui/internal/logger"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// DefaultTTL is how long a loaded snapshot is served before refetching.
const DefaultTTL = 6 * time.Hour

// SnapshotStore persists the last good snapshot per source.
type SnapshotStore interface {
	SaveSnapshot(snap *models.Snapshot) error
	LatestSnapshot(source string) (*models.Snapshot, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithStore persists every successful load and falls back to the stored copy
// when a fetch fails before anything was loaded in memory.
func WithStore(store SnapshotStore) Option {
	return func(l *Loader) { l.store = store }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// Loader fetches the dataset from a Source and caches it for the TTL.
// It is safe for concurrent use; concurrent misses share one fetch.
type Loader struct {
	source   Source
	store    SnapshotStore
	now      func() time.Time
	snapshot *models.Snapshot
	lastErr  error
	group    singleflight.Group
	ttl      time.Duration
	gen      uint64 // bumped by Invalidate
	mu       sync.RWMutex
	stale    bool
}

// NewLoader creates a loader. A non-positive ttl disables caching.
func NewLoader(source Source, ttl time.Duration, opts ...Option) *Loader {
	l := &Loader{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the loader's source.
func (l *Loader) Source() Source {
	return l.source
}

// Load returns the cached snapshot while it is fresh, otherwise fetches a new
// one. When the fetch fails the last good snapshot is returned instead; with
// none available the error wraps ErrDataUnavailable.
func (l *Loader) Load(ctx context.Context) (*models.Snapshot, error) {
	if snap := l.fresh(); snap != nil {
		return snap, nil
	}

	v, err, _ := l.group.Do(l.source.Name(), func() (any, error) {
		if snap := l.fresh(); snap != nil {
			return snap, nil
		}
		return l.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Snapshot), nil
}

// Cached returns the current snapshot without fetching. It may be nil.
func (l *Loader) Cached() *models.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

// LastError returns the error of the most recent fetch, nil if it succeeded.
func (l *Loader) LastError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// Invalidate makes the next Load refetch. The current snapshot is kept as a
// fallback.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.gen++
	l.stale = true
	l.mu.Unlock()
}

func (l *Loader) fresh() *models.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.snapshot == nil || l.stale || l.ttl <= 0 {
		return nil
	}
	if l.snapshot.Age(l.now()) >= l.ttl {
		return nil
	}
	return l.snapshot
}

func (l *Loader) refresh(ctx context.Context) (*models.Snapshot, error) {
	l.mu.RLock()
	gen := l.gen
	l.mu.RUnlock()

	started := l.now()
	rows, err := l.source.Fetch(ctx)
	if err != nil {
		return l.fallback(err)
	}

	articles := make(models.Dataset, 0, len(rows))
	for _, a := range rows {
		if a.Valid() {
			articles = append(articles, a)
		}
	}
	if dropped := len(rows) - len(articles); dropped > 0 {
		logger.Warn("dropped invalid rows", "source", l.source.Name(), "count", dropped)
	}

	snap := &models.Snapshot{
		FetchedAt: l.now(),
		Source:    l.source.Name(),
		Articles:  articles,
	}

	l.mu.Lock()
	l.snapshot = snap
	// An Invalidate during the fetch may describe content this fetch missed.
	l.stale = l.gen != gen
	l.lastErr = nil
	l.mu.Unlock()

	logger.Info("dataset loaded",
		"source", snap.Source,
		"articles", len(articles),
		"duration", l.now().Sub(started))

	if l.store != nil {
		if err := l.store.SaveSnapshot(snap); err != nil {
			logger.Error("failed to persist snapshot", "error", err)
		}
	}
	return snap, nil
}

func (l *Loader) fallback(fetchErr error) (*models.Snapshot, error) {
	l.mu.Lock()
	l.lastErr = fetchErr
	snap := l.snapshot
	l.mu.Unlock()

	if snap != nil {
		logger.Warn("fetch failed, serving previous snapshot", "error", fetchErr, "fetched_at", snap.FetchedAt)
		return snap, nil
	}

	if l.store != nil {
		stored, err := l.store.LatestSnapshot(l.source.Name())
		if err != nil {
			logger.Error("failed to read stored snapshot", "error", err)
		}
		if stored != nil {
			l.mu.Lock()
			if l.snapshot == nil {
				l.snapshot = stored
				l.stale = true
			}
			snap = l.snapshot
			l.mu.Unlock()
			logger.Warn("fetch failed, serving stored snapshot", "error", fetchErr, "fetched_at", stored.FetchedAt)
			return snap, nil
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, fetchErr)
}

// IsUnavailable reports whether err means no data could be loaded at all.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}
