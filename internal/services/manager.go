// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/govnews-dashboard-tui/internal/analysis"
	"github.com/j-veylop/govnews-dashboard-tui/internal/config"
	"github.com/j-veylop/govnews-dashboard-tui/internal/dataset"
	"github.com/j-veylop/govnews-dashboard-tui/internal/db"
	"github.com/j-veylop/govnews-dashboard-tui/internal/logger"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

type (
	// SnapshotLoadedEvent is emitted after every load, including loads that
	// fell back to a previous snapshot.
	SnapshotLoadedEvent struct {
		Snapshot *models.Snapshot
		FetchErr error // set when Snapshot is a fallback copy
	}

	// DatasetChangedEvent is emitted when the local dataset file changes.
	DatasetChangedEvent struct {
		Path string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SnapshotLoadedEvent) isServiceEvent() {}
func (DatasetChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Notifier shows a desktop notification.
type Notifier func(title, message string) error

func beeepNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Manager owns the dataset loader and its snapshot store, and routes events
// to subscribers.
type Manager struct {
	cfg         *config.Config
	loader      *dataset.Loader
	database    *db.DB
	watcher     *dataset.Watcher
	notify      Notifier
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	lastCount   int
	mu          sync.RWMutex
	closeOnce   sync.Once
}

// NewSource builds the dataset source described by cfg: a local file when
// DATASET_FILE is set, otherwise the Hugging Face rows API.
func NewSource(cfg *config.Config) dataset.Source {
	if cfg.DatasetFile != "" {
		return dataset.NewFileSource(cfg.DatasetFile)
	}
	return dataset.NewHuggingFaceSource(dataset.HuggingFaceConfig{
		Endpoint:    cfg.HFEndpoint,
		Dataset:     cfg.DatasetName,
		Config:      cfg.DatasetConfig,
		Split:       cfg.DatasetSplit,
		Token:       cfg.HFToken,
		PageSize:    cfg.FetchPageSize,
		Concurrency: cfg.FetchConcurrency,
		Timeout:     cfg.FetchTimeout,
	})
}

// NewManager creates a new service manager for the configured source.
func NewManager(cfg *config.Config) (*Manager, error) {
	return NewManagerWithSource(cfg, NewSource(cfg))
}

// NewManagerWithSource creates a manager around an explicit source.
func NewManagerWithSource(cfg *config.Config, source dataset.Source) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		stopChan: make(chan struct{}),
		notify:   beeepNotify,
	}

	var opts []dataset.Option
	if cfg.DatabasePath != "" {
		database, err := db.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		m.database = database
		opts = append(opts, dataset.WithStore(database))
	}

	m.loader = dataset.NewLoader(source, cfg.CacheTTL, opts...)

	if fs, ok := source.(*dataset.FileSource); ok {
		watcher, err := dataset.NewWatcher(fs.Path(), m.handleFileChange)
		if err != nil {
			logger.Warn("dataset file will not be watched", "path", fs.Path(), "error", err)
		} else {
			m.watcher = watcher
			go m.routeWatcherErrors()
		}
	}

	return m, nil
}

// SetNotifier replaces the desktop notifier.
func (m *Manager) SetNotifier(n Notifier) {
	m.mu.Lock()
	m.notify = n
	m.mu.Unlock()
}

func (m *Manager) handleFileChange() {
	m.loader.Invalidate()
	m.broadcast(DatasetChangedEvent{Path: m.loader.Source().Name()})
}

func (m *Manager) routeWatcherErrors() {
	for {
		select {
		case err, ok := <-m.watcher.Errors():
			if !ok {
				return
			}
			m.broadcast(ErrorEvent{Service: "watcher", Error: err})
		case <-m.stopChan:
			return
		}
	}
}

// Load returns the current snapshot, fetching it when the cache is stale.
func (m *Manager) Load(ctx context.Context) (*models.Snapshot, error) {
	snap, err := m.loader.Load(ctx)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "dataset", Error: err})
		return nil, err
	}

	m.checkNotifications(snap)
	m.broadcast(SnapshotLoadedEvent{Snapshot: snap, FetchErr: m.loader.LastError()})
	return snap, nil
}

// Refresh drops the cached snapshot and loads again.
func (m *Manager) Refresh(ctx context.Context) (*models.Snapshot, error) {
	m.loader.Invalidate()
	return m.Load(ctx)
}

// checkNotifications notifies when a reload brings more articles than the
// previous one. The first load only records the count.
func (m *Manager) checkNotifications(snap *models.Snapshot) {
	m.mu.Lock()
	previous := m.lastCount
	m.lastCount = snap.Articles.Len()
	notify := m.notify
	m.mu.Unlock()

	if previous == 0 || snap.Articles.Len() <= previous || !m.cfg.Notifications || notify == nil {
		return
	}

	added := snap.Articles.Len() - previous
	title := "New government news"
	body := fmt.Sprintf("%s new articles (%s total)", humanize.Comma(int64(added)), humanize.Comma(int64(snap.Articles.Len())))
	if err := notify(title, body); err != nil {
		logger.Debug("notification failed", "error", err)
	}
}

// Snapshot returns the loaded snapshot without fetching. It may be nil.
func (m *Manager) Snapshot() *models.Snapshot {
	return m.loader.Cached()
}

// Query runs the analysis pipeline over the current snapshot. A snapshot past
// its TTL is reloaded first, and the reload is broadcast like any other.
func (m *Manager) Query(ctx context.Context, q models.Query) (*models.QueryResult, error) {
	before := m.loader.Cached()
	snap, err := m.loader.Load(ctx)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "dataset", Error: err})
		return nil, err
	}
	if snap != before {
		m.checkNotifications(snap)
		m.broadcast(SnapshotLoadedEvent{Snapshot: snap, FetchErr: m.loader.LastError()})
	}
	return analysis.Run(snap.Articles, q)
}

// DefaultQuery returns the initial query for a snapshot: the configured range
// start up to the latest article, the default granularity and the top-N window.
func (m *Manager) DefaultQuery(snap *models.Snapshot) models.Query {
	return DefaultQuery(m.cfg, snap)
}

// DefaultQuery is the manager-independent form of Manager.DefaultQuery.
func DefaultQuery(cfg *config.Config, snap *models.Snapshot) models.Query {
	start := models.DateOf(cfg.DefaultRangeStart)
	end := models.DateOf(time.Now())
	var agencies int

	if snap != nil {
		if minDate, maxDate, ok := snap.Articles.DateBounds(); ok {
			end = maxDate
			if start.After(end) || start.IsZero() {
				start = minDate
			}
		}
		agencies = len(snap.Articles.Agencies())
	}
	if start.After(end) {
		start = end
	}

	return models.Query{
		Criteria: models.Criteria{
			Start: start,
			End:   end,
		},
		Granularity: cfg.DefaultGranularity,
		Window:      models.DefaultRankWindow(cfg.DefaultTopN, agencies),
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Loader returns the dataset loader.
func (m *Manager) Loader() *dataset.Loader {
	return m.loader
}

// Database returns the snapshot store. It is nil when persistence is disabled.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close stops the watcher and closes the database.
func (m *Manager) Close() error {
	var errs []error
	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.watcher != nil {
			if err := m.watcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
