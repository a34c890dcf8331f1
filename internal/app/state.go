// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Dataset bool
	Query   bool
}

// State is shared between the root model and the tabs.
type State struct {
	lastUpdated   time.Time
	snapshot      *models.Snapshot
	result        *models.QueryResult
	fetchErr      error
	query         models.Query
	agencies      []string
	notifications []Notification
	Loading       LoadingState
	notifySeq     int
	hasQuery      bool
	mu            sync.RWMutex
}

// NewState creates an empty state in the initial loading phase.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading:       LoadingState{Initial: true},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "dataset":
		s.Loading.Dataset = loading
	case "query":
		s.Loading.Query = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial || s.Loading.Dataset || s.Loading.Query
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, "initial")
	}
	if s.Loading.Dataset {
		resources = append(resources, "dataset")
	}
	if s.Loading.Query {
		resources = append(resources, "query")
	}
	return resources
}

// SetSnapshot stores a newly loaded snapshot and the error of the fetch that
// produced it, if the snapshot is a fallback copy.
func (s *State) SetSnapshot(snap *models.Snapshot, fetchErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snap
	s.fetchErr = fetchErr
	s.lastUpdated = time.Now()
	s.agencies = nil
	if snap != nil {
		s.agencies = snap.Articles.Agencies()
	}
}

// GetSnapshot returns the current snapshot. It may be nil.
func (s *State) GetSnapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// FetchError returns the error of the last failed fetch, if the snapshot
// being shown is a fallback.
func (s *State) FetchError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchErr
}

// Agencies returns every agency in the snapshot, sorted.
func (s *State) Agencies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agencies
}

// SetQuery replaces the current query.
func (s *State) SetQuery(q models.Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.hasQuery = true
}

// GetQuery returns the current query and whether one was set.
func (s *State) GetQuery() (models.Query, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query, s.hasQuery
}

// SetResult stores the result of the last query.
func (s *State) SetResult(r *models.QueryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = r
}

// GetResult returns the result of the last query. It may be nil.
func (s *State) GetResult() *models.QueryResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifySeq++
	id := fmt.Sprintf("%s-%d", time.Now().Format("20060102150405"), s.notifySeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns when the snapshot was last replaced.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
