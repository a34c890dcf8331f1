package app

import (
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
	"github.com/j-veylop/govnews-dashboard-tui/internal/report"
	"github.com/j-veylop/govnews-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SnapshotLoadedMsg carries the result of a dataset load.
type SnapshotLoadedMsg struct {
	Snapshot *models.Snapshot
	FetchErr error // non-nil when Snapshot is a fallback copy
	Err      error // non-nil when nothing could be loaded
}

// SetQueryMsg asks the root model to replace the query and recompute.
type SetQueryMsg struct {
	Query models.Query
}

// QueryResultMsg carries the output of a pipeline run.
type QueryResultMsg struct {
	Result   *models.QueryResult
	Snapshot *models.Snapshot // the snapshot the query ran against
	Err      error
	Seq      int
}

// RefreshMsg requests a reload of the dataset, bypassing the cache.
type RefreshMsg struct{}

// ExportMsg requests writing the current result to a report file.
type ExportMsg struct {
	Format report.Format
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Error error
	Path  string
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
