package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/govnews-dashboard-tui/internal/logger"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
	"github.com/j-veylop/govnews-dashboard-tui/internal/report"
	"github.com/j-veylop/govnews-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// loadTimeout bounds a full dataset download from the TUI.
	loadTimeout = 5 * time.Minute

	// reloadInterval spaces out reloads of an expired snapshot.
	reloadInterval = time.Minute
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadSnapshotCmd loads the dataset. With refresh set the cache is bypassed.
func loadSnapshotCmd(mgr *services.Manager, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		load := mgr.Load
		if refresh {
			load = mgr.Refresh
		}
		snap, err := load(ctx)
		if err != nil {
			return SnapshotLoadedMsg{Err: err}
		}
		return SnapshotLoadedMsg{Snapshot: snap, FetchErr: mgr.Loader().LastError()}
	}
}

// runQueryCmd runs the analysis pipeline off the update loop.
func runQueryCmd(mgr *services.Manager, q models.Query, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		result, err := mgr.Query(ctx, q)
		return QueryResultMsg{Result: result, Snapshot: mgr.Snapshot(), Err: err, Seq: seq}
	}
}

// exportCmd writes the current result to a timestamped file in dir.
func exportCmd(snap *models.Snapshot, result *models.QueryResult, format report.Format, dir string) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		path := filepath.Join(dir, report.DefaultFileName(format, now))

		f, err := os.Create(path)
		if err != nil {
			return ExportResultMsg{Error: fmt.Errorf("failed to create report: %w", err)}
		}

		w, err := report.NewWriter(format, f)
		if err == nil {
			err = w.Write(report.New(snap, result, now))
		}
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return ExportResultMsg{Error: err, Path: path}
		}

		logger.Info("report exported", "path", path, "format", string(format))
		return ExportResultMsg{Path: path}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// SetQueryCmd returns a command asking the root model to apply q.
func SetQueryCmd(q models.Query) tea.Cmd {
	return func() tea.Msg {
		return SetQueryMsg{Query: q}
	}
}
