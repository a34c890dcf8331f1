package app

import (
	"errors"
	"testing"
	"time"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if !s.IsInitialLoading() {
		t.Error("Initial loading should be true")
	}
	if s.GetSnapshot() != nil || s.GetResult() != nil {
		t.Error("new state should have no snapshot or result")
	}
	if _, ok := s.GetQuery(); ok {
		t.Error("new state should have no query")
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading("dataset", true)
	if !s.Loading.Dataset {
		t.Error("Dataset loading should be true")
	}

	s.SetLoading("dataset", false)
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}
	if resources := s.GetLoadingResources(); len(resources) != 0 {
		t.Errorf("GetLoadingResources should be empty, got %v", resources)
	}

	s.SetLoading("query", true)
	resources := s.GetLoadingResources()
	if len(resources) != 1 || resources[0] != "query" {
		t.Errorf("GetLoadingResources should contain query, got %v", resources)
	}
}

func TestState_Snapshot(t *testing.T) {
	s := NewState()
	snap := &models.Snapshot{Articles: models.Dataset{
		{Agency: "b", PublishedAt: time.Now()},
		{Agency: "a", PublishedAt: time.Now()},
		{Agency: "b", PublishedAt: time.Now()},
	}}
	fetchErr := errors.New("offline")

	s.SetSnapshot(snap, fetchErr)

	if s.GetSnapshot() != snap {
		t.Error("GetSnapshot should return the stored snapshot")
	}
	if !errors.Is(s.FetchError(), fetchErr) {
		t.Errorf("FetchError = %v, want %v", s.FetchError(), fetchErr)
	}
	agencies := s.Agencies()
	if len(agencies) != 2 || agencies[0] != "a" || agencies[1] != "b" {
		t.Errorf("Agencies = %v, want [a b]", agencies)
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}
}

func TestState_QueryAndResult(t *testing.T) {
	s := NewState()
	q := models.Query{Granularity: models.GranularityWeek, Window: models.RankWindow{From: 1, To: 3}}
	s.SetQuery(q)

	got, ok := s.GetQuery()
	if !ok || got.Granularity != models.GranularityWeek || got.Window.To != 3 {
		t.Errorf("GetQuery = %+v, %v", got, ok)
	}

	r := &models.QueryResult{Matched: 7}
	s.SetResult(r)
	if s.GetResult() != r {
		t.Error("GetResult should return the stored result")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "Hello", time.Minute)
	if len(s.GetNotifications()) != 1 {
		t.Fatal("expected 1 notification")
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("notification should be removed")
	}

	for range maxNotifications + 5 {
		s.AddNotification(NotificationInfo, "x", time.Minute)
	}
	if got := len(s.GetNotifications()); got != maxNotifications {
		t.Errorf("expected %d notifications, got %d", maxNotifications, got)
	}
}

func TestState_ExpiredNotifications(t *testing.T) {
	s := NewState()
	s.AddNotification(NotificationError, "old", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if len(s.GetNotifications()) != 0 {
		t.Error("expired notification should be hidden")
	}
	s.ClearExpiredNotifications()
	if len(s.notifications) != 0 {
		t.Error("expired notification should be removed")
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()
	s.SetLoadingNotification("Loading")
	s.SetLoadingNotification("Still loading")

	n := s.GetNotifications()
	if len(n) != 1 || n[0].Message != "Still loading" || n[0].Type != NotificationLoading {
		t.Errorf("unexpected notifications: %+v", n)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		want string
		n    NotificationType
	}{
		{"success", NotificationSuccess},
		{"error", NotificationError},
		{"warning", NotificationWarning},
		{"info", NotificationInfo},
		{"loading", NotificationLoading},
		{"unknown", NotificationType(99)},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.n, got, tt.want)
		}
	}
}
