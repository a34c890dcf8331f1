package agencies

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/govnews-dashboard-tui/internal/analysis"
	"github.com/j-veylop/govnews-dashboard-tui/internal/app"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func loadedState(t *testing.T, selected ...string) *app.State {
	t.Helper()
	snap := &models.Snapshot{
		Source: "test",
		Articles: models.Dataset{
			{Agency: "mec", PublishedAt: day(2023, 3, 1)},
			{Agency: "mec", PublishedAt: day(2024, 3, 1)},
			{Agency: "saude", PublishedAt: day(2023, 5, 1)},
			{Agency: "agu", PublishedAt: day(2024, 1, 9)},
		},
	}
	q := models.Query{
		Criteria:    models.Criteria{Start: day(2023, 1, 1), End: day(2024, 12, 31), Agencies: selected},
		Granularity: models.GranularityYear,
		Window:      models.RankWindow{From: 1, To: 3},
	}
	result, err := analysis.Run(snap.Articles, q)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetSnapshot(snap, nil)
	state.SetQuery(q)
	state.SetResult(result)
	return state
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewEmpty(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(100, 30)
	if !strings.Contains(m.View(), "No agencies loaded yet.") {
		t.Error("expected empty message")
	}
}

func TestModel_View(t *testing.T) {
	m := New(loadedState(t))
	m.SetSize(160, 50)

	view := m.View()
	for _, want := range []string{"Agencies", "selected: all", "[*] agu", "[*] mec", "1. mec", "Share of matched articles", "50.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_ViewSelection(t *testing.T) {
	m := New(loadedState(t, "mec"))
	m.SetSize(160, 50)

	view := m.View()
	for _, want := range []string{"selected: 1 of 3", "[x] mec", "[ ] agu", "100.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_CursorMovement(t *testing.T) {
	m := New(loadedState(t))
	m.SetSize(100, 30)

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{keyRunes("j"), 2},
		{keyRunes("j"), 2},
		{tea.KeyMsg{Type: tea.KeyUp}, 1},
		{tea.KeyMsg{Type: tea.KeyPgUp}, 0},
	}
	for _, tt := range tests {
		m.Update(tt.key)
		if m.cursor != tt.want {
			t.Fatalf("after %q cursor = %d, want %d", tt.key.String(), m.cursor, tt.want)
		}
	}
}

func TestModel_ScrollOffset(t *testing.T) {
	m := New(loadedState(t))
	m.SetSize(100, 8) // two visible rows

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}
	if view := m.View(); strings.Contains(view, "[*] agu") {
		t.Error("first agency should be scrolled out of view")
	}
}

func TestModel_Toggle(t *testing.T) {
	m := New(loadedState(t))
	m.SetSize(100, 30)
	m.Update(tea.KeyMsg{Type: tea.KeyDown}) // mec

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if cmd == nil {
		t.Fatal("toggle should emit a command")
	}
	msg, ok := cmd().(app.SetQueryMsg)
	if !ok {
		t.Fatalf("expected SetQueryMsg, got %T", cmd())
	}
	if got := msg.Query.Criteria.Agencies; len(got) != 1 || got[0] != "mec" {
		t.Errorf("Agencies = %v, want [mec]", got)
	}
}

func TestModel_SelectAll(t *testing.T) {
	m := New(loadedState(t))
	if _, cmd := m.Update(keyRunes("a")); cmd != nil {
		t.Error("select all with nothing selected should be a no-op")
	}

	m = New(loadedState(t, "agu"))
	_, cmd := m.Update(keyRunes("a"))
	if cmd == nil {
		t.Fatal("select all should emit a command")
	}
	if msg := cmd().(app.SetQueryMsg); msg.Query.Criteria.Agencies != nil {
		t.Errorf("Agencies = %v, want nil", msg.Query.Criteria.Agencies)
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
