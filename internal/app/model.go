// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/govnews-dashboard-tui/internal/config"
	"github.com/j-veylop/govnews-dashboard-tui/internal/dataset"
	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
	"github.com/j-veylop/govnews-dashboard-tui/internal/report"
	"github.com/j-veylop/govnews-dashboard-tui/internal/services"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/govnews-dashboard-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabOverview is the ID for the overview tab.
	TabOverview TabID = iota
	// TabAgencies is the ID for the agencies tab.
	TabAgencies
	// TabArticles is the ID for the articles tab.
	TabArticles
	// TabInfo is the ID for the info tab.
	TabInfo
)

var tabNames = []string{"Overview", "Agencies", "Articles", "Info"}

// defaultTopN sizes the rank window when no configuration is available.
const defaultTopN = 10

// String returns the string representation of the TabID.
func (t TabID) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1          key.Binding
	Tab2          key.Binding
	Tab3          key.Binding
	Tab4          key.Binding
	NextTab       key.Binding
	PrevTab       key.Binding
	Refresh       key.Binding
	Help          key.Binding
	Quit          key.Binding
	Escape        key.Binding
	Granularity   key.Binding
	StartEarlier  key.Binding
	StartLater    key.Binding
	EndEarlier    key.Binding
	EndLater      key.Binding
	WiderWindow   key.Binding
	NarrowWindow  key.Binding
	WindowUp      key.Binding
	WindowDown    key.Binding
	ExportReport  key.Binding
	ExportJSON    key.Binding
	ResetSettings key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setActionKeys(km)
	km = setQueryKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "agencies"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "articles"))
	k.Tab4 = key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab/→", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab/←", "prev tab"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Refresh = key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload dataset"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	k.ExportReport = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export markdown"))
	k.ExportJSON = key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export json"))
	k.ResetSettings = key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset filters"))
	return k
}

func setQueryKeys(k KeyMap) KeyMap {
	k.Granularity = key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "granularity"))
	k.StartEarlier = key.NewBinding(key.WithKeys("["), key.WithHelp("[", "start earlier"))
	k.StartLater = key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "start later"))
	k.EndEarlier = key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "end earlier"))
	k.EndLater = key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "end later"))
	k.WiderWindow = key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more ranks"))
	k.NarrowWindow = key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer ranks"))
	k.WindowUp = key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "ranks up"))
	k.WindowDown = key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "ranks down"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Granularity, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.NextTab, k.PrevTab},
		{k.Granularity, k.StartEarlier, k.StartLater, k.EndEarlier, k.EndLater},
		{k.WiderWindow, k.NarrowWindow, k.WindowUp, k.WindowDown, k.ResetSettings},
		{k.Refresh, k.ExportReport, k.ExportJSON, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	Content lipgloss.Style
	Footer  lipgloss.Style
	Toast   lipgloss.Style

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#00875F", Dark: "#00AF5F"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FFAF00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#D7005F", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Footer = lipgloss.NewStyle().Padding(0, 1)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)

	return s
}

// Model is the main application model.
type Model struct {
	state        *State
	services     *services.Manager
	eventChannel chan services.ServiceEvent
	exportDir    string
	tabs         []Tab
	styles       Styles
	keymap       KeyMap
	help         help.Model
	spinner      components.LoadingSpinner
	activeTab    TabID
	querySeq     int
	lastReload   time.Time // last reload started by expiry
	width        int
	height       int
	showHelp     bool
	ready        bool
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	return &Model{
		activeTab: TabOverview,
		tabs:      make([]Tab, len(tabNames)),
		state:     NewState(),
		services:  mgr,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		spinner:   components.NewSpinner("Loading dataset..."),
		exportDir: ".",
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// SetExportDir sets where exported reports are written.
func (m *Model) SetExportDir(dir string) {
	m.exportDir = dir
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Loading dataset...")
	m.spinner.Start("Loading dataset...", time.Now())

	cmds := []tea.Cmd{
		m.spinner.Tick(),
		defaultTickCmd(),
	}

	if m.services != nil {
		m.state.SetLoading("dataset", true)
		cmds = append(cmds,
			subscribeToServicesCmd(m.services),
			loadSnapshotCmd(m.services, false),
		)
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tea.KeyMsg:
		if cmd, handled := m.handleKeyMsg(msg); handled {
			return m, cmd
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		if cmd := m.reloadIfExpired(msg.Time); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case SnapshotLoadedMsg:
		cmds = append(cmds, m.handleSnapshotLoaded(msg)...)
	case SetQueryMsg:
		cmds = append(cmds, m.applyQuery(msg.Query))
	case QueryResultMsg:
		cmds = append(cmds, m.handleQueryResult(msg)...)
	case RefreshMsg:
		cmds = append(cmds, m.refresh())
	case ExportMsg:
		cmds = append(cmds, m.export(msg.Format))
	case ExportResultMsg:
		if msg.Error != nil {
			cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Export failed: %v", msg.Error)))
		} else {
			cmds = append(cmds, notifySuccessCmd("Report written to "+msg.Path))
		}
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case StartLoadingMsg:
		m.state.SetLoading(msg.Resource, true)
		m.state.SetLoadingNotification("Refreshing...")
	case StopLoadingMsg:
		m.stopLoading(msg.Resource)
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(msg.Error.Error()))
	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) stopLoading(resource string) {
	m.state.SetLoading(resource, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

func (m *Model) handleSnapshotLoaded(msg SnapshotLoadedMsg) []tea.Cmd {
	m.state.SetLoading("initial", false)
	m.stopLoading("dataset")
	m.spinner.Stop()

	if msg.Err != nil {
		text := fmt.Sprintf("Failed to load dataset: %v", msg.Err)
		if errors.Is(msg.Err, dataset.ErrDataUnavailable) {
			text = "Dataset unavailable, press r to retry"
		}
		return []tea.Cmd{notifyErrorCmd(text)}
	}

	m.state.SetSnapshot(msg.Snapshot, msg.FetchErr)

	var cmds []tea.Cmd
	if msg.FetchErr != nil {
		cmds = append(cmds, notifyWarningCmd(fmt.Sprintf("Fetch failed, showing snapshot from %s",
			humanize.Time(msg.Snapshot.FetchedAt))))
	} else {
		cmds = append(cmds, notifyInfoCmd(fmt.Sprintf("Loaded %s articles",
			humanize.Comma(int64(msg.Snapshot.Articles.Len())))))
	}

	q, ok := m.state.GetQuery()
	if !ok {
		q = m.defaultQuery(msg.Snapshot)
	} else {
		q = m.fitQuery(q)
	}
	cmds = append(cmds, m.applyQuery(q))
	return cmds
}

// fitQuery keeps a previous query valid for a newly loaded snapshot.
func (m *Model) fitQuery(q models.Query) models.Query {
	b := m.bounds()
	q = ShiftEnd(ShiftStart(q, 0, b), 0, b)
	agencies := len(m.state.Agencies())
	if q.Window.To > agencies {
		q = ShiftWindow(ResizeWindow(q, 0, agencies), 0, agencies)
	}
	return q
}

func (m *Model) defaultQuery(snap *models.Snapshot) models.Query {
	cfg := &config.Config{DefaultTopN: defaultTopN}
	if m.services != nil {
		cfg = m.services.Config()
	}
	return services.DefaultQuery(cfg, snap)
}

func (m *Model) applyQuery(q models.Query) tea.Cmd {
	m.state.SetQuery(q)
	if m.services == nil || m.state.GetSnapshot() == nil {
		return nil
	}
	m.querySeq++
	m.state.SetLoading("query", true)
	return runQueryCmd(m.services, q, m.querySeq)
}

func (m *Model) handleQueryResult(msg QueryResultMsg) []tea.Cmd {
	m.stopLoading("query")
	if msg.Err != nil {
		return []tea.Cmd{notifyErrorCmd(msg.Err.Error())}
	}
	// Results of superseded queries are dropped.
	if msg.Seq != m.querySeq {
		return nil
	}
	// The query reloaded an expired snapshot; refit the query to it and run again.
	if msg.Snapshot != nil && msg.Snapshot != m.state.GetSnapshot() {
		return m.handleSnapshotLoaded(SnapshotLoadedMsg{
			Snapshot: msg.Snapshot,
			FetchErr: m.services.Loader().LastError(),
		})
	}
	m.state.SetResult(msg.Result)
	return nil
}

// reloadIfExpired starts a background load once the snapshot outlives the
// cache TTL. Expired fallback copies are retried at most every reloadInterval.
func (m *Model) reloadIfExpired(now time.Time) tea.Cmd {
	snap := m.state.GetSnapshot()
	if m.services == nil || snap == nil || m.state.AnyLoading() {
		return nil
	}
	ttl := m.services.Config().CacheTTL
	if ttl <= 0 || snap.Age(now) < ttl || now.Sub(m.lastReload) < reloadInterval {
		return nil
	}
	m.lastReload = now
	m.state.SetLoading("dataset", true)
	m.spinner.Start("Reloading dataset...", now)
	return loadSnapshotCmd(m.services, false)
}

func (m *Model) refresh() tea.Cmd {
	if m.services == nil {
		return nil
	}
	m.state.SetLoading("dataset", true)
	m.state.SetLoadingNotification("Reloading dataset...")
	m.spinner.Start("Reloading dataset...", time.Now())
	return loadSnapshotCmd(m.services, true)
}

func (m *Model) export(format report.Format) tea.Cmd {
	result := m.state.GetResult()
	if result == nil {
		return notifyWarningCmd("Nothing to export yet")
	}
	return exportCmd(m.state.GetSnapshot(), result, format, m.exportDir)
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.DatasetChangedEvent:
		if m.services == nil {
			return nil
		}
		m.state.SetLoading("dataset", true)
		m.spinner.Start("Reloading dataset...", time.Now())
		return tea.Batch(
			notifyInfoCmd("Dataset file changed, reloading"),
			loadSnapshotCmd(m.services, false),
		)

	case services.ErrorEvent:
		// Load failures already surface through SnapshotLoadedMsg.
		if e.Service != "dataset" {
			return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
		}
	}
	return nil
}

func (m *Model) bounds() Bounds {
	snap := m.state.GetSnapshot()
	if snap == nil {
		return Bounds{}
	}
	minDate, maxDate, _ := snap.Articles.DateBounds()
	return Bounds{Min: minDate, Max: maxDate}
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-5)
	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(id TabID) {
	if len(m.tabs) == 0 {
		return
	}
	m.activeTab = TabID((int(id) + len(m.tabs)) % len(m.tabs))
	m.updateTabSizes()
}

// handleKeyMsg handles global keys. handled is false for keys the active tab
// should see.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case key.Matches(msg, m.keymap.Escape):
		if m.showHelp {
			m.showHelp = false
			return nil, true
		}
		return nil, false

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabOverview)
	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabAgencies)
	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabArticles)
	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabInfo)
	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(m.activeTab + 1)
	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(m.activeTab - 1)

	case key.Matches(msg, m.keymap.Refresh):
		return m.refresh(), true
	case key.Matches(msg, m.keymap.ExportReport):
		return m.export(report.FormatMarkdown), true
	case key.Matches(msg, m.keymap.ExportJSON):
		return m.export(report.FormatJSON), true

	default:
		return m.handleQueryKey(msg)
	}
	return nil, true
}

func (m *Model) handleQueryKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	q, ok := m.state.GetQuery()
	if !ok {
		return nil, false
	}
	b := m.bounds()
	agencies := len(m.state.Agencies())

	switch {
	case key.Matches(msg, m.keymap.Granularity):
		q = CycleGranularity(q)
	case key.Matches(msg, m.keymap.StartEarlier):
		q = ShiftStart(q, -1, b)
	case key.Matches(msg, m.keymap.StartLater):
		q = ShiftStart(q, 1, b)
	case key.Matches(msg, m.keymap.EndEarlier):
		q = ShiftEnd(q, -1, b)
	case key.Matches(msg, m.keymap.EndLater):
		q = ShiftEnd(q, 1, b)
	case key.Matches(msg, m.keymap.WiderWindow):
		q = ResizeWindow(q, 1, agencies)
	case key.Matches(msg, m.keymap.NarrowWindow):
		q = ResizeWindow(q, -1, agencies)
	case key.Matches(msg, m.keymap.WindowUp):
		q = ShiftWindow(q, -1, agencies)
	case key.Matches(msg, m.keymap.WindowDown):
		q = ShiftWindow(q, 1, agencies)
	case key.Matches(msg, m.keymap.ResetSettings):
		q = m.defaultQuery(m.state.GetSnapshot())
	default:
		return nil, false
	}
	return m.applyQuery(q), true
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(m.spinner.ViewWithLabel(time.Now())))
		return b.String()
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.ShortHelpView(m.keymap.ShortHelp())))

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if notifications := m.renderNotifications(); len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := padLines(strings.Split(mainView, "\n"), m.height)
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := lipgloss.Width(overlay)
	y := max(0, (m.height-len(overlayLines))/2)
	x := max(0, (m.width-overlayWidth)/2)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]
		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

// padLines extends lines to n entries so overlays can reach the bottom of the screen.
func padLines(lines []string, n int) []string {
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) renderNavbar() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	if q, ok := m.state.GetQuery(); ok {
		tabs = append(tabs, m.styles.Subtle.Render(fmt.Sprintf("  %s | %s - %s | ranks %d-%d",
			q.Granularity.Title(),
			q.Criteria.Start.Format("02/01/2006"),
			q.Criteria.End.Format("02/01/2006"),
			q.Window.From, q.Window.To)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	toasts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		message := n.Message
		if n.Type == NotificationLoading {
			if d := m.spinner.Elapsed(time.Now()); d >= time.Second {
				message += " " + d.String()
			}
		}
		content := style.Render(fmt.Sprintf("%s %s", prefix, message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := padLines(strings.Split(mainView, "\n"), m.height)

	startX := max(m.width-lipgloss.Width(toastStack)-2, 0)
	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			mainLines[lineIdx] = mainLine + strings.Repeat(" ", startX-mainLineWidth) + toastLine
		} else {
			mainLines[lineIdx] = ansi.Truncate(mainLine, startX, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	lines := []string{m.styles.Title.Render("Keyboard Shortcuts"), ""}

	sections := []string{"Navigation", "Time range", "Ranking", "Actions"}
	for i, group := range m.keymap.FullHelp() {
		lines = append(lines, m.styles.Highlight.Render(sections[i]))
		for _, binding := range group {
			lines = append(lines, fmt.Sprintf("  %-12s %s", binding.Help().Key, binding.Help().Desc))
		}
		lines = append(lines, "")
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		if tabHelp := m.tabs[m.activeTab].ShortHelp(); len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(m.activeTab.String()+" Tab"))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-12s %s", binding.Help().Key, binding.Help().Desc))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.activeTab,
		m.styles.Subtle.Render("This tab is not available."),
	)
	return styles.CenterBoth(content, m.width, max(1, m.height-4))
}
