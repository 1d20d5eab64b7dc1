package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plugindto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/dto"
	roomdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/dto"
	statsdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	timerdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/dto"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/ui/components"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/ui/theme"
	focusview "github.com/nemagoudarshrirang-sys/study-streak/internal/ui/views/focus"
	historyview "github.com/nemagoudarshrirang-sys/study-streak/internal/ui/views/history"
	planview "github.com/nemagoudarshrirang-sys/study-streak/internal/ui/views/plan"
	roomview "github.com/nemagoudarshrirang-sys/study-streak/internal/ui/views/room"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type timerPort interface {
	Start(ctx context.Context) (timerdto.StatusOutput, error)
	Pause(ctx context.Context) (timerdto.StatusOutput, error)
	Reset(ctx context.Context, confirmed bool) (timerdto.StatusOutput, error)
	Tick(ctx context.Context) (timerdto.StatusOutput, error)
	StartBreak(ctx context.Context, minutes int) (timerdto.StatusOutput, error)
	EndBreak(ctx context.Context) (timerdto.StatusOutput, error)
	Status(ctx context.Context) (timerdto.StatusOutput, error)
}

type statsPort interface {
	Progress(ctx context.Context) (statsdto.ProgressOutput, error)
	Streak(ctx context.Context) (statsdto.StreakOutput, error)
	WeeklyBars(ctx context.Context) ([]int, error)
	Heatmap(ctx context.Context) ([]statsdto.HeatCellOutput, error)
	Subjects(ctx context.Context) ([]statsdto.SubjectOutput, error)
	Plan(ctx context.Context) ([]statsdto.PlanEntryOutput, error)
	SetPlanTarget(ctx context.Context, subject string, target int) error
	RemovePlanEntry(ctx context.Context, subject string) error
	ClearPlanProgress(ctx context.Context) error
	CurrentSubject(ctx context.Context) (string, error)
	SetCurrentSubject(ctx context.Context, subject string) error
	Setting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	Flag(ctx context.Context, key string, def bool) (bool, error)
}

type roomPort interface {
	Join(ctx context.Context, code string) (roomdto.GroupOutput, error)
	LeaveGroup(ctx context.Context) error
	Group(ctx context.Context) (roomdto.GroupOutput, error)
}

type pluginPort interface {
	Notify(ctx context.Context, event plugindto.Event)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabFocus tabID = iota
	tabHistory
	tabPlan
	tabRoom
	tabCount
)

var tabLabels = [tabCount]string{
	"Focus", "History", "Plan", "Room",
}

// ─── async messages ───────────────────────────────────────────────────────────

// StoreChangedMsg is sent from outside the program when another process
// mutates the state store. Views reload on receipt.
type StoreChangedMsg struct{}

type tickMsg time.Time

type statusMsg struct {
	out timerdto.StatusOutput
	err error
}

type actionDoneMsg struct {
	note string
	err  error
}

type settingsLoadedMsg struct {
	reminderOn bool
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Pause   key.Binding
	Reset   key.Binding
	Break   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Reset, k.Break},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the one-second
// tick loop, the reset confirmation gate, and the command palette. All
// business logic is delegated to port interfaces; all rendering is delegated
// to sub-views.
type Model struct {
	timer   timerPort
	stats   statsPort
	room    roomPort
	plugins pluginPort

	// sub-views (one per tab)
	focusView   focusview.Model
	historyView historyview.Model
	planView    planview.Model
	roomView    roomview.Model

	// global UI state
	activeTab      tabID
	keys           keyMap
	help           help.Model
	showHelp       bool
	palette        components.Palette
	confirmReset   bool
	ticking        bool
	status         string
	reminderEvery  time.Duration
	reminderOn     bool
	runningSeconds int
	width          int
	height         int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	timer timerPort,
	stats statsPort,
	room roomPort,
	plugins pluginPort,
	reminderEvery time.Duration,
) Model {
	return Model{
		timer:         timer,
		stats:         stats,
		room:          room,
		plugins:       plugins,
		focusView:     focusview.New(focusPortBridge{p: stats}),
		historyView:   historyview.New(historyPortBridge{p: stats}),
		planView:      planview.New(planPortBridge{p: stats}),
		roomView:      roomview.New(roomPortBridge{p: room}),
		activeTab:     tabFocus,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		reminderEvery: reminderEvery,
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.focusView.Init(),
		m.historyView.Init(),
		m.planView.Init(),
		m.roomView.Init(),
		m.loadStatusCmd(),
		m.loadSettingsCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	// View-owned messages go to their view regardless of the active tab, so
	// background reloads land even while another tab is focused.
	switch msg.(type) {
	case focusview.ContextLoadedMsg, focusview.RefreshMsg:
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		return m, cmd
	case historyview.LoadedMsg, historyview.RefreshMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd
	case planview.LoadedMsg:
		var cmd tea.Cmd
		m.planView, cmd = m.planView.Update(msg)
		return m, cmd
	case roomview.LoadedMsg, roomview.RefreshMsg:
		var cmd tea.Cmd
		m.roomView, cmd = m.roomView.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case tickMsg:
		m.ticking = false
		return m.applyTick()

	case statusMsg:
		return m.applyStatus(msg, cmds)

	case settingsLoadedMsg:
		m.reminderOn = msg.reminderOn

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else if msg.note != "" {
			m.status = msg.note
		}
		cmds = append(cmds, m.refreshAllCmd())

	case StoreChangedMsg:
		// Silent resync; the store watcher fires for our own writes too.
		cmds = append(cmds, m.refreshAllCmd(), m.loadSettingsCmd())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case planview.SubjectChosenMsg:
		m.status = "focusing on " + msg.Subject
		cmds = append(cmds, m.setSubjectCmd(msg.Subject))

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.confirmReset {
			m.confirmReset = false
			if msg.String() == "y" {
				m.status = "timer reset"
				return m, m.timerCmd(func(ctx context.Context) (timerdto.StatusOutput, error) {
					return m.timer.Reset(ctx, true)
				})
			}
			m.status = "reset cancelled"
			return m, nil
		}

		// Yield to sub-view when its search filter or input is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "s":
			if m.activeTab == tabFocus {
				return m, m.timerCmd(m.timer.Start)
			}
		case "p":
			if m.activeTab == tabFocus {
				return m, m.timerCmd(m.timer.Pause)
			}
		case "r":
			if m.activeTab == tabFocus {
				m.confirmReset = true
				m.status = "reset timer and lose progress? (y/n)"
				return m, nil
			}
		case "b":
			if m.activeTab == tabFocus {
				return m, m.timerCmd(func(ctx context.Context) (timerdto.StatusOutput, error) {
					return m.timer.StartBreak(ctx, 5)
				})
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabFocus:
		m.focusView, tabCmd = m.focusView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	case tabPlan:
		m.planView, tabCmd = m.planView.Update(msg)
	case tabRoom:
		m.roomView, tabCmd = m.roomView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── tick loop ────────────────────────────────────────────────────────────────

func (m Model) applyTick() (tea.Model, tea.Cmd) {
	return m, func() tea.Msg {
		out, err := m.timer.Tick(context.Background())
		return statusMsg{out: out, err: err}
	}
}

func (m Model) applyStatus(msg statusMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, tea.Batch(cmds...)
	}
	out := msg.out
	m.status = out.Status

	if out.State == "running" {
		m.runningSeconds++
		if m.reminderOn && m.reminderEvery > 0 && m.runningSeconds > 0 &&
			m.runningSeconds%int(m.reminderEvery/time.Second) == 0 {
			m.focusView.SetReminder("Still on task? Take a breath and refocus.")
			if m.plugins != nil {
				m.plugins.Notify(context.Background(), plugindto.Event{
					Kind:    plugindto.EventReminder,
					Message: "focus check-in",
					At:      time.Now(),
				})
			}
		}
	} else {
		m.runningSeconds = 0
		m.focusView.SetReminder("")
	}

	m.focusView, _ = m.focusView.Update(focusview.StatusMsg{Out: out})

	if out.Completed {
		cmds = append(cmds, m.refreshAllCmd())
	}
	if out.BreakExpired {
		// Auto-chained sessions start inside the timer module; re-read the
		// status so the clock reflects the new session immediately.
		cmds = append(cmds, m.loadStatusCmd(), m.refreshAllCmd())
	}

	ticking := out.State == "running" || out.BreakState == "running"
	if ticking && !m.ticking {
		m.ticking = true
		cmds = append(cmds, tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) }))
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabFocus:
		return m.focusView.View()
	case tabHistory:
		return m.historyView.View()
	case tabPlan:
		return m.planView.View()
	case tabRoom:
		return m.roomView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "study-streak  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "subject:set":
		if rest == "" {
			m.status = "usage: subject:set <name>"
			return m, nil
		}
		m.status = "focusing on " + rest
		return m, m.setSubjectCmd(rest)

	case "plan:add":
		if len(parts) < 3 {
			m.status = "usage: plan:add <subject> <target>"
			return m, nil
		}
		target, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			m.status = "target must be a number"
			return m, nil
		}
		subject := strings.Join(parts[1:len(parts)-1], " ")
		return m, m.actionCmd("plan updated", func(ctx context.Context) error {
			return m.stats.SetPlanTarget(ctx, subject, target)
		})

	case "plan:remove":
		if rest == "" {
			m.status = "usage: plan:remove <subject>"
			return m, nil
		}
		return m, m.actionCmd("plan entry removed", func(ctx context.Context) error {
			return m.stats.RemovePlanEntry(ctx, rest)
		})

	case "plan:clear-done":
		return m, m.actionCmd("plan progress cleared", m.stats.ClearPlanProgress)

	case "break:start":
		minutes := 5
		if len(parts) >= 2 {
			if v, err := strconv.Atoi(parts[1]); err == nil {
				minutes = v
			}
		}
		return m, m.timerCmd(func(ctx context.Context) (timerdto.StatusOutput, error) {
			return m.timer.StartBreak(ctx, minutes)
		})

	case "break:end":
		return m, m.timerCmd(m.timer.EndBreak)

	case "room:join":
		if rest == "" {
			m.status = "usage: room:join <code>"
			return m, nil
		}
		m.activeTab = tabRoom
		return m, m.actionCmd("joined "+rest, func(ctx context.Context) error {
			_, err := m.room.Join(ctx, rest)
			return err
		})

	case "room:leave":
		m.activeTab = tabRoom
		return m, m.actionCmd("left group", m.room.LeaveGroup)

	case "set:length":
		return m, m.setSettingCmd(statsdto.SettingSessionLength, rest, "session length set")
	case "set:intensity":
		return m, m.setSettingCmd(statsdto.SettingFocusIntensity, rest, "intensity set")
	case "set:mood":
		return m, m.setSettingCmd(statsdto.SettingSessionMood, rest, "mood set")
	case "set:intention":
		return m, m.setSettingCmd(statsdto.SettingSessionIntention, rest, "intention set")
	case "set:name":
		return m, m.setSettingCmd(statsdto.SettingUserName, rest, "name set")
	case "set:auto-plan":
		return m, m.setSettingCmd(statsdto.SettingAutoPlan, rest, "auto plan "+rest)
	case "set:auto-room":
		return m, m.setSettingCmd(statsdto.SettingAutoFocusRoom, rest, "auto room "+rest)
	case "set:reminder":
		return m, m.setSettingCmd(statsdto.SettingFocusReminder, rest, "reminder "+rest)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter or input is
// open, in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	if m.activeTab == tabPlan {
		return m.planView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.focusView, _ = m.focusView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.planView, _ = m.planView.Update(sz)
	m.roomView, _ = m.roomView.Update(sz)
}

func (m Model) refreshAllCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return focusview.RefreshMsg{} },
		m.routeRefresh(),
	)
}

// routeRefresh reloads the non-focus views directly since refresh messages
// only reach the active tab through normal routing.
func (m Model) routeRefresh() tea.Cmd {
	history := m.historyView
	plan := m.planView
	room := m.roomView
	return tea.Batch(
		history.Init(),
		plan.Init(),
		room.Init(),
	)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.timer.Status(context.Background())
		return statusMsg{out: out, err: err}
	}
}

func (m Model) loadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		on, err := m.stats.Flag(context.Background(), statsdto.SettingFocusReminder, false)
		if err != nil {
			return settingsLoadedMsg{}
		}
		return settingsLoadedMsg{reminderOn: on}
	}
}

func (m Model) timerCmd(call func(context.Context) (timerdto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := call(context.Background())
		return statusMsg{out: out, err: err}
	}
}

func (m Model) actionCmd(note string, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{note: note, err: call(context.Background())}
	}
}

func (m Model) setSubjectCmd(subject string) tea.Cmd {
	return m.actionCmd("focusing on "+subject, func(ctx context.Context) error {
		return m.stats.SetCurrentSubject(ctx, subject)
	})
}

func (m Model) setSettingCmd(key, value, note string) tea.Cmd {
	if strings.TrimSpace(value) == "" {
		return func() tea.Msg {
			return actionDoneMsg{err: fmt.Errorf("missing value for %s", key)}
		}
	}
	return tea.Batch(
		m.actionCmd(note, func(ctx context.Context) error {
			return m.stats.SetSetting(ctx, key, value)
		}),
		m.loadSettingsCmd(),
	)
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows the broad stats port to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type focusPortBridge struct{ p statsPort }

func (b focusPortBridge) CurrentSubject(ctx context.Context) (string, error) {
	return b.p.CurrentSubject(ctx)
}
func (b focusPortBridge) Streak(ctx context.Context) (statsdto.StreakOutput, error) {
	return b.p.Streak(ctx)
}
func (b focusPortBridge) Setting(ctx context.Context, key string) (string, error) {
	return b.p.Setting(ctx, key)
}

type historyPortBridge struct{ p statsPort }

func (b historyPortBridge) Progress(ctx context.Context) (statsdto.ProgressOutput, error) {
	return b.p.Progress(ctx)
}
func (b historyPortBridge) Streak(ctx context.Context) (statsdto.StreakOutput, error) {
	return b.p.Streak(ctx)
}
func (b historyPortBridge) WeeklyBars(ctx context.Context) ([]int, error) {
	return b.p.WeeklyBars(ctx)
}
func (b historyPortBridge) Heatmap(ctx context.Context) ([]statsdto.HeatCellOutput, error) {
	return b.p.Heatmap(ctx)
}
func (b historyPortBridge) Subjects(ctx context.Context) ([]statsdto.SubjectOutput, error) {
	return b.p.Subjects(ctx)
}

type planPortBridge struct{ p statsPort }

func (b planPortBridge) Plan(ctx context.Context) ([]statsdto.PlanEntryOutput, error) {
	return b.p.Plan(ctx)
}
func (b planPortBridge) SetPlanTarget(ctx context.Context, subject string, target int) error {
	return b.p.SetPlanTarget(ctx, subject, target)
}
func (b planPortBridge) RemovePlanEntry(ctx context.Context, subject string) error {
	return b.p.RemovePlanEntry(ctx, subject)
}
func (b planPortBridge) ClearPlanProgress(ctx context.Context) error {
	return b.p.ClearPlanProgress(ctx)
}

type roomPortBridge struct{ p roomPort }

func (b roomPortBridge) Group(ctx context.Context) (roomdto.GroupOutput, error) {
	return b.p.Group(ctx)
}
