package focus

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	statsdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	timerdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/dto"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type FocusPort interface {
	CurrentSubject(ctx context.Context) (string, error)
	Streak(ctx context.Context) (statsdto.StreakOutput, error)
	Setting(ctx context.Context, key string) (string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// StatusMsg carries the latest countdown state from the app-level tick loop.
type StatusMsg struct {
	Out timerdto.StatusOutput
}

type ContextLoadedMsg struct {
	Subject   string
	Mood      string
	Intention string
	Streak    int
	Err       error
}

// RefreshMsg asks the view to reload subject, streak, and session settings.
type RefreshMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      FocusPort
	status    timerdto.StatusOutput
	subject   string
	mood      string
	intention string
	streak    int
	reminder  string
	width     int
	height    int
}

func New(port FocusPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.loadContextCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StatusMsg:
		m.status = msg.Out

	case ContextLoadedMsg:
		if msg.Err == nil {
			m.subject = msg.Subject
			m.mood = msg.Mood
			m.intention = msg.Intention
			m.streak = msg.Streak
		}

	case RefreshMsg:
		return m, m.loadContextCmd()
	}
	return m, nil
}

// SetReminder sets a transient nudge line shown under the clock. An empty
// string clears it.
func (m *Model) SetReminder(text string) {
	m.reminder = text
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(theme.Title.Render("Focus") + "\n\n")
	if m.subject != "" {
		sb.WriteString(theme.Muted.Render("subject:   ") + m.subject + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("subject:   none (:subject:set <name>)") + "\n")
	}
	sb.WriteString(theme.Muted.Render("intention: ") + orDash(m.intention) + "\n")
	sb.WriteString(theme.Muted.Render("mood:      ") + orDash(m.mood) + "\n\n")

	sb.WriteString("  " + theme.Clock.Render(formatClock(m.status.Remaining)) + "\n")
	sb.WriteString("  " + m.statusLine() + "\n")
	if m.status.BreakState == "running" {
		sb.WriteString("  " + theme.Good.Render("break "+formatClock(m.status.BreakRemaining)) + "\n")
	}
	if m.reminder != "" {
		sb.WriteString("  " + theme.Warn.Render(m.reminder) + "\n")
	}

	sb.WriteString("\n")
	if m.streak > 0 {
		sb.WriteString(theme.Hot.Render(fmt.Sprintf("🔥 %d day streak", m.streak)) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("s: start  p: pause  r: reset  b: break  :: palette"))

	return theme.Pane.Width(max(m.width-2, 20)).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) statusLine() string {
	switch m.status.State {
	case "running":
		return theme.Good.Render(m.status.Status)
	case "paused":
		return theme.Hot.Render(m.status.Status)
	default:
		if m.status.Status == "" {
			return theme.Muted.Render("Not started")
		}
		return theme.Muted.Render(m.status.Status)
	}
}

func (m Model) loadContextCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		subject, err := m.port.CurrentSubject(ctx)
		if err != nil {
			return ContextLoadedMsg{Err: err}
		}
		streak, err := m.port.Streak(ctx)
		if err != nil {
			return ContextLoadedMsg{Err: err}
		}
		mood, _ := m.port.Setting(ctx, statsdto.SettingSessionMood)
		intention, _ := m.port.Setting(ctx, statsdto.SettingSessionIntention)
		return ContextLoadedMsg{
			Subject:   subject,
			Mood:      mood,
			Intention: intention,
			Streak:    streak.Streak,
		}
	}
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
