package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	Progress(ctx context.Context) (statsdto.ProgressOutput, error)
	Streak(ctx context.Context) (statsdto.StreakOutput, error)
	WeeklyBars(ctx context.Context) ([]int, error)
	Heatmap(ctx context.Context) ([]statsdto.HeatCellOutput, error)
	Subjects(ctx context.Context) ([]statsdto.SubjectOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Progress statsdto.ProgressOutput
	Streak   statsdto.StreakOutput
	Bars     []int
	Heatmap  []statsdto.HeatCellOutput
	Subjects []statsdto.SubjectOutput
	Err      error
}

// RefreshMsg asks the view to reload all aggregates.
type RefreshMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     HistoryPort
	progress statsdto.ProgressOutput
	streak   statsdto.StreakOutput
	bars     []int
	heatmap  []statsdto.HeatCellOutput
	subjects []statsdto.SubjectOutput
	loadErr  string
	width    int
	height   int
}

func New(port HistoryPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.progress = msg.Progress
		m.streak = msg.Streak
		m.bars = msg.Bars
		m.heatmap = msg.Heatmap
		m.subjects = msg.Subjects

	case RefreshMsg:
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("History") + "\n\n")
	if m.loadErr != "" {
		sb.WriteString(theme.Warn.Render("load failed: "+m.loadErr) + "\n")
		return theme.Pane.Width(max(m.width-2, 20)).Render(sb.String())
	}

	sb.WriteString(fmt.Sprintf("%s%d min total   %s%d sessions today   %s%d days\n\n",
		theme.Muted.Render("studied: "), m.progress.TotalMinutes,
		theme.Muted.Render("today: "), m.progress.TodaySessions,
		theme.Muted.Render("streak: "), m.streak.Streak))

	sb.WriteString(theme.Title.Render("Last 7 days") + "\n")
	sb.WriteString(m.renderBars() + "\n")

	sb.WriteString(theme.Title.Render("Last 30 days") + "\n")
	sb.WriteString(m.renderHeatmap() + "\n")

	if len(m.subjects) > 0 {
		sb.WriteString(theme.Title.Render("Subjects") + "\n")
		for _, s := range m.subjects {
			sb.WriteString(fmt.Sprintf("  %-18s %4d min  %3d sessions  %s\n",
				s.Name, s.Minutes, s.Sessions, theme.Muted.Render(s.LastDate)))
		}
	}

	return theme.Pane.Width(max(m.width-2, 20)).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

// renderBars draws one row per day. Bar lengths come from the stats module
// already scaled, so only the labels are computed here. The weekly window is
// the tail of the 30-day heatmap, which carries the per-day counts.
func (m Model) renderBars() string {
	if len(m.bars) == 0 {
		return theme.Muted.Render("  no sessions yet") + "\n"
	}
	tail := m.heatmap
	if len(tail) > len(m.bars) {
		tail = tail[len(tail)-len(m.bars):]
	}
	var sb strings.Builder
	for i, height := range m.bars {
		label, count := "", 0
		if i < len(tail) {
			label = shortDay(tail[i].Date)
			count = tail[i].Count
		}
		sb.WriteString(fmt.Sprintf("  %s %s %d\n",
			theme.Muted.Render(label),
			theme.Bar.Render(strings.Repeat("█", height)),
			count))
	}
	return sb.String()
}

func (m Model) renderHeatmap() string {
	if len(m.heatmap) == 0 {
		return theme.Muted.Render("  no sessions yet") + "\n"
	}
	var sb strings.Builder
	for i, cell := range m.heatmap {
		if i%7 == 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cell.Color)).Render("■ "))
		if i%7 == 6 {
			sb.WriteString("\n")
		}
	}
	if len(m.heatmap)%7 != 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		progress, err := m.port.Progress(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		streak, err := m.port.Streak(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		bars, err := m.port.WeeklyBars(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		heatmap, err := m.port.Heatmap(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		subjects, err := m.port.Subjects(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Progress: progress, Streak: streak, Bars: bars, Heatmap: heatmap, Subjects: subjects}
	}
}

// shortDay turns "2025-03-04" into "03-04". Bad input renders as-is.
func shortDay(date string) string {
	if len(date) == len("2006-01-02") {
		return date[5:]
	}
	return date
}
