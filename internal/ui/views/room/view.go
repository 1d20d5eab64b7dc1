package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	roomdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/dto"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RoomPort interface {
	Group(ctx context.Context) (roomdto.GroupOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Group roomdto.GroupOutput
	Err   error
}

// RefreshMsg asks the view to reload the group roster.
type RefreshMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    RoomPort
	group   roomdto.GroupOutput
	joined  bool
	loadErr string
	width   int
	height  int
}

func New(port RoomPort) Model {
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
		switch {
		case errors.Is(msg.Err, apperrors.ErrNoGroupJoined):
			m.joined = false
			m.loadErr = ""
		case msg.Err != nil:
			m.loadErr = msg.Err.Error()
		default:
			m.joined = true
			m.loadErr = ""
			m.group = msg.Group
		}

	case RefreshMsg:
		return m, m.loadCmd()

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus Room") + "\n\n")

	switch {
	case m.loadErr != "":
		sb.WriteString(theme.Warn.Render("room unavailable: "+m.loadErr) + "\n")
	case !m.joined:
		sb.WriteString(theme.Muted.Render("no group joined (:room:join <code>)") + "\n")
	default:
		sb.WriteString(theme.Muted.Render("group: ") + theme.Hot.Render(m.group.Code) + "\n\n")
		if len(m.group.Members) == 0 {
			sb.WriteString(theme.Muted.Render("nobody here yet") + "\n")
		}
		for _, member := range m.group.Members {
			if member.Focusing {
				sb.WriteString(fmt.Sprintf("  %s %s %s\n",
					theme.Good.Render("●"), member.Name,
					theme.Muted.Render("focusing since "+member.StartedAt.Local().Format("15:04"))))
			} else {
				sb.WriteString(fmt.Sprintf("  %s %s\n", theme.Muted.Render("○"), member.Name))
			}
		}
	}

	sb.WriteString("\n" + theme.Muted.Render("r: refresh  :: palette"))
	return theme.Pane.Width(max(m.width-2, 20)).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		group, err := m.port.Group(context.Background())
		return LoadedMsg{Group: group, Err: err}
	}
}
