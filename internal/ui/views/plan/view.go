package plan

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	statsdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PlanPort interface {
	Plan(ctx context.Context) ([]statsdto.PlanEntryOutput, error)
	SetPlanTarget(ctx context.Context, subject string, target int) error
	RemovePlanEntry(ctx context.Context, subject string) error
	ClearPlanProgress(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Entries []statsdto.PlanEntryOutput
	Err     error
}

type mutatedMsg struct{ err error }

// RefreshMsg asks the view to reload the plan.
type RefreshMsg struct{}

// SubjectChosenMsg bubbles to the app when the user picks an entry to focus
// on next.
type SubjectChosenMsg struct{ Subject string }

// ─── list item ───────────────────────────────────────────────────────────────

type planItem struct {
	entry statsdto.PlanEntryOutput
}

func (i planItem) Title() string { return i.entry.Subject }
func (i planItem) Description() string {
	done := ""
	if i.entry.Done >= i.entry.Target {
		done = "  ✓"
	}
	return fmt.Sprintf("%d / %d sessions%s", i.entry.Done, i.entry.Target, done)
}
func (i planItem) FilterValue() string { return i.entry.Subject }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    PlanPort
	list    list.Model
	input   textinput.Model
	adding  bool
	width   int
	height  int
	loadErr string
}

func New(port PlanPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Plan"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "subject target   e.g. math 3"
	ti.CharLimit = 80

	return Model{port: port, list: l, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-3)

	case LoadedMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err.Error()
			return m, nil
		}
		m.loadErr = ""
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = planItem{entry: e}
		}
		return m, m.list.SetItems(items)

	case mutatedMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
		}
		return m, m.loadCmd()

	case RefreshMsg:
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "esc":
				m.adding = false
				m.input.Blur()
				return m, nil
			case "enter":
				line := strings.TrimSpace(m.input.Value())
				m.adding = false
				m.input.Blur()
				return m, m.addCmd(line)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "a":
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		case "x":
			if item, ok := m.list.SelectedItem().(planItem); ok {
				return m, m.removeCmd(item.entry.Subject)
			}
		case "c":
			return m, m.clearCmd()
		case "enter":
			if item, ok := m.list.SelectedItem().(planItem); ok {
				subject := item.entry.Subject
				return m, func() tea.Msg { return SubjectChosenMsg{Subject: subject} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.list.View() + "\n")
	if m.adding {
		sb.WriteString("add: " + m.input.View() + "\n")
	} else if m.loadErr != "" {
		sb.WriteString(theme.Warn.Render(m.loadErr) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("a: add  x: remove  c: clear done  enter: focus subject") + "\n")
	}
	return sb.String()
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.adding || m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.Plan(context.Background())
		return LoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) addCmd(line string) tea.Cmd {
	return func() tea.Msg {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return mutatedMsg{err: fmt.Errorf("usage: <subject> <target>")}
		}
		target, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return mutatedMsg{err: fmt.Errorf("target must be a number")}
		}
		subject := strings.Join(parts[:len(parts)-1], " ")
		return mutatedMsg{err: m.port.SetPlanTarget(context.Background(), subject, target)}
	}
}

func (m Model) removeCmd(subject string) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{err: m.port.RemovePlanEntry(context.Background(), subject)}
	}
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{err: m.port.ClearPlanProgress(context.Background())}
	}
}
