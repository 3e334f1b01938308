package demo

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/keychord/internal/host/teahost"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/guard"
)

var (
	tabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B8CDE")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#56E0C8"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A5568"))
)

// teaModel is the Bubble Tea front end. Shortcut keys never reach it; it
// only sees typed text and quit keys.
type teaModel struct {
	dash    *Dashboard
	pending func() string
}

// NewTeaModel returns the dashboard as a tea.Model.
func NewTeaModel(dash *Dashboard, pending func() string) tea.Model {
	return teaModel{dash: dash, pending: pending}
}

// FocusTarget implements teahost.Focuser.
func (m teaModel) FocusTarget() guard.Target {
	return m.dash.FocusTarget()
}

func (m teaModel) Init() tea.Cmd {
	return nil
}

func (m teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if km.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if !m.dash.Typing() {
		if km.Type == tea.KeyRunes && string(km.Runes) == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch km.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range km.Runes {
			m.dash.TypeRune(r)
		}
	case tea.KeyBackspace:
		m.dash.Backspace()
	case tea.KeyEnter:
		m.dash.Blur()
	}
	return m, nil
}

func (m teaModel) View() string {
	lines := m.dash.Render()
	if len(lines) > 0 {
		lines[0] = tabStyle.Render(lines[0])
		last := len(lines) - 1
		lines[last] = statusStyle.Render(lines[last])
	}
	if m.pending != nil {
		if p := m.pending(); p != "" {
			lines = append(lines, pendingStyle.Render("keys: "+p))
		}
	}
	return strings.Join(lines, "\n")
}

// RunTea runs the dashboard as a Bubble Tea program until the user quits or
// ctx is done.
func RunTea(ctx context.Context, dash *Dashboard, engine *input.Engine, opts ...tea.ProgramOption) error {
	src := teahost.NewSource()
	if err := engine.Start(src); err != nil {
		return err
	}
	defer engine.Stop()

	model := teahost.Wrap(NewTeaModel(dash, engine.PendingKeys), src)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	_, err := tea.NewProgram(model, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
