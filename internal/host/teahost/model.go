package teahost

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/keychord/internal/input/guard"
	"github.com/dshills/keychord/internal/input/key"
)

// Focuser is implemented by inner models that can report their focused
// element. Models without it are treated as having no editable focus.
type Focuser interface {
	FocusTarget() guard.Target
}

// Source delivers Bubble Tea key messages to one subscriber. Messages reach
// it through Model.Update, so they are handled in program order.
type Source struct {
	mu      sync.Mutex
	handler func(key.Event, guard.Target) bool
}

// NewSource creates a source.
func NewSource() *Source {
	return &Source{}
}

// Subscribe installs fn as the key listener.
func (s *Source) Subscribe(fn func(key.Event, guard.Target) bool) func() {
	s.mu.Lock()
	s.handler = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.handler = nil
	}
}

// deliver reports whether the subscriber swallowed msg.
func (s *Source) deliver(msg tea.KeyMsg, target guard.Target) bool {
	s.mu.Lock()
	fn := s.handler
	s.mu.Unlock()
	if fn == nil {
		return false
	}

	ev, ok := Convert(msg)
	if !ok {
		return false
	}
	return fn(ev, target)
}

// Model wraps an application model. Key messages go to the shortcut engine
// first; those it swallows never reach the inner model.
type Model struct {
	inner  tea.Model
	source *Source
}

// Wrap returns a model that routes key messages through source.
func Wrap(inner tea.Model, source *Source) Model {
	return Model{inner: inner, source: source}
}

// Inner returns the wrapped model.
func (m Model) Inner() tea.Model {
	return m.inner
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.inner.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		var target guard.Target
		if f, ok := m.inner.(Focuser); ok {
			target = f.FocusTarget()
		}
		if m.source.deliver(km, target) {
			// Give the inner model a chance to redraw state changed by the
			// shortcut.
			var cmd tea.Cmd
			m.inner, cmd = m.inner.Update(ShortcutMsg{})
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inner, cmd = m.inner.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return m.inner.View()
}

// ShortcutMsg is sent to the inner model after a key was handled by a
// shortcut in place of the key itself.
type ShortcutMsg struct{}
