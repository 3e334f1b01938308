package teahost

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/keychord/internal/input/key"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want key.Token
		ok   bool
	}{
		{"letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}, "g", true},
		{"upper letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, "shift+g", true},
		{"question mark", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, "?", true},
		{"alt letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, "alt+x", true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space", true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "enter", true},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, "tab", true},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+tab", true},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, "escape", true},
		{"alt escape", tea.KeyMsg{Type: tea.KeyEsc, Alt: true}, "alt+escape", true},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, "backspace", true},
		{"ctrl a", tea.KeyMsg{Type: tea.KeyCtrlA}, "control+a", true},
		{"ctrl s", tea.KeyMsg{Type: tea.KeyCtrlS}, "control+s", true},
		{"ctrl e", tea.KeyMsg{Type: tea.KeyCtrlE}, "control+e", true},
		{"ctrl h", tea.KeyMsg{Type: tea.KeyCtrlH}, "control+h", true},
		{"ctrl space", tea.KeyMsg{Type: tea.KeyCtrlAt}, "control+space", true},
		{"ctrl shift up", tea.KeyMsg{Type: tea.KeyCtrlShiftUp}, "control+shift+arrowup", true},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, "pagedown", true},
		{"f12", tea.KeyMsg{Type: tea.KeyF12}, "f12", true},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Paste: true}, "", false},
		{"multi rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, "", false},
		{"ctrl backslash", tea.KeyMsg{Type: tea.KeyCtrlBackslash}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Convert(tt.msg)
			if ok != tt.ok {
				t.Fatalf("Convert() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			got, _ := key.Normalize(ev)
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
