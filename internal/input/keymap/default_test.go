package keymap

import (
	"testing"

	"github.com/dshills/keychord/internal/input/key"
)

func TestDefaultIsValid(t *testing.T) {
	table, err := NewTable(Default(), Strict())
	if err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
	if table.Len() != len(Default()) {
		t.Errorf("Len() = %d, want %d", table.Len(), len(Default()))
	}
}

func TestDefaultBindings(t *testing.T) {
	table := MustNewTable(Default())

	tests := []struct {
		seq  string
		want Action
	}{
		{"g d", Navigate("/")},
		{"g s", Navigate("/samples")},
		{"/", Focus("search")},
		{"enter", Callback("openItem")},
		{"escape", Callback("cancel")},
		{"?", Callback(CallbackShowHelp)},
		{"control+a", Callback("selectAll")},
		{"control+s", Callback("save")},
		{"control+e", Callback("export")},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			got := table.Lookup(key.MustParseSequence(tt.seq))
			if len(got) != 1 {
				t.Fatalf("Lookup(%q) returned %d bindings", tt.seq, len(got))
			}
			if got[0].Action != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.seq, got[0].Action, tt.want)
			}
		})
	}
}

func TestDefaultHasDescriptions(t *testing.T) {
	for _, b := range Default() {
		if b.Description == "" || b.Category == "" {
			t.Errorf("binding %q missing description or category", b.Keys)
		}
	}
}
