package keymap

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/dshills/keychord/internal/input/key"
)

func TestNewTable(t *testing.T) {
	table, err := NewTable([]Binding{
		NewBinding("g d", Navigate("/")),
		NewBinding("Ctrl+S", Callback("save")),
		NewBinding("?", Callback("showHelp")),
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}

	bindings := table.Bindings()
	want := []string{"g d", "control+s", "?"}
	for i, b := range bindings {
		if got := b.Pattern.String(); got != want[i] {
			t.Errorf("binding %d pattern = %q, want %q", i, got, want[i])
		}
	}
}

func TestNewTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		wantErr error
	}{
		{"empty keys", NewBinding("", Callback("x")), ErrEmptyKeys},
		{"invalid key", NewBinding("Hyper+x", Callback("x")), key.ErrInvalidSpec},
		{"no kind", Binding{Keys: "x", Action: Action{Target: "x"}}, ErrUnknownAction},
		{"no target", NewBinding("x", Navigate("")), ErrEmptyTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable([]Binding{tt.binding})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTable() error = %v, want %v", err, tt.wantErr)
			}
			var be *BindingError
			if !errors.As(err, &be) {
				t.Fatalf("error %T is not a *BindingError", err)
			}
			if be.Index != 0 {
				t.Errorf("BindingError.Index = %d, want 0", be.Index)
			}
		})
	}
}

func TestNewTableDuplicateStrict(t *testing.T) {
	_, err := NewTable([]Binding{
		NewBinding("Ctrl+S", Callback("save")),
		NewBinding("j", Callback("next")),
		NewBinding("ctrl+s", Callback("saveAs")),
	}, Strict())

	if !errors.Is(err, ErrDuplicatePattern) {
		t.Fatalf("NewTable() error = %v, want ErrDuplicatePattern", err)
	}
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("error %T is not a *DuplicateError", err)
	}
	if dup.Pattern != "control+s" || dup.First != 0 || dup.Second != 2 {
		t.Errorf("DuplicateError = %+v", dup)
	}
}

func TestNewTableDuplicateLenient(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	table, err := NewTable([]Binding{
		NewBinding("x", Callback("first")),
		NewBinding("x", Callback("second")),
	}, WithLogger(logger))
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	got := table.Lookup(key.MustParseSequence("x"))
	if len(got) != 2 {
		t.Fatalf("Lookup() returned %d bindings, want 2", len(got))
	}
	if got[0].Action.Target != "first" {
		t.Errorf("first binding = %q, want first", got[0].Action.Target)
	}
	if !strings.Contains(buf.String(), "duplicate binding pattern") {
		t.Errorf("expected duplicate warning in log, got %q", buf.String())
	}
}

func TestMustNewTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewTable() did not panic on duplicate")
		}
	}()
	MustNewTable([]Binding{
		NewBinding("x", Callback("a")),
		NewBinding("x", Callback("b")),
	})
}

func TestTableLookupAndPrefix(t *testing.T) {
	table := MustNewTable([]Binding{
		NewBinding("g d", Navigate("/")),
		NewBinding("g s", Navigate("/samples")),
		NewBinding("r", Callback("refresh")),
		NewBinding("r o d e o", Callback("rodeo")),
	})

	tests := []struct {
		seq       string
		exact     bool
		hasPrefix bool
	}{
		{"g", false, true},
		{"g d", true, false},
		{"g x", false, false},
		{"r", true, true},
		{"r o", false, true},
		{"r o d e o", true, false},
		{"d", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			seq := key.MustParseSequence(tt.seq)
			if got := len(table.Lookup(seq)) > 0; got != tt.exact {
				t.Errorf("Lookup(%q) found = %v, want %v", tt.seq, got, tt.exact)
			}
			if got := table.HasPrefix(seq); got != tt.hasPrefix {
				t.Errorf("HasPrefix(%q) = %v, want %v", tt.seq, got, tt.hasPrefix)
			}
		})
	}

	if !table.Starts("g") || table.Starts("d") {
		t.Error("Starts() mismatch")
	}
	if table.Lookup(nil) != nil {
		t.Error("Lookup(nil) should be nil")
	}
}

func TestBindingsReturnsCopy(t *testing.T) {
	table := MustNewTable([]Binding{NewBinding("j", Callback("next"))})
	bs := table.Bindings()
	bs[0].Action.Target = "changed"

	got := table.Lookup(key.MustParseSequence("j"))
	if got[0].Action.Target != "next" {
		t.Error("Bindings() exposed internal state")
	}
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory([]Binding{
		{Keys: "j", Category: "Lists"},
		{Keys: "x"},
		{Keys: "k", Category: "Lists"},
	})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Name != "Lists" || len(groups[0].Bindings) != 2 {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].Name != "Other" {
		t.Errorf("groups[1].Name = %q, want Other", groups[1].Name)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want ActionKind
		err  bool
	}{
		{"navigate", KindNavigate, false},
		{"NAV", KindNavigate, false},
		{"focus", KindFocus, false},
		{" callback ", KindCallback, false},
		{"call", KindCallback, false},
		{"jump", KindNone, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseKind(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestActionString(t *testing.T) {
	if got := Navigate("/samples").String(); got != "navigate(/samples)" {
		t.Errorf("String() = %q", got)
	}
}
