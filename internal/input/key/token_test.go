package key

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  Token
		ok    bool
	}{
		{"lowercase letter", NewRuneEvent('g', ModNone), "g", true},
		{"uppercase letter lowered", NewRuneEvent('G', ModNone), "g", true},
		{"shift letter", NewRuneEvent('G', ModShift), "shift+g", true},
		{"ctrl letter", NewRuneEvent('s', ModCtrl), "control+s", true},
		{"question mark absorbs shift", NewRuneEvent('?', ModShift), "?", true},
		{"slash", NewRuneEvent('/', ModNone), "/", true},
		{"space rune", NewRuneEvent(' ', ModNone), "space", true},
		{"space key", NewSpecialEvent(KeySpace, ModNone), "space", true},
		{"shift space", NewRuneEvent(' ', ModShift), "shift+space", true},
		{"escape", NewSpecialEvent(KeyEscape, ModNone), "escape", true},
		{"enter", NewSpecialEvent(KeyEnter, ModNone), "enter", true},
		{"arrow up", NewSpecialEvent(KeyUp, ModNone), "arrowup", true},
		{"shift tab", NewSpecialEvent(KeyTab, ModShift), "shift+tab", true},
		{"all modifiers", NewRuneEvent('k', ModMeta|ModShift|ModAlt|ModCtrl), "control+alt+shift+meta+k", true},
		{"bare control", NewSpecialEvent(KeyControl, ModCtrl), "", false},
		{"bare shift", NewSpecialEvent(KeyShift, ModShift), "", false},
		{"bare meta", NewSpecialEvent(KeyMeta, ModMeta), "", false},
		{"none", NewSpecialEvent(KeyNone, ModNone), "", false},
		{"zero rune", Event{Key: KeyRune}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.event)
			if ok != tt.ok {
				t.Fatalf("Normalize() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		mods Modifier
		want Token
		ok   bool
	}{
		{"a", ModNone, "a", true},
		{"A", ModShift, "shift+a", true},
		{"Escape", ModNone, "escape", true},
		{"Esc", ModNone, "escape", true},
		{"ArrowDown", ModNone, "arrowdown", true},
		{" ", ModNone, "space", true},
		{"Enter", ModCtrl, "control+enter", true},
		{"?", ModShift, "?", true},
		{"Control", ModCtrl, "", false},
		{"Shift", ModShift, "", false},
		{"Alt", ModAlt, "", false},
		{"Meta", ModMeta, "", false},
		{"Unidentified", ModNone, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(FromName(tt.name, tt.mods))
			if ok != tt.ok || got != tt.want {
				t.Errorf("Normalize(FromName(%q)) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFromFlags(t *testing.T) {
	m := FromFlags(true, false, true, false)
	if !m.HasCtrl() || !m.HasShift() || m.HasAlt() || m.HasMeta() {
		t.Errorf("FromFlags(ctrl, shift) = %v", m)
	}
	if FromFlags(false, false, false, false) != ModNone {
		t.Error("FromFlags with no flags should be ModNone")
	}
}

func TestTokenModifiers(t *testing.T) {
	tests := []struct {
		tok  Token
		mods Modifier
		name string
	}{
		{"g", ModNone, "g"},
		{"control+s", ModCtrl, "s"},
		{"control+alt+shift+meta+k", ModCtrl | ModAlt | ModShift | ModMeta, "k"},
		{"control++", ModCtrl, "+"},
		{"+", ModNone, "+"},
	}

	for _, tt := range tests {
		if got := tt.tok.Modifiers(); got != tt.mods {
			t.Errorf("%q.Modifiers() = %v, want %v", tt.tok, got, tt.mods)
		}
		if got := tt.tok.KeyName(); got != tt.name {
			t.Errorf("%q.KeyName() = %q, want %q", tt.tok, got, tt.name)
		}
	}
}

var namedKeys = []Key{
	KeyEscape, KeyEnter, KeyTab, KeyBackspace, KeyDelete, KeyHome, KeyEnd,
	KeyPageUp, KeyPageDown, KeyUp, KeyDown, KeyLeft, KeyRight, KeyF1, KeyF12, KeySpace,
}

func eventGen() *rapid.Generator[Event] {
	return rapid.Custom(func(t *rapid.T) Event {
		mods := FromFlags(
			rapid.Bool().Draw(t, "ctrl"),
			rapid.Bool().Draw(t, "alt"),
			rapid.Bool().Draw(t, "shift"),
			rapid.Bool().Draw(t, "meta"),
		)
		if rapid.Bool().Draw(t, "named") {
			return NewSpecialEvent(rapid.SampledFrom(namedKeys).Draw(t, "key"), mods)
		}
		r := rapid.SampledFrom([]rune("abcxyzABCXYZ0123456789?/!.,;[]-=")).Draw(t, "rune")
		return NewRuneEvent(r, mods)
	})
}

func TestNormalizeDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := eventGen().Draw(t, "event")
		first, ok1 := Normalize(e)
		second, ok2 := Normalize(e.At(e.Timestamp.Add(12345)))
		if first != second || ok1 != ok2 {
			t.Fatalf("Normalize not deterministic: %q/%v vs %q/%v", first, ok1, second, ok2)
		}
		if !ok1 {
			t.Fatalf("expected token for %#v", e)
		}
	})
}

func TestNormalizeModifierOrder(t *testing.T) {
	order := []string{"control+", "alt+", "shift+", "meta+"}
	all := []Modifier{ModCtrl, ModAlt, ModShift, ModMeta}

	rapid.Check(t, func(t *rapid.T) {
		picked := rapid.SliceOfDistinct(rapid.SampledFrom(all), func(m Modifier) Modifier { return m }).Draw(t, "mods")

		// Set the flags in the drawn order; the output order must not depend on it.
		var mods Modifier
		for _, m := range picked {
			mods = mods.With(m)
		}
		tok := MustNormalize(NewRuneEvent('k', mods))

		rest := string(tok)
		last := -1
		for i, prefix := range order {
			if strings.HasPrefix(rest, prefix) {
				if i < last {
					t.Fatalf("modifier %q out of order in %q", prefix, tok)
				}
				last = i
				rest = strings.TrimPrefix(rest, prefix)
			}
		}
		if rest != "k" {
			t.Fatalf("token %q did not end with the key name, rest %q", tok, rest)
		}
		if tok.Modifiers() != mods {
			t.Fatalf("token %q encodes %v, want %v", tok, tok.Modifiers(), mods)
		}
	})
}

func TestParseTokenRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tok, ok := Normalize(eventGen().Draw(t, "event"))
		if !ok {
			return
		}
		parsed, err := ParseToken(string(tok))
		if err != nil {
			t.Fatalf("ParseToken(%q) error: %v", tok, err)
		}
		if parsed != tok {
			t.Fatalf("ParseToken(%q) = %q", tok, parsed)
		}
	})
}
