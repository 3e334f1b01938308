// Package guard decides whether a keystroke should be ignored because the
// user is typing into an editable field.
package guard

import (
	"strings"

	"github.com/dshills/keychord/internal/input/key"
)

// Target describes the element that had focus when a key was pressed.
type Target interface {
	// TagName is the element kind, for example "input", "textarea" or "list".
	TagName() string

	// InputType is the type of an "input" element. It is ignored otherwise.
	InputType() string

	// IsContentEditable reports whether the element accepts free text
	// regardless of its tag.
	IsContentEditable() bool
}

// Element is a plain Target value.
type Element struct {
	Tag      string
	Type     string
	Editable bool
}

// TagName implements Target.
func (e Element) TagName() string { return e.Tag }

// InputType implements Target.
func (e Element) InputType() string { return e.Type }

// IsContentEditable implements Target.
func (e Element) IsContentEditable() bool { return e.Editable }

// Common targets.
var (
	TextInput = Element{Tag: "input", Type: "text"}
	TextArea  = Element{Tag: "textarea"}
	Body      = Element{Tag: "body"}
)

// nonTextInputs are input types that do not take typed text.
var nonTextInputs = map[string]bool{
	"button":   true,
	"checkbox": true,
	"color":    true,
	"file":     true,
	"hidden":   true,
	"image":    true,
	"radio":    true,
	"range":    true,
	"reset":    true,
	"submit":   true,
}

// IsEditable reports whether keystrokes on t are text entry.
func IsEditable(t Target) bool {
	if t == nil {
		return false
	}
	if t.IsContentEditable() {
		return true
	}
	switch strings.ToLower(t.TagName()) {
	case "textarea", "select":
		return true
	case "input":
		return !nonTextInputs[strings.ToLower(strings.TrimSpace(t.InputType()))]
	}
	return false
}

// Guard suppresses keystrokes aimed at editable targets, except for an
// allow-list of tokens that stay active while typing.
type Guard struct {
	allow map[key.Token]struct{}
}

// New creates a guard that lets the given tokens through editable targets.
func New(allow ...key.Token) *Guard {
	g := &Guard{allow: make(map[key.Token]struct{}, len(allow))}
	for _, tok := range allow {
		g.allow[tok] = struct{}{}
	}
	return g
}

// Default returns a guard allowing escape and the help key.
func Default() *Guard {
	return New(key.TokenEscape, key.TokenHelp)
}

// Allowed reports whether tok is on the allow-list.
func (g *Guard) Allowed(tok key.Token) bool {
	_, ok := g.allow[tok]
	return ok
}

// IsSuppressed reports whether tok pressed on target must be dropped.
func (g *Guard) IsSuppressed(target Target, tok key.Token) bool {
	if !IsEditable(target) {
		return false
	}
	return !g.Allowed(tok)
}

// AllowList returns the allowed tokens in no particular order.
func (g *Guard) AllowList() []key.Token {
	out := make([]key.Token, 0, len(g.allow))
	for tok := range g.allow {
		out = append(out, tok)
	}
	return out
}
