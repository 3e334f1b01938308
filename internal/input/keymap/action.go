package keymap

import (
	"fmt"
	"strings"
)

// ActionKind tags the variant of an Action.
type ActionKind uint8

const (
	// KindNone is the zero value and never valid in a table.
	KindNone ActionKind = iota

	// KindNavigate sends the host application to a path.
	KindNavigate

	// KindFocus gives input focus to a target element.
	KindFocus

	// KindCallback invokes a named handler from the callback registry.
	KindCallback
)

// String returns the configuration spelling of the kind.
func (k ActionKind) String() string {
	switch k {
	case KindNavigate:
		return "navigate"
	case KindFocus:
		return "focus"
	case KindCallback:
		return "callback"
	default:
		return "none"
	}
}

// ParseKind parses a kind name (case-insensitive).
func ParseKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "navigate", "nav":
		return KindNavigate, nil
	case "focus":
		return KindFocus, nil
	case "callback", "call":
		return KindCallback, nil
	default:
		return KindNone, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Action describes what a binding does when it fires.
// Target is the path for navigate, the element id for focus and the
// callback id for callback.
type Action struct {
	Kind   ActionKind
	Target string
}

// Navigate returns an action that navigates to path.
func Navigate(path string) Action {
	return Action{Kind: KindNavigate, Target: path}
}

// Focus returns an action that focuses the element with the given id.
func Focus(targetID string) Action {
	return Action{Kind: KindFocus, Target: targetID}
}

// Callback returns an action that invokes the named callback.
func Callback(id string) Action {
	return Action{Kind: KindCallback, Target: id}
}

// Validate checks that the action has a known kind and a target.
func (a Action) Validate() error {
	switch a.Kind {
	case KindNavigate, KindFocus, KindCallback:
	default:
		return ErrUnknownAction
	}
	if a.Target == "" {
		return fmt.Errorf("%w: %s action has no target", ErrEmptyTarget, a.Kind)
	}
	return nil
}

// String returns a compact form like "navigate(/samples)".
func (a Action) String() string {
	return fmt.Sprintf("%s(%s)", a.Kind, a.Target)
}
