package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "G", "1", "?"
//   - Named keys: "Enter", "Escape", "Esc", "Tab", "Space", "ArrowUp"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P", "Cmd+K", "Ctrl++"
//
// An uppercase letter implies Shift, so "G" and "Shift+g" are the same key.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// "+" alone, or a trailing "++", names the plus key itself.
	if spec == "+" {
		return NewRuneEvent('+', ModNone), nil
	}
	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKeyWithModifiers(spec, ModNone)
}

// parseModifierStyle parses "Ctrl+S" style notation
func parseModifierStyle(spec string) (Event, error) {
	keyPart := ""
	modPart := spec
	if strings.HasSuffix(spec, "++") {
		keyPart = "+"
		modPart = strings.TrimSuffix(spec, "++")
	} else {
		idx := strings.LastIndex(spec, "+")
		keyPart = spec[idx+1:]
		modPart = spec[:idx]
	}

	var mods Modifier
	for _, p := range strings.Split(modPart, "+") {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyWithModifiers(keyPart, mods)
}

// parseKeyWithModifiers parses a key part with already-known modifiers
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		// A bare uppercase letter has implicit Shift; with other
		// modifiers ("Ctrl+S") the case is cosmetic.
		if unicode.IsUpper(r) && mods == ModNone {
			mods = ModShift
		}
		r = unicode.ToLower(r)
		return NewRuneEvent(r, mods), nil
	}

	k := KeyFromName(keyPart)
	if k == KeyNone {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	if k.IsModifier() {
		return Event{}, fmt.Errorf("%w: modifier %q cannot be bound on its own", ErrInvalidSpec, keyPart)
	}
	return NewSpecialEvent(k, mods), nil
}

// ParseToken parses a key specification straight to its canonical token.
func ParseToken(spec string) (Token, error) {
	e, err := Parse(spec)
	if err != nil {
		return "", err
	}
	tok, ok := Normalize(e)
	if !ok {
		return "", fmt.Errorf("%w: %q has no token", ErrInvalidSpec, spec)
	}
	return tok, nil
}

// MustParseToken parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseToken(spec string) Token {
	tok, err := ParseToken(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return tok
}
