package key

import (
	"strings"
	"unicode"
)

// Token is the canonical string form of one key press, for example
// "g", "escape", "control+s" or "control+shift+arrowup". Two key presses
// are the same shortcut key iff their tokens are equal.
type Token string

// Tokens that remain active inside text inputs by default.
const (
	TokenEscape Token = "escape"
	TokenHelp   Token = "?"
)

// String returns the token text.
func (t Token) String() string {
	return string(t)
}

// Normalize converts a raw key event to its canonical token.
//
// The key name is lower-cased and named keys use their fixed spelling.
// Shift held on a printable non-letter character is part of the character
// itself ("?" rather than "shift+?") and is not rendered. The returned bool
// is false for bare modifier presses and unrecognised keys, which can never
// complete a binding.
func Normalize(e Event) (Token, bool) {
	if e.Key == KeyNone || e.Key.IsModifier() {
		return "", false
	}

	mods := e.Modifiers
	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == 0 {
			return "", false
		}
		if e.Rune == ' ' {
			name = canonicalNames[KeySpace]
			break
		}
		if !unicode.IsLetter(e.Rune) {
			mods = mods.Without(ModShift)
		}
		name = string(unicode.ToLower(e.Rune))
	default:
		n, ok := canonicalNames[e.Key]
		if !ok {
			return "", false
		}
		name = n
	}

	return Token(mods.Prefix() + name), true
}

// MustNormalize is Normalize for events known to carry a token.
// It panics otherwise; use only in tests and initialization code.
func MustNormalize(e Event) Token {
	tok, ok := Normalize(e)
	if !ok {
		panic("key event has no token: " + e.GoString())
	}
	return tok
}

// Modifiers returns the modifiers encoded in the token.
func (t Token) Modifiers() Modifier {
	var m Modifier
	rest := string(t)
	for _, p := range []struct {
		prefix string
		mod    Modifier
	}{
		{"control+", ModCtrl},
		{"alt+", ModAlt},
		{"shift+", ModShift},
		{"meta+", ModMeta},
	} {
		if strings.HasPrefix(rest, p.prefix) && len(rest) > len(p.prefix) {
			m = m.With(p.mod)
			rest = rest[len(p.prefix):]
		}
	}
	return m
}

// KeyName returns the token without its modifier prefixes.
func (t Token) KeyName() string {
	return strings.TrimPrefix(string(t), t.Modifiers().Prefix())
}
