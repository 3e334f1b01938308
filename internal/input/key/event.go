package key

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Event represents a single raw key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the held modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred. The zero value means "now"
	// to consumers that track timing.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a named key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// FromName creates a key event from a literal key name as reported by a
// browser or terminal: "a", "?", " ", "Escape", "ArrowUp", "Control".
// Unrecognised multi-character names produce a KeyNone event.
func FromName(name string, mods Modifier) Event {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r == ' ' {
			return NewSpecialEvent(KeySpace, mods)
		}
		return NewRuneEvent(r, mods)
	}
	return NewSpecialEvent(KeyFromName(name), mods)
}

// At returns a copy of the event with the given timestamp.
func (e Event) At(t time.Time) Event {
	e.Timestamp = t
	return e
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsBareModifier returns true if only a modifier key was pressed.
func (e Event) IsBareModifier() bool {
	return e.Key.IsModifier()
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns the canonical token for the event, or "" when the event
// has no token.
func (e Event) String() string {
	tok, _ := Normalize(e)
	return string(tok)
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
