// Package key provides key event types and canonical key tokens.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (named keys, function keys, modifiers, or runes)
//   - Modifier: Represents held modifier keys (Control, Alt, Shift, Meta)
//   - Event: A single raw key press with modifiers and timestamp
//   - Token: The canonical string form of one key press, e.g. "control+s"
//   - Sequence: An ordered list of tokens forming a multi-key shortcut
//
// # Tokens
//
// Tokens render held modifiers in the fixed order "control+", "alt+",
// "shift+", "meta+" followed by the lower-cased key name. Named keys use a
// fixed spelling ("escape", "enter", "space", "arrowup"). A bare modifier
// press has no token.
//
// # Key Specifications
//
// Binding files spell keys in a friendlier form which ParseToken and
// ParseSequence canonicalise:
//
//   - Simple keys: "a", "G", "?", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Cmd+Shift+P"
//   - Sequences: "g d", "r o d e o"
package key
