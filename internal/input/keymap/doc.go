// Package keymap provides the shortcut binding table.
//
// The table maps key sequences to actions. It is built once, validated,
// and then treated as immutable; a reload builds a new table.
//
// # Key Concepts
//
// Action: What a binding does. One of navigate (to a path), focus (a
// target element) or callback (a named handler).
//
// Binding: Maps a key sequence to an action, with a description and
// category for help listings.
//
// Table: Indexes bindings in a prefix tree so that exact matches and
// strict prefixes of longer sequences can be told apart on every keystroke.
//
// # Duplicate Patterns
//
// Two bindings with the same key sequence are a configuration error. A
// strict table rejects them at construction; a lenient table logs a warning
// and the binding registered first wins.
//
// # Key Sequence Parsing
//
// Key sequences are written as space separated key specifications:
//
//	"g d"     - g followed by d
//	"Ctrl+S"  - Control+S
//	"?"       - question mark
//	"Escape"  - the escape key
//
// # Usage
//
//	table, err := keymap.NewTable(keymap.Default(), keymap.Strict())
//	if err != nil {
//	    return err
//	}
//
//	seq := key.MustParseSequence("g")
//	if matches := table.Lookup(seq); len(matches) > 0 {
//	    // Execute matches[0].Action
//	} else if table.HasPrefix(seq) {
//	    // Wait for more keys
//	}
package keymap
