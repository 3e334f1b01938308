// Package fuzzy filters binding tables by a typed query, for help panels
// and the list command.
//
// A query matches a binding when its characters appear in order in the
// binding's description, its key sequence or its action target. The best
// of the three scores ranks the binding.
//
// # Scoring Algorithm
//
// The scorer favors matches based on several factors:
//   - Consecutive character matches (bonus)
//   - Word boundary matches (start of word, camelCase transitions)
//   - Prefix matches (query at start of text)
//   - Shorter text (more specific matches)
//   - Minimal gaps between matched characters
//
// # Usage
//
//	for _, m := range fuzzy.Bindings("save", table.Bindings(), 5) {
//	    fmt.Printf("%s  %s\n", m.Binding.Keys, m.Binding.Description)
//	}
package fuzzy
