package fuzzy

import (
	"sort"
	"strings"

	"github.com/dshills/keychord/internal/input/keymap"
)

// Field names the binding text a match was found in.
type Field string

// Searchable binding fields.
const (
	FieldDescription Field = "description"
	FieldKeys        Field = "keys"
	FieldTarget      Field = "target"
)

// Match is a binding that matched a query.
type Match struct {
	// Binding is the matched binding.
	Binding keymap.Binding

	// Field is where the best match was found.
	Field Field

	// Score is the match score (higher is better).
	Score int

	// Positions contains the rune indices of matched characters in Field.
	Positions []int
}

// Bindings returns the bindings matching query, best first. Ties keep
// table order. An empty query returns every binding with a zero score.
// limit <= 0 means no limit.
func Bindings(query string, bindings []keymap.Binding, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))

	var matches []Match
	if query == "" {
		matches = make([]Match, len(bindings))
		for i, b := range bindings {
			matches[i] = Match{Binding: b}
		}
		return applyLimit(matches, limit)
	}

	queryRunes := []rune(query)
	for _, b := range bindings {
		best := Match{Binding: b}
		for _, f := range fields(b) {
			score, pos := matchText(queryRunes, f.text)
			if score > best.Score {
				best.Field = f.name
				best.Score = score
				best.Positions = pos
			}
		}
		if best.Score > 0 {
			matches = append(matches, best)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return applyLimit(matches, limit)
}

type field struct {
	name Field
	text string
}

func fields(b keymap.Binding) []field {
	keys := b.Keys
	if !b.Pattern.IsEmpty() {
		keys = b.Pattern.String()
	}
	return []field{
		{FieldDescription, b.Description},
		{FieldKeys, keys},
		{FieldTarget, b.Action.Target},
	}
}

// matchText scores text against the query.
// Returns score and matched character indices (rune indices).
func matchText(queryRunes []rune, text string) (int, []int) {
	if text == "" || len(queryRunes) == 0 {
		return 0, nil
	}

	textRunes := []rune(strings.ToLower(text))
	originalRunes := []rune(text) // Keep original case for boundary detection
	if len(textRunes) != len(originalRunes) {
		// Lowercasing changed the rune count; boundaries use the folded text.
		originalRunes = textRunes
	}

	// Greedy left-to-right scan
	positions := make([]int, 0, len(queryRunes))
	queryIdx := 0
	for i := 0; i < len(textRunes) && queryIdx < len(queryRunes); i++ {
		if textRunes[i] == queryRunes[queryIdx] {
			positions = append(positions, i)
			queryIdx++
		}
	}

	// All query characters must match
	if queryIdx != len(queryRunes) {
		return 0, nil
	}

	return score(queryRunes, originalRunes, textRunes, positions), positions
}

// applyLimit returns at most limit matches.
func applyLimit(matches []Match, limit int) []Match {
	if limit <= 0 || limit >= len(matches) {
		return matches
	}
	return matches[:limit]
}
