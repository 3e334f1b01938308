package fuzzy

import "unicode"

// score rates a match. Higher is better and any match scores at least 1.
func score(queryRunes, originalRunes, textRunes []rune, matches []int) int {
	if len(matches) == 0 {
		return 0
	}

	score := 100

	// Consecutive matches
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += 20
		}
	}

	// Word boundaries
	for _, idx := range matches {
		if isWordBoundary(originalRunes, idx) {
			score += 15
		}
	}

	if matches[0] == 0 {
		score += 25
	}

	// Gaps between matches
	if len(matches) > 1 {
		totalGap := matches[len(matches)-1] - matches[0] - len(matches) + 1
		if totalGap > 0 {
			score -= totalGap * 2
		}
	}

	// Distance from start
	score -= matches[0]

	// Shorter text is more specific
	if len(textRunes) < 20 {
		score += 20 - len(textRunes)
	}

	if hasPrefix(textRunes, queryRunes) {
		score += 50
	}

	if score < 1 {
		score = 1
	}
	return score
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isWordBoundary checks if the rune at idx starts a word.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}

	prev, curr := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	// camelCase
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}
