package analysis

import (
	"strings"
	"unicode"
)

// ExtractKeywords returns the subset of the locale's fixed cue vocabulary
// present in the text, in vocabulary order. This is a bag-of-cues policy,
// not a statistical extractor; when nothing matches it returns the generic
// two-term fallback.
func (r *RuleSet) ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range r.Keywords {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	if len(found) == 0 {
		return append([]string(nil), r.KeywordFallback...)
	}
	return found
}

// countWords counts CJK ideographs individually and runs of other
// letters/digits as single words.
func countWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			count++
			inWord = false
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if !inWord {
				count++
				inWord = true
			}
			continue
		}
		inWord = false
	}
	return count
}

// truncateTitle shortens node titles to at most 100 characters, appending
// an ellipsis when the source text is longer.
func truncateTitle(s string) string {
	const maxLen = 100
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
