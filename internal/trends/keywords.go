// Package trends extracts trending keywords from video titles and maintains
// the persisted trend counters.
package trends

import (
	"sort"
	"strings"
	"unicode"
)

// ExtractKeywords returns up to maxTerms salient terms from text, ranked by
// in-document frequency with stopwords removed. If nothing survives filtering
// the original text is returned as a single-element fallback, so callers never
// see an empty result for non-empty input.
func ExtractKeywords(text string, maxTerms int) []string {
	if text == "" {
		return nil
	}
	if maxTerms <= 0 {
		maxTerms = 5
	}

	counts := make(map[string]int)
	var order []string

	for _, token := range tokenize(text) {
		if len(token) < 2 || stopwords[token] {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	if len(order) == 0 {
		return []string{text}
	}

	firstSeen := make(map[string]int, len(order))
	for i, term := range order {
		firstSeen[term] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > maxTerms {
		order = order[:maxTerms]
	}
	return order
}

// tokenize splits on any non-alphanumeric rune and lowercases, mirroring a
// \b\w+\b token pattern.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

var stopwords = func() map[string]bool {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "could",
		"did", "do", "does", "doing", "down", "during", "each", "few", "for",
		"from", "further", "had", "has", "have", "having", "he", "her", "here",
		"hers", "him", "his", "how", "i", "if", "in", "into", "is", "it",
		"its", "just", "me", "more", "most", "my", "no", "nor", "not", "now",
		"of", "off", "on", "once", "only", "or", "other", "our", "ours",
		"out", "over", "own", "same", "she", "should", "so", "some", "such",
		"than", "that", "the", "their", "theirs", "them", "then", "there",
		"these", "they", "this", "those", "through", "to", "too", "under",
		"until", "up", "very", "was", "we", "were", "what", "when", "where",
		"which", "while", "who", "whom", "why", "will", "with", "would",
		"you", "your", "yours",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()
