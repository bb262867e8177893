package search

import "strings"

// normalizeQuery lowercases and trims a raw query string.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// queryWords splits a query into lowercased whitespace-delimited words.
// The same word list feeds both candidate pre-filtering and the word-level
// scoring tier so the two stay consistent.
func queryWords(query string) []string {
	return strings.Fields(normalizeQuery(query))
}

// clampScore keeps a normalized score inside [0,1].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
