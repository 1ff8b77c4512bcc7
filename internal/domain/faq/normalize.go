package faq

import "strings"

// normalizeQuery lowercases the query without altering punctuation or spacing,
// so question substrings are compared against the text as typed.
func normalizeQuery(q string) string {
	return strings.ToLower(q)
}

// tokenize splits a normalized query on runs of whitespace.
func tokenize(normalized string) []string {
	return strings.Fields(normalized)
}

// normalizeQuestion folds a query into the key used for statistics.
func normalizeQuestion(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
