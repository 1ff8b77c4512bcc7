package faq

import (
	"strings"
	"unicode/utf8"
)

// Matcher scores corpus entries against a free-text query using tag and
// question overlap.
type Matcher struct {
	scoring Scoring
}

// NewMatcher builds a matcher with the supplied heuristics.
func NewMatcher(scoring Scoring) Matcher {
	return Matcher{scoring: scoring}
}

// Match returns the best entry for query using DefaultScoring.
func Match(query string, corpus []Entry) (Entry, int, bool) {
	return NewMatcher(DefaultScoring()).Match(query, corpus)
}

// Match returns the highest scoring entry and its position in corpus. The
// earliest entry wins ties. ok is false when no entry reaches the threshold.
func (m Matcher) Match(query string, corpus []Entry) (entry Entry, position int, ok bool) {
	best, _, pos := m.best(query, corpus)
	if pos < 0 {
		return Entry{}, -1, false
	}
	return best, pos, true
}

// Best is Match plus the winning score, zero when nothing matched.
func (m Matcher) Best(query string, corpus []Entry) (Entry, int, int, bool) {
	best, score, pos := m.best(query, corpus)
	if pos < 0 {
		return Entry{}, 0, -1, false
	}
	return best, score, pos, true
}

func (m Matcher) best(query string, corpus []Entry) (Entry, int, int) {
	normalized := normalizeQuery(query)
	words := tokenize(normalized)
	if len(words) == 0 {
		return Entry{}, 0, -1
	}

	var (
		winner    Entry
		highScore int
		position  = -1
	)
	for i, candidate := range corpus {
		score := m.score(normalized, words, candidate)
		if score > highScore && score >= m.scoring.Threshold {
			highScore = score
			winner = candidate
			position = i
		}
	}
	return winner, highScore, position
}

// Score computes the relevance of a single entry for query.
func (m Matcher) Score(query string, entry Entry) int {
	normalized := normalizeQuery(query)
	return m.score(normalized, tokenize(normalized), entry)
}

func (m Matcher) score(normalized string, words []string, entry Entry) int {
	score := 0
	for _, tag := range entry.Tags {
		for _, word := range words {
			// length is in characters, not bytes
			if utf8.RuneCountInString(word) <= m.scoring.MinTokenLength {
				continue
			}
			if strings.Contains(tag, word) {
				score += m.scoring.TagContainsWord
			}
			if strings.Contains(word, tag) {
				score += m.scoring.WordContainsTag
			}
		}
	}
	if strings.Contains(normalized, strings.ToLower(entry.Question)) {
		score += m.scoring.QuestionBonus
	}
	return score
}
