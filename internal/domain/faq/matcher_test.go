package faq

import "testing"

func hoursCorpus() []Entry {
	return []Entry{
		{Question: "What are your hours?", Answer: "9-5", Tags: []string{"hours", "open"}},
	}
}

func TestMatchQuestionSubstring(t *testing.T) {
	entry, pos, ok := Match("what are your hours?", hoursCorpus())
	if !ok {
		t.Fatalf("expected a match")
	}
	if pos != 0 || entry.Answer != "9-5" {
		t.Fatalf("expected hours entry at 0, got %d %+v", pos, entry)
	}
	if score := NewMatcher(DefaultScoring()).Score("what are your hours?", entry); score < 10 {
		t.Fatalf("expected question bonus, got score %d", score)
	}
}

func TestMatchTagOverlap(t *testing.T) {
	entry, _, ok := Match("what are your hours", hoursCorpus())
	if !ok {
		t.Fatalf("expected a match")
	}
	if entry.Answer != "9-5" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestMatchNoOverlap(t *testing.T) {
	if _, pos, ok := Match("banana", hoursCorpus()); ok || pos != -1 {
		t.Fatalf("expected no match, got pos %d", pos)
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	if _, _, ok := Match("what are your hours", nil); ok {
		t.Fatalf("expected no match on empty corpus")
	}
	for _, q := range []string{"", "   ", "\t\n"} {
		if _, _, ok := Match(q, hoursCorpus()); ok {
			t.Fatalf("expected no match for %q", q)
		}
	}
	emptyQuestion := []Entry{{Question: "", Answer: "x", Tags: []string{"x"}}}
	if _, _, ok := Match("  ", emptyQuestion); ok {
		t.Fatalf("expected empty query to never match")
	}
}

func TestShortTokensIgnored(t *testing.T) {
	corpus := []Entry{{Question: "Anything else?", Answer: "ok", Tags: []string{"is", "it", "ok", "t"}}}
	m := NewMatcher(DefaultScoring())
	if score := m.Score("is it ok", corpus[0]); score != 0 {
		t.Fatalf("expected zero score from short tokens, got %d", score)
	}
	if _, _, ok := m.Match("is it ok", corpus); ok {
		t.Fatalf("expected no match")
	}
}

func TestShortTokensCountCharacters(t *testing.T) {
	m := NewMatcher(DefaultScoring())
	corpus := []Entry{{Question: "営業時間", Answer: "9-5", Tags: []string{"日本語"}}}

	if score := m.Score("日本", corpus[0]); score != 0 {
		t.Fatalf("expected two-character token to score 0, got %d", score)
	}
	if _, _, ok := m.Match("日本", corpus); ok {
		t.Fatalf("expected no match for a two-character token")
	}
	if score := m.Score("né", Entry{Question: "Neon signs?", Tags: []string{"néon"}}); score != 0 {
		t.Fatalf("expected accented two-character token to score 0, got %d", score)
	}
	if score := m.Score("日本語", corpus[0]); score != 3 {
		t.Fatalf("expected three-character token to score 3, got %d", score)
	}
}

func TestScoreBothDirections(t *testing.T) {
	m := NewMatcher(DefaultScoring())
	cases := []struct {
		name  string
		query string
		tags  []string
		score int
	}{
		{name: "tag contains word", query: "price", tags: []string{"pricing"}, score: 2},
		{name: "word contains tag", query: "pricing", tags: []string{"price"}, score: 0},
		{name: "word contains short tag", query: "pricing", tags: []string{"pric"}, score: 1},
		{name: "exact tag counts both ways", query: "hours", tags: []string{"hours"}, score: 3},
		{name: "multiple tags accumulate", query: "open hours", tags: []string{"hours", "open"}, score: 6},
		{name: "tags are case sensitive", query: "hours", tags: []string{"Hours"}, score: 0},
	}
	for _, tc := range cases {
		got := m.Score(tc.query, Entry{Question: "unrelated question", Tags: tc.tags})
		if got != tc.score {
			t.Fatalf("%s: expected %d got %d", tc.name, tc.score, got)
		}
	}
}

func TestMatchTieGoesToEarliest(t *testing.T) {
	corpus := []Entry{
		{Question: "first", Answer: "a", Tags: []string{"shipping"}},
		{Question: "second", Answer: "b", Tags: []string{"shipping"}},
	}
	entry, pos, ok := Match("shipping", corpus)
	if !ok || pos != 0 || entry.Answer != "a" {
		t.Fatalf("expected first entry, got %d %+v", pos, entry)
	}
}

func TestMatchQuestionBonusOutranksTags(t *testing.T) {
	corpus := []Entry{
		{Question: "Do you ship abroad?", Answer: "tags", Tags: []string{"refund", "refunds"}},
		{Question: "How do refunds work", Answer: "question", Tags: nil},
	}
	entry, pos, ok := Match("how do refunds work", corpus)
	if !ok {
		t.Fatalf("expected a match")
	}
	if pos != 1 || entry.Answer != "question" {
		t.Fatalf("expected question-substring entry, got %d %+v", pos, entry)
	}
}

func TestMatchBelowThreshold(t *testing.T) {
	corpus := []Entry{{Question: "q", Answer: "a", Tags: []string{"ord"}}}
	// "orders" contains "ord": +1 only.
	if _, _, ok := Match("orders", corpus); ok {
		t.Fatalf("expected score 1 to stay under threshold")
	}
}

func TestMatchReturnsCorpusElement(t *testing.T) {
	corpus := []Entry{
		{Question: "Where are you located?", Answer: "Main St", Tags: []string{"location", "address"}},
		{Question: "What are your hours?", Answer: "9-5", Tags: []string{"hours", "open"}},
		{Question: "How much does it cost?", Answer: "$10", Tags: []string{"price", "cost"}},
	}
	queries := []string{"address please", "when are you open", "cost", "nothing", "", "WHAT ARE YOUR HOURS?"}
	for _, q := range queries {
		entry, pos, ok := Match(q, corpus)
		if !ok {
			continue
		}
		if pos < 0 || pos >= len(corpus) {
			t.Fatalf("%q: position %d out of range", q, pos)
		}
		if corpus[pos].Question != entry.Question || corpus[pos].Answer != entry.Answer {
			t.Fatalf("%q: entry does not match corpus[%d]", q, pos)
		}
	}
}

func TestMatchCustomScoring(t *testing.T) {
	scoring := DefaultScoring()
	scoring.Threshold = 5
	m := NewMatcher(scoring)
	if _, _, ok := m.Match("hours", hoursCorpus()); ok {
		t.Fatalf("expected score 3 to miss threshold 5")
	}
	if _, _, ok := m.Match("open hours", hoursCorpus()); !ok {
		t.Fatalf("expected score 6 to pass threshold 5")
	}
}

func TestMatchDoesNotMutateCorpus(t *testing.T) {
	corpus := hoursCorpus()
	Match("WHAT ARE YOUR HOURS", corpus)
	if corpus[0].Question != "What are your hours?" || corpus[0].Tags[0] != "hours" {
		t.Fatalf("corpus mutated: %+v", corpus[0])
	}
}
