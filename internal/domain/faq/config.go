package faq

// Scoring holds the keyword heuristics used by the Matcher.
type Scoring struct {
	// MinTokenLength is exclusive: only tokens longer than this count.
	MinTokenLength  int
	TagContainsWord int
	WordContainsTag int
	QuestionBonus   int
	Threshold       int
}

// DefaultScoring returns the stock heuristics.
func DefaultScoring() Scoring {
	return Scoring{
		MinTokenLength:  2,
		TagContainsWord: 2,
		WordContainsTag: 1,
		QuestionBonus:   10,
		Threshold:       2,
	}
}

// Config holds runtime knobs for the FAQ service.
type Config struct {
	Scoring         Scoring
	NotFoundMessage string
	TopStats        int
}
