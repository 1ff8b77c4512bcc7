package faq

import "time"

// Entry is a single question/answer pair with its match tags.
type Entry struct {
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// Outcome classifies how a query was answered.
type Outcome string

const (
	// OutcomeFAQ means a corpus entry answered the query.
	OutcomeFAQ Outcome = "faq"
	// OutcomeNotFound means the fallback message was used.
	OutcomeNotFound Outcome = "not-found"
)

// MatchRequest is the payload of the stateless match endpoint.
type MatchRequest struct {
	Query string `json:"query"`
}

// MatchResponse reports the winning entry, if any.
type MatchResponse struct {
	Matched  bool   `json:"matched"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Position int    `json:"position"`
}

// QueryStat represents how often a question was matched or missed.
type QueryStat struct {
	Query     string    `json:"query"`
	Outcome   Outcome   `json:"outcome"`
	Count     int64     `json:"count"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
