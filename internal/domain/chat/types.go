package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/faq-widget/internal/domain/faq"
)

// Sender identifies who authored a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Source tags bot messages with where their text came from.
type Source string

const (
	SourceWelcome  Source = "welcome"
	SourceFAQ      Source = Source(faq.OutcomeFAQ)
	SourceNotFound Source = Source(faq.OutcomeNotFound)
)

// Message is one transcript line.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Source    Source    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmitRequest carries a user submission.
type SubmitRequest struct {
	Text string `json:"text"`
}

// State is the externally visible snapshot of a session.
type State struct {
	SessionID  uuid.UUID `json:"sessionId"`
	Open       bool      `json:"open"`
	Pending    int       `json:"pending"`
	Messages   []Message `json:"messages"`
	LastActive time.Time `json:"lastActive"`
}

// Answerer resolves a query into an FAQ answer or the fallback text.
type Answerer interface {
	Answer(ctx context.Context, req faq.MatchRequest) (faq.MatchResponse, error)
}
