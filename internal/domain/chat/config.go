package chat

import "time"

// Config holds the widget options the conversation needs.
type Config struct {
	BotName         string
	WelcomeMessage  string
	PrimaryColor    string
	Position        string
	NotFoundMessage string
	ResponseDelay   time.Duration
	IdleTTL         time.Duration
	MaxSessions     int
}
