package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/faq-widget/internal/domain/faq"
	"github.com/yanqian/faq-widget/pkg/util"
)

type scheduledReply struct {
	due     time.Time
	message Message
}

// Session owns one widget's transcript for the lifetime of the widget. Bot
// replies are appended by a single worker in submission order.
type Session struct {
	id       uuid.UUID
	cfg      Config
	answerer Answerer
	logger   *slog.Logger
	now      util.Clock

	// submitMu serializes submissions so replies queue in user order.
	submitMu sync.Mutex

	mu         sync.Mutex
	open       bool
	discarded  bool
	messages   []Message
	queue      []scheduledReply
	drained    chan struct{}
	lastActive time.Time

	wake chan struct{}
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewSession builds a session and starts its reply worker. Callers must
// Discard it to release the worker.
func NewSession(cfg Config, answerer Answerer, logger *slog.Logger) *Session {
	return newSession(uuid.New(), cfg, answerer, logger, util.NowUTC)
}

func newSession(id uuid.UUID, cfg Config, answerer Answerer, logger *slog.Logger, now util.Clock) *Session {
	drained := make(chan struct{})
	close(drained)
	s := &Session{
		id:         id,
		cfg:        cfg,
		answerer:   answerer,
		logger:     logger.With("component", "chat.session", "session_id", id.String()),
		now:        now,
		drained:    drained,
		lastActive: now(),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	s.wg.Add(1)
	go s.deliver()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Open shows the widget. The welcome message is appended the first time the
// transcript is empty.
func (s *Session) Open() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.touchLocked()
	if len(s.messages) == 0 && !s.discarded && s.cfg.WelcomeMessage != "" {
		s.messages = append(s.messages, s.botMessage(s.cfg.WelcomeMessage, SourceWelcome))
	}
	return s.stateLocked()
}

// Close hides the widget; the transcript and pending replies are kept.
func (s *Session) Close() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.touchLocked()
	return s.stateLocked()
}

// Submit appends the user's message and schedules exactly one bot reply
// derived from this query. Blank text is rejected without side effects.
func (s *Session) Submit(ctx context.Context, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	s.mu.Lock()
	if s.discarded {
		s.mu.Unlock()
		return Message{}, ErrSessionClosed
	}
	userMsg := Message{
		ID:        uuid.New(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, userMsg)
	s.touchLocked()
	s.mu.Unlock()

	reply := s.resolve(ctx, text)

	s.mu.Lock()
	if s.discarded {
		s.mu.Unlock()
		return userMsg, nil
	}
	if len(s.queue) == 0 {
		s.drained = make(chan struct{})
	}
	s.queue = append(s.queue, scheduledReply{due: time.Now().Add(s.cfg.ResponseDelay), message: reply})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return userMsg, nil
}

func (s *Session) resolve(ctx context.Context, text string) Message {
	resp, err := s.answerer.Answer(ctx, faq.MatchRequest{Query: text})
	if err != nil {
		s.logger.Warn("faq lookup failed, using fallback", "error", err)
		return s.botMessage(s.cfg.NotFoundMessage, SourceNotFound)
	}
	if !resp.Matched {
		return s.botMessage(s.cfg.NotFoundMessage, SourceNotFound)
	}
	return s.botMessage(resp.Answer, SourceFAQ)
}

// deliver drains the reply queue in order, waiting for each reply's due time.
func (s *Session) deliver() {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		due := s.queue[0].due
		s.mu.Unlock()

		if wait := time.Until(due); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-s.done:
				timer.Stop()
				return
			}
		}

		s.mu.Lock()
		if s.discarded || len(s.queue) == 0 {
			s.mu.Unlock()
			continue
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		next.message.Timestamp = s.now()
		s.messages = append(s.messages, next.message)
		if len(s.queue) == 0 {
			close(s.drained)
		}
		s.mu.Unlock()
	}
}

// Flush blocks until every scheduled reply has been appended.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	drained := s.drained
	s.mu.Unlock()
	select {
	case <-drained:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Transcript returns a copy of the messages appended so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Discard stops the worker and drops undelivered replies. Safe to call more
// than once.
func (s *Session) Discard() {
	s.once.Do(func() {
		s.mu.Lock()
		s.discarded = true
		s.queue = nil
		s.mu.Unlock()
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) > 0 {
		return 0
	}
	return now.Sub(s.lastActive)
}

func (s *Session) touchLocked() {
	s.lastActive = s.now()
}

func (s *Session) stateLocked() State {
	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)
	return State{
		SessionID:  s.id,
		Open:       s.open,
		Pending:    len(s.queue),
		Messages:   messages,
		LastActive: s.lastActive,
	}
}

func (s *Session) botMessage(text string, source Source) Message {
	return Message{
		ID:        uuid.New(),
		Text:      text,
		Sender:    SenderBot,
		Source:    source,
		Timestamp: s.now(),
	}
}
