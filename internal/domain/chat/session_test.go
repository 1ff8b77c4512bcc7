package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yanqian/faq-widget/internal/domain/faq"
	apperrors "github.com/yanqian/faq-widget/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubAnswerer struct {
	answers map[string]string
	err     error
	calls   []string
}

func (s *stubAnswerer) Answer(_ context.Context, req faq.MatchRequest) (faq.MatchResponse, error) {
	s.calls = append(s.calls, req.Query)
	if s.err != nil {
		return faq.MatchResponse{}, s.err
	}
	answer, ok := s.answers[req.Query]
	if !ok {
		return faq.MatchResponse{Matched: false, Answer: "fallback"}, nil
	}
	return faq.MatchResponse{Matched: true, Answer: answer}, nil
}

func testConfig() Config {
	return Config{
		BotName:         "Chat Assistant",
		WelcomeMessage:  "Hi! How can I help you today?",
		NotFoundMessage: "Sorry, no answer.",
		ResponseDelay:   10 * time.Millisecond,
	}
}

func newTestSession(t *testing.T, answerer Answerer) *Session {
	t.Helper()
	s := NewSession(testConfig(), answerer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(s.Discard)
	return s
}

func flush(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

func TestSessionOpenAppendsWelcomeOnce(t *testing.T) {
	s := newTestSession(t, &stubAnswerer{})

	state := s.Open()
	require.True(t, state.Open)
	require.Len(t, state.Messages, 1)
	require.Equal(t, SourceWelcome, state.Messages[0].Source)
	require.Equal(t, SenderBot, state.Messages[0].Sender)

	s.Close()
	state = s.Open()
	require.Len(t, state.Messages, 1)
}

func TestSessionSubmitBlankIsNoop(t *testing.T) {
	answerer := &stubAnswerer{}
	s := newTestSession(t, answerer)

	for _, text := range []string{"", "  ", "\t\n"} {
		_, err := s.Submit(context.Background(), text)
		require.True(t, errors.Is(err, ErrEmptyMessage))
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	}
	flush(t, s)
	require.Empty(t, s.Transcript())
	require.Empty(t, answerer.calls)
}

func TestSessionSubmitAppendsUserThenReply(t *testing.T) {
	s := newTestSession(t, &stubAnswerer{answers: map[string]string{"hours?": "9-5"}})

	msg, err := s.Submit(context.Background(), "hours?")
	require.NoError(t, err)
	require.Equal(t, SenderUser, msg.Sender)
	require.Equal(t, "hours?", msg.Text)

	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	require.Equal(t, msg.ID, transcript[0].ID)

	flush(t, s)
	transcript = s.Transcript()
	require.Len(t, transcript, 2)
	require.Equal(t, SenderBot, transcript[1].Sender)
	require.Equal(t, SourceFAQ, transcript[1].Source)
	require.Equal(t, "9-5", transcript[1].Text)
}

func TestSessionSubmitFallback(t *testing.T) {
	s := newTestSession(t, &stubAnswerer{})

	_, err := s.Submit(context.Background(), "banana")
	require.NoError(t, err)
	flush(t, s)

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	require.Equal(t, SourceNotFound, transcript[1].Source)
	require.Equal(t, "Sorry, no answer.", transcript[1].Text)
}

func TestSessionAnswerErrorFallsBack(t *testing.T) {
	s := newTestSession(t, &stubAnswerer{err: errors.New("boom")})

	_, err := s.Submit(context.Background(), "hours")
	require.NoError(t, err)
	flush(t, s)

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	require.Equal(t, SourceNotFound, transcript[1].Source)
}

func TestSessionRapidSubmissionsKeepOrder(t *testing.T) {
	answerer := &stubAnswerer{answers: map[string]string{"hours?": "9-5", "pricing?": "$10"}}
	s := newTestSession(t, answerer)

	_, err := s.Submit(context.Background(), "hours?")
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), "pricing?")
	require.NoError(t, err)

	flush(t, s)
	transcript := s.Transcript()
	require.Len(t, transcript, 4)

	index := func(text string) int {
		for i, m := range transcript {
			if m.Text == text {
				return i
			}
		}
		return -1
	}
	require.Less(t, index("hours?"), index("9-5"))
	require.Less(t, index("pricing?"), index("$10"))
	require.Less(t, index("9-5"), index("$10"))
	require.Less(t, index("hours?"), index("pricing?"))
}

func TestSessionSequentialTurnsInterleave(t *testing.T) {
	s := newTestSession(t, &stubAnswerer{answers: map[string]string{"hours?": "9-5", "pricing?": "$10"}})

	_, err := s.Submit(context.Background(), "hours?")
	require.NoError(t, err)
	flush(t, s)
	_, err = s.Submit(context.Background(), "pricing?")
	require.NoError(t, err)
	flush(t, s)

	var texts []string
	for _, m := range s.Transcript() {
		texts = append(texts, m.Text)
	}
	require.Equal(t, []string{"hours?", "9-5", "pricing?", "$10"}, texts)
}

func TestSessionDiscardStopsDelivery(t *testing.T) {
	cfg := testConfig()
	cfg.ResponseDelay = time.Hour
	s := NewSession(cfg, &stubAnswerer{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := s.Submit(context.Background(), "hours")
	require.NoError(t, err)
	s.Discard()
	s.Discard()

	require.Len(t, s.Transcript(), 1)
	_, err = s.Submit(context.Background(), "again")
	require.True(t, errors.Is(err, ErrSessionClosed))
	require.True(t, errors.Is(s.Flush(context.Background()), ErrSessionClosed))
}

func TestSessionFlushHonoursContext(t *testing.T) {
	cfg := testConfig()
	cfg.ResponseDelay = time.Hour
	s := NewSession(cfg, &stubAnswerer{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer s.Discard()

	_, err := s.Submit(context.Background(), "hours")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, s.Flush(ctx), context.DeadlineExceeded)
}

func TestNewSessionAssignsID(t *testing.T) {
	s := newTestSession(t, &stubAnswerer{})
	require.NotEqual(t, uuid.Nil, s.ID())
	require.Equal(t, s.ID(), s.State().SessionID)
}
