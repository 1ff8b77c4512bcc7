package faq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/faq-widget/pkg/errors"
)

type staticCorpus []Entry

func (c staticCorpus) Entries() []Entry { return c }

type recordedStat struct {
	query   string
	outcome Outcome
}

type stubStats struct {
	recorded []recordedStat
	top      []QueryStat
	err      error
}

func (s *stubStats) Record(_ context.Context, query string, outcome Outcome) error {
	s.recorded = append(s.recorded, recordedStat{query: query, outcome: outcome})
	return s.err
}

func (s *stubStats) Top(_ context.Context, _ int) ([]QueryStat, error) {
	return s.top, s.err
}

func newServiceUnderTest(corpus Corpus, stats Stats) Service {
	cfg := Config{Scoring: DefaultScoring(), NotFoundMessage: "not found", TopStats: 5}
	return NewService(cfg, corpus, stats, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceAnswerMatched(t *testing.T) {
	stats := &stubStats{}
	svc := newServiceUnderTest(staticCorpus(hoursCorpus()), stats)

	resp, err := svc.Answer(context.Background(), MatchRequest{Query: "  What are your HOURS?"})
	require.NoError(t, err)
	require.True(t, resp.Matched)
	require.Equal(t, "9-5", resp.Answer)
	require.Equal(t, 0, resp.Position)
	require.Equal(t, 11, resp.Score)
	require.Equal(t, []recordedStat{{query: "what are your hours?", outcome: OutcomeFAQ}}, stats.recorded)
}

func TestServiceAnswerNotFound(t *testing.T) {
	stats := &stubStats{}
	svc := newServiceUnderTest(staticCorpus(hoursCorpus()), stats)

	resp, err := svc.Answer(context.Background(), MatchRequest{Query: "banana"})
	require.NoError(t, err)
	require.False(t, resp.Matched)
	require.Equal(t, "not found", resp.Answer)
	require.Equal(t, -1, resp.Position)
	require.Equal(t, OutcomeNotFound, stats.recorded[0].outcome)
}

func TestServiceAnswerEmptyQuery(t *testing.T) {
	stats := &stubStats{}
	svc := newServiceUnderTest(staticCorpus(hoursCorpus()), stats)

	_, err := svc.Answer(context.Background(), MatchRequest{Query: "  "})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Empty(t, stats.recorded)
}

func TestServiceAnswerIgnoresStatsFailure(t *testing.T) {
	stats := &stubStats{err: errors.New("down")}
	svc := newServiceUnderTest(staticCorpus(hoursCorpus()), stats)

	resp, err := svc.Answer(context.Background(), MatchRequest{Query: "hours"})
	require.NoError(t, err)
	require.True(t, resp.Matched)
}

func TestServiceStatsError(t *testing.T) {
	svc := newServiceUnderTest(staticCorpus(nil), &stubStats{err: errors.New("down")})

	_, err := svc.Stats(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeStatsFailed))
}
