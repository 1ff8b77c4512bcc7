package faq

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/faq-widget/pkg/errors"
)

// Service answers queries against the loaded corpus.
type Service interface {
	Answer(ctx context.Context, req MatchRequest) (MatchResponse, error)
	Stats(ctx context.Context) ([]QueryStat, error)
}

type service struct {
	cfg     Config
	matcher Matcher
	corpus  Corpus
	stats   Stats
	logger  *slog.Logger
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, corpus Corpus, stats Stats, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		matcher: NewMatcher(cfg.Scoring),
		corpus:  corpus,
		stats:   stats,
		logger:  logger.With("component", "faq.service"),
	}
}

func (s *service) Answer(ctx context.Context, req MatchRequest) (MatchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return MatchResponse{}, apperrors.New(apperrors.CodeInvalidInput, "query cannot be empty")
	}

	entries := s.corpus.Entries()
	entry, score, position, ok := s.matcher.Best(req.Query, entries)

	resp := MatchResponse{
		Matched:  ok,
		Answer:   s.cfg.NotFoundMessage,
		Position: -1,
	}
	outcome := OutcomeNotFound
	if ok {
		outcome = OutcomeFAQ
		resp.Question = entry.Question
		resp.Answer = entry.Answer
		resp.Score = score
		resp.Position = position
	}

	s.logger.Debug("faq query answered", "outcome", outcome, "score", score, "corpus_size", len(entries))

	if err := s.stats.Record(ctx, normalizeQuestion(req.Query), outcome); err != nil {
		s.logger.Warn("faq stats record failed", "error", err)
	}

	return resp, nil
}

func (s *service) Stats(ctx context.Context) ([]QueryStat, error) {
	stats, err := s.stats.Top(ctx, s.cfg.TopStats)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStatsFailed, "failed to load query stats", err)
	}
	return stats, nil
}
