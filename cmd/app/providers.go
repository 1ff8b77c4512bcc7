package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-widget/internal/domain/chat"
	"github.com/yanqian/faq-widget/internal/domain/faq"
	"github.com/yanqian/faq-widget/internal/infra/config"
	"github.com/yanqian/faq-widget/internal/infra/corpus"
	"github.com/yanqian/faq-widget/internal/infra/faqstore"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		Scoring: faq.Scoring{
			MinTokenLength:  cfg.Matcher.MinTokenLength,
			TagContainsWord: cfg.Matcher.TagContainsWord,
			WordContainsTag: cfg.Matcher.WordContainsTag,
			QuestionBonus:   cfg.Matcher.QuestionBonus,
			Threshold:       cfg.Matcher.Threshold,
		},
		NotFoundMessage: cfg.Widget.NotFoundMessage,
		TopStats:        cfg.Stats.Top,
	}
}

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		BotName:         cfg.Widget.BotName,
		WelcomeMessage:  cfg.Widget.WelcomeMessage,
		PrimaryColor:    cfg.Widget.PrimaryColor,
		Position:        cfg.Widget.Position,
		NotFoundMessage: cfg.Widget.NotFoundMessage,
		ResponseDelay:   cfg.Widget.ResponseDelay,
		IdleTTL:         cfg.Sessions.IdleTTL,
		MaxSessions:     cfg.Sessions.MaxSessions,
	}
}

func provideCorpusSource(cfg *config.Config, logger *slog.Logger) (corpus.Source, func(), error) {
	noop := func() {}
	switch cfg.Corpus.Source {
	case config.CorpusHTTP:
		return corpus.NewHTTPSource(cfg.Corpus.URL, cfg.Corpus.LoadTimeout), noop, nil
	case config.CorpusS3:
		s3 := cfg.Corpus.S3
		source, err := corpus.NewObjectSource(s3.Endpoint, s3.AccessKey, s3.SecretKey, s3.Bucket, s3.Region, s3.Key)
		if err != nil {
			return nil, nil, err
		}
		return source, noop, nil
	case config.CorpusPostgres:
		pool, err := newPostgresPool(cfg.Corpus.Postgres)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("faq corpus postgres source enabled", "table", cfg.Corpus.Postgres.Table)
		source := corpus.NewPostgresSource(pool, cfg.Corpus.Postgres.Table)
		return source, source.Close, nil
	default:
		return corpus.NewFileSource(cfg.Corpus.Path), noop, nil
	}
}

// newPostgresPool does not ping: an unreachable database surfaces as a
// failed corpus load, which serves an empty corpus.
func newPostgresPool(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres pool: %w", err)
	}
	return pool, nil
}

func provideCorpusWatcher(cfg *config.Config, source corpus.Source, provider *corpus.Provider, logger *slog.Logger) *corpus.Watcher {
	if !cfg.Corpus.Watch {
		return nil
	}
	fileSource, ok := source.(*corpus.FileSource)
	if !ok {
		logger.Warn("corpus watch requested for non-file source, ignoring")
		return nil
	}
	return corpus.NewWatcher(provider, fileSource, 0, logger)
}

func provideFAQStats(cfg *config.Config, logger *slog.Logger) (faq.Stats, func()) {
	noop := func() {}
	if !cfg.Stats.Redis.Enabled {
		return faqstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory stats", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory stats", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory stats", "error", err)
		client.Close()
		return faqstore.NewMemoryStore(), noop
	}
	logger.Info("faq valkey stats enabled", "addr", cfg.Stats.Redis.Addr)
	return faqstore.NewValkeyStore(client, cfg.Stats.Redis.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Stats.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Stats.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Stats.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
