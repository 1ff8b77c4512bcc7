package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yanqian/faq-widget/internal/domain/chat"
	"github.com/yanqian/faq-widget/internal/domain/faq"
	"github.com/yanqian/faq-widget/internal/infra/config"
	"github.com/yanqian/faq-widget/internal/infra/corpus"
	"github.com/yanqian/faq-widget/internal/infra/faqstore"
	"github.com/yanqian/faq-widget/pkg/logger"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	defaults := config.Default()
	return &cli.App{
		Name:   "faqctl",
		Usage:  "Query a FAQ corpus from the terminal",
		Reader: in,
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "match",
				Usage:     "Print the best answer for a single query",
				ArgsUsage: "QUERY...",
				Action:    matchCommand,
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.StringFlag{
						Name:  "not-found",
						Usage: "Text printed when nothing matches",
						Value: defaults.Widget.NotFoundMessage,
					},
					&cli.BoolFlag{
						Name:  "score",
						Usage: "Print the winning score and corpus position",
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Chat with the FAQ assistant over stdin",
				Action: chatCommand,
				Flags: []cli.Flag{
					corpusFlag(),
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "Delay before each bot reply",
						Value: defaults.Widget.ResponseDelay,
					},
					&cli.StringFlag{
						Name:  "bot-name",
						Usage: "Label printed before bot replies",
						Value: defaults.Widget.BotName,
					},
					&cli.StringFlag{
						Name:  "welcome",
						Usage: "Welcome message shown when the chat opens",
						Value: defaults.Widget.WelcomeMessage,
					},
					&cli.StringFlag{
						Name:  "not-found",
						Usage: "Reply used when nothing matches",
						Value: defaults.Widget.NotFoundMessage,
					},
				},
			},
		},
	}
}

func corpusFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "corpus",
		Aliases:  []string{"c"},
		Usage:    "Path to the FAQ corpus (.json, .yaml or .yml)",
		Required: true,
	}
}

func setupLogger(c *cli.Context) error {
	level := strings.ToLower(c.String("log-level"))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", level)
	}
	slog.SetDefault(logger.NewWriter(os.Stderr, level))
	return nil
}

func loadCorpus(ctx context.Context, path string) (*corpus.Provider, error) {
	provider := corpus.NewProvider(corpus.NewFileSource(path), slog.Default())
	if err := provider.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	return provider, nil
}

func newService(provider *corpus.Provider, notFound string) faq.Service {
	return faq.NewService(faq.Config{
		Scoring:         faq.DefaultScoring(),
		NotFoundMessage: notFound,
	}, provider, faqstore.NewMemoryStore(), slog.Default())
}

func matchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}
	provider, err := loadCorpus(c.Context, c.String("corpus"))
	if err != nil {
		return err
	}
	resp, err := newService(provider, c.String("not-found")).Answer(c.Context, faq.MatchRequest{Query: query})
	if err != nil {
		return err
	}
	out := c.App.Writer
	if c.Bool("score") && resp.Matched {
		fmt.Fprintf(out, "[%d] score=%d %s\n", resp.Position, resp.Score, resp.Question)
	}
	fmt.Fprintln(out, resp.Answer)
	return nil
}

func chatCommand(c *cli.Context) error {
	provider, err := loadCorpus(c.Context, c.String("corpus"))
	if err != nil {
		return err
	}
	cfg := chat.Config{
		BotName:         c.String("bot-name"),
		WelcomeMessage:  c.String("welcome"),
		NotFoundMessage: c.String("not-found"),
		ResponseDelay:   c.Duration("delay"),
	}
	session := chat.NewSession(cfg, newService(provider, cfg.NotFoundMessage), slog.Default())
	defer session.Discard()

	out := c.App.Writer
	printed := 0
	printNew := func() {
		transcript := session.Transcript()
		for _, msg := range transcript[printed:] {
			if msg.Sender == chat.SenderBot {
				fmt.Fprintf(out, "%s: %s\n", cfg.BotName, msg.Text)
			}
		}
		printed = len(transcript)
	}

	session.Open()
	printNew()

	scanner := bufio.NewScanner(c.App.Reader)
	for scanner.Scan() {
		line := scanner.Text()
		if _, err := session.Submit(c.Context, line); err != nil {
			if errors.Is(err, chat.ErrEmptyMessage) {
				continue
			}
			return err
		}
		ctx, cancel := context.WithTimeout(c.Context, cfg.ResponseDelay+5*time.Second)
		err := session.Flush(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("waiting for reply: %w", err)
		}
		printNew()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	session.Close()
	return nil
}
