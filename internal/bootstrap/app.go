package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/yanqian/faq-widget/internal/domain/chat"
	"github.com/yanqian/faq-widget/internal/infra/config"
	"github.com/yanqian/faq-widget/internal/infra/corpus"
)

// App encapsulates the HTTP server, corpus loading and session lifecycle.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	corpus   *corpus.Provider
	watcher  *corpus.Watcher
	sessions *chat.Manager
}

// NewApp is used by Wire to build the runnable app. watcher may be nil.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, provider *corpus.Provider, watcher *corpus.Watcher, sessions *chat.Manager) *App {
	return &App{
		cfg:      cfg,
		logger:   logger.With("component", "bootstrap"),
		server:   server,
		corpus:   provider,
		watcher:  watcher,
		sessions: sessions,
	}
}

// Run starts the HTTP server and blocks until shutdown. The corpus loads in
// the background; requests served before it completes see an empty corpus.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		loadCtx, loadCancel := context.WithTimeout(runCtx, a.cfg.Corpus.LoadTimeout)
		defer loadCancel()
		a.corpus.Load(loadCtx)
	}()
	go func() {
		defer wg.Done()
		a.sessions.Run(runCtx)
	}()
	if a.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.watcher.Run(runCtx); err != nil {
				a.logger.Error("corpus watcher stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		a.logger.Info("shutdown signal received")
		runErr = a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	}

	cancel()
	wg.Wait()
	return runErr
}
