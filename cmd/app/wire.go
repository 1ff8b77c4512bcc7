//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/faq-widget/internal/bootstrap"
	"github.com/yanqian/faq-widget/internal/domain/chat"
	"github.com/yanqian/faq-widget/internal/domain/faq"
	"github.com/yanqian/faq-widget/internal/infra/config"
	"github.com/yanqian/faq-widget/internal/infra/corpus"
	httpiface "github.com/yanqian/faq-widget/internal/interface/http"
	"github.com/yanqian/faq-widget/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		provideChatConfig,
		provideCorpusSource,
		provideCorpusWatcher,
		provideFAQStats,
		corpus.NewProvider,
		faq.NewService,
		chat.NewManager,
		wire.Bind(new(faq.Corpus), new(*corpus.Provider)),
		wire.Bind(new(chat.Answerer), new(faq.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
