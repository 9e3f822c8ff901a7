//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanqian/smart-faq/internal/bootstrap"
	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/internal/infra/config"
	httpiface "github.com/yanqian/smart-faq/internal/interface/http"
	"github.com/yanqian/smart-faq/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRegistry,
		provideFAQMetrics,
		provideFAQConfig,
		provideAssembler,
		provideEmbedder,
		provideCompleter,
		provideCorpus,
		provideFAQIndex,
		provideFAQStore,
		faq.NewService,
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
