package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/yanqian/smart-faq/internal/bootstrap"
	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/internal/infra/config"
	"github.com/yanqian/smart-faq/internal/infra/faqindex"
	"github.com/yanqian/smart-faq/pkg/metrics"
)

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideFAQMetrics(reg *prometheus.Registry) *metrics.FAQ {
	return metrics.NewFAQ(reg)
}

func provideFAQConfig(cfg *config.Config) faq.Config {
	return bootstrap.FAQConfig(cfg)
}

func provideAssembler(cfg *config.Config, logger *slog.Logger) *faq.Assembler {
	return bootstrap.Assembler(cfg, logger)
}

func provideEmbedder(cfg *config.Config, logger *slog.Logger) (faq.Embedder, error) {
	return bootstrap.Embedder(cfg, logger)
}

func provideCompleter(cfg *config.Config, logger *slog.Logger) (faq.Completer, error) {
	return bootstrap.Completer(cfg, logger)
}

func provideCorpus(cfg *config.Config, logger *slog.Logger) (faq.CorpusSource, error) {
	return bootstrap.Corpus(cfg, logger)
}

func provideFAQIndex(cfg *config.Config, logger *slog.Logger) (faq.Index, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	idx, cleanup, err := bootstrap.VectorIndex(ctx, cfg, logger)
	if err != nil {
		logger.Error("vector index unavailable, using memory index", "backend", cfg.FAQ.IndexBackend, "error", err)
		return faqindex.NewMemoryIndex(cfg.FAQ.VectorDim), func() {}
	}
	if err := idx.EnsureSchema(ctx); err != nil {
		logger.Error("vector index schema check failed", "backend", cfg.FAQ.IndexBackend, "error", err)
	}
	logger.Info("faq vector index enabled", "backend", cfg.FAQ.IndexBackend, "dim", idx.Dimension())
	return idx, cleanup
}

func provideFAQStore(cfg *config.Config, logger *slog.Logger) (faq.Store, func()) {
	return bootstrap.ResultStore(context.Background(), cfg, logger)
}
