package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/yanqian/smart-faq/internal/bootstrap"
	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/internal/infra/config"
	"github.com/yanqian/smart-faq/pkg/logger"
	"github.com/yanqian/smart-faq/pkg/metrics"
)

var (
	cfg *config.Config
	log *slog.Logger
)

// rootCmd is the operator CLI for the FAQ index and cache.
var rootCmd = &cobra.Command{
	Use:           "faqctl",
	Short:         "Manage the smart FAQ vector index",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		log = logger.New()
		return nil
	},
}

// newService builds the FAQ service for one command. Callers must run the
// returned cleanup before exiting.
func newService(ctx context.Context) (faq.Service, func(), error) {
	idx, closeIndex, err := bootstrap.VectorIndex(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open vector index: %w", err)
	}
	emb, err := bootstrap.Embedder(cfg, log)
	if err != nil {
		closeIndex()
		return nil, nil, err
	}
	comp, err := bootstrap.Completer(cfg, log)
	if err != nil {
		closeIndex()
		return nil, nil, err
	}
	src, err := bootstrap.Corpus(cfg, log)
	if err != nil {
		closeIndex()
		return nil, nil, err
	}
	store, closeStore := bootstrap.ResultStore(ctx, cfg, log)
	recorder := metrics.NewFAQ(prometheus.NewRegistry())
	svc := faq.NewService(bootstrap.FAQConfig(cfg), idx, store, emb, comp, bootstrap.Assembler(cfg, log), src, recorder, log)
	return svc, func() {
		closeStore()
		closeIndex()
	}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
