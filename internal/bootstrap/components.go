package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/internal/infra/completion"
	"github.com/yanqian/smart-faq/internal/infra/config"
	"github.com/yanqian/smart-faq/internal/infra/corpus"
	"github.com/yanqian/smart-faq/internal/infra/embedder"
	"github.com/yanqian/smart-faq/internal/infra/faqindex"
	"github.com/yanqian/smart-faq/internal/infra/faqstore"
	"github.com/yanqian/smart-faq/internal/infra/llm/chatgpt"
	"github.com/yanqian/smart-faq/internal/infra/tokenizer"
)

// FAQConfig projects the runtime config onto the domain config.
func FAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		Prompt:             cfg.FAQ.Prompt,
		CacheTTL:           cfg.FAQ.CacheTTL,
		TopK:               cfg.FAQ.TopK,
		MaxContextTokens:   cfg.FAQ.MaxContextTokens,
		RequestTimeout:     cfg.FAQ.RequestTimeout,
		CacheFailurePolicy: faq.CacheFailurePolicy(cfg.FAQ.CacheFailurePolicy),
		TopRecommendations: cfg.FAQ.TopRecommendations,
		IngestConcurrency:  cfg.FAQ.IngestConcurrency,
	}
}

// Assembler builds the context assembler with a tiktoken budget.
func Assembler(cfg *config.Config, logger *slog.Logger) *faq.Assembler {
	return faq.NewAssembler(cfg.FAQ.MaxContextTokens, tokenizer.NewTiktokenCounter(cfg.FAQ.TokenEncoding, logger))
}

// Embedder returns the OpenAI embedder, or the offline one without an API key.
func Embedder(cfg *config.Config, logger *slog.Logger) (faq.Embedder, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, using deterministic embedder", "dim", cfg.FAQ.VectorDim)
		return embedder.NewDeterministicEmbedder(cfg.FAQ.VectorDim), nil
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
	if err != nil {
		return nil, err
	}
	return embedder.NewChatGPTEmbedder(client, cfg.LLM.EmbeddingModel, logger), nil
}

// Completer returns the chat completer, or the echo completer without an API key.
func Completer(cfg *config.Config, logger *slog.Logger) (faq.Completer, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, using echo completer")
		return completion.EchoCompleter{}, nil
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
	if err != nil {
		return nil, err
	}
	return completion.NewChatGPTCompleter(client, cfg.LLM.Model, cfg.LLM.Temperature), nil
}

// Corpus returns the object storage source, or nil when it is not configured.
func Corpus(cfg *config.Config, logger *slog.Logger) (faq.CorpusSource, error) {
	oc := cfg.ObjectStorage
	if !oc.Enabled() {
		return nil, nil
	}
	src, err := corpus.NewObjectSource(oc.Endpoint, oc.AccessKey, oc.SecretKey, oc.Bucket, oc.Region, logger)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// ValkeyClient connects and pings the configured Valkey server.
func ValkeyClient(ctx context.Context, cfg *config.Config) (valkey.Client, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	addr := strings.TrimSpace(cfg.FAQ.Redis.Addr)
	if strings.Contains(addr, "://") {
		opt, err = valkey.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse valkey url: %w", err)
		}
	} else {
		opt = valkey.ClientOption{InitAddress: []string{addr}}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}
	return client, nil
}

// PostgresPool opens and pings the configured pgx pool.
func PostgresPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.FAQ.Postgres.DSN))
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.FAQ.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.FAQ.Postgres.MaxConns
	}
	if cfg.FAQ.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.FAQ.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// Index is a vector index that can also create its own schema.
type Index interface {
	faq.Index
	EnsureSchema(ctx context.Context) error
}

type valkeySchema struct {
	*faqindex.ValkeyIndex
	logger *slog.Logger
}

func (v valkeySchema) EnsureSchema(ctx context.Context) error {
	created, err := v.ValkeyIndex.EnsureSchema(ctx)
	if err != nil {
		return err
	}
	v.logger.Info("valkey search index ready", "created", created)
	return nil
}

type memorySchema struct {
	*faqindex.MemoryIndex
}

func (memorySchema) EnsureSchema(context.Context) error { return nil }

func noCleanup() {}

// VectorIndex builds the index selected by faq.indexBackend. The returned
// cleanup releases its connections and is safe to call once.
func VectorIndex(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Index, func(), error) {
	switch cfg.FAQ.IndexBackend {
	case config.IndexBackendValkey:
		client, err := ValkeyClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		idx := valkeySchema{
			ValkeyIndex: faqindex.NewValkeyIndex(client, cfg.FAQ.IndexName, cfg.FAQ.VectorDim),
			logger:      logger,
		}
		return idx, client.Close, nil
	case config.IndexBackendPostgres:
		pool, err := PostgresPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return faqindex.NewPostgresIndex(pool, cfg.FAQ.VectorDim), pool.Close, nil
	default:
		return memorySchema{faqindex.NewMemoryIndex(cfg.FAQ.VectorDim)}, noCleanup, nil
	}
}

// ResultStore returns the Valkey result cache when enabled, falling back to
// memory when it cannot be reached.
func ResultStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (faq.Store, func()) {
	if !cfg.FAQ.Redis.Enabled {
		return faqstore.NewMemoryStore(), noCleanup
	}
	client, err := ValkeyClient(ctx, cfg)
	if err != nil {
		logger.Error("valkey unavailable, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noCleanup
	}
	logger.Info("faq valkey store enabled", "addr", cfg.FAQ.Redis.Addr)
	return faqstore.NewValkeyStore(client, "faq"), client.Close
}
