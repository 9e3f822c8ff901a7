package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/internal/infra/completion"
	"github.com/yanqian/smart-faq/internal/infra/config"
	"github.com/yanqian/smart-faq/internal/infra/embedder"
	"github.com/yanqian/smart-faq/internal/infra/faqstore"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{EmbeddingModel: "text-embedding-3-small"},
		FAQ: config.FAQConfig{
			VectorDim:          8,
			IndexBackend:       config.IndexBackendMemory,
			CacheFailurePolicy: "fail",
			TopK:               4,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOfflineProviders(t *testing.T) {
	cfg := testConfig()

	emb, err := Embedder(cfg, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &embedder.DeterministicEmbedder{}, emb)

	comp, err := Completer(cfg, discardLogger())
	require.NoError(t, err)
	require.IsType(t, completion.EchoCompleter{}, comp)

	src, err := Corpus(cfg, discardLogger())
	require.NoError(t, err)
	require.Nil(t, src)
}

func TestMemoryBackends(t *testing.T) {
	cfg := testConfig()
	ctx := context.Background()

	idx, closeIndex, err := VectorIndex(ctx, cfg, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, closeIndex)
	defer closeIndex()
	require.NoError(t, idx.EnsureSchema(ctx))
	require.Equal(t, 8, idx.Dimension())

	store, closeStore := ResultStore(ctx, cfg, discardLogger())
	require.NotNil(t, closeStore)
	defer closeStore()
	require.IsType(t, &faqstore.MemoryStore{}, store)
}

func TestUnreachableBackends(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := testConfig()
	cfg.FAQ.IndexBackend = config.IndexBackendValkey
	cfg.FAQ.Redis = config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}

	idx, closeIndex, err := VectorIndex(ctx, cfg, discardLogger())
	require.Error(t, err)
	require.Nil(t, idx)
	require.Nil(t, closeIndex)

	store, closeStore := ResultStore(ctx, cfg, discardLogger())
	require.IsType(t, &faqstore.MemoryStore{}, store)
	require.NotNil(t, closeStore)
	closeStore()
}

func TestFAQConfigProjection(t *testing.T) {
	got := FAQConfig(testConfig())
	require.Equal(t, faq.CacheFailureFail, got.CacheFailurePolicy)
	require.Equal(t, 4, got.TopK)
}
