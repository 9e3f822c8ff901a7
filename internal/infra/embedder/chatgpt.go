package embedder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/internal/infra/llm/chatgpt"
)

// ChatGPTEmbedder calls an OpenAI compatible embeddings API.
type ChatGPTEmbedder struct {
	client *chatgpt.Client
	model  string
	logger *slog.Logger
}

// NewChatGPTEmbedder constructs an embedder backed by the ChatGPT client.
func NewChatGPTEmbedder(client *chatgpt.Client, model string, logger *slog.Logger) *ChatGPTEmbedder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatGPTEmbedder{
		client: client,
		model:  strings.TrimSpace(model),
		logger: logger.With("component", "faq.embedder.chatgpt"),
	}
}

// Embed requests the embedding of a single text.
func (e *ChatGPTEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbedding(ctx, chatgpt.EmbeddingRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding response contained no vector")
	}
	if len(resp.Data) > 1 {
		e.logger.Warn("embedding result count mismatch", "expected", 1, "got", len(resp.Data))
	}
	return checkVector(resp.Data[0].Embedding)
}

func checkVector(in []float32) ([]float32, error) {
	out := make([]float32, len(in))
	for i, v := range in {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("embedding component %d is not a finite number", i)
		}
		out[i] = v
	}
	return out, nil
}

var _ faq.Embedder = (*ChatGPTEmbedder)(nil)
