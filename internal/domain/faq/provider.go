package faq

import "context"

// Embedder maps text to a fixed-length dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer returns generated text for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CorpusSource loads ingest items from external storage.
type CorpusSource interface {
	Load(ctx context.Context, key string) ([]IngestItem, error)
}
