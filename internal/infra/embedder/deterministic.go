package embedder

import (
	"context"
	"hash/fnv"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

// DeterministicEmbedder avoids network calls by hashing text into a vector.
// Texts with the same fingerprint map to the same vector.
type DeterministicEmbedder struct {
	dim int
}

// NewDeterministicEmbedder constructs the embedder.
func NewDeterministicEmbedder(dim int) *DeterministicEmbedder {
	if dim <= 0 {
		dim = 32
	}
	return &DeterministicEmbedder{dim: dim}
}

// Embed converts text into a pseudo-random vector.
func (e *DeterministicEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, e.dim)
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(faq.Fingerprint(text)))
	seed := hash.Sum64()
	for j := 0; j < e.dim; j++ {
		seed = seed*1099511628211 + 1469598103934665603
		vector[j] = float32(seed%997)/997.0 - 0.5
	}
	return vector, nil
}

var _ faq.Embedder = (*DeterministicEmbedder)(nil)
