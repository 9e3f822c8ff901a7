package faqindex

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

// MemoryIndex is a brute-force cosine index used for tests/dev.
type MemoryIndex struct {
	mu      sync.RWMutex
	dim     int
	records map[string]faq.FAQRecord
}

// NewMemoryIndex constructs an index for vectors of length dim.
func NewMemoryIndex(dim int) *MemoryIndex {
	return &MemoryIndex{
		dim:     dim,
		records: make(map[string]faq.FAQRecord),
	}
}

// Search implements faq.Index.
func (r *MemoryIndex) Search(_ context.Context, vector []float32, k int) ([]faq.SimilarityResult, error) {
	if err := faq.CheckDimension(r.dim, vector); err != nil {
		return nil, err
	}
	k, err := faq.ClampK(k)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	results := make([]faq.SimilarityResult, 0, len(r.records))
	for _, rec := range r.records {
		results = append(results, faq.SimilarityResult{
			Question: rec.Question,
			Answer:   rec.Answer,
			Score:    cosineDistance(vector, rec.Embedding),
		})
	}
	r.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Question < results[j].Question
		}
		return results[i].Score < results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Upsert implements faq.Index.
func (r *MemoryIndex) Upsert(_ context.Context, record faq.FAQRecord) error {
	if err := faq.CheckDimension(r.dim, record.Embedding); err != nil {
		return err
	}
	record.Embedding = append([]float32(nil), record.Embedding...)
	key := faq.RecordKey(faq.Fingerprint(record.Question))
	r.mu.Lock()
	r.records[key] = record
	r.mu.Unlock()
	return nil
}

// List implements faq.Index, ordered by question text.
func (r *MemoryIndex) List(_ context.Context, limit int) ([]faq.FAQRecord, error) {
	r.mu.RLock()
	out := make([]faq.FAQRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, faq.FAQRecord{Question: rec.Question, Answer: rec.Answer, Version: rec.Version})
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Question < out[j].Question })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Dimension implements faq.Index.
func (r *MemoryIndex) Dimension() int {
	return r.dim
}

// cosineDistance returns 1 - cos(a, b); zero vectors are maximally distant.
func cosineDistance(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < length; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

var _ faq.Index = (*MemoryIndex)(nil)
