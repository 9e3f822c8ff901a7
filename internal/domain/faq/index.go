package faq

import (
	"context"
	"fmt"
)

// MaxTopK caps the number of neighbours a search may return.
const MaxTopK = 10

// Index is a similarity-searchable store of FAQ records.
type Index interface {
	// Search returns up to k records ordered by increasing cosine distance.
	Search(ctx context.Context, vector []float32, k int) ([]SimilarityResult, error)
	Upsert(ctx context.Context, record FAQRecord) error
	List(ctx context.Context, limit int) ([]FAQRecord, error)
	Dimension() int
}

// ClampK validates k and bounds it by MaxTopK.
func ClampK(k int) (int, error) {
	if k <= 0 {
		return 0, ErrInvalidK
	}
	if k > MaxTopK {
		return MaxTopK, nil
	}
	return k, nil
}

// CheckDimension fails fast on vectors that do not match the index.
func CheckDimension(want int, vector []float32) error {
	if want > 0 && len(vector) != want {
		return fmt.Errorf("%w: expected %d got %d", ErrDimensionMismatch, want, len(vector))
	}
	return nil
}
