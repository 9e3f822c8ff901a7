package faq

import "errors"

// Error codes carried by apperrors.AppError values produced in this package.
const (
	CodeInvalidInput      = "invalid_input"
	CodeStoreUnavailable  = "store_unavailable"
	CodeEmbedding         = "embedding_error"
	CodeGeneration        = "generation_error"
	CodeDimensionMismatch = "dimension_mismatch"
	CodeFAQ               = "faq_error"
)

// errNoWords rejects questions that normalize to nothing and would all share
// the fingerprint of the empty string.
const errNoWords = "question must contain letters or digits"

var (
	// ErrDimensionMismatch is returned by indexes for vectors of the wrong length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrInvalidK is returned by indexes for a non-positive result count.
	ErrInvalidK = errors.New("k must be positive")
)
