package faq

import "time"

// CacheFailurePolicy decides what a result cache read failure does to a request.
type CacheFailurePolicy string

const (
	// CacheFailureDegrade treats an unreachable cache as a miss and regenerates.
	CacheFailureDegrade CacheFailurePolicy = "degrade"
	// CacheFailureFail aborts the request with store_unavailable.
	CacheFailureFail CacheFailurePolicy = "fail"
)

// Config holds runtime knobs for the FAQ service.
type Config struct {
	Prompt             string
	CacheTTL           time.Duration
	TopK               int
	MaxContextTokens   int
	RequestTimeout     time.Duration
	CacheFailurePolicy CacheFailurePolicy
	TopRecommendations int
	IngestConcurrency  int
}

// DefaultPrompt is used when no prompt template is configured. {context} and
// {question} are substituted in a single pass.
const DefaultPrompt = `You are a friendly and helpful FAQ assistant. Answer the user's question using the context below.
Feel free to paraphrase and make the answer conversational, but do not include information not in the context.
===================
Context: {context}
===================

User: {question}

Assistant:`

const (
	defaultTopK              = 3
	defaultCacheTTL          = 15 * time.Minute
	defaultIngestConcurrency = 4
	defaultRecordsLimit      = 10
	maxRecordsLimit          = 100
)
