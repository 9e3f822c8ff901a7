package faq

import (
	"encoding/json"
	"time"
)

// SchemaVersion tags persisted records so later layout changes can be migrated.
const SchemaVersion = 1

// Source identifies where a cached answer originated.
type Source string

const (
	// SourceWeb marks answers generated by the completion provider.
	SourceWeb Source = "web"
	// SourceDB marks answers copied from an external database.
	SourceDB Source = "db"
	// SourceFAQ marks answers seeded directly from the FAQ corpus.
	SourceFAQ Source = "faq"
	// SourceOther is the catch-all tag.
	SourceOther Source = "other"
)

// ParseSource maps free-form tags onto the known set.
func ParseSource(raw string) Source {
	switch Source(raw) {
	case SourceWeb, SourceDB, SourceFAQ:
		return Source(raw)
	default:
		return SourceOther
	}
}

// Request encapsulates a question submitted by a caller.
type Request struct {
	Question string `json:"question"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Question        string          `json:"question"`
	Answer          string          `json:"answer"`
	Source          string          `json:"source"`
	Fingerprint     string          `json:"fingerprint"`
	Cached          bool            `json:"cached"`
	Recommendations []TrendingQuery `json:"recommendations,omitempty"`
	DurationMs      int64           `json:"durationMs,omitempty"`
}

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// FAQRecord is one entry of the searchable corpus.
type FAQRecord struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Embedding []float32 `json:"embedding,omitempty"`
	Version   int       `json:"v"`
}

// SimilarityResult is a transient search hit. Score is the cosine distance.
type SimilarityResult struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// CachedAnswer captures the payload persisted in the result cache.
type CachedAnswer struct {
	Question  string
	Answer    string
	Source    Source
	Score     float64
	CreatedAt time.Time
	Version   int
}

// cachedAnswerDoc is the canonical wire layout: createdAt is epoch seconds.
type cachedAnswerDoc struct {
	Question  string  `json:"question"`
	Answer    string  `json:"answer"`
	Source    string  `json:"source"`
	Score     float64 `json:"score"`
	CreatedAt int64   `json:"createdAt"`
	Version   int     `json:"v"`
}

// MarshalJSON implements json.Marshaler.
func (a CachedAnswer) MarshalJSON() ([]byte, error) {
	version := a.Version
	if version == 0 {
		version = SchemaVersion
	}
	return json.Marshal(cachedAnswerDoc{
		Question:  a.Question,
		Answer:    a.Answer,
		Source:    string(a.Source),
		Score:     a.Score,
		CreatedAt: a.CreatedAt.Unix(),
		Version:   version,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *CachedAnswer) UnmarshalJSON(data []byte) error {
	var doc cachedAnswerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*a = CachedAnswer{
		Question:  doc.Question,
		Answer:    doc.Answer,
		Source:    ParseSource(doc.Source),
		Score:     doc.Score,
		CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
		Version:   doc.Version,
	}
	return nil
}

// IngestItem is one question/answer pair submitted for ingestion.
type IngestItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// IngestStatus tags the outcome of a single ingest item.
type IngestStatus string

const (
	IngestStatusIngested IngestStatus = "ingested"
	IngestStatusFailed   IngestStatus = "failed"
)

// IngestResult reports the outcome of one item, in input order.
type IngestResult struct {
	Index       int          `json:"index"`
	Question    string       `json:"question"`
	Fingerprint string       `json:"fingerprint,omitempty"`
	Status      IngestStatus `json:"status"`
	Error       string       `json:"error,omitempty"`
}

// IngestReport summarises a bulk ingest run.
type IngestReport struct {
	BatchID  string         `json:"batchId"`
	Ingested int            `json:"ingested"`
	Failed   int            `json:"failed"`
	Items    []IngestResult `json:"items"`
}
