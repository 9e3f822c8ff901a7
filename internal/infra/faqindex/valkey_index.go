package faqindex

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

// DefaultValkeyIndexName is the search index covering the vector: keyspace.
const DefaultValkeyIndexName = "idx:faq_vector"

// ValkeyIndex stores FAQ records as JSON documents and queries them through
// the search module's HNSW vector field.
type ValkeyIndex struct {
	client valkey.Client
	name   string
	dim    int
}

// NewValkeyIndex constructs the index.
func NewValkeyIndex(client valkey.Client, name string, dim int) *ValkeyIndex {
	if name == "" {
		name = DefaultValkeyIndexName
	}
	return &ValkeyIndex{client: client, name: name, dim: dim}
}

// EnsureSchema creates the search index unless FT.INFO already knows it.
// It reports whether the index was created.
func (r *ValkeyIndex) EnsureSchema(ctx context.Context) (bool, error) {
	err := r.client.Do(ctx, r.client.B().FtInfo().Index(r.name).Build()).Error()
	if err == nil {
		return false, nil
	}
	if !isUnknownIndex(err) {
		return false, fmt.Errorf("inspect search index: %w", err)
	}
	cmd := r.client.B().Arbitrary("FT.CREATE").Args(
		r.name, "ON", "JSON", "PREFIX", "1", faq.RecordKey(""),
		"SCHEMA",
		"$.question", "AS", "question", "TEXT",
		"$.answer", "AS", "answer", "TEXT",
		"$.embedding", "AS", "embedding", "VECTOR", "HNSW", "6",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(r.dim),
		"DISTANCE_METRIC", "COSINE",
	).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return false, fmt.Errorf("create search index: %w", err)
	}
	return true, nil
}

// Search runs a KNN query; the returned score is the cosine distance.
func (r *ValkeyIndex) Search(ctx context.Context, vector []float32, k int) ([]faq.SimilarityResult, error) {
	if err := faq.CheckDimension(r.dim, vector); err != nil {
		return nil, err
	}
	k, err := faq.ClampK(k)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("*=>[KNN %d @embedding $query_vec AS score]", k)
	cmd := r.client.B().FtSearch().Index(r.name).Query(query).
		Return("3").Identifier("question").Identifier("answer").Identifier("score").
		Sortby("score").
		Limit().OffsetNum(0, int64(k)).
		Params().Nargs(2).NameValue().NameValue("query_vec", valkey.VectorString32(vector)).
		Dialect(2).
		Build()
	_, docs, err := r.client.Do(ctx, cmd).AsFtSearch()
	if err != nil {
		return nil, err
	}
	results := make([]faq.SimilarityResult, 0, len(docs))
	for _, doc := range docs {
		score, err := strconv.ParseFloat(doc.Doc["score"], 64)
		if err != nil {
			return nil, fmt.Errorf("parse score for %s: %w", doc.Key, err)
		}
		results = append(results, faq.SimilarityResult{
			Question: doc.Doc["question"],
			Answer:   doc.Doc["answer"],
			Score:    score,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score < results[j].Score })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Upsert writes the record document under vector:<fingerprint>.
func (r *ValkeyIndex) Upsert(ctx context.Context, record faq.FAQRecord) error {
	if err := faq.CheckDimension(r.dim, record.Embedding); err != nil {
		return err
	}
	if record.Version == 0 {
		record.Version = faq.SchemaVersion
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	key := faq.RecordKey(faq.Fingerprint(record.Question))
	return r.client.Do(ctx, r.client.B().JsonSet().Key(key).Path("$").Value(string(payload)).Build()).Error()
}

// List returns up to limit records without embeddings.
func (r *ValkeyIndex) List(ctx context.Context, limit int) ([]faq.FAQRecord, error) {
	cmd := r.client.B().FtSearch().Index(r.name).Query("*").
		Return("2").Identifier("question").Identifier("answer").
		Limit().OffsetNum(0, int64(limit)).
		Build()
	_, docs, err := r.client.Do(ctx, cmd).AsFtSearch()
	if err != nil {
		return nil, err
	}
	records := make([]faq.FAQRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, faq.FAQRecord{Question: doc.Doc["question"], Answer: doc.Doc["answer"]})
	}
	return records, nil
}

// Dimension implements faq.Index.
func (r *ValkeyIndex) Dimension() int {
	return r.dim
}

func isUnknownIndex(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unknown index") || strings.Contains(msg, "no such index") || strings.Contains(msg, "not found")
}

var _ faq.Index = (*ValkeyIndex)(nil)
