package faqindex

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

// Querier is the subset of *pgxpool.Pool the index needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresIndex implements faq.Index using pgvector cosine distance.
// With a pool, each call borrows a connection and returns it before exiting.
type PostgresIndex struct {
	db  Querier
	dim int
}

// NewPostgresIndex constructs the index.
func NewPostgresIndex(db Querier, dim int) *PostgresIndex {
	return &PostgresIndex{db: db, dim: dim}
}

// EnsureSchema creates the records table and its HNSW index when missing.
func (r *PostgresIndex) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS faq_records (
				fingerprint    TEXT PRIMARY KEY,
				question       TEXT NOT NULL,
				answer         TEXT NOT NULL,
				embedding      vector(%d) NOT NULL,
				schema_version INT NOT NULL DEFAULT 1,
				created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, r.dim),
		`CREATE INDEX IF NOT EXISTS faq_records_embedding_idx ON faq_records USING hnsw (embedding vector_cosine_ops)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure faq schema: %w", err)
		}
	}
	return nil
}

// Search returns the k closest records by cosine distance.
func (r *PostgresIndex) Search(ctx context.Context, vector []float32, k int) ([]faq.SimilarityResult, error) {
	if err := faq.CheckDimension(r.dim, vector); err != nil {
		return nil, err
	}
	k, err := faq.ClampK(k)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT question, answer, embedding <=> $1 AS distance
		FROM faq_records
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(vector), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]faq.SimilarityResult, 0, k)
	for rows.Next() {
		var res faq.SimilarityResult
		if err := rows.Scan(&res.Question, &res.Answer, &res.Score); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Upsert inserts or replaces the record keyed by its question fingerprint.
func (r *PostgresIndex) Upsert(ctx context.Context, record faq.FAQRecord) error {
	if err := faq.CheckDimension(r.dim, record.Embedding); err != nil {
		return err
	}
	version := record.Version
	if version == 0 {
		version = faq.SchemaVersion
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO faq_records (fingerprint, question, answer, embedding, schema_version)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (fingerprint) DO UPDATE
		SET question = EXCLUDED.question,
			answer = EXCLUDED.answer,
			embedding = EXCLUDED.embedding,
			schema_version = EXCLUDED.schema_version
	`, faq.Fingerprint(record.Question), record.Question, record.Answer, pgvector.NewVector(record.Embedding), version)
	return err
}

// List returns records in insertion order without embeddings.
func (r *PostgresIndex) List(ctx context.Context, limit int) ([]faq.FAQRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT question, answer, schema_version
		FROM faq_records
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]faq.FAQRecord, 0)
	for rows.Next() {
		var rec faq.FAQRecord
		if err := rows.Scan(&rec.Question, &rec.Answer, &rec.Version); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Dimension implements faq.Index.
func (r *PostgresIndex) Dimension() int {
	return r.dim
}

var _ faq.Index = (*PostgresIndex)(nil)
