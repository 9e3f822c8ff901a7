package faqindex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

type recordedCall struct {
	sql  string
	args []any
}

// fakeDB answers every Query with rows and records what was sent.
type fakeDB struct {
	rows    [][]any
	execErr error

	queries []recordedCall
	execs   []recordedCall
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, recordedCall{sql: sql, args: args})
	return pgconn.NewCommandTag("OK"), f.execErr
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, recordedCall{sql: sql, args: args})
	return &fakeRows{values: f.rows, pos: -1}, nil
}

type fakeRows struct {
	values [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.values) {
		r.closed = true
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.values[r.pos], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.values[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *float64:
			*p = row[i].(float64)
		case *int:
			*p = row[i].(int)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func TestPostgresIndexSearch(t *testing.T) {
	db := &fakeDB{rows: [][]any{
		{"Refund policy?", "30 days", 0.05},
		{"Shipping?", "Worldwide", 0.31},
	}}
	idx := NewPostgresIndex(db, mockDim)
	vector := []float32{0.1, 0.2, 0.3, 0.4}

	got, err := idx.Search(context.Background(), vector, 2)
	require.NoError(t, err)
	require.Equal(t, []faq.SimilarityResult{
		{Question: "Refund policy?", Answer: "30 days", Score: 0.05},
		{Question: "Shipping?", Answer: "Worldwide", Score: 0.31},
	}, got)

	require.Len(t, db.queries, 1)
	call := db.queries[0]
	require.Contains(t, call.sql, "embedding <=> $1")
	require.Contains(t, call.sql, "ORDER BY embedding <=> $1")
	require.Contains(t, call.sql, "LIMIT $2")
	require.Equal(t, vector, call.args[0].(pgvector.Vector).Slice())
	require.Equal(t, 2, call.args[1])
}

func TestPostgresIndexSearchCapsK(t *testing.T) {
	db := &fakeDB{}
	idx := NewPostgresIndex(db, mockDim)

	got, err := idx.Search(context.Background(), []float32{1, 0, 0, 0}, 50)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Equal(t, faq.MaxTopK, db.queries[0].args[1])
}

func TestPostgresIndexRejectsBadInput(t *testing.T) {
	db := &fakeDB{}
	idx := NewPostgresIndex(db, mockDim)
	ctx := context.Background()

	_, err := idx.Search(ctx, []float32{1, 0, 0}, 3)
	require.ErrorIs(t, err, faq.ErrDimensionMismatch)

	_, err = idx.Search(ctx, []float32{1, 0, 0, 0}, -1)
	require.ErrorIs(t, err, faq.ErrInvalidK)

	err = idx.Upsert(ctx, faq.FAQRecord{Question: "q", Answer: "a", Embedding: []float32{1, 2}})
	require.ErrorIs(t, err, faq.ErrDimensionMismatch)

	require.Empty(t, db.queries)
	require.Empty(t, db.execs)
}

func TestPostgresIndexUpsertKeysByFingerprint(t *testing.T) {
	db := &fakeDB{}
	idx := NewPostgresIndex(db, mockDim)
	record := faq.FAQRecord{Question: "  Refund POLICY? ", Answer: "30 days", Embedding: []float32{1, 0, 0, 0}}

	require.NoError(t, idx.Upsert(context.Background(), record))

	require.Len(t, db.execs, 1)
	call := db.execs[0]
	require.Contains(t, call.sql, "ON CONFLICT (fingerprint) DO UPDATE")
	require.Equal(t, faq.Fingerprint("refund policy"), call.args[0])
	require.Equal(t, record.Question, call.args[1])
	require.Equal(t, record.Embedding, call.args[3].(pgvector.Vector).Slice())
	require.Equal(t, faq.SchemaVersion, call.args[4])
}

func TestPostgresIndexList(t *testing.T) {
	db := &fakeDB{rows: [][]any{{"Refund policy?", "30 days", 1}}}
	idx := NewPostgresIndex(db, mockDim)

	got, err := idx.List(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, []faq.FAQRecord{{Question: "Refund policy?", Answer: "30 days", Version: 1}}, got)
	require.Equal(t, 7, db.queries[0].args[0])
}

func TestPostgresIndexEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	idx := NewPostgresIndex(db, mockDim)

	require.NoError(t, idx.EnsureSchema(context.Background()))
	require.Len(t, db.execs, 3)
	require.Contains(t, db.execs[0].sql, "CREATE EXTENSION IF NOT EXISTS vector")
	require.Contains(t, db.execs[1].sql, "vector(4)")
	require.Contains(t, db.execs[2].sql, "USING hnsw")

	failing := &fakeDB{execErr: errors.New("permission denied to create extension")}
	err := NewPostgresIndex(failing, mockDim).EnsureSchema(context.Background())
	require.ErrorContains(t, err, "ensure faq schema")
	require.Len(t, failing.execs, 1)
}
