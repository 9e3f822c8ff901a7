package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

// maxObjectBytes bounds a corpus file read from object storage.
const maxObjectBytes = 32 << 20

// ObjectSource loads FAQ corpus files from S3 compatible storage (R2, MinIO, S3).
type ObjectSource struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewObjectSource constructs the source.
func NewObjectSource(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*ObjectSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "https")
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectSource{client: client, bucket: bucket, logger: logger.With("component", "faq.corpus.object")}, nil
}

// Load reads a JSON array of {question, answer} items stored under key.
func (s *ObjectSource) Load(ctx context.Context, key string) ([]faq.IngestItem, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	info, err := obj.Stat()
	if err != nil {
		return nil, err
	}
	items, err := DecodeItems(obj)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	s.logger.Info("corpus object loaded", "key", key, "size", info.Size, "items", len(items))
	return items, nil
}

// DecodeItems parses a JSON array of ingest items.
func DecodeItems(r io.Reader) ([]faq.IngestItem, error) {
	var items []faq.IngestItem
	dec := json.NewDecoder(io.LimitReader(r, maxObjectBytes))
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

var _ faq.CorpusSource = (*ObjectSource)(nil)
