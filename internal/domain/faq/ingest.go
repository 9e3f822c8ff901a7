package faq

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/yanqian/smart-faq/pkg/errors"
	"github.com/yanqian/smart-faq/pkg/metrics"
)

// Ingest embeds and stores every item independently. A failing item is
// reported in place and never aborts its siblings; results keep input order.
func (s *service) Ingest(ctx context.Context, items []IngestItem) (IngestReport, error) {
	report := IngestReport{
		BatchID: uuid.NewString(),
		Items:   make([]IngestResult, len(items)),
	}
	limit := s.cfg.IngestConcurrency
	if limit <= 0 {
		limit = defaultIngestConcurrency
	}

	var group errgroup.Group
	group.SetLimit(limit)
	for i, item := range items {
		group.Go(func() error {
			report.Items[i] = s.ingestOne(ctx, i, item)
			return nil
		})
	}
	_ = group.Wait()

	for _, res := range report.Items {
		if res.Status == IngestStatusIngested {
			report.Ingested++
		} else {
			report.Failed++
		}
	}
	s.logger.Info("faq ingest complete", "batch_id", report.BatchID, "ingested", report.Ingested, "failed", report.Failed)
	return report, nil
}

func (s *service) ingestOne(ctx context.Context, index int, item IngestItem) IngestResult {
	question := strings.TrimSpace(item.Question)
	answer := strings.TrimSpace(item.Answer)
	result := IngestResult{Index: index, Question: question, Status: IngestStatusFailed}
	if question == "" || answer == "" {
		result.Error = "question and answer are required"
		s.metrics.IngestItem(metrics.IngestFailed)
		return result
	}
	if normalizeQuestion(question) == "" {
		result.Error = errNoWords
		s.metrics.IngestItem(metrics.IngestFailed)
		return result
	}
	result.Fingerprint = Fingerprint(question)

	vector, err := s.embed(ctx, question)
	if err == nil {
		err = CheckDimension(s.index.Dimension(), vector)
	}
	if err == nil {
		err = s.index.Upsert(ctx, FAQRecord{
			Question:  question,
			Answer:    answer,
			Embedding: vector,
			Version:   SchemaVersion,
		})
	}
	if err != nil {
		s.logger.Warn("faq ingest item failed", "index", index, "fingerprint", result.Fingerprint, "error", err)
		result.Error = err.Error()
		s.metrics.IngestItem(metrics.IngestFailed)
		return result
	}
	result.Status = IngestStatusIngested
	s.metrics.IngestItem(metrics.IngestIngested)
	return result
}

// IngestFromObject loads a JSON array of items from object storage and ingests it.
func (s *service) IngestFromObject(ctx context.Context, key string) (IngestReport, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return IngestReport{}, apperrors.Wrap(CodeInvalidInput, "object key is required", nil)
	}
	if s.corpus == nil {
		return IngestReport{}, apperrors.Wrap(CodeStoreUnavailable, "object storage is not configured", nil)
	}
	items, err := s.corpus.Load(ctx, key)
	if err != nil {
		return IngestReport{}, apperrors.Wrap(CodeStoreUnavailable, "failed to load corpus object", err)
	}
	return s.Ingest(ctx, items)
}
