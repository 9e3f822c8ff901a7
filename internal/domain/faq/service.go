package faq

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/smart-faq/pkg/errors"
	"github.com/yanqian/smart-faq/pkg/metrics"
	"github.com/yanqian/smart-faq/pkg/util"
)

// Service exposes smart FAQ capabilities.
type Service interface {
	Answer(ctx context.Context, req Request) (Response, error)
	Ingest(ctx context.Context, items []IngestItem) (IngestReport, error)
	IngestFromObject(ctx context.Context, key string) (IngestReport, error)
	Records(ctx context.Context, limit int) ([]FAQRecord, error)
	Trending(ctx context.Context) ([]TrendingQuery, error)
}

type service struct {
	cfg       Config
	index     Index
	store     Store
	embedder  Embedder
	completer Completer
	assembler *Assembler
	corpus    CorpusSource
	metrics   *metrics.FAQ
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the FAQ domain. corpus and recorder may be nil.
func NewService(cfg Config, index Index, store Store, embedder Embedder, completer Completer, assembler *Assembler, corpus CorpusSource, recorder *metrics.FAQ, logger *slog.Logger) Service {
	if assembler == nil {
		assembler = NewAssembler(cfg.MaxContextTokens, nil)
	}
	return &service{
		cfg:       cfg,
		index:     index,
		store:     store,
		embedder:  embedder,
		completer: completer,
		assembler: assembler,
		corpus:    corpus,
		metrics:   recorder,
		logger:    logger.With("component", "faq.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Answer(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, apperrors.Wrap(CodeInvalidInput, "question is required", nil)
	}
	if normalizeQuestion(question) == "" {
		return Response{}, apperrors.Wrap(CodeInvalidInput, errNoWords, nil)
	}
	start := s.now()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	fingerprint := Fingerprint(question)
	cached, hit, err := s.store.Get(ctx, fingerprint)
	switch {
	case err != nil:
		s.metrics.CacheLookup(metrics.LookupError)
		if s.cfg.CacheFailurePolicy == CacheFailureFail {
			return Response{}, apperrors.Wrap(CodeStoreUnavailable, "cache lookup failed", err)
		}
		s.logger.Warn("faq cache lookup failed, treating as miss", "fingerprint", fingerprint, "error", err)
	case hit:
		s.metrics.CacheLookup(metrics.LookupHit)
		s.logger.Debug("faq cache hit", "fingerprint", fingerprint)
		resp := Response{
			Question:    question,
			Answer:      cached.Answer,
			Source:      "cache",
			Fingerprint: fingerprint,
			Cached:      true,
		}
		return s.finish(ctx, resp, start), nil
	default:
		s.metrics.CacheLookup(metrics.LookupMiss)
	}

	answer, err := s.generate(ctx, question)
	if err != nil {
		return Response{}, err
	}

	record := CachedAnswer{
		Question:  question,
		Answer:    answer,
		Source:    SourceWeb,
		Score:     1,
		CreatedAt: s.now(),
		Version:   SchemaVersion,
	}
	if err := s.store.Put(ctx, fingerprint, record, s.cacheTTL()); err != nil {
		s.logger.Warn("faq cache save failed", "fingerprint", fingerprint, "error", err)
	}

	resp := Response{
		Question:    question,
		Answer:      answer,
		Source:      "llm",
		Fingerprint: fingerprint,
	}
	return s.finish(ctx, resp, start), nil
}

// finish records trending data; failures there never change the answer.
func (s *service) finish(ctx context.Context, resp Response, start time.Time) Response {
	if err := s.store.IncrementQuery(ctx, normalizeQuestion(resp.Question), resp.Question); err != nil {
		s.logger.Warn("faq trending increment failed", "error", err)
	}
	if s.cfg.TopRecommendations > 0 {
		recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
		if err != nil {
			s.logger.Warn("faq trending fetch failed", "error", err)
		}
		resp.Recommendations = recs
	}
	resp.DurationMs = s.now().Sub(start).Milliseconds()
	return resp
}

func (s *service) generate(ctx context.Context, question string) (string, error) {
	vector, err := s.embed(ctx, question)
	if err != nil {
		return "", err
	}
	results, err := s.index.Search(ctx, vector, s.topK())
	if err != nil {
		if errors.Is(err, ErrDimensionMismatch) {
			return "", apperrors.Wrap(CodeDimensionMismatch, "embedding dimension does not match index", err)
		}
		return "", apperrors.Wrap(CodeStoreUnavailable, "similarity search failed", err)
	}
	if len(results) == 0 {
		s.logger.Info("faq no similar records, answering without context")
	}

	prompt := s.renderPrompt(s.assembler.Assemble(results), question)
	start := s.now()
	answer, err := s.completer.Complete(ctx, prompt)
	s.metrics.ObserveGeneration(s.now().Sub(start), err)
	if err != nil {
		return "", apperrors.Wrap(CodeGeneration, "completion failed", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", apperrors.Wrap(CodeGeneration, "completion returned empty answer", nil)
	}
	return answer, nil
}

func (s *service) embed(ctx context.Context, text string) ([]float32, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, apperrors.Wrap(CodeEmbedding, "embedding failed", err)
	}
	if len(vector) == 0 {
		return nil, apperrors.Wrap(CodeEmbedding, "embedding response empty", nil)
	}
	return vector, nil
}

func (s *service) renderPrompt(contextBlock, question string) string {
	return RenderPrompt(s.cfg.Prompt, contextBlock, question)
}

// RenderPrompt substitutes {context} and {question} in a single pass. An
// empty template falls back to DefaultPrompt.
func RenderPrompt(template, contextBlock, question string) string {
	template = strings.TrimSpace(template)
	if template == "" {
		template = DefaultPrompt
	}
	return strings.NewReplacer("{context}", contextBlock, "{question}", question).Replace(template)
}

func (s *service) Records(ctx context.Context, limit int) ([]FAQRecord, error) {
	if limit <= 0 {
		limit = defaultRecordsLimit
	}
	if limit > maxRecordsLimit {
		limit = maxRecordsLimit
	}
	records, err := s.index.List(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap(CodeStoreUnavailable, "failed to list faq records", err)
	}
	return records, nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		return nil, apperrors.Wrap(CodeFAQ, "failed to load trending queries", err)
	}
	return recs, nil
}

func (s *service) topK() int {
	if s.cfg.TopK <= 0 {
		return defaultTopK
	}
	if s.cfg.TopK > MaxTopK {
		return MaxTopK
	}
	return s.cfg.TopK
}

func (s *service) cacheTTL() time.Duration {
	if s.cfg.CacheTTL <= 0 {
		return defaultCacheTTL
	}
	return s.cfg.CacheTTL
}
