package faqstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/pkg/util"
)

type cachedEntry struct {
	payload   faq.CachedAnswer
	expiresAt time.Time
}

// MemoryStore is an in-memory result cache for tests/dev.
type MemoryStore struct {
	mu       sync.RWMutex
	answers  map[string]cachedEntry
	trending map[string]int64
	displays map[string]string
	now      func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(util.NowUTC)
}

// NewMemoryStoreWithClock lets tests control expiry.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		answers:  make(map[string]cachedEntry),
		trending: make(map[string]int64),
		displays: make(map[string]string),
		now:      now,
	}
}

// Get implements faq.Store. Expired entries are evicted on read.
func (s *MemoryStore) Get(_ context.Context, fingerprint string) (faq.CachedAnswer, bool, error) {
	key := faq.ResultKey(fingerprint)
	s.mu.RLock()
	entry, ok := s.answers[key]
	s.mu.RUnlock()
	if !ok {
		return faq.CachedAnswer{}, false, nil
	}
	if !entry.expiresAt.After(s.now()) {
		s.mu.Lock()
		if current, still := s.answers[key]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.answers, key)
		}
		s.mu.Unlock()
		return faq.CachedAnswer{}, false, nil
	}
	return entry.payload, true, nil
}

// Put implements faq.Store; the payload and its expiry are set under one lock.
func (s *MemoryStore) Put(_ context.Context, fingerprint string, answer faq.CachedAnswer, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}
	if err := faq.CheckFingerprint(fingerprint, answer); err != nil {
		return err
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.answers[faq.ResultKey(fingerprint)] = cachedEntry{
		payload:   answer,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// IncrementQuery bumps the counter for a canonical query and records a display string.
func (s *MemoryStore) IncrementQuery(_ context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trending[canonical]++
	if _, exists := s.displays[canonical]; !exists {
		s.displays[canonical] = display
	}
	return nil
}

// TopQueries returns the most frequent canonical questions.
func (s *MemoryStore) TopQueries(_ context.Context, limit int) ([]faq.TrendingQuery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.trending)
	}
	items := make([]faq.TrendingQuery, 0, len(s.trending))
	for canonical, count := range s.trending {
		display := s.displays[canonical]
		if display == "" {
			display = canonical
		}
		items = append(items, faq.TrendingQuery{Query: display, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Query < items[j].Query
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, entry := range s.answers {
		if !entry.expiresAt.After(now) {
			delete(s.answers, key)
		}
	}
}

var _ faq.Store = (*MemoryStore)(nil)
