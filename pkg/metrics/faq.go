package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache lookup outcomes.
const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupError = "error"
)

// Ingest item outcomes.
const (
	IngestIngested = "ingested"
	IngestFailed   = "failed"
)

// FAQ groups the collectors for the answer pipeline. A nil *FAQ is a no-op.
type FAQ struct {
	cacheLookups *prometheus.CounterVec
	generations  *prometheus.HistogramVec
	ingestItems  *prometheus.CounterVec
}

// NewFAQ registers the FAQ collectors on reg.
func NewFAQ(reg prometheus.Registerer) *FAQ {
	m := &FAQ{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faq",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by outcome.",
		}, []string{"result"}),
		generations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "faq",
			Name:      "generation_duration_seconds",
			Help:      "Completion provider latency.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"status"}),
		ingestItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faq",
			Name:      "ingest_items_total",
			Help:      "Bulk ingest items by outcome.",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(m.cacheLookups, m.generations, m.ingestItems)
	}
	return m
}

// CacheLookup counts one result cache lookup.
func (m *FAQ) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveGeneration records one completion call.
func (m *FAQ) ObserveGeneration(d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.generations.WithLabelValues(status).Observe(d.Seconds())
}

// IngestItem counts one ingest item outcome.
func (m *FAQ) IngestItem(status string) {
	if m == nil {
		return
	}
	m.ingestItems.WithLabelValues(status).Inc()
}
