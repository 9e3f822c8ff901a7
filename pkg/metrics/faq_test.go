package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestFAQCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFAQ(reg)

	m.CacheLookup(LookupHit)
	m.CacheLookup(LookupMiss)
	m.CacheLookup(LookupMiss)
	m.IngestItem(IngestFailed)
	m.ObserveGeneration(time.Second, errors.New("boom"))

	require.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues(LookupHit)))
	require.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues(LookupMiss)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ingestItems.WithLabelValues(IngestFailed)))
	require.Equal(t, 1, testutil.CollectAndCount(m.generations))
}

func TestNilFAQIsNoop(t *testing.T) {
	var m *FAQ
	require.NotPanics(t, func() {
		m.CacheLookup(LookupHit)
		m.IngestItem(IngestIngested)
		m.ObserveGeneration(time.Millisecond, nil)
	})
}
