package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CacheCounters(t *testing.T) {
	m := New("availability-test")

	m.ObserveCacheLookup(CacheHit)
	m.ObserveCacheLookup(CacheHit)
	m.ObserveCacheLookup(CacheMiss)
	m.ObserveInvalidation("http")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues(CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues(CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheInvalidationsTotal.WithLabelValues("http")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCacheLookup(CacheHit)
		m.ObserveCacheWriteError("redis")
		m.ObserveInvalidation("kafka")
		m.ObserveSlotsGenerated(3)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New("availability-test")
	m.ObserveCacheLookup(CacheBypass)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "availability_cache_lookups_total")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New("first")
		_ = New("second")
	})
}
