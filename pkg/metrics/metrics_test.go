package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/shotstats/pkg/metrics"
)

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.SessionAnalyzed(time.Millisecond)
		m.SessionSkipped("fetch")
		m.CacheHit("shots")
		m.CacheMiss("shots")
		m.ObserveRPC("/x", "OK", time.Millisecond)
	})
}

func TestMetrics_Exposed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.SessionAnalyzed(3 * time.Millisecond)
	m.SessionAnalyzed(5 * time.Millisecond)
	m.SessionSkipped("fetch")
	m.CacheHit("shots")
	m.CacheMiss("shots")
	m.CacheMiss("shots")

	count, err := testutil.GatherAndCount(reg, "shotstats_sessions_analyzed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "shotstats_sessions_analyzed_total 2")
	assert.Contains(t, body, `shotstats_sessions_skipped_total{reason="fetch"} 1`)
	assert.Contains(t, body, `shotstats_cache_requests_total{cache="shots",result="miss"} 2`)
}
