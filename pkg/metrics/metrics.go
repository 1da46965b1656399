// Package metrics holds the prometheus collectors shared by the server and
// the CLI. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shotstats"

type Metrics struct {
	sessionsAnalyzed prometheus.Counter
	sessionsSkipped  *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	cacheRequests    *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		sessionsAnalyzed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_analyzed_total",
			Help:      "Sessions whose shots were fetched and analysed.",
		}),
		sessionsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_skipped_total",
			Help:      "Sessions left out of an aggregate, by reason.",
		}, []string{"reason"}),
		analysisDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_analysis_seconds",
			Help:      "Time spent fetching and analysing one session.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		cacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		rpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Unary RPC latency by method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}
}

func (m *Metrics) SessionAnalyzed(d time.Duration) {
	if m == nil {
		return
	}
	m.sessionsAnalyzed.Inc()
	m.analysisDuration.Observe(d.Seconds())
}

func (m *Metrics) SessionSkipped(reason string) {
	if m == nil {
		return
	}
	m.sessionsSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) CacheHit(name string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(name, "hit").Inc()
}

func (m *Metrics) CacheMiss(name string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(name, "miss").Inc()
}

func (m *Metrics) ObserveRPC(method, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(method, code).Observe(d.Seconds())
}

// Handler exposes the gatherer in the prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
