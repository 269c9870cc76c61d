package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service
// ⭐ SSOT: 메트릭 등록은 여기서만
type Metrics struct {
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	scansTotal        *prometheus.CounterVec
	tabulationsTotal  prometheus.Counter
	ephemerisFailures *prometheus.CounterVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
}

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jyotish_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jyotish_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		scansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jyotish_electional_scans_total",
			Help: "Total electional scans by activity type.",
		}, []string{"activity"}),
		tabulationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jyotish_benefic_tabulations_total",
			Help: "Total benefic tabulations performed.",
		}),
		ephemerisFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jyotish_ephemeris_failures_total",
			Help: "Failed ephemeris lookups by body (degraded to unknown position).",
		}, []string{"body"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jyotish_cache_hits_total",
			Help: "Total cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jyotish_cache_misses_total",
			Help: "Total cache misses observed.",
		}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.scansTotal,
		m.tabulationsTotal,
		m.ephemerisFailures,
		m.cacheHits,
		m.cacheMisses,
	)

	return m
}

// Handler exposes the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records request count and duration for a route.
// All methods are nil-safe so metrics can be disabled by passing nil.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(duration)
		}
	})
}

// ScanPerformed counts one electional scan
func (m *Metrics) ScanPerformed(activity string) {
	if m == nil {
		return
	}
	m.scansTotal.WithLabelValues(activity).Inc()
}

// TabulationPerformed counts one benefic tabulation
func (m *Metrics) TabulationPerformed() {
	if m == nil {
		return
	}
	m.tabulationsTotal.Inc()
}

// EphemerisFailure counts one degraded body lookup
func (m *Metrics) EphemerisFailure(body string) {
	if m == nil {
		return
	}
	m.ephemerisFailures.WithLabelValues(body).Inc()
}

// CacheHit counts one cache hit
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// CacheMiss counts one cache miss
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
