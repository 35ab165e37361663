package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsportal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsportal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Upstream news API
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsportal_upstream_requests_total",
			Help: "Total number of requests made to the upstream news API",
		},
		[]string{"operation", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsportal_upstream_request_duration_seconds",
			Help:    "Upstream news API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Listing views
	ActiveViews = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsportal_views_active",
			Help: "Number of listing views currently held in memory",
		},
	)

	NewsItemsRevealed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsportal_news_items_revealed_total",
			Help: "Total number of news items revealed by reveal-more requests",
		},
	)
)

// StatusRecorder remembers the status code written through it.
type StatusRecorder struct {
	http.ResponseWriter
	status int
}

func NewStatusRecorder(rw http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: rw}
}

func (r *StatusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *StatusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *StatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Written reports whether a status line has been sent.
func (r *StatusRecorder) Written() bool {
	return r.status != 0
}

// Status is the code written so far, 200 if nothing was written.
func (r *StatusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Instrument records request count and duration for next under the given
// route label. route should be the mux pattern, never the raw request path.
func Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := NewStatusRecorder(rw)

		next.ServeHTTP(rec, req)

		HttpRequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(rec.Status())).Inc()
		HttpRequestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveUpstream records the outcome of one upstream call. status is the
// HTTP status, or "error" when no response was received.
func ObserveUpstream(operation, status string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(operation, status).Inc()
	UpstreamRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
