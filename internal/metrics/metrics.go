package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cultureland",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cultureland",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	reviewsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cultureland",
			Subsystem: "reviews",
			Name:      "created_total",
			Help:      "Total number of reviews persisted.",
		},
	)

	uploadFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cultureland",
			Subsystem: "reviews",
			Name:      "image_upload_failures_total",
			Help:      "Total number of review image uploads rejected by the blob store.",
		},
	)

	reactionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cultureland",
			Subsystem: "reactions",
			Name:      "events_total",
			Help:      "Reaction ledger outcomes by kind.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		reviewsCreated,
		uploadFailures,
		reactionEvents,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Instrument records request count and latency labelled by chi route pattern.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func RecordReviewCreated() {
	reviewsCreated.Inc()
}

func RecordUploadFailure() {
	uploadFailures.Inc()
}

// RecordReaction counts a ledger outcome such as "created", "deleted" or "duplicate".
func RecordReaction(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	reactionEvents.WithLabelValues(outcome).Inc()
}
