package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RatingsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecorating_ratings_submitted_total",
			Help: "Total number of community ratings accepted",
		},
	)

	InsightsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecorating_insights_generated_total",
			Help: "Insights produced for the retailer dashboard, by type",
		},
		[]string{"type"},
	)

	ExplanationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecorating_llm_explanations_total",
			Help: "AI explanation requests, by result (generated, fallback, disabled)",
		},
		[]string{"result"},
	)

	DashboardCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecorating_dashboard_cache_total",
			Help: "Dashboard snapshot cache lookups, by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecorating_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records request latency labelled by chi route pattern.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
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
		HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
