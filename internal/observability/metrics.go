package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics mengumpulkan metrik Prometheus untuk konsol dan panggilan ke API SWMS.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	apiTotal        *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
}

// NewMetrics menginisialisasi registry dan metrik dasar.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swms_http_requests_total",
		Help: "HTTP requests served by the console, by route and status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swms_http_request_duration_seconds",
		Help:    "Console request latency per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	apiTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swms_api_requests_total",
		Help: "Calls made to the SWMS REST API, by method, endpoint and status. Code 0 means transport failure.",
	}, []string{"method", "endpoint", "code"})
	apiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swms_api_request_duration_seconds",
		Help:    "SWMS REST API latency per endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	registry.MustRegister(requests, duration, apiTotal, apiDuration)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		apiTotal:        apiTotal,
		apiDuration:     apiDuration,
	}
}

// Handler mengembalikan http.Handler untuk endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware mencatat metrik untuk setiap permintaan HTTP.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveAPI mencatat satu panggilan ke backend.
func (m *Metrics) ObserveAPI(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.apiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
