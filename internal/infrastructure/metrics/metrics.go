package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generation
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readmegen_generations_total",
			Help: "README generations by mode and result",
		},
		[]string{"mode", "result"}, // result: success|failure
	)
	GenerationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readmegen_generation_failures_total",
			Help: "Classified generation failures by kind",
		},
		[]string{"kind"},
	)
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readmegen_generation_duration_seconds",
			Help:    "End to end generation duration",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 15), // 10ms..~160s
		},
		[]string{"mode"},
	)
	ExtractionStrategies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readmegen_extraction_strategy_total",
			Help: "Which extraction strategy produced the README",
		},
		[]string{"strategy"},
	)

	// Upstream workflow
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readmegen_upstream_requests_total",
			Help: "Workflow calls by HTTP status (0 for transport errors)",
		},
		[]string{"status"},
	)
	UpstreamDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readmegen_upstream_duration_seconds",
			Help:    "Duration of workflow calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms..128s
		},
	)

	// DB ops
	DBOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readmegen_db_ops_total",
			Help: "Database operations performed",
		},
		[]string{"collection", "op"},
	)

	// HTTP
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	HTTPDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readmegen_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		Generations,
		GenerationFailures,
		GenerationDurationSeconds,
		ExtractionStrategies,

		UpstreamRequests,
		UpstreamDurationSeconds,

		DBOps,
		HTTPRequests,
		HTTPDurationSeconds,
		Errors,
	)
}

// Handler serves /metrics only. It is mounted on its own listener, never on
// the API router.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// StartMetricsServer blocks serving /metrics on addr.
func StartMetricsServer(addr string) error {
	return http.ListenAndServe(addr, Handler())
}

// Generation
func IncGeneration(mode, result string) {
	Generations.WithLabelValues(mode, result).Inc()
}

func IncGenerationFailure(kind string) {
	GenerationFailures.WithLabelValues(kind).Inc()
}

func ObserveGenerationDuration(mode string, d time.Duration) {
	GenerationDurationSeconds.WithLabelValues(mode).Observe(d.Seconds())
}

func IncExtractionStrategy(strategy string) {
	ExtractionStrategies.WithLabelValues(strategy).Inc()
}

// Upstream
func IncUpstreamRequest(status string) {
	UpstreamRequests.WithLabelValues(status).Inc()
}

func ObserveUpstreamDuration(d time.Duration) {
	UpstreamDurationSeconds.Observe(d.Seconds())
}

// DB
func IncDBOp(collection, op string) {
	DBOps.WithLabelValues(collection, op).Inc()
}

// HTTP
func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPDurationSeconds.WithLabelValues(method, path).Observe(d.Seconds())
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
