package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	httpRequestsTotal   *prometheus.CounterVec
	httpLatencySeconds  *prometheus.HistogramVec
	httpErrorsTotal     *prometheus.CounterVec
	parseFailuresTotal  *prometheus.CounterVec
	feedbackFallbacks   prometheus.Counter
	workerInFlight      prometheus.Gauge
	workerWaiting       prometheus.Gauge
	lessonCacheRequests *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the tutor API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutor_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tutor_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 15.0, 30.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutor_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		parseFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutor_model_output_parse_failures_total",
			Help: "Model replies that could not be parsed or validated.",
		}, []string{"kind"})

		feedbackFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tutor_feedback_fallbacks_total",
			Help: "Feedback responses served with placeholder scores.",
		})

		workerInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tutor_worker_in_flight",
			Help: "Model calls currently running.",
		})

		workerWaiting = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tutor_worker_waiting",
			Help: "Model calls queued for a worker slot.",
		})

		lessonCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutor_lesson_cache_requests_total",
			Help: "Lesson catalogue cache lookups by result.",
		}, []string{"result"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			parseFailuresTotal,
			feedbackFallbacks,
			workerInFlight,
			workerWaiting,
			lessonCacheRequests,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ParseFailures counts rejected model replies, labelled "generation" or "evaluation".
func ParseFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return parseFailuresTotal
}

// FeedbackFallbacks counts feedback responses that used placeholder scores.
func FeedbackFallbacks() prometheus.Counter {
	RegisterMetrics()
	return feedbackFallbacks
}

// WorkerInFlight reports running model calls.
func WorkerInFlight() prometheus.Gauge {
	RegisterMetrics()
	return workerInFlight
}

// WorkerWaiting reports queued model calls.
func WorkerWaiting() prometheus.Gauge {
	RegisterMetrics()
	return workerWaiting
}

// LessonCacheRequests counts cache lookups labelled "hit" or "miss".
func LessonCacheRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return lessonCacheRequests
}
