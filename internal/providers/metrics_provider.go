package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"nest/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetValidationAccuracy(modelType string, accuracy float64)
	IncTrainingRuns(modelType, result string)
}

// BufferStatsInterface exposes the size of the dashboard metrics buffer.
type BufferStatsInterface interface {
	TotalEntries() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	validationAccuracy  *prometheus.GaugeVec
	trainingRuns        *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetValidationAccuracy(modelType string, accuracy float64) {
	m.validationAccuracy.WithLabelValues(modelType).Set(accuracy)
}

func (m *MetricsProvider) IncTrainingRuns(modelType, result string) {
	m.trainingRuns.WithLabelValues(modelType, result).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, buffer BufferStatsInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nest_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nest_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nest_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nest_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nest_persistence_duration_seconds",
			Help:    "Duration of metrics buffer snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		validationAccuracy: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nest_training_validation_accuracy",
			Help: "Validation accuracy of the latest training epoch",
		}, []string{"model_type"}),

		trainingRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nest_training_runs_total",
			Help: "Finished background training runs by result",
		}, []string{"model_type", "result"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "nest_metrics_buffer_entries",
		Help: "Entries currently held in the dashboard metrics buffer",
	}, func() float64 {
		return float64(buffer.TotalEntries())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetValidationAccuracy(_ string, _ float64)        {}
func (n *noopMetrics) IncTrainingRuns(_, _ string)                      {}
