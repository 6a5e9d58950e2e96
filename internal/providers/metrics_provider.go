package providers

import (
	"time"

	"dwd/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncLinesProcessed()
	IncDuplicatesSkipped()
	IncNotificationsSent(vehicle string)
	IncNotificationsFailed(vehicle string)
	IncWatchRestarts()
	SetSubscribers(count int)
	SetTailOffset(offset int64)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	linesProcessed      prometheus.Counter
	duplicatesSkipped   prometheus.Counter
	notificationsSent   *prometheus.CounterVec
	notificationsFailed *prometheus.CounterVec
	watchRestarts       prometheus.Counter
	subscribers         prometheus.Gauge
	tailOffset          prometheus.Gauge
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

func (m *MetricsProvider) IncLinesProcessed() {
	m.linesProcessed.Inc()
}

func (m *MetricsProvider) IncDuplicatesSkipped() {
	m.duplicatesSkipped.Inc()
}

func (m *MetricsProvider) IncNotificationsSent(vehicle string) {
	m.notificationsSent.WithLabelValues(vehicle).Inc()
}

func (m *MetricsProvider) IncNotificationsFailed(vehicle string) {
	m.notificationsFailed.WithLabelValues(vehicle).Inc()
}

func (m *MetricsProvider) IncWatchRestarts() {
	m.watchRestarts.Inc()
}

func (m *MetricsProvider) SetSubscribers(count int) {
	m.subscribers.Set(float64(count))
}

func (m *MetricsProvider) SetTailOffset(offset int64) {
	m.tailOffset.Set(float64(offset))
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

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dwd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dwd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dwd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dwd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		linesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dwd_lines_processed_total",
			Help: "Total number of log lines pulled from the active file",
		}),

		duplicatesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dwd_duplicates_skipped_total",
			Help: "Total number of lines dropped by the dedup cache",
		}),

		notificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dwd_notifications_sent_total",
			Help: "Total number of SMS notifications sent",
		}, []string{"vehicle"}),

		notificationsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dwd_notifications_failed_total",
			Help: "Total number of SMS notifications that failed to send",
		}, []string{"vehicle"}),

		watchRestarts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dwd_watch_restarts_total",
			Help: "Total number of filesystem watch restarts",
		}),

		subscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dwd_subscribers",
			Help: "Current number of subscribed phones",
		}),

		tailOffset: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dwd_tail_offset_bytes",
			Help: "Byte offset into the active log file",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncLinesProcessed()                               {}
func (n *noopMetrics) IncDuplicatesSkipped()                            {}
func (n *noopMetrics) IncNotificationsSent(_ string)                    {}
func (n *noopMetrics) IncNotificationsFailed(_ string)                  {}
func (n *noopMetrics) IncWatchRestarts()                                {}
func (n *noopMetrics) SetSubscribers(_ int)                             {}
func (n *noopMetrics) SetTailOffset(_ int64)                            {}
