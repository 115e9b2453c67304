// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestTotal       *prometheus.CounterVec
	RateLimitExceededTotal *prometheus.CounterVec

	JobRunsTotal    *prometheus.CounterVec
	JobDuration     *prometheus.HistogramVec
	DueCreditOrders prometheus.Gauge

	OutboxPublishedTotal prometheus.Counter
	OutboxFailuresTotal  prometheus.Counter

	SystemCPUUsage         prometheus.Gauge
	SystemMemoryUsage      prometheus.Gauge
	ApplicationMemoryUsage prometheus.Gauge
}

// New registers every collector with reg. Use prometheus.NewRegistry() in
// tests to avoid clashing with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		HTTPRequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RateLimitExceededTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limit_exceeded_total",
			Help: "Total number of requests rejected due to rate limiting",
		}, []string{"method", "route"}),

		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "job_runs_total",
			Help: "Scheduled job executions by outcome",
		}, []string{"job", "result"}),
		JobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Scheduled job execution time",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		DueCreditOrders: factory.NewGauge(prometheus.GaugeOpts{
			Name: "due_credit_orders",
			Help: "Unpaid credit orders due on or before today, as of the last scan",
		}),

		OutboxPublishedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "outbox_published_total",
			Help: "Outbox messages delivered to the broker",
		}),
		OutboxFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "outbox_failures_total",
			Help: "Outbox relay runs that stopped on a publish error",
		}),

		SystemCPUUsage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "CPU usage percentage",
		}),
		SystemMemoryUsage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_memory_usage_bytes",
			Help: "System memory usage in bytes",
		}),
		ApplicationMemoryUsage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "application_memory_usage_bytes",
			Help: "Application memory usage in bytes (Go heap allocation)",
		}),
	}
}

// ObserveJob records one job run.
func (m *Metrics) ObserveJob(job string, seconds float64, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.JobRunsTotal.WithLabelValues(job, result).Inc()
	m.JobDuration.WithLabelValues(job).Observe(seconds)
}
