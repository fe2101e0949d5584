// Package metrics defines the Prometheus metrics of the cafe directory.
//
// Metric naming follows Prometheus conventions:
//   - cafe_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric below plus the Go runtime and process collectors.
var Registry = prometheus.NewRegistry()

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDurationSeconds is a histogram of request latency by route.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cafe_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthEventsTotal counts signups, logins and logouts by outcome.
	AuthEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_auth_events_total",
			Help: "Total authentication events by action and result.",
		},
		[]string{"action", "result"},
	)

	// CafeWritesTotal counts cafe inserts and updates.
	CafeWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_cafe_writes_total",
			Help: "Total cafe writes by operation.",
		},
		[]string{"op"},
	)

	// SchedulerJobRunsTotal counts scheduled job executions by job and result.
	SchedulerJobRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_scheduler_job_runs_total",
			Help: "Total scheduled job runs by job and result.",
		},
		[]string{"job", "result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		AuthEventsTotal,
		CafeWritesTotal,
		SchedulerJobRunsTotal,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordRequest records one completed HTTP request.
func RecordRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuth records an authentication attempt, e.g. ("login", "failure").
func RecordAuth(action, result string) {
	AuthEventsTotal.WithLabelValues(action, result).Inc()
}

// RecordCafeWrite records a cafe "create" or "update".
func RecordCafeWrite(op string) {
	CafeWritesTotal.WithLabelValues(op).Inc()
}

// RecordJobRun records a scheduler job execution.
func RecordJobRun(job string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SchedulerJobRunsTotal.WithLabelValues(job, result).Inc()
}
