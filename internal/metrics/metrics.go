// Package metrics holds the process-wide Prometheus collectors. Services call
// the Record* helpers; the router exposes Handler on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agency"

const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

var Registry = prometheus.NewRegistry()

var (
	submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Form submissions by kind and outcome.",
	}, []string{"kind", "outcome"})

	uploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Blob uploads by bucket and outcome.",
	}, []string{"bucket", "outcome"})

	assignments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_total",
		Help:      "Assignment attempts by outcome.",
	}, []string{"outcome"})

	reviewBacklog = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "review_backlog",
		Help:      "Items awaiting admin attention, refreshed by the reconciler.",
	}, []string{"queue"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		submissions, uploads, assignments, reviewBacklog,
		httpRequests, httpLatency,
	)
}

// RecordSubmission counts a form submission attempt.
func RecordSubmission(kind, outcome string) {
	submissions.WithLabelValues(kind, outcome).Inc()
}

// RecordUpload counts a blob upload attempt.
func RecordUpload(bucket string, err error) {
	uploads.WithLabelValues(bucket, outcomeOf(err)).Inc()
}

// RecordAssignment counts an assignment attempt.
func RecordAssignment(outcome string) {
	assignments.WithLabelValues(outcome).Inc()
}

// SetBacklog publishes the size of a review queue.
func SetBacklog(queue string, n int) {
	reviewBacklog.WithLabelValues(queue).Set(float64(n))
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
