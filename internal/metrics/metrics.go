package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	TaskOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_task_operations_total",
			Help: "Total number of task operations by operation and outcome",
		},
		[]string{"op", "status"},
	)

	TaskOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskboard_task_operation_duration_seconds",
			Help:    "Duration of task operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	PrioritySuggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_priority_suggestions_total",
			Help: "Priority suggestions by backend and result",
		},
		[]string{"backend", "result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)
)

// ObserveTaskOperation records the outcome and duration of one task operation.
func ObserveTaskOperation(op string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	TaskOperations.WithLabelValues(op, status).Inc()
	TaskOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
