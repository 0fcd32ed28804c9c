package media

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives one observation per gateway call.
// status is "success", "failure" or "rejected" (throttled or circuit open).
type Recorder interface {
	Record(op, status string, d time.Duration)
}

var (
	mediaOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_operations_total",
			Help: "Total number of media store calls by operation and status",
		},
		[]string{"op", "status"},
	)

	mediaOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_operation_duration_seconds",
			Help:    "Duration of media store calls in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op"},
	)
)

// PrometheusRecorder is the production Recorder.
type PrometheusRecorder struct{}

func (PrometheusRecorder) Record(op, status string, d time.Duration) {
	mediaOperationsTotal.WithLabelValues(op, status).Inc()
	mediaOperationDuration.WithLabelValues(op).Observe(d.Seconds())
}
