package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations
var (
	// ArticleOperationsTotal counts lifecycle operations by op and status
	ArticleOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_operations_total",
			Help: "Total number of article operations by operation and status",
		},
		[]string{"op", "status"},
	)

	// ArticleOperationDuration measures lifecycle operations including media calls
	ArticleOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_operation_duration_seconds",
			Help:    "Duration of article operations in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op"},
	)

	// ArticlesTotal tracks the number of stored articles, refreshed by unfiltered listings
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the store",
		},
	)

	// MediaSlotsReplacedTotal counts media assets replaced by updates, by slot
	MediaSlotsReplacedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_media_replaced_total",
			Help: "Total number of article media assets replaced",
		},
		[]string{"slot"},
	)

	// AuthAttemptsTotal counts register and login attempts by result
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"action", "result"},
	)
)
