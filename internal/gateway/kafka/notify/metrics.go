package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotifyRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_retries_total",
			Help: "Total number of notification publish retry attempts",
		},
		[]string{"topic", "outcome"},
	)

	NotifyPublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notify_publish_duration_seconds",
			Help:    "Duration of notification publishes including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"topic", "outcome"},
	)
)
