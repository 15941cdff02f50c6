package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OffersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_offers_total",
			Help: "Total number of offers by final state transition",
		},
		[]string{"state"},
	)

	DispatchResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_resolved_total",
			Help: "Total number of dispatch requests reaching a terminal state",
		},
		[]string{"state"},
	)

	DispatchRounds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_rounds_per_assignment",
			Help:    "Number of offer rounds it took to assign an order",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
	)
)
