package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkboard_store_operations_total",
		Help: "Link store operations by operation and result.",
	}, []string{"op", "result"})

	StoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linkboard_store_operation_duration_seconds",
		Help:    "Time spent in link store operations.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"op"})

	LinksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "linkboard_links_total",
		Help: "Number of links returned by the most recent list.",
	})
)
