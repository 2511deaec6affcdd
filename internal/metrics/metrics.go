package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// OperationsTotal counts state container operations by outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenance_operations_total",
			Help: "Total number of maintenance operations",
		},
		[]string{"operation", "outcome"},
	)

	// OperationDuration includes the simulated latency.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maintenance_operation_duration_seconds",
			Help:    "Maintenance operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
		[]string{"operation"},
	)

	// CollectionSize tracks how many entities each in-memory collection holds.
	CollectionSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "maintenance_collection_size",
			Help: "Number of entities held per maintenance collection",
		},
		[]string{"collection"},
	)

	// NotificationsTotal counts toasts delivered per variant and transport.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenance_notifications_total",
			Help: "Total number of maintenance toasts sent",
		},
		[]string{"transport", "variant"},
	)
)

// RecordOperation counts one operation and observes its duration.
func RecordOperation(operation string, err error, duration time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
	OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetCollectionSize records the current size of a collection.
func SetCollectionSize(collection string, n int) {
	CollectionSize.WithLabelValues(collection).Set(float64(n))
}

// RecordNotification counts a delivered toast.
func RecordNotification(transport, variant string) {
	NotificationsTotal.WithLabelValues(transport, variant).Inc()
}
