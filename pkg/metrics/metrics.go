package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Storage metrics
	StorageOperations *prometheus.CounterVec
	DecodeFailures    prometheus.Counter

	// Booking metrics
	AppointmentsSaved prometheus.Counter
	SlotConflicts     prometheus.Counter
	AccessDenied      prometheus.Counter
}

// New creates application metrics without registering them, so multiple
// instances can coexist in one process (tests in particular).
func New(namespace string) *Metrics {
	return &Metrics{
		StorageOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operations_total",
			Help:      "Total number of storage operations",
		}, []string{"operation", "status"}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_decode_failures_total",
			Help:      "Total number of persisted blobs that failed to decode",
		}),
		AppointmentsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_saved_total",
			Help:      "Total number of appointments saved",
		}),
		SlotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_conflicts_total",
			Help:      "Total number of slot availability checks that found the slot taken",
		}),
		AccessDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_denied_total",
			Help:      "Total number of update/delete attempts rejected by the ownership rule",
		}),
	}
}

// Register attaches all metrics to the given registerer.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.StorageOperations,
		m.DecodeFailures,
		m.AppointmentsSaved,
		m.SlotConflicts,
		m.AccessDenied,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
