package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the user module.
type Metrics struct {
	usersRegistered prometheus.Counter
	usersUpdated    prometheus.Counter
	usersDeleted    prometheus.Counter
	opDuration      *prometheus.HistogramVec
}

// New creates and registers the user module metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		usersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "padron_users_registered_total",
			Help: "Total number of users registered.",
		}),
		usersUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "padron_users_updated_total",
			Help: "Total number of user records replaced.",
		}),
		usersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "padron_users_deleted_total",
			Help: "Total number of user records deleted.",
		}),
		opDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "padron_user_operation_duration_seconds",
			Help:    "Duration of user service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncRegistered() {
	if m == nil {
		return
	}
	m.usersRegistered.Inc()
}

func (m *Metrics) IncUpdated() {
	if m == nil {
		return
	}
	m.usersUpdated.Inc()
}

func (m *Metrics) IncDeleted() {
	if m == nil {
		return
	}
	m.usersDeleted.Inc()
}

// ObserveOpDuration records how long a service operation took, in seconds.
func (m *Metrics) ObserveOpDuration(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(operation).Observe(seconds)
}
