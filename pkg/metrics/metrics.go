package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registry and session metrics.
type Metrics struct {
	Operations     *prometheus.CounterVec
	SearchResults  *prometheus.CounterVec
	EntriesRemoved *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
	SessionsTotal  prometheus.Counter
}

// New creates the metrics and registers them with reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operations_total",
			Help:      "Total number of registry operations",
		}, []string{"entity", "operation"}),
		SearchResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "search_results_total",
			Help:      "Doctor searches by outcome",
		}, []string{"result"}),
		EntriesRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "entries_removed_total",
			Help:      "Entries dropped by remove operations",
		}, []string{"entity"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Current number of live sessions",
		}),
		SessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "created_total",
			Help:      "Total number of sessions created",
		}),
	}
}
