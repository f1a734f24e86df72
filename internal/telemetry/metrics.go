package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service counters exposed on /metrics.
type Metrics struct {
	RecordsCreated *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	CatalogQueries *prometheus.CounterVec
}

// NewMetrics creates and registers the counters on the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use their own
// registry to stay independent.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bioprep",
			Name:      "records_created_total",
			Help:      "Records handed to the repository by the builders.",
		}, []string{"kind"}),

		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bioprep",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),

		CatalogQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bioprep",
			Name:      "catalog_queries_total",
			Help:      "Catalog list queries by collection.",
		}, []string{"collection"}),
	}

	reg.MustRegister(m.RecordsCreated, m.Logins, m.CatalogQueries)
	return m
}
