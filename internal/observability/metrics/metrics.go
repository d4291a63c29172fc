package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the process-wide Prometheus registry and the engine
// instruments. Exposed over /metrics by the HTTP server.
type Metrics struct {
	registry *prometheus.Registry

	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration prometheus.Histogram
	ReportsTotal        *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taxflow",
			Subsystem: "engine",
			Name:      "calculations_total",
			Help:      "Tax calculations by outcome.",
		}, []string{"outcome"}),
		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "taxflow",
			Subsystem: "engine",
			Name:      "calculation_duration_seconds",
			Help:      "End to end duration of a tax calculation.",
			Buckets:   prometheus.DefBuckets,
		}),
		ReportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taxflow",
			Subsystem: "report",
			Name:      "reports_total",
			Help:      "Tax report generations by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(m.CalculationsTotal, m.CalculationDuration, m.ReportsTotal)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
