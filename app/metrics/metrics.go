// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aparecida"

// Metrics groups the application counters.
type Metrics struct {
	Registry *prometheus.Registry

	RegistrationsSubmitted *prometheus.CounterVec
	DizimistasSubmitted    prometheus.Counter
	PDFExports             *prometheus.CounterVec
	BackendErrors          *prometheus.CounterVec
}

// New registers the counters on a fresh registry alongside the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RegistrationsSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_submitted_total",
			Help:      "Sacrament registrations accepted from the public forms.",
		}, []string{"form_type"}),
		DizimistasSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dizimistas_submitted_total",
			Help:      "Tithe donor records accepted from the public form.",
		}),
		PDFExports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_exports_total",
			Help:      "PDF sheets generated, by kind.",
		}, []string{"kind"}),
		BackendErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_errors_total",
			Help:      "Storage and database failures, by operation.",
		}, []string{"operation"}),
	}
}

// Error counts a failed backend operation. Safe on a nil receiver.
func (m *Metrics) Error(operation string) {
	if m == nil {
		return
	}
	m.BackendErrors.WithLabelValues(operation).Inc()
}

// Registration counts an accepted registration. Safe on a nil receiver.
func (m *Metrics) Registration(formType string) {
	if m == nil {
		return
	}
	m.RegistrationsSubmitted.WithLabelValues(formType).Inc()
}

// Dizimista counts an accepted donor record. Safe on a nil receiver.
func (m *Metrics) Dizimista() {
	if m == nil {
		return
	}
	m.DizimistasSubmitted.Inc()
}

// PDF counts a generated sheet. Safe on a nil receiver.
func (m *Metrics) PDF(kind string) {
	if m == nil {
		return
	}
	m.PDFExports.WithLabelValues(kind).Inc()
}
