package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts report fetches and exports.
type Metrics struct {
	fetchTotal   *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	exportTotal  *prometheus.CounterVec
	gatherer     prometheus.Gatherer
}

// NewMetrics registers the collectors on reg, or on a fresh registry when reg
// is nil.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atlas",
			Subsystem: "report",
			Name:      "fetch_total",
			Help:      "Report fetches by kind and outcome",
		}, []string{"kind", "status"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "atlas",
			Subsystem: "report",
			Name:      "fetch_latency_seconds",
			Help:      "Latency of report fetches",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		exportTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atlas",
			Subsystem: "export",
			Name:      "total",
			Help:      "Exported documents by format",
		}, []string{"format"}),
		gatherer: reg,
	}
	reg.MustRegister(m.fetchTotal, m.fetchLatency, m.exportTotal)
	return m
}

func (m *Metrics) ObserveFetch(kind string, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(kind, status).Inc()
	m.fetchLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveExport(format string) {
	if m == nil {
		return
	}
	m.exportTotal.WithLabelValues(format).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
