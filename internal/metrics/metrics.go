// Package metrics exposes Prometheus collectors for the server.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "moneymate"

// Breaker states as reported by the breaker state gauge.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

type Metrics struct {
	registry *prometheus.Registry

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	extractions *prometheus.CounterVec
	breaker     prometheus.Gauge
}

// New registers all collectors, plus the Go and process collectors,
// on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_extractions_total",
			Help:      "Receipt analyses by backend and result.",
		}, []string{"backend", "result"}),
		breaker: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "extraction_breaker_state",
			Help:      "Extraction circuit breaker state: 0 closed, 1 half-open, 2 open.",
		}),
	}
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(seconds)
}

// ObserveExtraction records one receipt analysis.
func (m *Metrics) ObserveExtraction(backend, result string) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(backend, result).Inc()
}

// SetBreakerState records a breaker transition. Unknown names count as open.
func (m *Metrics) SetBreakerState(state string) {
	if m == nil {
		return
	}
	switch state {
	case "closed":
		m.breaker.Set(BreakerClosed)
	case "half-open":
		m.breaker.Set(BreakerHalfOpen)
	default:
		m.breaker.Set(BreakerOpen)
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
