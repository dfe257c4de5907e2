// Package metrics exposes per-queue delivery counters over Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements the consumer pool's observer over a dedicated
// Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	delivered     *prometheus.CounterVec
	acked         *prometheus.CounterVec
	decodeFailed  *prometheus.CounterVec
	handlerFailed *prometheus.CounterVec
}

// New creates the metrics set with its own registry, including the standard
// Go runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projector_deliveries_total",
			Help: "Broker deliveries received, by queue.",
		}, []string{"queue"}),
		acked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projector_acks_total",
			Help: "Deliveries acknowledged after successful projection, by queue.",
		}, []string{"queue"}),
		decodeFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projector_decode_failures_total",
			Help: "Deliveries whose payload failed to decode, by queue.",
		}, []string{"queue"}),
		handlerFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projector_handler_failures_total",
			Help: "Deliveries whose handler returned an error, by queue.",
		}, []string{"queue"}),
	}
	registry.MustRegister(m.delivered, m.acked, m.decodeFailed, m.handlerFailed)
	return m
}

// Delivered counts a broker delivery.
func (m *Metrics) Delivered(queue string) { m.delivered.WithLabelValues(queue).Inc() }

// Acked counts a successful projection.
func (m *Metrics) Acked(queue string) { m.acked.WithLabelValues(queue).Inc() }

// DecodeFailed counts an undecodable payload.
func (m *Metrics) DecodeFailed(queue string) { m.decodeFailed.WithLabelValues(queue).Inc() }

// HandlerFailed counts a failed handler invocation.
func (m *Metrics) HandlerFailed(queue string) { m.handlerFailed.WithLabelValues(queue).Inc() }

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Server builds an HTTP server exposing /metrics on addr.
func (m *Metrics) Server(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
