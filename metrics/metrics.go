// Package metrics provides the observability sink for QNetX components.
//
// Components receive a Recorder at construction; there is no package-level
// registry or default instance.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event names recorded by the routing and mesh components.
const (
	EventRelayAttempt     = "relay_attempt"
	EventRelaySuccess     = "relay_success"
	EventHop              = "hop"
	EventTeleportAttempt  = "teleport_attempt"
	EventTeleportSuccess  = "teleport_success"
	EventTeleportFailure  = "teleport_failure"
	EventChannelCreated   = "channel_created"
	EventEntanglement     = "entanglement"
	EventZeroPropagation  = "zero_propagation"
	EventCondenseAll      = "condense_all"
	EventCondenseByPrefix = "condense_by_prefix"
	EventAnomalyDetected  = "anomaly_detected"
)

// Recorder is a fire-and-forget event sink.
type Recorder interface {
	// Inc increments the counter for event.
	Inc(event string)
	// ObservePathLength records the hop count of a selected route.
	ObservePathLength(hops int)
	// SetChannels records the current channel registry size.
	SetChannels(n int)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Inc(string)            {}
func (Nop) ObservePathLength(int) {}
func (Nop) SetChannels(int)       {}

// Metrics holds all Prometheus metrics for a node.
type Metrics struct {
	// Core events keyed by event name
	Events *prometheus.CounterVec

	// Routing metrics
	PathLength prometheus.Histogram

	// Mesh metrics
	Channels prometheus.Gauge

	// Handshake server
	HandshakeLatency prometheus.Histogram
	WorkerPoolActive prometheus.Gauge

	// gRPC metrics
	GRPCRequestsTotal   *prometheus.CounterVec
	GRPCRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates metrics under namespace and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of routing and mesh events by name",
		}, []string{"event"}),

		PathLength: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_path_length",
			Help:      "Number of hops of selected routes",
			Buckets:   []float64{0, 1, 2, 3, 4, 6, 8, 12, 16},
		}),

		Channels: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mesh_channels",
			Help:      "Current number of registered channels",
		}),

		HandshakeLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handshake_latency_seconds",
			Help:      "Inbound handshake processing latency in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		WorkerPoolActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "handshake_workers_active",
			Help:      "Number of handshake workers currently busy",
		}),

		GRPCRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Total gRPC requests by method and status",
		}, []string{"method", "status"}),
		GRPCRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "gRPC request duration by method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Inc increments the event counter.
func (m *Metrics) Inc(event string) {
	m.Events.WithLabelValues(event).Inc()
}

// ObservePathLength records a route's hop count.
func (m *Metrics) ObservePathLength(hops int) {
	m.PathLength.Observe(float64(hops))
}

// SetChannels updates the channel gauge.
func (m *Metrics) SetChannels(n int) {
	m.Channels.Set(float64(n))
}

// RecordHandshake records an inbound handshake.
func (m *Metrics) RecordHandshake(duration time.Duration) {
	m.HandshakeLatency.Observe(duration.Seconds())
}

// UpdateWorkerPool updates the handshake worker gauge.
func (m *Metrics) UpdateWorkerPool(active int64) {
	m.WorkerPoolActive.Set(float64(active))
}

// RecordGRPCRequest records a gRPC request.
func (m *Metrics) RecordGRPCRequest(method, status string, duration time.Duration) {
	m.GRPCRequestsTotal.WithLabelValues(method, status).Inc()
	m.GRPCRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

var (
	_ Recorder = Nop{}
	_ Recorder = (*Metrics)(nil)
)
