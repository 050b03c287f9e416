package metrics

import (
	"fmt"
	"strings"

	"mercator-hq/ganymede/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names are an external contract shared with dashboards and
// alerts; they must not change.
const (
	metricsNamespace = "grpc"
	metricsSubsystem = "server"
)

// CallType identifies the streaming shape of a gRPC method. The values
// are used verbatim as the call_type label.
type CallType string

const (
	// Unary is a single-request, single-response RPC.
	Unary CallType = "UNARY"
	// ClientStreaming is a client-streaming RPC.
	ClientStreaming CallType = "CLIENT_STREAMING"
	// ServerStreaming is a server-streaming RPC.
	ServerStreaming CallType = "SERVER_STREAMING"
	// BidiStreaming is a bidirectional-streaming RPC.
	BidiStreaming CallType = "BIDI_STREAMING"
)

// ServerMetricsFactory holds the shared gRPC server collectors and
// manufactures per-method ServerMetrics handles.
//
// Metrics:
//   - grpc_server_started_total: RPCs started, by call type/service/method
//   - grpc_server_handled_total: RPCs completed, additionally by status code
//   - grpc_server_handled_latency_seconds: handler latency histogram (optional)
//   - grpc_server_msg_received_total: stream messages received from clients
//   - grpc_server_msg_sent_total: stream messages sent to clients
//
// The collectors are registered once at construction and live for the
// registry's lifetime. The latency histogram is only registered when
// enabled in configuration; recording latency without it is a no-op.
type ServerMetricsFactory struct {
	// RPCs started on the server
	started *prometheus.CounterVec

	// RPCs completed on the server, by terminal status code
	handled *prometheus.CounterVec

	// Stream messages received from clients
	msgReceived *prometheus.CounterVec

	// Stream messages sent by the server
	msgSent *prometheus.CounterVec

	// Handler latency histogram; nil when latency histograms are disabled
	handledLatency *prometheus.HistogramVec
}

// NewServerMetricsFactory creates the shared server collectors and
// registers them with the provided registry. A registration failure
// (typically a duplicate collector already present in the registry) is
// returned to the caller; it is not retried.
func NewServerMetricsFactory(cfg *config.MonitoringConfig, registry *prometheus.Registry) (*ServerMetricsFactory, error) {
	baseLabels := []string{"call_type", "service_name", "method_name"}

	buckets := cfg.LatencyBuckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	f := &ServerMetricsFactory{
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "started_total",
				Help:      "Total number of RPCs started on the server.",
			},
			baseLabels,
		),

		handled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "handled_total",
				Help:      "Total number of RPCs completed on the server, regardless of success or failure.",
			},
			append(append([]string{}, baseLabels...), "code"),
		),

		msgReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "msg_received_total",
				Help:      "Total number of stream messages received from the client.",
			},
			baseLabels,
		),

		msgSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "msg_sent_total",
				Help:      "Total number of stream messages sent by the server.",
			},
			baseLabels,
		),
	}

	if cfg.IncludeLatencyHistograms {
		f.handledLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "handled_latency_seconds",
				Help:      "Histogram of response latency (seconds) of gRPC that had been application-level handled by the server.",
				Buckets:   buckets,
			},
			baseLabels,
		)
	}

	for _, c := range []struct {
		name      string
		collector prometheus.Collector
	}{
		{"grpc_server_started_total", f.started},
		{"grpc_server_handled_total", f.handled},
		{"grpc_server_msg_received_total", f.msgReceived},
		{"grpc_server_msg_sent_total", f.msgSent},
	} {
		if err := registry.Register(c.collector); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", c.name, err)
		}
	}

	if f.handledLatency != nil {
		if err := registry.Register(f.handledLatency); err != nil {
			return nil, fmt.Errorf("failed to register grpc_server_handled_latency_seconds: %w", err)
		}
	}

	return f, nil
}

// ForMethod returns a ServerMetrics bound to the given fully qualified
// method name and call type. The returned handle is immutable and safe
// to share across all concurrent calls to that method; callers are
// expected to build it once per method and reuse it.
//
// fullMethodName has the form "package.Service/Method". A leading slash,
// as produced by grpc-go's FullMethod, is tolerated. A name without a
// service/method separator is rejected.
func (f *ServerMetricsFactory) ForMethod(fullMethodName string, callType CallType) (*ServerMetrics, error) {
	service, method, err := splitFullMethodName(fullMethodName)
	if err != nil {
		return nil, err
	}

	return &ServerMetrics{
		callType: callType,
		service:  service,
		method:   method,
		factory:  f,
	}, nil
}

// splitFullMethodName splits "package.Service/Method" at the final
// slash into its service and method parts, stripping an optional
// leading slash first. The parts always rejoin to the trimmed input.
func splitFullMethodName(fullMethodName string) (service, method string, err error) {
	name := strings.TrimPrefix(fullMethodName, "/")
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return "", "", fmt.Errorf("malformed full method name %q: missing service/method separator", fullMethodName)
	}
	return name[:idx], name[idx+1:], nil
}

// ServerMetrics records call events for a single gRPC method. It holds
// the method's label values and references to (not ownership of) the
// factory's shared collectors; every operation is a constant-time
// increment or observation, safe for concurrent use.
type ServerMetrics struct {
	callType CallType
	service  string
	method   string
	factory  *ServerMetricsFactory
}

// RecordCallStarted increments the started counter for this method.
func (m *ServerMetrics) RecordCallStarted() {
	m.factory.started.WithLabelValues(m.labelValues()...).Inc()
}

// RecordCallHandled increments the handled counter for this method
// with the given terminal status code (e.g. "OK", "NOT_FOUND").
func (m *ServerMetrics) RecordCallHandled(code string) {
	m.factory.handled.WithLabelValues(m.labelValues(code)...).Inc()
}

// RecordStreamMessageSent increments the sent-message counter. Callers
// invoke it once per message crossing the send boundary.
func (m *ServerMetrics) RecordStreamMessageSent() {
	m.factory.msgSent.WithLabelValues(m.labelValues()...).Inc()
}

// RecordStreamMessageReceived increments the received-message counter.
// Callers invoke it once per message crossing the receive boundary.
func (m *ServerMetrics) RecordStreamMessageReceived() {
	m.factory.msgReceived.WithLabelValues(m.labelValues()...).Inc()
}

// RecordLatency records a handler latency observation in seconds. When
// latency histograms are disabled in configuration this does nothing.
// The value is passed through unvalidated.
func (m *ServerMetrics) RecordLatency(seconds float64) {
	if m.factory.handledLatency == nil {
		return
	}
	m.factory.handledLatency.WithLabelValues(m.labelValues()...).Observe(seconds)
}

// labelValues builds the label-value sequence for this method, with any
// extra values appended. The order must match the label-name order
// declared at registration time.
func (m *ServerMetrics) labelValues(extra ...string) []string {
	values := make([]string, 0, 3+len(extra))
	values = append(values, string(m.callType), m.service, m.method)
	return append(values, extra...)
}
