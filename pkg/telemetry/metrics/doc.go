// Package metrics provides Prometheus metrics for monitoring gRPC
// servers.
//
// # Overview
//
// The package implements the per-method metrics accumulator used by the
// Ganymede server interceptors. A ServerMetricsFactory owns the five
// shared collectors, registered once against a caller-supplied registry;
// it manufactures immutable ServerMetrics handles, one per distinct
// (call type, service, method) triple, which apply the correct label
// values on every increment.
//
// # Metrics
//
//	grpc_server_started_total             counter    call_type, service_name, method_name
//	grpc_server_handled_total             counter    call_type, service_name, method_name, code
//	grpc_server_handled_latency_seconds   histogram  call_type, service_name, method_name
//	grpc_server_msg_received_total        counter    call_type, service_name, method_name
//	grpc_server_msg_sent_total            counter    call_type, service_name, method_name
//
// The latency histogram is only registered when
// monitoring.include_latency_histograms is enabled; with it disabled,
// RecordLatency is a no-op.
//
// # Usage
//
//	registry := prometheus.NewRegistry()
//	factory, err := metrics.NewServerMetricsFactory(&cfg.Monitoring, registry)
//	if err != nil {
//		return err
//	}
//
//	mm, err := factory.ForMethod("shop.Cart/AddItem", metrics.Unary)
//	if err != nil {
//		return err
//	}
//
//	mm.RecordCallStarted()
//	// ... handle the call ...
//	mm.RecordCallHandled("OK")
//	mm.RecordLatency(elapsed.Seconds())
//
// ServerMetrics instances are immutable after construction and safe for
// concurrent use from any number of goroutines; the underlying
// collectors provide atomic increments. No ordering is enforced between
// the record operations.
package metrics
