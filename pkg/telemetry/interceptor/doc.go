// Package interceptor provides gRPC server interceptors that record the
// Ganymede server metrics.
//
// # Usage
//
//	registry := prometheus.NewRegistry()
//	factory, err := metrics.NewServerMetricsFactory(&cfg.Monitoring, registry)
//	if err != nil {
//		return err
//	}
//
//	si := interceptor.NewServerInterceptor(&cfg.Monitoring, factory, logger)
//	server := grpc.NewServer(
//		grpc.UnaryInterceptor(si.Unary()),
//		grpc.StreamInterceptor(si.Stream()),
//	)
//
// Each distinct method gets one cached ServerMetrics handle, built on
// the method's first call. Unary calls record started, handled (with
// the terminal status code) and latency; streaming calls additionally
// count every message sent and received on the stream.
//
// Recording can be toggled at runtime with SetEnabled, which pairs with
// config.FileWatcher for hot enable/disable. The interceptors never fail
// an RPC on behalf of metrics: a method name that cannot be parsed is
// logged once and the call proceeds unrecorded.
package interceptor
