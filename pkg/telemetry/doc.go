// Package telemetry provides observability for Ganymede.
//
// # Components
//
//   - logging: structured logging backed by log/slog
//   - metrics: Prometheus metrics for gRPC servers
//   - interceptor: gRPC server interceptors that record the metrics
//
// # Usage
//
//	cfg, _ := config.LoadConfig("ganymede.yaml")
//	logger, _ := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
//	registry := prometheus.NewRegistry()
//	factory, err := metrics.NewServerMetricsFactory(&cfg.Monitoring, registry)
//	if err != nil {
//		return err
//	}
//	si := interceptor.NewServerInterceptor(&cfg.Monitoring, factory, logger.Slog())
//
//	server := grpc.NewServer(
//		grpc.ChainUnaryInterceptor(si.Unary()),
//		grpc.ChainStreamInterceptor(si.Stream()),
//	)
//
// Exposing the registry to a scraper, and the registry's lifetime, stay
// with the caller.
package telemetry
