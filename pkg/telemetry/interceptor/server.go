package interceptor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"mercator-hq/ganymede/pkg/config"
	"mercator-hq/ganymede/pkg/telemetry/metrics"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServerInterceptor produces gRPC server interceptors that record the
// Ganymede server metrics for every call passing through them.
//
// Per-method ServerMetrics handles are built lazily on a method's first
// call and cached for the interceptor's lifetime. Recording can be
// toggled at runtime with SetEnabled (for example from a config file
// watcher); toggling never registers or unregisters collectors.
type ServerInterceptor struct {
	factory *metrics.ServerMetricsFactory
	logger  *slog.Logger
	enabled atomic.Bool

	// methods caches one handle per full method name. A nil entry marks
	// a method whose name could not be parsed, so it is only logged once.
	mu      sync.RWMutex
	methods map[string]*metrics.ServerMetrics
}

// NewServerInterceptor creates a ServerInterceptor backed by the given
// factory. The initial enabled state comes from the configuration.
func NewServerInterceptor(cfg *config.MonitoringConfig, factory *metrics.ServerMetricsFactory, logger *slog.Logger) *ServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	si := &ServerInterceptor{
		factory: factory,
		logger:  logger,
		methods: make(map[string]*metrics.ServerMetrics),
	}
	si.enabled.Store(cfg.Enabled)
	return si
}

// SetEnabled toggles metric recording at runtime.
func (si *ServerInterceptor) SetEnabled(enabled bool) {
	si.enabled.Store(enabled)
}

// Enabled reports whether metric recording is currently active.
func (si *ServerInterceptor) Enabled() bool {
	return si.enabled.Load()
}

// Unary returns a grpc.UnaryServerInterceptor recording started,
// handled and latency metrics around each unary call.
func (si *ServerInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if !si.enabled.Load() {
			return handler(ctx, req)
		}

		mm := si.methodMetrics(info.FullMethod, metrics.Unary)
		if mm == nil {
			return handler(ctx, req)
		}

		mm.RecordCallStarted()
		start := time.Now()

		resp, err := handler(ctx, req)

		mm.RecordCallHandled(statusCodeLabel(status.Code(err)))
		mm.RecordLatency(time.Since(start).Seconds())

		return resp, err
	}
}

// Stream returns a grpc.StreamServerInterceptor recording started,
// handled, latency and per-message metrics around each streaming call.
func (si *ServerInterceptor) Stream() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if !si.enabled.Load() {
			return handler(srv, ss)
		}

		mm := si.methodMetrics(info.FullMethod, streamCallType(info))
		if mm == nil {
			return handler(srv, ss)
		}

		mm.RecordCallStarted()
		start := time.Now()

		err := handler(srv, &monitoredServerStream{ServerStream: ss, metrics: mm})

		mm.RecordCallHandled(statusCodeLabel(status.Code(err)))
		mm.RecordLatency(time.Since(start).Seconds())

		return err
	}
}

// methodMetrics returns the cached handle for fullMethod, building it on
// first use. It returns nil for names the factory rejects; the RPC then
// proceeds unrecorded, since metrics must never fail a call.
func (si *ServerInterceptor) methodMetrics(fullMethod string, callType metrics.CallType) *metrics.ServerMetrics {
	si.mu.RLock()
	mm, ok := si.methods[fullMethod]
	si.mu.RUnlock()
	if ok {
		return mm
	}

	si.mu.Lock()
	defer si.mu.Unlock()

	// Double-check after acquiring write lock
	if mm, ok := si.methods[fullMethod]; ok {
		return mm
	}

	mm, err := si.factory.ForMethod(fullMethod, callType)
	if err != nil {
		si.logger.Warn("Skipping metrics for unparseable method name",
			"full_method", fullMethod,
			"error", err,
		)
		si.methods[fullMethod] = nil
		return nil
	}

	si.logger.Debug("Created method metrics",
		"full_method", fullMethod,
		"call_type", string(callType),
	)
	si.methods[fullMethod] = mm
	return mm
}

// monitoredServerStream wraps a grpc.ServerStream and counts every
// message that successfully crosses the send or receive boundary.
type monitoredServerStream struct {
	grpc.ServerStream
	metrics *metrics.ServerMetrics
}

func (s *monitoredServerStream) SendMsg(m any) error {
	err := s.ServerStream.SendMsg(m)
	if err == nil {
		s.metrics.RecordStreamMessageSent()
	}
	return err
}

func (s *monitoredServerStream) RecvMsg(m any) error {
	err := s.ServerStream.RecvMsg(m)
	if err == nil {
		s.metrics.RecordStreamMessageReceived()
	}
	return err
}

// streamCallType derives the call type from the stream descriptor.
func streamCallType(info *grpc.StreamServerInfo) metrics.CallType {
	switch {
	case info.IsClientStream && info.IsServerStream:
		return metrics.BidiStreaming
	case info.IsClientStream:
		return metrics.ClientStreaming
	default:
		return metrics.ServerStreaming
	}
}

// statusCodeLabel renders a status code as the canonical upper-snake
// identifier used by the code label (OK, NOT_FOUND, ...), matching the
// values existing dashboards expect.
func statusCodeLabel(code codes.Code) string {
	switch code {
	case codes.OK:
		return "OK"
	case codes.Canceled:
		return "CANCELLED"
	case codes.Unknown:
		return "UNKNOWN"
	case codes.InvalidArgument:
		return "INVALID_ARGUMENT"
	case codes.DeadlineExceeded:
		return "DEADLINE_EXCEEDED"
	case codes.NotFound:
		return "NOT_FOUND"
	case codes.AlreadyExists:
		return "ALREADY_EXISTS"
	case codes.PermissionDenied:
		return "PERMISSION_DENIED"
	case codes.ResourceExhausted:
		return "RESOURCE_EXHAUSTED"
	case codes.FailedPrecondition:
		return "FAILED_PRECONDITION"
	case codes.Aborted:
		return "ABORTED"
	case codes.OutOfRange:
		return "OUT_OF_RANGE"
	case codes.Unimplemented:
		return "UNIMPLEMENTED"
	case codes.Internal:
		return "INTERNAL"
	case codes.Unavailable:
		return "UNAVAILABLE"
	case codes.DataLoss:
		return "DATA_LOSS"
	case codes.Unauthenticated:
		return "UNAUTHENTICATED"
	default:
		return code.String()
	}
}
