package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// RPCMetrics holds Prometheus metrics for gRPC request tracking.
type RPCMetrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

func NewRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	m := &RPCMetrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of gRPC requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Total number of gRPC requests.",
		}, []string{"method", "code"}),
	}

	reg.MustRegister(m.RequestDuration, m.RequestsTotal)
	return m
}

// UnaryInterceptor records the duration and status code of every unary call.
func (m *RPCMetrics) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var resp any
		var err error

		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			code := status.Code(err).String()
			m.RequestDuration.WithLabelValues(info.FullMethod, code).Observe(v)
			m.RequestsTotal.WithLabelValues(info.FullMethod, code).Inc()
		}))

		resp, err = handler(ctx, req)
		timer.ObserveDuration()
		return resp, err
	}
}
