package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"marketplace-availability/internal/api/grpc/interceptor"
	"marketplace-availability/internal/logger"
)

// ServiceName is the health-check name orchestrators probe for the availability API.
const ServiceName = "marketplace.availability.v1.AvailabilityService"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewServer builds the gRPC server that carries health and reflection.
func NewServer() (*grpc.Server, *health.Server) {
	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(interceptor.Unary()),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)

	// Register reflection service for grpcurl
	reflection.Register(s)
	return s, hs
}

// ProbeStore sets the serving status from one ping of store. A nil store is
// always serving.
func ProbeStore(ctx context.Context, hs *health.Server, store Pinger) {
	st := healthpb.HealthCheckResponse_SERVING
	if store != nil {
		if err := store.Ping(ctx); err != nil {
			logger.Warn("Store health check failed", "error", err)
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	hs.SetServingStatus("", st)
	hs.SetServingStatus(ServiceName, st)
}

// WatchStore probes store every interval until ctx ends, then marks the
// server as shutting down.
func WatchStore(ctx context.Context, hs *health.Server, store Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ProbeStore(ctx, hs, store)
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			ProbeStore(probeCtx, hs, store)
			cancel()
		}
	}
}
