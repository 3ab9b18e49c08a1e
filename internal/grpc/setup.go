package grpc

import (
	"context"
	"fmt"
	"sync"

	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/services"
)

var (
	serverMetrics     *grpcprom.ServerMetrics
	serverMetricsOnce sync.Once
)

func sharedServerMetrics() *grpcprom.ServerMetrics {
	serverMetricsOnce.Do(func() {
		serverMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(serverMetrics)
	})
	return serverMetrics
}

// interceptorLogger adapts zerolog to the go-grpc-middleware logging interface
func interceptorLogger(l zerolog.Logger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		fl := l.With().Fields(fields).Logger()
		switch lvl {
		case logging.LevelDebug:
			fl.Debug().Msg(msg)
		case logging.LevelInfo:
			fl.Info().Msg(msg)
		case logging.LevelWarn:
			fl.Warn().Msg(msg)
		default:
			fl.Error().Msg(msg)
		}
	})
}

// NewGRPCServer builds the EpisodeGrid gRPC server. Calls pass through panic
// recovery, Prometheus metrics and request logging, in that order.
// Health checking and reflection are registered alongside the service.
func NewGRPCServer(svc services.EpisodeGridService) *grpc.Server {
	logger := config.GetLogger()
	srvMetrics := sharedServerMetrics()

	onPanic := func(p any) error {
		logger.Error().Str("panic", fmt.Sprint(p)).Msg("Recovered from panic in gRPC handler")
		return status.Error(codes.Internal, "internal error")
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(onPanic)),
			srvMetrics.UnaryServerInterceptor(),
			logging.UnaryServerInterceptor(interceptorLogger(logger), logging.WithLogOnEvents(logging.FinishCall)),
		),
	)

	RegisterEpisodeGridServiceServer(grpcServer, NewServer(svc))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	srvMetrics.InitializeMetrics(grpcServer)

	return grpcServer
}
