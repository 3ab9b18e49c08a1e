package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Belphemur/EpisodeGrid/internal/config"
	grpcserver "github.com/Belphemur/EpisodeGrid/internal/grpc"
	"github.com/Belphemur/EpisodeGrid/internal/httpapi"
	"github.com/Belphemur/EpisodeGrid/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over gRPC, the JSON API and Prometheus metrics",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	logger := config.GetLogger()

	logger.Info().
		Str("tvmaze_base_url", cfg.TVMazeBaseURL).
		Str("search_mode", cfg.SearchMode).
		Str("cache_provider", cfg.Cache.Provider).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	service, tvmaze := newPipeline(cfg)
	defer func() {
		if err := tvmaze.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close TVMaze client")
		}
	}()

	grpcServer := grpcserver.NewGRPCServer(service)

	// The gRPC listener is opened first so a bind failure leaves no HTTP server running.
	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener on %s: %w", address, err)
	}

	var httpServers []*http.Server
	if cfg.Metrics.Enabled {
		httpServers = append(httpServers, metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port))
	}
	if cfg.HTTP.Enabled {
		httpServers = append(httpServers, httpapi.NewHTTPServer(cfg.Server.Address, cfg.HTTP.Port, service))
	}
	for _, srv := range httpServers {
		go func(srv *http.Server) {
			logger.Info().Str("address", srv.Addr).Msg("Starting HTTP server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Str("address", srv.Addr).Msg("Failed to serve HTTP")
			}
		}(srv)
	}

	logger.Info().Str("address", address).Msg("Starting gRPC server")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, srv := range httpServers {
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Str("address", srv.Addr).Msg("Failed to shutdown HTTP server")
			}
		}
		grpcServer.GracefulStop()
	}()

	if err := grpcServer.Serve(listener); err != nil {
		return fmt.Errorf("failed to serve gRPC: %w", err)
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}
