package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	pb "github.com/godilite/shotstats/api/v1"
	handler "github.com/godilite/shotstats/internal/grpc"
	"github.com/godilite/shotstats/pkg/metrics"
	grpcsrv "github.com/godilite/shotstats/pkg/grpc/server"
)

const shutdownTimeout = 10 * time.Second

// Run serves gRPC and /metrics and blocks until ctx is done or a shutdown
// signal is received.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	grpcHandlers := handler.NewGRPCHandlers(a.Stats, a.cache, a.logger, a.cfg.GRPC.CacheTTL, a.metrics)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(a.cfg.GRPC.Port),
		grpcsrv.WithLogger(a.logger),
		grpcsrv.WithMetrics(a.metrics),
		grpcsrv.WithLogging(a.cfg.GRPC.Logging),
		grpcsrv.WithReflection(a.cfg.GRPC.Reflection),
	)
	if err != nil {
		return fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.Register(&pb.Analytics_ServiceDesc, grpcHandlers)
	serveErr := grpcServer.Start()

	var metricsServer *http.Server
	if a.cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(a.registry))
		metricsServer = &http.Server{
			Addr:              a.cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.logger.Info("metrics server starting", zap.String("addr", a.cfg.Metrics.Addr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = fmt.Errorf("gRPC server: %w", err)
	}

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := grpcServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("gRPC shutdown incomplete", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("metrics server shutdown incomplete", zap.Error(err))
		}
	}
	a.Close()

	if shutdownCtx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return runErr
}
