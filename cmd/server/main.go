package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tbeaudouin05/authnet-billing/api/bootstrap"
	"github.com/tbeaudouin05/authnet-billing/api/config"
	"github.com/tbeaudouin05/authnet-billing/api/database"
	"github.com/tbeaudouin05/authnet-billing/api/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	handler, err := router.NewRouter()
	if err != nil {
		return err
	}
	cfg := config.AppConfig
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       15 * time.Second,
		// A request can wait on several sequential gateway calls.
		WriteTimeout:   writeTimeout(cfg.GatewayTimeout),
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	healthSrv := health.NewServer()
	grpcSrv := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return err
	}

	errc := make(chan error, 2)
	go func() {
		slog.Info("grpc health listening", "port", cfg.GRPCPort)
		errc <- grpcSrv.Serve(lis)
	}()
	go func() {
		slog.Info("http listening", "port", cfg.HTTPPort, "app_env", cfg.AppEnv)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()
	go watchReadiness(ctx, healthSrv)

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-errc:
		if err != nil {
			return err
		}
	}

	healthSrv.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = httpSrv.Shutdown(shutdownCtx)
	grpcSrv.GracefulStop()
	return err
}

// writeTimeout leaves room for the three sequential gateway calls of subscription creation.
func writeTimeout(gatewayTimeout time.Duration) time.Duration {
	if gatewayTimeout <= 0 {
		return 0
	}
	return 3*gatewayTimeout + 10*time.Second
}

// watchReadiness mirrors the database ping onto the gRPC health status.
func watchReadiness(ctx context.Context, hs *health.Server) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		status := healthpb.HealthCheckResponse_SERVING
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := bootstrap.Ready(pingCtx); err != nil {
			slog.Warn("readiness check failed", "err", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		cancel()
		hs.SetServingStatus("", status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
