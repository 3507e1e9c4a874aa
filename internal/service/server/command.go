package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"

	grpcapi "github.com/oshokin/arm-toggle/internal/api/grpc/arm"
	httpapi "github.com/oshokin/arm-toggle/internal/api/http/arm"
	"github.com/oshokin/arm-toggle/internal/broker"
	"github.com/oshokin/arm-toggle/internal/config"
	"github.com/oshokin/arm-toggle/internal/logger"
	repository "github.com/oshokin/arm-toggle/internal/repository/state"
)

// Options controls the arm-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// HTTPAddress overrides the HTTP listen address from config.
	HTTPAddress string
	// GRPCAddress overrides the gRPC listen address from config.
	GRPCAddress string
	// MQTTAddress overrides the MQTT listen address from config.
	MQTTAddress string
	// StateFile overrides the state file path from config.
	StateFile string
}

const (
	// shutdownTimeout bounds the graceful HTTP shutdown.
	shutdownTimeout = 5 * time.Second
	// readHeaderTimeout bounds reading request headers.
	readHeaderTimeout = 10 * time.Second
)

// Run starts the HTTP and gRPC servers and blocks until ctx is canceled or
// one of them fails.
//
//nolint:funlen // Linear start-up sequence reads best in one place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "arm-server")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyOverrides(cfg, opts)

	if err = config.Validate(cfg); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	var repo repository.Repository
	if cfg.StateFile != "" {
		repo = repository.NewFileRepository(cfg.StateFile)
	}

	var publisher Publisher

	if cfg.MQTTAddress != "" {
		mqtt := broker.New(cfg.MQTTAddress)
		if err = mqtt.Start(ctx); err != nil {
			return fmt.Errorf("start mqtt broker: %w", err)
		}

		defer func() {
			_ = mqtt.Close()
		}()

		publisher = mqtt
	}

	svc, err := newService(ctx, repo, publisher)
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	lc := net.ListenConfig{}

	grpcListener, err := lc.Listen(ctx, "tcp", cfg.GRPCAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.GRPCAddress, err)
	}

	httpListener, err := lc.Listen(ctx, "tcp", cfg.HTTPAddress)
	if err != nil {
		_ = grpcListener.Close()

		return fmt.Errorf("listen on %s: %w", cfg.HTTPAddress, err)
	}

	grpcServer := grpc.NewServer()
	grpcapi.RegisterArmServiceServer(grpcServer, grpcapi.NewServer(svc))

	httpServer := &http.Server{
		Handler:           httpapi.NewEcho(ctx, httpapi.NewHandler(svc)),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	logger.InfoKV(
		ctx,
		"Arm endpoint listening",
		"http_address", httpListener.Addr().String(),
		"grpc_address", grpcListener.Addr().String(),
		"state_file", cfg.StateFile,
	)

	errs := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errs <- fmt.Errorf("serve gRPC: %w", err)
		}
	}()

	go func() {
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("serve HTTP: %w", err)
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		logger.Info(ctx, "Shutting down arm endpoint")
	case runErr = <-errs:
		logger.ErrorKV(ctx, "Arm endpoint failed", "error", runErr)
	}

	// The parent context may already be canceled; shutdown gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WarnKV(ctx, "HTTP shutdown incomplete", "error", err)
	}

	grpcServer.GracefulStop()
	logger.Info(ctx, "Arm endpoint stopped")

	return runErr
}

// applyOverrides copies non-empty command line values over the settings.
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.HTTPAddress != "" {
		cfg.HTTPAddress = opts.HTTPAddress
	}

	if opts.GRPCAddress != "" {
		cfg.GRPCAddress = opts.GRPCAddress
	}

	if opts.MQTTAddress != "" {
		cfg.MQTTAddress = opts.MQTTAddress
	}

	if opts.StateFile != "" {
		cfg.StateFile = opts.StateFile
	}
}
