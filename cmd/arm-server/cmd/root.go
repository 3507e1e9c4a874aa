package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/arm-toggle/internal/config"
	"github.com/oshokin/arm-toggle/internal/logger"
	"github.com/oshokin/arm-toggle/internal/service/server"
	"github.com/oshokin/arm-toggle/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// grpcAddress overrides the gRPC listen address.
	grpcAddress string
	// mqttAddress enables the embedded MQTT broker.
	mqttAddress string
	// stateFile path where the recorded state is persisted.
	stateFile string
	// logLevel sets the minimum log level.
	logLevel string

	// rootCmd represents the base command for running the endpoint.
	rootCmd = &cobra.Command{
		Use:   "arm-server [http-listen-address]",
		Short: "Run the endpoint receiving arm/disarm notifications.",
		Long: `Serves the operator page and GET /set_armed?armed=true|false over HTTP.

The last recorded value is kept in memory, optionally written to a state file,
published retained on the MQTT topic turret/armed when a broker address is set,
and readable over gRPC (armtoggle.v1.ArmService/GetArmState).
The endpoint only records the value; it does not act on it.

The HTTP listen address can be provided as argument to override config (e.g. :8000).`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var httpAddress string
			if len(args) > 0 {
				httpAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:  configPath,
				HTTPAddress: httpAddress,
				GRPCAddress: grpcAddress,
				MQTTAddress: mqttAddress,
				StateFile:   stateFile,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the arm-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.Flags().StringVarP(&grpcAddress, "grpc-addr", "g", "", "gRPC listen address (default "+config.DefaultGRPCAddress+")")
	rootCmd.Flags().StringVarP(&mqttAddress, "mqtt-addr", "m", "", "MQTT listen address; empty disables the broker")
	rootCmd.Flags().StringVarP(&stateFile, "state-file", "s", "", "path to persist the recorded state")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
}
