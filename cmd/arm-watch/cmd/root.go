package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/arm-toggle/internal/config"
	"github.com/oshokin/arm-toggle/internal/logger"
	"github.com/oshokin/arm-toggle/internal/service/watcher"
	"github.com/oshokin/arm-toggle/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// interval between state checks.
	interval time.Duration
	// brokerURL switches to following the MQTT arm topic.
	brokerURL string

	// rootCmd represents the base command for watching the recorded state.
	rootCmd = &cobra.Command{
		Use:   "arm-watch [grpc-address]",
		Short: "Log changes of the arm state recorded by the endpoint.",
		Long: `Polls the endpoint's gRPC query API and logs every armed/disarmed transition.

The gRPC address can be provided as argument or loaded from configuration file.
With --mqtt-url the watcher follows the retained MQTT arm topic instead of polling.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use server address argument if provided, otherwise rely on config.
			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			options := &watcher.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				PollInterval:  interval,
				BrokerURL:     brokerURL,
			}

			return watcher.Run(ctx, options)
		},
	}
)

// Execute runs the arm-watch CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.Flags().DurationVarP(&interval, "interval", "i", watcher.DefaultPollInterval, "interval between state checks")
	rootCmd.Flags().StringVarP(&brokerURL, "mqtt-url", "m", "", "follow the arm topic on this MQTT broker (e.g. mqtt://127.0.0.1:1883)")
}
