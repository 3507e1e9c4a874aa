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
	"github.com/oshokin/arm-toggle/internal/service/client"
	"github.com/oshokin/arm-toggle/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// controlID overrides the control identifier.
	controlID string
	// presses activates the button without the terminal UI.
	presses int
	// logLevel sets the minimum log level.
	logLevel string

	// rootCmd represents the base command for toggling the arm state.
	rootCmd = &cobra.Command{
		Use:   "arm-toggle [endpoint-url]",
		Short: "Toggle the turret between armed and disarmed.",
		Long: `Shows a single Arm/Disarm button in the terminal.

Each press (enter or space) flips the local state, relabels the button and sends
GET /set_armed?armed=true|false to the endpoint without waiting for the answer.
Failed notifications are ignored: the button always shows the local state.
The state starts disarmed on every launch.

Endpoint URL can be provided as argument or loaded from configuration file.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setLogLevel(logLevel)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use endpoint argument if provided, otherwise rely on config.
			var endpoint string
			if len(args) > 0 {
				endpoint = args[0]
			}

			options := &client.Options{
				ConfigPath: cfgPath,
				Endpoint:   endpoint,
				ControlID:  controlID,
				Presses:    presses,
			}

			return client.Run(ctx, options)
		},
	}
)

// Execute runs the arm-toggle CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setLogLevel applies the --log-level flag.
func setLogLevel(value string) error {
	level, ok := logger.ParseLogLevel(value)
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}

	logger.SetLevel(level)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.Flags().StringVar(&controlID, "control-id", "", "identifier of the control to bind")
	rootCmd.Flags().IntVarP(&presses, "press", "p", 0, "press the button N times without the terminal UI, then exit")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "minimum log level (debug, info, warn, error)")
}
