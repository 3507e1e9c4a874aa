package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/arm-toggle/internal/config"
	"github.com/oshokin/arm-toggle/internal/domain/arm"
	"github.com/oshokin/arm-toggle/internal/logger"
	"github.com/oshokin/arm-toggle/internal/service/common"
)

// Options controls the watcher polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress overrides the gRPC address of the endpoint.
	ServerAddress string
	// PollInterval defines the interval between state checks.
	PollInterval time.Duration
	// BrokerURL, when set, follows the MQTT arm topic instead of polling gRPC.
	BrokerURL string
	// OnChange, when set, is called with every observed transition,
	// including the first value read.
	OnChange func(armed bool)
}

// DefaultPollInterval defines the polling interval when none is configured.
const DefaultPollInterval = time.Second

// errNoServerAddress indicates the gRPC address could not be determined.
var errNoServerAddress = errors.New("no server address configured")

// StateSource reads the recorded armed flag.
type StateSource interface {
	GetArmState(ctx context.Context) (bool, error)
}

// Run polls the arm state until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "arm-watch")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.BrokerURL != "" {
		logger.InfoKV(ctx, "Following arm topic", "broker_url", opts.BrokerURL)

		return Follow(ctx, opts.BrokerURL, opts.OnChange)
	}

	serverAddress := cfg.GRPCAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	if serverAddress == "" {
		return errNoServerAddress
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching arm state", "server_address", serverAddress, "interval", interval(opts).String())

	return Watch(ctx, client, interval(opts), opts.OnChange)
}

// Watch polls source every interval and reports transitions until ctx is
// canceled. Read errors are logged and polling continues.
func Watch(ctx context.Context, source StateSource, every time.Duration, onChange func(armed bool)) error {
	changes := newTransitions(onChange)

	check := func() {
		armed, err := source.GetArmState(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.ErrorKV(ctx, "Check arm state failed", "error", err)
			}

			return
		}

		changes.observe(ctx, armed)
	}

	// Check immediately before the first tick.
	check()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")

			return nil
		case <-ticker.C:
			check()
		}
	}
}

// transitions filters repeated values out of a stream of observations.
// It is not safe for concurrent use.
type transitions struct {
	known    bool
	last     bool
	onChange func(armed bool)
}

func newTransitions(onChange func(armed bool)) *transitions {
	return &transitions{onChange: onChange}
}

// observe logs and reports armed if it differs from the previous value.
func (t *transitions) observe(ctx context.Context, armed bool) {
	if t.known && armed == t.last {
		return
	}

	t.known, t.last = true, armed

	logger.InfoKV(ctx, "Arm state changed", "is_armed", armed, "label", arm.Label(armed))

	if t.onChange != nil {
		t.onChange(armed)
	}
}

// interval returns the configured poll interval or the default.
func interval(opts *Options) time.Duration {
	if opts.PollInterval > 0 {
		return opts.PollInterval
	}

	return DefaultPollInterval
}
