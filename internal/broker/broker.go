package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"github.com/oshokin/arm-toggle/internal/domain/arm"
	"github.com/oshokin/arm-toggle/internal/logger"
)

const (
	// Topic carries the recorded armed flag as "true"/"false".
	Topic = "turret/armed"

	// listenerID names the TCP listener inside the broker.
	listenerID = "tcp"
	// publishQoS is the quality of service for state messages.
	publishQoS = 1
	// loggerName names broker entries in the log.
	loggerName = "mqtt"
)

// errStateRequired is returned when a nil state is published.
var errStateRequired = errors.New("state must be provided")

// Broker is an embedded MQTT broker publishing the recorded state.
type Broker struct {
	// server is the mochi broker instance.
	server *mochi.Server
	// address is the TCP listen address; empty means inline use only.
	address string
}

// Option configures a Broker.
type Option func(*options)

type options struct {
	log *zap.SugaredLogger
}

// WithLogger sets the logger the broker writes to. The global logger is used by default.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// New creates a broker. With an empty address no TCP listener is opened and
// only in-process clients receive messages.
func New(address string, opts ...Option) *Broker {
	o := &options{log: logger.Logger()}
	for _, opt := range opts {
		opt(o)
	}

	// mochi logs through slog; the handler feeds the zap core so level and format match.
	handler := zapslog.NewHandler(o.log.Desugar().Core(), zapslog.WithName(loggerName))

	server := mochi.New(&mochi.Options{
		InlineClient: true,
		Logger:       slog.New(handler),
	})

	return &Broker{
		server:  server,
		address: address,
	}
}

// Start registers hooks and listeners and begins serving.
func (b *Broker) Start(ctx context.Context) error {
	// The arm topic is informational; anyone on the network may read it.
	if err := b.server.AddHook(new(auth.AllowHook), nil); err != nil {
		return fmt.Errorf("add auth hook: %w", err)
	}

	if b.address != "" {
		tcp := listeners.NewTCP(listeners.Config{ID: listenerID, Address: b.address})
		if err := b.server.AddListener(tcp); err != nil {
			return fmt.Errorf("add mqtt listener: %w", err)
		}
	}

	go func() {
		if err := b.server.Serve(); err != nil {
			logger.ErrorKV(ctx, "MQTT broker stopped", "error", err)
		}
	}()

	logger.InfoKV(ctx, "MQTT broker started", "listen_address", b.address, "topic", Topic)

	return nil
}

// PublishArmState publishes the state as a retained message on Topic.
func (b *Broker) PublishArmState(_ context.Context, state *arm.State) error {
	if state == nil {
		return errStateRequired
	}

	if err := b.server.Publish(Topic, []byte(arm.FormatArmed(state.IsArmed)), true, publishQoS); err != nil {
		return fmt.Errorf("publish arm state: %w", err)
	}

	return nil
}

// Close stops the broker and its listeners.
func (b *Broker) Close() error {
	return b.server.Close()
}
