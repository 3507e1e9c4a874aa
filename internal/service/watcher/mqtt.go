package watcher

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"

	"github.com/oshokin/arm-toggle/internal/broker"
	"github.com/oshokin/arm-toggle/internal/domain/arm"
	"github.com/oshokin/arm-toggle/internal/logger"
)

const (
	// keepAlive is the MQTT keepalive in seconds.
	keepAlive = 20
	// subscribeQoS matches the QoS the endpoint publishes with.
	subscribeQoS = 1
)

// Follow subscribes to the retained arm topic on the MQTT broker at brokerURL
// and reports transitions until ctx is canceled. The connection is
// re-established automatically while ctx is alive.
func Follow(ctx context.Context, brokerURL string, onChange func(armed bool)) error {
	serverURL, err := url.Parse(brokerURL)
	if err != nil {
		return fmt.Errorf("parse broker URL: %w", err)
	}

	updates := make(chan bool)

	cfg := autopaho.ClientConfig{
		ServerUrls:                    []*url.URL{serverURL},
		KeepAlive:                     keepAlive,
		CleanStartOnInitialConnection: true,
		// Subscribing here restores the subscription after a reconnect.
		OnConnectionUp: func(cm *autopaho.ConnectionManager, _ *paho.Connack) {
			_, err := cm.Subscribe(ctx, &paho.Subscribe{
				Subscriptions: []paho.SubscribeOptions{
					{Topic: broker.Topic, QoS: subscribeQoS},
				},
			})
			if err != nil {
				logger.ErrorKV(ctx, "Subscribe to arm topic failed", "topic", broker.Topic, "error", err)

				return
			}

			logger.InfoKV(ctx, "Subscribed to arm topic", "topic", broker.Topic)
		},
		OnConnectError: func(err error) {
			logger.WarnKV(ctx, "MQTT connection attempt failed", "broker_url", brokerURL, "error", err)
		},
		ClientConfig: paho.ClientConfig{
			ClientID: fmt.Sprintf("arm-watch-%d", os.Getpid()),
			OnPublishReceived: []func(paho.PublishReceived) (bool, error){
				func(pr paho.PublishReceived) (bool, error) {
					select {
					case updates <- arm.ParseArmed(string(pr.Packet.Payload)):
					case <-ctx.Done():
					}

					return true, nil
				},
			},
			OnClientError: func(err error) {
				logger.WarnKV(ctx, "MQTT client error", "error", err)
			},
		},
	}

	cm, err := autopaho.NewConnection(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}

	changes := newTransitions(onChange)

	for {
		select {
		case <-ctx.Done():
			// The connection manager shuts down with ctx.
			<-cm.Done()
			logger.Info(ctx, "Context canceled, exiting")

			return nil
		case armed := <-updates:
			changes.observe(ctx, armed)
		}
	}
}
