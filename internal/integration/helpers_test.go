package integration

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/arm-toggle/internal/config"
	"github.com/oshokin/arm-toggle/internal/service/server"
)

// endpoint describes a running arm-server instance.
type endpoint struct {
	// httpURL is the base URL of the HTTP surface.
	httpURL string
	// grpcAddress is the address of the query API.
	grpcAddress string
	// configPath points at settings matching this endpoint.
	configPath string
	// brokerURL is the MQTT broker URL; empty when the broker is disabled.
	brokerURL string
}

// reservePort returns a free local TCP address.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// waitListening blocks until addr accepts TCP connections.
func waitListening(t *testing.T, addr string) {
	t.Helper()

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err != nil {
			return false
		}

		_ = conn.Close()

		return true
	}, 3*time.Second, 20*time.Millisecond)
}

// startServer runs arm-server with a temporary config until the test ends.
// A non-empty mqttAddress enables the embedded broker.
func startServer(t *testing.T, statePath, mqttAddress string) *endpoint {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	var (
		httpAddress = reservePort(t)
		grpcAddress = reservePort(t)
		cfgPath     = filepath.Join(t.TempDir(), "settings.yaml")
	)

	require.NoError(t, config.Save(cfgPath, &config.Config{
		Endpoint:    "http://" + httpAddress,
		Timeout:     2 * time.Second,
		HTTPAddress: httpAddress,
		GRPCAddress: grpcAddress,
		MQTTAddress: mqttAddress,
		StateFile:   statePath,
	}))

	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{ConfigPath: cfgPath})
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	waitListening(t, httpAddress)
	waitListening(t, grpcAddress)

	ep := &endpoint{
		httpURL:     "http://" + httpAddress,
		grpcAddress: grpcAddress,
		configPath:  cfgPath,
	}

	if mqttAddress != "" {
		waitListening(t, mqttAddress)
		ep.brokerURL = "mqtt://" + mqttAddress
	}

	return ep
}
