package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/arm-toggle/internal/config"
)

// TestApplyOverrides verifies that only non-empty options replace settings.
func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.StateFile = "from-config.json"

	applyOverrides(cfg, &Options{
		HTTPAddress: "127.0.0.1:9000",
		MQTTAddress: ":1883",
	})

	require.Equal(t, "127.0.0.1:9000", cfg.HTTPAddress)
	require.Equal(t, config.DefaultGRPCAddress, cfg.GRPCAddress)
	require.Equal(t, ":1883", cfg.MQTTAddress)
	require.Equal(t, "from-config.json", cfg.StateFile)
}
