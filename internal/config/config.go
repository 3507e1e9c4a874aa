package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/arm-toggle/internal/domain/arm"
)

// Config holds the settings shared by the arm-toggle binaries.
type Config struct {
	// Endpoint is the base URL receiving arm notifications.
	Endpoint string `yaml:"endpoint"`
	// ControlID identifies the control the toggle binds to.
	ControlID string `yaml:"control_id"`
	// Timeout bounds a single notification or RPC.
	Timeout time.Duration `yaml:"timeout"`
	// HTTPAddress is where the endpoint serves HTTP.
	HTTPAddress string `yaml:"http_addr"`
	// GRPCAddress is where the endpoint serves the arm state query API.
	GRPCAddress string `yaml:"grpc_addr"`
	// MQTTAddress enables the embedded MQTT broker when set.
	MQTTAddress string `yaml:"mqtt_addr,omitempty"`
	// StateFile is where the endpoint writes the recorded state; empty keeps it in memory.
	StateFile string `yaml:"state_file,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "arm-toggle-settings.yaml"

	// DefaultEndpoint is the endpoint used when none is configured.
	DefaultEndpoint = "http://127.0.0.1:8000"

	// DefaultHTTPAddress is the default endpoint HTTP listen address.
	DefaultHTTPAddress = ":8000"

	// DefaultGRPCAddress is the default endpoint gRPC listen address.
	DefaultGRPCAddress = ":50051"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errEndpointScheme is returned when the endpoint is not an http(s) URL.
	errEndpointScheme = errors.New("endpoint must be an http or https URL")
)

// Default returns settings populated with defaults.
func Default() *Config {
	cfg := new(Config)
	applyDefaults(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default path yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the provided settings.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	applyDefaults(cfg)

	if err := ValidateEndpoint(cfg.Endpoint); err != nil {
		return err
	}

	for name, address := range map[string]string{
		"http": cfg.HTTPAddress,
		"grpc": cfg.GRPCAddress,
		"mqtt": cfg.MQTTAddress,
	} {
		if address == "" {
			continue
		}

		if _, _, err := net.SplitHostPort(address); err != nil {
			return fmt.Errorf("invalid %s address %q: %w", name, address, err)
		}
	}

	return nil
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errEndpointScheme, endpoint)
	}

	return nil
}

// applyDefaults fills zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	if cfg.ControlID == "" {
		cfg.ControlID = arm.DefaultControlID
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = DefaultHTTPAddress
	}

	if cfg.GRPCAddress == "" {
		cfg.GRPCAddress = DefaultGRPCAddress
	}
}
