package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied when the YAML omits the corresponding field.
const (
	DefaultListenAddress  = "0.0.0.0:5000"
	DefaultDashboardPort  = 8080
	DefaultSerialBaud     = 115200
	DefaultWatchdogMs     = 500
	DefaultReconnectSecs  = 2
	DefaultTickIntervalMs = 16
)

// LoggingConfig holds logging settings shared by both binaries
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogPath string `yaml:"log_path,omitempty"`
}

// SerialConfig holds the optional serial transport settings.
// When Device is empty the operator uses TCP.
type SerialConfig struct {
	Device string `yaml:"device,omitempty"`
	Baud   int    `yaml:"baud,omitempty"`
}

// DashboardConfig holds the driver-station UI gateway settings
type DashboardConfig struct {
	HTTPPort int `yaml:"http_port"`
}

// OperatorConfig is the bootstrap configuration for the driver station
type OperatorConfig struct {
	Logging       LoggingConfig   `yaml:"logging"`
	Endpoints     []string        `yaml:"endpoints"`
	Serial        SerialConfig    `yaml:"serial,omitempty"`
	Dashboard     DashboardConfig `yaml:"dashboard"`
	ReconnectSecs int             `yaml:"reconnect_interval_s,omitempty"`
	TickMs        int             `yaml:"tick_interval_ms,omitempty"`
}

// TelemetryConfig holds the robot-side telemetry publisher settings.
// An empty bind address disables the publisher.
type TelemetryConfig struct {
	PublishBindAddress string `yaml:"publish_bind_address,omitempty"`
}

// WatchdogConfig holds the robot-side heartbeat watchdog settings
type WatchdogConfig struct {
	TimeoutMs int `yaml:"timeout_ms,omitempty"`
}

// RobotConfig is the bootstrap configuration for the robot agent
type RobotConfig struct {
	Logging       LoggingConfig   `yaml:"logging"`
	ListenAddress string          `yaml:"listen_address"`
	Telemetry     TelemetryConfig `yaml:"telemetry,omitempty"`
	Watchdog      WatchdogConfig  `yaml:"watchdog,omitempty"`
}

// LoadOperatorConfig loads and validates the driver-station configuration
func LoadOperatorConfig(path string) (*OperatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading operator config file '%s': %w", path, err)
	}

	var cfg OperatorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing operator config file '%s': %w", path, err)
	}

	if len(cfg.Endpoints) == 0 && cfg.Serial.Device == "" {
		return nil, fmt.Errorf("missing required field in operator config: endpoints (or serial.device)")
	}
	if cfg.Serial.Device != "" && cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = DefaultSerialBaud
	}
	if cfg.Dashboard.HTTPPort == 0 {
		cfg.Dashboard.HTTPPort = DefaultDashboardPort
	}
	if cfg.ReconnectSecs == 0 {
		cfg.ReconnectSecs = DefaultReconnectSecs
	}
	if cfg.TickMs == 0 {
		cfg.TickMs = DefaultTickIntervalMs
	}

	return &cfg, nil
}

// LoadRobotConfig loads and validates the robot agent configuration
func LoadRobotConfig(path string) (*RobotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading robot config file '%s': %w", path, err)
	}

	var cfg RobotConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing robot config file '%s': %w", path, err)
	}

	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}
	if cfg.Watchdog.TimeoutMs == 0 {
		cfg.Watchdog.TimeoutMs = DefaultWatchdogMs
	}

	return &cfg, nil
}
