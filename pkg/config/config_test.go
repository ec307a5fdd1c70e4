package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadOperatorConfig(t *testing.T) {
	configContent := `
logging:
  level: "debug"

endpoints:
  - "127.0.0.1:5000"
  - "10.42.0.85:5000"

dashboard:
  http_port: 9090
`
	path := writeConfig(t, "operator_config.yaml", configContent)

	cfg, err := LoadOperatorConfig(path)
	if err != nil {
		t.Fatalf("LoadOperatorConfig failed: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected logging level 'debug', got '%s'", cfg.Logging.Level)
	}
	if len(cfg.Endpoints) != 2 {
		t.Fatalf("Expected 2 endpoints, got %d", len(cfg.Endpoints))
	}
	if cfg.Endpoints[0] != "127.0.0.1:5000" {
		t.Errorf("Unexpected first endpoint: %s", cfg.Endpoints[0])
	}
	if cfg.Dashboard.HTTPPort != 9090 {
		t.Errorf("Expected dashboard port 9090, got %d", cfg.Dashboard.HTTPPort)
	}

	// Defaults for omitted fields
	if cfg.ReconnectSecs != DefaultReconnectSecs {
		t.Errorf("Expected default reconnect interval, got %d", cfg.ReconnectSecs)
	}
	if cfg.TickMs != DefaultTickIntervalMs {
		t.Errorf("Expected default tick interval, got %d", cfg.TickMs)
	}
}

func TestLoadOperatorConfigSerialDefaults(t *testing.T) {
	configContent := `
serial:
  device: "/dev/ttyUSB0"
`
	path := writeConfig(t, "operator_config.yaml", configContent)

	cfg, err := LoadOperatorConfig(path)
	if err != nil {
		t.Fatalf("LoadOperatorConfig failed: %v", err)
	}
	if cfg.Serial.Baud != DefaultSerialBaud {
		t.Errorf("Expected default baud %d, got %d", DefaultSerialBaud, cfg.Serial.Baud)
	}
}

func TestLoadOperatorConfigMissingEndpoints(t *testing.T) {
	path := writeConfig(t, "operator_config.yaml", "logging:\n  level: info\n")

	_, err := LoadOperatorConfig(path)
	if err == nil {
		t.Fatal("Expected error for config without endpoints or serial device")
	}
	if !strings.Contains(err.Error(), "endpoints") {
		t.Errorf("Expected error to mention endpoints, got: %v", err)
	}
}

func TestLoadRobotConfigDefaults(t *testing.T) {
	path := writeConfig(t, "robot_config.yaml", "logging:\n  level: info\n")

	cfg, err := LoadRobotConfig(path)
	if err != nil {
		t.Fatalf("LoadRobotConfig failed: %v", err)
	}
	if cfg.ListenAddress != DefaultListenAddress {
		t.Errorf("Expected default listen address, got '%s'", cfg.ListenAddress)
	}
	if cfg.Watchdog.TimeoutMs != DefaultWatchdogMs {
		t.Errorf("Expected default watchdog timeout, got %d", cfg.Watchdog.TimeoutMs)
	}
	if cfg.Telemetry.PublishBindAddress != "" {
		t.Errorf("Expected telemetry disabled by default, got '%s'", cfg.Telemetry.PublishBindAddress)
	}
}

func TestLoadRobotConfigMissingFile(t *testing.T) {
	_, err := LoadRobotConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
