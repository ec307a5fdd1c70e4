package main

import (
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wildrobo/teleop/pkg/config"
	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/protocol"
	"github.com/wildrobo/teleop/pkg/robot"
	"github.com/wildrobo/teleop/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "config/robot_config.yaml", "path to robot config file")
	flag.Parse()

	cfg, err := config.LoadRobotConfig(*configPath)
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	logger, err := customlog.NewLogrusLogger(cfg.Logging.Level, cfg.Logging.LogPath, "robot")
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}

	actuator := robot.NewLogActuator(logger.WithField("component", "drive"))

	// Telemetry broadcasting is optional; without a bind address the
	// robot runs silent.
	var events robot.EventPublisher
	var publisher *telemetry.Publisher
	if cfg.Telemetry.PublishBindAddress != "" {
		publisher, err = telemetry.NewPublisher(cfg.Telemetry.PublishBindAddress, logger.WithField("component", "telemetry"))
		if err != nil {
			logger.Fatalf("Failed to start telemetry publisher: %v", err)
		}
		events = publisher
	}

	dispatcher := protocol.NewDispatcher(logger.WithField("component", "dispatch"))
	robot.RegisterHandlers(dispatcher, actuator, events, logger.WithField("component", "command"))

	watchdog := robot.NewWatchdog(
		time.Duration(cfg.Watchdog.TimeoutMs)*time.Millisecond,
		actuator,
		logger.WithField("component", "watchdog"),
	)
	watchdog.Start()

	server := robot.NewServer(cfg.ListenAddress, dispatcher, watchdog.Touch, logger.WithField("component", "server"))
	if err := server.Start(); err != nil {
		logger.Fatalf("Failed to start command server: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutting down...")

	server.Stop()
	watchdog.Stop()
	actuator.Stop()
	if publisher != nil {
		publisher.Close()
	}

	logger.Infof("Robot agent exited")
}
