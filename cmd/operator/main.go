package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wildrobo/teleop/pkg/api"
	"github.com/wildrobo/teleop/pkg/config"
	"github.com/wildrobo/teleop/pkg/input"
	"github.com/wildrobo/teleop/pkg/link"
	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/operator"
)

const stateQueueSize = 256

func main() {
	configPath := flag.String("config", "config/operator_config.yaml", "path to operator config file")
	flag.Parse()

	cfg, err := config.LoadOperatorConfig(*configPath)
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	logger, err := customlog.NewLogrusLogger(cfg.Logging.Level, cfg.Logging.LogPath, "operator")
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}

	// The single shared Link slot plus its supervisor. With a serial
	// device configured the serial transport replaces TCP wholesale;
	// both speak the same protocol.
	slot := &link.Slot{}
	endpoints := cfg.Endpoints
	dial := link.Dialer(func(addr string) (link.Link, error) {
		return link.DialTCP(addr)
	})
	if cfg.Serial.Device != "" {
		endpoints = []string{cfg.Serial.Device}
		baud := cfg.Serial.Baud
		dial = func(device string) (link.Link, error) {
			return link.OpenSerial(device, baud)
		}
	}

	supervisor := link.NewSupervisor(
		slot,
		endpoints,
		dial,
		time.Duration(cfg.ReconnectSecs)*time.Second,
		logger.WithField("component", "link"),
	)

	// The gamepad driver binding lives outside this module; it pushes
	// events into this source from its own thread.
	source := input.NewChannelSource(stateQueueSize)

	updates := make(chan operator.StateUpdate, stateQueueSize)

	commander := operator.NewCommander(
		slot,
		source,
		updates,
		time.Duration(cfg.TickMs)*time.Millisecond,
		logger.WithField("component", "commander"),
	)
	reader := operator.NewTelemetryReader(
		slot,
		updates,
		commander.LastPing,
		logger.WithField("component", "telemetry"),
	)

	// Forward supervisor edges onto the presentation channel.
	go func() {
		for sc := range supervisor.Notifications() {
			updates <- operator.StateUpdate{
				Kind:      operator.UpdateConnection,
				Connected: sc.Connected,
				Endpoint:  sc.Endpoint,
			}
		}
	}()

	hub := api.NewHub(updates, logger.WithField("component", "api"))
	hub.Start()
	supervisor.Start()
	commander.Start()
	reader.Start()

	app := fiber.New(fiber.Config{
		AppName:               "Teleop Driver Station",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	api.RegisterRoutes(app, hub, logger.WithField("component", "api"))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Dashboard.HTTPPort)
		logger.Infof("Dashboard listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("Dashboard server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutting down...")

	commander.Stop()
	reader.Stop()
	supervisor.Stop()
	hub.Stop()
	if err := app.Shutdown(); err != nil {
		logger.Errorf("Dashboard shutdown: %v", err)
	}

	logger.Infof("Driver station exited")
}
