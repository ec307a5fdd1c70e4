package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	customlog "github.com/wildrobo/teleop/pkg/log"
)

// RegisterRoutes wires the dashboard endpoints onto a fiber app.
func RegisterRoutes(app *fiber.App, hub *Hub, logger customlog.Logger) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "online",
			"service": "teleop driver station",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/state", websocket.New(func(conn *websocket.Conn) {
		StateWebSocketHandler(conn, hub, logger)
	}))
}

// StateWebSocketHandler attaches one dashboard client to the hub and
// holds the connection open until the client goes away. The hub owns
// all writes; this handler only reads to detect the close.
func StateWebSocketHandler(conn *websocket.Conn, hub *Hub, logger customlog.Logger) {
	logger.Infof("Dashboard connected: %s", conn.RemoteAddr())

	hub.register <- conn
	defer func() {
		hub.unregister <- conn
		logger.Infof("Dashboard disconnected: %s", conn.RemoteAddr())
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("Dashboard WS read error: %v", err)
			}
			return
		}
		// Inbound dashboard messages are ignored; the presentation
		// layer consumes signals, it does not command the robot.
	}
}
