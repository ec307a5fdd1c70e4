// Package api exposes the driver-station presentation boundary: a
// fiber HTTP app with a websocket that streams connection, input, and
// telemetry signals to the dashboard UI.
package api

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/wildrobo/teleop/pkg/input"
	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/operator"
)

// DashboardState is the full presentation snapshot pushed to clients.
type DashboardState struct {
	Connected bool               `json:"connected"`
	Endpoint  string             `json:"endpoint,omitempty"`
	Axes      map[string]float64 `json:"axes"`
	Buttons   map[string]bool    `json:"buttons"`
	Telemetry string             `json:"telemetry,omitempty"`
	PingMs    float64            `json:"ping_ms,omitempty"`
}

var axisKeys = map[input.Axis]string{
	input.LeftStickX:  "lx",
	input.LeftStickY:  "ly",
	input.RightStickX: "rx",
	input.RightStickY: "ry",
}

// Hub owns all rendering state. Core actors feed it through the
// one-way update channel; no other goroutine ever mutates the state or
// writes to a client socket.
type Hub struct {
	updates <-chan operator.StateUpdate
	logger  customlog.Logger

	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	clients    map[*websocket.Conn]struct{}

	stateMu sync.Mutex
	state   DashboardState

	mu      sync.Mutex
	running bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewHub creates a hub fed by the given update channel.
func NewHub(updates <-chan operator.StateUpdate, logger customlog.Logger) *Hub {
	return &Hub{
		updates:    updates,
		logger:     logger,
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		clients:    make(map[*websocket.Conn]struct{}),
		state: DashboardState{
			Axes:    map[string]float64{"lx": 0, "ly": 0, "rx": 0, "ry": 0},
			Buttons: make(map[string]bool),
		},
	}
}

// Snapshot returns a copy of the current dashboard state.
func (h *Hub) Snapshot() DashboardState {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()
	return h.copyStateLocked()
}

func (h *Hub) copyStateLocked() DashboardState {
	out := h.state
	out.Axes = make(map[string]float64, len(h.state.Axes))
	for k, v := range h.state.Axes {
		out.Axes[k] = v
	}
	out.Buttons = make(map[string]bool, len(h.state.Buttons))
	for k, v := range h.state.Buttons {
		out.Buttons[k] = v
	}
	return out
}

func (h *Hub) apply(u operator.StateUpdate) {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	switch u.Kind {
	case operator.UpdateConnection:
		h.state.Connected = u.Connected
		h.state.Endpoint = u.Endpoint
	case operator.UpdateAxis:
		h.state.Axes[axisKeys[u.Axis]] = u.Value
	case operator.UpdateButton:
		h.state.Buttons[u.Button.String()] = u.Pressed
	case operator.UpdateTelemetry:
		h.state.Telemetry = u.Telemetry
	case operator.UpdatePingRTT:
		h.state.PingMs = float64(u.RTT) / float64(time.Millisecond)
	}
}

// Start launches the hub loop.
func (h *Hub) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return
	}
	h.running = true
	h.quit = make(chan struct{})
	h.wg.Add(1)

	go func() {
		defer h.wg.Done()
		for {
			select {
			case u := <-h.updates:
				h.apply(u)
				h.broadcast()
			case conn := <-h.register:
				h.clients[conn] = struct{}{}
				h.sendState(conn)
			case conn := <-h.unregister:
				delete(h.clients, conn)
			case <-h.quit:
				return
			}
		}
	}()
}

func (h *Hub) broadcast() {
	for conn := range h.clients {
		h.sendState(conn)
	}
}

func (h *Hub) sendState(conn *websocket.Conn) {
	if err := conn.WriteJSON(h.Snapshot()); err != nil {
		h.logger.Debugf("Dashboard WS write failed, dropping client: %v", err)
		delete(h.clients, conn)
		conn.Close()
	}
}

// Stop halts the hub loop and drops all clients.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	close(h.quit)
	h.mu.Unlock()

	h.wg.Wait()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
