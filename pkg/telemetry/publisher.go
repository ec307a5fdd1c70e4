// Package telemetry publishes robot-side events (motor speeds, button
// events, watchdog trips) over a ZeroMQ PUB socket for external
// observers. Publishing is best-effort; a failure never disturbs the
// command path.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pebbe/zmq4"

	customlog "github.com/wildrobo/teleop/pkg/log"
)

// Common errors
var (
	ErrPublisherClosed = errors.New("telemetry publisher is closed")
)

// Topic is the PUB-side topic frame all events go out under.
const Topic = "robot.telemetry"

// Envelope is the JSON wrapper around every published event.
type Envelope struct {
	Type      string      `json:"type"`
	Timestamp float64     `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Publisher broadcasts events on a bound PUB socket.
type Publisher struct {
	ctx      *zmq4.Context
	socket   *zmq4.Socket
	endpoint string
	logger   customlog.Logger
	running  bool
	mu       sync.Mutex
}

// NewPublisher creates a publisher bound to the given address
// (e.g. "tcp://*:5555").
func NewPublisher(bindAddress string, logger customlog.Logger) (*Publisher, error) {
	ctx, err := zmq4.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create ZMQ context: %w", err)
	}

	socket, err := ctx.NewSocket(zmq4.PUB)
	if err != nil {
		ctx.Term()
		return nil, fmt.Errorf("failed to create PUB socket: %w", err)
	}

	if err := socket.Bind(bindAddress); err != nil {
		socket.Close()
		ctx.Term()
		return nil, fmt.Errorf("failed to bind to %s: %w", bindAddress, err)
	}

	if err := socket.SetLinger(0); err != nil {
		socket.Close()
		ctx.Term()
		return nil, fmt.Errorf("failed to set linger option: %w", err)
	}

	// Resolve wildcard ports to the actual bound endpoint.
	endpoint, err := socket.GetLastEndpoint()
	if err != nil {
		endpoint = bindAddress
	}

	logger.Infof("Telemetry publisher bound to %s", endpoint)

	return &Publisher{
		ctx:      ctx,
		socket:   socket,
		endpoint: endpoint,
		logger:   logger,
		running:  true,
	}, nil
}

// Endpoint returns the resolved bind endpoint.
func (p *Publisher) Endpoint() string {
	return p.endpoint
}

// Publish sends raw bytes under the telemetry topic.
func (p *Publisher) Publish(message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return ErrPublisherClosed
	}

	// Topic frame first, then payload.
	if _, err := p.socket.Send(Topic, zmq4.SNDMORE); err != nil {
		return fmt.Errorf("failed to send topic: %w", err)
	}
	if _, err := p.socket.SendBytes(message, 0); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// PublishJSON wraps data in an Envelope and publishes it.
func (p *Publisher) PublishJSON(msgType string, data interface{}) error {
	env := Envelope{
		Type:      msgType,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		Data:      data,
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return p.Publish(payload)
}

// Close releases the socket and context.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false

	if p.socket != nil {
		p.socket.Close()
		p.socket = nil
	}
	if p.ctx != nil {
		p.ctx.Term()
		p.ctx = nil
	}
}
