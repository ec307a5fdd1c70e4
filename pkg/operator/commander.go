package operator

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wildrobo/teleop/pkg/input"
	"github.com/wildrobo/teleop/pkg/link"
	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/protocol"
)

const (
	// DefaultTickInterval matches a ~60 Hz input polling cadence.
	DefaultTickInterval = 16 * time.Millisecond
	// PingInterval is the heartbeat period, independent of input activity.
	PingInterval = time.Second
)

// Commander drains gamepad events on a fixed-rate tick, encodes them as
// protocol messages, and fires them through the shared Link slot.
// Messages are fire-and-forget: with no Link present they are silently
// dropped, and a failed send drops the Link and fires the disconnect
// signal immediately instead of waiting for the next supervisor cycle.
type Commander struct {
	slot    *link.Slot
	source  input.Source
	updates chan<- StateUpdate
	logger  customlog.Logger
	tick    time.Duration

	lastPing   time.Time
	lastPingNs atomic.Int64

	mu      sync.Mutex
	running bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewCommander creates a commander over the given slot and input source.
func NewCommander(slot *link.Slot, source input.Source, updates chan<- StateUpdate, tick time.Duration, logger customlog.Logger) *Commander {
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	return &Commander{
		slot:    slot,
		source:  source,
		updates: updates,
		logger:  logger,
		tick:    tick,
	}
}

// LastPing reports when the most recent heartbeat was sent.
func (c *Commander) LastPing() time.Time {
	ns := c.lastPingNs.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Tick runs one input/heartbeat iteration at the given instant.
func (c *Commander) Tick(now time.Time) {
	if now.Sub(c.lastPing) >= PingInterval {
		c.send(protocol.PingMessage())
		c.lastPing = now
		c.lastPingNs.Store(now.UnixNano())
	}

	// The sample starts from zero every tick; only axes that produce an
	// event below are written. An axis untouched this tick goes out as
	// 0.0, not as its last true value. Receivers rely on that.
	var sample input.Sample
	eventOccurred := false

	for {
		ev, ok := c.source.NextEvent()
		if !ok {
			break
		}
		eventOccurred = true

		switch ev.Kind {
		case input.EventAxis:
			sample.Apply(ev)
			publish(c.updates, StateUpdate{
				Kind:  UpdateAxis,
				Axis:  ev.Axis,
				Value: axisValue(sample, ev.Axis),
			})
		case input.EventButton:
			publish(c.updates, StateUpdate{
				Kind:    UpdateButton,
				Button:  ev.Button,
				Pressed: ev.Pressed,
			})
			// Edges go out one message each, never batched.
			c.send(protocol.ButtonMessage(ev.Button.String(), ev.Pressed))
		}
	}

	if eventOccurred {
		c.send(protocol.JoysticksMessage(sample.LX, sample.LY, sample.RX, sample.RY))
	}
}

func axisValue(s input.Sample, axis input.Axis) float64 {
	switch axis {
	case input.LeftStickX:
		return s.LX
	case input.LeftStickY:
		return s.LY
	case input.RightStickX:
		return s.RX
	default:
		return s.RY
	}
}

func (c *Commander) send(msg string) {
	err := c.slot.Send([]byte(msg))
	if err == nil || errors.Is(err, link.ErrNotConnected) {
		return
	}

	// The Link was alive and died on this write; the slot already
	// dropped it. Tell the driver now rather than two seconds from now.
	c.logger.Warnf("Send failed, dropping link: %v", err)
	publish(c.updates, StateUpdate{Kind: UpdateConnection, Connected: false})
}

// Start launches the fixed-rate tick loop.
func (c *Commander) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.running = true
	c.quit = make(chan struct{})
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.tick)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				c.Tick(now)
			case <-c.quit:
				return
			}
		}
	}()
}

// Stop halts the tick loop.
func (c *Commander) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.quit)
	c.mu.Unlock()

	c.wg.Wait()
}
