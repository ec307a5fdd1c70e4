package link

import (
	"sync"
	"time"

	customlog "github.com/wildrobo/teleop/pkg/log"
)

// DefaultSupervisorInterval is the pause between supervisor cycles. It
// bounds reconnection latency while keeping CPU usage negligible.
const DefaultSupervisorInterval = 2 * time.Second

const stateChangeQueueSize = 16

// StateChange is the edge-triggered connectivity notification handed to
// the presentation layer. Endpoint names the connected target and is
// empty on disconnect.
type StateChange struct {
	Connected bool
	Endpoint  string
}

// Dialer establishes a Link to one endpoint.
type Dialer func(endpoint string) (Link, error)

// Supervisor maintains at most one live Link in the slot. Each cycle it
// either probes the existing Link with a single non-blocking read or
// attempts to connect to the current candidate endpoint, advancing
// round-robin on failure. State-change notifications fire only on
// transitions, never on every cycle.
type Supervisor struct {
	slot      *Slot
	endpoints []string
	dial      Dialer
	interval  time.Duration
	logger    customlog.Logger
	notify    chan StateChange

	idx       int
	lastState bool

	mu      sync.Mutex
	running bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewSupervisor creates a supervisor over the given slot and candidate
// endpoints. The endpoint list is immutable after startup.
func NewSupervisor(slot *Slot, endpoints []string, dial Dialer, interval time.Duration, logger customlog.Logger) *Supervisor {
	if interval <= 0 {
		interval = DefaultSupervisorInterval
	}
	return &Supervisor{
		slot:      slot,
		endpoints: endpoints,
		dial:      dial,
		interval:  interval,
		logger:    logger,
		notify:    make(chan StateChange, stateChangeQueueSize),
	}
}

// Notifications returns the one-way state-change channel consumed by
// the presentation layer.
func (s *Supervisor) Notifications() <-chan StateChange {
	return s.notify
}

// Cycle runs one supervision iteration.
func (s *Supervisor) Cycle() {
	var connected bool
	var endpoint string

	if s.slot.Present() {
		res, _, err := s.slot.TryRead()
		// Message and WouldBlock both mean the link is alive; anything
		// else already cleared the slot.
		connected = err == nil && res != ReadDisconnected
		if connected {
			endpoint = s.slot.Endpoint()
		} else {
			s.logger.Infof("Link lost")
		}
	} else {
		addr := s.endpoints[s.idx]
		s.logger.Infof("Trying to connect to: %s", addr)
		l, err := s.dial(addr)
		if err != nil {
			s.logger.Debugf("Connection to %s failed: %v", addr, err)
			s.idx = (s.idx + 1) % len(s.endpoints)
		} else {
			s.slot.Replace(l)
			connected = true
			endpoint = addr
			s.logger.Infof("Connected to %s", addr)
		}
	}

	if connected != s.lastState {
		s.publish(StateChange{Connected: connected, Endpoint: endpoint})
		s.lastState = connected
	}
}

func (s *Supervisor) publish(sc StateChange) {
	select {
	case s.notify <- sc:
	default:
		s.logger.Warnf("State-change queue full, dropping notification")
	}
}

// Start launches the supervision loop.
func (s *Supervisor) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.quit = make(chan struct{})
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			s.Cycle()
			select {
			case <-ticker.C:
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts the supervision loop and drops the current Link.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.quit)
	s.mu.Unlock()

	s.wg.Wait()
	s.slot.Clear()
}
