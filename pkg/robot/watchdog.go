package robot

import (
	"sync"
	"time"

	customlog "github.com/wildrobo/teleop/pkg/log"
)

const watchdogCheckInterval = 100 * time.Millisecond

// Watchdog stops the drivetrain when the operator link goes quiet.
// Every inbound line refreshes it; once the gap since the last refresh
// exceeds the timeout the lapse action fires, exactly once per lapse.
type Watchdog struct {
	timeout  time.Duration
	actuator Actuator
	logger   customlog.Logger

	mu       sync.Mutex
	lastSeen time.Time
	lapsed   bool

	runMu   sync.Mutex
	running bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewWatchdog creates a watchdog that stops the actuator after timeout
// of link silence. The grace period starts at creation time.
func NewWatchdog(timeout time.Duration, actuator Actuator, logger customlog.Logger) *Watchdog {
	return &Watchdog{
		timeout:  timeout,
		actuator: actuator,
		logger:   logger,
		lastSeen: time.Now(),
	}
}

// Touch records link activity.
func (w *Watchdog) Touch() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastSeen = time.Now()
	if w.lapsed {
		w.lapsed = false
		w.logger.Infof("Operator link restored")
	}
}

// Check runs one watchdog evaluation at the given instant.
func (w *Watchdog) Check(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.lapsed || now.Sub(w.lastSeen) <= w.timeout {
		return
	}
	w.lapsed = true
	w.logger.Warnf("Operator link silent for %v, stopping all motors", w.timeout)
	w.actuator.Stop()
}

// Lapsed reports whether the watchdog is currently tripped.
func (w *Watchdog) Lapsed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lapsed
}

// Start launches the periodic check loop.
func (w *Watchdog) Start() {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if w.running {
		return
	}
	w.running = true
	w.quit = make(chan struct{})
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(watchdogCheckInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				w.Check(now)
			case <-w.quit:
				return
			}
		}
	}()
}

// Stop halts the check loop.
func (w *Watchdog) Stop() {
	w.runMu.Lock()
	if !w.running {
		w.runMu.Unlock()
		return
	}
	w.running = false
	close(w.quit)
	w.runMu.Unlock()

	w.wg.Wait()
}
