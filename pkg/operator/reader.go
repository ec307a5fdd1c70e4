package operator

import (
	"strings"
	"sync"
	"time"

	"github.com/wildrobo/teleop/pkg/link"
	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/protocol"
)

// readerInterval paces the telemetry poll loop.
const readerInterval = 50 * time.Millisecond

// TelemetryReader polls the shared Link slot for inbound bytes. Each
// raw chunk is surfaced to the presentation layer as opaque telemetry
// text; additionally the stream is framed so ACK lines can drive the
// heartbeat round-trip signal.
type TelemetryReader struct {
	slot    *link.Slot
	updates chan<- StateUpdate
	logger  customlog.Logger

	// pingTime supplies the send instant of the most recent heartbeat;
	// nil disables the RTT signal.
	pingTime func() time.Time

	decoder protocol.LineDecoder

	mu      sync.Mutex
	running bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewTelemetryReader creates a telemetry reader over the shared slot.
func NewTelemetryReader(slot *link.Slot, updates chan<- StateUpdate, pingTime func() time.Time, logger customlog.Logger) *TelemetryReader {
	return &TelemetryReader{
		slot:     slot,
		updates:  updates,
		pingTime: pingTime,
		logger:   logger,
	}
}

// Poll performs one read attempt and processes whatever arrived.
func (r *TelemetryReader) Poll() {
	res, data, err := r.slot.TryRead()
	if err != nil || res != link.ReadMessage {
		// Not connected, nothing pending, or the slot just dropped a
		// dead Link; the supervisor owns reconnection either way.
		return
	}

	publish(r.updates, StateUpdate{
		Kind:      UpdateTelemetry,
		Telemetry: strings.ToValidUTF8(string(data), "�"),
	})

	for _, line := range r.decoder.Feed(data) {
		if strings.TrimSpace(line) != protocol.CmdAck {
			continue
		}
		if r.pingTime == nil {
			continue
		}
		if sent := r.pingTime(); !sent.IsZero() {
			publish(r.updates, StateUpdate{
				Kind: UpdatePingRTT,
				RTT:  time.Since(sent),
			})
		}
	}
}

// Start launches the poll loop.
func (r *TelemetryReader) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.running = true
	r.quit = make(chan struct{})
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(readerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Poll()
			case <-r.quit:
				return
			}
		}
	}()
}

// Stop halts the poll loop.
func (r *TelemetryReader) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.quit)
	r.mu.Unlock()

	r.wg.Wait()
}
