package operator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildrobo/teleop/pkg/link"
	customlog "github.com/wildrobo/teleop/pkg/log"
)

func TestTelemetryReaderPublishesChunk(t *testing.T) {
	lnk := newRecordingLink()
	lnk.readRes = link.ReadMessage
	lnk.readData = []byte("ACK\n")

	slot := &link.Slot{}
	slot.Replace(lnk)
	updates := make(chan StateUpdate, 16)

	pingSent := time.Now().Add(-20 * time.Millisecond)
	r := NewTelemetryReader(slot, updates, func() time.Time { return pingSent }, customlog.NewNopLogger())

	r.Poll()

	notes := drainUpdates(updates)
	require.Len(t, notes, 2)
	assert.Equal(t, UpdateTelemetry, notes[0].Kind)
	assert.Equal(t, "ACK\n", notes[0].Telemetry)
	assert.Equal(t, UpdatePingRTT, notes[1].Kind)
	assert.GreaterOrEqual(t, notes[1].RTT, 20*time.Millisecond)
}

func TestTelemetryReaderSplitAck(t *testing.T) {
	lnk := newRecordingLink()
	slot := &link.Slot{}
	slot.Replace(lnk)
	updates := make(chan StateUpdate, 16)

	r := NewTelemetryReader(slot, updates, func() time.Time { return time.Now() }, customlog.NewNopLogger())

	// ACK split across two reads: only the completing chunk yields RTT.
	lnk.readRes = link.ReadMessage
	lnk.readData = []byte("AC")
	r.Poll()

	lnk.readRes = link.ReadMessage
	lnk.readData = []byte("K\n")
	r.Poll()

	var rtts, chunks int
	for _, u := range drainUpdates(updates) {
		switch u.Kind {
		case UpdatePingRTT:
			rtts++
		case UpdateTelemetry:
			chunks++
		}
	}
	assert.Equal(t, 1, rtts)
	assert.Equal(t, 2, chunks)
}

func TestTelemetryReaderIdleWithoutLink(t *testing.T) {
	updates := make(chan StateUpdate, 16)
	r := NewTelemetryReader(&link.Slot{}, updates, nil, customlog.NewNopLogger())

	r.Poll()

	assert.Empty(t, drainUpdates(updates))
}

func TestTelemetryReaderNoRTTWithoutPingClock(t *testing.T) {
	lnk := newRecordingLink()
	lnk.readRes = link.ReadMessage
	lnk.readData = []byte("ACK\n")

	slot := &link.Slot{}
	slot.Replace(lnk)
	updates := make(chan StateUpdate, 16)

	r := NewTelemetryReader(slot, updates, nil, customlog.NewNopLogger())
	r.Poll()

	for _, u := range drainUpdates(updates) {
		assert.NotEqual(t, UpdatePingRTT, u.Kind)
	}
}
