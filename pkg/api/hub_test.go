package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wildrobo/teleop/pkg/input"
	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/operator"
)

func TestHubAppliesUpdates(t *testing.T) {
	updates := make(chan operator.StateUpdate, 16)
	hub := NewHub(updates, customlog.NewNopLogger())

	hub.apply(operator.StateUpdate{Kind: operator.UpdateConnection, Connected: true, Endpoint: "127.0.0.1:5000"})
	hub.apply(operator.StateUpdate{Kind: operator.UpdateAxis, Axis: input.LeftStickX, Value: 0.5})
	hub.apply(operator.StateUpdate{Kind: operator.UpdateButton, Button: input.South, Pressed: true})
	hub.apply(operator.StateUpdate{Kind: operator.UpdateTelemetry, Telemetry: "ACK\n"})
	hub.apply(operator.StateUpdate{Kind: operator.UpdatePingRTT, RTT: 15 * time.Millisecond})

	state := hub.Snapshot()
	assert.True(t, state.Connected)
	assert.Equal(t, "127.0.0.1:5000", state.Endpoint)
	assert.Equal(t, 0.5, state.Axes["lx"])
	assert.True(t, state.Buttons["South"])
	assert.Equal(t, "ACK\n", state.Telemetry)
	assert.Equal(t, 15.0, state.PingMs)
}

func TestHubDisconnectClearsEndpoint(t *testing.T) {
	hub := NewHub(make(chan operator.StateUpdate), customlog.NewNopLogger())

	hub.apply(operator.StateUpdate{Kind: operator.UpdateConnection, Connected: true, Endpoint: "127.0.0.1:5000"})
	hub.apply(operator.StateUpdate{Kind: operator.UpdateConnection, Connected: false})

	state := hub.Snapshot()
	assert.False(t, state.Connected)
	assert.Equal(t, "", state.Endpoint)
}

func TestHubConsumesChannel(t *testing.T) {
	updates := make(chan operator.StateUpdate, 16)
	hub := NewHub(updates, customlog.NewNopLogger())
	hub.Start()
	defer hub.Stop()

	updates <- operator.StateUpdate{Kind: operator.UpdateConnection, Connected: true, Endpoint: "a:5000"}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Snapshot().Connected {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, hub.Snapshot().Connected)
}

func TestHubSnapshotIsACopy(t *testing.T) {
	hub := NewHub(make(chan operator.StateUpdate), customlog.NewNopLogger())

	state := hub.Snapshot()
	state.Axes["lx"] = 0.9
	state.Buttons["South"] = true

	assert.Equal(t, 0.0, hub.Snapshot().Axes["lx"])
	assert.False(t, hub.Snapshot().Buttons["South"])
}
