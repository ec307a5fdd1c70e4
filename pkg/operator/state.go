// Package operator runs the driver-station side of the teleop link:
// the fixed-rate input/heartbeat tick and the telemetry reader. Both
// report to the presentation layer exclusively through a one-way
// StateUpdate channel; they never touch rendering state themselves.
package operator

import (
	"time"

	"github.com/wildrobo/teleop/pkg/input"
)

// UpdateKind discriminates presentation signal updates.
type UpdateKind int

const (
	// UpdateConnection carries the connected flag plus the endpoint.
	UpdateConnection UpdateKind = iota
	// UpdateAxis carries one axis value as shown to the driver
	// (Y axes already sign-inverted).
	UpdateAxis
	// UpdateButton carries one button edge.
	UpdateButton
	// UpdateTelemetry carries one raw inbound chunk as text.
	UpdateTelemetry
	// UpdatePingRTT carries the latest heartbeat round trip.
	UpdatePingRTT
)

// StateUpdate is one presentation-layer signal change.
type StateUpdate struct {
	Kind      UpdateKind
	Connected bool
	Endpoint  string
	Axis      input.Axis
	Value     float64
	Button    input.Button
	Pressed   bool
	Telemetry string
	RTT       time.Duration
}

// publish forwards an update without ever blocking a control loop; a
// saturated presentation layer loses updates rather than stalling input.
func publish(updates chan<- StateUpdate, u StateUpdate) {
	select {
	case updates <- u:
	default:
	}
}
