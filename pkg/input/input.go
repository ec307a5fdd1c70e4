// Package input models the operator's gamepad as a stream of discrete
// events. The physical driver binding lives outside this module; it
// feeds events into a Source that the driver-station tick loop drains.
package input

// Axis identifies one of the four joystick axes.
type Axis int

const (
	LeftStickX Axis = iota
	LeftStickY
	RightStickX
	RightStickY
)

// Button identifies a gamepad button. The names follow the common
// directional layout and are used verbatim on the wire (BTN South DOWN).
type Button int

const (
	South Button = iota
	East
	West
	North
	LeftTrigger
	RightTrigger
)

var buttonNames = map[Button]string{
	South:        "South",
	East:         "East",
	West:         "West",
	North:        "North",
	LeftTrigger:  "LeftTrigger",
	RightTrigger: "RightTrigger",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return "Unknown"
}

// EventKind discriminates the two hardware event shapes.
type EventKind int

const (
	EventAxis EventKind = iota
	EventButton
)

// Event is one discrete hardware event: either an axis value change or
// a button edge. Button edges are never debounced or coalesced.
type Event struct {
	Kind    EventKind
	Axis    Axis
	Value   float64
	Button  Button
	Pressed bool
}

// AxisChanged builds an axis-change event carrying the raw device value.
func AxisChanged(axis Axis, value float64) Event {
	return Event{Kind: EventAxis, Axis: axis, Value: value}
}

// ButtonEdge builds a button transition event.
func ButtonEdge(button Button, pressed bool) Event {
	return Event{Kind: EventButton, Button: button, Pressed: pressed}
}

// Source is the boundary to the physical gamepad driver. NextEvent
// performs one non-blocking poll: it returns the next pending event and
// true, or a zero event and false when nothing is queued.
type Source interface {
	NextEvent() (Event, bool)
}

// ChannelSource adapts a buffered channel to the Source interface.
// Driver bindings push events from their own goroutine; pushes into a
// full queue are dropped rather than blocking the hardware thread.
type ChannelSource struct {
	events chan Event
}

// NewChannelSource creates a ChannelSource holding up to size pending events.
func NewChannelSource(size int) *ChannelSource {
	return &ChannelSource{events: make(chan Event, size)}
}

// Push queues an event, discarding it if the queue is full.
func (s *ChannelSource) Push(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	default:
		return false
	}
}

// NextEvent implements Source.
func (s *ChannelSource) NextEvent() (Event, bool) {
	select {
	case ev := <-s.events:
		return ev, true
	default:
		return Event{}, false
	}
}
