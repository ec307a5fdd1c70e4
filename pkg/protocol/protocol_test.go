package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingMessage(t *testing.T) {
	assert.Equal(t, "PING\n", PingMessage())
}

func TestButtonMessage(t *testing.T) {
	assert.Equal(t, "BTN South DOWN\n", ButtonMessage("South", true))
	assert.Equal(t, "BTN LeftTrigger UP\n", ButtonMessage("LeftTrigger", false))
}

func TestJoysticksMessage(t *testing.T) {
	assert.Equal(t, "JOYSTICKS 0,0,0,0\n", JoysticksMessage(0, 0, 0, 0))
	assert.Equal(t, "JOYSTICKS 0.5,-1,0.25,0\n", JoysticksMessage(0.5, -1, 0.25, 0))
}

func TestJoysticksMessageRoundTrip(t *testing.T) {
	msg := JoysticksMessage(0.1, -0.9, 1, 0)
	var dec LineDecoder
	lines := dec.Feed([]byte(msg))
	require.Len(t, lines, 1)

	axes, err := ParseJoysticks(lines[0][len("JOYSTICKS "):])
	require.NoError(t, err)
	assert.Equal(t, [4]float64{0.1, -0.9, 1, 0}, axes)
}

func TestParseJoysticks(t *testing.T) {
	axes, err := ParseJoysticks("0.1,0.2,0.3,0.4")
	require.NoError(t, err)
	assert.Equal(t, [4]float64{0.1, 0.2, 0.3, 0.4}, axes)
}

func TestParseJoysticksWrongCount(t *testing.T) {
	_, err := ParseJoysticks("1,2,3")
	assert.ErrorIs(t, err, ErrBadJoystickPayload)

	_, err = ParseJoysticks("1,2,3,4,5")
	assert.ErrorIs(t, err, ErrBadJoystickPayload)
}

func TestParseJoysticksNonNumeric(t *testing.T) {
	_, err := ParseJoysticks("1,2,x,4")
	assert.ErrorIs(t, err, ErrBadJoystickPayload)
}
