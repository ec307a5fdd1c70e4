// Package protocol implements the newline-delimited ASCII command
// grammar spoken between the driver station and the robot.
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Common errors
var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrBadJoystickPayload = errors.New("invalid joystick payload")
)

// Command names (first token of a line)
const (
	CmdPing        = "PING"
	CmdButton      = "BTN"
	CmdButtonPress = "BUTTON_PRESS"
	CmdJoysticks   = "JOYSTICKS"
	CmdAck         = "ACK"
)

// Delimiter terminates every protocol message. No message may contain
// it anywhere else.
const Delimiter = '\n'

// Ack is the literal acknowledgment the robot sends per framed line.
const Ack = "ACK\n"

// PingMessage formats a liveness heartbeat.
func PingMessage() string {
	return CmdPing + "\n"
}

// ButtonMessage formats a discrete button transition.
func ButtonMessage(name string, pressed bool) string {
	action := "UP"
	if pressed {
		action = "DOWN"
	}
	return fmt.Sprintf("BTN %s %s\n", name, action)
}

// JoysticksMessage formats one tick's axis sample. The float values use
// Go's default numeric formatting.
func JoysticksMessage(lx, ly, rx, ry float64) string {
	return fmt.Sprintf("JOYSTICKS %v,%v,%v,%v\n", lx, ly, rx, ry)
}

// ParseJoysticks parses the payload token of a JOYSTICKS command into
// the four axis values. Anything other than exactly four comma-separated
// floats is rejected.
func ParseJoysticks(payload string) ([4]float64, error) {
	var axes [4]float64

	parts := strings.Split(payload, ",")
	if len(parts) != 4 {
		return axes, fmt.Errorf("%w: expected 4 values, got %d", ErrBadJoystickPayload, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return axes, fmt.Errorf("%w: bad value '%s'", ErrBadJoystickPayload, p)
		}
		axes[i] = v
	}

	return axes, nil
}
