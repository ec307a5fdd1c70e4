package robot

import (
	"fmt"

	"github.com/wildrobo/teleop/pkg/drive"
	customlog "github.com/wildrobo/teleop/pkg/log"
	"github.com/wildrobo/teleop/pkg/protocol"
)

// EventPublisher receives robot-side events for external observers.
// Satisfied by telemetry.Publisher; nil disables publishing.
type EventPublisher interface {
	PublishJSON(msgType string, data interface{}) error
}

// Telemetry event types
const (
	EventMotorSpeeds = "MOTOR_SPEEDS"
	EventButton      = "BUTTON_EVENT"
)

// RegisterHandlers binds the robot command set to a dispatcher.
// Handler errors are recoverable parse failures; the session logs them
// and carries on.
func RegisterHandlers(d *protocol.Dispatcher, actuator Actuator, events EventPublisher, logger customlog.Logger) {
	// Liveness only; the session already refreshed the watchdog.
	d.RegisterHandlerFunc(protocol.CmdPing, func(args []string) error {
		return nil
	})

	d.RegisterHandlerFunc(protocol.CmdButtonPress, func(args []string) error {
		logger.Infof("Executing robot action!")
		return nil
	})

	d.RegisterHandlerFunc(protocol.CmdJoysticks, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: expected one payload token, got %d", protocol.ErrBadJoystickPayload, len(args))
		}
		axes, err := protocol.ParseJoysticks(args[0])
		if err != nil {
			return err
		}

		speeds := drive.Mix(axes[0], axes[1], axes[2], axes[3])
		actuator.SetSpeeds(speeds)

		if events != nil {
			if err := events.PublishJSON(EventMotorSpeeds, speeds); err != nil {
				logger.Warnf("Failed to publish motor speeds: %v", err)
			}
		}
		return nil
	})

	d.RegisterHandlerFunc(protocol.CmdButton, func(args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("malformed BTN command: expected name and action, got %d tokens", len(args))
		}
		name, action := args[0], args[1]
		logger.Infof("Button Event: %s %s", name, action)

		if events != nil {
			if err := events.PublishJSON(EventButton, map[string]string{
				"button": name,
				"action": action,
			}); err != nil {
				logger.Warnf("Failed to publish button event: %v", err)
			}
		}
		return nil
	})
}
