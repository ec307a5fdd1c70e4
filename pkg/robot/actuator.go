// Package robot runs the robot-side agent: a multi-client TCP server
// whose sessions decode inbound command lines, a heartbeat watchdog,
// and the command handlers driving the mecanum drivetrain.
package robot

import (
	"github.com/wildrobo/teleop/pkg/drive"
	customlog "github.com/wildrobo/teleop/pkg/log"
)

// Actuator is the boundary to the motor hardware. The physical driver
// (PWM controllers, encoders) lives outside this module.
type Actuator interface {
	// SetSpeeds applies normalized wheel speeds.
	SetSpeeds(speeds drive.MotorSpeeds)
	// Stop halts all motors immediately.
	Stop()
}

// LogActuator is the default Actuator: it reports commanded speeds in
// the log and drives nothing. Useful on a bench without hardware.
type LogActuator struct {
	logger customlog.Logger
}

// NewLogActuator creates a log-only actuator.
func NewLogActuator(logger customlog.Logger) *LogActuator {
	return &LogActuator{logger: logger}
}

// SetSpeeds implements Actuator.
func (a *LogActuator) SetSpeeds(speeds drive.MotorSpeeds) {
	a.logger.Infof("Setting motor speeds: FL=%.2f, FR=%.2f, RL=%.2f, RR=%.2f",
		speeds[0], speeds[1], speeds[2], speeds[3])
}

// Stop implements Actuator.
func (a *LogActuator) Stop() {
	a.logger.Infof("All motors stopped")
}
