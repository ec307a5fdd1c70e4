// Package drive converts joystick motion intent into wheel speeds for
// a four-wheel mecanum drivetrain.
package drive

import "math"

// MotorSpeeds holds normalized speeds for the four wheels, in order
// front-left, front-right, rear-left, rear-right. Each value is within
// [-1.0, 1.0] after normalization.
type MotorSpeeds [4]float64

// Mix computes mecanum wheel speeds from a joystick sample.
// lx strafes, ly drives forward/backward, rx rotates; ry is carried by
// the protocol but does not participate in the mix.
//
// If the raw mix exceeds unit magnitude on any wheel, all four speeds
// are divided by the peak so the commanded direction is preserved.
func Mix(lx, ly, rx, ry float64) MotorSpeeds {
	_ = ry

	speeds := MotorSpeeds{
		lx + ly + rx,
		-lx + ly - rx,
		-lx - ly + rx,
		lx - ly - rx,
	}

	peak := 0.0
	for _, s := range speeds {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	if peak > 1.0 {
		for i := range speeds {
			speeds[i] /= peak
		}
	}

	return speeds
}
