package input

// Sample holds the four axis values gathered during one polling tick,
// each clamped to [-1.0, 1.0]. Y axes are sign-inverted relative to the
// raw device value so that stick-up maps to a positive forward command.
//
// A Sample starts from all zeroes every tick and only axes that changed
// during the tick are written; an axis without an event this tick
// therefore reports 0.0 rather than its last true value. Downstream
// consumers depend on this exact behavior.
type Sample struct {
	LX, LY, RX, RY float64
}

// Apply folds one axis event into the sample. Button events are ignored.
func (s *Sample) Apply(ev Event) {
	if ev.Kind != EventAxis {
		return
	}
	switch ev.Axis {
	case LeftStickX:
		s.LX = clamp(ev.Value)
	case LeftStickY:
		s.LY = clamp(-ev.Value)
	case RightStickX:
		s.RX = clamp(ev.Value)
	case RightStickY:
		s.RY = clamp(-ev.Value)
	}
}

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}
