package timeline

// SpeedSteps are the reading speeds the stepper cycles through, in
// words per minute.
var SpeedSteps = []int{150, 200, 250, 300, 400, 500, 600}

// NextSpeed returns the step above wpm, or the top step when already at
// or past it.
func NextSpeed(wpm int) int {
	for _, s := range SpeedSteps {
		if s > wpm {
			return s
		}
	}
	return SpeedSteps[len(SpeedSteps)-1]
}

// PrevSpeed returns the step below wpm, or the bottom step when already
// at or below it.
func PrevSpeed(wpm int) int {
	for i := len(SpeedSteps) - 1; i >= 0; i-- {
		if SpeedSteps[i] < wpm {
			return SpeedSteps[i]
		}
	}
	return SpeedSteps[0]
}

// SpeedLabel names a reading speed for display.
func SpeedLabel(wpm int) string {
	switch {
	case wpm <= 150:
		return "Relaxed"
	case wpm <= 300:
		return "Normal"
	case wpm <= 450:
		return "Fast"
	default:
		return "Speed"
	}
}
