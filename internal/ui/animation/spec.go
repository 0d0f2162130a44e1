package animation

import "blinkrest/internal/core/model"

// Openness is how far the drawn eye is open, from 0 (shut) to 1 (wide).
type Openness float32

const (
	Shut Openness = 0
	Wide Openness = 1
)

// Targets maps each exercise phase to the eye openness it settles on.
type Targets map[model.Phase]Openness

// Target returns the openness for phase, or Wide for unknown phases.
func (targets Targets) Target(phase model.Phase) Openness {
	if value, ok := targets[phase]; ok {
		return value
	}
	return Wide
}

// Ease interpolates between from and to with a smooth in-out curve. progress
// is clamped to [0, 1].
func Ease(from, to Openness, progress float64) Openness {
	switch {
	case progress <= 0:
		return from
	case progress >= 1:
		return to
	}
	var curve float64
	if progress < 0.5 {
		curve = 2 * progress * progress
	} else {
		curve = 1 - 2*(1-progress)*(1-progress)
	}
	return from + Openness(float64(to-from)*curve)
}
