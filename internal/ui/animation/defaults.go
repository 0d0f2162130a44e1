package animation

import (
	"time"

	"blinkrest/internal/core/model"
)

// DefaultConfig returns the timings used by the exercise screens.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 16 * time.Millisecond,
		EaseDuration:  800 * time.Millisecond,
		Targets: Targets{
			model.PhaseOpen:  1,
			model.PhaseClose: 0.15,
			model.PhasePause: 0.08,
		},
		BreathePeriod: 4 * time.Second,
		BreatheLow:    0.05,
		BreatheHigh:   0.2,
		BlinkClosedDuration: Range{
			Min: 150 * time.Millisecond,
			Max: 200 * time.Millisecond,
		},
		BlinkInterval: Range{
			Min: 3 * time.Second,
			Max: 8 * time.Second,
		},
		DoubleBlinkChance: 0.12,
		DoubleBlinkGap: Range{
			Min: 50 * time.Millisecond,
			Max: 100 * time.Millisecond,
		},
	}
}
