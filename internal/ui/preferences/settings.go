package preferences

import (
	"time"

	"blinkrest/internal/core/model"
	"blinkrest/internal/voice/gemini"
)

// Settings defines editable user preferences.
type Settings struct {
	ExerciseDuration time.Duration
	VoiceEnabled     bool
	VoiceName        string
	VoiceModel       string
	LogLevel         string
	LaunchAtLogin    bool
}

// DefaultSettings returns default settings for BlinkRest.
func DefaultSettings() Settings {
	return Settings{
		ExerciseDuration: 2 * time.Minute,
		VoiceEnabled:     true,
		VoiceName:        gemini.DefaultVoiceName,
		VoiceModel:       gemini.DefaultModel,
		LogLevel:         "info",
		LaunchAtLogin:    false,
	}
}

// ExerciseRoutine converts settings to the blinking routine.
func (settings Settings) ExerciseRoutine() model.Routine {
	return model.BlinkingExercise(settings.ExerciseDuration)
}

// PalmingRoutine returns the palming routine. Its checkpoints are fixed, so
// its length is not configurable.
func (settings Settings) PalmingRoutine() model.Routine {
	return model.Palming()
}
