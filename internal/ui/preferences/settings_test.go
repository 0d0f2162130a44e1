package preferences

import (
	"testing"
	"time"

	"blinkrest/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func TestExerciseRoutineFollowsSettings(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, model.ExerciseSeconds, settings.ExerciseRoutine().TotalSeconds)

	settings.ExerciseDuration = 4 * time.Minute
	routine := settings.ExerciseRoutine()
	assert.Equal(t, 240, routine.TotalSeconds)
	assert.Equal(t, model.BlinkCycle, routine.Cycle)
	assert.Equal(t, model.PalmingSeconds, settings.PalmingRoutine().TotalSeconds)
}

func TestParsePositiveInt(t *testing.T) {
	value, ok := parsePositiveInt(" 3 ")
	assert.True(t, ok)
	assert.Equal(t, 3, value)

	_, ok = parsePositiveInt("0")
	assert.False(t, ok)
	_, ok = parsePositiveInt("two")
	assert.False(t, ok)
}
