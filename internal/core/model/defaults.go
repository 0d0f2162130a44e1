package model

import "time"

const (
	ExerciseName    = "blinking"
	PalmingName     = "palming"
	ExerciseSeconds = 120
	PalmingSeconds  = 180
)

// StabilityInstruction is spoken before the stability test stopwatch starts.
const StabilityInstruction = "Please blink twice now. Then, keep your eyes open and stare at the target until you feel discomfort."

// BlinkCycle is the conscious blinking cycle.
var BlinkCycle = []PhaseInfo{
	{Phase: PhaseClose, Instruction: "Close eyes slowly", Duration: 2},
	{Phase: PhasePause, Instruction: "Pause", Duration: 2},
	{Phase: PhaseOpen, Instruction: "Open gently", Duration: 2},
}

// PalmingSteps are the palming checkpoints, largest threshold first.
var PalmingSteps = []Checkpoint{
	{Threshold: 180, Text: "Rub your palms together vigorously to generate warmth.", Voice: "Start by rubbing your palms together until they feel warm."},
	{Threshold: 170, Text: "Cup your eyes gently. Avoid pressing the eyeballs.", Voice: "Now, gently cup your palms over your closed eyes. Ensure no light gets in, but do not press against your eyelids."},
	{Threshold: 150, Text: "Breathe deeply and sink into the darkness.", Voice: "Focus on the darkness. Breathe slowly and let your eye muscles completely relax."},
	{Threshold: 60, Text: "Almost there. Feel the tension leaving your brow.", Voice: "Halfway through. Let go of any tension in your forehead and jaw."},
	{Threshold: 10, Text: "Gently remove your hands and blink softly.", Voice: "The session is ending. Gently remove your hands and blink slowly as you adjust to the light."},
}

// BlinkingExercise returns the blinking routine for the given total duration.
// Non-positive durations fall back to two minutes.
func BlinkingExercise(total time.Duration) Routine {
	seconds := int(total / time.Second)
	if seconds <= 0 {
		seconds = ExerciseSeconds
	}
	return Routine{
		Name:         ExerciseName,
		TotalSeconds: seconds,
		Intro:        "Starting your blinking exercise. Keep your eyes open and relax.",
		Cycle:        BlinkCycle,
	}
}

// Palming returns the three-minute palming routine.
func Palming() Routine {
	return Routine{
		Name:         PalmingName,
		TotalSeconds: PalmingSeconds,
		Intro:        "Welcome to deep relaxation. Let's begin by warming your hands.",
		Checkpoints:  PalmingSteps,
	}
}
