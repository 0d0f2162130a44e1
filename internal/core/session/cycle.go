package session

import (
	"fmt"
	"sort"

	"blinkrest/internal/core/model"
)

// NextPhase applies one elapsed second to the cycle position. A phase spans
// exactly its declared duration; when its remaining seconds run out the next
// phase (wrapping) becomes current with its full duration.
func NextPhase(cycle []model.PhaseInfo, index, remaining int) (nextIndex, nextRemaining int, advanced bool) {
	remaining--
	if remaining > 0 {
		return index, remaining, false
	}
	nextIndex = (index + 1) % len(cycle)
	return nextIndex, cycle[nextIndex].Duration, true
}

// PhaseAt returns the cycle position after elapsed whole seconds.
func PhaseAt(cycle []model.PhaseInfo, elapsed int) (index, remaining int) {
	period := 0
	for _, info := range cycle {
		period += info.Duration
	}
	offset := elapsed % period
	for index, info := range cycle {
		if offset < info.Duration {
			return index, info.Duration - offset
		}
		offset -= info.Duration
	}
	return 0, cycle[0].Duration
}

// FormatClock renders whole seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// checkpointSet tracks which checkpoints of a palming-style routine have fired.
type checkpointSet struct {
	steps []model.Checkpoint
	fired []bool
}

func newCheckpointSet(steps []model.Checkpoint) *checkpointSet {
	sorted := append([]model.Checkpoint(nil), steps...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})
	return &checkpointSet{
		steps: sorted,
		fired: make([]bool, len(sorted)),
	}
}

func (set *checkpointSet) reset() {
	for index := range set.fired {
		set.fired[index] = false
	}
}

// reach marks every unfired checkpoint whose threshold is at or above
// remaining and returns them, largest threshold first.
func (set *checkpointSet) reach(remaining int) []model.Checkpoint {
	var crossed []model.Checkpoint
	for index, step := range set.steps {
		if set.fired[index] || remaining > step.Threshold {
			continue
		}
		set.fired[index] = true
		crossed = append(crossed, step)
	}
	return crossed
}

// ActiveCheckpoint returns the most recently crossed checkpoint: the one with
// the smallest threshold that is still at or above remaining. Before any
// checkpoint is crossed the first (largest threshold) one is returned.
func ActiveCheckpoint(steps []model.Checkpoint, remaining int) model.Checkpoint {
	var active model.Checkpoint
	found := false
	for _, step := range steps {
		if remaining > step.Threshold {
			continue
		}
		if !found || step.Threshold < active.Threshold {
			active = step
			found = true
		}
	}
	if found {
		return active
	}
	var first model.Checkpoint
	for index, step := range steps {
		if index == 0 || step.Threshold > first.Threshold {
			first = step
		}
	}
	return first
}

// Phrases lists every text a session of routine will announce, opening
// announcement first. Speakers use it to synthesize ahead of time.
func Phrases(routine model.Routine) []string {
	if routine.Kind() == model.KindCycle {
		phrases := []string{joinSpeech([]string{routine.Intro, routine.Cycle[0].Instruction})}
		for _, phase := range routine.Cycle {
			phrases = append(phrases, phase.Instruction)
		}
		return phrases
	}

	opening := []string{routine.Intro}
	var later []string
	for _, step := range newCheckpointSet(routine.Checkpoints).steps {
		if step.Threshold >= routine.TotalSeconds {
			opening = append(opening, step.Voice)
			continue
		}
		later = append(later, step.Voice)
	}
	return append([]string{joinSpeech(opening)}, later...)
}
