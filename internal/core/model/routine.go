package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRoutine indicates a routine definition that cannot drive a session.
var ErrInvalidRoutine = errors.New("invalid routine")

// Phase identifies one segment of a blinking cycle.
type Phase string

const (
	PhaseOpen  Phase = "OPEN"
	PhaseClose Phase = "CLOSE"
	PhasePause Phase = "PAUSE"
)

// PhaseInfo is one immutable step of a repeating cycle.
type PhaseInfo struct {
	Phase       Phase
	Duration    int
	Instruction string
}

// Checkpoint fires a one-shot announcement when the remaining time reaches Threshold.
type Checkpoint struct {
	Threshold int
	Voice     string
	Text      string
}

// Kind distinguishes the two session variants.
type Kind string

const (
	KindCycle      Kind = "cycle"
	KindCheckpoint Kind = "checkpoint"
)

// Routine describes a timed guided session.
type Routine struct {
	Name         string
	TotalSeconds int
	// Intro is spoken together with the opening instruction.
	Intro       string
	Cycle       []PhaseInfo
	Checkpoints []Checkpoint
}

// Kind reports which variant drives the routine.
func (routine Routine) Kind() Kind {
	if len(routine.Checkpoints) > 0 {
		return KindCheckpoint
	}
	return KindCycle
}

// Validate checks the routine invariants.
func (routine Routine) Validate() error {
	if routine.TotalSeconds <= 0 {
		return fmt.Errorf("%w: total duration %d must be positive", ErrInvalidRoutine, routine.TotalSeconds)
	}
	if len(routine.Cycle) > 0 && len(routine.Checkpoints) > 0 {
		return fmt.Errorf("%w: %s defines both a cycle and checkpoints", ErrInvalidRoutine, routine.Name)
	}
	if len(routine.Cycle) == 0 && len(routine.Checkpoints) == 0 {
		return fmt.Errorf("%w: %s defines no phases", ErrInvalidRoutine, routine.Name)
	}
	for index, info := range routine.Cycle {
		if info.Duration <= 0 {
			return fmt.Errorf("%w: phase %d duration %d must be positive", ErrInvalidRoutine, index, info.Duration)
		}
	}
	seen := make(map[int]bool, len(routine.Checkpoints))
	for _, checkpoint := range routine.Checkpoints {
		if checkpoint.Threshold <= 0 || checkpoint.Threshold > routine.TotalSeconds {
			return fmt.Errorf("%w: checkpoint threshold %d outside (0, %d]", ErrInvalidRoutine, checkpoint.Threshold, routine.TotalSeconds)
		}
		if seen[checkpoint.Threshold] {
			return fmt.Errorf("%w: duplicate checkpoint threshold %d", ErrInvalidRoutine, checkpoint.Threshold)
		}
		seen[checkpoint.Threshold] = true
	}
	return nil
}
