package session

import (
	"time"

	"blinkrest/internal/core/model"
)

// EventType defines the type of session event.
type EventType string

const (
	EventStarted    EventType = "started"
	EventTick       EventType = "tick"
	EventPhase      EventType = "phase_change"
	EventCheckpoint EventType = "checkpoint"
	EventAnnounce   EventType = "announce"
	EventFinished   EventType = "finished"
	EventExited     EventType = "exited"
)

// Event represents a session update for observers.
type Event struct {
	Type       EventType
	Generation uint64
	Snapshot   Snapshot
	// Text is the announced text for EventAnnounce.
	Text string
	At   time.Time
}

// Snapshot is a copy of the session state suitable for rendering.
type Snapshot struct {
	Routine                      string
	Kind                         model.Kind
	TotalSeconds                 int
	TotalSecondsRemaining        int
	CurrentPhaseIndex            int
	CurrentPhaseSecondsRemaining int
	Phase                        model.PhaseInfo
	// Instruction is the text to display: the current phase instruction or the
	// most recently crossed checkpoint text.
	Instruction string
	Finished    bool
}

// Progress returns the elapsed fraction of the session in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.TotalSeconds <= 0 {
		return 1
	}
	progress := 1 - float64(snapshot.TotalSecondsRemaining)/float64(snapshot.TotalSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// PhaseElapsed returns how many seconds of the current phase have been consumed.
func (snapshot Snapshot) PhaseElapsed() int {
	elapsed := snapshot.Phase.Duration - snapshot.CurrentPhaseSecondsRemaining
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
