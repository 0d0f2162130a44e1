package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"blinkrest/internal/core/model"
	"blinkrest/internal/voice"

	"github.com/google/uuid"
)

// ErrClosed indicates the session has been exited and cannot be restarted.
var ErrClosed = errors.New("session closed")

// Config contains runtime options for an Engine.
type Config struct {
	TickInterval time.Duration
	NewTicker    func(time.Duration) Ticker
	Logger       *slog.Logger
}

// Engine drives a timed guided session at one-second resolution.
//
// Every armed run carries a generation. Ticks and state changes from an older
// generation are dropped, so nothing from a torn down run can touch the
// current one.
type Engine struct {
	mu          sync.Mutex
	routine     model.Routine
	options     Config
	speaker     voice.Speaker
	logger      *slog.Logger
	id          string
	checkpoints *checkpointSet

	remaining      int
	phaseIndex     int
	phaseRemaining int
	instruction    string
	finished       bool

	generation   uint64
	stopCh       chan struct{}
	speechCtx    context.Context
	cancelSpeech context.CancelFunc
	events       []chan Event
	running      bool
	closed       bool
}

// New creates an Engine for the routine. The session does not tick until Start.
func New(routine model.Routine, speaker voice.Speaker, options Config) (*Engine, error) {
	if err := routine.Validate(); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.NewTicker == nil {
		options.NewTicker = NewTimeTicker
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if speaker == nil {
		speaker = voice.Nop{}
	}

	id := uuid.NewString()
	engine := &Engine{
		routine: routine,
		options: options,
		speaker: speaker,
		id:      id,
		logger:  options.Logger.With("session_id", id, "routine", routine.Name),
	}
	if routine.Kind() == model.KindCheckpoint {
		engine.checkpoints = newCheckpointSet(routine.Checkpoints)
	}
	engine.resetLocked()
	return engine, nil
}

// ID returns the session identifier used in logs.
func (engine *Engine) ID() string {
	return engine.id
}

// Subscribe registers a new observer channel. Channels are closed on Exit.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Start arms the tick loop and speaks the opening instruction.
// Calling Start on a running session does nothing.
func (engine *Engine) Start() error {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return ErrClosed
	}
	if engine.running {
		return nil
	}
	engine.armLocked()
	return nil
}

// Restart resets the session to its initial state and starts it again.
func (engine *Engine) Restart() error {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return ErrClosed
	}
	engine.haltLocked()
	engine.cancelSpeechLocked()
	engine.mu.Unlock()

	engine.speaker.Stop()

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return ErrClosed
	}
	engine.logger.Info("session restarted")
	engine.armLocked()
	return nil
}

// Exit halts ticking, silences speech and closes observers. Safe to call repeatedly.
func (engine *Engine) Exit() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.haltLocked()
	engine.cancelSpeechLocked()
	engine.generation++
	engine.emitLocked(Event{
		Type:       EventExited,
		Generation: engine.generation,
		Snapshot:   engine.snapshotLocked(),
		At:         time.Now(),
	})
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	engine.speaker.Stop()
	engine.logger.Info("session exited")

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// armLocked tears down any previous run before starting a new one, so at most
// one tick loop and one speech context exist at a time.
func (engine *Engine) armLocked() {
	engine.haltLocked()
	engine.cancelSpeechLocked()
	engine.generation++
	engine.resetLocked()
	engine.stopCh = make(chan struct{})
	engine.speechCtx, engine.cancelSpeech = context.WithCancel(context.Background())
	engine.running = true

	now := time.Now()
	engine.emitLocked(Event{
		Type:       EventStarted,
		Generation: engine.generation,
		Snapshot:   engine.snapshotLocked(),
		At:         now,
	})
	engine.announceLocked(engine.openingLocked(now), now)
	engine.logger.Info("session started", "total_seconds", engine.routine.TotalSeconds)

	ticker := engine.options.NewTicker(engine.options.TickInterval)
	go engine.run(engine.generation, engine.stopCh, ticker)
}

func (engine *Engine) openingLocked(now time.Time) string {
	parts := []string{engine.routine.Intro}
	if engine.checkpoints == nil {
		parts = append(parts, engine.routine.Cycle[0].Instruction)
		return joinSpeech(parts)
	}
	for _, step := range engine.checkpoints.reach(engine.remaining) {
		engine.emitCheckpointLocked(step, now)
		parts = append(parts, step.Voice)
	}
	return joinSpeech(parts)
}

func (engine *Engine) run(generation uint64, stopCh chan struct{}, ticker Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C():
			engine.tick(generation, tickTime)
		}
	}
}

func (engine *Engine) tick(generation uint64, now time.Time) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if generation != engine.generation || !engine.running {
		return
	}

	engine.remaining--
	if engine.remaining <= 0 {
		engine.remaining = 0
		engine.finished = true
		engine.haltLocked()
		engine.emitLocked(Event{
			Type:       EventFinished,
			Generation: generation,
			Snapshot:   engine.snapshotLocked(),
			At:         now,
		})
		engine.emitTickLocked(now)
		engine.logger.Info("session finished")
		return
	}

	if engine.checkpoints == nil {
		engine.advanceCycleLocked(now)
	} else {
		engine.advanceCheckpointsLocked(now)
	}
	engine.emitTickLocked(now)
}

func (engine *Engine) advanceCycleLocked(now time.Time) {
	index, remaining, advanced := NextPhase(engine.routine.Cycle, engine.phaseIndex, engine.phaseRemaining)
	engine.phaseIndex = index
	engine.phaseRemaining = remaining
	if !advanced {
		return
	}
	phase := engine.routine.Cycle[index]
	engine.instruction = phase.Instruction
	engine.emitLocked(Event{
		Type:       EventPhase,
		Generation: engine.generation,
		Snapshot:   engine.snapshotLocked(),
		At:         now,
	})
	engine.logger.Debug("phase changed", "phase", phase.Phase, "index", index)
	engine.announceLocked(phase.Instruction, now)
}

func (engine *Engine) advanceCheckpointsLocked(now time.Time) {
	crossed := engine.checkpoints.reach(engine.remaining)
	if len(crossed) == 0 {
		return
	}
	parts := make([]string, 0, len(crossed))
	for _, step := range crossed {
		engine.emitCheckpointLocked(step, now)
		parts = append(parts, step.Voice)
	}
	engine.announceLocked(joinSpeech(parts), now)
}

func (engine *Engine) emitCheckpointLocked(step model.Checkpoint, now time.Time) {
	engine.instruction = ActiveCheckpoint(engine.routine.Checkpoints, engine.remaining).Text
	engine.emitLocked(Event{
		Type:       EventCheckpoint,
		Generation: engine.generation,
		Snapshot:   engine.snapshotLocked(),
		Text:       step.Text,
		At:         now,
	})
	engine.logger.Debug("checkpoint reached", "threshold", step.Threshold)
}

// announceLocked hands the text to the speaker without waiting for it.
func (engine *Engine) announceLocked(text string, now time.Time) {
	if text == "" {
		return
	}
	engine.emitLocked(Event{
		Type:       EventAnnounce,
		Generation: engine.generation,
		Snapshot:   engine.snapshotLocked(),
		Text:       text,
		At:         now,
	})
	go engine.speaker.Speak(engine.speechCtx, text)
}

func (engine *Engine) emitTickLocked(now time.Time) {
	engine.emitLocked(Event{
		Type:       EventTick,
		Generation: engine.generation,
		Snapshot:   engine.snapshotLocked(),
		At:         now,
	})
}

func (engine *Engine) resetLocked() {
	engine.remaining = engine.routine.TotalSeconds
	engine.finished = false
	engine.phaseIndex = 0
	engine.phaseRemaining = 0
	if engine.checkpoints != nil {
		engine.checkpoints.reset()
		engine.instruction = ActiveCheckpoint(engine.routine.Checkpoints, engine.remaining).Text
		return
	}
	engine.phaseRemaining = engine.routine.Cycle[0].Duration
	engine.instruction = engine.routine.Cycle[0].Instruction
}

func (engine *Engine) haltLocked() {
	if !engine.running {
		return
	}
	close(engine.stopCh)
	engine.running = false
}

func (engine *Engine) cancelSpeechLocked() {
	if engine.cancelSpeech != nil {
		engine.cancelSpeech()
		engine.cancelSpeech = nil
	}
}

func (engine *Engine) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		Routine:                      engine.routine.Name,
		Kind:                         engine.routine.Kind(),
		TotalSeconds:                 engine.routine.TotalSeconds,
		TotalSecondsRemaining:        engine.remaining,
		CurrentPhaseIndex:            engine.phaseIndex,
		CurrentPhaseSecondsRemaining: engine.phaseRemaining,
		Instruction:                  engine.instruction,
		Finished:                     engine.finished,
	}
	if engine.checkpoints == nil {
		snapshot.Phase = engine.routine.Cycle[engine.phaseIndex]
	}
	return snapshot
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func joinSpeech(parts []string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " ")
}
