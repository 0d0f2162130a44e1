package stability

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"blinkrest/internal/core/model"
	"blinkrest/internal/core/session"
	"blinkrest/internal/voice"

	"github.com/google/uuid"
)

var (
	// ErrNotRunning indicates the stopwatch cannot be stopped in its current phase.
	ErrNotRunning = errors.New("stopwatch not running")
	// ErrCancelled indicates the test was cancelled and discarded.
	ErrCancelled = errors.New("stability test cancelled")
)

// Phase is the stopwatch lifecycle stage.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePrep      Phase = "prep"
	PhaseRunning   Phase = "running"
	PhaseDone      Phase = "done"
	PhaseCancelled Phase = "cancelled"
)

const defaultSampleInterval = 50 * time.Millisecond

// EventType defines the type of stopwatch event.
type EventType string

const (
	EventPrep      EventType = "prep"
	EventRunning   EventType = "running"
	EventSample    EventType = "sample"
	EventDone      EventType = "done"
	EventCancelled EventType = "cancelled"
)

// Snapshot is a copy of the stopwatch state.
type Snapshot struct {
	Phase          Phase
	ElapsedSeconds float64
	Result         *Result
}

// Event represents a stopwatch update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Options contains runtime options for a Stopwatch.
type Options struct {
	SampleInterval time.Duration
	NewTicker      func(time.Duration) session.Ticker
	Clock          Clock
	Instruction    string
	Logger         *slog.Logger
}

// Stopwatch runs one stability test at a time: PREP while the setup
// instruction is spoken, RUNNING until the user reports discomfort, DONE with
// a classified result.
type Stopwatch struct {
	mu      sync.Mutex
	options Options
	speaker voice.Speaker
	logger  *slog.Logger

	phase   Phase
	started time.Time
	elapsed float64
	result  *Result

	generation uint64
	stopCh     chan struct{}
	cancel     context.CancelFunc
	events     []chan Event
	closed     bool
}

// New creates an idle stopwatch.
func New(speaker voice.Speaker, options Options) *Stopwatch {
	if options.SampleInterval <= 0 {
		options.SampleInterval = defaultSampleInterval
	}
	if options.NewTicker == nil {
		options.NewTicker = session.NewTimeTicker
	}
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Instruction == "" {
		options.Instruction = model.StabilityInstruction
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if speaker == nil {
		speaker = voice.Nop{}
	}
	return &Stopwatch{
		options: options,
		speaker: speaker,
		logger:  options.Logger.With("session_id", uuid.NewString(), "routine", "stability"),
		phase:   PhaseIdle,
	}
}

// Subscribe registers a new observer channel. Channels are closed on Cancel.
func (watch *Stopwatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.closed {
		close(ch)
		return ch
	}
	watch.events = append(watch.events, ch)
	return ch
}

// Begin enters PREP and speaks the setup instruction. The stopwatch starts
// once delivery completes, whether or not the speech succeeded. Begin after
// DONE starts a fresh test.
func (watch *Stopwatch) Begin() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.closed {
		return ErrCancelled
	}
	if watch.phase == PhasePrep || watch.phase == PhaseRunning {
		return nil
	}

	watch.generation++
	watch.phase = PhasePrep
	watch.started = time.Time{}
	watch.elapsed = 0
	watch.result = nil
	ctx, cancel := context.WithCancel(context.Background())
	watch.cancel = cancel
	watch.emitLocked(EventPrep, watch.options.Clock.Now())
	watch.logger.Info("stability test preparing")

	go watch.prepare(ctx, watch.generation)
	return nil
}

// Stop freezes the elapsed time at this instant and classifies it.
func (watch *Stopwatch) Stop() (Result, error) {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.closed {
		return Result{}, ErrCancelled
	}
	if watch.phase != PhaseRunning {
		return Result{}, ErrNotRunning
	}

	now := watch.options.Clock.Now()
	watch.elapsed = now.Sub(watch.started).Seconds()
	result := Classify(watch.elapsed)
	watch.result = &result
	watch.phase = PhaseDone
	close(watch.stopCh)
	watch.releaseLocked()
	watch.emitLocked(EventDone, now)
	watch.logger.Info("stability test done", "seconds", result.Seconds, "category", result.Category)
	return result, nil
}

// Cancel discards the test in any phase. No result is produced.
func (watch *Stopwatch) Cancel() {
	watch.mu.Lock()
	if watch.closed {
		watch.mu.Unlock()
		return
	}
	if watch.phase == PhaseRunning {
		close(watch.stopCh)
	}
	watch.releaseLocked()
	watch.generation++
	watch.phase = PhaseCancelled
	watch.result = nil
	watch.emitLocked(EventCancelled, watch.options.Clock.Now())
	watch.closed = true
	events := watch.events
	watch.events = nil
	watch.mu.Unlock()

	watch.speaker.Stop()
	watch.logger.Info("stability test cancelled")
	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns a copy of the current state.
func (watch *Stopwatch) Snapshot() Snapshot {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.snapshotLocked()
}

func (watch *Stopwatch) prepare(ctx context.Context, generation uint64) {
	watch.speaker.SpeakAndWait(ctx, watch.options.Instruction)

	watch.mu.Lock()
	defer watch.mu.Unlock()
	if generation != watch.generation || watch.phase != PhasePrep {
		return
	}
	watch.phase = PhaseRunning
	watch.started = watch.options.Clock.Now()
	watch.stopCh = make(chan struct{})
	watch.emitLocked(EventRunning, watch.started)
	watch.logger.Info("stability test running")

	ticker := watch.options.NewTicker(watch.options.SampleInterval)
	go watch.run(generation, watch.stopCh, ticker)
}

func (watch *Stopwatch) run(generation uint64, stopCh chan struct{}, ticker session.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			watch.sample(generation)
		}
	}
}

// sample refreshes the displayed elapsed time. It never feeds the result.
func (watch *Stopwatch) sample(generation uint64) {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if generation != watch.generation || watch.phase != PhaseRunning {
		return
	}
	now := watch.options.Clock.Now()
	watch.elapsed = now.Sub(watch.started).Seconds()
	watch.emitLocked(EventSample, now)
}

func (watch *Stopwatch) releaseLocked() {
	if watch.cancel != nil {
		watch.cancel()
		watch.cancel = nil
	}
}

func (watch *Stopwatch) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		Phase:          watch.phase,
		ElapsedSeconds: watch.elapsed,
	}
	if watch.result != nil {
		result := *watch.result
		snapshot.Result = &result
	}
	return snapshot
}

func (watch *Stopwatch) emitLocked(eventType EventType, now time.Time) {
	event := Event{
		Type:     eventType,
		Snapshot: watch.snapshotLocked(),
		At:       now,
	}
	for _, ch := range watch.events {
		select {
		case ch <- event:
		default:
		}
	}
}
