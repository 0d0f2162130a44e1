package stability

import (
	"context"
	"sync"
	"testing"
	"time"

	"blinkrest/internal/core/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(delta)
}

// gatedSpeaker blocks SpeakAndWait until released or cancelled.
type gatedSpeaker struct {
	mu      sync.Mutex
	release chan struct{}
	spoken  []string
	stops   int
}

func newGatedSpeaker() *gatedSpeaker {
	return &gatedSpeaker{release: make(chan struct{})}
}

func (speaker *gatedSpeaker) Speak(context.Context, string) {}

func (speaker *gatedSpeaker) SpeakAndWait(ctx context.Context, text string) {
	speaker.mu.Lock()
	speaker.spoken = append(speaker.spoken, text)
	speaker.mu.Unlock()
	select {
	case <-speaker.release:
	case <-ctx.Done():
	}
}

func (speaker *gatedSpeaker) Stop() {
	speaker.mu.Lock()
	defer speaker.mu.Unlock()
	speaker.stops++
}

func (speaker *gatedSpeaker) stopCount() int {
	speaker.mu.Lock()
	defer speaker.mu.Unlock()
	return speaker.stops
}

type manualTicker struct {
	ch chan time.Time
}

func (ticker *manualTicker) C() <-chan time.Time { return ticker.ch }
func (ticker *manualTicker) Stop()               {}

type harness struct {
	watch   *Stopwatch
	clock   *fakeClock
	speaker *gatedSpeaker
	ticker  *manualTicker
	events  <-chan Event
}

func newHarness() *harness {
	clock := newFakeClock()
	speaker := newGatedSpeaker()
	ticker := &manualTicker{ch: make(chan time.Time)}
	watch := New(speaker, Options{
		Clock:     clock,
		NewTicker: func(time.Duration) session.Ticker { return ticker },
	})
	return &harness{
		watch:   watch,
		clock:   clock,
		speaker: speaker,
		ticker:  ticker,
		events:  watch.Subscribe(64),
	}
}

func (h *harness) waitFor(t *testing.T, eventType EventType) Event {
	t.Helper()
	for {
		select {
		case event, ok := <-h.events:
			require.True(t, ok, "events closed while waiting for %s", eventType)
			if event.Type == eventType {
				return event
			}
		case <-time.After(time.Second):
			t.Fatalf("no %s event", eventType)
		}
	}
}

func TestStopwatchWaitsForInstruction(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.watch.Begin())
	h.waitFor(t, EventPrep)
	assert.Equal(t, PhasePrep, h.watch.Snapshot().Phase)

	_, err := h.watch.Stop()
	require.ErrorIs(t, err, ErrNotRunning)

	close(h.speaker.release)
	h.waitFor(t, EventRunning)
	assert.Equal(t, PhaseRunning, h.watch.Snapshot().Phase)
}

func TestStopFreezesElapsedAtStopInstant(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.watch.Begin())
	close(h.speaker.release)
	h.waitFor(t, EventRunning)

	h.clock.Advance(7300 * time.Millisecond)
	h.ticker.ch <- time.Now()
	sample := h.waitFor(t, EventSample)
	assert.InDelta(t, 7.3, sample.Snapshot.ElapsedSeconds, 1e-9)

	h.clock.Advance(42 * time.Millisecond)
	result, err := h.watch.Stop()
	require.NoError(t, err)
	assert.InDelta(t, 7.342, result.Seconds, 1e-9)
	assert.Equal(t, CategoryMarginal, result.Category)

	done := h.waitFor(t, EventDone)
	require.NotNil(t, done.Snapshot.Result)
	assert.Equal(t, result, *done.Snapshot.Result)
	assert.Equal(t, PhaseDone, h.watch.Snapshot().Phase)

	_, err = h.watch.Stop()
	require.ErrorIs(t, err, ErrNotRunning)
}

func TestInstructionFailureStillStartsStopwatch(t *testing.T) {
	clock := newFakeClock()
	watch := New(nil, Options{Clock: clock, NewTicker: func(time.Duration) session.Ticker {
		return &manualTicker{ch: make(chan time.Time)}
	}})
	events := watch.Subscribe(8)
	require.NoError(t, watch.Begin())

	require.Eventually(t, func() bool {
		return watch.Snapshot().Phase == PhaseRunning
	}, time.Second, time.Millisecond)

	clock.Advance(2 * time.Second)
	result, err := watch.Stop()
	require.NoError(t, err)
	assert.Equal(t, CategoryDryEye, result.Category)
	watch.Cancel()
	for range events {
	}
}

func TestCancelDuringPrepProducesNoResult(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.watch.Begin())
	h.waitFor(t, EventPrep)

	h.watch.Cancel()
	h.waitFor(t, EventCancelled)
	assert.Equal(t, 1, h.speaker.stopCount())

	_, open := <-h.events
	assert.False(t, open)

	close(h.speaker.release)
	time.Sleep(10 * time.Millisecond)
	snapshot := h.watch.Snapshot()
	assert.Equal(t, PhaseCancelled, snapshot.Phase)
	assert.Nil(t, snapshot.Result)

	_, err := h.watch.Stop()
	require.ErrorIs(t, err, ErrCancelled)
	require.ErrorIs(t, h.watch.Begin(), ErrCancelled)
	h.watch.Cancel()
}

func TestBeginAfterDoneStartsFreshTest(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.watch.Begin())
	close(h.speaker.release)
	h.waitFor(t, EventRunning)
	h.clock.Advance(12 * time.Second)
	first, err := h.watch.Stop()
	require.NoError(t, err)
	assert.Equal(t, CategoryNormal, first.Category)

	require.NoError(t, h.watch.Begin())
	snapshot := h.watch.Snapshot()
	assert.Nil(t, snapshot.Result)
	assert.Zero(t, snapshot.ElapsedSeconds)
	h.waitFor(t, EventRunning)
	h.watch.Cancel()
}
