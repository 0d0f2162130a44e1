package screens

import (
	"context"
	"sync"
	"testing"
	"time"

	"blinkrest/internal/core/session"
	"blinkrest/internal/core/stability"
	"blinkrest/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uiLock serializes UI work the way the Fyne main thread does.
type uiLock struct {
	mu sync.Mutex
}

func (lock *uiLock) do(fn func()) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	fn()
}

type flowSpeaker struct {
	mu        sync.Mutex
	stops     int
	preloaded []string
}

func (speaker *flowSpeaker) Speak(context.Context, string)        {}
func (speaker *flowSpeaker) SpeakAndWait(context.Context, string) {}

func (speaker *flowSpeaker) Stop() {
	speaker.mu.Lock()
	defer speaker.mu.Unlock()
	speaker.stops++
}

func (speaker *flowSpeaker) Preload(_ context.Context, texts ...string) {
	speaker.mu.Lock()
	defer speaker.mu.Unlock()
	speaker.preloaded = append(speaker.preloaded, texts...)
}

func (speaker *flowSpeaker) snapshot() (int, []string) {
	speaker.mu.Lock()
	defer speaker.mu.Unlock()
	return speaker.stops, append([]string(nil), speaker.preloaded...)
}

type countingInhibitor struct {
	mu   sync.Mutex
	held int
}

func (inhibitor *countingInhibitor) Inhibit(string) (func(), error) {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()
	inhibitor.held++
	var once sync.Once
	return func() {
		once.Do(func() {
			inhibitor.mu.Lock()
			defer inhibitor.mu.Unlock()
			inhibitor.held--
		})
	}, nil
}

func (inhibitor *countingInhibitor) count() int {
	inhibitor.mu.Lock()
	defer inhibitor.mu.Unlock()
	return inhibitor.held
}

type flow struct {
	router    *Router
	window    fyne.Window
	lock      *uiLock
	speaker   *flowSpeaker
	inhibitor *countingInhibitor
}

func newFlow(t *testing.T, exercise time.Duration) *flow {
	t.Helper()
	test.NewTempApp(t)
	window := test.NewTempWindow(t, widget.NewLabel(""))

	settings := preferences.DefaultSettings()
	settings.ExerciseDuration = exercise
	speaker := &flowSpeaker{}
	inhibitor := &countingInhibitor{}
	lock := &uiLock{}

	router := NewRouter(window, settings, speaker, nil)
	router.do = lock.do
	router.tickInterval = 5 * time.Millisecond
	router.SetInhibitor(inhibitor)
	t.Cleanup(func() { lock.do(router.Close) })

	return &flow{router: router, window: window, lock: lock, speaker: speaker, inhibitor: inhibitor}
}

// waitFor returns the visible button labelled label once it is on screen.
func (f *flow) waitFor(t *testing.T, label string) *widget.Button {
	t.Helper()
	var button *widget.Button
	require.Eventually(t, func() bool {
		f.lock.do(func() { button = findButton(f.window.Content(), label) })
		return button != nil
	}, 2*time.Second, 5*time.Millisecond, "button %q never shown", label)
	return button
}

func (f *flow) tap(t *testing.T, label string) {
	t.Helper()
	button := f.waitFor(t, label)
	f.lock.do(func() { test.Tap(button) })
}

func (f *flow) showsText(text string) bool {
	var found bool
	f.lock.do(func() { found = findText(f.window.Content(), text) })
	return found
}

func findButton(object fyne.CanvasObject, label string) *widget.Button {
	if object == nil || !object.Visible() {
		return nil
	}
	switch typed := object.(type) {
	case *widget.Button:
		if typed.Text == label {
			return typed
		}
	case *fyne.Container:
		for _, child := range typed.Objects {
			if found := findButton(child, label); found != nil {
				return found
			}
		}
	}
	return nil
}

func findText(object fyne.CanvasObject, text string) bool {
	if object == nil || !object.Visible() {
		return false
	}
	switch typed := object.(type) {
	case *canvas.Text:
		return typed.Text == text
	case *fyne.Container:
		for _, child := range typed.Objects {
			if findText(child, text) {
				return true
			}
		}
	}
	return false
}

func TestExerciseFlowRestartsAndExitsOnReturnHome(t *testing.T) {
	f := newFlow(t, 2*time.Second)

	f.lock.do(f.router.Exercise)
	f.tap(t, "Begin Session")
	_, preloaded := f.speaker.snapshot()
	assert.Equal(t, session.Phrases(f.router.settings.ExerciseRoutine()), preloaded)
	require.Eventually(t, func() bool { return f.inhibitor.count() == 1 }, time.Second, time.Millisecond)

	f.tap(t, "Practice Again")
	stops, _ := f.speaker.snapshot()
	assert.Equal(t, 1, stops, "restart silences the previous run")

	f.tap(t, "Return Home")
	stops, _ = f.speaker.snapshot()
	assert.Equal(t, 2, stops, "leaving the session exits the engine")
	assert.Zero(t, f.inhibitor.count())
	f.waitFor(t, "Begin Exercise")
}

func TestEndEarlyTearsDownPalming(t *testing.T) {
	f := newFlow(t, time.Minute)

	f.lock.do(f.router.Palming)
	require.Eventually(t, func() bool { return f.inhibitor.count() == 1 }, time.Second, time.Millisecond)
	f.tap(t, "End Session")

	stops, _ := f.speaker.snapshot()
	assert.Equal(t, 1, stops)
	assert.Zero(t, f.inhibitor.count())
	f.waitFor(t, "Palming Session")
}

func TestStabilityFlowShowsResultAndRetries(t *testing.T) {
	f := newFlow(t, time.Minute)

	f.lock.do(f.router.StabilityTest)
	f.tap(t, "I Feel Discomfort")
	f.waitFor(t, "Retry Test")
	assert.True(t, f.showsText(string(stability.CategoryDryEye)))

	f.tap(t, "Retry Test")
	f.waitFor(t, "I Feel Discomfort")
	f.tap(t, "Cancel Test")
	f.waitFor(t, "Stability Test")
}

func TestReopenReturnsHomeOnlyAfterClose(t *testing.T) {
	f := newFlow(t, time.Minute)

	f.lock.do(f.router.Info)
	f.lock.do(f.router.Reopen)
	f.waitFor(t, "Understood")

	f.lock.do(f.router.Close)
	f.lock.do(f.router.Reopen)
	f.waitFor(t, "Begin Exercise")
}
