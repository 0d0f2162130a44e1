// Package screens holds the BlinkRest windows content: home, the guided
// sessions, the stability test with its results, and the info page.
//
// Router methods run on the Fyne UI thread. Engine events are consumed on
// their own goroutines and applied through the router's UI dispatcher, which
// is fyne.Do outside tests.
package screens

import (
	"log/slog"
	"time"

	"blinkrest/internal/platform"
	"blinkrest/internal/ui/preferences"
	"blinkrest/internal/voice"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Router swaps the main window content between screens and tears down
// whatever engine the previous screen was running.
type Router struct {
	window    fyne.Window
	settings  preferences.Settings
	speaker   voice.Speaker
	logger    *slog.Logger
	teardown  func()
	onStatus  func(string)
	inhibitor platform.ScreenInhibitor
	// parked is set while no screen is live: before the first one and after Close.
	parked bool

	do           func(func())
	tickInterval time.Duration
}

// NewRouter creates a router that draws into window.
func NewRouter(window fyne.Window, settings preferences.Settings, speaker voice.Speaker, logger *slog.Logger) *Router {
	if speaker == nil {
		speaker = voice.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		window:   window,
		settings: settings,
		speaker:  speaker,
		logger:   logger.With("component", "screens"),
		parked:   true,
		do:       fyne.Do,
	}
}

// SetInhibitor sets what keeps the display awake during guided sessions.
func (router *Router) SetInhibitor(inhibitor platform.ScreenInhibitor) {
	router.inhibitor = inhibitor
}

// SetOnStatus registers a handler receiving short status lines such as the
// running session clock.
func (router *Router) SetOnStatus(handler func(string)) {
	router.onStatus = handler
}

// UpdateSettings applies to the next session started, never the running one.
func (router *Router) UpdateSettings(settings preferences.Settings, speaker voice.Speaker) {
	router.settings = settings
	if speaker != nil {
		router.speaker = speaker
	}
}

// Show brings the window to front.
func (router *Router) Show() {
	router.window.Show()
	router.window.RequestFocus()
}

// Reopen brings the window back. A screen that was torn down on close is
// replaced by Home.
func (router *Router) Reopen() {
	if router.parked {
		router.Home()
		return
	}
	router.Show()
}

// Close tears down the current screen.
func (router *Router) Close() {
	router.release()
	router.parked = true
	router.status("idle")
}

func (router *Router) show(title string, content fyne.CanvasObject, teardown func()) {
	router.release()
	router.teardown = teardown
	router.parked = false
	router.window.SetTitle(title)
	router.window.SetContent(content)
	router.Show()
}

func (router *Router) release() {
	if router.teardown != nil {
		teardown := router.teardown
		router.teardown = nil
		teardown()
	}
}

// keepAwake holds the display awake until the returned func is called.
func (router *Router) keepAwake(reason string) func() {
	if router.inhibitor == nil {
		return func() {}
	}
	release, err := router.inhibitor.Inhibit(reason)
	if err != nil {
		router.logger.Debug("keep display awake", "error", err)
	}
	return release
}

func (router *Router) status(text string) {
	if router.onStatus != nil {
		router.onStatus(text)
	}
}

func dialogError(router *Router, err error) {
	dialog.ShowError(err, router.window)
}
