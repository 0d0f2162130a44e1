package screens

import (
	"errors"
	"fmt"

	"blinkrest/internal/core/stability"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// StabilityTest runs the tear break-up stopwatch.
func (router *Router) StabilityTest() {
	watch := stability.New(router.speaker, stability.Options{Logger: router.logger})
	events := watch.Subscribe(eventBuffer)

	elapsed := heading(formatSeconds(0), 56, colorInk)
	elapsed.TextStyle = fyne.TextStyle{Monospace: true}
	title := heading("Instructions", 22, colorInk)
	hint := paragraph("Listen to the voice guide for setup.")

	listening := container.NewStack(
		canvas.NewCircle(colorSoft),
		container.NewCenter(heading("Listening...", 14, colorMuted)),
	)
	target := container.NewStack(
		canvas.NewCircle(colorPaper),
		container.NewCenter(container.NewGridWrap(fyne.NewSize(48, 48), canvas.NewCircle(colorInk))),
	)
	target.Hide()
	focus := container.NewGridWrap(fyne.NewSize(180, 180), container.NewStack(listening, target))

	discomfort := primaryButton("I Feel Discomfort", nil)
	discomfort.Hide()
	discomfort.OnTapped = func() {
		result, err := watch.Stop()
		if err != nil {
			if !errors.Is(err, stability.ErrNotRunning) {
				router.logger.Warn("stop stability test", "error", err)
			}
			return
		}
		router.Results(result)
	}

	content := page(colorPaper,
		caption("STABILITY TIMER"),
		elapsed,
		layout.NewSpacer(),
		container.NewCenter(focus),
		title,
		hint,
		layout.NewSpacer(),
		discomfort,
		quietButton("Cancel Test", router.Home),
	)
	router.show("BlinkRest - Stability Test", content, watch.Cancel)
	router.status("stability test")

	go func() {
		for event := range events {
			router.do(func() {
				switch event.Type {
				case stability.EventRunning:
					listening.Hide()
					target.Show()
					title.Text = "Maintain Focus"
					title.Refresh()
					hint.SetText("Tap the button the instant you feel any eye discomfort.")
					discomfort.Show()
				case stability.EventSample:
					elapsed.Text = formatSeconds(event.Snapshot.ElapsedSeconds)
					elapsed.Refresh()
				}
			})
		}
	}()

	if err := watch.Begin(); err != nil {
		router.logger.Error("begin stability test", "error", err)
	}
}

// Results shows a classified stability test result.
func (router *Router) Results(result stability.Result) {
	fill := CategoryColor(result.Category)
	content := page(colorPaper,
		heading(formatSeconds(result.Seconds), 56, fill),
		heading(string(result.Category), 20, fill),
		widget.NewCard("", "", paragraph(result.Description)),
		primaryButton("Retry Test", router.StabilityTest),
		quietButton("Exit", router.Home),
	)
	router.show("BlinkRest - Results", content, nil)
	router.status(fmt.Sprintf("last test %s", formatSeconds(result.Seconds)))
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
