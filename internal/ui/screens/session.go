package screens

import (
	"context"
	"image/color"

	"blinkrest/internal/core/model"
	"blinkrest/internal/core/session"
	"blinkrest/internal/ui/animation"
	"blinkrest/internal/voice"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const eventBuffer = 32

// sessionCopy holds the texts that differ between routines.
type sessionCopy struct {
	Title        string
	Hint         string
	EndLabel     string
	DoneTitle    string
	DoneBody     string
	AgainLabel   string
	Background   color.Color
	Foreground   color.Color
	Accent       color.Color
	WindowSuffix string
}

var exerciseCopy = sessionCopy{
	Title:        "TOTAL TIME",
	EndLabel:     "End Early",
	DoneTitle:    "Session Complete",
	DoneBody:     "Consistency is the key to treating severe dry eye. Practice this twice daily.",
	AgainLabel:   "Practice Again",
	Background:   colorPaper,
	Foreground:   colorInk,
	Accent:       colorInk,
	WindowSuffix: "Blinking",
}

var palmingCopy = sessionCopy{
	Title:        "RELAXATION TIMER",
	Hint:         "Keep your eyes cupped and breathe.",
	EndLabel:     "End Session",
	DoneTitle:    "Eyes Restored",
	DoneBody:     "Your eye muscles have reset. You should feel less strain and squinting now.",
	Background:   colorNight,
	Foreground:   colorSoft,
	Accent:       colorIndigo,
	WindowSuffix: "Palming",
}

// Exercise calibrates audio for the blinking routine and then offers to
// begin.
func (router *Router) Exercise() {
	routine := router.settings.ExerciseRoutine()
	speaker := router.speaker

	spinner := widget.NewProgressBarInfinite()
	content := page(colorPaper,
		spinner,
		heading("Calibrating Audio...", 18, colorMuted),
	)

	ctx, cancel := context.WithCancel(context.Background())
	router.show("BlinkRest - Calibrating", content, func() {
		cancel()
		spinner.Stop()
	})

	go func() {
		voice.Preload(ctx, speaker, session.Phrases(routine)...)
		router.do(func() {
			if ctx.Err() != nil {
				return
			}
			router.exercisePrompt(routine)
		})
	}()
}

func (router *Router) exercisePrompt(routine model.Routine) {
	content := page(colorPaper,
		heading("Conscious Blinking", 26, colorInk),
		paragraph("This session ensures your eyelids fully close and seal, spreading vital lipids across the eye surface."),
		primaryButton("Begin Session", func() {
			router.runSession(routine, exerciseCopy)
		}),
		quietButton("Maybe Later", router.Home),
	)
	router.show("BlinkRest - Blinking", content, nil)
}

// Palming starts the palming routine right away.
func (router *Router) Palming() {
	router.runSession(router.settings.PalmingRoutine(), palmingCopy)
}

// sessionView renders one Engine. It lives for as long as its screen.
type sessionView struct {
	router   *Router
	engine   *session.Engine
	texts    sessionCopy
	routine  model.Routine
	anim     *animation.Engine
	animCtx  context.Context
	root     *fyne.Container
	running  fyne.CanvasObject
	finished fyne.CanvasObject

	clock       *canvas.Text
	instruction *canvas.Text
	dots        []*canvas.Circle
	progress    *widget.ProgressBar
	eye         *eyeView

	generation uint64
	phase      model.Phase
}

func (router *Router) runSession(routine model.Routine, texts sessionCopy) {
	engine, err := session.New(routine, router.speaker, session.Config{Logger: router.logger, TickInterval: router.tickInterval})
	if err != nil {
		router.logger.Error("start session", "routine", routine.Name, "error", err)
		dialogError(router, err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	view := &sessionView{
		router:  router,
		engine:  engine,
		texts:   texts,
		routine: routine,
		animCtx: ctx,
	}
	view.build()
	view.anim = animation.New(animation.DefaultConfig(), func(value animation.Openness) {
		router.do(func() {
			view.eye.SetOpenness(value)
		})
	})

	events := engine.Subscribe(eventBuffer)
	release := router.keepAwake("Guided " + routine.Name + " session")
	router.show("BlinkRest - "+texts.WindowSuffix, view.root, func() {
		cancel()
		view.anim.Stop()
		engine.Exit()
		release()
	})

	go func() {
		for event := range events {
			router.do(func() {
				view.apply(event)
			})
		}
	}()

	if err := engine.Start(); err != nil {
		router.logger.Error("start session", "session_id", engine.ID(), "error", err)
		return
	}
	router.logger.Debug("session screen shown", "session_id", engine.ID(), "routine", routine.Name)
}

func (view *sessionView) build() {
	texts := view.texts

	view.clock = heading(session.FormatClock(view.routine.TotalSeconds), 48, texts.Foreground)
	view.clock.TextStyle = fyne.TextStyle{Monospace: true}
	view.instruction = heading("", 22, texts.Foreground)
	view.progress = widget.NewProgressBar()
	view.progress.TextFormatter = func() string { return "" }
	view.eye = newEyeView(texts.Accent)

	items := []fyne.CanvasObject{
		caption(texts.Title),
		view.clock,
		layout.NewSpacer(),
		view.eye.content,
		view.instruction,
	}
	if view.routine.Kind() == model.KindCycle {
		items = append(items, view.buildDots())
	}
	if texts.Hint != "" {
		items = append(items, caption(texts.Hint))
	}
	items = append(items,
		layout.NewSpacer(),
		quietButton(texts.EndLabel, view.router.Home),
		view.progress,
	)
	view.running = page(texts.Background, items...)

	doneItems := []fyne.CanvasObject{
		heading(texts.DoneTitle, 28, texts.Foreground),
		paragraph(texts.DoneBody),
	}
	if texts.AgainLabel != "" {
		doneItems = append(doneItems, primaryButton(texts.AgainLabel, view.restart))
	}
	doneItems = append(doneItems, quietButton("Return Home", view.router.Home))
	view.finished = page(texts.Background, doneItems...)
	view.finished.Hide()

	view.root = container.NewStack(view.running, view.finished)
}

// buildDots creates one dot per second of the longest phase.
func (view *sessionView) buildDots() fyne.CanvasObject {
	longest := 0
	for _, phase := range view.routine.Cycle {
		if phase.Duration > longest {
			longest = phase.Duration
		}
	}
	row := container.NewHBox(layout.NewSpacer())
	for i := 0; i < longest; i++ {
		dot := canvas.NewCircle(colorSoft)
		view.dots = append(view.dots, dot)
		row.Add(container.NewGridWrap(fyne.NewSize(10, 10), dot))
	}
	row.Add(layout.NewSpacer())
	return row
}

func (view *sessionView) restart() {
	if err := view.engine.Restart(); err != nil {
		view.router.logger.Warn("restart session", "session_id", view.engine.ID(), "error", err)
		return
	}
	view.finished.Hide()
	view.running.Show()
	view.root.Refresh()
}

func (view *sessionView) apply(event session.Event) {
	if event.Generation < view.generation {
		return
	}
	switch event.Type {
	case session.EventStarted:
		view.generation = event.Generation
		view.phase = ""
		if view.routine.Kind() == model.KindCheckpoint {
			view.anim.StartBreathe(view.animCtx)
		}
	case session.EventFinished:
		view.anim.Stop()
		view.running.Hide()
		view.finished.Show()
		view.root.Refresh()
		view.router.status("finished " + view.routine.Name)
		return
	case session.EventExited:
		return
	}
	view.render(event.Snapshot)
}

func (view *sessionView) render(snapshot session.Snapshot) {
	view.clock.Text = session.FormatClock(snapshot.TotalSecondsRemaining)
	view.clock.Refresh()
	view.instruction.Text = snapshot.Instruction
	view.instruction.Refresh()
	view.progress.SetValue(snapshot.Progress())
	view.router.status(view.routine.Name + " " + view.clock.Text)

	if snapshot.Kind != model.KindCycle {
		return
	}
	if snapshot.Phase.Phase != view.phase {
		view.phase = snapshot.Phase.Phase
		view.anim.ShowPhase(view.animCtx, view.phase)
	}
	filled := snapshot.PhaseElapsed()
	for index, dot := range view.dots {
		switch {
		case index >= snapshot.Phase.Duration:
			dot.FillColor = color.Transparent
		case index < filled:
			dot.FillColor = view.texts.Accent
		default:
			dot.FillColor = colorSoft
		}
		dot.Refresh()
	}
}
