package screens

import (
	"context"

	"blinkrest/internal/ui/animation"

	"fyne.io/fyne/v2/layout"
)

// Home shows the start page.
func (router *Router) Home() {
	eye := newEyeView(colorSoft)
	anim := animation.New(animation.DefaultConfig(), func(value animation.Openness) {
		router.do(func() {
			eye.SetOpenness(value)
		})
	})

	content := page(colorPaper,
		eye.content,
		layout.NewSpacer(),
		heading("BlinkRest", 36, colorInk),
		paragraph("A conscious blinking practice to refresh and hydrate your eyes."),
		primaryButton("Begin Exercise", router.Exercise),
		quietButton("Palming Session", router.Palming),
		quietButton("Stability Test", router.StabilityTest),
		quietButton("How it helps dry eyes", router.Info),
		layout.NewSpacer(),
		caption("GENTLE GUIDANCE FOR SENSITIVE EYES"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	router.show("BlinkRest", content, func() {
		cancel()
		anim.Stop()
	})
	router.status("idle")
	anim.StartIdle(ctx)
}
