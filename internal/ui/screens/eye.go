package screens

import (
	"image/color"

	"blinkrest/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	eyeWidth       = float32(200)
	eyeHeight      = float32(110)
	irisFraction   = float32(0.42)
	irisVisibleMin = animation.Openness(0.3)
)

// eyeView draws an almond eye whose lid height follows an openness value.
type eyeView struct {
	layout  *eyeLayout
	content *fyne.Container
	white   *canvas.Circle
	iris    *canvas.Circle
}

func newEyeView(lid color.Color) *eyeView {
	white := canvas.NewCircle(color.White)
	white.StrokeColor = lid
	white.StrokeWidth = 3
	iris := canvas.NewCircle(colorInk)
	eyeLayout := &eyeLayout{openness: animation.Wide}
	return &eyeView{
		layout:  eyeLayout,
		content: container.New(eyeLayout, white, iris),
		white:   white,
		iris:    iris,
	}
}

// SetOpenness must be called on the UI thread.
func (eye *eyeView) SetOpenness(value animation.Openness) {
	eye.layout.openness = value
	if value < irisVisibleMin {
		eye.iris.Hide()
	} else {
		eye.iris.Show()
	}
	eye.content.Refresh()
}

type eyeLayout struct {
	openness animation.Openness
}

func (eye *eyeLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	white := objects[0]
	iris := objects[1]

	openness := float32(eye.openness)
	if openness < 0 {
		openness = 0
	}
	if openness > 1 {
		openness = 1
	}
	height := eyeHeight * openness
	if height < 3 {
		height = 3
	}
	center := fyne.NewPos(size.Width/2, size.Height/2)
	white.Move(fyne.NewPos(center.X-eyeWidth/2, center.Y-height/2))
	white.Resize(fyne.NewSize(eyeWidth, height))

	side := eyeHeight * irisFraction
	if side > height {
		side = height
	}
	iris.Move(fyne.NewPos(center.X-side/2, center.Y-side/2))
	iris.Resize(fyne.NewSize(side, side))
}

func (eye *eyeLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(eyeWidth, eyeHeight)
}
