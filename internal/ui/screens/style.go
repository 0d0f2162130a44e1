package screens

import (
	"image/color"

	"blinkrest/internal/core/stability"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var (
	colorInk     = color.NRGBA{R: 41, G: 37, B: 36, A: 255}
	colorMuted   = color.NRGBA{R: 120, G: 113, B: 108, A: 255}
	colorSoft    = color.NRGBA{R: 214, G: 211, B: 209, A: 255}
	colorPaper   = color.NRGBA{R: 253, G: 251, B: 247, A: 255}
	colorNight   = color.NRGBA{R: 28, G: 25, B: 23, A: 255}
	colorIndigo  = color.NRGBA{R: 99, G: 102, B: 241, A: 255}
	colorGreen   = color.NRGBA{R: 22, G: 163, B: 74, A: 255}
	colorAmber   = color.NRGBA{R: 217, G: 119, B: 6, A: 255}
	colorRed     = color.NRGBA{R: 220, G: 38, B: 38, A: 255}
	maxTextWidth = float32(320)
)

// CategoryColor returns the display colour of a result category.
func CategoryColor(category stability.Category) color.Color {
	switch category {
	case stability.CategoryNormal:
		return colorGreen
	case stability.CategoryMarginal:
		return colorAmber
	default:
		return colorRed
	}
}

func heading(text string, size float32, fill color.Color) *canvas.Text {
	label := canvas.NewText(text, fill)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = size
	return label
}

func caption(text string) *canvas.Text {
	label := canvas.NewText(text, colorMuted)
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = 11
	return label
}

func paragraph(text string) *widget.Label {
	label := widget.NewLabel(text)
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord
	return label
}

func primaryButton(text string, tapped func()) *widget.Button {
	button := widget.NewButton(text, tapped)
	button.Importance = widget.HighImportance
	return button
}

func quietButton(text string, tapped func()) *widget.Button {
	button := widget.NewButton(text, tapped)
	button.Importance = widget.LowImportance
	return button
}

// page centres content vertically over a flat background.
func page(background color.Color, objects ...fyne.CanvasObject) fyne.CanvasObject {
	column := container.NewVBox(objects...)
	body := container.NewVBox(layout.NewSpacer(), container.NewCenter(container.New(&widthLayout{width: maxTextWidth}, column)), layout.NewSpacer())
	return container.NewStack(canvas.NewRectangle(background), container.NewPadded(body))
}

// widthLayout pins its single child to a fixed width so wrapped labels have
// something to wrap against.
type widthLayout struct {
	width float32
}

func (fixed *widthLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, object := range objects {
		object.Move(fyne.NewPos(0, 0))
		object.Resize(size)
	}
}

func (fixed *widthLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	height := float32(0)
	for _, object := range objects {
		object.Resize(fyne.NewSize(fixed.width, object.MinSize().Height))
		if min := object.MinSize().Height; min > height {
			height = min
		}
	}
	return fyne.NewSize(fixed.width, height)
}
