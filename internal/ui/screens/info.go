package screens

import (
	"fmt"

	"blinkrest/internal/core/stability"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Info explains the tear break-up time benchmarks.
func (router *Router) Info() {
	benchmarks := container.NewVBox(
		benchmark(fmt.Sprintf("> %.0f seconds: Healthy stability.", stability.NormalThreshold), stability.CategoryNormal),
		benchmark(fmt.Sprintf("%.0f - %.0f seconds: Marginal stability.", stability.MarginalThreshold, stability.NormalThreshold), stability.CategoryMarginal),
		benchmark(fmt.Sprintf("< %.0f seconds: Tear film instability (Severe Dry Eye).", stability.MarginalThreshold), stability.CategoryDryEye),
	)

	content := page(colorPaper,
		heading("About the TBUT Test", 26, colorInk),
		paragraph("Tear Break-Up Time (TBUT) is the clinical measurement of the time it takes for your tear film to evaporate or \"break up\" after a blink."),
		heading("Standard Benchmarks", 15, colorInk),
		benchmarks,
		paragraph("This self-assessment tracks your symptoms at home. If you consistently score under 10 seconds, consult an eye professional."),
		primaryButton("Understood", router.Home),
	)
	router.show("BlinkRest - About", content, nil)
}

func benchmark(text string, category stability.Category) *canvas.Text {
	line := canvas.NewText(text, CategoryColor(category))
	line.TextSize = 13
	line.TextStyle.Bold = true
	return line
}
